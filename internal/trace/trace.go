// Package trace records seating generations as zstd-compressed JSON lines and
// replays them to check that a run is reproducible.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"

	"seat-ca/internal/sims/seating"
)

// ErrMismatch indicates a recorded generation does not follow from the one before it.
var ErrMismatch = errors.New("trace: recorded generation does not match re-simulation")

// Frame is one recorded generation.
type Frame struct {
	Generation int      `json:"generation"`
	Changed    bool     `json:"changed"`
	Occupied   int      `json:"occupied"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Threshold  int      `json:"threshold"`
	Visibility string   `json:"visibility"`
	Rows       []string `json:"rows"`
}

// NewFrame captures g as generation gen under rule.
func NewFrame(gen int, g *seating.Grid, changed bool, rule seating.Rule) Frame {
	return Frame{
		Generation: gen,
		Changed:    changed,
		Occupied:   g.Count(seating.Occupied),
		Width:      g.Width(),
		Height:     g.Height(),
		Threshold:  rule.Threshold,
		Visibility: rule.Visibility.String(),
		Rows:       g.Rows(),
	}
}

// Grid rebuilds the frame rows into a grid of the size the header declares.
func (f Frame) Grid() (*seating.Grid, error) {
	if len(f.Rows) != f.Height {
		return nil, fmt.Errorf("trace: generation %d: %d rows, header says %dx%d",
			f.Generation, len(f.Rows), f.Width, f.Height)
	}
	cells := make([]seating.Cell, 0, f.Width*f.Height)
	for y, row := range f.Rows {
		if n := utf8.RuneCountInString(row); n != f.Width {
			return nil, fmt.Errorf("trace: generation %d: row %d has %d cells, header says %dx%d",
				f.Generation, y, n, f.Width, f.Height)
		}
		for x, r := range []rune(row) {
			c, ok := seating.ParseCell(r)
			if !ok {
				return nil, fmt.Errorf("trace: generation %d: %w %q at row %d column %d",
					f.Generation, seating.ErrInvalidSymbol, r, y, x)
			}
			cells = append(cells, c)
		}
	}
	g, err := seating.FromCells(f.Width, f.Height, cells)
	if err != nil {
		return nil, fmt.Errorf("trace: generation %d: %w", f.Generation, err)
	}
	return g, nil
}

// Rule returns the rule the frame was recorded under.
func (f Frame) Rule() (seating.Rule, error) {
	v, err := seating.ParseVisibility(f.Visibility)
	if err != nil {
		return seating.Rule{}, err
	}
	r := seating.Rule{Threshold: f.Threshold, Visibility: v}
	return r, r.Validate()
}

// Writer appends frames to a zstd-compressed JSONL stream.
type Writer struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	err error
}

// NewWriter wraps dst. Closing the Writer does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Create opens path for writing, creating parent directories as needed.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// Write appends one frame.
func (w *Writer) Write(fr Frame) error {
	if w.err != nil {
		return w.err
	}
	b, err := json.Marshal(fr)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		w.err = err
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Observer returns a simulation observer that records every generation.
// The first write error is kept and reported by Err and Close.
func (w *Writer) Observer(rule seating.Rule) seating.Observer {
	return func(gen int, g *seating.Grid, changed bool) {
		_ = w.Write(NewFrame(gen, g, changed, rule))
	}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error { return w.err }

// Close flushes and closes the stream.
func (w *Writer) Close() error {
	errs := []error{w.err, w.w.Flush(), w.enc.Close()}
	if w.f != nil {
		errs = append(errs, w.f.Close())
	}
	return errors.Join(errs...)
}

// Read decodes every frame from a zstd-compressed JSONL stream.
func Read(src io.Reader) ([]Frame, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var frames []Frame
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var fr Frame
		if err := json.Unmarshal(sc.Bytes(), &fr); err != nil {
			return frames, fmt.Errorf("trace: frame %d: %w", len(frames), err)
		}
		frames = append(frames, fr)
	}
	if err := sc.Err(); err != nil {
		return frames, fmt.Errorf("trace: %w", err)
	}
	return frames, nil
}

// ReadFile decodes every frame stored at path.
func ReadFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Report summarises a verified trace.
type Report struct {
	Frames     int
	Rule       seating.Rule
	FixedPoint bool
	Occupied   int
}

// Verify re-simulates every recorded transition and checks that the last
// frame is a fixed point when the trace claims to be complete.
func Verify(frames []Frame) (Report, error) {
	if len(frames) == 0 {
		return Report{}, fmt.Errorf("trace: no frames")
	}
	rule, err := frames[0].Rule()
	if err != nil {
		return Report{}, fmt.Errorf("trace: %w", err)
	}
	cur, err := frames[0].Grid()
	if err != nil {
		return Report{}, err
	}
	for i := 1; i < len(frames); i++ {
		fr := frames[i]
		if r, err := fr.Rule(); err != nil || r != rule {
			return Report{}, fmt.Errorf("%w: generation %d recorded under %s/%d, trace started under %s",
				ErrMismatch, fr.Generation, fr.Visibility, fr.Threshold, rule)
		}
		if fr.Width != frames[0].Width || fr.Height != frames[0].Height {
			return Report{}, fmt.Errorf("%w: generation %d is %dx%d, trace started at %dx%d",
				ErrMismatch, fr.Generation, fr.Width, fr.Height, frames[0].Width, frames[0].Height)
		}
		want, err := fr.Grid()
		if err != nil {
			return Report{}, err
		}
		next, changed := seating.Step(cur, rule)
		if !changed || !next.Equal(want) {
			return Report{}, fmt.Errorf("%w: generation %d", ErrMismatch, fr.Generation)
		}
		cur = next
	}
	_, changed := seating.Step(cur, rule)
	return Report{
		Frames:     len(frames),
		Rule:       rule,
		FixedPoint: !changed,
		Occupied:   cur.Count(seating.Occupied),
	}, nil
}
