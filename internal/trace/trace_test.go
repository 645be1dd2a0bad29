package trace

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seat-ca/internal/sims/seating"
)

const sampleLayout = "L.LL.LL.LL\nLLLLLLL.LL\nL.L.L..L..\nLLLL.LL.LL\nL.LL.LL.LL\nL.LLLLL.LL\n..L.L.....\nLLLLLLLLLL\nL.LLLLLL.L\nL.LLLLL.LL\n"

func record(t *testing.T, rule seating.Rule) []byte {
	t.Helper()
	g, err := seating.Parse(sampleLayout)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	_, err = seating.Simulate(g, rule, seating.WithObserver(w.Observer(rule)))
	require.NoError(t, err)
	require.NoError(t, w.Err())
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRecordAndVerify(t *testing.T) {
	cases := []struct {
		rule     seating.Rule
		frames   int
		occupied int
	}{
		{seating.RuleImmediate, 6, 37},
		{seating.RuleFirstVisible, 7, 26},
	}
	for _, tc := range cases {
		t.Run(tc.rule.String(), func(t *testing.T) {
			frames, err := Read(bytes.NewReader(record(t, tc.rule)))
			require.NoError(t, err)
			require.Len(t, frames, tc.frames)

			assert.Equal(t, 0, frames[0].Generation)
			assert.False(t, frames[0].Changed)
			assert.Equal(t, 10, frames[0].Width)
			assert.Equal(t, tc.occupied, frames[len(frames)-1].Occupied)

			rep, err := Verify(frames)
			require.NoError(t, err)
			assert.True(t, rep.FixedPoint)
			assert.Equal(t, tc.rule, rep.Rule)
			assert.Equal(t, tc.occupied, rep.Occupied)
			assert.Equal(t, tc.frames, rep.Frames)
		})
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	frames, err := Read(bytes.NewReader(record(t, seating.RuleImmediate)))
	require.NoError(t, err)

	frames[3].Rows[0] = strings.Repeat("L", 10)
	_, err = Verify(frames)
	assert.ErrorIs(t, err, ErrMismatch)

	t.Run("RuleChangesMidTrace", func(t *testing.T) {
		frames, err := Read(bytes.NewReader(record(t, seating.RuleImmediate)))
		require.NoError(t, err)
		for i := 1; i < len(frames); i++ {
			frames[i].Threshold = 8
			frames[i].Visibility = "first-visible"
		}
		_, err = Verify(frames)
		assert.ErrorIs(t, err, ErrMismatch)
		assert.ErrorContains(t, err, "first-visible/8")
	})

	t.Run("SizeChangesMidTrace", func(t *testing.T) {
		frames, err := Read(bytes.NewReader(record(t, seating.RuleImmediate)))
		require.NoError(t, err)
		last := &frames[len(frames)-1]
		last.Height--
		last.Rows = last.Rows[:last.Height]
		_, err = Verify(frames)
		assert.ErrorIs(t, err, ErrMismatch)
	})
}

func TestVerifyPartialTrace(t *testing.T) {
	frames, err := Read(bytes.NewReader(record(t, seating.RuleFirstVisible)))
	require.NoError(t, err)

	rep, err := Verify(frames[:3])
	require.NoError(t, err)
	assert.False(t, rep.FixedPoint)

	_, err = Verify(nil)
	assert.Error(t, err)

	bad := frames[0]
	bad.Threshold = 0
	_, err = Verify([]Frame{bad})
	assert.ErrorIs(t, err, seating.ErrInvalidRule)
}

func TestFrameGridRejectsBadRows(t *testing.T) {
	_, err := Frame{Width: 2, Height: 1, Rows: []string{"L?"}}.Grid()
	assert.ErrorIs(t, err, seating.ErrInvalidSymbol)

	_, err = Frame{Width: 3, Height: 1, Rows: []string{"LL"}}.Grid()
	assert.ErrorContains(t, err, "header says 3x1")

	_, err = Frame{Width: 2, Height: 2, Rows: []string{"LL"}}.Grid()
	assert.ErrorContains(t, err, "header says 2x2")

	g, err := Frame{Width: 2, Height: 2, Rows: []string{"L.", "#L"}}.Grid()
	require.NoError(t, err)
	assert.Equal(t, []seating.Cell{seating.Empty, seating.Floor, seating.Occupied, seating.Empty}, g.Cells())
}

func TestFramesMatchSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "trace_frame.schema.json"))
	require.NoError(t, err)

	dec, err := zstd.NewReader(bytes.NewReader(record(t, seating.RuleFirstVisible)))
	require.NoError(t, err)
	defer dec.Close()

	lines := 0
	for _, line := range bytes.Split(mustReadAll(t, dec), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var v any
		require.NoError(t, json.Unmarshal(line, &v))
		require.NoError(t, schema.Validate(v), "line %d", lines)
		lines++
	}
	assert.Equal(t, 7, lines)
}

func TestCreateAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "sample.jsonl.zst")
	w, err := Create(path)
	require.NoError(t, err)

	g, err := seating.Parse("L.\n.L\n")
	require.NoError(t, err)
	require.NoError(t, w.Write(NewFrame(0, g, false, seating.RuleImmediate)))
	require.NoError(t, w.Close())

	frames, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []string{"L.", ".L"}, frames[0].Rows)
	assert.Equal(t, "immediate", frames[0].Visibility)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}

func mustReadAll(t *testing.T, dec *zstd.Decoder) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(dec)
	require.NoError(t, err)
	return buf.Bytes()
}
