package seating

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Direction identifies one of the eight compass directions. Values follow a
// fixed clockwise order starting at the top-left neighbour.
type Direction int

const (
	NorthWest Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
)

// Directions lists every direction in clockwise order from NorthWest.
var Directions = [8]Direction{NorthWest, North, NorthEast, East, SouthEast, South, SouthWest, West}

// deltas holds (row, column) steps indexed by Direction.
var deltas = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}

var directionNames = [8]string{"NW", "N", "NE", "E", "SE", "S", "SW", "W"}

// Delta returns the row and column step for the direction.
func (d Direction) Delta() (dr, dc int) { return deltas[d][0], deltas[d][1] }

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Offset is the result of projecting a cell index along one direction. Valid is
// false when the projection leaves the grid.
type Offset struct {
	Index int
	Valid bool
}

// Grid is a rectangular seat layout stored row-major in a flat buffer.
// It is immutable once built; the step function produces new generations
// instead of editing one in place.
type Grid struct {
	w, h  int
	cells []Cell
}

// Parse builds a Grid from newline separated rows of '.', 'L' and '#'.
// A trailing newline is optional and CRLF line endings are accepted.
func Parse(text string) (*Grid, error) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return nil, &ParseError{Line: 1, Err: ErrEmptyGrid}
	}
	lines := strings.Split(text, "\n")
	width := utf8.RuneCountInString(strings.TrimSuffix(lines[0], "\r"))
	if width == 0 {
		return nil, &ParseError{Line: 1, Err: ErrEmptyGrid}
	}

	cells := make([]Cell, 0, width*len(lines))
	for row, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if n := utf8.RuneCountInString(line); n != width {
			return nil, &ParseError{Line: row + 1, Width: width, Got: n, Err: ErrMalformedGrid}
		}
		col := 0
		for _, r := range line {
			c, ok := ParseCell(r)
			if !ok {
				return nil, &ParseError{Line: row + 1, Column: col + 1, Symbol: r, Err: ErrInvalidSymbol}
			}
			cells = append(cells, c)
			col++
		}
	}
	return &Grid{w: width, h: len(lines), cells: cells}, nil
}

// Read parses a layout from r.
func Read(r io.Reader) (*Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("seating: read layout: %w", err)
	}
	return Parse(string(raw))
}

// FromCells builds a Grid from an existing row-major buffer. The buffer is copied.
func FromCells(w, h int, cells []Cell) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrMalformedGrid, len(cells), w, h)
	}
	for i, c := range cells {
		if c > Occupied {
			return nil, fmt.Errorf("%w: value %d at index %d", ErrInvalidSymbol, c, i)
		}
	}
	return &Grid{w: w, h: h, cells: append([]Cell(nil), cells...)}, nil
}

func newBlankGrid(w, h int) *Grid {
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// At returns the cell at index. An out-of-range index is a programming error.
func (g *Grid) At(index int) Cell {
	g.mustContain(index)
	return g.cells[index]
}

func (g *Grid) mustContain(index int) {
	if index < 0 || index >= len(g.cells) {
		panic(fmt.Sprintf("seating: index %d out of range for %dx%d grid", index, g.w, g.h))
	}
}

// Index maps (row, col) to the row-major index.
func (g *Grid) Index(row, col int) int { return row*g.w + col }

// Coord converts a row-major index back to (row, col).
func (g *Grid) Coord(index int) (row, col int) { return index / g.w, index % g.w }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.h && col >= 0 && col < g.w
}

// Neighbor projects index dist steps along dir. index must lie inside the grid.
func (g *Grid) Neighbor(index int, dir Direction, dist int) (int, bool) {
	g.mustContain(index)
	row, col := g.Coord(index)
	dr, dc := dir.Delta()
	r, c := row+dr*dist, col+dc*dist
	if !g.InBounds(r, c) {
		return 0, false
	}
	return g.Index(r, c), true
}

// Offsets projects index dist steps along each of the eight directions.
// Directions that leave the grid are reported with Valid unset.
func (g *Grid) Offsets(index, dist int) [8]Offset {
	var out [8]Offset
	for _, dir := range Directions {
		if n, ok := g.Neighbor(index, dir, dist); ok {
			out[dir] = Offset{Index: n, Valid: true}
		}
	}
	return out
}

// Count returns how many cells equal c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Seats returns the number of Empty or Occupied cells.
func (g *Grid) Seats() int { return len(g.cells) - g.Count(Floor) }

// Cells returns a copy of the row-major cell buffer.
func (g *Grid) Cells() []Cell { return append([]Cell(nil), g.cells...) }

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	return &Grid{w: g.w, h: g.h, cells: append([]Cell(nil), g.cells...)}
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Rows renders each row as a string of layout symbols.
func (g *Grid) Rows() []string {
	rows := make([]string, g.h)
	var b strings.Builder
	for r := 0; r < g.h; r++ {
		b.Reset()
		for _, c := range g.cells[r*g.w : (r+1)*g.w] {
			b.WriteRune(c.Rune())
		}
		rows[r] = b.String()
	}
	return rows
}

// String renders the grid in the same format Parse accepts, one row per line.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}
