package seating

// Cell enumerates the states a position in the waiting area can take. The
// numeric values double as palette indices for the display buffer.
type Cell uint8

const (
	Floor Cell = iota
	Empty
	Occupied
)

// ParseCell maps an input symbol to its Cell state.
func ParseCell(r rune) (Cell, bool) {
	switch r {
	case '.':
		return Floor, true
	case 'L':
		return Empty, true
	case '#':
		return Occupied, true
	}
	return Floor, false
}

// Rune returns the textual symbol for the cell.
func (c Cell) Rune() rune {
	switch c {
	case Empty:
		return 'L'
	case Occupied:
		return '#'
	default:
		return '.'
	}
}

// IsSeat reports whether the cell can hold a passenger.
func (c Cell) IsSeat() bool { return c == Empty || c == Occupied }

func (c Cell) String() string {
	switch c {
	case Floor:
		return "floor"
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	}
	return "invalid"
}
