package seating

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid indicates the input contained no rows or a zero-width first row.
	ErrEmptyGrid = errors.New("seating: layout must have at least one row and one column")
	// ErrMalformedGrid indicates rows of differing lengths.
	ErrMalformedGrid = errors.New("seating: all rows must have the same length")
	// ErrInvalidSymbol indicates a character outside '.', 'L' and '#'.
	ErrInvalidSymbol = errors.New("seating: invalid layout symbol")
	// ErrInvalidRule indicates a rule with a threshold below one or an unknown visibility.
	ErrInvalidRule = errors.New("seating: invalid rule")
	// ErrNonConvergence indicates the generation bound was exceeded before a fixed point.
	ErrNonConvergence = errors.New("seating: simulation did not converge")
)

// ParseError reports where in the input a layout failed to parse. Line and
// Column are 1-based.
type ParseError struct {
	Line   int
	Column int
	Symbol rune
	Width  int
	Got    int
	Err    error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrMalformedGrid) {
		return fmt.Sprintf("%v: line %d has %d columns, want %d", e.Err, e.Line, e.Got, e.Width)
	}
	if errors.Is(e.Err, ErrInvalidSymbol) {
		return fmt.Sprintf("%v %q at line %d, column %d", e.Err, e.Symbol, e.Line, e.Column)
	}
	return fmt.Sprintf("%v (line %d)", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }
