package seating

import (
	"fmt"
	"strings"
)

// Visibility selects which neighbours a seat considers.
type Visibility uint8

const (
	// Immediate considers only the eight adjacent cells.
	Immediate Visibility = iota
	// FirstVisible considers the first seat seen along each direction, skipping floor.
	FirstVisible
)

func (v Visibility) String() string {
	switch v {
	case Immediate:
		return "immediate"
	case FirstVisible:
		return "first-visible"
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}

// ParseVisibility accepts the names produced by String plus a few aliases.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate", "adjacent", "0":
		return Immediate, nil
	case "first-visible", "first_visible", "firstvisible", "visible", "sight", "1":
		return FirstVisible, nil
	}
	return Immediate, fmt.Errorf("%w: unknown visibility %q", ErrInvalidRule, s)
}

// Rule is the occupancy rule applied each generation: an occupied seat empties
// when at least Threshold of its visible neighbours are occupied.
type Rule struct {
	Threshold  int
	Visibility Visibility
}

var (
	// RuleImmediate is the adjacent-neighbour rule with a tolerance of four.
	RuleImmediate = Rule{Threshold: 4, Visibility: Immediate}
	// RuleFirstVisible is the line-of-sight rule with a tolerance of five.
	RuleFirstVisible = Rule{Threshold: 5, Visibility: FirstVisible}
)

// Validate reports whether the rule can drive a simulation.
func (r Rule) Validate() error {
	if r.Threshold < 1 {
		return fmt.Errorf("%w: threshold %d must be at least 1", ErrInvalidRule, r.Threshold)
	}
	if r.Visibility != Immediate && r.Visibility != FirstVisible {
		return fmt.Errorf("%w: unknown visibility %d", ErrInvalidRule, r.Visibility)
	}
	return nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s/%d", r.Visibility, r.Threshold)
}

// PresetRule resolves the two canonical rules by name.
func PresetRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "immediate", "adjacent", "part1":
		return RuleImmediate, nil
	case "first-visible", "first_visible", "visible", "sight", "part2":
		return RuleFirstVisible, nil
	}
	return Rule{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidRule, name)
}
