package seating

import "fmt"

// State is the lifecycle of a Simulation.
type State int

const (
	Running State = iota
	Converged
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Observer is called with each generation as it becomes current, starting
// with generation 0. The grid must not be retained past the call.
type Observer func(generation int, g *Grid, changed bool)

// Option configures a Simulation.
type Option func(*Simulation)

// WithMaxGenerations bounds the number of changing generations. Zero disables
// the bound.
func WithMaxGenerations(n int) Option {
	return func(s *Simulation) { s.maxGenerations = n }
}

// WithWorkers steps rows across n goroutines. Values below two step serially.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.workers = n }
}

// WithObserver registers fn to be called for every generation.
func WithObserver(fn Observer) Option {
	return func(s *Simulation) { s.observer = fn }
}

// Result is the outcome of a converged run.
type Result struct {
	// Occupied is the number of occupied seats at the fixed point.
	Occupied int
	// Generations counts the steps that changed at least one cell.
	Generations int
	// Seats is the number of Empty or Occupied cells in the layout.
	Seats int
	// Final is the converged generation.
	Final *Grid
}

// Simulation drives a grid to its fixed point under a single rule.
type Simulation struct {
	rule Rule
	cur  *Grid
	nxt  *Grid

	generation     int
	state          State
	maxGenerations int
	workers        int
	observer       Observer
}

// NewSimulation prepares a run starting from g. g itself is never modified.
func NewSimulation(g *Grid, rule Rule, opts ...Option) (*Simulation, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		rule: rule,
		cur:  g.Clone(),
		nxt:  newBlankGrid(g.w, g.h),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.observer != nil {
		s.observer(0, s.cur, false)
	}
	return s, nil
}

// Rule returns the rule the simulation applies.
func (s *Simulation) Rule() Rule { return s.rule }

// State reports whether the simulation is still running.
func (s *Simulation) State() State { return s.state }

// Generation returns how many changing steps have been applied.
func (s *Simulation) Generation() int { return s.generation }

// Current returns a copy of the current generation.
func (s *Simulation) Current() *Grid { return s.cur.Clone() }

// Advance applies one step. It returns false once the fixed point has been
// reached and ErrNonConvergence when the generation bound is exceeded.
func (s *Simulation) Advance() (bool, error) {
	switch s.state {
	case Converged:
		return false, nil
	case Failed:
		return false, fmt.Errorf("%w after %d generations", ErrNonConvergence, s.generation)
	}

	var changed bool
	if s.workers > 1 {
		changed = StepParallel(s.nxt, s.cur, s.rule, s.workers)
	} else {
		changed = StepInto(s.nxt, s.cur, s.rule)
	}
	if !changed {
		s.state = Converged
		return false, nil
	}

	s.cur, s.nxt = s.nxt, s.cur
	s.generation++
	if s.observer != nil {
		s.observer(s.generation, s.cur, true)
	}
	if s.maxGenerations > 0 && s.generation > s.maxGenerations {
		s.state = Failed
		return false, fmt.Errorf("%w within %d generations", ErrNonConvergence, s.maxGenerations)
	}
	return true, nil
}

// Run steps until the fixed point and reports the occupied count there.
func (s *Simulation) Run() (Result, error) {
	for {
		changed, err := s.Advance()
		if err != nil {
			return Result{}, err
		}
		if !changed {
			break
		}
	}
	return Result{
		Occupied:    s.cur.Count(Occupied),
		Generations: s.generation,
		Seats:       s.cur.Seats(),
		Final:       s.cur.Clone(),
	}, nil
}

// Simulate runs g to its fixed point under rule.
func Simulate(g *Grid, rule Rule, opts ...Option) (Result, error) {
	s, err := NewSimulation(g, rule, opts...)
	if err != nil {
		return Result{}, err
	}
	return s.Run()
}
