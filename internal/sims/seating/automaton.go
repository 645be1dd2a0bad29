package seating

import (
	"seat-ca/internal/core"
)

// Automaton adapts a Simulation to the core.Sim contract so the seating system
// can be stepped interactively. The display buffer holds Cell values.
type Automaton struct {
	cfg     Config
	fixed   bool
	initial *Grid
	sim     *Simulation
	display []uint8
	err     error
}

// New returns an Automaton over a random layout built from cfg.
func New(cfg Config) *Automaton {
	a := &Automaton{cfg: cfg}
	a.initial = RandomLayout(cfg.Width, cfg.Height, cfg.Density, cfg.Seed)
	a.restart()
	return a
}

// NewWithLayout returns an Automaton that always restarts from layout.
func NewWithLayout(layout *Grid, cfg Config) *Automaton {
	cfg.Width, cfg.Height = layout.Width(), layout.Height()
	a := &Automaton{cfg: cfg, fixed: true, initial: layout.Clone()}
	a.restart()
	return a
}

// RandomLayout scatters seats with the given density; everything else is
// floor. All seats start empty. The same seed always yields the same layout.
func RandomLayout(w, h int, density float64, seed int64) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	rng := core.NewRNG(seed)
	g := newBlankGrid(w, h)
	for i := range g.cells {
		if rng.Chance(density) {
			g.cells[i] = Empty
		}
	}
	return g
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return "seating" }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return core.Size{W: a.initial.w, H: a.initial.h} }

// Cells exposes the current generation as palette indices.
func (a *Automaton) Cells() []uint8 { return a.display }

// Reset restarts from generation 0. Random layouts are regenerated from seed,
// or from the configured seed when seed is zero.
func (a *Automaton) Reset(seed int64) {
	if !a.fixed {
		if seed == 0 {
			seed = a.cfg.Seed
		}
		a.initial = RandomLayout(a.cfg.Width, a.cfg.Height, a.cfg.Density, seed)
	}
	a.restart()
}

// Step advances one generation unless the fixed point has been reached.
func (a *Automaton) Step() {
	if a.Settled() {
		return
	}
	if _, err := a.sim.Advance(); err != nil {
		a.err = err
	}
	a.refresh()
}

// Settled reports whether stepping can no longer change the grid.
func (a *Automaton) Settled() bool { return a.sim.State() != Running }

// Err returns the error that stopped the run, if any.
func (a *Automaton) Err() error { return a.err }

// Rule returns the active rule.
func (a *Automaton) Rule() Rule { return a.cfg.Rule }

// Generation returns the number of changing steps applied so far.
func (a *Automaton) Generation() int { return a.sim.Generation() }

// Occupied returns the number of occupied seats in the current generation.
func (a *Automaton) Occupied() int { return a.sim.cur.Count(Occupied) }

// Grid returns a copy of the current generation.
func (a *Automaton) Grid() *Grid { return a.sim.Current() }

// Sightlines returns the indices of the seats the cell at index takes into
// account under the active rule.
func (a *Automaton) Sightlines(index int) []int {
	cur := a.sim.cur
	if index < 0 || index >= cur.Len() {
		return nil
	}
	var out []int
	for _, s := range cur.Visible(index, a.cfg.Rule.Visibility) {
		if s.Found && s.State.IsSeat() {
			out = append(out, s.Index)
		}
	}
	return out
}

// Parameters reports the rule and run progress.
func (a *Automaton) Parameters() core.ParameterSnapshot {
	cur := a.sim.cur
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Layout",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cur.w),
				core.IntParam("h", "Height", cur.h),
				core.IntParam("seats", "Seats", cur.Seats()),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.IntParam("threshold", "Tolerance", a.cfg.Rule.Threshold),
				core.IntParam("visibility", "Line of sight", int(a.cfg.Rule.Visibility)),
				core.StringParam("rule", "Rule", a.cfg.Rule.String()),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", a.sim.Generation()),
				core.IntParam("occupied", "Occupied", cur.Count(Occupied)),
				core.BoolParam("converged", "Converged", a.sim.State() == Converged),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable rule settings.
func (a *Automaton) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "threshold", Label: "Tolerance", Min: 1, Max: 8},
		{Key: "visibility", Label: "Line of sight", Min: int(Immediate), Max: int(FirstVisible)},
	}
}

// SetIntParameter changes the rule and restarts from the initial layout.
func (a *Automaton) SetIntParameter(key string, value int) bool {
	rule := a.cfg.Rule
	switch key {
	case "threshold":
		rule.Threshold = value
	case "visibility":
		rule.Visibility = Visibility(value)
	default:
		return false
	}
	if rule.Validate() != nil {
		return false
	}
	a.cfg.Rule = rule
	a.restart()
	return true
}

func (a *Automaton) restart() {
	sim, err := NewSimulation(a.initial, a.cfg.Rule, a.cfg.Options()...)
	if err != nil {
		// Invalid rules fall back to the canonical adjacent rule.
		a.cfg.Rule = RuleImmediate
		sim, _ = NewSimulation(a.initial, a.cfg.Rule, a.cfg.Options()...)
	}
	a.sim = sim
	a.err = nil
	a.refresh()
}

func (a *Automaton) refresh() {
	cells := a.sim.cur.cells
	if len(a.display) != len(cells) {
		a.display = make([]uint8, len(cells))
	}
	for i, c := range cells {
		a.display[i] = uint8(c)
	}
}

func init() {
	core.Register("seating", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
