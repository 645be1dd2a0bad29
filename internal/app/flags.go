package app

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"seat-ca/internal/core"
	"seat-ca/internal/sims/seating"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Rate   int
	Seed   int64
	Panel  int
	Layout string
	Rule   string
	Params map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "seating", Scale: 6, TPS: 60, Rate: 4, Seed: 42, Panel: 220, Rule: "immediate", Params: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random layouts")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.Layout, "layout", c.Layout, "seat layout file (default: random layout)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule preset: immediate or first-visible")
	fs.Func("set", "simulation option key=value (repeatable)", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", v)
		}
		c.Params[key] = value
		return nil
	})
}

// BuildSim constructs the configured simulation. A layout file pins the grid;
// otherwise the registered factory receives the seed, rule and -set options.
func (c *Config) BuildSim() (core.Sim, error) {
	if c.Layout != "" {
		if c.Sim != "seating" {
			return nil, fmt.Errorf("-layout is only supported by the seating sim")
		}
		f, err := os.Open(c.Layout)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		grid, err := seating.Read(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Layout, err)
		}
		cfg := seating.FromMap(c.params())
		return seating.NewWithLayout(grid, cfg), nil
	}
	factory, ok := core.Lookup(c.Sim)
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", c.Sim, core.Names())
	}
	return factory(c.params()), nil
}

func (c *Config) params() map[string]string {
	out := map[string]string{
		"seed": fmt.Sprint(c.Seed),
		"rule": c.Rule,
	}
	for k, v := range c.Params {
		out[k] = v
	}
	return out
}
