package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateSampleLayout(t *testing.T) {
	cases := []struct {
		name        string
		rule        Rule
		occupied    int
		generations int
		final       string
	}{
		{"Immediate", RuleImmediate, 37, 5, step5Immediate},
		{"FirstVisible", RuleFirstVisible, 26, 6, step6FirstVisible},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Simulate(mustParse(t, sampleLayout), tc.rule)
			require.NoError(t, err)
			assert.Equal(t, tc.occupied, res.Occupied)
			assert.Equal(t, tc.generations, res.Generations)
			assert.Equal(t, 71, res.Seats)
			assert.Equal(t, tc.final, res.Final.String())
		})
	}
}

func TestSimulateWithWorkers(t *testing.T) {
	res, err := Simulate(mustParse(t, sampleLayout), RuleFirstVisible, WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, 26, res.Occupied)
	assert.Equal(t, 6, res.Generations)
}

func TestSimulateGenerationBound(t *testing.T) {
	res, err := Simulate(mustParse(t, sampleLayout), RuleImmediate, WithMaxGenerations(5))
	require.NoError(t, err)
	assert.Equal(t, 37, res.Occupied)

	res, err = Simulate(mustParse(t, sampleLayout), RuleImmediate, WithMaxGenerations(4))
	require.ErrorIs(t, err, ErrNonConvergence)
	assert.Equal(t, Result{}, res)
}

func TestSimulateOscillationFails(t *testing.T) {
	// Two adjacent seats with a tolerance of one flip between full and empty forever.
	_, err := Simulate(mustParse(t, "LL\n"), Rule{Threshold: 1, Visibility: Immediate}, WithMaxGenerations(10))
	require.ErrorIs(t, err, ErrNonConvergence)
	assert.Contains(t, err.Error(), "within 10 generations")
}

func TestSimulationStates(t *testing.T) {
	sim, err := NewSimulation(mustParse(t, sampleLayout), RuleImmediate, WithMaxGenerations(2))
	require.NoError(t, err)
	assert.Equal(t, Running, sim.State())

	for i := 0; i < 2; i++ {
		changed, err := sim.Advance()
		require.NoError(t, err)
		assert.True(t, changed)
	}
	_, err = sim.Advance()
	require.ErrorIs(t, err, ErrNonConvergence)
	assert.Equal(t, Failed, sim.State())

	_, err = sim.Advance()
	assert.ErrorIs(t, err, ErrNonConvergence)
}

func TestSimulationAdvanceAfterConvergence(t *testing.T) {
	sim, err := NewSimulation(mustParse(t, "L\n"), RuleImmediate)
	require.NoError(t, err)

	changed, err := sim.Advance()
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = sim.Advance()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Converged, sim.State())

	changed, err = sim.Advance()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, sim.Generation())
	assert.Equal(t, "#\n", sim.Current().String())
}

func TestSimulationDoesNotModifyInput(t *testing.T) {
	g := mustParse(t, sampleLayout)
	_, err := Simulate(g, RuleImmediate)
	require.NoError(t, err)
	assert.Equal(t, sampleLayout, g.String())
}

func TestSimulationObserver(t *testing.T) {
	var gens []int
	var occupied []int
	_, err := Simulate(mustParse(t, sampleLayout), RuleImmediate, WithObserver(func(gen int, g *Grid, changed bool) {
		gens = append(gens, gen)
		occupied = append(occupied, g.Count(Occupied))
		assert.Equal(t, gen > 0, changed)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, gens)
	assert.Equal(t, 0, occupied[0])
	assert.Equal(t, 71, occupied[1])
	assert.Equal(t, 37, occupied[5])
}

func TestSimulationRejectsInvalidInput(t *testing.T) {
	_, err := NewSimulation(mustParse(t, "L\n"), Rule{Threshold: 0})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewSimulation(mustParse(t, "L\n"), Rule{Threshold: 3, Visibility: Visibility(9)})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewSimulation(nil, RuleImmediate)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestSimulationConvergesOnRandomLayouts(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		layout := RandomLayout(24, 18, 0.6, seed)
		for _, rule := range []Rule{RuleImmediate, RuleFirstVisible} {
			res, err := Simulate(layout, rule, WithMaxGenerations(layout.Len()))
			require.NoError(t, err, "seed %d rule %s", seed, rule)
			assert.LessOrEqual(t, res.Occupied, layout.Seats())
			assert.Equal(t, layout.Seats(), res.Seats)
			assert.Equal(t, layout.Count(Floor), res.Final.Count(Floor))
		}
	}
}
