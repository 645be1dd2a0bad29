package seating

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromMap(nil))
	assert.Equal(t, DefaultConfig(), FromMap(map[string]string{"w": "-3", "density": "2", "threshold": "0", "visibility": "nope"}))
}

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":               "12",
		"h":               "8",
		"seed":            "-5",
		"density":         "0.25",
		"rule":            "part2",
		"threshold":       "3",
		"max_generations": "40",
		"workers":         "4",
	})
	assert.Equal(t, 12, c.Width)
	assert.Equal(t, 8, c.Height)
	assert.Equal(t, int64(-5), c.Seed)
	assert.Equal(t, 0.25, c.Density)
	assert.Equal(t, Rule{Threshold: 3, Visibility: FirstVisible}, c.Rule)
	assert.Equal(t, 40, c.MaxGenerations)
	assert.Equal(t, 4, c.Workers)
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
rule: first-visible
max_generations: 200
workers: 2
width: 30
height: 20
density: 0.5
seed: 9
`))
	require.NoError(t, err)
	assert.Equal(t, RuleFirstVisible, c.Rule)
	assert.Equal(t, 200, c.MaxGenerations)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 30, c.Width)
	assert.Equal(t, 20, c.Height)
	assert.Equal(t, 0.5, c.Density)
	assert.Equal(t, int64(9), c.Seed)

	c, err = ParseConfig([]byte("threshold: 6\nvisibility: sight\n"))
	require.NoError(t, err)
	assert.Equal(t, Rule{Threshold: 6, Visibility: FirstVisible}, c.Rule)
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string]string{
		"BadYAML":        "threshold: [",
		"ZeroThreshold":  "threshold: 0",
		"BadVisibility":  "visibility: sideways",
		"BadPreset":      "rule: part3",
		"NegativeBound":  "max_generations: -1",
		"DensityTooHigh": "density: 1.5",
		"ZeroWorkers":    "workers: 0",
		"ZeroWidth":      "width: 0",
		"NegativeHeight": "height: -3",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "rules.yaml")
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rule: immediate\nthreshold: 5\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Rule{Threshold: 5, Visibility: Immediate}, c.Rule)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPresetAndVisibilityNames(t *testing.T) {
	r, err := PresetRule("part1")
	require.NoError(t, err)
	assert.Equal(t, RuleImmediate, r)

	_, err = PresetRule("")
	assert.ErrorIs(t, err, ErrInvalidRule)

	for _, v := range []Visibility{Immediate, FirstVisible} {
		parsed, err := ParseVisibility(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	assert.Equal(t, "first-visible/5", RuleFirstVisible.String())
}
