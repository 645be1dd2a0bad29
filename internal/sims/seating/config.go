package seating

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config controls the rule and, when no layout file is given, the random layout.
type Config struct {
	Width   int
	Height  int
	Seed    int64
	Density float64

	Rule           Rule
	MaxGenerations int
	Workers        int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:          96,
		Height:         96,
		Seed:           42,
		Density:        0.7,
		Rule:           RuleImmediate,
		MaxGenerations: 0,
		Workers:        1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep the default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := PresetRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Rule.Threshold = parsed
		}
	}
	if v, ok := cfg["visibility"]; ok {
		if parsed, err := ParseVisibility(v); err == nil {
			c.Rule.Visibility = parsed
		}
	}
	if v, ok := cfg["max_generations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxGenerations = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}

// fileConfig mirrors the YAML rule file. Pointer fields distinguish absent keys.
type fileConfig struct {
	Rule           string   `yaml:"rule"`
	Threshold      *int     `yaml:"threshold"`
	Visibility     string   `yaml:"visibility"`
	MaxGenerations *int     `yaml:"max_generations"`
	Workers        *int     `yaml:"workers"`
	Width          *int     `yaml:"width"`
	Height         *int     `yaml:"height"`
	Seed           *int64   `yaml:"seed"`
	Density        *float64 `yaml:"density"`
}

// LoadConfig reads a YAML rule file on top of DefaultConfig. A preset named by
// rule is applied first so threshold and visibility can refine it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(raw)
}

// ParseConfig decodes YAML rule file contents.
func ParseConfig(raw []byte) (Config, error) {
	c := DefaultConfig()
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return c, fmt.Errorf("rules.yaml: %w", err)
	}
	if f.Rule != "" {
		r, err := PresetRule(f.Rule)
		if err != nil {
			return c, fmt.Errorf("rules.yaml: %w", err)
		}
		c.Rule = r
	}
	if f.Threshold != nil {
		c.Rule.Threshold = *f.Threshold
	}
	if f.Visibility != "" {
		v, err := ParseVisibility(f.Visibility)
		if err != nil {
			return c, fmt.Errorf("rules.yaml: %w", err)
		}
		c.Rule.Visibility = v
	}
	if f.MaxGenerations != nil {
		if *f.MaxGenerations < 0 {
			return c, fmt.Errorf("rules.yaml: max_generations %d must not be negative", *f.MaxGenerations)
		}
		c.MaxGenerations = *f.MaxGenerations
	}
	if f.Workers != nil {
		if *f.Workers < 1 {
			return c, fmt.Errorf("rules.yaml: workers %d must be positive", *f.Workers)
		}
		c.Workers = *f.Workers
	}
	if f.Width != nil {
		if *f.Width < 1 {
			return c, fmt.Errorf("rules.yaml: width %d must be positive", *f.Width)
		}
		c.Width = *f.Width
	}
	if f.Height != nil {
		if *f.Height < 1 {
			return c, fmt.Errorf("rules.yaml: height %d must be positive", *f.Height)
		}
		c.Height = *f.Height
	}
	if f.Seed != nil {
		c.Seed = *f.Seed
	}
	if f.Density != nil {
		if *f.Density < 0 || *f.Density > 1 {
			return c, fmt.Errorf("rules.yaml: density %v must be within [0,1]", *f.Density)
		}
		c.Density = *f.Density
	}
	if err := c.Rule.Validate(); err != nil {
		return c, fmt.Errorf("rules.yaml: %w", err)
	}
	return c, nil
}

// Options converts the run settings into simulation options.
func (c Config) Options() []Option {
	opts := []Option{WithMaxGenerations(c.MaxGenerations)}
	if c.Workers > 1 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
