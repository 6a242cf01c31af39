// Package config loads the configuration of the tricuspid driver.
//
// The embedded defaults.yaml holds every setting. A user file, if any, is
// decoded on top of it, so it only needs to name the keys it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"honnef.co/go/tricuspid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error that isn't about the
// rates of a pair.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings of the driver.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Chords     ChordsConfig     `yaml:"chords"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Literal    []PairConfig     `yaml:"literal_pairs"`
	RealPairs  []RealPairConfig `yaml:"real_pairs"`
	Degeneracy DegeneracyConfig `yaml:"degeneracy"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// OutputConfig selects where and how pages are written.
type OutputConfig struct {
	Dir       string  `yaml:"dir"`
	Format    string  `yaml:"format"` // svg, png or pdf
	Prefix    string  `yaml:"prefix"`
	Paper     string  `yaml:"paper"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Tolerance float64 `yaml:"tolerance"` // device units
	CSV       bool    `yaml:"csv"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// SamplingConfig holds the sampler settings shared by all curve pages.
type SamplingConfig struct {
	ClipRadius  float64 `yaml:"clip_radius"`
	StepDegrees float64 `yaml:"step_degrees"`
	Quantize    bool    `yaml:"quantize"`
	ViewRadius  float64 `yaml:"view_radius"`
}

type ChordsConfig struct {
	Enabled            bool    `yaml:"enabled"`
	InnerRadius        float64 `yaml:"inner_radius"`
	OuterRadius        float64 `yaml:"outer_radius"`
	StepDegrees        float64 `yaml:"step_degrees"`
	Count              int     `yaml:"count"`
	Threshold          float64 `yaml:"threshold"`
	ThresholdTolerance float64 `yaml:"threshold_tolerance"`
	AxisChords         int     `yaml:"axis_chords"`
}

// SweepConfig selects the integer pairs drawn in bulk.
type SweepConfig struct {
	MinB              int     `yaml:"min_b"`
	MaxB              int     `yaml:"max_b"`
	SternBrocotTarget float64 `yaml:"stern_brocot_target"` // 0 means 2+√3
	SternBrocotMaxB   int     `yaml:"stern_brocot_max_b"`
}

// PairConfig is a pair of integer rates.
type PairConfig struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
}

// RealPairConfig is a pair of real rates, drawn with the reflected formula.
type RealPairConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

type DegeneracyConfig struct {
	A     float64 `yaml:"a"`
	BLow  float64 `yaml:"b_low"`
	BHigh float64 `yaml:"b_high"`
	Widen bool    `yaml:"widen"`
	Index int     `yaml:"index"`
}

// DerivedConfig holds values computed from the loaded settings.
type DerivedConfig struct {
	SampleStep float64 // radians
	ChordStep  float64 // radians
	Target     float64
	// Pairs are the coprime pairs followed by the Stern–Brocot pairs not
	// already among them.
	Pairs    []tricuspid.Pair
	LogLevel slog.Level
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. Lists are replaced.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Apply(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply validates the settings and recomputes the derived values. Call it
// after changing a loaded configuration.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate reports every problem with the settings at once. Degenerate rate
// pairs wrap [tricuspid.ErrDegenerate], everything else wraps [ErrInvalid].
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Output.Dir == "" {
		invalid("output.dir is empty")
	}
	switch c.Output.Format {
	case "svg", "png", "pdf":
	default:
		invalid("output.format %q is not one of svg, png, pdf", c.Output.Format)
	}
	if c.Output.Format != "pdf" && (c.Output.Width <= 0 || c.Output.Height <= 0) {
		invalid("output size %g×%g is not positive", c.Output.Width, c.Output.Height)
	}
	if c.Output.Tolerance <= 0 {
		invalid("output.tolerance %g is not positive", c.Output.Tolerance)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		invalid("logging.level: %v", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		invalid("logging.format %q is not one of text, json", c.Logging.Format)
	}

	if !(c.Sampling.ClipRadius > 0) || math.IsInf(c.Sampling.ClipRadius, 1) {
		invalid("sampling.clip_radius %g is not positive and finite", c.Sampling.ClipRadius)
	}
	if !(c.Sampling.StepDegrees > 0) {
		invalid("sampling.step_degrees %g is not positive", c.Sampling.StepDegrees)
	}
	if !(c.Sampling.ViewRadius > 0) {
		invalid("sampling.view_radius %g is not positive", c.Sampling.ViewRadius)
	}

	if c.Chords.Enabled {
		if c.Chords.Count < 0 || c.Chords.AxisChords < 0 {
			invalid("negative chord count")
		}
		if !(c.Chords.StepDegrees > 0) {
			invalid("chords.step_degrees %g is not positive", c.Chords.StepDegrees)
		}
	}

	if c.Sweep.MinB > c.Sweep.MaxB {
		invalid("sweep.min_b %d exceeds max_b %d", c.Sweep.MinB, c.Sweep.MaxB)
	}
	if c.Sweep.SternBrocotTarget < 0 || math.IsNaN(c.Sweep.SternBrocotTarget) {
		invalid("sweep.stern_brocot_target %g is negative", c.Sweep.SternBrocotTarget)
	}

	for _, p := range c.Literal {
		if _, err := tricuspid.NewEnvelope(float64(p.A), float64(p.B), false); err != nil {
			errs = append(errs, fmt.Errorf("literal pair (%d, %d): %w", p.A, p.B, err))
		}
	}
	for _, p := range c.RealPairs {
		if _, err := tricuspid.NewEnvelope(p.A, p.B, true); err != nil {
			errs = append(errs, fmt.Errorf("real pair (%g, %g): %w", p.A, p.B, err))
		}
	}

	d := c.Degeneracy
	if d.A == 0 || !(d.BLow < d.BHigh) {
		invalid("degeneracy search needs a ≠ 0 and b_low < b_high, have a = %g, [%g, %g]", d.A, d.BLow, d.BHigh)
	}
	if d.Index < 0 || d.Index >= tricuspid.EstimatorSteps {
		invalid("degeneracy.index %d is outside [0, %d)", d.Index, tricuspid.EstimatorSteps)
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SampleStep = tricuspid.DegreesToRadians(c.Sampling.StepDegrees)
	c.Derived.ChordStep = tricuspid.DegreesToRadians(c.Chords.StepDegrees)

	c.Derived.Target = c.Sweep.SternBrocotTarget
	if c.Derived.Target == 0 {
		c.Derived.Target = 2 + math.Sqrt(3)
	}

	pairs := tricuspid.CoprimePairs(c.Sweep.MinB, c.Sweep.MaxB)
	for _, p := range tricuspid.SternBrocot(c.Derived.Target, c.Sweep.SternBrocotMaxB) {
		if !slices.Contains(pairs, p) {
			pairs = append(pairs, p)
		}
	}
	c.Derived.Pairs = pairs

	// Validate has checked the level.
	_ = c.Derived.LogLevel.UnmarshalText([]byte(c.Logging.Level))
}

// SampleOptions returns the sampler options for a curve. Quantization only
// applies to integral rates.
func (c *Config) SampleOptions(integral bool) *tricuspid.SampleOptions {
	return &tricuspid.SampleOptions{
		ClipRadius: c.Sampling.ClipRadius,
		Step:       c.Derived.SampleStep,
		Quantize:   c.Sampling.Quantize && integral,
	}
}

// ChordFamily returns the configured chord family.
func (c *Config) ChordFamily() tricuspid.ChordFamily {
	return tricuspid.ChordFamily{
		From:  tricuspid.Circle{Radius: c.Chords.InnerRadius},
		To:    tricuspid.Circle{Radius: c.Chords.OuterRadius},
		Step:  c.Derived.ChordStep,
		Count: c.Chords.Count,
	}
}

// SearchOptions returns the options of the degeneracy search.
func (c *Config) SearchOptions() *tricuspid.SearchOptions {
	return &tricuspid.SearchOptions{
		Index: c.Degeneracy.Index,
		Widen: c.Degeneracy.Widen,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
