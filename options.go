package allocation

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options are the engine tunables. The zero value is not usable, start from DefaultOptions.
type Options struct {
	// NarrowWidth is the number of instruments funded in a category weighing
	// less than WideWeight points, WideWidth otherwise.
	NarrowWidth int `yaml:"narrow_width"`
	WideWidth   int `yaml:"wide_width"`
	WideWeight  int `yaml:"wide_weight"`

	// LumpyTolerance lets a lumpy asset (real estate) whose single unit
	// slightly exceeds its sub-budget borrow the difference.
	LumpyTolerance float64 `yaml:"lumpy_tolerance"`

	ExactRiskScore    float64 `yaml:"exact_risk_score"`
	AdjacentRiskScore float64 `yaml:"adjacent_risk_score"`
	PreferredBonus    float64 `yaml:"preferred_bonus"`
	TieBreakBonus     float64 `yaml:"tie_break_bonus"`

	// Sequential disables the per-category fan-out.
	Sequential bool `yaml:"sequential"`
}

// DefaultOptions returns the canonical tunables.
func DefaultOptions() Options {
	return Options{
		NarrowWidth:       1,
		WideWidth:         2,
		WideWeight:        30,
		LumpyTolerance:    1.1,
		ExactRiskScore:    3,
		AdjacentRiskScore: 1,
		PreferredBonus:    2,
		TieBreakBonus:     0.5,
	}
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	var errs []error
	if o.NarrowWidth < 1 || o.WideWidth < 1 {
		errs = append(errs, fmt.Errorf("widths must be at least 1, got %d and %d", o.NarrowWidth, o.WideWidth))
	}
	if o.WideWeight < 0 || o.WideWeight > 100 {
		errs = append(errs, fmt.Errorf("wide_weight must be within [0,100], got %d", o.WideWeight))
	}
	if o.LumpyTolerance < 1 {
		errs = append(errs, fmt.Errorf("lumpy_tolerance must be at least 1, got %v", o.LumpyTolerance))
	}
	return errors.Join(errs...)
}

// width returns how many instruments a category with the given weight funds.
func (o Options) width(weight int) int {
	if weight < o.WideWeight {
		return o.NarrowWidth
	}
	return o.WideWidth
}

// DecodeOptions reads YAML options on top of DefaultOptions.
func DecodeOptions(r io.Reader) (Options, error) {
	o := DefaultOptions()
	if err := yaml.NewDecoder(r).Decode(&o); err != nil && err != io.EOF {
		return o, fmt.Errorf("cannot decode engine options: %w", err)
	}
	return o, o.Validate()
}
