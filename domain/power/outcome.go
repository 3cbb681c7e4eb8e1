// Package power holds the value types of the estimation core: trial
// outcomes, significance criteria, and the results table a sweep produces.
package power

import (
	"context"
	"fmt"
	"math/rand"
)

// Outcome is the fixed-length ordered set of statistics extracted from one
// trial, e.g. a single p-value, or one p-value per tested coefficient.
type Outcome struct {
	Components []string
	Values     []float64
}

// NewOutcome builds an outcome; component labels and values must pair up
func NewOutcome(components []string, values []float64) (Outcome, error) {
	if len(components) == 0 {
		return Outcome{}, fmt.Errorf("outcome needs at least one component")
	}
	if len(components) != len(values) {
		return Outcome{}, fmt.Errorf("outcome has %d labels but %d values", len(components), len(values))
	}
	return Outcome{Components: components, Values: values}, nil
}

// SingleOutcome builds a one-component outcome
func SingleOutcome(component string, value float64) Outcome {
	return Outcome{Components: []string{component}, Values: []float64{value}}
}

// Len returns the number of components
func (o Outcome) Len() int { return len(o.Values) }

// TrialFunc runs one simulate-fit-extract cycle for a fixed sample size.
// The supplied rng is the trial's only randomness source; the estimator
// derives it deterministically per logical trial, so two calls with the
// same sample size and rng state produce the same outcome. Errors wrapping
// core.ErrFitFailure mark the trial invalid; they are never encoded as a
// sentinel statistic.
type TrialFunc func(ctx context.Context, sampleSize int, rng *rand.Rand) (Outcome, error)
