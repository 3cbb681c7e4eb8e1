package power

import (
	"fmt"
	"time"

	"gopower/domain/core"
)

// FailurePolicy decides what a fit failure does to its sample size's row
type FailurePolicy string

const (
	// PolicyExcludeAndCount drops the failed trial from the denominator and
	// records the exclusion on the row. This is the default policy.
	PolicyExcludeAndCount FailurePolicy = "exclude_and_count"
	// PolicyAbortSampleSize abandons the whole sample size on the first fit
	// failure; the row is absent and the failure is surfaced per size.
	PolicyAbortSampleSize FailurePolicy = "abort_sample_size"
)

// SweepRequest configures one power-estimation run
type SweepRequest struct {
	SampleSizes []int
	Iterations  int
	Criterion   Criterion
	Policy      FailurePolicy
	Workers     int           // concurrent trial workers; 0 picks a hardware default
	Budget      time.Duration // per-sample-size wall clock; 0 means unlimited
	Seed        int64         // run-level seed; 0 draws a random one
}

// Validate checks the request before any trial is dispatched
func (r SweepRequest) Validate() error {
	if len(r.SampleSizes) == 0 {
		return fmt.Errorf("%w: no sample sizes", core.ErrInvalidSweep)
	}
	seen := make(map[int]bool, len(r.SampleSizes))
	for _, n := range r.SampleSizes {
		if n <= 0 {
			return fmt.Errorf("%w: sample size %d must be positive", core.ErrInvalidSweep, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate sample size %d", core.ErrInvalidSweep, n)
		}
		seen[n] = true
	}
	if r.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive", core.ErrInvalidSweep)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", core.ErrInvalidSweep)
	}
	if r.Budget < 0 {
		return fmt.Errorf("%w: budget cannot be negative", core.ErrInvalidSweep)
	}
	switch r.Policy {
	case "", PolicyExcludeAndCount, PolicyAbortSampleSize:
	default:
		return fmt.Errorf("%w: unknown failure policy %q", core.ErrInvalidSweep, r.Policy)
	}
	return r.Criterion.Validate()
}

// EffectivePolicy resolves the default failure policy
func (r SweepRequest) EffectivePolicy() FailurePolicy {
	if r.Policy == "" {
		return PolicyExcludeAndCount
	}
	return r.Policy
}
