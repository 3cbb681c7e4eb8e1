// Package testkit holds shared doubles for service-level tests: synthetic
// trial functions with known power and an in-memory recorder.
package testkit

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/domain/run"
)

// InMemoryRecorder captures recorded sweeps for assertions
type InMemoryRecorder struct {
	mu        sync.Mutex
	Manifests []*run.Manifest
	Tables    []*power.Table
}

// RecordSweep stores the manifest and table
func (r *InMemoryRecorder) RecordSweep(_ context.Context, manifest *run.Manifest, table *power.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Manifests = append(r.Manifests, manifest)
	r.Tables = append(r.Tables, table)
	return nil
}

// Len returns how many sweeps were recorded
func (r *InMemoryRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Manifests)
}

// UniformPValueTrial returns a trial whose p-value lands below alpha with
// probability targetPower, independent of sample size: p = u * alpha /
// targetPower for uniform u. Exact power by construction, so estimator
// tallies can be checked against a known value.
func UniformPValueTrial(targetPower, alpha float64) power.TrialFunc {
	return func(_ context.Context, _ int, rng *rand.Rand) (power.Outcome, error) {
		p := rng.Float64() * alpha / targetPower
		return power.SingleOutcome("p", p), nil
	}
}

// FailNthTrial wraps a trial so that exactly one invocation (the nth,
// counted across all goroutines) returns a fit failure
func FailNthTrial(inner power.TrialFunc, n int64) power.TrialFunc {
	var calls atomic.Int64
	return func(ctx context.Context, sampleSize int, rng *rand.Rand) (power.Outcome, error) {
		if calls.Add(1) == n {
			return power.Outcome{}, core.NewFitError("testkit", sampleSize, core.ErrNonConvergence)
		}
		return inner(ctx, sampleSize, rng)
	}
}

// AlwaysFailTrial returns a fit failure on every invocation
func AlwaysFailTrial() power.TrialFunc {
	return func(_ context.Context, sampleSize int, _ *rand.Rand) (power.Outcome, error) {
		return power.Outcome{}, core.NewFitError("testkit", sampleSize, core.ErrSingularDesign)
	}
}

// CountingTrial wraps a trial and counts invocations
func CountingTrial(inner power.TrialFunc, calls *atomic.Int64) power.TrialFunc {
	return func(ctx context.Context, sampleSize int, rng *rand.Rand) (power.Outcome, error) {
		calls.Add(1)
		return inner(ctx, sampleSize, rng)
	}
}
