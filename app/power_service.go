package app

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/domain/run"
	"gopower/internal"
	"gopower/ports"
)

// Abort records a sample size the sweep gave up on and why
type Abort struct {
	SampleSize int
	Err        error
}

// SweepResult is the full outcome of one power sweep: the curve, the
// reproducibility manifest, and the sample sizes that produced no row.
type SweepResult struct {
	Manifest       *run.Manifest
	Table          *power.Table
	BudgetExceeded []int
	Aborted        []Abort
	RuntimeMs      int64
}

// PowerService estimates statistical power by Monte Carlo: for each sample
// size it dispatches the trial function across a bounded worker pool and
// tallies how often the decision criterion is met.
type PowerService struct {
	rngPort     ports.RNGPort
	recorder    ports.RecorderPort
	logger      *internal.Logger
	codeVersion string
}

// NewPowerService wires the estimator to its RNG source and optional recorder
func NewPowerService(rngPort ports.RNGPort, recorder ports.RecorderPort, logger *internal.Logger, codeVersion string) *PowerService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PowerService{
		rngPort:     rngPort,
		recorder:    recorder,
		logger:      logger,
		codeVersion: codeVersion,
	}
}

type trialSlot struct {
	outcome power.Outcome
	err     error
}

// EstimatePower runs the sweep described by req, driving trial for every
// (sample size, iteration) pair. The result table holds one row per sample
// size that completed; sizes that ran out of budget or aborted under the
// failure policy are reported separately.
func (s *PowerService) EstimatePower(ctx context.Context, req power.SweepRequest, trial power.TrialFunc) (*SweepResult, error) {
	if trial == nil {
		return nil, fmt.Errorf("%w: trial function is required", core.ErrInvalidSweep)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		drawn, err := drawSeed()
		if err != nil {
			return nil, fmt.Errorf("drawing run seed: %w", err)
		}
		seed = drawn
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runID := core.RunID(core.NewID())
	manifest := run.NewManifest(runID, req, seed, workers, s.codeVersion)
	policy := req.EffectivePolicy()

	s.logger.Info("power sweep %s: %d sizes x %d iterations, seed=%d, workers=%d",
		runID, len(req.SampleSizes), req.Iterations, seed, workers)

	started := time.Now()
	result := &SweepResult{
		Manifest: manifest,
		Table:    power.NewTable(len(req.SampleSizes)),
	}

	for _, size := range req.SampleSizes {
		row, err := s.estimateAtSize(ctx, req, policy, seed, size, workers, trial)
		switch {
		case err == nil:
			result.Table.Append(row)
		case core.IsBudgetExceeded(err):
			s.logger.Warn("sample size %d exceeded budget, no row emitted", size)
			result.BudgetExceeded = append(result.BudgetExceeded, size)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			result.RuntimeMs = time.Since(started).Milliseconds()
			return result, err
		default:
			s.logger.Warn("sample size %d aborted: %v", size, err)
			result.Aborted = append(result.Aborted, Abort{SampleSize: size, Err: err})
		}
	}
	result.RuntimeMs = time.Since(started).Milliseconds()

	if s.recorder != nil {
		if err := s.recorder.RecordSweep(ctx, manifest, result.Table); err != nil {
			s.logger.Error("recording sweep %s: %v", runID, err)
		}
	}
	s.logger.Info("power sweep %s complete: %d rows in %dms",
		runID, result.Table.Len(), result.RuntimeMs)
	return result, nil
}

// estimateAtSize runs all iterations for one sample size. Every trial draws
// its stream from (seed, size, iteration), so the tally is identical for any
// worker count and dispatch order.
func (s *PowerService) estimateAtSize(ctx context.Context, req power.SweepRequest, policy power.FailurePolicy, seed int64, size, workers int, trial power.TrialFunc) (power.Row, error) {
	sizeCtx := ctx
	if req.Budget > 0 {
		var cancel context.CancelFunc
		sizeCtx, cancel = context.WithTimeout(ctx, req.Budget)
		defer cancel()
	}

	slots := make([]trialSlot, req.Iterations)
	sem := semaphore.NewWeighted(int64(workers))

	for i := 0; i < req.Iterations; i++ {
		if err := sem.Acquire(sizeCtx, 1); err != nil {
			// Budget or caller cancellation; outstanding workers drain below
			break
		}
		go func(iteration int) {
			defer sem.Release(1)
			stream, err := s.rngPort.TrialStream(sizeCtx, seed, size, iteration)
			if err != nil {
				slots[iteration] = trialSlot{err: err}
				return
			}
			outcome, err := trial(sizeCtx, size, stream)
			slots[iteration] = trialSlot{outcome: outcome, err: err}
		}(i)
	}
	if err := sem.Acquire(context.Background(), int64(workers)); err != nil {
		return power.Row{}, err
	}

	if err := sizeCtx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && (ctx.Err() == nil) {
			return power.Row{}, core.NewBudgetError(size, err)
		}
		return power.Row{}, err
	}

	return tally(slots, req.Criterion, policy, size)
}

// tally folds the per-trial slots into a power row under the failure policy
func tally(slots []trialSlot, criterion power.Criterion, policy power.FailurePolicy, size int) (power.Row, error) {
	var components []string
	var successes []int
	valid := 0
	failures := 0

	for i := range slots {
		slot := &slots[i]
		if slot.err != nil {
			if !core.IsFitFailure(slot.err) {
				// Programming or infrastructure errors are never absorbed
				return power.Row{}, slot.err
			}
			if policy == power.PolicyAbortSampleSize {
				return power.Row{}, slot.err
			}
			failures++
			continue
		}
		if components == nil {
			components = slot.outcome.Components
			successes = make([]int, len(components))
		}
		if len(slot.outcome.Values) != len(components) {
			return power.Row{}, fmt.Errorf("trial outcome shape changed mid-sweep at size %d", size)
		}
		for j, v := range slot.outcome.Values {
			if criterion.Met(v) {
				successes[j]++
			}
		}
		valid++
	}

	if valid == 0 {
		return power.Row{}, fmt.Errorf("%w: all %d trials failed at sample size %d",
			core.ErrNoValidTrials, len(slots), size)
	}

	estimates := make([]float64, len(successes))
	for j, count := range successes {
		estimates[j] = float64(count) / float64(valid)
	}
	return power.Row{
		SampleSize:  size,
		Components:  components,
		Power:       estimates,
		ValidTrials: valid,
		Failures:    failures,
	}, nil
}

// drawSeed pulls a fresh nonzero seed from the OS entropy source
func drawSeed() (int64, error) {
	var buf [8]byte
	for {
		if _, err := crand.Read(buf[:]); err != nil {
			return 0, err
		}
		seed := int64(binary.BigEndian.Uint64(buf[:]) &^ (1 << 63))
		if seed != 0 {
			return seed, nil
		}
	}
}
