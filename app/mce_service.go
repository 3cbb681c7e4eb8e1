package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/internal"
	"gopower/ports"
)

// MCEReport summarizes the Monte Carlo error of a power estimate at one
// sample size: replicate the whole estimate under independent seeds and look
// at the spread.
type MCEReport struct {
	SampleSize  int       `json:"sample_size"`
	Iterations  int       `json:"iterations"`
	Replicates  int       `json:"replicates"`
	Estimates   []float64 `json:"estimates"`
	Mean        float64   `json:"mean"`
	SD          float64   `json:"sd"`
	Theoretical float64   `json:"theoretical_sd"`
}

// MCEService quantifies how much a power estimate moves from seed to seed
type MCEService struct {
	estimator *PowerService
	rngPort   ports.RNGPort
	logger    *internal.Logger
}

// NewMCEService wires the error estimator to the power estimator
func NewMCEService(estimator *PowerService, rngPort ports.RNGPort, logger *internal.Logger) *MCEService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &MCEService{estimator: estimator, rngPort: rngPort, logger: logger}
}

// EstimateError reruns a single-size power estimate under `replicates`
// independent seeds derived from req.Seed and reports the spread of the
// estimates. The first outcome component is the one tracked.
func (s *MCEService) EstimateError(ctx context.Context, req power.SweepRequest, trial power.TrialFunc, replicates int) (*MCEReport, error) {
	if replicates < 2 {
		return nil, fmt.Errorf("%w: need at least 2 replicates, got %d",
			core.ErrInvalidParameters, replicates)
	}
	if len(req.SampleSizes) != 1 {
		return nil, fmt.Errorf("%w: error estimation works on exactly one sample size, got %d",
			core.ErrInvalidSweep, len(req.SampleSizes))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	size := req.SampleSizes[0]
	seedStream, err := s.rngPort.SeededStream(ctx, "mce_replicates", req.Seed)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	estimates := make([]float64, 0, replicates)
	for r := 0; r < replicates; r++ {
		replicate := req
		replicate.Seed = 1 + seedStream.Int63()

		result, err := s.estimator.EstimatePower(ctx, replicate, trial)
		if err != nil {
			return nil, fmt.Errorf("replicate %d: %w", r, err)
		}
		row, ok := result.Table.Row(size)
		if !ok {
			return nil, fmt.Errorf("replicate %d produced no row at sample size %d", r, size)
		}
		estimates = append(estimates, row.Power[0])
	}

	mean, err := stats.Mean(estimates)
	if err != nil {
		return nil, err
	}
	sd, err := stats.StandardDeviationSample(estimates)
	if err != nil {
		return nil, err
	}

	s.logger.Info("MCE at n=%d: %d replicates of %d iterations, sd=%.4f in %dms",
		size, replicates, req.Iterations, sd, time.Since(started).Milliseconds())
	return &MCEReport{
		SampleSize:  size,
		Iterations:  req.Iterations,
		Replicates:  replicates,
		Estimates:   estimates,
		Mean:        mean,
		SD:          sd,
		Theoretical: TheoreticalMCE(mean, req.Iterations),
	}, nil
}

// TheoreticalMCE is the binomial standard error of a power estimate:
// sqrt(p(1-p)/iterations)
func TheoreticalMCE(p float64, iterations int) float64 {
	if iterations <= 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	return math.Sqrt(p * (1 - p) / float64(iterations))
}

// IterationsFor returns the iteration count needed to bring the binomial
// standard error at power p under tolerance
func IterationsFor(p, tolerance float64) (int, error) {
	if tolerance <= 0 {
		return 0, fmt.Errorf("%w: tolerance must be positive", core.ErrInvalidParameters)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: power must be in [0, 1]", core.ErrInvalidParameters)
	}
	return int(math.Ceil(p * (1 - p) / (tolerance * tolerance))), nil
}
