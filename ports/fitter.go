package ports

import (
	"context"

	"gopower/domain/dataset"
)

// FitResult is the opaque output of a model fit. The trial extracts the
// statistics it was configured for; everything else stays behind this
// interface.
type FitResult interface {
	// PValue returns the p-value for a named coefficient
	PValue(coefficient string) (float64, bool)

	// IntervalWidth returns the confidence-interval width for a named
	// coefficient at the given level (e.g. 0.95)
	IntervalWidth(coefficient string, level float64) (float64, bool)

	// Estimate returns the point estimate for a named coefficient
	Estimate(coefficient string) (float64, bool)
}

// FitterPort fits one designated statistical model to a simulated data set.
// A fit that cannot produce a usable result returns an error wrapping
// core.ErrFitFailure; it never smuggles a sentinel statistic into FitResult.
type FitterPort interface {
	Name() string
	Fit(ctx context.Context, data *dataset.Table) (FitResult, error)
}
