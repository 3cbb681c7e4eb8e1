package fit

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"gopower/domain/core"
	"gopower/domain/dataset"
	"gopower/ports"
)

// CoefGroupDiff names the mean-difference coefficient reported by Welch
const CoefGroupDiff = "group_diff"

// Welch fits a two-sample mean comparison with unequal variances
// (Welch's t-test) to a data set with a binary group column
type Welch struct {
	GroupKey    dataset.ColumnKey
	ResponseKey dataset.ColumnKey
}

// NewWelch creates a Welch fitter reading the given columns
func NewWelch(groupKey, responseKey dataset.ColumnKey) *Welch {
	return &Welch{GroupKey: groupKey, ResponseKey: responseKey}
}

// Name returns the fitter name
func (w *Welch) Name() string { return "welch_ttest" }

// Fit computes the Welch t-statistic for the group mean difference with
// Welch-Satterthwaite degrees of freedom and an exact t p-value
func (w *Welch) Fit(ctx context.Context, data *dataset.Table) (ports.FitResult, error) {
	group, ok := data.Column(w.GroupKey)
	if !ok {
		return nil, core.NewFitError(w.Name(), data.RowCount(),
			fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, w.GroupKey))
	}
	response, ok := data.Column(w.ResponseKey)
	if !ok {
		return nil, core.NewFitError(w.Name(), data.RowCount(),
			fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, w.ResponseKey))
	}

	var a, b []float64
	for i, g := range group {
		if g == 0 {
			a = append(a, response[i])
		} else {
			b = append(b, response[i])
		}
	}
	if len(a) < 2 || len(b) < 2 {
		return nil, core.NewFitError(w.Name(), data.RowCount(),
			fmt.Errorf("%w: need at least 2 observations per group, got (%d, %d)",
				core.ErrInsufficientData, len(a), len(b)))
	}

	meanA, _ := stats.Mean(a)
	meanB, _ := stats.Mean(b)
	varA, _ := stats.SampleVariance(a)
	varB, _ := stats.SampleVariance(b)

	nA := float64(len(a))
	nB := float64(len(b))
	seSq := varA/nA + varB/nB
	if seSq <= 0 || math.IsNaN(seSq) {
		return nil, core.NewFitError(w.Name(), data.RowCount(),
			fmt.Errorf("%w: zero variance in both groups", core.ErrSingularDesign))
	}
	se := math.Sqrt(seSq)
	diff := meanB - meanA
	tStat := diff / se

	// Welch-Satterthwaite degrees of freedom
	df := seSq * seSq / (math.Pow(varA/nA, 2)/(nA-1) + math.Pow(varB/nB, 2)/(nB-1))

	result := NewCoefficients(df)
	result.Add(CoefGroupDiff, diff, se, TTestPValue(tStat, df))
	return result, nil
}
