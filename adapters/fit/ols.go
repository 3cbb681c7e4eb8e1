package fit

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gopower/domain/core"
	"gopower/domain/dataset"
	"gopower/ports"
)

// CoefIntercept names the intercept coefficient of the regression fitters
const CoefIntercept = "intercept"

// OLS fits an ordinary least squares regression of the response on the
// configured predictor columns plus an intercept
type OLS struct {
	ResponseKey   dataset.ColumnKey
	PredictorKeys []dataset.ColumnKey
}

// NewOLS creates an OLS fitter reading the given columns
func NewOLS(responseKey dataset.ColumnKey, predictorKeys ...dataset.ColumnKey) *OLS {
	return &OLS{ResponseKey: responseKey, PredictorKeys: predictorKeys}
}

// Name returns the fitter name
func (o *OLS) Name() string { return "ols" }

// Fit solves the normal equations and reports per-coefficient estimates,
// standard errors and exact t p-values. A singular design is a fit failure.
func (o *OLS) Fit(ctx context.Context, data *dataset.Table) (ports.FitResult, error) {
	n := data.RowCount()
	p := len(o.PredictorKeys) + 1
	if n <= p {
		return nil, core.NewFitError(o.Name(), n,
			fmt.Errorf("%w: %d rows for %d coefficients", core.ErrInsufficientData, n, p))
	}

	y, ok := data.Column(o.ResponseKey)
	if !ok {
		return nil, core.NewFitError(o.Name(), n,
			fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, o.ResponseKey))
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, key := range o.PredictorKeys {
		col, ok := data.Column(key)
		if !ok {
			return nil, core.NewFitError(o.Name(), n,
				fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, key))
		}
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, core.NewFitError(o.Name(), n,
			fmt.Errorf("%w: %v", core.ErrSingularDesign, err))
	}

	yVec := mat.NewVecDense(n, y)
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)
	var beta mat.VecDense
	beta.MulVec(&inv, &xty)

	// Residual variance
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
	}
	df := float64(n - p)
	sigma2 := rss / df

	result := NewCoefficients(df)
	names := append([]dataset.ColumnKey{CoefIntercept}, o.PredictorKeys...)
	for j, name := range names {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		pValue := 1.0
		if se > 0 {
			pValue = TTestPValue(est/se, df)
		}
		result.Add(string(name), est, se, pValue)
	}
	return result, nil
}
