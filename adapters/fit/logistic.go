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

const (
	defaultMaxIterations = 50
	defaultTolerance     = 1e-8
	// Linear predictors beyond this magnitude mean the weights underflow
	// and the fit is effectively separated
	maxLinearPredictor = 30.0
)

// LogisticIRLS fits a logistic regression by iteratively reweighted least
// squares. Non-convergence and separation surface as fit failures, never as
// a usable-looking p-value.
type LogisticIRLS struct {
	ResponseKey   dataset.ColumnKey
	PredictorKeys []dataset.ColumnKey
	MaxIterations int
	Tolerance     float64
}

// NewLogisticIRLS creates a logistic fitter reading the given columns
func NewLogisticIRLS(responseKey dataset.ColumnKey, predictorKeys ...dataset.ColumnKey) *LogisticIRLS {
	return &LogisticIRLS{
		ResponseKey:   responseKey,
		PredictorKeys: predictorKeys,
		MaxIterations: defaultMaxIterations,
		Tolerance:     defaultTolerance,
	}
}

// Name returns the fitter name
func (l *LogisticIRLS) Name() string { return "logistic_irls" }

// Fit runs IRLS and reports per-coefficient Wald z p-values
func (l *LogisticIRLS) Fit(ctx context.Context, data *dataset.Table) (ports.FitResult, error) {
	n := data.RowCount()
	p := len(l.PredictorKeys) + 1
	if n <= p {
		return nil, core.NewFitError(l.Name(), n,
			fmt.Errorf("%w: %d rows for %d coefficients", core.ErrInsufficientData, n, p))
	}

	y, ok := data.Column(l.ResponseKey)
	if !ok {
		return nil, core.NewFitError(l.Name(), n,
			fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, l.ResponseKey))
	}
	ones, zeros := 0, 0
	for _, v := range y {
		if v == 0 {
			zeros++
		} else {
			ones++
		}
	}
	if ones == 0 || zeros == 0 {
		return nil, core.NewFitError(l.Name(), n,
			fmt.Errorf("%w: response is constant", core.ErrSingularDesign))
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, key := range l.PredictorKeys {
		col, ok := data.Column(key)
		if !ok {
			return nil, core.NewFitError(l.Name(), n,
				fmt.Errorf("%w: missing column %s", core.ErrInsufficientData, key))
		}
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}

	beta := make([]float64, p)
	eta := make([]float64, n)
	mu := make([]float64, n)
	wz := make([]float64, n)

	var info mat.Dense // X' W X of the final iteration
	converged := false

	for iter := 0; iter < l.maxIterations(); iter++ {
		select {
		case <-ctx.Done():
			return nil, core.NewFitError(l.Name(), n, ctx.Err())
		default:
		}

		// Working response z = eta + (y - mu)/w with weights w = mu(1-mu)
		w := mat.NewDiagDense(n, nil)
		for i := 0; i < n; i++ {
			e := 0.0
			for j := 0; j < p; j++ {
				e += x.At(i, j) * beta[j]
			}
			if math.Abs(e) > maxLinearPredictor {
				return nil, core.NewFitError(l.Name(), n,
					fmt.Errorf("%w: linear predictor diverged (separation)", core.ErrNonConvergence))
			}
			eta[i] = e
			mu[i] = 1.0 / (1.0 + math.Exp(-e))
			weight := mu[i] * (1 - mu[i])
			w.SetDiag(i, weight)
			wz[i] = weight*e + (y[i] - mu[i])
		}

		// Solve (X' W X) beta = X' (W z)
		var xtw mat.Dense
		xtw.Mul(x.T(), w)
		info.Mul(&xtw, x)

		var rhs mat.VecDense
		rhs.MulVec(x.T(), mat.NewVecDense(n, wz))

		var next mat.VecDense
		if err := next.SolveVec(&info, &rhs); err != nil {
			return nil, core.NewFitError(l.Name(), n,
				fmt.Errorf("%w: %v", core.ErrSingularDesign, err))
		}

		delta := 0.0
		for j := 0; j < p; j++ {
			delta += math.Abs(next.AtVec(j) - beta[j])
			beta[j] = next.AtVec(j)
		}
		if delta < l.tolerance() {
			converged = true
			break
		}
	}
	if !converged {
		return nil, core.NewFitError(l.Name(), n,
			fmt.Errorf("%w: IRLS did not converge in %d iterations", core.ErrNonConvergence, l.maxIterations()))
	}

	var cov mat.Dense
	if err := cov.Inverse(&info); err != nil {
		return nil, core.NewFitError(l.Name(), n,
			fmt.Errorf("%w: %v", core.ErrSingularDesign, err))
	}

	result := NewCoefficients(0) // Wald z inference
	names := append([]dataset.ColumnKey{CoefIntercept}, l.PredictorKeys...)
	for j, name := range names {
		se := math.Sqrt(cov.At(j, j))
		pValue := 1.0
		if se > 0 {
			pValue = ZTestPValue(beta[j] / se)
		}
		result.Add(string(name), beta[j], se, pValue)
	}
	return result, nil
}

func (l *LogisticIRLS) maxIterations() int {
	if l.MaxIterations > 0 {
		return l.MaxIterations
	}
	return defaultMaxIterations
}

func (l *LogisticIRLS) tolerance() float64 {
	if l.Tolerance > 0 {
		return l.Tolerance
	}
	return defaultTolerance
}
