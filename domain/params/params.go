// Package params defines the population parameter bundles the generative
// models are driven by. A bundle is immutable caller-supplied configuration,
// typically estimated from pilot data; it is validated once, before any
// trial is dispatched.
package params

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"gopower/domain/core"
)

// Predictor describes one normally distributed predictor variable
type Predictor struct {
	Name string  `yaml:"name"`
	Mean float64 `yaml:"mean"`
	SD   float64 `yaml:"sd"`
}

// TwoGroup parameterizes a two-group mean-difference design
type TwoGroup struct {
	MeanA    float64 `yaml:"mean_a"`
	MeanB    float64 `yaml:"mean_b"`
	Variance float64 `yaml:"variance"` // common within-group variance
	ShareA   float64 `yaml:"share_a"`  // fraction of units assigned to group A
}

// Validate checks the bundle before any simulation work starts
func (p TwoGroup) Validate() error {
	if !finite(p.MeanA, p.MeanB, p.Variance, p.ShareA) {
		return core.NewValidationError("two_group", "all values must be finite")
	}
	if p.Variance <= 0 {
		return core.NewValidationError("variance", "must be positive")
	}
	if p.ShareA <= 0 || p.ShareA >= 1 {
		return core.NewValidationError("share_a", "must lie strictly between 0 and 1")
	}
	return nil
}

// EffectSize returns the standardized mean difference (Cohen's d)
func (p TwoGroup) EffectSize() float64 {
	return math.Abs(p.MeanA-p.MeanB) / math.Sqrt(p.Variance)
}

// Linear parameterizes a linear model y = intercept + slopes.x + N(0, errorSD)
type Linear struct {
	Intercept  float64     `yaml:"intercept"`
	Slopes     []float64   `yaml:"slopes"`
	ErrorSD    float64     `yaml:"error_sd"`
	Predictors []Predictor `yaml:"predictors"`
}

// Validate checks the bundle before any simulation work starts
func (p Linear) Validate() error {
	if len(p.Slopes) == 0 {
		return core.NewValidationError("slopes", "at least one slope is required")
	}
	if len(p.Slopes) != len(p.Predictors) {
		return core.NewValidationError("predictors", "must match slopes one-to-one")
	}
	if !finite(p.Intercept, p.ErrorSD) || !finite(p.Slopes...) {
		return core.NewValidationError("linear", "all values must be finite")
	}
	if p.ErrorSD <= 0 {
		return core.NewValidationError("error_sd", "must be positive")
	}
	for _, pr := range p.Predictors {
		if pr.Name == "" {
			return core.NewValidationError("predictors", "predictor name cannot be empty")
		}
		if !finite(pr.Mean, pr.SD) || pr.SD <= 0 {
			return core.NewValidationError("predictors", "predictor SD must be positive and finite")
		}
	}
	return nil
}

// Logistic parameterizes a logistic regression generative model on the logit scale
type Logistic struct {
	Intercept  float64     `yaml:"intercept"`
	Slopes     []float64   `yaml:"slopes"`
	Predictors []Predictor `yaml:"predictors"`
}

// Validate checks the bundle before any simulation work starts
func (p Logistic) Validate() error {
	if len(p.Slopes) == 0 {
		return core.NewValidationError("slopes", "at least one slope is required")
	}
	if len(p.Slopes) != len(p.Predictors) {
		return core.NewValidationError("predictors", "must match slopes one-to-one")
	}
	if !finite(p.Intercept) || !finite(p.Slopes...) {
		return core.NewValidationError("logistic", "all values must be finite")
	}
	for _, pr := range p.Predictors {
		if pr.Name == "" {
			return core.NewValidationError("predictors", "predictor name cannot be empty")
		}
		if !finite(pr.Mean, pr.SD) || pr.SD <= 0 {
			return core.NewValidationError("predictors", "predictor SD must be positive and finite")
		}
	}
	return nil
}

// MVNormal parameterizes draws from a multivariate normal distribution
type MVNormal struct {
	Names      []string    `yaml:"names"` // optional column names, defaults to v1..vk
	Mean       []float64   `yaml:"mean"`
	Covariance [][]float64 `yaml:"covariance"`
}

// Validate checks dimensions and positive definiteness of the covariance matrix
func (p MVNormal) Validate() error {
	k := len(p.Mean)
	if k == 0 {
		return core.NewValidationError("mean", "mean vector cannot be empty")
	}
	if !finite(p.Mean...) {
		return core.NewValidationError("mean", "all values must be finite")
	}
	if len(p.Names) != 0 && len(p.Names) != k {
		return core.NewValidationError("names", "must match the mean vector dimension")
	}
	if len(p.Covariance) != k {
		return core.NewValidationError("covariance", "must be square with the mean vector dimension")
	}
	for i, row := range p.Covariance {
		if len(row) != k {
			return core.NewValidationError("covariance", "must be square with the mean vector dimension")
		}
		if !finite(row...) {
			return core.NewValidationError("covariance", "all values must be finite")
		}
		for j := 0; j < i; j++ {
			if row[j] != p.Covariance[j][i] {
				return core.NewValidationError("covariance", "must be symmetric")
			}
		}
	}
	if _, err := p.Cholesky(); err != nil {
		return err
	}
	return nil
}

// Cholesky returns the lower-triangular factor of the covariance matrix.
// Failure means the matrix is not positive definite.
func (p MVNormal) Cholesky() (*mat.Cholesky, error) {
	k := len(p.Mean)
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, p.Covariance[i][j])
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, core.NewValidationError("covariance", "must be positive definite")
	}
	return &chol, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
