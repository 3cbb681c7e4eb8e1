package fit

import (
	"math"
)

// coefficient holds one named estimate with its standard error and p-value
type coefficient struct {
	estimate float64
	se       float64
	pValue   float64
}

// Coefficients implements ports.FitResult for fitters that report named
// coefficient estimates with t- or z-based inference
type Coefficients struct {
	coefs map[string]coefficient
	names []string
	df    float64 // 0 means Wald z inference
}

// NewCoefficients creates an empty result; df <= 0 selects normal-based
// interval widths
func NewCoefficients(df float64) *Coefficients {
	return &Coefficients{coefs: make(map[string]coefficient), df: df}
}

// Add records one coefficient
func (c *Coefficients) Add(name string, estimate, se, pValue float64) {
	if _, exists := c.coefs[name]; !exists {
		c.names = append(c.names, name)
	}
	c.coefs[name] = coefficient{estimate: estimate, se: se, pValue: pValue}
}

// Names returns the coefficient names in insertion order
func (c *Coefficients) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// PValue returns the p-value for a named coefficient
func (c *Coefficients) PValue(name string) (float64, bool) {
	coef, ok := c.coefs[name]
	if !ok {
		return math.NaN(), false
	}
	return coef.pValue, true
}

// Estimate returns the point estimate for a named coefficient
func (c *Coefficients) Estimate(name string) (float64, bool) {
	coef, ok := c.coefs[name]
	if !ok {
		return math.NaN(), false
	}
	return coef.estimate, true
}

// IntervalWidth returns the full confidence-interval width at the given level
func (c *Coefficients) IntervalWidth(name string, level float64) (float64, bool) {
	coef, ok := c.coefs[name]
	if !ok {
		return math.NaN(), false
	}
	crit := NormalQuantile(1 - (1-level)/2)
	if c.df > 0 {
		crit = TCritical(c.df, level)
	}
	return 2 * crit * coef.se, true
}
