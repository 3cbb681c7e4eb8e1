// Package fit contains the fitting collaborators: each fits one designated
// model family to a simulated data set and exposes named coefficients with
// exact p-values and interval widths.
package fit

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestPValue computes the two-tailed p-value for a t-statistic using the
// Student's t-distribution
func TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
}

// TCritical returns the t quantile for a two-sided confidence level
// (e.g. level 0.95 yields the 97.5th percentile)
func TCritical(degreesOfFreedom, level float64) float64 {
	if degreesOfFreedom <= 0 || level <= 0 || level >= 1 {
		return math.NaN()
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return tDist.Quantile(1 - (1-level)/2)
}

// ZTestPValue computes the two-tailed p-value for a Wald z-statistic
func ZTestPValue(zStatistic float64) float64 {
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(zStatistic)))
}

// NormalCDF computes the cumulative distribution function of the standard normal
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal quantile (inverse CDF)
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
