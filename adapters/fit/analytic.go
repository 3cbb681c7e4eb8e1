package fit

import (
	"math"
)

// AnalyticTwoSamplePower returns the closed-form power of a two-sided,
// equal-split two-sample mean comparison under a normal approximation.
// effectSize is the standardized mean difference (Cohen's d), totalN the
// combined sample size across both groups. Used as the benchmark the Monte
// Carlo estimate is checked against.
func AnalyticTwoSamplePower(effectSize, alpha float64, totalN int) float64 {
	if totalN < 4 || alpha <= 0 || alpha >= 1 {
		return math.NaN()
	}
	// Noncentrality for n/2 per group: d * sqrt(n/4)
	ncp := math.Abs(effectSize) * math.Sqrt(float64(totalN)/4.0)
	zCrit := NormalQuantile(1 - alpha/2)
	return 1 - NormalCDF(zCrit-ncp) + NormalCDF(-zCrit-ncp)
}
