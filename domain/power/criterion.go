package power

import (
	"fmt"
	"math"

	"gopower/domain/core"
)

// CriterionKind selects which statistic the significance test applies to
type CriterionKind string

const (
	// CriterionPValueBelow counts a trial as a success when its p-value
	// falls strictly below the threshold (e.g. p < 0.005).
	CriterionPValueBelow CriterionKind = "p_value_below"
	// CriterionWidthBelow counts a trial as a success when its
	// confidence-interval width falls strictly below the threshold.
	CriterionWidthBelow CriterionKind = "width_below"
)

// Criterion is the fixed success predicate applied to every outcome
// component. It is configuration, not derived data: one criterion holds
// for the whole sweep.
type Criterion struct {
	Kind      CriterionKind
	Threshold float64
}

// MaxPValue builds a significance criterion p < alpha
func MaxPValue(alpha float64) Criterion {
	return Criterion{Kind: CriterionPValueBelow, Threshold: alpha}
}

// MaxWidth builds a precision criterion width < w
func MaxWidth(w float64) Criterion {
	return Criterion{Kind: CriterionWidthBelow, Threshold: w}
}

// Validate checks the criterion configuration
func (c Criterion) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive", core.ErrInvalidCriterion)
	}
	switch c.Kind {
	case CriterionPValueBelow:
		if c.Threshold > 1 {
			return fmt.Errorf("%w: p-value threshold cannot exceed 1", core.ErrInvalidCriterion)
		}
	case CriterionWidthBelow:
		if math.IsInf(c.Threshold, 0) {
			return fmt.Errorf("%w: width threshold must be finite", core.ErrInvalidCriterion)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", core.ErrInvalidCriterion, c.Kind)
	}
	return nil
}

// Met reports whether a single statistic satisfies the criterion
func (c Criterion) Met(value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	return value < c.Threshold
}

// Describe returns a stable human-readable form for manifests and logs
func (c Criterion) Describe() string {
	switch c.Kind {
	case CriterionPValueBelow:
		return fmt.Sprintf("p < %g", c.Threshold)
	case CriterionWidthBelow:
		return fmt.Sprintf("ci_width < %g", c.Threshold)
	default:
		return string(c.Kind)
	}
}
