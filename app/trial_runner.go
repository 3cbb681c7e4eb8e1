package app

import (
	"context"
	"fmt"
	"math/rand"

	"gopower/domain/power"
	"gopower/ports"
)

// StatisticKind selects which statistic an extraction pulls from a fit
type StatisticKind string

const (
	// StatPValue extracts the coefficient's p-value
	StatPValue StatisticKind = "p_value"
	// StatIntervalWidth extracts the coefficient's confidence-interval width
	StatIntervalWidth StatisticKind = "ci_width"
)

// Extraction names one statistic of interest in the fit result
type Extraction struct {
	Coefficient string
	Statistic   StatisticKind
	Level       float64 // confidence level for ci_width, e.g. 0.95
}

// Label returns the outcome component label for this extraction
func (e Extraction) Label() string {
	if e.Statistic == StatIntervalWidth {
		return fmt.Sprintf("%s_width", e.Coefficient)
	}
	return e.Coefficient
}

// TrialObserver is an optional diagnostic hook invoked after each completed
// trial. Inspection lives here, outside the trial contract, never as a mode
// flag inside it.
type TrialObserver func(sampleSize int, outcome power.Outcome)

// TrialRunner composes a generator and a fitter into the trial function the
// estimator drives: simulate a data set, fit the model, extract the
// configured statistics.
type TrialRunner struct {
	generator   ports.GeneratorPort
	fitter      ports.FitterPort
	extractions []Extraction
	observer    TrialObserver
}

// NewTrialRunner wires a generator and fitter to a set of extractions
func NewTrialRunner(generator ports.GeneratorPort, fitter ports.FitterPort, extractions ...Extraction) (*TrialRunner, error) {
	if generator == nil || fitter == nil {
		return nil, fmt.Errorf("trial runner needs a generator and a fitter")
	}
	if len(extractions) == 0 {
		return nil, fmt.Errorf("trial runner needs at least one extraction")
	}
	for _, e := range extractions {
		if e.Coefficient == "" {
			return nil, fmt.Errorf("extraction needs a coefficient name")
		}
		switch e.Statistic {
		case StatPValue:
		case StatIntervalWidth:
			if e.Level <= 0 || e.Level >= 1 {
				return nil, fmt.Errorf("ci_width extraction needs a level in (0, 1)")
			}
		default:
			return nil, fmt.Errorf("unknown statistic kind %q", e.Statistic)
		}
	}
	return &TrialRunner{generator: generator, fitter: fitter, extractions: extractions}, nil
}

// SetObserver installs the diagnostic hook
func (r *TrialRunner) SetObserver(obs TrialObserver) {
	r.observer = obs
}

// Func returns the power.TrialFunc the estimator dispatches
func (r *TrialRunner) Func() power.TrialFunc {
	return func(ctx context.Context, sampleSize int, rng *rand.Rand) (power.Outcome, error) {
		data, err := r.generator.Generate(sampleSize, rng)
		if err != nil {
			return power.Outcome{}, err
		}

		result, err := r.fitter.Fit(ctx, data)
		if err != nil {
			return power.Outcome{}, err
		}

		labels := make([]string, len(r.extractions))
		values := make([]float64, len(r.extractions))
		for i, e := range r.extractions {
			var v float64
			var ok bool
			switch e.Statistic {
			case StatIntervalWidth:
				v, ok = result.IntervalWidth(e.Coefficient, e.Level)
			default:
				v, ok = result.PValue(e.Coefficient)
			}
			if !ok {
				return power.Outcome{}, fmt.Errorf("fit result of %s has no coefficient %q",
					r.fitter.Name(), e.Coefficient)
			}
			labels[i] = e.Label()
			values[i] = v
		}

		outcome, err := power.NewOutcome(labels, values)
		if err != nil {
			return power.Outcome{}, err
		}
		if r.observer != nil {
			r.observer(sampleSize, outcome)
		}
		return outcome, nil
	}
}
