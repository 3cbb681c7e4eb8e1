package sim

import (
	"math/rand"

	"gopower/domain/dataset"
	"gopower/domain/params"
)

// ColY is the response column produced by the regression generators
const ColY dataset.ColumnKey = "y"

// LinearGenerator simulates y = intercept + slopes.x + N(0, errorSD) with
// independent normal predictors
type LinearGenerator struct {
	p params.Linear
}

// NewLinearGenerator validates the bundle and builds a generator
func NewLinearGenerator(p params.Linear) (*LinearGenerator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &LinearGenerator{p: p}, nil
}

// Name returns the generator name
func (g *LinearGenerator) Name() string { return "linear_model" }

// Generate produces sampleSize rows of predictors plus the response
func (g *LinearGenerator) Generate(sampleSize int, rng *rand.Rand) (*dataset.Table, error) {
	k := len(g.p.Predictors)
	xs := make([][]float64, k)
	for j := range xs {
		xs[j] = make([]float64, sampleSize)
	}
	y := make([]float64, sampleSize)

	for i := 0; i < sampleSize; i++ {
		eta := g.p.Intercept
		for j, pr := range g.p.Predictors {
			x := pr.Mean + pr.SD*rng.NormFloat64()
			xs[j][i] = x
			eta += g.p.Slopes[j] * x
		}
		y[i] = eta + g.p.ErrorSD*rng.NormFloat64()
	}

	table := dataset.NewTable(sampleSize)
	for j, pr := range g.p.Predictors {
		if err := table.AddColumn(dataset.ColumnKey(pr.Name), xs[j]); err != nil {
			return nil, err
		}
	}
	if err := table.AddColumn(ColY, y); err != nil {
		return nil, err
	}
	return table, nil
}
