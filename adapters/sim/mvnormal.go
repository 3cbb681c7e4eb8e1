package sim

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"gopower/domain/dataset"
	"gopower/domain/params"
)

// MVNormalGenerator simulates draws from a multivariate normal distribution
// via the Cholesky factor of the covariance matrix, computed once at
// construction
type MVNormalGenerator struct {
	p     params.MVNormal
	lower *mat.TriDense
	names []dataset.ColumnKey
}

// NewMVNormalGenerator validates the bundle (including positive
// definiteness) and builds a generator
func NewMVNormalGenerator(p params.MVNormal) (*MVNormalGenerator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	chol, err := p.Cholesky()
	if err != nil {
		return nil, err
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	names := make([]dataset.ColumnKey, len(p.Mean))
	for i := range names {
		if len(p.Names) > 0 {
			names[i] = dataset.ColumnKey(p.Names[i])
		} else {
			names[i] = dataset.ColumnKey(fmt.Sprintf("v%d", i+1))
		}
	}
	return &MVNormalGenerator{p: p, lower: &lower, names: names}, nil
}

// Name returns the generator name
func (g *MVNormalGenerator) Name() string { return "mvnormal" }

// Generate produces sampleSize rows, one column per dimension
func (g *MVNormalGenerator) Generate(sampleSize int, rng *rand.Rand) (*dataset.Table, error) {
	k := len(g.p.Mean)
	cols := make([][]float64, k)
	for j := range cols {
		cols[j] = make([]float64, sampleSize)
	}

	z := make([]float64, k)
	for i := 0; i < sampleSize; i++ {
		for j := range z {
			z[j] = rng.NormFloat64()
		}
		// x = mean + L z, exploiting the lower-triangular structure
		for row := 0; row < k; row++ {
			x := g.p.Mean[row]
			for col := 0; col <= row; col++ {
				x += g.lower.At(row, col) * z[col]
			}
			cols[row][i] = x
		}
	}

	table := dataset.NewTable(sampleSize)
	for j, name := range g.names {
		if err := table.AddColumn(name, cols[j]); err != nil {
			return nil, err
		}
	}
	return table, nil
}
