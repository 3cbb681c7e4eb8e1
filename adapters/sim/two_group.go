// Package sim contains the generative models. Each generator is constructed
// once from a validated parameter bundle and then produces one ephemeral
// data set per trial from the rng it is handed; generators keep no state
// between calls.
package sim

import (
	"math"
	"math/rand"

	"gopower/domain/dataset"
	"gopower/domain/params"
)

// Column keys shared by the generators
const (
	ColGroup    dataset.ColumnKey = "group"
	ColResponse dataset.ColumnKey = "response"
)

// TwoGroupGenerator simulates two groups of normal observations with a
// common variance, e.g. control vs intervention in a pilot-calibrated design
type TwoGroupGenerator struct {
	p  params.TwoGroup
	sd float64
}

// NewTwoGroupGenerator validates the bundle and builds a generator
func NewTwoGroupGenerator(p params.TwoGroup) (*TwoGroupGenerator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &TwoGroupGenerator{p: p, sd: math.Sqrt(p.Variance)}, nil
}

// Name returns the generator name
func (g *TwoGroupGenerator) Name() string { return "two_group_normal" }

// Generate produces sampleSize rows: a 0/1 group column (deterministic split
// by ShareA, group A first) and a normal response column
func (g *TwoGroupGenerator) Generate(sampleSize int, rng *rand.Rand) (*dataset.Table, error) {
	nA := int(math.Round(g.p.ShareA * float64(sampleSize)))
	if nA < 1 {
		nA = 1
	}
	if nA > sampleSize-1 {
		nA = sampleSize - 1
	}

	group := make([]float64, sampleSize)
	response := make([]float64, sampleSize)
	for i := 0; i < sampleSize; i++ {
		mean := g.p.MeanA
		if i >= nA {
			group[i] = 1
			mean = g.p.MeanB
		}
		response[i] = mean + g.sd*rng.NormFloat64()
	}

	table := dataset.NewTable(sampleSize)
	if err := table.AddColumn(ColGroup, group); err != nil {
		return nil, err
	}
	if err := table.AddColumn(ColResponse, response); err != nil {
		return nil, err
	}
	return table, nil
}
