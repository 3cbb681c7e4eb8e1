package ports

import (
	"math/rand"

	"gopower/domain/dataset"
)

// GeneratorPort produces one simulated data set of exactly sampleSize rows
// from fixed population parameters. All randomness comes from the supplied
// rng; a generator holds no mutable state across calls, which is what keeps
// trials independent and the outer loop embarrassingly parallel.
type GeneratorPort interface {
	Name() string
	Generate(sampleSize int, rng *rand.Rand) (*dataset.Table, error)
}
