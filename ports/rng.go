package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic sweeps
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates the deterministic RNG stream for one logical trial.
	// The stream depends only on (runSeed, sampleSize, iteration), never on
	// worker scheduling, so parallel and sequential sweeps replay identically.
	TrialStream(ctx context.Context, runSeed int64, sampleSize, iteration int) (*rand.Rand, error)
}
