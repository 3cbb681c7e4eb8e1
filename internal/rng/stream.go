// Package rng implements the seeded stream port. Sub-seeds are derived by
// hashing, never by advancing a shared generator, so the seed assigned to a
// logical trial is independent of execution order and worker count.
package rng

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Source derives deterministic random streams
type Source struct{}

// New creates a stream source
func New() *Source {
	return &Source{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (s *Source) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(deriveSeed(seed, []byte(name)))), nil
}

// TrialStream creates the RNG stream for one logical trial. The sub-seed is
// a pure function of (runSeed, sampleSize, iteration).
func (s *Source) TrialStream(ctx context.Context, runSeed int64, sampleSize, iteration int) (*rand.Rand, error) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(sampleSize))
	binary.BigEndian.PutUint64(buf[8:16], uint64(iteration))
	return rand.New(rand.NewSource(deriveSeed(runSeed, buf[:]))), nil
}

// deriveSeed hashes the base seed together with a context label into a
// fresh 63-bit seed
func deriveSeed(base int64, context []byte) int64 {
	h := sha256.New()
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(base))
	h.Write(seedBytes[:])
	h.Write(context)
	sum := h.Sum(nil)

	// Mask the sign bit rather than negating; -MinInt64 overflows
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}
