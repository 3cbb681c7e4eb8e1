package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint identifies the full determinism surface of a sweep
type Fingerprint Hash

// String returns the string representation
func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes the ordered determinism parameters of a run.
// Field order is fixed; two runs share a fingerprint iff they replay identically.
func ComputeFingerprint(seed int64, sampleSizes []int, iterations int, parts ...string) Fingerprint {
	var data strings.Builder
	fmt.Fprintf(&data, "seed=%d|iterations=%d|sizes=", seed, iterations)
	for _, n := range sampleSizes {
		fmt.Fprintf(&data, "%d,", n)
	}
	for _, p := range parts {
		data.WriteString("|")
		data.WriteString(p)
	}
	return Fingerprint(NewHash([]byte(data.String())))
}
