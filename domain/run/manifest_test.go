package run

import (
	"testing"

	"gopower/domain/core"
	"gopower/domain/power"
)

func baseRequest() power.SweepRequest {
	return power.SweepRequest{
		SampleSizes: []int{100, 120, 140},
		Iterations:  1000,
		Criterion:   power.MaxPValue(0.005),
	}
}

func TestManifest_FingerprintDeterministic(t *testing.T) {
	// Golden test - same inputs produce identical fingerprints
	req := baseRequest()

	m1 := NewManifest(core.RunID("run-a"), req, 42, 4, "v0.1.0")
	m2 := NewManifest(core.RunID("run-b"), req, 42, 4, "v0.1.0")

	if m1.Fingerprint != m2.Fingerprint {
		t.Errorf("fingerprints not identical: %s vs %s", m1.Fingerprint, m2.Fingerprint)
	}
	if m1.Seed != 42 {
		t.Errorf("seed = %d, want 42", m1.Seed)
	}
	if m1.Criterion != "p < 0.005" {
		t.Errorf("criterion = %q", m1.Criterion)
	}
	if m1.Policy != power.PolicyExcludeAndCount {
		t.Errorf("policy = %q, want default exclude-and-count", m1.Policy)
	}
}

func TestManifest_FingerprintIgnoresParallelism(t *testing.T) {
	// Worker count changes scheduling, never results, so it stays out of
	// the determinism surface.
	req := baseRequest()
	m1 := NewManifest(core.RunID("r"), req, 42, 1, "v0.1.0")
	m4 := NewManifest(core.RunID("r"), req, 42, 4, "v0.1.0")

	if m1.Fingerprint != m4.Fingerprint {
		t.Error("fingerprint must not depend on worker count")
	}
}

func TestManifest_FingerprintUnique(t *testing.T) {
	req := baseRequest()
	base := NewManifest(core.RunID("r"), req, 42, 1, "v0.1.0")

	otherSeed := NewManifest(core.RunID("r"), req, 43, 1, "v0.1.0")
	if base.Fingerprint == otherSeed.Fingerprint {
		t.Error("different seeds should change the fingerprint")
	}

	moreIters := req
	moreIters.Iterations = 2000
	otherIters := NewManifest(core.RunID("r"), moreIters, 42, 1, "v0.1.0")
	if base.Fingerprint == otherIters.Fingerprint {
		t.Error("different iteration counts should change the fingerprint")
	}

	otherAlpha := req
	otherAlpha.Criterion = power.MaxPValue(0.05)
	otherCrit := NewManifest(core.RunID("r"), otherAlpha, 42, 1, "v0.1.0")
	if base.Fingerprint == otherCrit.Fingerprint {
		t.Error("different criteria should change the fingerprint")
	}
}
