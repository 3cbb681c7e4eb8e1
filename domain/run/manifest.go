package run

import (
	"gopower/domain/core"
	"gopower/domain/power"
)

// Manifest is the complete specification of one sweep - the truth source
// for replay. Two runs with equal fingerprints produce identical tables.
type Manifest struct {
	RunID       core.RunID          `json:"run_id"`
	Seed        int64               `json:"seed"`
	SampleSizes []int               `json:"sample_sizes"`
	Iterations  int                 `json:"iterations"`
	Criterion   string              `json:"criterion"`
	Policy      power.FailurePolicy `json:"policy"`
	Workers     int                 `json:"workers"`
	CodeVersion string              `json:"code_version"`
	Fingerprint core.Fingerprint    `json:"fingerprint"`
	CreatedAt   core.Timestamp      `json:"created_at"`
}

// NewManifest creates a manifest for a validated sweep request. The seed
// must already be resolved: a manifest never records the "draw one for me"
// zero value, so replays are possible even for unseeded runs.
func NewManifest(runID core.RunID, req power.SweepRequest, seed int64, workers int, codeVersion string) *Manifest {
	fingerprint := core.ComputeFingerprint(
		seed,
		req.SampleSizes,
		req.Iterations,
		req.Criterion.Describe(),
		string(req.EffectivePolicy()),
		codeVersion,
	)

	return &Manifest{
		RunID:       runID,
		Seed:        seed,
		SampleSizes: req.SampleSizes,
		Iterations:  req.Iterations,
		Criterion:   req.Criterion.Describe(),
		Policy:      req.EffectivePolicy(),
		Workers:     workers,
		CodeVersion: codeVersion,
		Fingerprint: fingerprint,
		CreatedAt:   core.Now(),
	}
}
