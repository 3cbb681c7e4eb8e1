package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/domain/power"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GOPOWER_WORKERS", "GOPOWER_ITERATIONS", "GOPOWER_ALPHA", "GOPOWER_BUDGET_MS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Iterations)
	assert.Equal(t, 0.005, cfg.Alpha)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, time.Duration(0), cfg.Budget)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOPOWER_WORKERS", "4")
	t.Setenv("GOPOWER_ITERATIONS", "250")
	t.Setenv("GOPOWER_ALPHA", "0.01")
	t.Setenv("GOPOWER_BUDGET_MS", "1500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 250, cfg.Iterations)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.Equal(t, 1500*time.Millisecond, cfg.Budget)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("GOPOWER_ALPHA", "1.5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnparseable(t *testing.T) {
	t.Setenv("GOPOWER_ITERATIONS", "many")
	_, err := Load()
	assert.Error(t, err)
}

func TestParseStudy(t *testing.T) {
	raw := []byte(`
name: pilot-two-group
sample_sizes: [100, 150, 200]
iterations: 2000
alpha: 0.005
seed: 42
policy: exclude_and_count
`)
	study, err := ParseStudy(raw)
	require.NoError(t, err)

	assert.Equal(t, "pilot-two-group", study.Name)
	assert.Equal(t, []int{100, 150, 200}, study.SampleSizes)
	assert.Equal(t, 2000, study.Iterations)
	assert.Equal(t, int64(42), study.Seed)

	req, err := study.SweepRequest(nil)
	require.NoError(t, err)
	require.NoError(t, req.Validate())
	assert.Equal(t, power.CriterionPValueBelow, req.Criterion.Kind)
	assert.Equal(t, 0.005, req.Criterion.Threshold)
	assert.Equal(t, power.PolicyExcludeAndCount, req.EffectivePolicy())
}

func TestParseStudy_NeedsName(t *testing.T) {
	_, err := ParseStudy([]byte(`sample_sizes: [10]`))
	assert.Error(t, err)
}

func TestStudy_FillsGapsFromConfig(t *testing.T) {
	study := &Study{Name: "minimal", SampleSizes: []int{50}}
	cfg := &Config{Iterations: 800, Alpha: 0.05, Workers: 2, Budget: time.Second}

	req, err := study.SweepRequest(cfg)
	require.NoError(t, err)

	assert.Equal(t, 800, req.Iterations)
	assert.Equal(t, 2, req.Workers)
	assert.Equal(t, time.Second, req.Budget)
	assert.Equal(t, 0.05, req.Criterion.Threshold)
}

func TestStudy_OwnValuesWin(t *testing.T) {
	study := &Study{Name: "explicit", SampleSizes: []int{50}, Iterations: 100, Alpha: 0.01}
	cfg := &Config{Iterations: 800, Alpha: 0.05}

	req, err := study.SweepRequest(cfg)
	require.NoError(t, err)

	assert.Equal(t, 100, req.Iterations)
	assert.Equal(t, 0.01, req.Criterion.Threshold)
}
