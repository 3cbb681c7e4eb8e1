package app

import (
	"context"
	"math"
	"testing"

	"gopower/adapters/fit"
	"gopower/adapters/sim"
	"gopower/domain/params"
	"gopower/domain/power"
	"gopower/internal/rng"
)

// pilotDesign is the two-group design used across the integration tests:
// means 17 and 23 with common variance 117, so d = 6/sqrt(117) ~ 0.55
var pilotDesign = params.TwoGroup{MeanA: 17, MeanB: 23, Variance: 117, ShareA: 0.5}

func pilotTrial(t *testing.T) power.TrialFunc {
	t.Helper()
	gen, err := sim.NewTwoGroupGenerator(pilotDesign)
	if err != nil {
		t.Fatalf("NewTwoGroupGenerator failed: %v", err)
	}
	runner, err := NewTrialRunner(gen, fit.NewWelch(sim.ColGroup, sim.ColResponse),
		Extraction{Coefficient: fit.CoefGroupDiff, Statistic: StatPValue})
	if err != nil {
		t.Fatalf("NewTrialRunner failed: %v", err)
	}
	return runner.Func()
}

func TestPilotDesign_PowerMatchesClosedForm(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}
	svc := newService(nil)

	req := power.SweepRequest{
		SampleSizes: []int{100},
		Iterations:  1500,
		Criterion:   power.MaxPValue(0.005),
		Seed:        2024,
		Workers:     4,
	}
	result, err := svc.EstimatePower(context.Background(), req, pilotTrial(t))
	if err != nil {
		t.Fatalf("EstimatePower failed: %v", err)
	}

	row, ok := result.Table.Row(100)
	if !ok {
		t.Fatal("expected a row at n=100")
	}
	want := fit.AnalyticTwoSamplePower(pilotDesign.EffectSize(), 0.005, 100)
	if math.Abs(row.Power[0]-want) > 0.07 {
		t.Errorf("empirical power %f vs analytic %f at n=100", row.Power[0], want)
	}
}

func TestPilotDesign_SweepCrossesTarget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}
	svc := newService(nil)

	req := power.SweepRequest{
		SampleSizes: []int{100, 140, 180, 220, 260, 300},
		Iterations:  800,
		Criterion:   power.MaxPValue(0.005),
		Seed:        2025,
		Workers:     4,
	}
	result, err := svc.EstimatePower(context.Background(), req, pilotTrial(t))
	if err != nil {
		t.Fatalf("EstimatePower failed: %v", err)
	}
	if result.Table.Len() != len(req.SampleSizes) {
		t.Fatalf("expected %d rows, got %d", len(req.SampleSizes), result.Table.Len())
	}

	crossing := 0
	for _, row := range result.Table.Rows() {
		if row.Power[0] >= 0.8 {
			crossing = row.SampleSize
			break
		}
	}
	if crossing < 140 || crossing > 260 {
		t.Errorf("0.8 power crossing at n=%d, want within [140, 260]", crossing)
	}

	// Monte Carlo noise allows small dips, never large ones
	rows := result.Table.Rows()
	for i := 1; i < len(rows); i++ {
		if rows[i].Power[0] < rows[i-1].Power[0]-0.08 {
			t.Errorf("power dropped from %f (n=%d) to %f (n=%d)",
				rows[i-1].Power[0], rows[i-1].SampleSize, rows[i].Power[0], rows[i].SampleSize)
		}
	}
}

func TestPilotDesign_ReproducibleAcrossWorkerCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}
	svc := NewPowerService(rng.New(), nil, nil, "test")

	base := power.SweepRequest{
		SampleSizes: []int{120},
		Iterations:  300,
		Criterion:   power.MaxPValue(0.005),
		Seed:        99,
	}
	serial := base
	serial.Workers = 1
	parallel := base
	parallel.Workers = 6

	one, err := svc.EstimatePower(context.Background(), serial, pilotTrial(t))
	if err != nil {
		t.Fatalf("serial run failed: %v", err)
	}
	six, err := svc.EstimatePower(context.Background(), parallel, pilotTrial(t))
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}
	if one.Table.Rows()[0].Power[0] != six.Table.Rows()[0].Power[0] {
		t.Errorf("full pipeline estimate depends on worker count: %f vs %f",
			one.Table.Rows()[0].Power[0], six.Table.Rows()[0].Power[0])
	}
}
