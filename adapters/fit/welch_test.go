package fit

import (
	"context"
	"math"
	"testing"

	"gopower/domain/core"
	"gopower/domain/dataset"
)

func twoGroupTable(t *testing.T, a, b []float64) *dataset.Table {
	t.Helper()
	n := len(a) + len(b)
	group := make([]float64, 0, n)
	response := make([]float64, 0, n)
	for _, v := range a {
		group = append(group, 0)
		response = append(response, v)
	}
	for _, v := range b {
		group = append(group, 1)
		response = append(response, v)
	}
	tbl := dataset.NewTable(n)
	if err := tbl.AddColumn("group", group); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if err := tbl.AddColumn("response", response); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	return tbl
}

func TestWelch_GoldStandard(t *testing.T) {
	// Hand-checked case: equal variances 2.5, mean difference 2,
	// se = 1, t = 2, df = 8 -> two-tailed p ~ 0.0805
	tbl := twoGroupTable(t, []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5, 6, 7})

	result, err := NewWelch("group", "response").Fit(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	p, ok := result.PValue(CoefGroupDiff)
	if !ok {
		t.Fatal("expected group_diff p-value")
	}
	if math.Abs(p-0.0805) > 0.002 {
		t.Errorf("p = %f, want ~0.0805", p)
	}

	est, _ := result.Estimate(CoefGroupDiff)
	if math.Abs(est-2) > 1e-9 {
		t.Errorf("estimate = %f, want 2", est)
	}

	// t-critical at df=8, 95%: 2.306 -> width = 2 * 2.306 * 1
	width, ok := result.IntervalWidth(CoefGroupDiff, 0.95)
	if !ok {
		t.Fatal("expected interval width")
	}
	if math.Abs(width-4.612) > 0.01 {
		t.Errorf("width = %f, want ~4.612", width)
	}
}

func TestWelch_NoDifference(t *testing.T) {
	tbl := twoGroupTable(t, []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})

	result, err := NewWelch("group", "response").Fit(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	p, _ := result.PValue(CoefGroupDiff)
	if math.Abs(p-1.0) > 1e-9 {
		t.Errorf("identical groups should give p = 1, got %f", p)
	}
}

func TestWelch_TooFewPerGroup(t *testing.T) {
	tbl := twoGroupTable(t, []float64{1}, []float64{2, 3, 4})

	_, err := NewWelch("group", "response").Fit(context.Background(), tbl)
	if err == nil {
		t.Fatal("expected fit failure for a one-observation group")
	}
	if !core.IsFitFailure(err) {
		t.Errorf("error should classify as fit failure, got %v", err)
	}
}

func TestWelch_ZeroVariance(t *testing.T) {
	tbl := twoGroupTable(t, []float64{5, 5, 5}, []float64{5, 5, 5})

	_, err := NewWelch("group", "response").Fit(context.Background(), tbl)
	if err == nil {
		t.Fatal("expected fit failure for zero variance in both groups")
	}
	if !core.IsFitFailure(err) {
		t.Errorf("error should classify as fit failure, got %v", err)
	}
}

func TestWelch_MissingColumn(t *testing.T) {
	tbl := dataset.NewTable(0)
	_, err := NewWelch("group", "response").Fit(context.Background(), tbl)
	if !core.IsFitFailure(err) {
		t.Errorf("missing columns should be a fit failure, got %v", err)
	}
}

func TestAnalyticTwoSamplePower_KnownValues(t *testing.T) {
	// d from the pilot design: |23-17| / sqrt(117)
	d := 6.0 / math.Sqrt(117)

	atN100 := AnalyticTwoSamplePower(d, 0.005, 100)
	if math.Abs(atN100-0.487) > 0.02 {
		t.Errorf("power at n=100 = %f, want ~0.487", atN100)
	}

	atN173 := AnalyticTwoSamplePower(d, 0.005, 173)
	if math.Abs(atN173-0.80) > 0.02 {
		t.Errorf("power at n=173 = %f, want ~0.80", atN173)
	}
}

func TestAnalyticTwoSamplePower_Monotone(t *testing.T) {
	d := 0.4
	prev := 0.0
	for n := 20; n <= 400; n += 20 {
		p := AnalyticTwoSamplePower(d, 0.005, n)
		if p < 0 || p > 1 {
			t.Fatalf("power out of range at n=%d: %f", n, p)
		}
		if p < prev {
			t.Fatalf("power decreased at n=%d: %f < %f", n, p, prev)
		}
		prev = p
	}
}

func TestTTestPValue_LargeDFMatchesNormal(t *testing.T) {
	p := TTestPValue(1.96, 1e6)
	if math.Abs(p-0.05) > 0.001 {
		t.Errorf("p = %f, want ~0.05", p)
	}
	if TTestPValue(0, 10) != 1 {
		t.Error("t = 0 should give p = 1")
	}
}
