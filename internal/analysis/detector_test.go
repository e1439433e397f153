package analysis

import (
	"math/rand"
	"testing"
	"time"
)

// linearSeries builds n daily observations ending at end, one per day,
// with values rising linearly from start by step per day.
func linearSeries(end time.Time, n int, start, step float64) Series {
	series := make(Series, n)
	for i := 0; i < n; i++ {
		series[i] = Observation{
			Date:  end.AddDate(0, 0, -(n - 1 - i)),
			Value: start + float64(i)*step,
		}
	}
	return series
}

func TestEvaluate_TrendContinuationIsInlier(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := linearSeries(asOf, 365, 100, 1) // 100 .. 464

	v, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if v.Insufficient {
		t.Fatal("365 observations should not be insufficient")
	}
	if v.IsOutlier {
		t.Errorf("latest %.0f inside fence [%.2f, %.2f] should not be an outlier",
			v.LatestValue, v.Bounds.Lower, v.Bounds.Upper)
	}
	if v.LatestValue != 464 {
		t.Errorf("expected latest value 464, got %.2f", v.LatestValue)
	}
	if v.LatestValue > v.Bounds.Upper {
		t.Errorf("464 should sit below the upper fence %.2f", v.Bounds.Upper)
	}
}

func TestEvaluate_SpikedLatestIsOutlier(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := linearSeries(asOf, 365, 100, 1)
	series[len(series)-1].Value = 1000

	v, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsOutlier {
		t.Errorf("latest 1000 above fence [%.2f, %.2f] should be an outlier",
			v.Bounds.Lower, v.Bounds.Upper)
	}
	if v.LatestValue != 1000 {
		t.Errorf("expected latest value 1000, got %.2f", v.LatestValue)
	}
}

func TestEvaluate_InsufficientData(t *testing.T) {
	asOf := date(2025, 6, 30)
	tests := []struct {
		name string
		n    int
	}{
		{"empty series", 0},
		{"one observation", 1},
		{"three observations", 3},
	}
	for _, tt := range tests {
		v, err := NewDetector().Evaluate(linearSeries(asOf, tt.n, 1, 0.1), asOf)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if !v.Insufficient {
			t.Errorf("%s: expected insufficient flag", tt.name)
		}
		if v.IsOutlier {
			t.Errorf("%s: insufficient window must never report an outlier", tt.name)
		}
		if v.SampleSize != tt.n {
			t.Errorf("%s: expected sample size %d, got %d", tt.name, tt.n, v.SampleSize)
		}
	}
}

func TestEvaluate_HighOutlierAgainstCluster(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := Series{
		// Stale point outside the window, irrelevant to the fence.
		{Date: asOf.AddDate(0, 0, -400), Value: 50},
	}
	for i := 0; i < 10; i++ {
		series = append(series, Observation{
			Date:  asOf.AddDate(0, 0, -(20 - i)),
			Value: 1.0 + float64(i)*0.01,
		})
	}
	series = append(series, Observation{Date: asOf, Value: 5.0})

	v, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsOutlier {
		t.Errorf("5.0 against a 1.0-1.1 cluster should flag high, fence [%.3f, %.3f]",
			v.Bounds.Lower, v.Bounds.Upper)
	}
	if v.SampleSize != 11 {
		t.Errorf("stale point leaked into the window: sample size %d", v.SampleSize)
	}
}

func TestEvaluate_LowOutlierAgainstCluster(t *testing.T) {
	asOf := date(2025, 6, 30)
	var series Series
	for i := 0; i < 10; i++ {
		series = append(series, Observation{
			Date:  asOf.AddDate(0, 0, -(20 - i)),
			Value: 3.0 + float64(i)*0.01,
		})
	}
	series = append(series, Observation{Date: asOf, Value: 0.1})

	v, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsOutlier {
		t.Errorf("0.1 against a 3.0-3.1 cluster should flag low, fence [%.3f, %.3f]",
			v.Bounds.Lower, v.Bounds.Upper)
	}
	if v.LatestValue >= v.Bounds.Lower {
		t.Errorf("expected latest below the lower fence, got %.2f >= %.3f", v.LatestValue, v.Bounds.Lower)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := linearSeries(asOf, 200, 10, 0.5)

	first, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	// Shuffle the input; Evaluate sorts defensively, so the verdict must
	// not change, and the caller's slice must keep its shuffled order.
	rng := rand.New(rand.NewSource(1))
	shuffled := make(Series, len(series))
	copy(shuffled, series)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	snapshot := make(Series, len(shuffled))
	copy(snapshot, shuffled)

	second, err := NewDetector().Evaluate(shuffled, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("verdict changed with input order:\n  %+v\n  %+v", first, second)
	}
	for i := range shuffled {
		if shuffled[i] != snapshot[i] {
			t.Fatal("Evaluate mutated the caller's series")
		}
	}
}

func TestEvaluate_StaleLatestStillClassified(t *testing.T) {
	// Last in-window observation predates asOf; the permissive policy
	// classifies it anyway and reports its date.
	asOf := date(2025, 6, 30)
	lastDay := asOf.AddDate(0, 0, -10)
	series := linearSeries(lastDay, 30, 2.0, 0.01)

	v, err := NewDetector().Evaluate(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if v.Insufficient {
		t.Fatal("30 in-window observations should classify")
	}
	if !v.LatestDate.Equal(lastDay) {
		t.Errorf("expected latest date %s, got %s",
			lastDay.Format("2006-01-02"), v.LatestDate.Format("2006-01-02"))
	}
}

func TestEvaluate_ParameterValidation(t *testing.T) {
	series := linearSeries(date(2025, 6, 30), 10, 1, 1)

	d := NewDetector()
	d.LookbackDays = 0
	if _, err := d.Evaluate(series, date(2025, 6, 30)); err == nil {
		t.Error("expected error for non-positive lookback")
	}

	d = NewDetector()
	d.Multiplier = -1
	if _, err := d.Evaluate(series, date(2025, 6, 30)); err == nil {
		t.Error("expected error for negative multiplier")
	}
}

func TestIsOutlier_Wrapper(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := linearSeries(asOf, 365, 100, 1)
	series[len(series)-1].Value = 1000

	got, err := NewDetector().IsOutlier(series, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("expected true from boolean wrapper")
	}

	if got, err := NewDetector().IsOutlier(Series{}, asOf); err != nil || got {
		t.Errorf("empty series should report false without error, got %v, %v", got, err)
	}
}
