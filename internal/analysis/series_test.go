package analysis

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow_Containment(t *testing.T) {
	asOf := date(2025, 6, 30)
	series := Series{
		{Date: date(2023, 1, 1), Value: 1},  // far outside
		{Date: date(2024, 6, 30), Value: 2}, // exactly lookback days back
		{Date: date(2024, 6, 29), Value: 3}, // one day too old
		{Date: date(2025, 1, 15), Value: 4},
		{Date: date(2025, 6, 30), Value: 5}, // asOf itself
		{Date: date(2025, 7, 1), Value: 6},  // future relative to asOf
	}
	window := series.Window(asOf, 365)

	if len(window) != 3 {
		t.Fatalf("expected 3 observations in window, got %d", len(window))
	}
	start := asOf.AddDate(0, 0, -365)
	for _, o := range window {
		if o.Date.Before(start) || o.Date.After(asOf) {
			t.Errorf("observation %s outside [%s, %s]",
				o.Date.Format("2006-01-02"), start.Format("2006-01-02"), asOf.Format("2006-01-02"))
		}
	}
	// Relative order preserved.
	if window[0].Value != 2 || window[1].Value != 4 || window[2].Value != 5 {
		t.Errorf("window order not preserved: %v", window.Values())
	}
}

func TestWindow_Empty(t *testing.T) {
	if got := (Series{}).Window(date(2025, 1, 1), 365); len(got) != 0 {
		t.Errorf("empty series should give empty window, got %d", len(got))
	}

	old := Series{{Date: date(2020, 1, 1), Value: 1}}
	if got := old.Window(date(2025, 1, 1), 30); len(got) != 0 {
		t.Errorf("series entirely outside window should be empty, got %d", len(got))
	}
}

func TestWindow_DayGranularity(t *testing.T) {
	// An evening asOf still admits a morning observation of the same day.
	asOf := time.Date(2025, 3, 10, 23, 15, 0, 0, time.UTC)
	series := Series{{Date: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Value: 1}}
	if got := series.Window(asOf, 365); len(got) != 1 {
		t.Errorf("same-day observation should be in window, got %d", len(got))
	}
}

func TestSort_StableAscending(t *testing.T) {
	series := Series{
		{Date: date(2025, 3, 3), Value: 3},
		{Date: date(2025, 3, 1), Value: 1},
		{Date: date(2025, 3, 2), Value: 2},
		{Date: date(2025, 3, 2), Value: 2.5}, // duplicate day keeps order
	}
	series.Sort()

	want := []float64{1, 2, 2.5, 3}
	for i, v := range series.Values() {
		if v != want[i] {
			t.Fatalf("expected order %v, got %v", want, series.Values())
		}
	}
}
