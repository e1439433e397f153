package analysis

import (
	"sort"
	"time"
)

// Observation is one day's reading of a metric.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is a date-ordered sequence of observations for one metric.
// Gaps (holidays, failed collections) are expected; dates are normally
// unique but duplicates are tolerated.
type Series []Observation

// Sort orders the series ascending by date, in place. The sort is stable
// so same-day duplicates keep their relative order.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Values returns the observation values in series order.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, o := range s {
		vals[i] = o.Value
	}
	return vals
}

// Window returns the sub-series whose dates fall in [asOf-lookbackDays, asOf],
// both ends inclusive, preserving the original relative order. Dates are
// compared at day granularity, so an asOf of 15:04 on some day still admits
// that whole day. An empty series yields an empty window.
func (s Series) Window(asOf time.Time, lookbackDays int) Series {
	end := day(asOf)
	start := end.AddDate(0, 0, -lookbackDays)

	out := make(Series, 0, len(s))
	for _, o := range s {
		d := day(o.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// day truncates t to midnight UTC, keeping only the calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
