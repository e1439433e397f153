package analysis

import (
	"fmt"
	"time"
)

// Default detector parameters. Quartile estimates are unstable below four
// observations, so smaller windows are reported as insufficient rather
// than classified.
const (
	DefaultLookbackDays = 365
	DefaultMultiplier   = 1.5
	DefaultMinSamples   = 4
)

// Detector classifies the latest observation of a series against the
// Tukey fence of its trailing window. The zero value is not usable;
// construct with NewDetector.
type Detector struct {
	LookbackDays int
	Multiplier   float64
	MinSamples   int
}

// NewDetector returns a Detector with the default parameters.
func NewDetector() Detector {
	return Detector{
		LookbackDays: DefaultLookbackDays,
		Multiplier:   DefaultMultiplier,
		MinSamples:   DefaultMinSamples,
	}
}

// Verdict is the result of one outlier evaluation. When Insufficient is
// set the window held fewer than MinSamples observations and IsOutlier is
// always false; callers that monitor pipeline health should treat the two
// flags separately.
type Verdict struct {
	IsOutlier    bool
	Insufficient bool
	LatestValue  float64
	LatestDate   time.Time
	Bounds       Bounds
	SampleSize   int
	AsOf         time.Time
}

func (v Verdict) String() string {
	if v.Insufficient {
		return fmt.Sprintf("insufficient data (%d observations in window)", v.SampleSize)
	}
	return fmt.Sprintf("latest %.2f on %s, bounds [%.2f, %.2f], outlier=%v",
		v.LatestValue, v.LatestDate.Format("2006-01-02"), v.Bounds.Lower, v.Bounds.Upper, v.IsOutlier)
}

// Evaluate classifies the chronologically last observation inside the
// trailing window ending at asOf. The input need not be sorted; Evaluate
// sorts a copy and never mutates the caller's series. The last in-window
// observation is classified even when its date precedes asOf.
//
// Same series, same asOf, same parameters always yield the same Verdict.
func (d Detector) Evaluate(series Series, asOf time.Time) (Verdict, error) {
	if d.LookbackDays <= 0 {
		return Verdict{}, fmt.Errorf("lookback days must be positive, got %d", d.LookbackDays)
	}
	if d.Multiplier < 0 {
		return Verdict{}, fmt.Errorf("multiplier must be non-negative, got %g", d.Multiplier)
	}

	ordered := make(Series, len(series))
	copy(ordered, series)
	ordered.Sort()

	window := ordered.Window(asOf, d.LookbackDays)
	if len(window) < d.MinSamples {
		return Verdict{Insufficient: true, SampleSize: len(window), AsOf: asOf}, nil
	}

	bounds, err := Fence(window.Values(), d.Multiplier)
	if err != nil {
		return Verdict{}, fmt.Errorf("fence over %d observations: %w", len(window), err)
	}

	latest := window[len(window)-1]
	return Verdict{
		IsOutlier:   latest.Value < bounds.Lower || latest.Value > bounds.Upper,
		LatestValue: latest.Value,
		LatestDate:  latest.Date,
		Bounds:      bounds,
		SampleSize:  len(window),
		AsOf:        asOf,
	}, nil
}

// IsOutlier is a boolean-only convenience wrapper around Evaluate for
// scripting contexts. Insufficient data reports false.
func (d Detector) IsOutlier(series Series, asOf time.Time) (bool, error) {
	v, err := d.Evaluate(series, asOf)
	if err != nil {
		return false, err
	}
	return v.IsOutlier, nil
}
