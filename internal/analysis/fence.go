package analysis

import (
	"errors"
	"sort"
)

// Bounds is a Tukey fence: values below Lower or above Upper are outliers.
type Bounds struct {
	Lower float64
	Upper float64
}

// Percentile computes the p-th percentile (0 <= p <= 1) of the sample using
// linear interpolation between order statistics. The input is not modified.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("empty sample")
	}
	if p < 0 || p > 1 {
		return 0, errors.New("percentile must be in [0, 1]")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	if lo == len(sorted)-1 {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// Fence computes the interquartile-range outlier boundaries
// [Q1 - multiplier*IQR, Q3 + multiplier*IQR] for the sample.
// Quantiles do not depend on input order, so the result is deterministic
// for any permutation of the same values. Requires a non-empty sample;
// a single-value sample collapses to Lower == Upper == that value.
func Fence(values []float64, multiplier float64) (Bounds, error) {
	q1, err := Percentile(values, 0.25)
	if err != nil {
		return Bounds{}, err
	}
	q3, err := Percentile(values, 0.75)
	if err != nil {
		return Bounds{}, err
	}
	iqr := q3 - q1
	return Bounds{
		Lower: q1 - multiplier*iqr,
		Upper: q3 + multiplier*iqr,
	}, nil
}
