package backtest

import (
	"errors"
	"log"
	"sort"

	"KimchiGold/internal/journal"
)

// SweepResult is one tested symmetric threshold and its outcome.
type SweepResult struct {
	Threshold  float64
	FinalValue float64
	ReturnRate float64
	Trades     int
}

// Sweep backtests symmetric thresholds (buy at -t, sell at +t) for every t
// in [min, max] stepped by step, and returns results sorted by return rate
// descending. Thresholds whose run fails are logged and skipped.
func Sweep(records []journal.Record, base Params, min, max, step float64) ([]SweepResult, error) {
	if step <= 0 {
		return nil, errors.New("sweep step must be positive")
	}
	if min <= 0 || max < min {
		return nil, errors.New("sweep range must satisfy 0 < min <= max")
	}

	var results []SweepResult
	for t := min; t <= max+step/2; t += step {
		p := base
		p.BuyThreshold = -t
		p.SellThreshold = t

		res, err := Run(records, p)
		if err != nil {
			log.Printf("[WARN] sweep threshold ±%.1f%%: %v", t, err)
			continue
		}
		results = append(results, SweepResult{
			Threshold:  t,
			FinalValue: res.FinalValue,
			ReturnRate: res.ReturnRate,
			Trades:     len(res.Trades),
		})
	}
	if len(results) == 0 {
		return nil, errors.New("no threshold produced a result")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ReturnRate > results[j].ReturnRate
	})
	return results, nil
}
