package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"KimchiGold/internal/analysis"
	"KimchiGold/internal/journal"
	"KimchiGold/internal/model"
)

func main() {
	csvPath := flag.String("csv", "data/kimchi_gold_price_log.csv", "journal CSV path")
	column := flag.String("column", model.ColumnPremiumPercent, "journal column to analyze")
	lookback := flag.Int("lookback", analysis.DefaultLookbackDays, "lookback window in days")
	multiplier := flag.Float64("multiplier", analysis.DefaultMultiplier, "IQR fence multiplier")
	minSamples := flag.Int("min-samples", analysis.DefaultMinSamples, "minimum samples required")
	asOfStr := flag.String("as-of", "", "reference date (YYYY-MM-DD, default today)")
	boolOnly := flag.Bool("bool", false, "print only True or False")
	flag.Parse()

	asOf := time.Now()
	if *asOfStr != "" {
		var err error
		asOf, err = time.Parse(model.DateLayout, *asOfStr)
		if err != nil {
			log.Fatalf("[ERROR] parse -as-of: %v", err)
		}
	}

	series, err := journal.New(*csvPath).Series(*column)
	if err != nil {
		log.Fatalf("[ERROR] load series: %v", err)
	}

	det := analysis.Detector{
		LookbackDays: *lookback,
		Multiplier:   *multiplier,
		MinSamples:   *minSamples,
	}
	verdict, err := det.Evaluate(series, asOf)
	if err != nil {
		log.Fatalf("[ERROR] evaluate: %v", err)
	}

	if *boolOnly {
		if verdict.IsOutlier {
			fmt.Println("True")
		} else {
			fmt.Println("False")
		}
		return
	}

	if verdict.Insufficient {
		fmt.Printf("insufficient data: %d samples in window (need %d)\n", verdict.SampleSize, det.MinSamples)
		return
	}
	fmt.Printf("column:  %s\n", *column)
	fmt.Printf("latest:  %.2f (%s)\n", verdict.LatestValue, verdict.LatestDate.Format(model.DateLayout))
	fmt.Printf("bounds:  [%.2f, %.2f]\n", verdict.Bounds.Lower, verdict.Bounds.Upper)
	fmt.Printf("samples: %d\n", verdict.SampleSize)
	fmt.Printf("outlier: %v\n", verdict.IsOutlier)
}
