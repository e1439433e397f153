package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"KimchiGold/internal/backtest"
	"KimchiGold/internal/journal"
	"KimchiGold/internal/model"
)

func main() {
	csvPath := flag.String("csv", "data/kimchi_gold_price_log.csv", "journal CSV path")
	initial := flag.Float64("initial", 1_000_000, "initial investment in KRW")
	buy := flag.Float64("buy", -3.0, "buy when previous premium is at or below this percent")
	sell := flag.Float64("sell", 3.0, "sell when previous premium is at or above this percent")
	start := flag.String("start", "", "start date (YYYY-MM-DD, default full history)")
	sweep := flag.Bool("sweep", false, "sweep symmetric thresholds instead of a single run")
	sweepMin := flag.Float64("sweep-min", 0.5, "sweep minimum threshold")
	sweepMax := flag.Float64("sweep-max", 4.0, "sweep maximum threshold")
	sweepStep := flag.Float64("sweep-step", 0.5, "sweep step")
	flag.Parse()

	records, err := journal.New(*csvPath).Load()
	if err != nil {
		log.Fatalf("[ERROR] load journal: %v", err)
	}

	params := backtest.DefaultParams()
	params.InitialInvestment = *initial
	params.BuyThreshold = *buy
	params.SellThreshold = *sell
	if *start != "" {
		t, err := time.Parse(model.DateLayout, *start)
		if err != nil {
			log.Fatalf("[ERROR] parse -start: %v", err)
		}
		params.StartDate = t
	}

	if *sweep {
		results, err := backtest.Sweep(records, params, *sweepMin, *sweepMax, *sweepStep)
		if err != nil {
			log.Fatalf("[ERROR] sweep: %v", err)
		}
		fmt.Printf("%-10s %14s %10s %7s\n", "threshold", "final value", "return %", "trades")
		for _, r := range results {
			fmt.Printf("±%-9.2f %14.0f %10.2f %7d\n", r.Threshold, r.FinalValue, r.ReturnRate, r.Trades)
		}
		return
	}

	res, err := backtest.Run(records, params)
	if err != nil {
		log.Fatalf("[ERROR] backtest: %v", err)
	}
	fmt.Printf("initial:      %.0f KRW\n", params.InitialInvestment)
	fmt.Printf("final value:  %.0f KRW\n", res.FinalValue)
	fmt.Printf("total return: %.0f KRW (%.2f%%)\n", res.TotalReturn, res.ReturnRate)
	fmt.Printf("trades:       %d\n", len(res.Trades))
	fmt.Printf("daily return: mean %.4f%%, stddev %.4f%%\n", res.MeanDailyRet*100, res.StdDailyRet*100)
	for _, tr := range res.Trades {
		fmt.Printf("  %s %-4s price %.0f grams %.4f premium %.2f%%\n",
			tr.Date.Format(model.DateLayout), tr.Side, tr.Price, tr.Grams, tr.Premium)
	}
}
