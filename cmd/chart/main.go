package main

import (
	"flag"
	"log"
	"time"

	"KimchiGold/internal/chart"
	"KimchiGold/internal/journal"
)

func main() {
	csvPath := flag.String("csv", "data/kimchi_gold_price_log.csv", "journal CSV path")
	months := flag.Int("months", chart.DefaultMonths, "trailing months to chart")
	out := flag.String("out", "data/kimchi_gold_recent.xlsx", "output workbook path")
	flag.Parse()

	records, err := journal.New(*csvPath).Load()
	if err != nil {
		log.Fatalf("[ERROR] load journal: %v", err)
	}
	if err := chart.Generate(records, *months, time.Now(), *out); err != nil {
		log.Fatalf("[ERROR] generate chart: %v", err)
	}
	log.Printf("[INFO] chart workbook written to %s", *out)
}
