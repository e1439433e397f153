package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"KimchiGold/internal/collector"
	"KimchiGold/internal/journal"
)

func main() {
	csvPath := flag.String("csv", "data/kimchi_gold_price_log.csv", "journal CSV path")
	dryRun := flag.Bool("dry-run", false, "print the quote without appending to the journal")
	proxy := flag.String("proxy", os.Getenv("HTTPS_PROXY"), "HTTP proxy URL")
	flag.Parse()

	col := collector.NewCollector(collector.NewNaverFetcher(*proxy))
	quote, err := col.Collect()
	if err != nil {
		log.Fatalf("[ERROR] collect: %v", err)
	}
	fmt.Println(quote)

	if *dryRun {
		return
	}
	wrote, err := journal.New(*csvPath).AppendOnce(quote)
	if err != nil {
		log.Fatalf("[ERROR] append journal: %v", err)
	}
	if !wrote {
		log.Println("[INFO] today's row already logged")
	}
}
