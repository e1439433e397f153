package backtest

import (
	"testing"
	"time"

	"KimchiGold/internal/journal"
)

// seriesOf builds daily records with the given domestic prices and
// premium percentages, starting 2025-01-01.
func seriesOf(prices, premiums []float64) []journal.Record {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]journal.Record, len(prices))
	for i := range prices {
		records[i] = journal.Record{
			Date:           start.AddDate(0, 0, i),
			DomesticKRW:    prices[i],
			PremiumPercent: premiums[i],
		}
	}
	return records
}

func TestRun_BuyLowSellHigh(t *testing.T) {
	// Premium dips to -4% (buy signal), recovers, then spikes to +4%
	// (sell signal) while the price rises.
	prices := []float64{100000, 100000, 101000, 103000, 105000, 110000, 110000}
	premiums := []float64{0, -4.0, -1.0, 0.5, 2.0, 4.0, 1.0}

	res, err := Run(seriesOf(prices, premiums), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trades) != 2 {
		t.Fatalf("expected one buy and one sell, got %d trades", len(res.Trades))
	}
	if res.Trades[0].Side != "BUY" || res.Trades[1].Side != "SELL" {
		t.Errorf("expected BUY then SELL, got %s then %s", res.Trades[0].Side, res.Trades[1].Side)
	}
	// Bought around 101000, sold around 110000: profitable after fees.
	if res.TotalReturn <= 0 {
		t.Errorf("expected a profit, got %.0f", res.TotalReturn)
	}
	if res.FinalValue != res.Equity[len(res.Equity)-1] {
		t.Error("final value should equal the last equity point")
	}
}

func TestRun_NoSignalsNoTrades(t *testing.T) {
	prices := []float64{100000, 100500, 101000, 100800}
	premiums := []float64{0.5, 0.8, 1.0, 0.7}

	res, err := Run(seriesOf(prices, premiums), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trades) != 0 {
		t.Errorf("expected no trades, got %d", len(res.Trades))
	}
	if res.FinalValue != res.Params.InitialInvestment {
		t.Errorf("idle run should keep the initial investment, got %.0f", res.FinalValue)
	}
}

func TestRun_RebuyAfterSell(t *testing.T) {
	// Buy on the dip, sell on the spike, rebuy when the premium settles
	// back inside the rebuy band.
	prices := []float64{100000, 100000, 101000, 108000, 108000, 107000, 107500}
	premiums := []float64{0, -3.5, 1.0, 3.5, 1.0, 0.1, 0.2}

	res, err := Run(seriesOf(prices, premiums), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trades) != 3 {
		t.Fatalf("expected buy/sell/rebuy, got %d trades: %+v", len(res.Trades), res.Trades)
	}
	if res.Trades[2].Side != "BUY" {
		t.Errorf("expected final trade to be a rebuy, got %s", res.Trades[2].Side)
	}
}

func TestRun_EquityNeverNegative(t *testing.T) {
	prices := []float64{100000, 90000, 80000, 120000, 70000, 130000}
	premiums := []float64{-5, 5, -5, 5, -5, 5}

	res, err := Run(seriesOf(prices, premiums), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range res.Equity {
		if v < 0 {
			t.Fatalf("equity went negative at day %d: %.2f", i, v)
		}
	}
}

func TestRun_StartDateFilter(t *testing.T) {
	prices := []float64{100000, 100000, 101000, 103000, 105000, 110000}
	premiums := []float64{-4.0, 0, 0.5, 1.0, 2.0, 1.0}

	p := DefaultParams()
	p.StartDate = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	res, err := Run(seriesOf(prices, premiums), p)
	if err != nil {
		t.Fatal(err)
	}
	// The -4% day is filtered out, so no buy ever fires.
	if len(res.Trades) != 0 {
		t.Errorf("expected the pre-start buy signal to be dropped, got %d trades", len(res.Trades))
	}
}

func TestRun_InputValidation(t *testing.T) {
	records := seriesOf([]float64{1, 2}, []float64{0, 0})

	p := DefaultParams()
	p.InitialInvestment = 0
	if _, err := Run(records, p); err == nil {
		t.Error("expected error for zero investment")
	}

	p = DefaultParams()
	p.BuyThreshold = 3
	p.SellThreshold = -3
	if _, err := Run(records, p); err == nil {
		t.Error("expected error for inverted thresholds")
	}

	if _, err := Run(records[:1], DefaultParams()); err == nil {
		t.Error("expected error for a single-row journal")
	}
}

func TestSweep_SortedByReturn(t *testing.T) {
	// A deep dip and a strong spike: tight thresholds trade, loose ones don't.
	prices := []float64{100000, 100000, 101000, 103000, 110000, 110000, 110000}
	premiums := []float64{0, -2.5, -1.0, 0.5, 2.6, 2.6, 1.0}

	results, err := Sweep(seriesOf(prices, premiums), DefaultParams(), 0.5, 4.0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 thresholds tested, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].ReturnRate > results[i-1].ReturnRate {
			t.Fatalf("results not sorted by return rate: %+v", results)
		}
	}
	if results[0].Trades == 0 {
		t.Error("best threshold should have traded")
	}
}

func TestSweep_InvalidRange(t *testing.T) {
	records := seriesOf([]float64{1, 2, 3}, []float64{0, 0, 0})
	if _, err := Sweep(records, DefaultParams(), 2, 1, 0.5); err == nil {
		t.Error("expected error for max < min")
	}
	if _, err := Sweep(records, DefaultParams(), 1, 2, 0); err == nil {
		t.Error("expected error for zero step")
	}
}
