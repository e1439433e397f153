package backtest

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"KimchiGold/internal/journal"
)

// Params configures one backtest run. Thresholds are premium percentages:
// buy when the premium drops to BuyThreshold or below, sell when it rises
// to SellThreshold or above. After a sell, a re-entry is allowed once the
// premium returns to within RebuyBand of zero.
type Params struct {
	InitialInvestment float64
	BuyThreshold      float64
	SellThreshold     float64
	RebuyBand         float64
	CommissionRate    float64
	SlippageRate      float64
	StartDate         time.Time // zero value means the whole journal
}

// DefaultParams mirrors the historical strategy settings.
func DefaultParams() Params {
	return Params{
		InitialInvestment: 1_000_000,
		BuyThreshold:      -3.0,
		SellThreshold:     3.0,
		RebuyBand:         0.16,
		CommissionRate:    0.0016,
		SlippageRate:      0.0005,
	}
}

// Trade is one executed buy or sell.
type Trade struct {
	Date    time.Time
	Side    string // "BUY" or "SELL"
	Price   float64
	Grams   float64
	Cash    float64
	Premium float64
}

// Result summarizes a backtest run.
type Result struct {
	Params       Params
	FinalValue   float64
	TotalReturn  float64
	ReturnRate   float64 // percent
	Trades       []Trade
	Equity       []float64 // daily portfolio value
	MeanDailyRet float64
	StdDailyRet  float64
}

// Run replays the premium strategy over the journal records. Signals are
// evaluated against the previous day's premium, fills happen at the current
// day's domestic price adjusted for slippage and commission. The position
// is all-in or all-out; cash can never go negative.
func Run(records []journal.Record, p Params) (*Result, error) {
	if p.InitialInvestment <= 0 {
		return nil, errors.New("initial investment must be positive")
	}
	if p.BuyThreshold >= p.SellThreshold {
		return nil, fmt.Errorf("buy threshold %.2f must be below sell threshold %.2f",
			p.BuyThreshold, p.SellThreshold)
	}

	data := records
	if !p.StartDate.IsZero() {
		data = nil
		for _, rec := range records {
			if !rec.Date.Before(p.StartDate) {
				data = append(data, rec)
			}
		}
	}
	if len(data) < 2 {
		return nil, errors.New("not enough journal data to backtest")
	}

	cash := p.InitialInvestment
	grams := 0.0
	holding := false
	hasSold := false

	res := &Result{Params: p, Equity: make([]float64, 0, len(data))}
	res.Equity = append(res.Equity, p.InitialInvestment)

	for i := 1; i < len(data); i++ {
		prev := data[i-1]
		cur := data[i]

		switch {
		case !holding && cash > 0 && prev.PremiumPercent <= p.BuyThreshold:
			cash, grams = buy(res, cur, cash, p)
			holding = true

		// Re-entry after a sell once the premium has normalized.
		case !holding && cash > 0 && hasSold && abs(prev.PremiumPercent) <= p.RebuyBand:
			cash, grams = buy(res, cur, cash, p)
			holding = true

		case holding && grams > 0 && prev.PremiumPercent >= p.SellThreshold:
			price := cur.DomesticKRW * (1 - p.SlippageRate - p.CommissionRate)
			cash = grams * price
			res.Trades = append(res.Trades, Trade{
				Date: cur.Date, Side: "SELL", Price: price, Grams: grams,
				Cash: cash, Premium: cur.PremiumPercent,
			})
			grams = 0
			holding = false
			hasSold = true
		}

		if holding {
			res.Equity = append(res.Equity, grams*cur.DomesticKRW)
		} else {
			res.Equity = append(res.Equity, cash)
		}
	}

	res.FinalValue = res.Equity[len(res.Equity)-1]
	res.TotalReturn = res.FinalValue - p.InitialInvestment
	res.ReturnRate = res.TotalReturn / p.InitialInvestment * 100

	rets := dailyReturns(res.Equity)
	if len(rets) > 0 {
		res.MeanDailyRet = stat.Mean(rets, nil)
		res.StdDailyRet = stat.StdDev(rets, nil)
	}
	return res, nil
}

func buy(res *Result, rec journal.Record, cash float64, p Params) (newCash, grams float64) {
	price := rec.DomesticKRW * (1 + p.SlippageRate + p.CommissionRate)
	grams = cash / price
	res.Trades = append(res.Trades, Trade{
		Date: rec.Date, Side: "BUY", Price: price, Grams: grams,
		Cash: 0, Premium: rec.PremiumPercent,
	})
	return 0, grams
}

func dailyReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] > 0 {
			rets = append(rets, equity[i]/equity[i-1]-1)
		}
	}
	return rets
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
