package collector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"KimchiGold/internal/model"
)

// MockFetcher returns fixed quotes for development and testing.
type MockFetcher struct {
	Domestic      float64
	International float64
	Rate          float64
	Err           error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) DomesticGold() (float64, error)      { return m.Domestic, m.Err }
func (m *MockFetcher) InternationalGold() (float64, error) { return m.International, m.Err }
func (m *MockFetcher) USDKRW() (float64, error)            { return m.Rate, m.Err }

// Collector orchestrates quote fetching and premium computation.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the three quotes and derives the premium.
func (c *Collector) Collect() (*model.GoldQuote, error) {
	domestic, err := c.Fetcher.DomesticGold()
	if err != nil {
		return nil, fmt.Errorf("fetch domestic gold: %w", err)
	}
	international, err := c.Fetcher.InternationalGold()
	if err != nil {
		return nil, fmt.Errorf("fetch international gold: %w", err)
	}
	rate, err := c.Fetcher.USDKRW()
	if err != nil {
		return nil, fmt.Errorf("fetch USD/KRW rate: %w", err)
	}
	if international <= 0 || rate <= 0 {
		return nil, fmt.Errorf("non-positive quote: international=%.2f rate=%.2f", international, rate)
	}

	intlKRWPerGram := international * rate / model.GramsPerTroyOunce
	premiumAmount := domestic - intlKRWPerGram
	premiumPercent := premiumAmount / intlKRWPerGram * 100

	return &model.GoldQuote{
		DomesticKRWPerGram: domestic,
		InternationalUSDOz: international,
		USDKRW:             rate,
		InternationalKRWG:  intlKRWPerGram,
		PremiumKRWPerGram:  premiumAmount,
		PremiumPercent:     premiumPercent,
		CollectedAt:        time.Now(),
	}, nil
}

// parsePrice converts a scraped "105,340.00" style string to a float.
func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return v, nil
}
