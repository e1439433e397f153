package collector

// Fetcher defines the interface for fetching the three live quotes.
type Fetcher interface {
	// DomesticGold returns the domestic gold price in KRW per gram.
	DomesticGold() (float64, error)
	// InternationalGold returns the international gold price in USD per troy ounce.
	InternationalGold() (float64, error)
	// USDKRW returns the USD/KRW exchange rate.
	USDKRW() (float64, error)
	Name() string
}
