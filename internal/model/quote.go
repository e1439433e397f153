package model

import (
	"fmt"
	"time"
)

// GramsPerTroyOunce converts the international quote (USD per troy ounce)
// into per-gram terms. 1 troy ounce = 31.1035 g.
const GramsPerTroyOunce = 31.1035

// GoldQuote holds one collection of the three market quotes and the
// premium derived from them.
type GoldQuote struct {
	DomesticKRWPerGram float64 // 국내금 (원/g)
	InternationalUSDOz float64 // 국제금 (달러/온스)
	USDKRW             float64 // 환율 (원/달러)
	InternationalKRWG  float64 // 국제금 원/g 환산
	PremiumKRWPerGram  float64 // 김치프리미엄 (원/g)
	PremiumPercent     float64 // 김치프리미엄 (%)
	CollectedAt        time.Time
}

// CSVRow formats the quote as one journal row using the given date layout.
func (q *GoldQuote) CSVRow(dateLayout string) []string {
	return []string{
		q.CollectedAt.Format(dateLayout),
		fmt.Sprintf("%.2f", q.DomesticKRWPerGram),
		fmt.Sprintf("%.2f", q.InternationalUSDOz),
		fmt.Sprintf("%.2f", q.USDKRW),
		fmt.Sprintf("%.2f", q.PremiumKRWPerGram),
		fmt.Sprintf("%.2f", q.PremiumPercent),
	}
}

func (q *GoldQuote) String() string {
	return fmt.Sprintf(
		"국내 금가격: %.2f 원/g | 국제 금 원화환산: %.2f 원/g | 김치프리미엄: %+.2f 원/g (%+.2f%%)",
		q.DomesticKRWPerGram, q.InternationalKRWG, q.PremiumKRWPerGram, q.PremiumPercent)
}
