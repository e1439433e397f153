package model

// Journal column names. These match the header of the historical CSV log,
// so existing data files keep loading unchanged.
const (
	ColumnDate              = "날짜"
	ColumnDomesticGold      = "국내금(원/g)"
	ColumnInternationalGold = "국제금(달러/온스)"
	ColumnExchangeRate      = "환율(원/달러)"
	ColumnPremiumKRW        = "김치프리미엄(원/g)"
	ColumnPremiumPercent    = "김치프리미엄(%)"
)

// JournalHeader is the CSV header row, in logged order.
var JournalHeader = []string{
	ColumnDate,
	ColumnDomesticGold,
	ColumnInternationalGold,
	ColumnExchangeRate,
	ColumnPremiumKRW,
	ColumnPremiumPercent,
}

// DateLayout is the layout used for the journal's date column.
const DateLayout = "2006-01-02"
