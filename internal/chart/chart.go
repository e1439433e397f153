package chart

import (
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"KimchiGold/internal/journal"
	"KimchiGold/internal/model"
)

// DefaultMonths is the trailing period shown when no override is given.
const DefaultMonths = 12

const dataSheet = "Data"

// Generate writes an xlsx workbook with the trailing months of journal
// data and three line charts: premium percent, domestic vs converted
// international price, and the USD/KRW rate. asOf anchors the trailing
// window so output is reproducible in tests.
func Generate(records []journal.Record, months int, asOf time.Time, outPath string) error {
	if months <= 0 {
		return fmt.Errorf("months must be positive, got %d", months)
	}

	cutoff := asOf.AddDate(0, -months, 0)
	var recent []journal.Record
	for _, rec := range records {
		if !rec.Date.Before(cutoff) && !rec.Date.After(asOf) {
			recent = append(recent, rec)
		}
	}
	if len(recent) == 0 {
		return fmt.Errorf("no journal data in the last %d months", months)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] close workbook: %v", err)
		}
	}()

	if err := writeData(f, recent); err != nil {
		return err
	}
	if err := addCharts(f, len(recent)); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.Printf("[INFO] chart workbook written: %s (%d rows)", outPath, len(recent))
	return nil
}

func writeData(f *excelize.File, records []journal.Record) error {
	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("create data sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := []interface{}{
		model.ColumnDate,
		model.ColumnDomesticGold,
		"국제금(원/g 환산)",
		model.ColumnExchangeRate,
		model.ColumnPremiumPercent,
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		intlKRWPerGram := rec.InternationalUSD * rec.USDKRW / model.GramsPerTroyOunce
		row := []interface{}{
			rec.Date.Format(model.DateLayout),
			rec.DomesticKRW,
			intlKRWPerGram,
			rec.USDKRW,
			rec.PremiumPercent,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

func addCharts(f *excelize.File, rows int) error {
	last := rows + 1 // data starts at row 2
	cats := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, last)

	panels := []struct {
		sheet  string
		title  string
		series []excelize.ChartSeries
	}{
		{
			sheet: "Premium",
			title: "김치프리미엄 (%)",
			series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$E$1", dataSheet),
					Categories: cats,
					Values:     fmt.Sprintf("%s!$E$2:$E$%d", dataSheet, last),
				},
			},
		},
		{
			sheet: "Prices",
			title: "국내금 vs 국제금 (원/g)",
			series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$B$1", dataSheet),
					Categories: cats,
					Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, last),
				},
				{
					Name:       fmt.Sprintf("%s!$C$1", dataSheet),
					Categories: cats,
					Values:     fmt.Sprintf("%s!$C$2:$C$%d", dataSheet, last),
				},
			},
		},
		{
			sheet: "Exchange",
			title: "환율 (원/달러)",
			series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$D$1", dataSheet),
					Categories: cats,
					Values:     fmt.Sprintf("%s!$D$2:$D$%d", dataSheet, last),
				},
			},
		},
	}

	for _, p := range panels {
		if _, err := f.NewSheet(p.sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", p.sheet, err)
		}
		chart := &excelize.Chart{
			Type:   excelize.Line,
			Series: p.series,
			Title:  []excelize.RichTextRun{{Text: p.title}},
			Legend: excelize.ChartLegend{Position: "bottom"},
		}
		if err := f.AddChart(p.sheet, "A1", chart); err != nil {
			return fmt.Errorf("add chart %s: %w", p.sheet, err)
		}
	}

	if idx, err := f.GetSheetIndex("Premium"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return nil
}
