package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"KimchiGold/internal/analysis"
	"KimchiGold/internal/model"
)

// Sentinel errors for the two expected data faults. Callers must be able
// to tell a broken pipeline apart from a legitimate non-outlier verdict.
var (
	// ErrNoJournal reports that the journal file does not exist.
	ErrNoJournal = errors.New("journal file not found")
	// ErrColumnNotFound reports that a requested column is absent from the
	// journal header.
	ErrColumnNotFound = errors.New("column not found in journal")
)

// Record is one parsed journal row.
type Record struct {
	Date              time.Time
	DomesticKRW       float64
	InternationalUSD  float64
	USDKRW            float64
	PremiumKRWPerGram float64
	PremiumPercent    float64
}

// Journal is the append-only CSV premium log. One row per day; the header
// is written when the file is first created.
type Journal struct {
	Path string
}

// New returns a Journal backed by the CSV file at path.
func New(path string) *Journal {
	return &Journal{Path: path}
}

// Append writes one quote row, creating the file (and its directory) with
// a header row if needed.
func (j *Journal) Append(q *model.GoldQuote) error {
	if err := os.MkdirAll(filepath.Dir(j.Path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	_, statErr := os.Stat(j.Path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(model.JournalHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(q.CSVRow(model.DateLayout)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// HasDate reports whether a row for the given calendar day is already
// logged. A missing file means no.
func (j *Journal) HasDate(day time.Time) (bool, error) {
	f, err := os.Open(j.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	want := day.Format(model.DateLayout)
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil { // header
		return false, nil
	}
	for {
		row, err := r.Read()
		if err != nil {
			return false, nil
		}
		if len(row) > 0 && row[0] == want {
			return true, nil
		}
	}
}

// AppendOnce appends the quote unless its day is already logged.
// Returns true when a row was written.
func (j *Journal) AppendOnce(q *model.GoldQuote) (bool, error) {
	logged, err := j.HasDate(q.CollectedAt)
	if err != nil {
		return false, err
	}
	if logged {
		return false, nil
	}
	if err := j.Append(q); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the full journal into chronologically ascending records.
// Rows with unparseable cells are skipped with a warning rather than
// failing the whole load.
func (j *Journal) Load() ([]Record, error) {
	f, err := os.Open(j.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoJournal, j.Path)
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file %s", ErrNoJournal, j.Path)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			log.Printf("[WARN] journal row %d skipped: %v", i+2, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) < len(model.JournalHeader) {
		return Record{}, fmt.Errorf("expected %d fields, got %d", len(model.JournalHeader), len(row))
	}
	date, err := time.Parse(model.DateLayout, row[0])
	if err != nil {
		return Record{}, fmt.Errorf("parse date %q: %w", row[0], err)
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return Record{}, fmt.Errorf("parse %q: %w", row[i+1], err)
		}
		vals[i] = v
	}
	return Record{
		Date:              date,
		DomesticKRW:       vals[0],
		InternationalUSD:  vals[1],
		USDKRW:            vals[2],
		PremiumKRWPerGram: vals[3],
		PremiumPercent:    vals[4],
	}, nil
}

// Series extracts one named column as an analysis series, ordered by date.
// Asking for an unknown column returns ErrColumnNotFound.
func (j *Journal) Series(column string) (analysis.Series, error) {
	records, err := j.Load()
	if err != nil {
		return nil, err
	}
	return SeriesFrom(records, column)
}

// SeriesFrom builds the analysis series for one column from already-loaded
// records.
func SeriesFrom(records []Record, column string) (analysis.Series, error) {
	pick, ok := columnValue[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	series := make(analysis.Series, len(records))
	for i, rec := range records {
		series[i] = analysis.Observation{Date: rec.Date, Value: pick(rec)}
	}
	series.Sort()
	return series, nil
}

var columnValue = map[string]func(Record) float64{
	model.ColumnDomesticGold:      func(r Record) float64 { return r.DomesticKRW },
	model.ColumnInternationalGold: func(r Record) float64 { return r.InternationalUSD },
	model.ColumnExchangeRate:      func(r Record) float64 { return r.USDKRW },
	model.ColumnPremiumKRW:        func(r Record) float64 { return r.PremiumKRWPerGram },
	model.ColumnPremiumPercent:    func(r Record) float64 { return r.PremiumPercent },
}
