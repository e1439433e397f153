package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"KimchiGold/internal/model"
)

// SQLiteRecorder persists collection and verdict history to SQLite.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			domestic_krw_g     REAL,
			international_usd  REAL,
			usd_krw            REAL,
			international_krw_g REAL,
			premium_krw_g      REAL,
			premium_percent    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(timestamp)`,

		`CREATE TABLE IF NOT EXISTS verdicts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			column_name  TEXT,
			is_outlier   INTEGER,
			insufficient INTEGER,
			latest_value REAL,
			latest_date  TEXT,
			lower_bound  REAL,
			upper_bound  REAL,
			sample_size  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verdicts_ts ON verdicts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(q *model.GoldQuote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quotes
		(timestamp, domestic_krw_g, international_usd, usd_krw, international_krw_g, premium_krw_g, premium_percent)
		VALUES (?,?,?,?,?,?,?)`,
		q.CollectedAt.Unix(), q.DomesticKRWPerGram, q.InternationalUSDOz,
		q.USDKRW, q.InternationalKRWG, q.PremiumKRWPerGram, q.PremiumPercent,
	)
	return err
}

func (r *SQLiteRecorder) RecordVerdict(evt *VerdictEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := evt.Verdict
	_, err := r.db.Exec(`INSERT INTO verdicts
		(timestamp, column_name, is_outlier, insufficient, latest_value, latest_date, lower_bound, upper_bound, sample_size)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Column, boolInt(v.IsOutlier), boolInt(v.Insufficient),
		v.LatestValue, v.LatestDate.Format(model.DateLayout),
		v.Bounds.Lower, v.Bounds.Upper, v.SampleSize,
	)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
