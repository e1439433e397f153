package recorder

import (
	"KimchiGold/internal/analysis"
	"KimchiGold/internal/model"
)

// VerdictEvent records one outlier evaluation of a journal column.
type VerdictEvent struct {
	Column  string
	Verdict analysis.Verdict
}

// Recorder persists collection and analysis history.
type Recorder interface {
	RecordQuote(q *model.GoldQuote) error
	RecordVerdict(evt *VerdictEvent) error
	Close() error
}
