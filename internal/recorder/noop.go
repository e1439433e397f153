package recorder

import "KimchiGold/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *model.GoldQuote) error { return nil }
func (n *NoopRecorder) RecordVerdict(_ *VerdictEvent) error  { return nil }
func (n *NoopRecorder) Close() error                         { return nil }
