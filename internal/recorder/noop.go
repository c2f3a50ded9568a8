package recorder

import "github.com/lzx-sdu/stock-picker-auto/internal/model"

// NoopRecorder is used when no persistence is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ []*model.ScoredCandidate, _ *model.PortfolioAllocation) error {
	return nil
}
func (n *NoopRecorder) Close() error { return nil }
