// Package recorder persists screening results. The core emits plain data
// records; sinks decide the format.
package recorder

import "github.com/lzx-sdu/stock-picker-auto/internal/model"

// Recorder accepts the output of one screening run.
type Recorder interface {
	RecordRun(candidates []*model.ScoredCandidate, alloc *model.PortfolioAllocation) error
	Close() error
}

// Multi fans one run out to several recorders. The first error is returned
// after all recorders were attempted.
type Multi []Recorder

func (m Multi) RecordRun(candidates []*model.ScoredCandidate, alloc *model.PortfolioAllocation) error {
	var first error
	for _, r := range m {
		if err := r.RecordRun(candidates, alloc); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
