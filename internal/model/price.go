package model

import (
	"sort"
	"time"
)

// PricePoint represents a single daily bar.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the chronological daily bars for one instrument.
// It is treated as immutable once loaded for an analysis pass.
type PriceSeries struct {
	Code      string
	Name      string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Closes extracts the close prices in chronological order, regardless of the
// storage order of the points. The series itself is not mutated.
func (s *PriceSeries) Closes() []float64 {
	idx := make([]int, len(s.Points))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Points[idx[a]].Date.Before(s.Points[idx[b]].Date)
	})
	closes := make([]float64, len(s.Points))
	for i, j := range idx {
		closes[i] = s.Points[j].Close
	}
	return closes
}

// Instrument identifies one entry of the screening universe.
type Instrument struct {
	Code string
	Name string
}
