// Package provider supplies the screening universe and per-instrument price
// series from external market-data sources.
package provider

import (
	"context"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// SeriesProvider fetches the daily price series for one instrument. A
// non-empty result is chronological with de-duplicated dates.
type SeriesProvider interface {
	FetchSeries(ctx context.Context, code string, days int) (*model.PriceSeries, error)
	Name() string
}

// UniverseProvider returns the ordered set of instruments to evaluate.
type UniverseProvider interface {
	FetchUniverse(ctx context.Context) ([]model.Instrument, error)
}

// StaticUniverse serves a fixed instrument list, used when the config names
// an explicit universe.
type StaticUniverse struct {
	Instruments []model.Instrument
}

func (s *StaticUniverse) FetchUniverse(_ context.Context) ([]model.Instrument, error) {
	return s.Instruments, nil
}
