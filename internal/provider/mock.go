package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// It implements both SeriesProvider and UniverseProvider.
type MockProvider struct {
	Series   map[string]*model.PriceSeries
	Universe []model.Instrument
	FailFor  map[string]error // codes whose fetch should fail
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchSeries(_ context.Context, code string, _ int) (*model.PriceSeries, error) {
	if err, ok := m.FailFor[code]; ok {
		return nil, err
	}
	if s, ok := m.Series[code]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("mock: no series for %s", code)
}

func (m *MockProvider) FetchUniverse(_ context.Context) ([]model.Instrument, error) {
	return m.Universe, nil
}

// GenerateSeries builds a synthetic chronological series of count daily bars
// whose closes follow the given values.
func GenerateSeries(code string, closes []float64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c * 0.998,
			High:   c * 1.006,
			Low:    c * 0.994,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return &model.PriceSeries{Code: code, Name: code, Points: points, FetchedAt: time.Now()}
}
