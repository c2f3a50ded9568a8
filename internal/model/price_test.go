package model

import (
	"testing"
	"time"
)

func TestCloses_ChronologicalRegardlessOfStorageOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	s := &PriceSeries{
		Code: "000001",
		Points: []PricePoint{
			{Date: day(3), Close: 30},
			{Date: day(1), Close: 10},
			{Date: day(2), Close: 20},
		},
	}

	closes := s.Closes()
	want := []float64{10, 20, 30}
	for i, w := range want {
		if closes[i] != w {
			t.Fatalf("position %d: want %g, got %g", i, w, closes[i])
		}
	}
	if s.Points[0].Close != 30 {
		t.Error("extracting closes must not reorder the series")
	}
}
