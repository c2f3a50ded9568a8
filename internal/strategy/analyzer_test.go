package strategy

import (
	"path/filepath"
	"testing"

	"github.com/lzx-sdu/stock-picker-auto/internal/calculator"
	"github.com/lzx-sdu/stock-picker-auto/internal/config"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
	"github.com/lzx-sdu/stock-picker-auto/internal/provider"
)

func defaultAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return NewAnalyzer(cfg)
}

func decliningCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 - 0.7*float64(i)
	}
	return closes
}

func TestAnalyze_ShortSeries(t *testing.T) {
	a := defaultAnalyzer(t)

	if got := a.Analyze(nil); got != nil {
		t.Error("nil series must yield no candidate")
	}
	short := provider.GenerateSeries("000001", decliningCloses(30))
	if got := a.Analyze(short); got != nil {
		t.Error("series below the minimum length must yield no candidate")
	}
}

func TestAnalyze_OversoldDecline(t *testing.T) {
	a := defaultAnalyzer(t)
	series := provider.GenerateSeries("000001", decliningCloses(60))

	c := a.Analyze(series)
	if c == nil {
		t.Fatal("expected a candidate for a 60-point series")
	}
	if c.Code != "000001" {
		t.Errorf("candidate code: want 000001, got %s", c.Code)
	}
	// Persistent decline: deep in the lower band with bottomed-out RSI.
	if !c.Signals.Has(model.SignalStrongOversold) {
		t.Errorf("expected strong oversold, got %v", c.Signals.All())
	}
	if !c.Signals.Has(model.SignalRSIOversold) {
		t.Errorf("expected RSI oversold, got %v", c.Signals.All())
	}
	if c.Signals.Overall != model.ActionBuy {
		t.Errorf("two bullish categories must vote BUY, got %s", c.Signals.Overall)
	}
	if c.CompositeScore != 1.0 {
		t.Errorf("band + RSI bonuses: want score 1.0, got %g", c.CompositeScore)
	}
	if c.Advice.Action != model.ActionBuy || c.Advice.TargetPrice == 0 {
		t.Errorf("confident BUY must carry levels, got %+v", c.Advice)
	}
	if c.Risk.MaxDrawdown >= 0 {
		t.Errorf("declining series must have negative drawdown, got %g", c.Risk.MaxDrawdown)
	}
}

func TestAnalyze_FlatSeries(t *testing.T) {
	a := defaultAnalyzer(t)
	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 50
	}
	c := a.Analyze(provider.GenerateSeries("000002", flat))
	if c == nil {
		t.Fatal("expected a candidate")
	}
	// Flat series: neutral band, saturated RSI, nothing else.
	if c.BandPosition != 0.5 {
		t.Errorf("flat band position: want 0.5, got %g", c.BandPosition)
	}
	if !c.Signals.Has(model.SignalRSIOverbought) {
		t.Errorf("RSI 100 must classify overbought, got %v", c.Signals.All())
	}
	if c.CompositeScore != 0.5 {
		t.Errorf("no bullish signal: want base score 0.5, got %g", c.CompositeScore)
	}
}

// A decline into a trough must read as oversold at the trough bar, and score
// above the flat-series baseline.
func TestTroughScenario(t *testing.T) {
	closes := make([]float64, 60)
	closes[0] = 20.0
	for i := 1; i < 30; i++ {
		closes[i] = closes[i-1] * 0.98
	}
	for i := 30; i < 60; i++ {
		closes[i] = closes[i-1] * 1.015
	}
	series := provider.GenerateSeries("000001", closes)
	frame := calculator.Compute(series, calculator.DefaultParams())

	th := DefaultThresholds()
	trough := 29
	latest := frame.Row(trough)
	prev := frame.Row(trough - 1)

	if latest.BandPosition > 0.25 {
		t.Errorf("trough must sit near the lower band, got %g", latest.BandPosition)
	}
	set := Classify(latest, prev, th)
	if set.Overall == model.ActionSell {
		t.Errorf("trough must not classify as SELL, got %s", set.Overall)
	}
	troughScore := Score(&set)

	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 20.0
	}
	flatFrame := calculator.Compute(provider.GenerateSeries("000002", flat), calculator.DefaultParams())
	flatLast := flatFrame.Len() - 1
	flatSet := Classify(flatFrame.Row(flatLast), flatFrame.Row(flatLast-1), th)
	flatScore := Score(&flatSet)

	if troughScore <= flatScore {
		t.Errorf("trough score %g must exceed flat-series score %g", troughScore, flatScore)
	}
}

func TestAnalyze_UnorderedSeries(t *testing.T) {
	a := defaultAnalyzer(t)
	sorted := provider.GenerateSeries("000001", decliningCloses(60))

	reversed := &model.PriceSeries{Code: sorted.Code, Name: sorted.Name}
	for i := len(sorted.Points) - 1; i >= 0; i-- {
		reversed.Points = append(reversed.Points, sorted.Points[i])
	}

	c1 := a.Analyze(sorted)
	c2 := a.Analyze(reversed)
	if c1 == nil || c2 == nil {
		t.Fatal("expected candidates from both orderings")
	}
	// The reported price and risk metrics follow date order, not storage order.
	if c1.CurrentPrice != c2.CurrentPrice {
		t.Errorf("current price must be the latest-dated close: %g vs %g",
			c1.CurrentPrice, c2.CurrentPrice)
	}
	if c1.Risk.MaxDrawdown != c2.Risk.MaxDrawdown || c1.Risk.SharpeRatio != c2.Risk.SharpeRatio {
		t.Errorf("risk metrics must match across orderings: %+v vs %+v", c1.Risk, c2.Risk)
	}
	if c1.CompositeScore != c2.CompositeScore || c1.Advice.StopLoss != c2.Advice.StopLoss {
		t.Errorf("advice must match across orderings")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := defaultAnalyzer(t)
	series := provider.GenerateSeries("000001", decliningCloses(60))

	c1 := a.Analyze(series)
	c2 := a.Analyze(series)
	if c1.CompositeScore != c2.CompositeScore || c1.BandPosition != c2.BandPosition ||
		c1.Advice.TargetPrice != c2.Advice.TargetPrice {
		t.Error("repeated analysis of the same series must match")
	}
	if len(series.Points) != 60 {
		t.Error("analysis must not mutate the series")
	}
}
