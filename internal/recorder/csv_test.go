package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

func sampleCandidate() *model.ScoredCandidate {
	return &model.ScoredCandidate{
		Code:           "000001",
		Name:           "alpha",
		CurrentPrice:   58.7,
		BandPosition:   0.09,
		RSI:            12.5,
		VolumeRatio:    1.0,
		CompositeScore: 1.0,
		Advice: model.TradingAdvice{
			Action:        model.ActionBuy,
			Confidence:    1.0,
			TargetPrice:   65.0,
			StopLoss:      54.0,
			PositionSize:  0.1,
			HoldingPeriod: model.HoldingLong,
			RiskLevel:     model.RiskHigh,
			Reasoning:     []model.Signal{model.SignalStrongOversold, model.SignalRSIOversold},
		},
		Risk:         model.RiskMetrics{Volatility: 0.2, MaxDrawdown: -0.4, SharpeRatio: -1.5, VaR95: -0.01},
		AnalysisDate: "2026-08-28",
	}
}

func sampleAllocation() *model.PortfolioAllocation {
	return &model.PortfolioAllocation{
		Positions: []model.Position{{
			Code:          "000001",
			Name:          "alpha",
			CurrentPrice:  58.7,
			Weight:        1.0,
			PositionSize:  0.1,
			TargetPrice:   65.0,
			StopLoss:      54.0,
			Confidence:    1.0,
			RiskLevel:     model.RiskHigh,
			HoldingPeriod: model.HoldingLong,
		}},
		TotalPositions: 1,
		TotalScore:     1.0,
	}
}

func TestCSVRecorder_WritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := NewCSVRecorder(dir, logging.Nop())
	if err != nil {
		t.Fatalf("new csv recorder: %v", err)
	}
	defer r.Close()

	if err := r.RecordRun([]*model.ScoredCandidate{sampleCandidate()}, sampleAllocation()); err != nil {
		t.Fatalf("record run: %v", err)
	}

	date := time.Now().Format("2006-01-02")
	picks := filepath.Join(dir, "picks_"+date+".csv")
	f, err := os.Open(picks)
	if err != nil {
		t.Fatalf("open picks: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read picks: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d rows", len(rows))
	}
	if rows[1][0] != "000001" || rows[1][1] != "alpha" {
		t.Errorf("pick row wrong: %v", rows[1])
	}
	if rows[1][13] != "STRONG_OVERSOLD|RSI_OVERSOLD" {
		t.Errorf("reasoning column wrong: %q", rows[1][13])
	}

	if _, err := os.Stat(filepath.Join(dir, "portfolio_"+date+".csv")); err != nil {
		t.Errorf("portfolio file missing: %v", err)
	}
}

func TestCSVRecorder_SkipsEmptyPortfolio(t *testing.T) {
	dir := t.TempDir()
	r, err := NewCSVRecorder(dir, logging.Nop())
	if err != nil {
		t.Fatalf("new csv recorder: %v", err)
	}
	if err := r.RecordRun(nil, &model.PortfolioAllocation{}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	date := time.Now().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dir, "portfolio_"+date+".csv")); !os.IsNotExist(err) {
		t.Error("empty allocation must not produce a portfolio file")
	}
	// Picks file still exists with just the header.
	if _, err := os.Stat(filepath.Join(dir, "picks_"+date+".csv")); err != nil {
		t.Errorf("picks file missing: %v", err)
	}
}

func TestMulti_FanOutAndFirstError(t *testing.T) {
	dir := t.TempDir()
	cr, err := NewCSVRecorder(dir, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	m := Multi{NewNoopRecorder(), cr}
	if err := m.RecordRun([]*model.ScoredCandidate{sampleCandidate()}, nil); err != nil {
		t.Fatalf("multi record: %v", err)
	}
	date := time.Now().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dir, "picks_"+date+".csv")); err != nil {
		t.Errorf("fan-out must reach every sink: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
