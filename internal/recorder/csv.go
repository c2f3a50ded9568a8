package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// CSVRecorder writes each run's picks and portfolio as dated CSV files in a
// target directory.
type CSVRecorder struct {
	dir string
	log logging.Logger
}

func NewCSVRecorder(dir string, log logging.Logger) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CSVRecorder{dir: dir, log: log}, nil
}

func (r *CSVRecorder) RecordRun(candidates []*model.ScoredCandidate, alloc *model.PortfolioAllocation) error {
	date := time.Now().Format("2006-01-02")

	if err := r.writePicks(filepath.Join(r.dir, "picks_"+date+".csv"), candidates); err != nil {
		return err
	}
	if alloc != nil && len(alloc.Positions) > 0 {
		if err := r.writePortfolio(filepath.Join(r.dir, "portfolio_"+date+".csv"), alloc); err != nil {
			return err
		}
	}
	return nil
}

func (r *CSVRecorder) writePicks(path string, candidates []*model.ScoredCandidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"code", "name", "current_price", "band_position", "rsi", "volume_ratio",
		"composite_score", "action", "target_price", "stop_loss", "position_size",
		"holding_period", "risk_level", "reasoning",
		"volatility", "max_drawdown", "sharpe_ratio", "var_95", "analysis_date",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range candidates {
		reasons := make([]string, len(c.Advice.Reasoning))
		for i, sig := range c.Advice.Reasoning {
			reasons[i] = string(sig)
		}
		row := []string{
			c.Code, c.Name,
			ftoa(c.CurrentPrice), ftoa(c.BandPosition), ftoa(c.RSI), ftoa(c.VolumeRatio),
			ftoa(c.CompositeScore), string(c.Advice.Action),
			ftoa(c.Advice.TargetPrice), ftoa(c.Advice.StopLoss), ftoa(c.Advice.PositionSize),
			string(c.Advice.HoldingPeriod), string(c.Advice.RiskLevel),
			strings.Join(reasons, "|"),
			ftoa(c.Risk.Volatility), ftoa(c.Risk.MaxDrawdown),
			ftoa(c.Risk.SharpeRatio), ftoa(c.Risk.VaR95),
			c.AnalysisDate,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	r.log.Infof("picks written: %s (%d rows)", path, len(candidates))
	return w.Error()
}

func (r *CSVRecorder) writePortfolio(path string, alloc *model.PortfolioAllocation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"rank", "code", "name", "current_price", "weight", "position_size",
		"target_price", "stop_loss", "confidence", "risk_level", "holding_period",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, p := range alloc.Positions {
		row := []string{
			strconv.Itoa(i + 1), p.Code, p.Name,
			ftoa(p.CurrentPrice), ftoa(p.Weight), ftoa(p.PositionSize),
			ftoa(p.TargetPrice), ftoa(p.StopLoss), ftoa(p.Confidence),
			string(p.RiskLevel), string(p.HoldingPeriod),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	r.log.Infof("portfolio written: %s (%d positions)", path, len(alloc.Positions))
	return w.Error()
}

func (r *CSVRecorder) Close() error { return nil }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
