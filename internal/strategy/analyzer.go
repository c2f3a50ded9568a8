package strategy

import (
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/calculator"
	"github.com/lzx-sdu/stock-picker-auto/internal/config"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// Analyzer runs the full per-instrument pipeline: indicators → signals →
// score → advice → risk metrics. It holds only immutable parameters, so a
// single Analyzer is safe for concurrent use by runner workers.
type Analyzer struct {
	params       calculator.Params
	thresholds   Thresholds
	advice       AdviceParams
	riskFreeRate float64
	minPoints    int
}

// NewAnalyzer builds an Analyzer from validated configuration.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	s := cfg.Strategy
	return &Analyzer{
		params: calculator.Params{
			BBPeriod:       s.BBPeriod,
			BBStdDev:       s.BBStdDev,
			RSIPeriod:      s.RSIPeriod,
			MACDFast:       s.MACDFast,
			MACDSlow:       s.MACDSlow,
			MACDSignal:     s.MACDSignal,
			VolumeMAPeriod: s.VolumeMAPeriod,
		},
		thresholds: Thresholds{
			BandStrongOversold:   s.BandStrongOversold,
			BandOversold:         s.BandOversold,
			BandOverbought:       s.BandOverbought,
			BandStrongOverbought: s.BandStrongOverbought,
			RSIOversold:          s.RSIOversold,
			RSIOverbought:        s.RSIOverbought,
			MinVolumeRatio:       s.MinVolumeRatio,
			MomentumThreshold:    s.MomentumThreshold,
		},
		advice: AdviceParams{
			ConfidenceThreshold: s.ConfidenceThreshold,
			MaxPositionRatio:    cfg.Portfolio.MaxPositionRatio,
			BandOversold:        s.BandOversold,
			BandOverbought:      s.BandOverbought,
			StopLossBase:        cfg.Portfolio.StopLoss,
			TakeProfit:          cfg.Portfolio.TakeProfit,
		},
		riskFreeRate: cfg.Portfolio.RiskFreeRate,
		minPoints:    s.MinDataPoints,
	}
}

// ConfidenceThreshold exposes the score cut-off for the runner's inclusion policy.
func (a *Analyzer) ConfidenceThreshold() float64 { return a.advice.ConfidenceThreshold }

// MinDataPoints exposes the minimum series length for the runner's length check.
func (a *Analyzer) MinDataPoints() int { return a.minPoints }

// Analyze runs one pass over a price series. A nil, empty or too-short series
// yields nil — absence of a result, never an error. The series is not mutated
// and the same input always yields the same candidate.
func (a *Analyzer) Analyze(series *model.PriceSeries) *model.ScoredCandidate {
	if series == nil || series.Len() < a.minPoints {
		return nil
	}

	frame := calculator.Compute(series, a.params)
	last := frame.Len() - 1
	latest := frame.Row(last)
	prev := frame.Row(last - 1)

	set := Classify(latest, prev, a.thresholds)
	score := Score(&set)

	closes := series.Closes()
	currentPrice := closes[len(closes)-1]

	return &model.ScoredCandidate{
		Code:           series.Code,
		Name:           series.Name,
		CurrentPrice:   currentPrice,
		BandPosition:   latest.BandPosition,
		RSI:            latest.RSI,
		VolumeRatio:    latest.VolumeRatio,
		Signals:        set,
		CompositeScore: score,
		Advice:         Advise(&set, score, currentPrice, latest, a.advice),
		Risk:           calculator.ComputeRiskMetrics(closes, a.riskFreeRate),
		AnalysisDate:   time.Now().Format("2006-01-02"),
	}
}
