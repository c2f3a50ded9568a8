package calculator

import (
	"math"
	"sort"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

const tradingDaysPerYear = 252

// DailyReturns computes simple day-over-day returns of the close series.
// Zero-base days are skipped.
func DailyReturns(closes []float64) []float64 {
	var returns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// ComputeRiskMetrics derives the annualized risk statistics for a close
// series. An empty or single-point series yields zero metrics.
func ComputeRiskMetrics(closes []float64, riskFreeRate float64) model.RiskMetrics {
	returns := DailyReturns(closes)
	if len(returns) == 0 {
		return model.RiskMetrics{}
	}
	std := sampleStd(returns)
	return model.RiskMetrics{
		Volatility:  std * math.Sqrt(tradingDaysPerYear),
		MaxDrawdown: MaxDrawdown(closes),
		SharpeRatio: sharpe(returns, std, riskFreeRate),
		VaR95:       Quantile(returns, 0.05),
	}
}

// MaxDrawdown returns the deepest decline from a running peak as a negative
// fraction; 0 for a series that never declines.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	peak := closes[0]
	worst := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			dd := (c - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// sharpe annualizes mean return over annualized std. Zero std yields 0
// rather than a division blow-up.
func sharpe(returns []float64, std, riskFreeRate float64) float64 {
	if std == 0 {
		return 0
	}
	return (mean(returns)*tradingDaysPerYear - riskFreeRate) / (std * math.Sqrt(tradingDaysPerYear))
}

// Quantile returns the q-quantile of values using linear interpolation
// between order statistics.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
