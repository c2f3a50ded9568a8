package calculator

import (
	"math"
	"testing"
)

func TestMaxDrawdown(t *testing.T) {
	cases := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"monotonic rise", []float64{10, 11, 12, 13}, 0},
		{"single dip", []float64{100, 80, 90}, -0.2},
		{"deepest counts", []float64{100, 70, 110, 55}, -0.5},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxDrawdown(tc.closes); !almostEqual(got, tc.want) {
				t.Errorf("want %g, got %g", tc.want, got)
			}
		})
	}
}

func TestComputeRiskMetrics_ZeroStd(t *testing.T) {
	// Constant closes: zero return variance, Sharpe must not blow up.
	m := ComputeRiskMetrics([]float64{50, 50, 50, 50, 50}, 0.03)
	if m.SharpeRatio != 0 {
		t.Errorf("zero-variance Sharpe: want 0, got %g", m.SharpeRatio)
	}
	if m.Volatility != 0 {
		t.Errorf("zero-variance volatility: want 0, got %g", m.Volatility)
	}
	if m.MaxDrawdown != 0 {
		t.Errorf("flat series drawdown: want 0, got %g", m.MaxDrawdown)
	}
}

func TestComputeRiskMetrics_Empty(t *testing.T) {
	for _, closes := range [][]float64{nil, {100}} {
		m := ComputeRiskMetrics(closes, 0.03)
		if m.Volatility != 0 || m.SharpeRatio != 0 || m.VaR95 != 0 || m.MaxDrawdown != 0 {
			t.Errorf("closes %v must yield zero metrics, got %+v", closes, m)
		}
	}
}

func TestQuantile_Interpolation(t *testing.T) {
	values := []float64{4, 1, 3, 2} // sorted: 1 2 3 4
	if got := Quantile(values, 0.5); !almostEqual(got, 2.5) {
		t.Errorf("median: want 2.5, got %g", got)
	}
	if got := Quantile(values, 0); !almostEqual(got, 1) {
		t.Errorf("min: want 1, got %g", got)
	}
	if got := Quantile(values, 1); !almostEqual(got, 4) {
		t.Errorf("max: want 4, got %g", got)
	}
	// 5th percentile of 4 values: pos = 0.15, between 1 and 2.
	if got := Quantile(values, 0.05); !almostEqual(got, 1.15) {
		t.Errorf("5th percentile: want 1.15, got %g", got)
	}
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})
	if len(returns) != 2 {
		t.Fatalf("want 2 returns, got %d", len(returns))
	}
	if !almostEqual(returns[0], 0.1) || !almostEqual(returns[1], -0.1) {
		t.Errorf("want [0.1 -0.1], got %v", returns)
	}

	// Zero-base days are skipped, not divided through.
	returns = DailyReturns([]float64{100, 0, 50})
	if len(returns) != 1 {
		t.Errorf("zero-base day must be skipped, got %v", returns)
	}
}

func TestVolatilityAnnualization(t *testing.T) {
	closes := []float64{100, 102, 100, 102, 100, 102}
	m := ComputeRiskMetrics(closes, 0.03)
	returns := DailyReturns(closes)
	want := sampleStd(returns) * math.Sqrt(252)
	if !almostEqual(m.Volatility, want) {
		t.Errorf("want %g, got %g", want, m.Volatility)
	}
}
