package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := RollingMean(values, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Error("expected NaN inside warm-up window")
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(out[i+2], w) {
			t.Errorf("position %d: want %g, got %g", i+2, w, out[i+2])
		}
	}
}

func TestRollingMean_ShortSeries(t *testing.T) {
	out := RollingMean([]float64{1, 2}, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("position %d: want NaN, got %g", i, v)
		}
	}
}

func TestRollingStd_SampleVariance(t *testing.T) {
	// Sample std of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7).
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	out := RollingStd(values, 8)
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(out[7], want) {
		t.Errorf("want %g, got %g", want, out[7])
	}
}

func TestRollingStd_ConstantWindow(t *testing.T) {
	out := RollingStd([]float64{5, 5, 5, 5}, 3)
	if !almostEqual(out[2], 0) || !almostEqual(out[3], 0) {
		t.Errorf("constant window should have zero std, got %g %g", out[2], out[3])
	}
}

func TestPctChange(t *testing.T) {
	values := []float64{100, 0, 110, 105, 120, 121}
	out := PctChange(values, 5)

	for i := 0; i < 5; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("position %d: want NaN inside warm-up, got %g", i, out[i])
		}
	}
	if !almostEqual(out[5], 0.21) {
		t.Errorf("want 0.21, got %g", out[5])
	}

	// Zero base stays NaN instead of dividing by zero.
	out2 := PctChange(values, 4)
	if !math.IsNaN(out2[5]) {
		t.Errorf("zero base should yield NaN, got %g", out2[5])
	}
}

func TestEMA_SeedAndRecursion(t *testing.T) {
	values := []float64{10, 20, 30}
	out := EMA(values, 3) // alpha = 0.5

	if !almostEqual(out[0], 10) {
		t.Errorf("EMA should be seeded with the first value, got %g", out[0])
	}
	if !almostEqual(out[1], 15) {
		t.Errorf("want 15, got %g", out[1])
	}
	if !almostEqual(out[2], 22.5) {
		t.Errorf("want 22.5, got %g", out[2])
	}
}

func TestEMA_Empty(t *testing.T) {
	if out := EMA(nil, 12); len(out) != 0 {
		t.Errorf("want empty output, got %d values", len(out))
	}
}
