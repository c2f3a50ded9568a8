// Package calculator provides pure rolling-window and indicator math over
// price series. Positions inside a warm-up window are NaN; callers decide how
// undefined values resolve.
package calculator

import "math"

// RollingMean computes the trailing mean over a window of size period.
// The first period-1 positions are NaN.
func RollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RollingStd computes the trailing sample standard deviation over a window of
// size period. The first period-1 positions are NaN.
func RollingStd(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period < 2 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(period)
		var ss float64
		for _, v := range window {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

// PctChange computes the n-period percentage change. The first n positions
// are NaN, as is any position whose base value is zero.
func PctChange(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := n; i < len(values); i++ {
		base := values[i-n]
		if base == 0 {
			continue
		}
		out[i] = (values[i] - base) / base
	}
	return out
}

// EMA computes the exponential moving average with smoothing factor
// 2/(period+1), seeded with the first value.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*alpha + out[i-1]
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
