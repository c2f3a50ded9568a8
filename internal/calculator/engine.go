package calculator

import (
	"math"
	"sort"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// Params are the rolling-window parameters of the indicator engine.
type Params struct {
	BBPeriod       int
	BBStdDev       float64
	RSIPeriod      int
	MACDFast       int
	MACDSlow       int
	MACDSignal     int
	VolumeMAPeriod int
}

// DefaultParams returns the standard parameter set (20/2.0/14/12/26/9/20).
func DefaultParams() Params {
	return Params{
		BBPeriod:       20,
		BBStdDev:       2.0,
		RSIPeriod:      14,
		MACDFast:       12,
		MACDSlow:       26,
		MACDSignal:     9,
		VolumeMAPeriod: 20,
	}
}

// momentumPeriod and volatilityWindow follow the source strategy:
// 5-day percentage change and 20-day std/mean of close.
const (
	momentumPeriod   = 5
	volatilityWindow = 20
)

// Compute calculates the full indicator frame for a price series. The input
// is not mutated; points are copied and sorted by date ascending first.
// Short series are not an error: warm-up positions simply stay NaN.
func Compute(series *model.PriceSeries, p Params) *model.IndicatorFrame {
	points := make([]model.PricePoint, len(series.Points))
	copy(points, series.Points)
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	n := len(points)
	closes := make([]float64, n)
	vols := make([]float64, n)
	hasVolume := false
	for i, pt := range points {
		closes[i] = pt.Close
		vols[i] = pt.Volume
		if pt.Volume > 0 {
			hasVolume = true
		}
	}

	frame := &model.IndicatorFrame{
		MovingAverage: RollingMean(closes, p.BBPeriod),
		StdDev:        RollingStd(closes, p.BBPeriod),
		UpperBand:     nanSlice(n),
		LowerBand:     nanSlice(n),
		BandPosition:  nanSlice(n),
		RSI:           rsi(closes, p.RSIPeriod),
		Momentum:      PctChange(closes, momentumPeriod),
		Volatility:    nanSlice(n),
	}

	for i := 0; i < n; i++ {
		ma, sd := frame.MovingAverage[i], frame.StdDev[i]
		if math.IsNaN(ma) || math.IsNaN(sd) {
			continue
		}
		upper := ma + p.BBStdDev*sd
		lower := ma - p.BBStdDev*sd
		frame.UpperBand[i] = upper
		frame.LowerBand[i] = lower
		if upper == lower {
			// Zero-variance window: the band has no width, so the position
			// inside it is undefined. Resolve to the neutral midpoint.
			frame.BandPosition[i] = 0.5
		} else {
			frame.BandPosition[i] = (closes[i] - lower) / (upper - lower)
		}
	}

	emaFast := EMA(closes, p.MACDFast)
	emaSlow := EMA(closes, p.MACDSlow)
	frame.MACD = make([]float64, n)
	for i := 0; i < n; i++ {
		frame.MACD[i] = emaFast[i] - emaSlow[i]
	}
	frame.MACDSignal = EMA(frame.MACD, p.MACDSignal)
	frame.MACDHistogram = make([]float64, n)
	for i := 0; i < n; i++ {
		frame.MACDHistogram[i] = frame.MACD[i] - frame.MACDSignal[i]
	}

	frame.VolumeRatio = volumeRatio(vols, hasVolume, p.VolumeMAPeriod)

	volStd := RollingStd(closes, volatilityWindow)
	volMean := RollingMean(closes, volatilityWindow)
	for i := 0; i < n; i++ {
		if !math.IsNaN(volStd[i]) && !math.IsNaN(volMean[i]) && volMean[i] != 0 {
			frame.Volatility[i] = volStd[i] / volMean[i]
		}
	}

	return frame
}

// rsi computes the Relative Strength Index using simple rolling means of
// gains and losses (not Wilder smoothing). Zero average loss resolves to 100.
func rsi(closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if n < period+1 {
		return out
	}
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}
	// Deltas start at index 1, so the first full window ends at index period.
	for i := period; i < n; i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// volumeRatio divides each volume by its trailing mean. A series without
// volume data gets the neutral ratio 1.0 everywhere.
func volumeRatio(vols []float64, hasVolume bool, period int) []float64 {
	n := len(vols)
	if !hasVolume {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	out := nanSlice(n)
	volMA := RollingMean(vols, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(volMA[i]) {
			continue
		}
		if volMA[i] == 0 {
			out[i] = 1.0
			continue
		}
		out[i] = vols[i] / volMA[i]
	}
	return out
}
