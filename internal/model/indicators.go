package model

// IndicatorFrame holds all computed indicator series, index-aligned with the
// source PriceSeries. Values inside a rolling warm-up window are NaN.
type IndicatorFrame struct {
	MovingAverage []float64
	StdDev        []float64
	UpperBand     []float64
	LowerBand     []float64
	BandPosition  []float64
	RSI           []float64
	MACD          []float64
	MACDSignal    []float64
	MACDHistogram []float64
	VolumeRatio   []float64
	Momentum      []float64
	Volatility    []float64
}

// Len returns the number of rows in the frame.
func (f *IndicatorFrame) Len() int { return len(f.MovingAverage) }

// IndicatorRow is a single row of the frame. The signal classifier only needs
// the latest row, plus the previous one for MACD cross detection.
type IndicatorRow struct {
	MovingAverage float64
	UpperBand     float64
	LowerBand     float64
	BandPosition  float64
	RSI           float64
	MACD          float64
	MACDSignal    float64
	VolumeRatio   float64
	Momentum      float64
}

// Row extracts row i of the frame.
func (f *IndicatorFrame) Row(i int) IndicatorRow {
	return IndicatorRow{
		MovingAverage: f.MovingAverage[i],
		UpperBand:     f.UpperBand[i],
		LowerBand:     f.LowerBand[i],
		BandPosition:  f.BandPosition[i],
		RSI:           f.RSI[i],
		MACD:          f.MACD[i],
		MACDSignal:    f.MACDSignal[i],
		VolumeRatio:   f.VolumeRatio[i],
		Momentum:      f.Momentum[i],
	}
}

// RiskMetrics holds the ancillary risk statistics computed from daily returns.
type RiskMetrics struct {
	Volatility  float64 // annualized std of daily returns
	MaxDrawdown float64 // trough vs running peak, negative fraction
	SharpeRatio float64
	VaR95       float64 // 5th percentile of daily returns
}
