// Package strategy maps indicator values to discrete signals, scores them,
// and turns the score into trading advice. All functions here are pure; the
// Analyzer ties them into the per-instrument pipeline.
package strategy

import "github.com/lzx-sdu/stock-picker-auto/internal/model"

// Thresholds are the classification cut-offs. They are configuration, not
// constants: the strict and relaxed presets differ here.
type Thresholds struct {
	BandStrongOversold   float64
	BandOversold         float64
	BandOverbought       float64
	BandStrongOverbought float64
	RSIOversold          float64
	RSIOverbought        float64
	MinVolumeRatio       float64
	MomentumThreshold    float64
}

// DefaultThresholds returns the strict preset cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BandStrongOversold:   0.1,
		BandOversold:         0.2,
		BandOverbought:       0.8,
		BandStrongOverbought: 0.9,
		RSIOversold:          30,
		RSIOverbought:        70,
		MinVolumeRatio:       1.2,
		MomentumThreshold:    0.05,
	}
}

// Classify derives the signal set from the latest indicator row, using the
// previous row only for MACD cross detection. NaN indicator values fail every
// comparison and therefore emit no signal, so undefined warm-up values are
// neutral by construction.
func Classify(latest, prev model.IndicatorRow, th Thresholds) model.SignalSet {
	var set model.SignalSet

	bp := latest.BandPosition
	switch {
	case bp <= th.BandStrongOversold:
		set.Band = append(set.Band, model.SignalStrongOversold)
	case bp <= th.BandOversold:
		set.Band = append(set.Band, model.SignalOversoldRebound)
	case bp >= th.BandStrongOverbought:
		set.Band = append(set.Band, model.SignalStrongOverbought)
	case bp >= th.BandOverbought:
		set.Band = append(set.Band, model.SignalOverboughtPullback)
	}

	if latest.RSI <= th.RSIOversold {
		set.RSI = append(set.RSI, model.SignalRSIOversold)
	} else if latest.RSI >= th.RSIOverbought {
		set.RSI = append(set.RSI, model.SignalRSIOverbought)
	}

	// Crosses fire on the transition bar only, never on steady state.
	if latest.MACD > latest.MACDSignal && prev.MACD <= prev.MACDSignal {
		set.Cross = append(set.Cross, model.SignalGoldenCross)
	} else if latest.MACD < latest.MACDSignal && prev.MACD >= prev.MACDSignal {
		set.Cross = append(set.Cross, model.SignalDeathCross)
	}

	if latest.VolumeRatio >= th.MinVolumeRatio {
		set.Volume = append(set.Volume, model.SignalVolumeSpike)
	}

	if latest.Momentum > th.MomentumThreshold {
		set.Momentum = append(set.Momentum, model.SignalMomentumUp)
	} else if latest.Momentum < -th.MomentumThreshold {
		set.Momentum = append(set.Momentum, model.SignalMomentumDown)
	}

	set.Overall = vote(&set)
	return set
}

// vote is a majority vote over category presence, not magnitude.
func vote(set *model.SignalSet) model.Action {
	bullish, bearish := 0, 0
	if set.Has(model.SignalStrongOversold) || set.Has(model.SignalOversoldRebound) {
		bullish++
	}
	if set.Has(model.SignalRSIOversold) {
		bullish++
	}
	if set.Has(model.SignalGoldenCross) {
		bullish++
	}
	if set.Has(model.SignalStrongOverbought) || set.Has(model.SignalOverboughtPullback) {
		bearish++
	}
	if set.Has(model.SignalRSIOverbought) {
		bearish++
	}

	switch {
	case bullish > bearish:
		return model.ActionBuy
	case bearish > bullish:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}
