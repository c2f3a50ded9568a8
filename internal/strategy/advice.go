package strategy

import "github.com/lzx-sdu/stock-picker-auto/internal/model"

// AdviceParams control when and how a BUY recommendation is produced.
type AdviceParams struct {
	ConfidenceThreshold float64
	MaxPositionRatio    float64
	BandOversold        float64 // lower extreme zone boundary
	BandOverbought      float64 // upper extreme zone boundary
	StopLossBase        float64 // medium-risk stop distance, scaled per tier
	TakeProfit          float64 // ceiling on the target above the entry
}

// neutralTargetMultiplier is the mid-band target policy: outside the extreme
// band zones the target is a flat 5% above the current price.
const neutralTargetMultiplier = 1.05

// stopTierMultipliers scale the configured base stop distance by assessed
// risk. At the default 8% base the tiers come out to 5%, 8% and 12%.
var stopTierMultipliers = map[model.RiskLevel]float64{
	model.RiskLow:    0.625,
	model.RiskMedium: 1.0,
	model.RiskHigh:   1.5,
}

// Advise derives trading advice from the classified signals and score. Unless
// the overall action is BUY with score at or above the confidence threshold,
// the advice carries the action with zeroed target, stop and size.
func Advise(set *model.SignalSet, score, currentPrice float64, row model.IndicatorRow, p AdviceParams) model.TradingAdvice {
	advice := model.TradingAdvice{
		Action:        set.Overall,
		Confidence:    score,
		HoldingPeriod: model.HoldingMedium,
		RiskLevel:     model.RiskMedium,
	}

	if set.Overall != model.ActionBuy || score < p.ConfidenceThreshold {
		return advice
	}

	riskLevel := assessRiskLevel(set)
	bp := row.BandPosition

	advice.TargetPrice = targetPrice(bp, currentPrice, row, p)
	advice.StopLoss = stopLoss(bp, currentPrice, riskLevel, row, p)
	advice.PositionSize = p.MaxPositionRatio * score
	advice.HoldingPeriod = holdingPeriod(set)
	advice.RiskLevel = riskLevel
	advice.Reasoning = set.All()
	return advice
}

// targetPrice is the mean-reversion target: the band middle in either extreme
// zone, otherwise a flat 5% above the entry. The configured take-profit ratio
// caps how far above the entry any target may sit.
func targetPrice(bp, currentPrice float64, row model.IndicatorRow, p AdviceParams) float64 {
	target := currentPrice * neutralTargetMultiplier
	if bp <= p.BandOversold || bp >= p.BandOverbought {
		target = row.MovingAverage
	}
	if ceiling := currentPrice * (1 + p.TakeProfit); p.TakeProfit > 0 && target > ceiling {
		target = ceiling
	}
	return target
}

// stopLoss places the stop at the nearer band edge in extreme zones, or a
// risk-tiered fraction of the configured base below the entry elsewhere.
func stopLoss(bp, currentPrice float64, level model.RiskLevel, row model.IndicatorRow, p AdviceParams) float64 {
	if bp <= p.BandOversold {
		return row.LowerBand
	}
	if bp >= p.BandOverbought {
		return row.UpperBand
	}
	return currentPrice * (1 - p.StopLossBase*stopTierMultipliers[level])
}

func holdingPeriod(set *model.SignalSet) model.HoldingPeriod {
	if set.Has(model.SignalStrongOversold) {
		return model.HoldingLong
	}
	if set.Has(model.SignalOversoldRebound) {
		return model.HoldingMedium
	}
	return model.HoldingShort
}

// assessRiskLevel counts corroborating bullish signals: more confirmation
// means a lower assessed risk. Heuristic, not a statistical measure.
func assessRiskLevel(set *model.SignalSet) model.RiskLevel {
	confirming := 0
	if set.Has(model.SignalVolumeSpike) {
		confirming++
	}
	if set.Has(model.SignalGoldenCross) {
		confirming++
	}
	if set.Has(model.SignalMomentumUp) {
		confirming++
	}
	switch {
	case confirming >= 2:
		return model.RiskLow
	case confirming >= 1:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
