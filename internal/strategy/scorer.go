package strategy

import "github.com/lzx-sdu/stock-picker-auto/internal/model"

// Signal weights for the composite score. Within the band category only the
// strongest applicable bonus applies; the rest are cumulative. Bearish
// signals carry no penalty here, they only influence the overall vote.
const (
	baseScore           = 0.5
	weightBand          = 0.30
	reboundBandFraction = 0.7
	weightRSIOversold   = 0.20
	weightGoldenCross   = 0.20
	weightVolumeSpike   = 0.15
	weightMomentumUp    = 0.15
)

// Score combines the classified signals into a confidence value in [0, 1].
func Score(set *model.SignalSet) float64 {
	score := baseScore

	if set.Has(model.SignalStrongOversold) {
		score += weightBand
	} else if set.Has(model.SignalOversoldRebound) {
		score += weightBand * reboundBandFraction
	}

	if set.Has(model.SignalRSIOversold) {
		score += weightRSIOversold
	}
	if set.Has(model.SignalGoldenCross) {
		score += weightGoldenCross
	}
	if set.Has(model.SignalVolumeSpike) {
		score += weightVolumeSpike
	}
	if set.Has(model.SignalMomentumUp) {
		score += weightMomentumUp
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
