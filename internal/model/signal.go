package model

// Signal is a discrete qualitative reading of one indicator.
type Signal string

const (
	SignalStrongOversold     Signal = "STRONG_OVERSOLD"
	SignalOversoldRebound    Signal = "OVERSOLD_REBOUND"
	SignalStrongOverbought   Signal = "STRONG_OVERBOUGHT"
	SignalOverboughtPullback Signal = "OVERBOUGHT_PULLBACK"
	SignalRSIOversold        Signal = "RSI_OVERSOLD"
	SignalRSIOverbought      Signal = "RSI_OVERBOUGHT"
	SignalGoldenCross        Signal = "GOLDEN_CROSS"
	SignalDeathCross         Signal = "DEATH_CROSS"
	SignalVolumeSpike        Signal = "VOLUME_SPIKE"
	SignalMomentumUp         Signal = "MOMENTUM_UP"
	SignalMomentumDown       Signal = "MOMENTUM_DOWN"
)

// Action is the overall classification of an instrument.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// SignalSet groups the classified signals by category.
type SignalSet struct {
	Band     []Signal
	RSI      []Signal
	Cross    []Signal
	Volume   []Signal
	Momentum []Signal
	Overall  Action
}

// Has reports whether the set contains the given signal in any category.
func (s *SignalSet) Has(sig Signal) bool {
	for _, group := range [][]Signal{s.Band, s.RSI, s.Cross, s.Volume, s.Momentum} {
		for _, v := range group {
			if v == sig {
				return true
			}
		}
	}
	return false
}

// All returns every triggered signal, band first, for advice reasoning.
func (s *SignalSet) All() []Signal {
	var out []Signal
	for _, group := range [][]Signal{s.Band, s.RSI, s.Cross, s.Volume, s.Momentum} {
		out = append(out, group...)
	}
	return out
}

// HoldingPeriod is the suggested holding horizon for a position.
type HoldingPeriod string

const (
	HoldingShort  HoldingPeriod = "short"
	HoldingMedium HoldingPeriod = "medium"
	HoldingLong   HoldingPeriod = "long"
)

// RiskLevel is the heuristic risk grade of an entry.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// TradingAdvice is the actionable output for one instrument. Target, stop and
// size stay zero unless the overall action is BUY with sufficient confidence.
type TradingAdvice struct {
	Action        Action
	Confidence    float64
	TargetPrice   float64
	StopLoss      float64
	PositionSize  float64
	HoldingPeriod HoldingPeriod
	RiskLevel     RiskLevel
	Reasoning     []Signal
}

// ScoredCandidate is the result of one analysis pass over one instrument.
// It is never mutated after creation.
type ScoredCandidate struct {
	Code           string
	Name           string
	CurrentPrice   float64
	BandPosition   float64
	RSI            float64
	VolumeRatio    float64
	Signals        SignalSet
	CompositeScore float64
	Advice         TradingAdvice
	Risk           RiskMetrics
	AnalysisDate   string
}
