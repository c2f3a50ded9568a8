package model

// Position is one slot of a portfolio allocation.
type Position struct {
	Code          string
	Name          string
	CurrentPrice  float64
	Weight        float64
	PositionSize  float64
	TargetPrice   float64
	StopLoss      float64
	Confidence    float64
	RiskLevel     RiskLevel
	HoldingPeriod HoldingPeriod
}

// PortfolioAllocation is the ranked, weight-normalized subset of candidates.
// Weights sum to 1.0 whenever total score is positive; a degenerate all-zero
// batch falls back to uniform weights.
type PortfolioAllocation struct {
	Positions      []Position
	TotalPositions int
	TotalScore     float64
	AvgVolatility  float64
	AvgMaxDrawdown float64
}
