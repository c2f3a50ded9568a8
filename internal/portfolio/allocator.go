// Package portfolio ranks scored candidates and produces a fixed-weight
// allocation over the top of the list.
package portfolio

import (
	"sort"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// Allocate sorts candidates by composite score descending, takes the top
// maxPositions and assigns each a weight proportional to its score. An empty
// candidate list yields an allocation with zero positions; an all-zero-score
// selection falls back to uniform weights so the sum invariant still holds.
func Allocate(candidates []*model.ScoredCandidate, maxPositions int) *model.PortfolioAllocation {
	alloc := &model.PortfolioAllocation{}
	if len(candidates) == 0 || maxPositions < 1 {
		return alloc
	}

	ranked := make([]*model.ScoredCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})

	if len(ranked) > maxPositions {
		ranked = ranked[:maxPositions]
	}

	var totalScore float64
	for _, c := range ranked {
		totalScore += c.CompositeScore
	}

	var totalVol, totalDD float64
	for _, c := range ranked {
		weight := 1.0 / float64(len(ranked))
		if totalScore > 0 {
			weight = c.CompositeScore / totalScore
		}
		alloc.Positions = append(alloc.Positions, model.Position{
			Code:          c.Code,
			Name:          c.Name,
			CurrentPrice:  c.CurrentPrice,
			Weight:        weight,
			PositionSize:  c.Advice.PositionSize,
			TargetPrice:   c.Advice.TargetPrice,
			StopLoss:      c.Advice.StopLoss,
			Confidence:    c.CompositeScore,
			RiskLevel:     c.Advice.RiskLevel,
			HoldingPeriod: c.Advice.HoldingPeriod,
		})
		totalVol += c.Risk.Volatility
		totalDD += c.Risk.MaxDrawdown
	}

	alloc.TotalPositions = len(alloc.Positions)
	alloc.TotalScore = totalScore
	alloc.AvgVolatility = totalVol / float64(len(ranked))
	alloc.AvgMaxDrawdown = totalDD / float64(len(ranked))
	return alloc
}
