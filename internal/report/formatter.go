// Package report renders human-readable summaries of a screening run.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// FormatRunSummary renders the aggregate view of one screening run: how many
// candidates were picked, their price and band-position distribution, and the
// top picks with advice.
func FormatRunSummary(candidates []*model.ScoredCandidate, alloc *model.PortfolioAllocation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Screening Summary | %s ===\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Candidates: %d\n", len(candidates)))

	if len(candidates) > 0 {
		minPrice, maxPrice := candidates[0].CurrentPrice, candidates[0].CurrentPrice
		sumPrice := 0.0
		var positions []float64
		for _, c := range candidates {
			sumPrice += c.CurrentPrice
			if c.CurrentPrice < minPrice {
				minPrice = c.CurrentPrice
			}
			if c.CurrentPrice > maxPrice {
				maxPrice = c.CurrentPrice
			}
			if !math.IsNaN(c.BandPosition) {
				positions = append(positions, c.BandPosition)
			}
		}
		b.WriteString(fmt.Sprintf("Avg price: %.2f (range %.2f - %.2f)\n",
			sumPrice/float64(len(candidates)), minPrice, maxPrice))
		m, s := meanStd(positions)
		b.WriteString(fmt.Sprintf("Band position: mean %.3f, std %.3f\n", m, s))

		b.WriteString("\nTop picks:\n")
		top := candidates
		if len(top) > 10 {
			top = top[:10]
		}
		for i, c := range top {
			b.WriteString(fmt.Sprintf("  %2d. %s %s  score %.3f  price %.2f  bp %.3f  rsi %.1f  %s/%s\n",
				i+1, c.Code, c.Name, c.CompositeScore, c.CurrentPrice,
				c.BandPosition, c.RSI, c.Advice.RiskLevel, c.Advice.HoldingPeriod))
		}
	}

	if alloc != nil && alloc.TotalPositions > 0 {
		b.WriteString(fmt.Sprintf("\nPortfolio (%d positions, avg vol %.1f%%, avg drawdown %.1f%%):\n",
			alloc.TotalPositions, alloc.AvgVolatility*100, alloc.AvgMaxDrawdown*100))
		for i, p := range alloc.Positions {
			b.WriteString(fmt.Sprintf("  %2d. %s %s  weight %.1f%%  size %.1f%%  target %.2f  stop %.2f\n",
				i+1, p.Code, p.Name, p.Weight*100, p.PositionSize*100, p.TargetPrice, p.StopLoss))
		}
	}

	return b.String()
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))
	if len(xs) < 2 {
		return m, 0
	}
	sq := 0.0
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return m, math.Sqrt(sq / float64(len(xs)-1))
}
