package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nanif/budget-api/internal/models"
)

// TrendPoint is one snapshot reduced to its net worth plus the growth
// against the previous point.
type TrendPoint struct {
	SnapshotID string          `json:"snapshot_id"`
	Date       time.Time       `json:"date"`
	NetWorth   decimal.Decimal `json:"net_worth"`
	GrowthRate float64         `json:"growth_rate"`
}

// TrendResult is the full net-worth trend across a user's snapshots.
type TrendResult struct {
	Points            []TrendPoint    `json:"points"`
	CurrentNetWorth   decimal.Decimal `json:"current_net_worth"`
	AverageGrowthRate float64         `json:"average_growth_rate"`
}

// NetWorth reduces a snapshot's detail lines: assets add, liabilities
// subtract.
func NetWorth(details []models.AssetDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		if d.Category == models.AssetCategoryLiability {
			total = total.Sub(d.Amount)
		} else {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// Trend computes growth rates across snapshots ordered oldest first.
// The first point's rate is always zero (no baseline), and a zero
// previous net worth also yields zero rather than dividing by it.
// AverageGrowthRate is the mean of the rates excluding the first point,
// zero when there are fewer than two snapshots.
func Trend(snapshots []models.AssetSnapshot) TrendResult {
	result := TrendResult{
		Points:          make([]TrendPoint, 0, len(snapshots)),
		CurrentNetWorth: decimal.Zero,
	}

	var prev decimal.Decimal
	var rateSum float64
	for i, snap := range snapshots {
		netWorth := NetWorth(snap.Details)

		var rate float64
		if i > 0 && !prev.IsZero() {
			rate = netWorth.Sub(prev).Mul(decimal.NewFromInt(100)).Div(prev.Abs()).InexactFloat64()
		}
		if i > 0 {
			rateSum += rate
		}

		result.Points = append(result.Points, TrendPoint{
			SnapshotID: snap.ID,
			Date:       snap.Date,
			NetWorth:   netWorth,
			GrowthRate: rate,
		})
		prev = netWorth
	}

	if len(snapshots) > 0 {
		result.CurrentNetWorth = prev
	}
	if len(snapshots) >= 2 {
		result.AverageGrowthRate = rateSum / float64(len(snapshots)-1)
	}
	return result
}
