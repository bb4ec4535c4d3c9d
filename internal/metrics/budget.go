package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nanif/budget-api/internal/models"
)

// Allocation is the rolled-up budget position of one budget year.
type Allocation struct {
	Months         int             `json:"months"`
	TotalBudget    decimal.Decimal `json:"total_budget"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	Remaining      decimal.Decimal `json:"remaining"`
}

// BudgetMonths counts the calendar months a budget year spans, inclusive
// of both endpoints. A year starting and ending in the same month counts
// as one month; the result is never less than one.
func BudgetMonths(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// AllocateBudgets rolls fund budgets up into a year's totals. Callers
// must join each row's owning Fund: the fund's type decides which
// accumulator each side of the row lands in, and funds flagged out of
// the budget are skipped entirely.
//
// Monthly funds are cash envelopes: their budget is amount × months and
// what has left the envelope is amount_given. Annual and savings funds
// are ledgers: their budget is the single amount and consumption is
// spent. The two sides must not be merged.
func AllocateBudgets(start, end time.Time, budgets []models.FundBudget) Allocation {
	alloc := Allocation{
		Months:         BudgetMonths(start, end),
		TotalBudget:    decimal.Zero,
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
	}

	for _, fb := range budgets {
		if !fb.Fund.IncludeInBudget {
			continue
		}
		if fb.Fund.Type == models.FundTypeMonthly {
			alloc.TotalBudget = alloc.TotalBudget.Add(fb.Amount.Mul(decimal.NewFromInt(int64(alloc.Months))))
			alloc.TotalAllocated = alloc.TotalAllocated.Add(fb.AmountGiven)
		} else {
			alloc.TotalBudget = alloc.TotalBudget.Add(fb.Amount)
			alloc.TotalSpent = alloc.TotalSpent.Add(fb.Spent)
		}
	}

	alloc.Remaining = alloc.TotalBudget.Sub(alloc.TotalAllocated).Sub(alloc.TotalSpent)
	return alloc
}
