// Package metrics implements the aggregation core of the budget API:
// amount reducers, budget allocation, and net-worth trends. Everything
// here is a pure fold over rows the services have already fetched and
// scoped to one user; nothing touches the database.
package metrics

import "github.com/shopspring/decimal"

// Group holds the per-key result of a grouped reduction.
type Group struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Total sums the amount of every item. An empty list yields zero.
func Total[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

// Average divides total by count, or returns zero when count is zero.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// Percentage returns part as a percentage of whole. A zero whole yields 0,
// never NaN or infinity.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).InexactFloat64()
}

// GroupBy folds items into per-key counts and totals. Keys come from the
// caller's key function; use KeyOr to map blank keys to a sentinel label.
func GroupBy[T any](items []T, key func(T) string, amount func(T) decimal.Decimal) map[string]Group {
	groups := make(map[string]Group)
	for _, item := range items {
		g := groups[key(item)]
		g.Count++
		g.Total = g.Total.Add(amount(item))
		groups[key(item)] = g
	}
	return groups
}

// KeyOr returns key, or fallback when key is blank. Grouped reductions
// use it to label rows whose join produced no name.
func KeyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}
