package models

import "github.com/shopspring/decimal"

// FundType represents how a fund's budget is amortized over a budget year.
type FundType string

const (
	// FundTypeMonthly funds budget a fixed amount every month.
	FundTypeMonthly FundType = "monthly"
	// FundTypeAnnual funds budget a single amount for the whole year.
	FundTypeAnnual FundType = "annual"
	// FundTypeSavings funds accumulate toward a target like annual funds
	// but represent money set aside rather than spent.
	FundTypeSavings FundType = "savings"
)

// Fund represents a named envelope of money with its own budgeting behavior.
type Fund struct {
	Base
	UserID          string   `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string   `gorm:"not null" json:"name"`
	Type            FundType `gorm:"not null" json:"type"`
	Level           int      `gorm:"not null;default:1" json:"level"`
	IncludeInBudget bool     `gorm:"default:true" json:"include_in_budget"`
	DisplayOrder    int      `gorm:"default:0" json:"display_order"`
	IsActive        bool     `gorm:"default:true" json:"is_active"`

	// Relationships
	Budgets    []FundBudget `gorm:"foreignKey:FundID" json:"budgets,omitempty"`
	Categories []Category   `gorm:"foreignKey:FundID" json:"categories,omitempty"`
}

// FundBudget holds a fund's budgeted figures for one budget year.
// Amounts are tracked separately: Amount is the budgeted figure
// (per month for monthly funds, per year otherwise), AmountGiven is
// what has been handed out of a monthly fund, Spent is what annual
// and savings funds have consumed.
type FundBudget struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	FundID       string          `gorm:"type:uuid;not null;uniqueIndex:idx_fund_budget_year" json:"fund_id"`
	BudgetYearID string          `gorm:"type:uuid;not null;uniqueIndex:idx_fund_budget_year" json:"budget_year_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	AmountGiven  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_given"`
	Spent        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"spent"`

	// Relationships
	Fund       Fund       `gorm:"foreignKey:FundID" json:"fund,omitempty"`
	BudgetYear BudgetYear `gorm:"foreignKey:BudgetYearID" json:"budget_year,omitempty"`
}
