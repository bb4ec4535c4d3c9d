package models

import "time"

// BudgetYear represents one budgeting period, typically but not necessarily
// a calendar year. At most one budget year per user is active at a time.
type BudgetYear struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	IsActive  bool      `gorm:"default:false" json:"is_active"`

	// Relationships
	FundBudgets []FundBudget `gorm:"foreignKey:BudgetYearID" json:"fund_budgets,omitempty"`
}

// Contains reports whether the given date falls inside the budget year (inclusive).
func (y *BudgetYear) Contains(date time.Time) bool {
	return !date.Before(y.StartDate) && !date.After(y.EndDate)
}
