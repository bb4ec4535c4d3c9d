package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents money spent against a category and its fund.
type Expense struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	BudgetYearID string          `gorm:"type:uuid;not null;index" json:"budget_year_id"`
	CategoryID   string          `gorm:"type:uuid;not null" json:"category_id"`
	FundID       string          `gorm:"type:uuid;not null" json:"fund_id"`
	Name         string          `gorm:"not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Note         string          `json:"note"`

	// Relationships
	BudgetYear BudgetYear `gorm:"foreignKey:BudgetYearID" json:"budget_year,omitempty"`
	Category   Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Fund       Fund       `gorm:"foreignKey:FundID" json:"fund,omitempty"`
}
