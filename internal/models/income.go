package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents money received. Month and year are denormalized from
// the income date so monthly grouping never needs date arithmetic in SQL.
type Income struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	BudgetYearID string          `gorm:"type:uuid;not null;index" json:"budget_year_id"`
	Name         string          `gorm:"not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Source       string          `json:"source"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Month        int             `gorm:"not null" json:"month"`
	Year         int             `gorm:"not null" json:"year"`
	Note         string          `json:"note"`

	// Relationships
	BudgetYear BudgetYear `gorm:"foreignKey:BudgetYearID" json:"budget_year,omitempty"`
}

// StampPeriod derives the denormalized month/year columns from Date.
func (i *Income) StampPeriod() {
	i.Month = int(i.Date.Month())
	i.Year = i.Date.Year()
}
