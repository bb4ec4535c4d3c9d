package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType represents the direction of a debt.
type DebtType string

const (
	DebtTypeOwedToMe DebtType = "owed_to_me"
	DebtTypeIOwe     DebtType = "i_owe"
)

// Debt represents money owed in either direction. PaidDate is set exactly
// when IsPaid is true.
type Debt struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        DebtType        `gorm:"not null" json:"type"`
	IsPaid      bool            `gorm:"default:false" json:"is_paid"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
	Note        string          `json:"note"`
}
