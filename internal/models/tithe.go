package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tithe represents a charitable giving entry.
type Tithe struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Note        string          `json:"note"`
}
