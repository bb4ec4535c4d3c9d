package models

// Category represents an expense category. Each category points at the
// fund its expenses draw from.
type Category struct {
	Base
	UserID     string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string `gorm:"not null" json:"name"`
	FundID     string `gorm:"type:uuid;not null" json:"fund_id"`
	ColorClass string `json:"color_class"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Fund     Fund      `gorm:"foreignKey:FundID" json:"fund,omitempty"`
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
