package models

import "time"

// Task represents a to-do item. CompletedAt is set exactly when
// Completed is true.
type Task struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Important   bool       `gorm:"default:false" json:"important"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
