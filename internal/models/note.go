package models

// Note represents a free-form user note. Pinned notes sort ahead of the rest.
type Note struct {
	Base
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	IsPinned bool   `gorm:"default:false" json:"is_pinned"`
}
