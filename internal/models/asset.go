package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nanif/budget-api/internal/uuid"

	"gorm.io/gorm"
)

// AssetCategory tells whether a detail line adds to or subtracts from net worth.
type AssetCategory string

const (
	AssetCategoryAsset     AssetCategory = "asset"
	AssetCategoryLiability AssetCategory = "liability"
)

// AssetSnapshot represents a point-in-time picture of a user's holdings.
// Snapshots are immutable time-series data — no Base embed, no updates.
type AssetSnapshot struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Details []AssetDetail `gorm:"foreignKey:AssetSnapshotID" json:"details,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *AssetSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}

// AssetDetail is one line inside a snapshot: a single holding or liability.
type AssetDetail struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	AssetSnapshotID string          `gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_asset_type" json:"asset_snapshot_id"`
	AssetType       string          `gorm:"not null;uniqueIndex:idx_snapshot_asset_type" json:"asset_type"`
	AssetName       string          `gorm:"not null" json:"asset_name"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category        AssetCategory   `gorm:"not null;default:asset" json:"category"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (d *AssetDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New()
	}
	return nil
}
