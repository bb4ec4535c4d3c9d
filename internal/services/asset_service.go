package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// assetService handles asset snapshot business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateSnapshot records a point-in-time picture of the user's holdings.
// The snapshot row and its detail lines are written in one transaction.
func (s *assetService) CreateSnapshot(userID string, date time.Time, note string, details []AssetDetailInput) (*models.AssetSnapshot, error) {
	if len(details) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one asset line is required")
	}

	seen := make(map[string]bool, len(details))
	for _, d := range details {
		if d.AssetType == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset type is required on every line")
		}
		if seen[d.AssetType] {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Duplicate asset type: "+d.AssetType)
		}
		seen[d.AssetType] = true
		if d.Amount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amounts cannot be negative")
		}
	}

	snapshot := &models.AssetSnapshot{
		UserID: userID,
		Date:   date,
		Note:   note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		for _, d := range details {
			detail := models.AssetDetail{
				AssetSnapshotID: snapshot.ID,
				AssetType:       d.AssetType,
				AssetName:       d.AssetName,
				Amount:          d.Amount,
				Category:        d.Category,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
			snapshot.Details = append(snapshot.Details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snapshot, nil
}

// GetUserSnapshots returns snapshots with their detail lines, newest
// first, optionally restricted to a date range.
func (s *assetService) GetUserSnapshots(userID string, startDate, endDate *time.Time, page query.PageRequest) (*query.PageResponse[models.AssetSnapshot], error) {
	page = page.OrDefaults()
	scope := query.Params{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Order:     "date DESC",
	}.Scope()

	var totalItems int64
	if err := s.db.Model(&models.AssetSnapshot{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.AssetSnapshot
	if err := s.db.Preload("Details").Scopes(scope, query.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(snapshots, page, totalItems)
	return &result, nil
}

// GetLatestSnapshot returns the user's most recent snapshot.
func (s *assetService) GetLatestSnapshot(userID string) (*models.AssetSnapshot, error) {
	var snapshot models.AssetSnapshot
	err := s.db.Preload("Details").
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}

// GetSnapshotByID retrieves a snapshot with its detail lines.
func (s *assetService) GetSnapshotByID(userID, snapshotID string) (*models.AssetSnapshot, error) {
	var snapshot models.AssetSnapshot
	err := s.db.Preload("Details").
		Where("id = ? AND user_id = ?", snapshotID, userID).
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}

// DeleteSnapshot removes a snapshot and its detail lines.
func (s *assetService) DeleteSnapshot(userID, snapshotID string) error {
	snapshot, err := s.GetSnapshotByID(userID, snapshotID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_snapshot_id = ?", snapshotID).Delete(&models.AssetDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(snapshot).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTrends computes the net-worth trend across the user's snapshots,
// oldest first, optionally restricted to a date range. No snapshots is
// not an error; the trend is simply empty.
func (s *assetService) GetTrends(userID string, startDate, endDate *time.Time) (*metrics.TrendResult, error) {
	scope := query.Params{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Order:     "date ASC",
	}.Scope()

	var snapshots []models.AssetSnapshot
	if err := s.db.Preload("Details").Scopes(scope).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := metrics.Trend(snapshots)
	return &result, nil
}
