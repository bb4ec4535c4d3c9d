package services

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
)

// settingService handles per-user system settings.
type settingService struct {
	db *gorm.DB
}

// NewSettingService creates a new SettingServicer.
func NewSettingService(db *gorm.DB) SettingServicer {
	return &settingService{db: db}
}

// GetUserSettings returns all of a user's settings ordered by key.
func (s *settingService) GetUserSettings(userID string) ([]models.SystemSetting, error) {
	var settings []models.SystemSetting
	if err := s.db.Where("user_id = ?", userID).Order("setting_key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// GetSetting returns one setting by key.
func (s *settingService) GetSetting(userID, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	if err := s.db.Where("user_id = ? AND setting_key = ?", userID, key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &setting, nil
}

// UpsertSetting creates or replaces a setting. Values are stored as text
// whatever their declared type, but must parse as that type.
func (s *settingService) UpsertSetting(userID, key, value string, dataType models.SettingType) (*models.SystemSetting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Setting key is required")
	}
	if err := validateSettingValue(value, dataType); err != nil {
		return nil, err
	}

	setting, err := s.GetSetting(userID, key)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		setting = &models.SystemSetting{
			UserID:       userID,
			SettingKey:   key,
			SettingValue: value,
			DataType:     dataType,
		}
		if err := s.db.Create(setting).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return setting, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"setting_value": value,
		"data_type":     dataType,
	}
	if err := s.db.Model(setting).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return setting, nil
}

// DeleteSetting removes a setting by key.
func (s *settingService) DeleteSetting(userID, key string) error {
	setting, err := s.GetSetting(userID, key)
	if err != nil {
		return err
	}

	if err := s.db.Delete(setting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateSettingValue(value string, dataType models.SettingType) error {
	switch dataType {
	case models.SettingTypeString:
		return nil
	case models.SettingTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Value is not a number")
		}
	case models.SettingTypeBoolean:
		if value != "true" && value != "false" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Value must be 'true' or 'false'")
		}
	case models.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Value is not valid JSON")
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown setting type")
	}
	return nil
}
