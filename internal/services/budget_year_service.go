package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
)

// budgetYearService handles budget-year business logic.
type budgetYearService struct {
	db *gorm.DB
}

// NewBudgetYearService creates a new BudgetYearServicer.
func NewBudgetYearService(db *gorm.DB) BudgetYearServicer {
	return &budgetYearService{db: db}
}

// CreateBudgetYear creates a new, inactive budget year. Years are activated
// explicitly so creating next year's period never silently switches the
// current one off.
func (s *budgetYearService) CreateBudgetYear(userID, name string, startDate, endDate time.Time) (*models.BudgetYear, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidBudgetYear, "End date must be after start date")
	}

	year := &models.BudgetYear{
		UserID:    userID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  false,
	}

	if err := s.db.Create(year).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return year, nil
}

// GetUserBudgetYears returns all budget years for a user, newest first.
func (s *budgetYearService) GetUserBudgetYears(userID string) ([]models.BudgetYear, error) {
	var years []models.BudgetYear
	if err := s.db.Where("user_id = ?", userID).Order("start_date DESC").Find(&years).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return years, nil
}

// GetBudgetYearByID returns a budget year owned by the user.
func (s *budgetYearService) GetBudgetYearByID(userID, yearID string) (*models.BudgetYear, error) {
	var year models.BudgetYear
	if err := s.db.Where("id = ? AND user_id = ?", yearID, userID).First(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetYearNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &year, nil
}

// GetActiveBudgetYear returns the user's currently active budget year.
func (s *budgetYearService) GetActiveBudgetYear(userID string) (*models.BudgetYear, error) {
	var year models.BudgetYear
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoActiveBudgetYear
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &year, nil
}

// ResolveBudgetYearForDate finds the budget year a dated record belongs to:
// the year whose date range contains the date, else the active year, else
// an error the caller surfaces as a 400.
func (s *budgetYearService) ResolveBudgetYearForDate(userID string, date time.Time) (*models.BudgetYear, error) {
	var year models.BudgetYear
	err := s.db.Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, date, date).
		Order("start_date DESC").
		First(&year).Error
	if err == nil {
		return &year, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	active, err := s.GetActiveBudgetYear(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveBudgetYear) {
			return nil, apperrors.ErrDateOutsideAnyBudget
		}
		return nil, err
	}
	return active, nil
}

// UpdateBudgetYear updates the supplied fields of a budget year.
func (s *budgetYearService) UpdateBudgetYear(userID, yearID, name string, startDate, endDate *time.Time) (*models.BudgetYear, error) {
	year, err := s.GetBudgetYearByID(userID, yearID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	newStart, newEnd := year.StartDate, year.EndDate
	if startDate != nil {
		newStart = *startDate
		updates["start_date"] = *startDate
	}
	if endDate != nil {
		newEnd = *endDate
		updates["end_date"] = *endDate
	}
	if !newEnd.After(newStart) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidBudgetYear, "End date must be after start date")
	}

	if len(updates) == 0 {
		return year, nil
	}

	if err := s.db.Model(year).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return year, nil
}

// ActivateBudgetYear makes the given year the user's single active one.
// Deactivate-all and activate-one run inside one transaction so two
// concurrent activations can never leave a user with two active years.
func (s *budgetYearService) ActivateBudgetYear(userID, yearID string) (*models.BudgetYear, error) {
	year, err := s.GetBudgetYearByID(userID, yearID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BudgetYear{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.BudgetYear{}).
			Where("id = ? AND user_id = ?", yearID, userID).
			Update("is_active", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	year.IsActive = true
	return year, nil
}

// DeleteBudgetYear removes a budget year that no other records point at.
func (s *budgetYearService) DeleteBudgetYear(userID, yearID string) error {
	year, err := s.GetBudgetYearByID(userID, yearID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Income{}).Where("budget_year_id = ?", yearID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		if err := s.db.Model(&models.Expense{}).Where("budget_year_id = ?", yearID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if count == 0 {
		if err := s.db.Model(&models.FundBudget{}).Where("budget_year_id = ?", yearID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if count > 0 {
		return apperrors.ErrBudgetYearInUse
	}

	if err := s.db.Delete(year).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
