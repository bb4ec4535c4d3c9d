package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
)

// fundService handles fund and fund-budget business logic.
type fundService struct {
	db *gorm.DB
}

// NewFundService creates a new FundServicer.
func NewFundService(db *gorm.DB) FundServicer {
	return &fundService{db: db}
}

// CreateFund creates a new fund.
func (s *fundService) CreateFund(userID, name string, fundType models.FundType, level int, includeInBudget bool, displayOrder int) (*models.Fund, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fund name is required")
	}
	if level < 1 || level > 3 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fund level must be between 1 and 3")
	}

	var count int64
	if err := s.db.Model(&models.Fund{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateFundName
	}

	fund := &models.Fund{
		UserID:          userID,
		Name:            name,
		Type:            fundType,
		Level:           level,
		IncludeInBudget: includeInBudget,
		DisplayOrder:    displayOrder,
		IsActive:        true,
	}

	if err := s.db.Create(fund).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateFundName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return fund, nil
}

// GetUserFunds returns a user's funds in display order. When budgetYearID
// is supplied, each fund carries its budget rows for that year.
func (s *fundService) GetUserFunds(userID string, budgetYearID string) ([]models.Fund, error) {
	q := s.db.Where("user_id = ?", userID).Order("display_order ASC, name ASC")
	if budgetYearID != "" {
		q = q.Preload("Budgets", "budget_year_id = ?", budgetYearID)
	}

	var funds []models.Fund
	if err := q.Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return funds, nil
}

// GetFundByID retrieves a fund by ID for a specific user.
func (s *fundService) GetFundByID(userID, fundID string) (*models.Fund, error) {
	var fund models.Fund
	if err := s.db.Where("id = ? AND user_id = ?", fundID, userID).First(&fund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFundNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fund, nil
}

// UpdateFund updates the supplied fields of a fund.
func (s *fundService) UpdateFund(userID, fundID, name string, fundType *models.FundType, level *int, includeInBudget, isActive *bool, displayOrder *int) (*models.Fund, error) {
	fund, err := s.GetFundByID(userID, fundID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" && name != fund.Name {
		var count int64
		if err := s.db.Model(&models.Fund{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, name, fundID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateFundName
		}
		updates["name"] = name
	}
	if fundType != nil {
		updates["type"] = *fundType
	}
	if level != nil {
		if *level < 1 || *level > 3 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fund level must be between 1 and 3")
		}
		updates["level"] = *level
	}
	if includeInBudget != nil {
		updates["include_in_budget"] = *includeInBudget
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if displayOrder != nil {
		updates["display_order"] = *displayOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(fund).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return fund, nil
}

// DeleteFund hard-deletes a fund with no budgets, categories, or expenses
// attached. Funds with history should be deactivated instead.
func (s *fundService) DeleteFund(userID, fundID string) error {
	fund, err := s.GetFundByID(userID, fundID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.FundBudget{}).Where("fund_id = ?", fundID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		if err := s.db.Model(&models.Category{}).Where("fund_id = ?", fundID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if count == 0 {
		if err := s.db.Model(&models.Expense{}).Where("fund_id = ?", fundID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if count > 0 {
		return apperrors.ErrFundInUse
	}

	if err := s.db.Delete(fund).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpsertFundBudget creates or updates the fund's budget row for one year.
// Only supplied amounts change; a fresh row starts every figure at zero.
func (s *fundService) UpsertFundBudget(userID, fundID, yearID string, amount, amountGiven, spent *decimal.Decimal) (*models.FundBudget, error) {
	if _, err := s.GetFundByID(userID, fundID); err != nil {
		return nil, err
	}

	var year models.BudgetYear
	if err := s.db.Where("id = ? AND user_id = ?", yearID, userID).First(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetYearNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, d := range []*decimal.Decimal{amount, amountGiven, spent} {
		if d != nil && d.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget amounts cannot be negative")
		}
	}

	var fb models.FundBudget
	err := s.db.Where("user_id = ? AND fund_id = ? AND budget_year_id = ?", userID, fundID, yearID).First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fb = models.FundBudget{
			UserID:       userID,
			FundID:       fundID,
			BudgetYearID: yearID,
			Amount:       decimal.Zero,
			AmountGiven:  decimal.Zero,
			Spent:        decimal.Zero,
		}
		if amount != nil {
			fb.Amount = *amount
		}
		if amountGiven != nil {
			fb.AmountGiven = *amountGiven
		}
		if spent != nil {
			fb.Spent = *spent
		}
		if err := s.db.Create(&fb).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &fb, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if amount != nil {
		updates["amount"] = *amount
	}
	if amountGiven != nil {
		updates["amount_given"] = *amountGiven
	}
	if spent != nil {
		updates["spent"] = *spent
	}
	if len(updates) > 0 {
		if err := s.db.Model(&fb).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &fb, nil
}
