package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// debtService handles debt business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt records money owed in either direction. New debts start unpaid.
func (s *debtService) CreateDebt(userID, description string, amount decimal.Decimal, debtType models.DebtType, note string) (*models.Debt, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	debt := &models.Debt{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Type:        debtType,
		Note:        note,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts returns a filtered, paginated list of debts, newest first.
func (s *debtService) GetUserDebts(userID string, filter DebtFilter) (*query.PageResponse[models.Debt], error) {
	page := filter.Page.OrDefaults()

	equals := map[string]any{}
	if filter.Type != nil {
		equals["type"] = string(*filter.Type)
	}
	if filter.IsPaid != nil {
		equals["is_paid"] = *filter.IsPaid
	}

	scope := query.Params{
		UserID:        userID,
		Search:        filter.Search,
		SearchColumns: []string{"description", "note"},
		Equals:        equals,
		Order:         "created_at DESC",
	}.Scope()

	var totalItems int64
	if err := s.db.Model(&models.Debt{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := s.db.Scopes(scope, query.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(debts, page, totalItems)
	return &result, nil
}

// GetDebtByID retrieves a debt by ID for a specific user.
func (s *debtService) GetDebtByID(userID, debtID string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt updates the supplied fields of a debt.
func (s *debtService) UpdateDebt(userID, debtID, description string, amount *decimal.Decimal, debtType *models.DebtType, note *string) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != "" {
		updates["description"] = description
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if debtType != nil {
		updates["type"] = *debtType
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) == 0 {
		return debt, nil
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// ToggleDebtPaid flips a debt between paid and unpaid, keeping the paid
// date in step: set when marking paid, cleared when reopening.
func (s *debtService) ToggleDebtPaid(userID, debtID string) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_paid": !debt.IsPaid}
	if debt.IsPaid {
		updates["paid_date"] = nil
	} else {
		updates["paid_date"] = time.Now()
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetDebtByID(userID, debtID)
}

// DeleteDebt removes a debt.
func (s *debtService) DeleteDebt(userID, debtID string) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetDebtSummary reduces a user's open debts into the two directions and
// their net. Paid debts only contribute to the paid count.
func (s *debtService) GetDebtSummary(userID string) (*DebtSummary, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &DebtSummary{
		OwedToMe: decimal.Zero,
		IOwe:     decimal.Zero,
	}
	var unpaid []models.Debt
	for _, d := range debts {
		if d.IsPaid {
			summary.PaidCount++
			continue
		}
		summary.UnpaidCount++
		unpaid = append(unpaid, d)
	}

	for direction, g := range metrics.GroupBy(unpaid,
		func(d models.Debt) string { return string(d.Type) },
		func(d models.Debt) decimal.Decimal { return d.Amount },
	) {
		switch models.DebtType(direction) {
		case models.DebtTypeOwedToMe:
			summary.OwedToMe = g.Total
		case models.DebtTypeIOwe:
			summary.IOwe = g.Total
		}
	}

	summary.NetDebt = summary.OwedToMe.Sub(summary.IOwe)
	return summary, nil
}
