package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// incomeService handles income business logic.
type incomeService struct {
	db    *gorm.DB
	years BudgetYearServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, years BudgetYearServicer) IncomeServicer {
	return &incomeService{db: db, years: years}
}

// CreateIncome records money received. The owning budget year is resolved
// from the income date, falling back to the active year.
func (s *incomeService) CreateIncome(userID, name string, amount decimal.Decimal, source string, date time.Time, note string) (*models.Income, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Income name is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	year, err := s.years.ResolveBudgetYearForDate(userID, date)
	if err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:       userID,
		BudgetYearID: year.ID,
		Name:         name,
		Amount:       amount,
		Source:       source,
		Date:         date,
		Note:         note,
	}
	income.StampPeriod()

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

func (s *incomeService) incomeParams(userID string, filter IncomeFilter) query.Params {
	return query.Params{
		UserID:        userID,
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
		Search:        filter.Search,
		SearchColumns: []string{"name", "note"},
		Equals: map[string]any{
			"source":         filter.Source,
			"budget_year_id": filter.BudgetYearID,
		},
		Order: "date DESC",
	}
}

// GetUserIncomes returns a filtered, paginated list of incomes, newest first.
func (s *incomeService) GetUserIncomes(userID string, filter IncomeFilter) (*query.PageResponse[models.Income], error) {
	page := filter.Page.OrDefaults()
	scope := s.incomeParams(userID, filter).Scope()

	var totalItems int64
	if err := s.db.Model(&models.Income{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := s.db.Scopes(scope, query.Paginate(page)).Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(incomes, page, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income by ID for a specific user.
func (s *incomeService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome updates the supplied fields of an income. Changing the date
// re-resolves the owning budget year and the denormalized month/year.
func (s *incomeService) UpdateIncome(userID, incomeID, name string, amount *decimal.Decimal, source *string, date *time.Time, note *string) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if source != nil {
		updates["source"] = *source
	}
	if note != nil {
		updates["note"] = *note
	}
	if date != nil {
		year, err := s.years.ResolveBudgetYearForDate(userID, *date)
		if err != nil {
			return nil, err
		}
		updates["date"] = *date
		updates["month"] = int((*date).Month())
		updates["year"] = (*date).Year()
		updates["budget_year_id"] = year.ID
	}

	if len(updates) == 0 {
		return income, nil
	}

	if err := s.db.Model(income).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// DeleteIncome removes an income.
func (s *incomeService) DeleteIncome(userID, incomeID string) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetIncomeSummary folds the full filtered set of incomes into totals,
// the average, and per-source and per-month groups.
func (s *incomeService) GetIncomeSummary(userID string, filter IncomeFilter) (*IncomeSummary, error) {
	scope := s.incomeParams(userID, filter).Scope()

	var incomes []models.Income
	if err := s.db.Scopes(scope).Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	amount := func(i models.Income) decimal.Decimal { return i.Amount }
	total := metrics.Total(incomes, amount)

	return &IncomeSummary{
		Total:   total,
		Count:   len(incomes),
		Average: metrics.Average(total, len(incomes)),
		BySource: metrics.GroupBy(incomes, func(i models.Income) string {
			return metrics.KeyOr(i.Source, "Unknown")
		}, amount),
		ByMonth: metrics.GroupBy(incomes, func(i models.Income) string {
			return fmt.Sprintf("%04d-%02d", i.Year, i.Month)
		}, amount),
	}, nil
}
