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

// expenseService handles expense business logic.
type expenseService struct {
	db         *gorm.DB
	years      BudgetYearServicer
	categories CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, years BudgetYearServicer, categories CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, years: years, categories: categories}
}

// CreateExpense records money spent. The fund is taken from the category
// and the owning budget year is resolved from the expense date.
func (s *expenseService) CreateExpense(userID, name string, amount decimal.Decimal, categoryID string, date time.Time, note string) (*models.Expense, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense name is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	category, err := s.categories.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	year, err := s.years.ResolveBudgetYearForDate(userID, date)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:       userID,
		BudgetYearID: year.ID,
		CategoryID:   category.ID,
		FundID:       category.FundID,
		Name:         name,
		Amount:       amount,
		Date:         date,
		Note:         note,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

func (s *expenseService) expenseParams(userID string, filter ExpenseFilter) query.Params {
	return query.Params{
		UserID:        userID,
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
		Search:        filter.Search,
		SearchColumns: []string{"name", "note"},
		Equals: map[string]any{
			"category_id":    filter.CategoryID,
			"fund_id":        filter.FundID,
			"budget_year_id": filter.BudgetYearID,
		},
		Order: "date DESC",
	}
}

// GetUserExpenses returns a filtered, paginated list of expenses with
// their category and fund joined, newest first.
func (s *expenseService) GetUserExpenses(userID string, filter ExpenseFilter) (*query.PageResponse[models.Expense], error) {
	page := filter.Page.OrDefaults()
	scope := s.expenseParams(userID, filter).Scope()

	var totalItems int64
	if err := s.db.Model(&models.Expense{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Preload("Category").Preload("Fund").
		Scopes(scope, query.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(expenses, page, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").Preload("Fund").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates the supplied fields of an expense. A new category
// also moves the expense to that category's fund; a new date re-resolves
// the owning budget year.
func (s *expenseService) UpdateExpense(userID, expenseID, name string, amount *decimal.Decimal, categoryID *string, date *time.Time, note *string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
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
	if note != nil {
		updates["note"] = *note
	}
	if categoryID != nil && *categoryID != "" {
		category, err := s.categories.GetCategoryByID(userID, *categoryID)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = category.ID
		updates["fund_id"] = category.FundID
	}
	if date != nil {
		year, err := s.years.ResolveBudgetYearForDate(userID, *date)
		if err != nil {
			return nil, err
		}
		updates["date"] = *date
		updates["budget_year_id"] = year.ID
	}

	if len(updates) == 0 {
		return expense, nil
	}

	// Update by primary key rather than through the loaded struct: the
	// preloaded Category/Fund associations would otherwise be saved back
	// and overwrite a changed category_id/fund_id.
	if err := s.db.Model(&models.Expense{}).
		Where("id = ?", expense.ID).
		Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetExpenseByID(userID, expenseID)
}

// DeleteExpense removes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetExpenseSummary folds the full filtered set of expenses into totals,
// the average, and per-category, per-fund, and per-month groups.
func (s *expenseService) GetExpenseSummary(userID string, filter ExpenseFilter) (*ExpenseSummary, error) {
	scope := s.expenseParams(userID, filter).Scope()

	var expenses []models.Expense
	if err := s.db.Preload("Category").Preload("Fund").
		Scopes(scope).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	amount := func(e models.Expense) decimal.Decimal { return e.Amount }
	total := metrics.Total(expenses, amount)

	return &ExpenseSummary{
		Total:   total,
		Count:   len(expenses),
		Average: metrics.Average(total, len(expenses)),
		ByCategory: metrics.GroupBy(expenses, func(e models.Expense) string {
			return metrics.KeyOr(e.Category.Name, "Uncategorized")
		}, amount),
		ByFund: metrics.GroupBy(expenses, func(e models.Expense) string {
			return metrics.KeyOr(e.Fund.Name, "Other")
		}, amount),
		ByMonth: metrics.GroupBy(expenses, func(e models.Expense) string {
			return fmt.Sprintf("%04d-%02d", e.Date.Year(), int(e.Date.Month()))
		}, amount),
	}, nil
}
