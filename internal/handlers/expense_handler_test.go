package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

type mockExpenseService struct {
	createExpenseFn     func(userID, name string, amount decimal.Decimal, categoryID string, date time.Time, note string) (*models.Expense, error)
	getUserExpensesFn   func(userID string, filter services.ExpenseFilter) (*query.PageResponse[models.Expense], error)
	getExpenseByIDFn    func(userID, expenseID string) (*models.Expense, error)
	updateExpenseFn     func(userID, expenseID, name string, amount *decimal.Decimal, categoryID *string, date *time.Time, note *string) (*models.Expense, error)
	deleteExpenseFn     func(userID, expenseID string) error
	getExpenseSummaryFn func(userID string, filter services.ExpenseFilter) (*services.ExpenseSummary, error)
}

func (m *mockExpenseService) CreateExpense(userID, name string, amount decimal.Decimal, categoryID string, date time.Time, note string) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, name, amount, categoryID, date, note)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID string, filter services.ExpenseFilter) (*query.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, filter)
	}
	return &query.PageResponse[models.Expense]{Data: []models.Expense{}}, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID, name string, amount *decimal.Decimal, categoryID *string, date *time.Time, note *string) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, name, amount, categoryID, date, note)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) GetExpenseSummary(userID string, filter services.ExpenseFilter) (*services.ExpenseSummary, error) {
	if m.getExpenseSummaryFn != nil {
		return m.getExpenseSummaryFn(userID, filter)
	}
	return &services.ExpenseSummary{}, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses", handler.GetExpenses)
	auth.GET("/expenses/summary", handler.GetExpenseSummary)
	auth.GET("/expenses/:id", handler.GetExpense)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockExpenseService{
			createExpenseFn: func(_, name string, amount decimal.Decimal, categoryID string, date time.Time, _ string) (*models.Expense, error) {
				return &models.Expense{
					Base:       models.Base{ID: testUserID},
					Name:       name,
					Amount:     amount,
					CategoryID: categoryID,
					Date:       date,
				}, nil
			},
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Weekly shop","amount":"342.50","category_id":"`+testUserID+`","date":"2026-01-15T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["name"] != "Weekly shop" {
			t.Errorf("expected name in response, got %v", expense["name"])
		}
	})

	t.Run("returns 400 when category unknown", func(t *testing.T) {
		svc := &mockExpenseService{
			createExpenseFn: func(_, _ string, _ decimal.Decimal, _ string, _ time.Time, _ string) (*models.Expense, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Weekly shop","amount":"342.50","category_id":"`+testUserID+`","date":"2026-01-15T00:00:00Z"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 when date falls outside budget years", func(t *testing.T) {
		svc := &mockExpenseService{
			createExpenseFn: func(_, _ string, _ decimal.Decimal, _ string, _ time.Time, _ string) (*models.Expense, error) {
				return nil, apperrors.ErrDateOutsideAnyBudget
			},
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Weekly shop","amount":"342.50","category_id":"`+testUserID+`","date":"1999-01-15T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DATE_OUTSIDE_BUDGET_YEARS")
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("builds filter from query params", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		svc := &mockExpenseService{
			getUserExpensesFn: func(_ string, filter services.ExpenseFilter) (*query.PageResponse[models.Expense], error) {
				gotFilter = filter
				return &query.PageResponse[models.Expense]{Data: []models.Expense{}, Page: filter.Page.Page}, nil
			},
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET",
			"/expenses?start_date=2026-01-01&end_date=2026-01-31&search=shop&category_id="+testUserID+"&page=2&limit=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.StartDate == nil || gotFilter.StartDate.Day() != 1 {
			t.Error("expected start_date parsed into filter")
		}
		if gotFilter.Search != "shop" || gotFilter.CategoryID != testUserID {
			t.Errorf("expected search and category filters, got %+v", gotFilter)
		}
		if gotFilter.Page.Page != 2 || gotFilter.Page.Limit != 10 {
			t.Errorf("expected page 2 limit 10, got %+v", gotFilter.Page)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?start_date=15-01-2026", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpenseSummary(t *testing.T) {
	t.Run("returns summary body unwrapped", func(t *testing.T) {
		svc := &mockExpenseService{
			getExpenseSummaryFn: func(_ string, _ services.ExpenseFilter) (*services.ExpenseSummary, error) {
				return &services.ExpenseSummary{
					Total: decimal.NewFromInt(2500),
					Count: 3,
				}, nil
			},
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["count"].(float64) != 3 {
			t.Errorf("expected count 3, got %v", result["count"])
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockExpenseService{
			deleteExpenseFn: func(_, _ string) error { return apperrors.ErrExpenseNotFound },
		}
		handler := NewExpenseHandler(svc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/"+testUserID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
