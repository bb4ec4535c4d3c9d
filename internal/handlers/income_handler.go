package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for recording an income.
type CreateIncomeRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=200"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Source string          `json:"source" binding:"max=100"`
	Date   time.Time       `json:"date" binding:"required"`
	Note   string          `json:"note" binding:"max=1000"`
}

// UpdateIncomeRequest represents the request payload for updating an income.
type UpdateIncomeRequest struct {
	Name   string           `json:"name" binding:"omitempty,min=1,max=200"`
	Amount *decimal.Decimal `json:"amount"`
	Source *string          `json:"source" binding:"omitempty,max=100"`
	Date   *time.Time       `json:"date"`
	Note   *string          `json:"note" binding:"omitempty,max=1000"`
}

func incomeFilterFromQuery(c *gin.Context) (services.IncomeFilter, error) {
	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		return services.IncomeFilter{}, err
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		return services.IncomeFilter{}, err
	}

	return services.IncomeFilter{
		StartDate:    startDate,
		EndDate:      endDate,
		Search:       c.Query("search"),
		Source:       c.Query("source"),
		BudgetYearID: c.Query("budget_year_id"),
		Page:         query.ParsePage(c.Query("page"), c.Query("limit")),
	}, nil
}

// CreateIncome handles recording a new income.
// @Summary     Record an income
// @Description Record an income; its budget year is resolved from the date
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or date outside budget years"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.CreateIncome(userID, req.Name, req.Amount, req.Source, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncomes handles listing incomes for the authenticated user.
// @Summary     Get incomes
// @Description Get a paginated list of incomes, newest first
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date     query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date       query string false "Filter to date (YYYY-MM-DD)"
// @Param       search         query string false "Search in name and note"
// @Param       source         query string false "Filter by source"
// @Param       budget_year_id query string false "Filter by budget year"
// @Param       page           query int    false "Page number (default 1)"
// @Param       limit          query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} query.PageResponse[models.Income] "Paginated incomes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := incomeFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.incomeService.GetUserIncomes(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncomeSummary handles aggregating incomes.
// @Summary     Get income summary
// @Description Get totals and per-source and per-month groups for the filtered incomes
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date     query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date       query string false "Filter to date (YYYY-MM-DD)"
// @Param       source         query string false "Filter by source"
// @Param       budget_year_id query string false "Filter by budget year"
// @Success     200 {object} services.IncomeSummary "Income summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/summary [get]
func (h *IncomeHandler) GetIncomeSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := incomeFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.incomeService.GetIncomeSummary(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetIncome handles retrieving a specific income.
// @Summary     Get income by ID
// @Description Get a specific income by ID
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} models.Income "Income details"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(userID, incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// UpdateIncome handles updating an existing income.
// @Summary     Update income
// @Description Update an income; a date change re-resolves its budget year
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Income ID"
// @Param       request body UpdateIncomeRequest true "Updated income details"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input or income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.UpdateIncome(userID, incomeID, req.Name, req.Amount, req.Source, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME", "income", incomeID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome handles deleting an income.
// @Summary     Delete income
// @Description Delete an income by ID
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted"})
}
