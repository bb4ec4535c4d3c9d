package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/services"
)

// BudgetYearHandler handles budget-year requests.
type BudgetYearHandler struct {
	yearService  services.BudgetYearServicer
	auditService services.AuditServicer
}

// NewBudgetYearHandler creates a new BudgetYearHandler.
func NewBudgetYearHandler(yearService services.BudgetYearServicer, auditService services.AuditServicer) *BudgetYearHandler {
	return &BudgetYearHandler{yearService: yearService, auditService: auditService}
}

// CreateBudgetYearRequest represents the request payload for creating a budget year.
type CreateBudgetYearRequest struct {
	Name      string    `json:"name" binding:"required,min=1,max=100"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// UpdateBudgetYearRequest represents the request payload for updating a budget year.
type UpdateBudgetYearRequest struct {
	Name      string     `json:"name" binding:"omitempty,min=1,max=100"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateBudgetYear handles the creation of a new budget year.
// @Summary     Create a budget year
// @Description Create a new budget year with a custom date range
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetYearRequest true "Budget year details"
// @Success     201 {object} models.BudgetYear "Budget year created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years [post]
func (h *BudgetYearHandler) CreateBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year, err := h.yearService.CreateBudgetYear(userID, req.Name, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET_YEAR", "budget_year", year.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"budget_year": year})
}

// GetBudgetYears handles listing the user's budget years.
// @Summary     Get budget years
// @Description Get all budget years for the authenticated user, newest first
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.BudgetYear "Budget years"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years [get]
func (h *BudgetYearHandler) GetBudgetYears(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	years, err := h.yearService.GetUserBudgetYears(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_years": years})
}

// GetActiveBudgetYear handles retrieving the active budget year.
// @Summary     Get active budget year
// @Description Get the authenticated user's currently active budget year
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.BudgetYear "Active budget year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No active budget year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years/active [get]
func (h *BudgetYearHandler) GetActiveBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearService.GetActiveBudgetYear(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_year": year})
}

// GetBudgetYear handles retrieving a specific budget year.
// @Summary     Get budget year by ID
// @Description Get a specific budget year by ID
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget year ID"
// @Success     200 {object} models.BudgetYear "Budget year details"
// @Failure     400 {object} ErrorResponse "Invalid budget year ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget year not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years/{id} [get]
func (h *BudgetYearHandler) GetBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	yearID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearService.GetBudgetYearByID(userID, yearID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_year": year})
}

// UpdateBudgetYear handles updating an existing budget year.
// @Summary     Update budget year
// @Description Update an existing budget year's name or date range
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Budget year ID"
// @Param       request body UpdateBudgetYearRequest true "Updated budget year details"
// @Success     200 {object} models.BudgetYear "Updated budget year"
// @Failure     400 {object} ErrorResponse "Invalid input or budget year ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget year not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years/{id} [put]
func (h *BudgetYearHandler) UpdateBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	yearID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year, err := h.yearService.UpdateBudgetYear(userID, yearID, req.Name, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET_YEAR", "budget_year", yearID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"budget_year": year})
}

// ActivateBudgetYear handles switching the active budget year.
// @Summary     Activate budget year
// @Description Make this budget year the active one, deactivating any other
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget year ID"
// @Success     200 {object} models.BudgetYear "Activated budget year"
// @Failure     400 {object} ErrorResponse "Invalid budget year ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget year not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years/{id}/activate [post]
func (h *BudgetYearHandler) ActivateBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	yearID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := h.yearService.ActivateBudgetYear(userID, yearID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ACTIVATE_BUDGET_YEAR", "budget_year", yearID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget_year": year})
}

// DeleteBudgetYear handles deleting a budget year.
// @Summary     Delete budget year
// @Description Delete a budget year that has no linked records
// @Tags        budget-years
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget year ID"
// @Success     200 {object} MessageResponse "Budget year deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget year ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget year not found"
// @Failure     409 {object} ErrorResponse "Budget year has linked records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-years/{id} [delete]
func (h *BudgetYearHandler) DeleteBudgetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	yearID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.yearService.DeleteBudgetYear(userID, yearID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET_YEAR", "budget_year", yearID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget year deleted"})
}
