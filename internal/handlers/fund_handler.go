package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/services"
)

// FundHandler handles fund and fund-budget requests.
type FundHandler struct {
	fundService  services.FundServicer
	auditService services.AuditServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer, auditService services.AuditServicer) *FundHandler {
	return &FundHandler{fundService: fundService, auditService: auditService}
}

// CreateFundRequest represents the request payload for creating a fund.
type CreateFundRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	Type            models.FundType `json:"type" binding:"required,fund_type"`
	Level           int             `json:"level" binding:"required,fund_level"`
	IncludeInBudget *bool           `json:"include_in_budget"`
	DisplayOrder    int             `json:"display_order" binding:"omitempty,gte=0"`
}

// UpdateFundRequest represents the request payload for updating a fund.
type UpdateFundRequest struct {
	Name            string           `json:"name" binding:"omitempty,min=1,max=100"`
	Type            *models.FundType `json:"type" binding:"omitempty,fund_type"`
	Level           *int             `json:"level" binding:"omitempty,fund_level"`
	IncludeInBudget *bool            `json:"include_in_budget"`
	IsActive        *bool            `json:"is_active"`
	DisplayOrder    *int             `json:"display_order" binding:"omitempty,gte=0"`
}

// UpsertFundBudgetRequest represents the per-year amounts for a fund.
type UpsertFundBudgetRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	AmountGiven *decimal.Decimal `json:"amount_given"`
	Spent       *decimal.Decimal `json:"spent"`
}

// CreateFund handles the creation of a new fund.
// @Summary     Create a fund
// @Description Create a new envelope or ledger fund
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFundRequest true "Fund details"
// @Success     201 {object} models.Fund "Fund created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate fund name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds [post]
func (h *FundHandler) CreateFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	includeInBudget := true
	if req.IncludeInBudget != nil {
		includeInBudget = *req.IncludeInBudget
	}

	fund, err := h.fundService.CreateFund(userID, req.Name, req.Type, req.Level, includeInBudget, req.DisplayOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FUND", "fund", fund.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"fund": fund})
}

// GetFunds handles listing the user's funds.
// @Summary     Get funds
// @Description Get all funds ordered by display order, optionally with per-year budgets
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       budget_year_id query string false "Nest each fund's budget row for this year"
// @Success     200 {array} models.Fund "Funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds [get]
func (h *FundHandler) GetFunds(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	funds, err := h.fundService.GetUserFunds(userID, c.Query("budget_year_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"funds": funds})
}

// GetFund handles retrieving a specific fund.
// @Summary     Get fund by ID
// @Description Get a specific fund by ID
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fund ID"
// @Success     200 {object} models.Fund "Fund details"
// @Failure     400 {object} ErrorResponse "Invalid fund ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{id} [get]
func (h *FundHandler) GetFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fund, err := h.fundService.GetFundByID(userID, fundID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fund": fund})
}

// UpdateFund handles updating an existing fund.
// @Summary     Update fund
// @Description Update an existing fund's name, type, level, or flags
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Fund ID"
// @Param       request body UpdateFundRequest true "Updated fund details"
// @Success     200 {object} models.Fund "Updated fund"
// @Failure     400 {object} ErrorResponse "Invalid input or fund ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     409 {object} ErrorResponse "Duplicate fund name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{id} [put]
func (h *FundHandler) UpdateFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fund, err := h.fundService.UpdateFund(userID, fundID, req.Name, req.Type, req.Level,
		req.IncludeInBudget, req.IsActive, req.DisplayOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FUND", "fund", fundID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"fund": fund})
}

// DeleteFund handles deleting a fund.
// @Summary     Delete fund
// @Description Delete a fund that has no budgets, categories, or expenses
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fund ID"
// @Success     200 {object} MessageResponse "Fund deleted"
// @Failure     400 {object} ErrorResponse "Invalid fund ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     409 {object} ErrorResponse "Fund has linked records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{id} [delete]
func (h *FundHandler) DeleteFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fundService.DeleteFund(userID, fundID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FUND", "fund", fundID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Fund deleted"})
}

// UpsertFundBudget handles setting a fund's amounts for a budget year.
// @Summary     Upsert fund budget
// @Description Create or update the fund's budgeted amounts for a budget year
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Fund ID"
// @Param       yearID  path string                  true "Budget year ID"
// @Param       request body UpsertFundBudgetRequest true "Amounts to set"
// @Success     200 {object} models.FundBudget "Fund budget row"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fund or budget year not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{id}/budgets/{yearID} [put]
func (h *FundHandler) UpsertFundBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	yearID, err := parsePathID(c, "yearID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertFundBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fundBudget, err := h.fundService.UpsertFundBudget(userID, fundID, yearID, req.Amount, req.AmountGiven, req.Spent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_FUND_BUDGET", "fund_budget", fundBudget.ID, c.ClientIP(),
		map[string]interface{}{"fund_id": fundID, "budget_year_id": yearID})

	c.JSON(http.StatusOK, gin.H{"fund_budget": fundBudget})
}
