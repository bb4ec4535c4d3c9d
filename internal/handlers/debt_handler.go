package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService  services.DebtServicer
	auditService services.AuditServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer, auditService services.AuditServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService, auditService: auditService}
}

// CreateDebtRequest represents the request payload for recording a debt.
type CreateDebtRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        models.DebtType `json:"type" binding:"required,debt_type"`
	Note        string          `json:"note" binding:"max=1000"`
}

// UpdateDebtRequest represents the request payload for updating a debt.
type UpdateDebtRequest struct {
	Description string           `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *models.DebtType `json:"type" binding:"omitempty,debt_type"`
	Note        *string          `json:"note" binding:"omitempty,max=1000"`
}

// CreateDebt handles recording a new debt.
// @Summary     Record a debt
// @Description Record a debt owed to or by the user
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(userID, req.Description, req.Amount, req.Type, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEBT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"description": req.Description, "amount": req.Amount.String(), "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts handles listing debts for the authenticated user.
// @Summary     Get debts
// @Description Get a paginated list of debts, optionally filtered by direction and paid state
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search  query string false "Search in description and note"
// @Param       type    query string false "Filter by direction (owed_to_me/i_owe)"
// @Param       is_paid query bool   false "Filter by paid state"
// @Param       page    query int    false "Page number (default 1)"
// @Param       limit   query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} query.PageResponse[models.Debt] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.DebtFilter{
		Search: c.Query("search"),
		Page:   query.ParsePage(c.Query("page"), c.Query("limit")),
	}

	if v := c.Query("type"); v != "" {
		debtType := models.DebtType(v)
		if debtType != models.DebtTypeOwedToMe && debtType != models.DebtTypeIOwe {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'owed_to_me' or 'i_owe'"))
			return
		}
		filter.Type = &debtType
	}

	if v := c.Query("is_paid"); v != "" {
		switch v {
		case "true":
			b := true
			filter.IsPaid = &b
		case "false":
			b := false
			filter.IsPaid = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_paid must be 'true' or 'false'"))
			return
		}
	}

	result, err := h.debtService.GetUserDebts(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtSummary handles reducing unpaid debts into totals.
// @Summary     Get debt summary
// @Description Get unpaid totals per direction and the net position
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DebtSummary "Debt summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/summary [get]
func (h *DebtHandler) GetDebtSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.debtService.GetDebtSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDebt handles retrieving a specific debt.
// @Summary     Get debt by ID
// @Description Get a specific debt by ID
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} models.Debt "Debt details"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles updating an existing debt.
// @Summary     Update debt
// @Description Update an existing debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Debt ID"
// @Param       request body UpdateDebtRequest true "Updated debt details"
// @Success     200 {object} models.Debt "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid input or debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(userID, debtID, req.Description, req.Amount, req.Type, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DEBT", "debt", debtID, c.ClientIP(),
		map[string]interface{}{"description": req.Description})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// ToggleDebtPaid handles flipping a debt's paid state.
// @Summary     Toggle debt paid
// @Description Mark a debt paid, or reopen it if already paid
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} models.Debt "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id}/pay [patch]
func (h *DebtHandler) ToggleDebtPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.ToggleDebtPaid(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TOGGLE_DEBT_PAID", "debt", debtID, c.ClientIP(),
		map[string]interface{}{"is_paid": debt.IsPaid})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles deleting a debt.
// @Summary     Delete debt
// @Description Delete a debt by ID
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(userID, debtID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEBT", "debt", debtID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted"})
}
