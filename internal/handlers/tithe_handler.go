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

// TitheHandler handles tithe-related requests.
type TitheHandler struct {
	titheService services.TitheServicer
	auditService services.AuditServicer
}

// NewTitheHandler creates a new TitheHandler.
func NewTitheHandler(titheService services.TitheServicer, auditService services.AuditServicer) *TitheHandler {
	return &TitheHandler{titheService: titheService, auditService: auditService}
}

// CreateTitheRequest represents the request payload for recording a tithe.
type CreateTitheRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Note        string          `json:"note" binding:"max=1000"`
}

// UpdateTitheRequest represents the request payload for updating a tithe.
type UpdateTitheRequest struct {
	Description string           `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Note        *string          `json:"note" binding:"omitempty,max=1000"`
}

// CreateTithe handles recording a new tithe.
// @Summary     Record a tithe
// @Description Record a charitable giving entry
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTitheRequest true "Tithe details"
// @Success     201 {object} models.Tithe "Tithe recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes [post]
func (h *TitheHandler) CreateTithe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTitheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tithe, err := h.titheService.CreateTithe(userID, req.Description, req.Amount, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TITHE", "tithe", tithe.ID, c.ClientIP(),
		map[string]interface{}{"description": req.Description, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"tithe": tithe})
}

// GetTithes handles listing tithes for the authenticated user.
// @Summary     Get tithes
// @Description Get a paginated list of tithes, newest first
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date   query string false "Filter to date (YYYY-MM-DD)"
// @Param       search     query string false "Search in description and note"
// @Param       page       query int    false "Page number (default 1)"
// @Param       limit      query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} query.PageResponse[models.Tithe] "Paginated tithes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes [get]
func (h *TitheHandler) GetTithes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.titheService.GetUserTithes(userID, services.TitheFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Search:    c.Query("search"),
		Page:      query.ParsePage(c.Query("page"), c.Query("limit")),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTitheSummary handles comparing giving against a tenth of income.
// @Summary     Get tithe summary
// @Description Compare total giving against a tenth of income over the same window
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} services.TitheSummary "Tithe summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes/summary [get]
func (h *TitheHandler) GetTitheSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.titheService.GetTitheSummary(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTithe handles retrieving a specific tithe.
// @Summary     Get tithe by ID
// @Description Get a specific tithe by ID
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tithe ID"
// @Success     200 {object} models.Tithe "Tithe details"
// @Failure     400 {object} ErrorResponse "Invalid tithe ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tithe not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes/{id} [get]
func (h *TitheHandler) GetTithe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	titheID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tithe, err := h.titheService.GetTitheByID(userID, titheID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tithe": tithe})
}

// UpdateTithe handles updating an existing tithe.
// @Summary     Update tithe
// @Description Update an existing tithe
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Tithe ID"
// @Param       request body UpdateTitheRequest true "Updated tithe details"
// @Success     200 {object} models.Tithe "Updated tithe"
// @Failure     400 {object} ErrorResponse "Invalid input or tithe ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tithe not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes/{id} [put]
func (h *TitheHandler) UpdateTithe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	titheID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTitheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tithe, err := h.titheService.UpdateTithe(userID, titheID, req.Description, req.Amount, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TITHE", "tithe", titheID, c.ClientIP(),
		map[string]interface{}{"description": req.Description})

	c.JSON(http.StatusOK, gin.H{"tithe": tithe})
}

// DeleteTithe handles deleting a tithe.
// @Summary     Delete tithe
// @Description Delete a tithe by ID
// @Tags        tithes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tithe ID"
// @Success     200 {object} MessageResponse "Tithe deleted"
// @Failure     400 {object} ErrorResponse "Invalid tithe ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tithe not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tithes/{id} [delete]
func (h *TitheHandler) DeleteTithe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	titheID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.titheService.DeleteTithe(userID, titheID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TITHE", "tithe", titheID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tithe deleted"})
}
