package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/services"
	"github.com/Nanif/budget-api/internal/uuid"
)

// DashboardHandler handles the aggregated dashboard request.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles composing the dashboard.
// @Summary     Get dashboard
// @Description Get the aggregated dashboard for the active or a specific budget year
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       budget_year_id query string false "Budget year to aggregate (defaults to the active one)"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid budget year ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget year not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetYearID := c.Query("budget_year_id")
	if budgetYearID != "" && !uuid.IsValid(budgetYearID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid budget_year_id"))
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, budgetYearID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
