package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

// AssetHandler handles asset snapshot requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// AssetDetailRequest is one holding or liability line in a snapshot payload.
type AssetDetailRequest struct {
	AssetType string               `json:"asset_type" binding:"required,min=1,max=100"`
	AssetName string               `json:"asset_name" binding:"max=200"`
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Category  models.AssetCategory `json:"category" binding:"required,asset_category"`
}

// CreateSnapshotRequest represents the request payload for a new snapshot.
type CreateSnapshotRequest struct {
	Date    time.Time            `json:"date" binding:"required"`
	Note    string               `json:"note" binding:"max=1000"`
	Details []AssetDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// CreateSnapshot handles recording a new asset snapshot.
// @Summary     Create an asset snapshot
// @Description Record a point-in-time list of holdings and liabilities
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSnapshotRequest true "Snapshot details"
// @Success     201 {object} models.AssetSnapshot "Snapshot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/snapshots [post]
func (h *AssetHandler) CreateSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	details := make([]services.AssetDetailInput, 0, len(req.Details))
	for _, d := range req.Details {
		details = append(details, services.AssetDetailInput{
			AssetType: d.AssetType,
			AssetName: d.AssetName,
			Amount:    d.Amount,
			Category:  d.Category,
		})
	}

	snapshot, err := h.assetService.CreateSnapshot(userID, req.Date, req.Note, details)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SNAPSHOT", "asset_snapshot", snapshot.ID, c.ClientIP(),
		map[string]interface{}{"date": req.Date.Format("2006-01-02"), "lines": len(req.Details)})

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// GetSnapshots handles listing asset snapshots.
// @Summary     Get asset snapshots
// @Description Get a paginated list of snapshots with their detail lines, newest first
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date   query string false "Filter to date (YYYY-MM-DD)"
// @Param       page       query int    false "Page number (default 1)"
// @Param       limit      query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} query.PageResponse[models.AssetSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/snapshots [get]
func (h *AssetHandler) GetSnapshots(c *gin.Context) {
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

	result, err := h.assetService.GetUserSnapshots(userID, startDate, endDate,
		query.ParsePage(c.Query("page"), c.Query("limit")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLatestSnapshot handles retrieving the most recent snapshot.
// @Summary     Get latest snapshot
// @Description Get the user's most recent asset snapshot
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.AssetSnapshot "Latest snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No snapshot recorded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/snapshots/latest [get]
func (h *AssetHandler) GetLatestSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.assetService.GetLatestSnapshot(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// GetTrends handles computing the net-worth trend.
// @Summary     Get net-worth trends
// @Description Get per-snapshot net worth and growth rates over time
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} metrics.TrendResult "Net-worth trend"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/trends [get]
func (h *AssetHandler) GetTrends(c *gin.Context) {
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

	trends, err := h.assetService.GetTrends(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetSnapshot handles retrieving a specific snapshot.
// @Summary     Get snapshot by ID
// @Description Get a specific asset snapshot with its detail lines
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} models.AssetSnapshot "Snapshot details"
// @Failure     400 {object} ErrorResponse "Invalid snapshot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/snapshots/{id} [get]
func (h *AssetHandler) GetSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.assetService.GetSnapshotByID(userID, snapshotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// DeleteSnapshot handles deleting a snapshot.
// @Summary     Delete snapshot
// @Description Delete an asset snapshot and its detail lines
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} MessageResponse "Snapshot deleted"
// @Failure     400 {object} ErrorResponse "Invalid snapshot ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/snapshots/{id} [delete]
func (h *AssetHandler) DeleteSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteSnapshot(userID, snapshotID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SNAPSHOT", "asset_snapshot", snapshotID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot deleted"})
}
