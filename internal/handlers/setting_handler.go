package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/services"
)

// SettingHandler handles system setting requests.
type SettingHandler struct {
	settingService services.SettingServicer
	auditService   services.AuditServicer
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingService services.SettingServicer, auditService services.AuditServicer) *SettingHandler {
	return &SettingHandler{settingService: settingService, auditService: auditService}
}

// UpsertSettingRequest represents the request payload for setting a value.
type UpsertSettingRequest struct {
	Value    string             `json:"value" binding:"required,max=10000"`
	DataType models.SettingType `json:"data_type" binding:"required,setting_type"`
}

// GetSettings handles listing the user's settings.
// @Summary     Get settings
// @Description Get all system settings for the authenticated user, ordered by key
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.SystemSetting "Settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingService.GetUserSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting handles retrieving a setting by key.
// @Summary     Get setting by key
// @Description Get a specific system setting by key
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Setting key"
// @Success     200 {object} models.SystemSetting "Setting"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Setting not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/{key} [get]
func (h *SettingHandler) GetSetting(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	setting, err := h.settingService.GetSetting(userID, c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// UpsertSetting handles creating or replacing a setting by key.
// @Summary     Upsert setting
// @Description Create or replace a system setting; the value must match the declared type
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key     path string               true "Setting key"
// @Param       request body UpsertSettingRequest true "Setting value and type"
// @Success     200 {object} models.SystemSetting "Setting stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/{key} [put]
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	setting, err := h.settingService.UpsertSetting(userID, c.Param("key"), req.Value, req.DataType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_SETTING", "system_setting", setting.ID, c.ClientIP(),
		map[string]interface{}{"key": setting.SettingKey})

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// DeleteSetting handles deleting a setting by key.
// @Summary     Delete setting
// @Description Delete a system setting by key
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Setting key"
// @Success     200 {object} MessageResponse "Setting deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Setting not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/{key} [delete]
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	key := c.Param("key")
	if err := h.settingService.DeleteSetting(userID, key); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SETTING", "system_setting", key, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted"})
}
