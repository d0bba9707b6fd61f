package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Chaves aceitas pelo painel. Qualquer outra é rejeitada para não virar
// um key/value genérico sem dono.
var allowedSettingKeys = map[string]bool{
	settings.KeyDepositPercentage:     true,
	settings.KeyHoldMinutes:           true,
	settings.KeyExpirationBeforeStart: true,
	settings.KeyBufferMinutes:         true,
	settings.KeyBufferTimeOff:         true,
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *SettingsHandler) List(c *gin.Context) {
	tenant := tenantFromCtx(c)

	rows, err := h.store.List(c.Request.Context(), tenant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_settings"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	tenant := tenantFromCtx(c)

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	key := strings.TrimSpace(req.Key)
	if !allowedSettingKeys[key] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_setting_key"})
		return
	}

	if err := h.store.Set(c.Request.Context(), tenant.ID, key, strings.TrimSpace(req.Value)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
