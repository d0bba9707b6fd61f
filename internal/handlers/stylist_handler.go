package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type StylistHandler struct {
	db *gorm.DB
}

func NewStylistHandler(db *gorm.DB) *StylistHandler {
	return &StylistHandler{db: db}
}

// --------- Requests ---------

type CreateStylistRequest struct {
	Name   string `json:"name" binding:"required"`
	UserID *uint  `json:"user_id"`
}

type UpdateStylistRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
	UserID *uint   `json:"user_id,omitempty"`
}

// --------- Handlers ---------

func (h *StylistHandler) List(c *gin.Context) {
	tenant := tenantFromCtx(c)

	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("tenant_id = ?", tenant.ID)
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var stylists []models.Stylist
	if err := q.
		Order("id ASC").
		Find(&stylists).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_stylists"})
		return
	}

	c.JSON(http.StatusOK, stylists)
}

func (h *StylistHandler) Create(c *gin.Context) {
	tenant := tenantFromCtx(c)

	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// O vínculo com usuário de login só vale para contas do mesmo tenant
	if req.UserID != nil {
		var user models.User
		if err := h.db.
			Where("id = ? AND tenant_id = ?", *req.UserID, tenant.ID).
			First(&user).Error; err != nil {

			c.JSON(http.StatusBadRequest, gin.H{"error": "user_not_found"})
			return
		}
	}

	stylist := models.Stylist{
		TenantID: tenant.ID,
		Name:     req.Name,
		Active:   true,
		UserID:   req.UserID,
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_stylist"})
		return
	}

	c.JSON(http.StatusCreated, stylist)
}

func (h *StylistHandler) Update(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id := c.Param("id")

	var stylist models.Stylist
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		First(&stylist).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "stylist_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_stylist"})
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		stylist.Name = *req.Name
	}
	if req.Active != nil {
		stylist.Active = *req.Active
	}
	if req.UserID != nil {
		var user models.User
		if err := h.db.
			Where("id = ? AND tenant_id = ?", *req.UserID, tenant.ID).
			First(&user).Error; err != nil {

			c.JSON(http.StatusBadRequest, gin.H{"error": "user_not_found"})
			return
		}
		stylist.UserID = req.UserID
	}

	if err := h.db.Save(&stylist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_stylist"})
		return
	}

	c.JSON(http.StatusOK, stylist)
}
