package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TimeOffHandler struct {
	db *gorm.DB
}

func NewTimeOffHandler(db *gorm.DB) *TimeOffHandler {
	return &TimeOffHandler{db: db}
}

type CreateTimeOffRequest struct {
	StylistID uint   `json:"stylist_id" binding:"required"`
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndTime   string `json:"end_time" binding:"required"`   // HH:mm
	Reason    string `json:"reason"`
}

func (h *TimeOffHandler) List(c *gin.Context) {
	tenant := tenantFromCtx(c)

	q := h.db.Where("tenant_id = ?", tenant.ID)

	if raw := c.Query("stylist_id"); raw != "" {
		stylistID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "stylist_id inválido.")
			return
		}
		q = q.Where("stylist_id = ?", stylistID)
	}

	var offs []models.TimeOff
	if err := q.Order("starts_at ASC").Find(&offs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_off", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, offs)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	tenant := tenantFromCtx(c)

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
		return
	}

	var stylist models.Stylist
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.StylistID, tenant.ID).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, httperr.CodeStylistNotFound, "Profissional não encontrado.")
		return
	}

	startsAt, err1 := parseDateTimeInTenant(tenant, req.Date, req.StartTime)
	endsAt, err2 := parseDateTimeInTenant(tenant, req.Date, req.EndTime)
	if err1 != nil || err2 != nil || !startsAt.Before(endsAt) {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	off := models.TimeOff{
		TenantID:  tenant.ID,
		StylistID: req.StylistID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Reason:    req.Reason,
	}

	// time-off não pode sobrepor outro time-off do mesmo profissional;
	// o lock serializa dois admins criando bloqueios ao mesmo tempo
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.TimeOff{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND stylist_id = ? AND starts_at < ? AND ends_at > ?",
				tenant.ID, req.StylistID, endsAt, startsAt,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeOffConflict)
		}

		return tx.Create(&off).Error
	})
	if txErr != nil {
		if _, ok := httperr.BusinessCode(txErr); ok {
			httperr.FromBusiness(c, txErr)
			return
		}
		httperr.Internal(c, "failed_to_create_time_off", "Erro ao criar bloqueio.")
		return
	}

	c.JSON(http.StatusCreated, off)
}

func (h *TimeOffHandler) Delete(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "ID inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		Delete(&models.TimeOff{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_time_off", "Erro ao remover bloqueio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "time_off_not_found", "Bloqueio não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
