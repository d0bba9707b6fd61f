package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=7"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) stylistID(c *gin.Context) (uint, bool) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("stylistId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "stylist_id inválido.")
		return 0, false
	}

	var stylist models.Stylist
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, httperr.CodeStylistNotFound, "Profissional não encontrado.")
		return 0, false
	}

	return uint(id), true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	tenant := tenantFromCtx(c)

	stylistID, ok := h.stylistID(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("tenant_id = ? AND stylist_id = ?", tenant.ID, stylistID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	tenant := tenantFromCtx(c)

	stylistID, ok := h.stylistID(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
		return
	}

	var toCreate []models.WorkingHours
	seen := map[int]bool{}

	for _, d := range req.Days {
		// aceita as duas convenções de domingo; persiste sempre 0..6
		weekday, ok := domain.NormalizeWeekday(d.Weekday)
		if !ok || seen[weekday] {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "Dia da semana inválido ou repetido.")
			return
		}
		seen[weekday] = true

		toCreate = append(toCreate, models.WorkingHours{
			TenantID:  tenant.ID,
			StylistID: stylistID,
			Weekday:   weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND stylist_id = ?", tenant.ID, stylistID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if txErr != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "Erro ao salvar expediente.")
		return
	}

	c.JSON(http.StatusOK, toCreate)
}
