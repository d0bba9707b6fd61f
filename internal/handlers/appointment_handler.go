package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucscheduling.CreateAppointment
	updateUC       *ucscheduling.UpdateAppointment
	cancelUC       *ucscheduling.CancelAppointment
	completeUC     *ucscheduling.CompleteAppointment
	confirmUC      *ucscheduling.ConfirmDeposit
	listByDateUC   *ucscheduling.ListAppointmentsByDate
	listUpcomingUC *ucscheduling.ListUpcomingByPhone
	expireUC       *ucscheduling.ExpireHolds
}

func NewAppointmentHandler(
	createUC *ucscheduling.CreateAppointment,
	updateUC *ucscheduling.UpdateAppointment,
	cancelUC *ucscheduling.CancelAppointment,
	completeUC *ucscheduling.CompleteAppointment,
	confirmUC *ucscheduling.ConfirmDeposit,
	listByDateUC *ucscheduling.ListAppointmentsByDate,
	listUpcomingUC *ucscheduling.ListUpcomingByPhone,
	expireUC *ucscheduling.ExpireHolds,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		confirmUC:      confirmUC,
		listByDateUC:   listByDateUC,
		listUpcomingUC: listUpcomingUC,
		expireUC:       expireUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StylistID     uint   `json:"stylist_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone" binding:"required"`

	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time" binding:"required"` // HH:mm
	EndTime string `json:"end_time"`                // opcional, HH:mm

	DepositAmount *float64 `json:"deposit_amount"` // override explícito
	DepositPaid   bool     `json:"deposit_paid"`

	Notes string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	StylistID *uint   `json:"stylist_id"`
	ServiceID *uint   `json:"service_id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
}

type ConfirmDepositRequest struct {
	Amount *float64 `json:"amount"`
}

// ======================================================
// HELPERS
// ======================================================

func tenantFromCtx(c *gin.Context) *models.Tenant {
	return c.MustGet(middleware.ContextTenant).(*models.Tenant)
}

func userIDFromCtx(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenant := tenantFromCtx(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
		return
	}

	startsAt, err := parseDateTimeInTenant(tenant, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	var endsAt *time.Time
	if req.EndTime != "" {
		end, err := parseDateTimeInTenant(tenant, req.Date, req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
			return
		}
		endsAt = &end
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucscheduling.CreateAppointmentInput{
		TenantID:              tenant.ID,
		StylistID:             req.StylistID,
		ServiceID:             req.ServiceID,
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		StartsAt:              startsAt,
		EndsAt:                endsAt,
		DepositAmountOverride: req.DepositAmount,
		MarkDepositPaid:       req.DepositPaid,
		Notes:                 req.Notes,
		ByUserID:              userIDFromCtx(c),
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, result)
}

// applyTimingPatch traduz as strings date/time/end_time do request para o
// patch. time e end_time só fazem sentido ancorados numa data: mandar um
// horário sem date é erro, nunca descarte silencioso.
func applyTimingPatch(
	tenant *models.Tenant,
	req *UpdateAppointmentRequest,
	patch *ucscheduling.UpdateAppointmentPatch,
) error {

	if req.Date == nil {
		if req.Time != nil || req.EndTime != nil {
			return errTimeWithoutDate
		}
		return nil
	}

	if req.Time != nil {
		startsAt, err := parseDateTimeInTenant(tenant, *req.Date, *req.Time)
		if err != nil {
			return err
		}
		patch.StartsAt = &startsAt
	}

	if req.EndTime != nil {
		endsAt, err := parseDateTimeInTenant(tenant, *req.Date, *req.EndTime)
		if err != nil {
			return err
		}
		patch.EndsAt = &endsAt
	}

	return nil
}

var errTimeWithoutDate = errors.New("time without date")

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
		return
	}

	patch := ucscheduling.UpdateAppointmentPatch{
		StylistID: req.StylistID,
		ServiceID: req.ServiceID,
		Notes:     req.Notes,
	}

	if err := applyTimingPatch(tenant, &req, &patch); err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.updateUC.Execute(
		c.Request.Context(),
		tenant.ID,
		uint(id),
		patch,
		userIDFromCtx(c),
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "ID inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), tenant.ID, uint(id), userIDFromCtx(c))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "ID inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), tenant.ID, uint(id), userIDFromCtx(c))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ConfirmDeposit(c *gin.Context) {
	tenant := tenantFromCtx(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "ID inválido.")
		return
	}

	var req ConfirmDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Dados inválidos.")
		return
	}

	if err := h.confirmUC.Execute(
		c.Request.Context(),
		tenant.ID,
		uint(id),
		req.Amount,
		"manual",
		"",
	); err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tenant := tenantFromCtx(c)

	stylistID, err := strconv.ParseUint(c.Query("stylist_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "stylist_id inválido.")
		return
	}

	date, err := parseDateInTenant(tenant, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), tenant.ID, uint(stylistID), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListUpcomingByPhone(c *gin.Context) {
	tenant := tenantFromCtx(c)

	limit, _ := strconv.Atoi(c.Query("limit"))

	out, err := h.listUpcomingUC.Execute(
		c.Request.Context(),
		tenant.ID,
		c.Query("phone"),
		limit,
	)
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// HOLD EXPIRY (gatilho manual, além do reaper)
// ======================================================

func (h *AppointmentHandler) ExpireHolds(c *gin.Context) {
	tenant := tenantFromCtx(c)

	tenantID := tenant.ID
	affected, err := h.expireUC.Execute(c.Request.Context(), &tenantID)
	if err != nil {
		httperr.Internal(c, "failed_to_expire_holds", "Erro ao expirar holds.")
		return
	}

	httpresp.OK(c, gin.H{"affected_count": affected})
}
