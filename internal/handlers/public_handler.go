package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a vitrine de reservas por slug do tenant, sem login.
// O gate de tenant ativo vale aqui do mesmo jeito que na API privada.
type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucscheduling.CreateAppointment
	availabilityUC *ucscheduling.GetAvailability
	listUpcomingUC *ucscheduling.ListUpcomingByPhone
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucscheduling.CreateAppointment,
	availabilityUC *ucscheduling.GetAvailability,
	listUpcomingUC *ucscheduling.ListUpcomingByPhone,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		listUpcomingUC: listUpcomingUC,
	}
}

func (h *PublicHandler) resolveTenant(c *gin.Context) *models.Tenant {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, httperr.CodeTenantNotIdentified, "Salão não encontrado.")
		return nil
	}

	if tenant.Status != models.TenantStatusActive {
		httperr.Forbidden(c, httperr.CodeTenantSuspended, "Conta suspensa: "+tenant.Status)
		return nil
	}

	return &tenant
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	StylistID     uint   `json:"stylist_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	tenant := h.resolveTenant(c)
	if tenant == nil {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("tenant_id = ? AND active = true", tenant.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    tenant,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	tenant := h.resolveTenant(c)
	if tenant == nil {
		return
	}

	stylistID, _ := strconv.ParseUint(c.Query("stylist_id"), 10, 32)
	serviceID, _ := strconv.ParseUint(c.Query("service_id"), 10, 32)

	date, err := parseDateInTenant(tenant, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:  tenant.ID,
		StylistID: uint(stylistID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	tenant := h.resolveTenant(c)
	if tenant == nil {
		return
	}

	var req PublicCreateAppointmentRequest
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

	result, err := h.createUC.Execute(c.Request.Context(), ucscheduling.CreateAppointmentInput{
		TenantID:      tenant.ID,
		StylistID:     req.StylistID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, result)
}

////////////////////////////////////////////////////////
// MY APPOINTMENTS
////////////////////////////////////////////////////////

func (h *PublicHandler) MyAppointments(c *gin.Context) {
	tenant := h.resolveTenant(c)
	if tenant == nil {
		return
	}

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
