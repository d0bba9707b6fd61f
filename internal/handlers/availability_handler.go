package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

type AvailabilityHandler struct {
	availabilityUC *ucscheduling.GetAvailability
}

func NewAvailabilityHandler(
	availabilityUC *ucscheduling.GetAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

// GetFreeSlots responde GET /availability?stylist_id&service_id&date&step.
// Parâmetro faltando ou inexistente devolve conjuntos vazios, não erro.
func (h *AvailabilityHandler) GetFreeSlots(c *gin.Context) {
	tenant := tenantFromCtx(c)

	stylistID, _ := strconv.ParseUint(c.Query("stylist_id"), 10, 32)
	serviceID, _ := strconv.ParseUint(c.Query("service_id"), 10, 32)
	step, _ := strconv.Atoi(c.Query("step"))

	date, err := parseDateInTenant(tenant, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:    tenant.ID,
		StylistID:   uint(stylistID),
		ServiceID:   uint(serviceID),
		Date:        date,
		StepMinutes: step,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	httpresp.OK(c, out)
}
