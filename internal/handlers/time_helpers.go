package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por tenant
// --------------------------------------------------

func locationFromTenant(tenant *models.Tenant) *time.Location {
	if tenant != nil {
		return timezone.Location(tenant.Timezone)
	}
	return timezone.Location("")
}

func parseDateInTenant(tenant *models.Tenant, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromTenant(tenant),
	)
}

func parseDateTimeInTenant(
	tenant *models.Tenant,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromTenant(tenant),
	)
}
