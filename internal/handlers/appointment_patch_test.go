package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

func strPtr(s string) *string { return &s }

func TestApplyTimingPatch(t *testing.T) {
	tenant := &models.Tenant{Timezone: timezone.DefaultTimezone}
	loc := timezone.Location(tenant.Timezone)

	t.Run("date e time movem o início", func(t *testing.T) {
		req := UpdateAppointmentRequest{
			Date: strPtr("2030-04-01"),
			Time: strPtr("10:00"),
		}
		var patch ucscheduling.UpdateAppointmentPatch

		require.NoError(t, applyTimingPatch(tenant, &req, &patch))
		require.NotNil(t, patch.StartsAt)
		assert.Equal(t, time.Date(2030, 4, 1, 10, 0, 0, 0, loc), *patch.StartsAt)
		assert.Nil(t, patch.EndsAt)
	})

	t.Run("date, time e end_time movem início e fim", func(t *testing.T) {
		req := UpdateAppointmentRequest{
			Date:    strPtr("2030-04-01"),
			Time:    strPtr("10:00"),
			EndTime: strPtr("11:30"),
		}
		var patch ucscheduling.UpdateAppointmentPatch

		require.NoError(t, applyTimingPatch(tenant, &req, &patch))
		require.NotNil(t, patch.StartsAt)
		require.NotNil(t, patch.EndsAt)
		assert.Equal(t, time.Date(2030, 4, 1, 11, 30, 0, 0, loc), *patch.EndsAt)
	})

	t.Run("date e end_time sem time mudam só o fim", func(t *testing.T) {
		req := UpdateAppointmentRequest{
			Date:    strPtr("2030-04-01"),
			EndTime: strPtr("11:30"),
		}
		var patch ucscheduling.UpdateAppointmentPatch

		require.NoError(t, applyTimingPatch(tenant, &req, &patch))
		assert.Nil(t, patch.StartsAt)
		require.NotNil(t, patch.EndsAt)
		assert.Equal(t, time.Date(2030, 4, 1, 11, 30, 0, 0, loc), *patch.EndsAt)
	})

	t.Run("end_time sem date é erro, não descarte", func(t *testing.T) {
		req := UpdateAppointmentRequest{EndTime: strPtr("11:30")}
		var patch ucscheduling.UpdateAppointmentPatch

		assert.ErrorIs(t, applyTimingPatch(tenant, &req, &patch), errTimeWithoutDate)
		assert.Nil(t, patch.EndsAt)
	})

	t.Run("time sem date é erro", func(t *testing.T) {
		req := UpdateAppointmentRequest{Time: strPtr("10:00")}
		var patch ucscheduling.UpdateAppointmentPatch

		assert.ErrorIs(t, applyTimingPatch(tenant, &req, &patch), errTimeWithoutDate)
	})

	t.Run("hora malformada é erro", func(t *testing.T) {
		req := UpdateAppointmentRequest{
			Date:    strPtr("2030-04-01"),
			EndTime: strPtr("25h99"),
		}
		var patch ucscheduling.UpdateAppointmentPatch

		assert.Error(t, applyTimingPatch(tenant, &req, &patch))
	})

	t.Run("patch sem campos de horário passa intacto", func(t *testing.T) {
		var req UpdateAppointmentRequest
		var patch ucscheduling.UpdateAppointmentPatch

		require.NoError(t, applyTimingPatch(tenant, &req, &patch))
		assert.Nil(t, patch.StartsAt)
		assert.Nil(t, patch.EndsAt)
	})
}
