package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func TestListAppointmentsByDate(t *testing.T) {
	repo := seedRepo()
	createUC := newCreateUC(repo, fakeSettings{})

	_, err := createUC.Execute(context.Background(), baseInput(futureDay(10, 0)))
	require.NoError(t, err)
	_, err = createUC.Execute(context.Background(), baseInput(futureDay(14, 0)))
	require.NoError(t, err)

	uc := NewListAppointmentsByDate(repo)

	out, err := uc.Execute(context.Background(), testTenantID, testStylistID, futureDay(0, 0))
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// outro dia: vazio
	out, err = uc.Execute(context.Background(), testTenantID, testStylistID, futureDay(0, 0).AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListUpcomingByPhone(t *testing.T) {
	repo := seedRepo()
	createUC := newCreateUC(repo, fakeSettings{})

	_, err := createUC.Execute(context.Background(), baseInput(futureDay(10, 0)))
	require.NoError(t, err)

	uc := NewListUpcomingByPhone(repo)

	t.Run("finds by any spelling of the phone", func(t *testing.T) {
		// mesma linha, grafia diferente da usada na reserva
		out, err := uc.Execute(context.Background(), testTenantID, "11 5555 0001", 0)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, futureDay(10, 0), out[0].StartsAt)
	})

	t.Run("unknown phone yields empty", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), testTenantID, "+5411 9999 9999", 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("invalid phone is rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), testTenantID, "nope", 0)
		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, httperr.CodeInvalidInput, code)
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		repo.tenants[42] = &models.Tenant{
			ID: 42, Slug: "other", Status: models.TenantStatusActive,
			Timezone: timezone.DefaultTimezone,
		}

		out, err := uc.Execute(context.Background(), 42, "11 5555 0001", 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
