package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedHold(repo *fakeRepo, tenantID uint, holdUntil time.Time) uint {
	repo.nextID++
	id := repo.nextID
	repo.appointments[id] = &models.Appointment{
		ID: id, TenantID: tenantID, StylistID: testStylistID,
		StartsAt: futureDay(10, 0), EndsAt: futureDay(11, 0),
		Status:    string(domain.StatusPendingDeposit),
		HoldUntil: &holdUntil,
	}
	return id
}

func TestExpireHoldsCancelsOverdue(t *testing.T) {
	repo := seedRepo()

	expiredID := seedHold(repo, testTenantID, time.Now().Add(-5*time.Minute))
	aliveID := seedHold(repo, testTenantID, time.Now().Add(30*time.Minute))

	uc := NewExpireHolds(repo)

	affected, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	expired := repo.appointments[expiredID]
	assert.Equal(t, string(domain.StatusCancelled), expired.Status)
	assert.Nil(t, expired.HoldUntil)
	assert.NotNil(t, expired.CancelledAt)

	alive := repo.appointments[aliveID]
	assert.Equal(t, string(domain.StatusPendingDeposit), alive.Status)
	assert.NotNil(t, alive.HoldUntil)
}

func TestExpireHoldsIsIdempotent(t *testing.T) {
	repo := seedRepo()
	seedHold(repo, testTenantID, time.Now().Add(-5*time.Minute))

	uc := NewExpireHolds(repo)

	affected, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// segunda varredura não encontra nada: a linha já transicionou
	affected, err = uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestExpireHoldsScopedToTenant(t *testing.T) {
	repo := seedRepo()
	repo.tenants[2] = &models.Tenant{ID: 2, Slug: "other", Status: models.TenantStatusActive}

	mine := seedHold(repo, testTenantID, time.Now().Add(-5*time.Minute))
	other := seedHold(repo, 2, time.Now().Add(-5*time.Minute))

	uc := NewExpireHolds(repo)

	tenantID := testTenantID
	affected, err := uc.Execute(context.Background(), &tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.Equal(t, string(domain.StatusCancelled), repo.appointments[mine].Status)
	assert.Equal(t, string(domain.StatusPendingDeposit), repo.appointments[other].Status)
}

func TestExpiredHoldFreesTheSlot(t *testing.T) {
	repo := seedRepo()
	seedHold(repo, testTenantID, time.Now().Add(-5*time.Minute))

	_, err := NewExpireHolds(repo).Execute(context.Background(), nil)
	require.NoError(t, err)

	// o horário volta a aceitar reserva
	createUC := newCreateUC(repo, fakeSettings{})
	_, err = createUC.Execute(context.Background(), baseInput(futureDay(10, 0)))
	assert.NoError(t, err)
}
