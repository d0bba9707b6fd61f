package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestIsOccupying(t *testing.T) {
	assert.True(t, IsOccupying(StatusScheduled))
	assert.True(t, IsOccupying(StatusPendingDeposit))
	assert.True(t, IsOccupying(StatusDepositPaid))
	assert.True(t, IsOccupying(StatusConfirmed))

	assert.False(t, IsOccupying(StatusCompleted))
	assert.False(t, IsOccupying(StatusCancelled))
	assert.False(t, IsOccupying(StatusNoShow))
}

func TestOccupyingStatusesMatchesPredicate(t *testing.T) {
	for _, s := range OccupyingStatuses() {
		assert.True(t, IsOccupying(Status(s)), s)
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	hold := now.Add(30 * time.Minute)

	t.Run("cancels active appointment and clears hold", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPendingDeposit), HoldUntil: &hold}

		assert.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Nil(t, ap.HoldUntil)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("terminal states reject cancel", func(t *testing.T) {
		for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
			ap := &models.Appointment{Status: string(s)}
			err := Cancel(ap, now)
			code, ok := httperr.BusinessCode(err)
			assert.True(t, ok, string(s))
			assert.Equal(t, httperr.CodeInvalidState, code, string(s))
		}
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	assert.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, now, *ap.CompletedAt)

	// completar duas vezes é inválido
	err := Complete(ap, now)
	code, ok := httperr.BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.CodeInvalidState, code)
}

func TestConfirmDeposit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	hold := now.Add(30 * time.Minute)

	t.Run("first confirmation transitions and clears hold", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPendingDeposit), HoldUntil: &hold}

		changed, err := ConfirmDeposit(ap, now)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, string(StatusDepositPaid), ap.Status)
		assert.Nil(t, ap.HoldUntil)
		assert.Equal(t, now, *ap.DepositPaidAt)
	})

	t.Run("already paid is a no-op", func(t *testing.T) {
		paidAt := now.Add(-time.Hour)
		ap := &models.Appointment{Status: string(StatusDepositPaid), DepositPaidAt: &paidAt}

		changed, err := ConfirmDeposit(ap, now)
		assert.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, paidAt, *ap.DepositPaidAt)
	})

	t.Run("cancelled appointment rejects confirmation", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}

		changed, err := ConfirmDeposit(ap, now)
		assert.False(t, changed)
		code, ok := httperr.BusinessCode(err)
		assert.True(t, ok)
		assert.Equal(t, httperr.CodeInvalidState, code)
	})
}
