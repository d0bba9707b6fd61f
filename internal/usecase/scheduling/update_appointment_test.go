package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newUpdateUC(repo *fakeRepo) *UpdateAppointment {
	return NewUpdateAppointment(
		repo,
		fakeSettings{},
		testDefaults(),
		audit.NewDispatcher(audit.New(nil)),
	)
}

func seedAppointment(repo *fakeRepo, start, end time.Time, status domain.Status) uint {
	repo.nextID++
	id := repo.nextID
	repo.appointments[id] = &models.Appointment{
		ID: id, TenantID: testTenantID, StylistID: testStylistID,
		ServiceID: testServiceID,
		StartsAt:  start, EndsAt: end,
		Status: string(status),
	}
	return id
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusConfirmed)

	uc := newUpdateUC(repo)

	newStart := futureDay(14, 0)
	updated, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		StartsAt: &newStart,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, newStart, updated.StartsAt)
	// fim recalculado pela duração do serviço (60min)
	assert.Equal(t, futureDay(15, 0), updated.EndsAt)
	assert.Equal(t, newStart, repo.appointments[id].StartsAt)
}

func TestUpdateAppointmentExcludesItselfFromConflict(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusConfirmed)

	uc := newUpdateUC(repo)

	// empurra 30min para dentro do próprio horário atual
	newStart := futureDay(10, 30)
	_, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		StartsAt: &newStart,
	}, nil)
	assert.NoError(t, err)
}

func TestUpdateAppointmentConflictsWithOthers(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusConfirmed)
	seedAppointment(repo, futureDay(14, 0), futureDay(15, 0), domain.StatusPendingDeposit)

	uc := newUpdateUC(repo)

	newStart := futureDay(14, 30)
	_, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		StartsAt: &newStart,
	}, nil)

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeSlotConflict, code)

	// nada persistido
	assert.Equal(t, futureDay(10, 0), repo.appointments[id].StartsAt)
}

func TestUpdateAppointmentOutsideWorkingHours(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusConfirmed)

	uc := newUpdateUC(repo)

	newStart := futureDay(17, 30)
	_, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		StartsAt: &newStart,
	}, nil)

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeOutsideWorkingHours, code)
}

func TestUpdateAppointmentTerminalRejectsTimingChange(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusCancelled)

	uc := newUpdateUC(repo)

	newStart := futureDay(14, 0)
	_, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		StartsAt: &newStart,
	}, nil)

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeInvalidState, code)
}

func TestUpdateAppointmentNotesOnlySkipsRevalidation(t *testing.T) {
	repo := seedRepo()
	// completado: horário não pode mudar, mas anotação pode
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusCompleted)

	uc := newUpdateUC(repo)

	notes := "cliente pediu mesmo horário na próxima"
	updated, err := uc.Execute(context.Background(), testTenantID, id, UpdateAppointmentPatch{
		Notes: &notes,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	repo := seedRepo()
	uc := newUpdateUC(repo)

	notes := "x"
	_, err := uc.Execute(context.Background(), testTenantID, 999, UpdateAppointmentPatch{
		Notes: &notes,
	}, nil)

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeNotFound, code)
}

func TestUpdateAppointmentWrongTenant(t *testing.T) {
	repo := seedRepo()
	id := seedAppointment(repo, futureDay(10, 0), futureDay(11, 0), domain.StatusConfirmed)

	uc := newUpdateUC(repo)

	notes := "x"
	_, err := uc.Execute(context.Background(), 42, id, UpdateAppointmentPatch{
		Notes: &notes,
	}, nil)

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeNotFound, code)
}
