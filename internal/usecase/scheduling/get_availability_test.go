package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
)

func newAvailabilityUC(repo *fakeRepo, s Settings, now time.Time) *GetAvailability {
	uc := NewGetAvailability(repo, s, testDefaults())
	uc.nowFn = func(string) time.Time { return now }
	return uc
}

func availabilityInput(date time.Time, step int) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		TenantID:    testTenantID,
		StylistID:   testStylistID,
		ServiceID:   testServiceID,
		Date:        date,
		StepMinutes: step,
	}
}

// véspera do dia consultado; todos os slots ficam no futuro
func dayBefore(date time.Time) time.Time {
	return date.Add(-24 * time.Hour)
}

func TestGetAvailabilityMarksOverlappingSlotsBusy(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	// atendimento 09:30-10:30 no meio da manhã
	repo.appointments[1] = &models.Appointment{
		ID: 1, TenantID: testTenantID, StylistID: testStylistID,
		StartsAt: futureDay(9, 30), EndsAt: futureDay(10, 30),
		Status: string(domain.StatusConfirmed),
	}
	repo.nextID = 1

	uc := newAvailabilityUC(repo, fakeSettings{}, dayBefore(date))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 30))
	require.NoError(t, err)

	// grade de 30min de 09:00 até o último que cabe antes de 18:00
	assert.Equal(t, "09:00", out.Slots[0])
	assert.Equal(t, "17:30", out.Slots[len(out.Slots)-1])
	assert.Len(t, out.Slots, 18)

	// meio-aberto: 09:00 e 10:30 seguem livres
	assert.Equal(t, []string{"09:30", "10:00"}, out.BusySlots)
	assert.Contains(t, out.Slots, "09:30") // ocupado ainda aparece na grade
}

func TestGetAvailabilityStepDefaultsToServiceDuration(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	uc := newAvailabilityUC(repo, fakeSettings{}, dayBefore(date))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 0))
	require.NoError(t, err)

	// serviço de 60min: 09:00..17:00
	assert.Len(t, out.Slots, 9)
	assert.Equal(t, "09:00", out.Slots[0])
	assert.Equal(t, "17:00", out.Slots[len(out.Slots)-1])
	assert.Empty(t, out.BusySlots)
}

func TestGetAvailabilitySkipsPastSlots(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	// meio-dia do próprio dia: a manhã inteira fica de fora
	uc := newAvailabilityUC(repo, fakeSettings{}, futureDay(12, 0))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 30))
	require.NoError(t, err)

	assert.Equal(t, "12:30", out.Slots[0])
	assert.NotContains(t, out.Slots, "12:00") // estritamente no futuro
}

func TestGetAvailabilityBufferPadsAppointmentsOnly(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	repo.appointments[1] = &models.Appointment{
		ID: 1, TenantID: testTenantID, StylistID: testStylistID,
		StartsAt: futureDay(10, 0), EndsAt: futureDay(11, 0),
		Status: string(domain.StatusScheduled),
	}
	repo.timeOffs = append(repo.timeOffs, models.TimeOff{
		ID: 1, TenantID: testTenantID, StylistID: testStylistID,
		StartsAt: futureDay(15, 0), EndsAt: futureDay(16, 0),
	})
	repo.nextID = 1

	uc := newAvailabilityUC(repo, fakeSettings{
		ints: map[string]int{settings.KeyBufferMinutes: 30},
	}, dayBefore(date))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 30))
	require.NoError(t, err)

	// agendamento 10:00-11:00 com buffer 30 ocupa 09:30-11:30
	assert.Contains(t, out.BusySlots, "09:30")
	assert.Contains(t, out.BusySlots, "11:00")
	assert.NotContains(t, out.BusySlots, "11:30")

	// time-off entra sem padding: 14:30 segue livre
	assert.Contains(t, out.BusySlots, "15:00")
	assert.Contains(t, out.BusySlots, "15:30")
	assert.NotContains(t, out.BusySlots, "14:30")
	assert.NotContains(t, out.BusySlots, "16:00")
}

func TestGetAvailabilityIgnoresNonOccupyingStatuses(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	repo.appointments[1] = &models.Appointment{
		ID: 1, TenantID: testTenantID, StylistID: testStylistID,
		StartsAt: futureDay(10, 0), EndsAt: futureDay(11, 0),
		Status: string(domain.StatusCancelled),
	}
	repo.nextID = 1

	uc := newAvailabilityUC(repo, fakeSettings{}, dayBefore(date))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 30))
	require.NoError(t, err)
	assert.Empty(t, out.BusySlots)
}

func TestGetAvailabilityEmptyOnMissingFixtures(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)
	uc := newAvailabilityUC(repo, fakeSettings{}, dayBefore(date))

	tests := []struct {
		name string
		in   domain.AvailabilityInput
	}{
		{name: "unknown tenant", in: func() domain.AvailabilityInput {
			in := availabilityInput(date, 30)
			in.TenantID = 999
			return in
		}()},
		{name: "unknown service", in: func() domain.AvailabilityInput {
			in := availabilityInput(date, 30)
			in.ServiceID = 999
			return in
		}()},
		{name: "unknown stylist", in: func() domain.AvailabilityInput {
			in := availabilityInput(date, 30)
			in.StylistID = 999
			return in
		}()},
		{name: "zero date", in: func() domain.AvailabilityInput {
			in := availabilityInput(date, 30)
			in.Date = time.Time{}
			return in
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), tt.in)
			require.NoError(t, err) // ausência nunca é erro
			assert.Empty(t, out.Slots)
			assert.Empty(t, out.BusySlots)
		})
	}
}

func TestGetAvailabilityDayOff(t *testing.T) {
	repo := seedRepo()
	date := futureDay(0, 0)

	weekday, _ := domain.NormalizeWeekday(int(date.Weekday()))
	delete(repo.workingHours, whKey{testTenantID, testStylistID, weekday})

	uc := newAvailabilityUC(repo, fakeSettings{}, dayBefore(date))

	out, err := uc.Execute(context.Background(), availabilityInput(date, 30))
	require.NoError(t, err)
	assert.Empty(t, out.Slots)
}
