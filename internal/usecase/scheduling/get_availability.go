package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
	defaults config.SchedulingConfig
	// nowFn é injetável nos testes; default timezone.NowIn
	nowFn func(tz string) time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	s Settings,
	defaults config.SchedulingConfig,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: s,
		defaults: defaults,
		nowFn:    timezone.NowIn,
	}
}

// Execute deriva os slots candidatos e o subconjunto ocupado do dia.
// Ausência de disponibilidade é resultado normal: serviço/profissional
// inexistente ou dia sem expediente devolvem conjuntos vazios, nunca erro.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.Availability, error) {

	empty := domain.Availability{Slots: []string{}, BusySlots: []string{}}

	if in.TenantID == 0 || in.StylistID == 0 || in.ServiceID == 0 || in.Date.IsZero() {
		return empty, nil
	}

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return empty, nil
	}

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return empty, nil
	}

	stylist, err := uc.repo.GetStylist(ctx, in.TenantID, in.StylistID)
	if err != nil || !stylist.Active {
		return empty, nil
	}

	step := in.StepMinutes
	if step <= 0 {
		step = service.DurationMin
	}
	if step <= 0 {
		return empty, nil
	}

	weekday, ok := domain.NormalizeWeekday(int(in.Date.Weekday()))
	if !ok {
		return empty, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.TenantID, in.StylistID, weekday)
	if err != nil {
		return empty, nil
	}

	window, ok := domain.DayWindow(wh, in.Date)
	if !ok {
		return empty, nil
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	apps, err := uc.repo.ListOccupying(ctx, domain.OccupyingQuery{
		TenantID:  in.TenantID,
		StylistID: in.StylistID,
		From:      dayStart,
		To:        dayEnd,
	})
	if err != nil {
		return empty, err
	}

	offs, err := uc.repo.ListTimeOff(ctx, in.TenantID, in.StylistID, dayStart, dayEnd)
	if err != nil {
		return empty, err
	}

	buffer := time.Duration(
		uc.settings.Int(ctx, in.TenantID, settings.KeyBufferMinutes, uc.defaults.BufferMinutes),
	) * time.Minute

	// buffer vale para agendamentos; time-off entra sem padding
	busy := make([]domain.Interval, 0, len(apps)+len(offs))
	for _, ap := range apps {
		busy = append(busy, domain.Interval{Start: ap.StartsAt, End: ap.EndsAt}.Pad(buffer))
	}
	for _, off := range offs {
		busy = append(busy, domain.Interval{Start: off.StartsAt, End: off.EndsAt})
	}

	now := uc.nowFn(tenant.Timezone)
	stepDur := time.Duration(step) * time.Minute

	out := domain.Availability{Slots: []string{}, BusySlots: []string{}}

	for cur := window.Start; !cur.Add(stepDur).After(window.End); cur = cur.Add(stepDur) {
		// só slots estritamente no futuro
		if !cur.After(now) {
			continue
		}

		slot := domain.Interval{Start: cur, End: cur.Add(stepDur)}
		out.Slots = append(out.Slots, cur.Format("15:04"))

		for _, b := range busy {
			if slot.Overlaps(b) {
				out.BusySlots = append(out.BusySlots, cur.Format("15:04"))
				break
			}
		}
	}

	return out, nil
}
