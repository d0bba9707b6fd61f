package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// UpdateAppointmentPatch: campos nil são preservados (merge por coalesce),
// nunca sobrescritos com zero.
type UpdateAppointmentPatch struct {
	StylistID *uint
	ServiceID *uint
	StartsAt  *time.Time
	EndsAt    *time.Time
	Notes     *string
}

type UpdateAppointment struct {
	repo     domain.Repository
	settings Settings
	defaults config.SchedulingConfig
	audit    *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	settings Settings,
	defaults config.SchedulingConfig,
	auditD *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		settings: settings,
		defaults: defaults,
		audit:    auditD,
	}
}

// Execute reaplica as validações de reserva sempre que horário, profissional
// ou serviço mudam; a própria linha é excluída do teste de conflito por id.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	patch UpdateAppointmentPatch,
	byUserID *uint,
) (*models.Appointment, error) {

	params := resolveParams(ctx, uc.settings, uc.defaults, tenantID)

	var updated *models.Appointment

	txErr := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, tenantID, appointmentID, true)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		timingChanged := patch.StylistID != nil ||
			patch.ServiceID != nil ||
			patch.StartsAt != nil ||
			patch.EndsAt != nil

		if timingChanged && domain.IsTerminal(domain.Status(ap.Status)) {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}

		if patch.StylistID != nil {
			stylist, err := tx.GetStylist(ctx, tenantID, *patch.StylistID)
			if err != nil || !stylist.Active {
				return httperr.ErrBusiness(httperr.CodeStylistNotFound)
			}
			ap.StylistID = *patch.StylistID
		}

		var service *models.Service
		if patch.ServiceID != nil {
			service, err = tx.GetService(ctx, tenantID, *patch.ServiceID)
			if err != nil {
				return httperr.ErrBusiness(httperr.CodeServiceNotFound)
			}
			ap.ServiceID = *patch.ServiceID
		}

		if patch.StartsAt != nil {
			ap.StartsAt = *patch.StartsAt
		}

		switch {
		case patch.EndsAt != nil:
			ap.EndsAt = *patch.EndsAt
		case patch.StartsAt != nil || patch.ServiceID != nil:
			// fim recalculado pela duração do serviço efetivo
			if service == nil {
				service, err = tx.GetService(ctx, tenantID, ap.ServiceID)
				if err != nil {
					return httperr.ErrBusiness(httperr.CodeServiceNotFound)
				}
			}
			if service.DurationMin <= 0 {
				return httperr.ErrBusiness(httperr.CodeInvalidDuration)
			}
			ap.EndsAt = ap.StartsAt.Add(time.Duration(service.DurationMin) * time.Minute)
		}

		if patch.Notes != nil {
			ap.Notes = *patch.Notes
		}

		if timingChanged {
			slot := domain.Interval{Start: ap.StartsAt, End: ap.EndsAt}
			if !slot.Valid() {
				return httperr.ErrBusiness(httperr.CodeInvalidDuration)
			}

			weekday, ok := domain.NormalizeWeekday(int(ap.StartsAt.Weekday()))
			if !ok {
				return httperr.ErrBusiness(httperr.CodeInvalidInput)
			}

			wh, err := tx.GetWorkingHours(ctx, tenantID, ap.StylistID, weekday)
			if err != nil {
				return httperr.ErrBusiness(httperr.CodeNoWorkingHours)
			}
			if err := domain.CheckWithinWorkingHours(wh, slot); err != nil {
				return err
			}

			guard := domain.NewOverlapGuard(tx)
			if err := guard.Check(ctx, domain.GuardInput{
				TenantID:             tenantID,
				StylistID:            ap.StylistID,
				Slot:                 slot,
				Buffer:               time.Duration(params.BufferMinutes) * time.Minute,
				BufferTimeOff:        params.BufferTimeOff,
				ExcludeAppointmentID: ap.ID,
				Lock:                 true,
			}); err != nil {
				return err
			}
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   byUserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
