package scheduling

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	auditD *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditD,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	byUserID *uint,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment

	txErr := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		ap, err = tx.GetAppointment(ctx, tenantID, appointmentID, true)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		now := timezone.NowIn(tenant.Timezone)
		if err := domain.Cancel(ap, now); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   byUserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
