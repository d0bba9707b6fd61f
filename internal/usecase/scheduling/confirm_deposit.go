package scheduling

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ConfirmDeposit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmDeposit(
	repo domain.Repository,
	auditD *audit.Dispatcher,
) *ConfirmDeposit {
	return &ConfirmDeposit{
		repo:  repo,
		audit: auditD,
	}
}

// Execute é idempotente: confirmar um sinal já pago devolve sucesso sem
// efeito. Na primeira confirmação o hold é limpo e a linha entra no
// livro-razão de pagamentos.
func (uc *ConfirmDeposit) Execute(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	amount *float64,
	method string,
	externalRef string,
) error {

	if method == "" {
		method = "manual"
	}

	var (
		confirmed bool
		apID      uint
	)

	txErr := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, tenantID, appointmentID, true)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		tenant, err := tx.GetTenantByID(ctx, tenantID)
		if err != nil {
			return err
		}

		now := timezone.NowIn(tenant.Timezone)

		changed, err := domain.ConfirmDeposit(ap, now)
		if err != nil {
			return err
		}
		if !changed {
			return nil // já pago: no-op
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		paid := 0.0
		switch {
		case amount != nil:
			paid = *amount
		case ap.DepositAmount != nil:
			paid = *ap.DepositAmount
		}

		if err := tx.CreatePayment(ctx, &models.Payment{
			TenantID:      tenantID,
			AppointmentID: ap.ID,
			Amount:        paid,
			Method:        method,
			ExternalRef:   externalRef,
		}); err != nil {
			return err
		}

		confirmed = true
		apID = ap.ID
		return nil
	})
	if txErr != nil {
		return txErr
	}

	if confirmed {
		uc.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			Action:   "deposit_confirmed",
			Entity:   "appointment",
			EntityID: &apID,
		})
	}

	return nil
}
