package scheduling

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notification"
	"github.com/BruksfildServices01/salon-scheduler/internal/payments"
	"github.com/BruksfildServices01/salon-scheduler/internal/phone"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID  uint
	StylistID uint
	ServiceID uint

	CustomerName  string
	CustomerPhone string

	StartsAt time.Time
	EndsAt   *time.Time

	DepositAmountOverride *float64
	MarkDepositPaid       bool

	Notes string
	// Quem criou (para auditoria); nil em reservas públicas
	ByUserID *uint
}

type DepositInfo struct {
	Amount      float64    `json:"amount"`
	HoldUntil   *time.Time `json:"hold_until,omitempty"`
	PaymentLink string     `json:"payment_link,omitempty"`
}

type BookingResult struct {
	ID      uint          `json:"id"`
	Status  domain.Status `json:"status"`
	Deposit *DepositInfo  `json:"deposit,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	settings Settings
	defaults config.SchedulingConfig
	audit    *audit.Dispatcher
	notifier *notification.Dispatcher
	payments payments.Provider // nil = sem gateway configurado
}

func NewCreateAppointment(
	repo domain.Repository,
	settings Settings,
	defaults config.SchedulingConfig,
	auditD *audit.Dispatcher,
	notifier *notification.Dispatcher,
	paymentProvider payments.Provider,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		settings: settings,
		defaults: defaults,
		audit:    auditD,
		notifier: notifier,
		payments: paymentProvider,
	}
}

// Execute roda a transação de reserva. A sequência cliente → serviço →
// expediente → conflito (com lock) → insert executa dentro de uma única
// transação; qualquer falha desfaz tudo, inclusive o upsert de cliente.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*BookingResult, error) {

	if in.StartsAt.IsZero() || in.StylistID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	normalizedPhone, err := phone.Normalize(in.CustomerPhone)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	params := resolveParams(ctx, uc.settings, uc.defaults, in.TenantID)
	now := timezone.NowIn(tenant.Timezone)

	var (
		ap          *models.Appointment
		serviceName string
		stylist     *models.Stylist
		deposit     float64
	)

	txErr := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// 1️⃣ Cliente (get or create pelo telefone normalizado)
		customer, err := tx.GetOrCreateCustomer(
			ctx,
			in.TenantID,
			in.CustomerName,
			normalizedPhone,
		)
		if err != nil {
			return err
		}

		// 2️⃣ Serviço
		service, err := tx.GetService(ctx, in.TenantID, in.ServiceID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		serviceName = service.Name

		stylist, err = tx.GetStylist(ctx, in.TenantID, in.StylistID)
		if err != nil || !stylist.Active {
			return httperr.ErrBusiness(httperr.CodeStylistNotFound)
		}

		// 3️⃣ Fim efetivo: explícito, senão início + duração do serviço
		var endsAt time.Time
		switch {
		case in.EndsAt != nil:
			endsAt = *in.EndsAt
		case service.DurationMin > 0:
			endsAt = in.StartsAt.Add(time.Duration(service.DurationMin) * time.Minute)
		default:
			return httperr.ErrBusiness(httperr.CodeInvalidDuration)
		}

		slot := domain.Interval{Start: in.StartsAt, End: endsAt}
		if !slot.Valid() {
			return httperr.ErrBusiness(httperr.CodeInvalidDuration)
		}

		// 4️⃣ Sinal
		deposit = domain.DepositAmount(
			service.Price,
			params.DepositPercentage,
			in.DepositAmountOverride,
		)

		// 5️⃣ Expediente do dia
		weekday, ok := domain.NormalizeWeekday(int(in.StartsAt.Weekday()))
		if !ok {
			return httperr.ErrBusiness(httperr.CodeInvalidInput)
		}

		wh, err := tx.GetWorkingHours(ctx, in.TenantID, in.StylistID, weekday)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNoWorkingHours)
		}
		if err := domain.CheckWithinWorkingHours(wh, slot); err != nil {
			return err
		}

		// 6️⃣ Conflito de horário, com lock no conjunto candidato
		guard := domain.NewOverlapGuard(tx)
		if err := guard.Check(ctx, domain.GuardInput{
			TenantID:      in.TenantID,
			StylistID:     in.StylistID,
			Slot:          slot,
			Buffer:        time.Duration(params.BufferMinutes) * time.Minute,
			BufferTimeOff: params.BufferTimeOff,
			Lock:          true,
		}); err != nil {
			return err
		}

		// 7️⃣ Status inicial + hold
		status := domain.InitialStatus(deposit, in.MarkDepositPaid)

		ap = &models.Appointment{
			TenantID:   in.TenantID,
			StylistID:  in.StylistID,
			CustomerID: customer.ID,
			ServiceID:  service.ID,
			StartsAt:   in.StartsAt,
			EndsAt:     endsAt,
			Status:     string(status),
			Notes:      in.Notes,
		}

		if deposit > 0 {
			ap.DepositAmount = &deposit
		}

		switch status {
		case domain.StatusPendingDeposit:
			holdUntil := domain.HoldUntil(
				now,
				in.StartsAt,
				params.HoldGraceMinutes,
				params.ExpireBeforeStartMinutes,
			)
			ap.HoldUntil = &holdUntil
		case domain.StatusDepositPaid:
			ap.DepositPaidAt = &now
		}

		// 8️⃣ Insert atômico com tenant_id carimbado
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		// sinal marcado como pago na hora entra no livro-razão
		if status == domain.StatusDepositPaid && deposit > 0 {
			return tx.CreatePayment(ctx, &models.Payment{
				TenantID:      in.TenantID,
				AppointmentID: ap.ID,
				Amount:        deposit,
				Method:        "manual",
			})
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.afterCommit(ctx, tenant, stylist, ap, serviceName, in.ByUserID)

	result := &BookingResult{
		ID:     ap.ID,
		Status: domain.Status(ap.Status),
	}
	if ap.DepositAmount != nil {
		result.Deposit = &DepositInfo{
			Amount:      *ap.DepositAmount,
			HoldUntil:   ap.HoldUntil,
			PaymentLink: ap.PaymentLink,
		}
	}

	return result, nil
}

// afterCommit cuida dos colaboradores fire-and-forget: auditoria,
// notificação e link de pagamento. Nada aqui desfaz a reserva.
func (uc *CreateAppointment) afterCommit(
	ctx context.Context,
	tenant *models.Tenant,
	stylist *models.Stylist,
	ap *models.Appointment,
	serviceName string,
	byUserID *uint,
) {
	uc.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   byUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if stylist != nil && stylist.UserID != nil {
		uc.notifier.Notify(notification.Notification{
			TenantID: tenant.ID,
			UserID:   *stylist.UserID,
			Type:     "appointment_created",
			Title:    "Nuevo turno",
			Message:  ap.StartsAt.Format("02/01 15:04") + " — " + serviceName,
			Data:     map[string]any{"appointment_id": ap.ID},
		})
	}

	if uc.payments == nil || domain.Status(ap.Status) != domain.StatusPendingDeposit {
		return
	}

	link, err := uc.payments.CreateDepositLink(ctx, tenant, ap, serviceName, *ap.DepositAmount)
	if err != nil {
		logrus.WithError(err).WithField("appointment_id", ap.ID).
			Warn("deposit link creation failed")
		return
	}

	ap.PaymentLink = link.URL
	if err := uc.repo.SetPaymentLink(ctx, ap.TenantID, ap.ID, link.URL); err != nil {
		logrus.WithError(err).WithField("appointment_id", ap.ID).
			Warn("failed to persist payment link")
	}
}
