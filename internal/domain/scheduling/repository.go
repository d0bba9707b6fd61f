package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// OccupyingQuery seleciona os agendamentos ocupantes de um profissional que
// intersectam [From, To). Lock pede FOR UPDATE nas linhas candidatas para
// serializar escritores concorrentes dentro da mesma transação.
type OccupyingQuery struct {
	TenantID  uint
	StylistID uint
	From      time.Time
	To        time.Time
	ExcludeID uint
	Lock      bool
}

type Repository interface {
	// InTx executa fn dentro de uma transação; o Repository recebido só é
	// válido durante a chamada. Qualquer erro faz rollback de tudo.
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	GetStylist(
		ctx context.Context,
		tenantID uint,
		stylistID uint,
	) (*models.Stylist, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		tenantID uint,
		name string,
		phone string,
	) (*models.Customer, error)

	// -------- Working hours / time off --------
	GetWorkingHours(
		ctx context.Context,
		tenantID uint,
		stylistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListTimeOff(
		ctx context.Context,
		tenantID uint,
		stylistID uint,
		from time.Time,
		to time.Time,
	) ([]models.TimeOff, error)

	// -------- Appointment --------
	ListOccupying(
		ctx context.Context,
		q OccupyingQuery,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
		lock bool,
	) (*models.Appointment, error)

	// SetPaymentLink grava apenas o link de pagamento; roda fora da
	// transação de reserva e não pode sobrescrever transições de status
	// concorrentes.
	SetPaymentLink(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
		link string,
	) error

	ListForPeriod(
		ctx context.Context,
		tenantID uint,
		stylistID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListUpcomingByPhone(
		ctx context.Context,
		tenantID uint,
		phone string,
		after time.Time,
		limit int,
	) ([]models.Appointment, error)

	// -------- Hold expiry --------
	ExpireHolds(
		ctx context.Context,
		tenantID *uint,
		now time.Time,
	) (int64, error)

	// -------- Payment ledger --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
