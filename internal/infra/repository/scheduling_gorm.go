package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Toda query deste repositório carrega o predicado tenant_id explícito.
// Não existe caminho de leitura ou escrita sem ele.

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *SchedulingGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *SchedulingGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *SchedulingGormRepository) GetStylist(
	ctx context.Context,
	tenantID uint,
	stylistID uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", stylistID, tenantID).
		First(&stylist).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *SchedulingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	tenantID uint,
	name string,
	phone string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		First(&customer).Error

	if err == nil {
		// nome: primeira escrita vence, nunca apagamos um nome existente
		if customer.Name == "" && name != "" {
			customer.Name = name
			if err := r.db.WithContext(ctx).
				Model(&models.Customer{}).
				Where("id = ? AND tenant_id = ?", customer.ID, tenantID).
				Update("name", name).Error; err != nil {
				return nil, err
			}
		}
		return &customer, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		TenantID: tenantID,
		Name:     name,
		Phone:    phone,
	}

	// corrida no unique (tenant_id, phone): ON CONFLICT DO NOTHING não aborta
	// a transação da reserva; zero linhas afetadas = outro writer criou
	// primeiro, relemos a linha dele
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&customer)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var existing models.Customer
		if err := r.db.WithContext(ctx).
			Where("tenant_id = ? AND phone = ?", tenantID, phone).
			First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	return &customer, nil
}

// --------------------------------------------------
// Working hours / time off
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWorkingHours(
	ctx context.Context,
	tenantID uint,
	stylistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND stylist_id = ? AND weekday = ?",
			tenantID, stylistID, weekday,
		).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *SchedulingGormRepository) ListTimeOff(
	ctx context.Context,
	tenantID uint,
	stylistID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeOff, error) {

	var offs []models.TimeOff
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND stylist_id = ? AND starts_at < ? AND ends_at > ?",
			tenantID, stylistID, to, from,
		).
		Order("starts_at ASC").
		Find(&offs).Error; err != nil {
		return nil, err
	}

	return offs, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) ListOccupying(
	ctx context.Context,
	q domain.OccupyingQuery,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"tenant_id = ? AND stylist_id = ? AND status IN ? AND starts_at < ? AND ends_at > ?",
			q.TenantID,
			q.StylistID,
			domain.OccupyingStatuses(),
			q.To,
			q.From,
		)

	if q.ExcludeID != 0 {
		tx = tx.Where("id <> ?", q.ExcludeID)
	}

	if q.Lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := tx.Order("starts_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", ap.TenantID).
		Save(ap).Error
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	lock bool,
) (*models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID)

	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := tx.First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) ListForPeriod(
	ctx context.Context,
	tenantID uint,
	stylistID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"tenant_id = ? AND stylist_id = ? AND starts_at >= ? AND starts_at < ?",
			tenantID,
			stylistID,
			from,
			to,
		).
		Order("starts_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListUpcomingByPhone(
	ctx context.Context,
	tenantID uint,
	phone string,
	after time.Time,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Stylist").
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where(
			"appointments.tenant_id = ? AND customers.tenant_id = ? AND customers.phone = ?",
			tenantID, tenantID, phone,
		).
		Where("appointments.status IN ?", domain.OccupyingStatuses()).
		Where("appointments.starts_at > ?", after).
		Order("appointments.starts_at ASC").
		Limit(limit).
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// SetPaymentLink grava só a coluna do link. O status pode já ter avançado
// entre o commit da reserva e a resposta do gateway (cancelamento, varredura
// de holds), então nunca regravamos a linha inteira aqui.
func (r *SchedulingGormRepository) SetPaymentLink(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	link string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		Update("payment_link", link).Error
}

// --------------------------------------------------
// Hold expiry
// --------------------------------------------------

func (r *SchedulingGormRepository) ExpireHolds(
	ctx context.Context,
	tenantID *uint,
	now time.Time,
) (int64, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status = ? AND hold_until IS NOT NULL AND hold_until < ?",
			string(domain.StatusPendingDeposit),
			now,
		)

	if tenantID != nil {
		tx = tx.Where("tenant_id = ?", *tenantID)
	}

	res := tx.Updates(map[string]any{
		"status":       string(domain.StatusCancelled),
		"hold_until":   nil,
		"cancelled_at": now,
	})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// --------------------------------------------------
// Payment ledger
// --------------------------------------------------

func (r *SchedulingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
