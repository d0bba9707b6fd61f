package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

type whKey struct {
	tenantID  uint
	stylistID uint
	weekday   int
}

// fakeRepo é um Repository em memória para os testes de caso de uso.
// txMu serializa transações inteiras, reproduzindo o efeito do lock
// FOR UPDATE do repositório real: dois Execute concorrentes sobre o mesmo
// horário nunca leem o conjunto ocupante ao mesmo tempo.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	tenants      map[uint]*models.Tenant
	services     map[uint]*models.Service
	stylists     map[uint]*models.Stylist
	customers    []*models.Customer
	workingHours map[whKey]*models.WorkingHours
	timeOffs     []models.TimeOff
	appointments map[uint]*models.Appointment
	payments     []models.Payment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:      map[uint]*models.Tenant{},
		services:     map[uint]*models.Service{},
		stylists:     map[uint]*models.Stylist{},
		workingHours: map[whKey]*models.WorkingHours{},
		appointments: map[uint]*models.Appointment{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *fakeRepo) GetTenantByID(ctx context.Context, id uint) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetService(ctx context.Context, tenantID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[serviceID]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetStylist(ctx context.Context, tenantID, stylistID uint) (*models.Stylist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stylists[stylistID]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetOrCreateCustomer(ctx context.Context, tenantID uint, name, phone string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Phone == phone {
			// nome: primeira escrita vence, nunca apagamos um nome existente
			if c.Name == "" && name != "" {
				c.Name = name
			}
			return c, nil
		}
	}
	r.nextID++
	c := &models.Customer{ID: r.nextID, TenantID: tenantID, Name: name, Phone: phone}
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, tenantID, stylistID uint, weekday int) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wh, ok := r.workingHours[whKey{tenantID, stylistID, weekday}]; ok {
		return wh, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListTimeOff(ctx context.Context, tenantID, stylistID uint, from, to time.Time) ([]models.TimeOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeOff
	for _, off := range r.timeOffs {
		if off.TenantID != tenantID || off.StylistID != stylistID {
			continue
		}
		if off.StartsAt.Before(to) && off.EndsAt.After(from) {
			out = append(out, off)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListOccupying(ctx context.Context, q domain.OccupyingQuery) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != q.TenantID || ap.StylistID != q.StylistID {
			continue
		}
		if q.ExcludeID != 0 && ap.ID == q.ExcludeID {
			continue
		}
		if !domain.IsOccupying(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartsAt.Before(q.To) && ap.EndsAt.After(q.From) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, tenantID, appointmentID uint, lock bool) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap, ok := r.appointments[appointmentID]; ok && ap.TenantID == tenantID {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) SetPaymentLink(ctx context.Context, tenantID, appointmentID uint, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.TenantID != tenantID {
		return errNotFound
	}
	// só a coluna do link, igual ao repositório real
	ap.PaymentLink = link
	return nil
}

func (r *fakeRepo) ListForPeriod(ctx context.Context, tenantID, stylistID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if stylistID != 0 && ap.StylistID != stylistID {
			continue
		}
		if !ap.StartsAt.Before(from) && ap.StartsAt.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUpcomingByPhone(ctx context.Context, tenantID uint, phone string, after time.Time, limit int) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var customerID uint
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Phone == phone {
			customerID = c.ID
		}
	}
	if customerID == 0 {
		return nil, nil
	}

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID || ap.CustomerID != customerID {
			continue
		}
		if ap.StartsAt.After(after) && len(out) < limit {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ExpireHolds(ctx context.Context, tenantID *uint, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, ap := range r.appointments {
		if tenantID != nil && ap.TenantID != *tenantID {
			continue
		}
		if ap.Status != string(domain.StatusPendingDeposit) {
			continue
		}
		if ap.HoldUntil == nil || !ap.HoldUntil.Before(now) {
			continue
		}
		ap.Status = string(domain.StatusCancelled)
		ap.HoldUntil = nil
		cancelledAt := now
		ap.CancelledAt = &cancelledAt
		n++
	}
	return n, nil
}

func (r *fakeRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, *p)
	return nil
}

// --------------------------------------------------
// Settings fake
// --------------------------------------------------

// fakeSettings devolve overrides quando presentes, senão o default,
// igual ao comportamento fail-open da loja real.
type fakeSettings struct {
	numbers map[string]float64
	ints    map[string]int
	bools   map[string]bool
}

func (f fakeSettings) Number(ctx context.Context, tenantID uint, key string, def float64) float64 {
	if v, ok := f.numbers[key]; ok {
		return v
	}
	return def
}

func (f fakeSettings) Int(ctx context.Context, tenantID uint, key string, def int) int {
	if v, ok := f.ints[key]; ok {
		return v
	}
	return def
}

func (f fakeSettings) Bool(ctx context.Context, tenantID uint, key string, def bool) bool {
	if v, ok := f.bools[key]; ok {
		return v
	}
	return def
}
