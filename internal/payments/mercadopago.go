package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// DepositLink é o checkout gerado para o cliente pagar o sinal.
type DepositLink struct {
	URL         string
	ExternalRef string
}

// ApprovedPayment é o resultado de um pagamento confirmado no gateway.
type ApprovedPayment struct {
	ExternalRef string
	Amount      float64
}

// Provider é a fatia do gateway que o core consome: gerar link de sinal e
// resolver um pagamento aprovado de volta ao agendamento.
type Provider interface {
	CreateDepositLink(
		ctx context.Context,
		tenant *models.Tenant,
		ap *models.Appointment,
		serviceName string,
		amount float64,
	) (*DepositLink, error)

	GetApprovedPayment(
		ctx context.Context,
		paymentID string,
	) (*ApprovedPayment, error)
}

// ===============================
// Mercado Pago
// ===============================

type MercadoPago struct {
	pref preference.Client
	pay  payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		pref: preference.NewClient(cfg),
		pay:  payment.NewClient(cfg),
	}, nil
}

func ExternalRef(tenantID, appointmentID uint) string {
	return fmt.Sprintf("appointment:%d:%d", tenantID, appointmentID)
}

// ParseExternalRef devolve (tenantID, appointmentID) de uma referência nossa.
func ParseExternalRef(ref string) (uint, uint, bool) {
	parts := strings.Split(ref, ":")
	if len(parts) != 3 || parts[0] != "appointment" {
		return 0, 0, false
	}

	tenantID, err1 := strconv.ParseUint(parts[1], 10, 32)
	appointmentID, err2 := strconv.ParseUint(parts[2], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return uint(tenantID), uint(appointmentID), true
}

func (m *MercadoPago) CreateDepositLink(
	ctx context.Context,
	tenant *models.Tenant,
	ap *models.Appointment,
	serviceName string,
	amount float64,
) (*DepositLink, error) {

	ref := ExternalRef(tenant.ID, ap.ID)

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       fmt.Sprintf("Seña — %s", serviceName),
				Description: fmt.Sprintf("%s, %s", tenant.Name, ap.StartsAt.Format("02/01 15:04")),
				Quantity:    1,
				UnitPrice:   amount,
			},
		},
		ExternalReference: ref,
	}

	// o link morre junto com o hold
	if ap.HoldUntil != nil {
		req.DateOfExpiration = ap.HoldUntil
	}

	resp, err := m.pref.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}

	return &DepositLink{URL: resp.InitPoint, ExternalRef: ref}, nil
}

func (m *MercadoPago) GetApprovedPayment(
	ctx context.Context,
	paymentID string,
) (*ApprovedPayment, error) {

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q", paymentID)
	}

	resp, err := m.pay.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago payment: %w", err)
	}

	if resp.Status != "approved" {
		return nil, nil
	}

	return &ApprovedPayment{
		ExternalRef: resp.ExternalReference,
		Amount:      resp.TransactionAmount,
	}, nil
}
