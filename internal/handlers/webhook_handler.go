package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/payments"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

// WebhookHandler recebe notificações do Mercado Pago. A notificação só
// carrega o ID do pagamento; o valor e o vínculo com o agendamento são
// sempre re-consultados no gateway antes de confirmar o sinal.
type WebhookHandler struct {
	provider payments.Provider
	confirm  *usecase.ConfirmDeposit
	rdb      *redis.Client
}

func NewWebhookHandler(
	provider payments.Provider,
	confirm *usecase.ConfirmDeposit,
	rdb *redis.Client,
) *WebhookHandler {
	return &WebhookHandler{
		provider: provider,
		confirm:  confirm,
		rdb:      rdb,
	}
}

type mercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	if h.provider == nil {
		c.Status(http.StatusOK)
		return
	}

	var notif mercadoPagoNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		// Formato antigo usa query string (?topic=payment&id=...)
		notif.Type = c.Query("topic")
		notif.Data.ID = c.Query("id")
	}

	paymentID := strings.TrimSpace(notif.Data.ID)
	if notif.Type != "payment" || paymentID == "" {
		c.Status(http.StatusOK)
		return
	}

	ctx := c.Request.Context()

	// O gateway reenvia a mesma notificação várias vezes; o dedup evita
	// bater na API dele de novo. Confirmar duas vezes seria inofensivo.
	if h.rdb != nil {
		key := fmt.Sprintf("webhook:mp:%s", paymentID)
		ok, err := h.rdb.SetNX(ctx, key, "1", 24*time.Hour).Result()
		if err == nil && !ok {
			c.Status(http.StatusOK)
			return
		}
	}

	approved, err := h.provider.GetApprovedPayment(ctx, paymentID)
	if err != nil {
		logrus.WithError(err).WithField("payment_id", paymentID).
			Warn("webhook: falha ao consultar pagamento")
		c.Status(http.StatusInternalServerError)
		return
	}
	if approved == nil {
		// Pendente ou rejeitado: nada a fazer
		c.Status(http.StatusOK)
		return
	}

	tenantID, appointmentID, ok := payments.ParseExternalRef(approved.ExternalRef)
	if !ok {
		logrus.WithField("external_ref", approved.ExternalRef).
			Warn("webhook: external_ref fora do formato esperado")
		c.Status(http.StatusOK)
		return
	}

	amount := approved.Amount
	if err := h.confirm.Execute(ctx, tenantID, appointmentID, &amount, "mercadopago", approved.ExternalRef); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id":      tenantID,
			"appointment_id": appointmentID,
		}).Error("webhook: falha ao confirmar sinal")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
