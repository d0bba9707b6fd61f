package notification

import (
	"github.com/sirupsen/logrus"
)

// Notification é entregue fire-and-forget: falha de envio é logada e nunca
// derruba a transação de agendamento.
type Notification struct {
	TenantID uint
	UserID   uint
	Type     string
	Title    string
	Message  string
	Data     map[string]any
}

// Sender é o colaborador externo de entrega (WhatsApp/push).
type Sender interface {
	Send(n Notification) error
}

type Dispatcher struct {
	sender Sender
	queue  chan Notification
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Notification, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		if err := d.sender.Send(n); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"tenant_id": n.TenantID,
				"user_id":   n.UserID,
				"type":      n.Type,
			}).Warn("notification delivery failed")
		}
	}
}

func (d *Dispatcher) Notify(n Notification) {
	select {
	case d.queue <- n:
	default:
		// fila cheia → descartamos a notificação, nunca bloqueamos a API
		logrus.Warn("notification queue full, dropping event")
	}
}

// LogSender é o sender default quando nenhum canal externo está configurado.
type LogSender struct{}

func (LogSender) Send(n Notification) error {
	logrus.WithFields(logrus.Fields{
		"tenant_id": n.TenantID,
		"user_id":   n.UserID,
		"type":      n.Type,
		"title":     n.Title,
	}).Info("notification")
	return nil
}
