package scheduling

import (
	"math"
	"time"
)

// DepositAmount resolve o valor do sinal: override explícito tem prioridade,
// senão percentual configurado sobre o preço do serviço.
func DepositAmount(price float64, percentage float64, override *float64) float64 {
	if override != nil {
		return *override
	}
	return math.Round(price * percentage / 100)
}

// InitialStatus resolve o status de criação a partir do sinal calculado.
// Sinal zerado dispensa a fase de hold e o agendamento nasce confirmado.
func InitialStatus(deposit float64, markPaid bool) Status {
	if deposit <= 0 {
		return StatusConfirmed
	}
	if markPaid {
		return StatusDepositPaid
	}
	return StatusPendingDeposit
}

// HoldUntil calcula o prazo do hold com limite duplo:
// min(now + grace, start − expireBefore). O primeiro evita hold esquecido
// muito depois da reserva; o segundo evita hold vivo perto demais do início.
func HoldUntil(now, startsAt time.Time, graceMinutes, expireBeforeStartMinutes int) time.Time {
	byGrace := now.Add(time.Duration(graceMinutes) * time.Minute)
	byStart := startsAt.Add(-time.Duration(expireBeforeStartMinutes) * time.Minute)

	if byStart.Before(byGrace) {
		return byStart
	}
	return byGrace
}
