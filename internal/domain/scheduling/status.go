package scheduling

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled      Status = "scheduled"
	StatusPendingDeposit Status = "pending_deposit"
	StatusDepositPaid    Status = "deposit_paid"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	// no_show é um rótulo terminal aplicado por fora, nunca produzido aqui
	StatusNoShow Status = "no_show"
)

// OccupyingStatuses são os status que contam para conflito de horário.
func OccupyingStatuses() []string {
	return []string{
		string(StatusScheduled),
		string(StatusPendingDeposit),
		string(StatusDepositPaid),
		string(StatusConfirmed),
	}
}

func IsOccupying(s Status) bool {
	switch s {
	case StatusScheduled, StatusPendingDeposit, StatusDepositPaid, StatusConfirmed:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanConfirmDeposit(current Status) error {
	if current == StatusCancelled || current == StatusCompleted || current == StatusNoShow {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.HoldUntil = nil
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.HoldUntil = nil
	ap.CompletedAt = &now
	return nil
}

// ConfirmDeposit move pending_deposit para deposit_paid e limpa o hold.
// Confirmar um depósito já pago é no-op: retorna false sem erro.
func ConfirmDeposit(ap *models.Appointment, now time.Time) (bool, error) {
	if ap.DepositPaidAt != nil {
		return false, nil
	}

	if err := CanConfirmDeposit(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusDepositPaid)
	ap.HoldUntil = nil
	ap.DepositPaidAt = &now
	return true, nil
}
