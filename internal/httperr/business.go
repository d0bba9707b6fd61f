package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// ===============================
// Códigos de negócio do agendamento
// ===============================

const (
	CodeInvalidInput        = "invalid_input"
	CodeInvalidDuration     = "invalid_duration"
	CodeServiceNotFound     = "service_not_found"
	CodeStylistNotFound     = "stylist_not_found"
	CodeNoWorkingHours      = "no_working_hours"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeSlotConflict        = "slot_conflict"
	CodeTimeOffConflict     = "time_off_conflict"
	CodeNotFound            = "appointment_not_found"
	CodeInvalidState        = "invalid_state"
	CodeTenantNotIdentified = "tenant_not_identified"
	CodeTenantSuspended     = "account_suspended"
)
