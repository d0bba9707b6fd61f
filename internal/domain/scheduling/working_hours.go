package scheduling

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// NormalizeWeekday aceita as duas convenções de domingo (0 e 7) e devolve
// sempre 0..6. A normalização acontece aqui, na borda; as queries usam um
// único valor.
func NormalizeWeekday(d int) (int, bool) {
	if d == 7 {
		return 0, true
	}
	if d < 0 || d > 6 {
		return 0, false
	}
	return d, true
}

// DayWindow materializa o expediente de um dia como intervalo [open, close)
// na data de referência. Retorna false quando o dia é folga ou o registro
// está inativo/incompleto.
func DayWindow(wh *models.WorkingHours, ref time.Time) (Interval, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return Interval{}, false
	}

	open, okOpen := atTime(wh.StartTime, ref)
	close, okClose := atTime(wh.EndTime, ref)
	if !okOpen || !okClose || !open.Before(close) {
		return Interval{}, false
	}

	return Interval{Start: open, End: close}, true
}

// CheckWithinWorkingHours valida que o agendamento cabe inteiro no expediente.
func CheckWithinWorkingHours(wh *models.WorkingHours, slot Interval) error {
	window, ok := DayWindow(wh, slot.Start)
	if !ok {
		return httperr.ErrBusiness(httperr.CodeNoWorkingHours)
	}

	if slot.Start.Before(window.Start) || slot.End.After(window.End) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}
	return nil
}

func atTime(hm string, ref time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	), true
}
