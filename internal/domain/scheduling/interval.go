package scheduling

import "time"

// Interval é um intervalo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps segue a definição meio-aberta: extremos encostados não conflitam.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Pad estende o intervalo simetricamente. Modela o tempo mínimo de
// intervalo entre atendimentos (limpeza, atraso).
func (i Interval) Pad(d time.Duration) Interval {
	if d <= 0 {
		return i
	}
	return Interval{
		Start: i.Start.Add(-d),
		End:   i.End.Add(d),
	}
}
