package scheduling

import "time"

type AvailabilityInput struct {
	TenantID    uint
	StylistID   uint
	ServiceID   uint
	Date        time.Time
	StepMinutes int // 0 = duração do serviço
}

// Availability traz todos os candidatos do dia e o subconjunto já ocupado,
// ambos como horários de início "HH:MM".
type Availability struct {
	Slots     []string `json:"slots"`
	BusySlots []string `json:"busy_slots"`
}
