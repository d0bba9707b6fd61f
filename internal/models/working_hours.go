package models

import "time"

// WorkingHours guarda no máximo um intervalo aberto por dia da semana.
// StartTime/EndTime vazios significam dia de folga.
type WorkingHours struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TenantID  uint `gorm:"index;not null" json:"tenant_id"`
	StylistID uint `gorm:"index;not null" json:"stylist_id"`

	Weekday int `json:"weekday"` // 0=domingo .. 6=sábado

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
