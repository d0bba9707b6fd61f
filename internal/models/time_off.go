package models

import "time"

// TimeOff é um bloqueio avulso de agenda (férias, médico, etc).
type TimeOff struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TenantID  uint `gorm:"index;not null" json:"tenant_id"`
	StylistID uint `gorm:"index;not null" json:"stylist_id"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Reason   string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
