package models

import "time"

// Payment é um livro-razão append-only: linhas nunca são alteradas.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID      uint `gorm:"index;not null" json:"tenant_id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Amount      float64 `json:"amount"`
	Method      string  `gorm:"size:30" json:"method"` // manual | mercadopago
	ExternalRef string  `gorm:"size:100" json:"external_ref"`

	CreatedAt time.Time `json:"created_at"`
}
