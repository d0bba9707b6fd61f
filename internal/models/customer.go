package models

import "time"

// Cliente final, sem login, criado na primeira reserva pelo telefone
type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;uniqueIndex:idx_customers_tenant_phone" json:"tenant_id"`

	Name string `gorm:"size:100" json:"name"`
	// Telefone normalizado E.164, único por tenant
	Phone string `gorm:"size:20;not null;uniqueIndex:idx_customers_tenant_phone" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
