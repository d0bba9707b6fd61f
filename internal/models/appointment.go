package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID uint   `gorm:"index;not null" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StylistID uint    `gorm:"index" json:"stylist_id"`
	Stylist   Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Horários naive no fuso do negócio, sem offset na linha
	StartsAt time.Time `gorm:"index" json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	DepositAmount *float64   `json:"deposit_amount"`
	HoldUntil     *time.Time `json:"hold_until"` // só preenchido em pending_deposit
	DepositPaidAt *time.Time `json:"deposit_paid_at"`
	PaymentLink   string     `gorm:"size:255" json:"payment_link,omitempty"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
