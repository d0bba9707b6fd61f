package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	StylistName  string    `json:"stylist_name,omitempty"`
}
