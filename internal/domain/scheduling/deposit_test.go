package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepositAmount(t *testing.T) {
	override := 80.0

	tests := []struct {
		name       string
		price      float64
		percentage float64
		override   *float64
		want       float64
	}{
		{name: "fifty percent", price: 100, percentage: 50, want: 50},
		{name: "rounds to nearest", price: 99, percentage: 50, want: 50},
		{name: "rounds down", price: 98.9, percentage: 50, want: 49},
		{name: "zero percentage", price: 100, percentage: 0, want: 0},
		{name: "override wins", price: 100, percentage: 50, override: &override, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DepositAmount(tt.price, tt.percentage, tt.override))
		})
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(0, false))
	assert.Equal(t, StatusConfirmed, InitialStatus(-1, false))
	assert.Equal(t, StatusPendingDeposit, InitialStatus(50, false))
	assert.Equal(t, StatusDepositPaid, InitialStatus(50, true))

	// markPaid não muda nada quando não há sinal
	assert.Equal(t, StatusConfirmed, InitialStatus(0, true))
}

func TestHoldUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("grace bound wins for distant start", func(t *testing.T) {
		startsAt := now.Add(48 * time.Hour)
		got := HoldUntil(now, startsAt, 30, 120)
		assert.Equal(t, now.Add(30*time.Minute), got)
	})

	t.Run("start bound wins for near start", func(t *testing.T) {
		startsAt := now.Add(2 * time.Hour)
		got := HoldUntil(now, startsAt, 30, 120)
		assert.Equal(t, startsAt.Add(-120*time.Minute), got)
	})

	t.Run("start bound can be in the past", func(t *testing.T) {
		// Reserva feita a menos de expireBefore do início: hold já nasce
		// vencido e o reaper cancela na próxima varredura
		startsAt := now.Add(1 * time.Hour)
		got := HoldUntil(now, startsAt, 30, 120)
		assert.True(t, got.Before(now))
	})
}
