package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Overlap Guard
// ===============================

type GuardInput struct {
	TenantID  uint
	StylistID uint
	Slot      Interval

	// Buffer estende o candidato antes da comparação com agendamentos.
	Buffer time.Duration
	// BufferTimeOff aplica o mesmo buffer contra bloqueios de agenda.
	BufferTimeOff bool

	ExcludeAppointmentID uint
	Lock                 bool
}

type OverlapGuard struct {
	repo Repository
}

func NewOverlapGuard(repo Repository) *OverlapGuard {
	return &OverlapGuard{repo: repo}
}

// Check falha com slot_conflict se algum agendamento ocupante ou time-off do
// profissional intersecta o candidato. Com Lock, as linhas candidatas ficam
// travadas até o commit da transação corrente.
func (g *OverlapGuard) Check(ctx context.Context, in GuardInput) error {
	padded := in.Slot.Pad(in.Buffer)

	apps, err := g.repo.ListOccupying(ctx, OccupyingQuery{
		TenantID:  in.TenantID,
		StylistID: in.StylistID,
		From:      padded.Start,
		To:        padded.End,
		ExcludeID: in.ExcludeAppointmentID,
		Lock:      in.Lock,
	})
	if err != nil {
		return err
	}

	for _, ap := range apps {
		if padded.Overlaps(Interval{Start: ap.StartsAt, End: ap.EndsAt}) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	offCandidate := in.Slot
	if in.BufferTimeOff {
		offCandidate = padded
	}

	offs, err := g.repo.ListTimeOff(
		ctx,
		in.TenantID,
		in.StylistID,
		offCandidate.Start,
		offCandidate.End,
	)
	if err != nil {
		return err
	}

	for _, off := range offs {
		if offCandidate.Overlaps(Interval{Start: off.StartsAt, End: off.EndsAt}) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	return nil
}
