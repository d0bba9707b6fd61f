package scheduling

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
)

// Settings é a fatia da loja de configuração que os casos de uso consomem.
// Leituras são fail-open: indisponibilidade devolve o default.
type Settings interface {
	Number(ctx context.Context, tenantID uint, key string, def float64) float64
	Int(ctx context.Context, tenantID uint, key string, def int) int
	Bool(ctx context.Context, tenantID uint, key string, def bool) bool
}

// schedulingParams resolve os parâmetros efetivos do tenant sobre os
// defaults do processo.
type schedulingParams struct {
	DepositPercentage        float64
	HoldGraceMinutes         int
	ExpireBeforeStartMinutes int
	BufferMinutes            int
	BufferTimeOff            bool
}

func resolveParams(
	ctx context.Context,
	s Settings,
	defaults config.SchedulingConfig,
	tenantID uint,
) schedulingParams {
	return schedulingParams{
		DepositPercentage:        s.Number(ctx, tenantID, settings.KeyDepositPercentage, defaults.DepositPercentage),
		HoldGraceMinutes:         s.Int(ctx, tenantID, settings.KeyHoldMinutes, defaults.HoldGraceMinutes),
		ExpireBeforeStartMinutes: s.Int(ctx, tenantID, settings.KeyExpirationBeforeStart, defaults.ExpireBeforeStartMinutes),
		BufferMinutes:            s.Int(ctx, tenantID, settings.KeyBufferMinutes, defaults.BufferMinutes),
		BufferTimeOff:            s.Bool(ctx, tenantID, settings.KeyBufferTimeOff, false),
	}
}
