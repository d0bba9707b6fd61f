package scheduling

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ExpireHolds struct {
	repo domain.Repository
}

func NewExpireHolds(repo domain.Repository) *ExpireHolds {
	return &ExpireHolds{repo: repo}
}

// Execute varre os holds vencidos e libera os horários. Idempotente e
// seguro para rodar concorrente consigo mesmo: a linha já transicionada
// simplesmente não casa de novo. tenantID nil varre todos os tenants.
func (uc *ExpireHolds) Execute(
	ctx context.Context,
	tenantID *uint,
) (int64, error) {
	return uc.repo.ExpireHolds(ctx, tenantID, timezone.Now())
}
