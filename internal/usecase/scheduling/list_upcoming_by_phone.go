package scheduling

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/phone"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultUpcomingLimit = 10

type ListUpcomingByPhone struct {
	repo domain.Repository
}

func NewListUpcomingByPhone(repo domain.Repository) *ListUpcomingByPhone {
	return &ListUpcomingByPhone{repo: repo}
}

func (uc *ListUpcomingByPhone) Execute(
	ctx context.Context,
	tenantID uint,
	rawPhone string,
	limit int,
) ([]dto.AppointmentListDTO, error) {

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if limit <= 0 || limit > 50 {
		limit = defaultUpcomingLimit
	}

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListUpcomingByPhone(
		ctx,
		tenantID,
		normalized,
		timezone.NowIn(tenant.Timezone),
		limit,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartsAt:    ap.StartsAt,
			EndsAt:      ap.EndsAt,
			Status:      ap.Status,
			ServiceName: ap.Service.Name,
			StylistName: ap.Stylist.Name,
		})
	}

	return out, nil
}
