package booking

import (
	"context"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/dto"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

type AdminListBookings struct {
	repo domain.Repository
	tz   string
}

func NewAdminListBookings(repo domain.Repository, tz string) *AdminListBookings {
	return &AdminListBookings{repo: repo, tz: tz}
}

func (uc *AdminListBookings) Execute(
	ctx context.Context,
	f domain.AdminListFilter,
) ([]dto.AdminBookingDTO, int64, domain.AdminStats, error) {

	bookings, total, err := uc.repo.AdminList(ctx, f)
	if err != nil {
		return nil, 0, domain.AdminStats{}, err
	}

	today := timezone.TodayIn(uc.tz)
	stats, err := uc.repo.AdminStatsFor(ctx, today)
	if err != nil {
		return nil, 0, domain.AdminStats{}, err
	}

	out := make([]dto.AdminBookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.FromBookingAdmin(&bookings[i]))
	}

	return out, total, stats, nil
}
