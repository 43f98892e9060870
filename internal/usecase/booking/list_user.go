package booking

import (
	"context"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/dto"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

type ListUserBookings struct {
	repo domain.Repository
	tz   string
}

func NewListUserBookings(repo domain.Repository, tz string) *ListUserBookings {
	return &ListUserBookings{repo: repo, tz: tz}
}

func (uc *ListUserBookings) Execute(
	ctx context.Context,
	userID uint,
	f domain.UserListFilter,
) ([]dto.BookingDTO, int64, domain.UserStats, error) {

	bookings, total, err := uc.repo.ListForUser(ctx, userID, f)
	if err != nil {
		return nil, 0, domain.UserStats{}, err
	}

	today := timezone.TodayIn(uc.tz)
	stats, err := uc.repo.StatsForUser(ctx, userID, today)
	if err != nil {
		return nil, 0, domain.UserStats{}, err
	}

	out := make([]dto.BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.FromBooking(&bookings[i]))
	}

	return out, total, stats, nil
}
