package booking

import (
	"context"
	"time"

	"github.com/lumina-studio/gallery-api/internal/cache"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

type GetAvailableDates struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	tz    string
}

func NewGetAvailableDates(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
	tz string,
) *GetAvailableDates {
	return &GetAvailableDates{
		repo:  repo,
		cache: cache,
		tz:    tz,
	}
}

func (uc *GetAvailableDates) Execute(ctx context.Context) ([]string, error) {
	if dates, ok := uc.cache.GetDates(ctx); ok {
		return dates, nil
	}

	today := timezone.TodayIn(uc.tz)

	counts, err := uc.repo.ActiveCountsByDate(
		ctx,
		domain.WindowStart(today),
		domain.WindowEnd(today),
	)
	if err != nil {
		return nil, err
	}

	dates := domain.AvailableDates(today, counts)

	uc.cache.SetDates(ctx, dates)
	return dates, nil
}

// CheckDate applies the confirmed-hours rule for one candidate date and
// duration.
func (uc *GetAvailableDates) CheckDate(
	ctx context.Context,
	date time.Time,
	duration int,
) (bool, error) {

	hours, err := uc.repo.ConfirmedHoursForDate(ctx, date)
	if err != nil {
		return false, err
	}

	return domain.HasHourCapacity(hours, duration), nil
}
