package booking

import (
	"context"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/cache"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
	"github.com/lumina-studio/gallery-api/internal/notify"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	cache    *cache.AvailabilityCache
	tz       string
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	cache *cache.AvailabilityCache,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		cache:    cache,
		tz:       tz,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	publicID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetForUser(ctx, publicID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	today := timezone.TodayIn(uc.tz)
	if err := domain.CanClientCancel(domain.Status(b.Status), b.BookingDate, today); err != nil {
		return nil, err
	}

	b.Status = string(domain.StatusCancelled)

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: b.PublicID,
	})
	uc.notifier.BookingCancelled(ctx, b)
	uc.cache.Invalidate(ctx)

	return b, nil
}
