package booking

import (
	"context"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/cache"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute permanently removes a booking. Staff may delete any booking, a
// client only their own; completed bookings are kept regardless of caller.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	userID uint,
	isStaff bool,
	publicID string,
) error {

	var b *models.Booking
	var err error

	if isStaff {
		b, err = uc.repo.GetByPublicID(ctx, publicID)
	} else {
		b, err = uc.repo.GetForUser(ctx, publicID, userID)
	}
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.CanDelete(domain.Status(b.Status)); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, b); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: b.PublicID,
	})
	uc.cache.Invalidate(ctx)

	return nil
}
