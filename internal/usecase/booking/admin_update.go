package booking

import (
	"context"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/cache"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
	"github.com/lumina-studio/gallery-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type AdminUpdateInput struct {
	Status      *string
	AdminNotes  *string
	PriceAgreed *float64
}

// ======================================================
// USE CASE
// ======================================================

type AdminUpdateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	cache    *cache.AvailabilityCache
}

func NewAdminUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	cache *cache.AvailabilityCache,
) *AdminUpdateBooking {
	return &AdminUpdateBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		cache:    cache,
	}
}

func (uc *AdminUpdateBooking) Execute(
	ctx context.Context,
	staffID uint,
	publicID string,
	in AdminUpdateInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	statusChanged := false

	if in.Status != nil && *in.Status != b.Status {
		next := domain.Status(*in.Status)
		if !domain.IsValidStatus(next) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		if err := domain.CanStaffTransition(domain.Status(b.Status), next); err != nil {
			return nil, err
		}

		b.Status = string(next)
		// Every staff status change records who made it.
		b.AdminUserID = &staffID
		statusChanged = true
	}

	if in.AdminNotes != nil {
		b.AdminNotes = *in.AdminNotes
	}

	if in.PriceAgreed != nil {
		if *in.PriceAgreed < 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		b.PriceAgreed = in.PriceAgreed
	}

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: b.PublicID,
		Metadata: map[string]any{"status": b.Status},
	})

	if statusChanged {
		uc.notifier.BookingStatusChanged(ctx, b)
		uc.cache.Invalidate(ctx)
	}

	return b, nil
}
