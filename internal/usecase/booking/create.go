package booking

import (
	"context"
	"time"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/cache"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint

	Date     string
	Time     string
	Duration int
	Location string

	ClientName  string
	ClientPhone string
	ClientEmail string
	Message     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
	tz    string
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
		tz:    tz,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	user *models.User,
	in CreateBookingInput,
) (*models.Booking, error) {

	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	date, err := time.Parse(domain.DateLayout, in.Date)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{
			"booking_date": "invalid date, expected YYYY-MM-DD",
		})
	}

	today := timezone.TodayIn(uc.tz)

	if fields := domain.ValidateCreation(today, date, in.Time, in.Duration, svc); len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	// The contact email falls back to the account email.
	email := in.ClientEmail
	if email == "" {
		email = user.Email
	}

	b := &models.Booking{
		UserID:      &user.ID,
		ServiceID:   svc.ID,
		BookingDate: date,
		BookingTime: in.Time,
		Duration:    in.Duration,
		Location:    in.Location,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: email,
		Message:     in.Message,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateWithCapacityCheck(ctx, b); err != nil {
		return nil, err
	}

	b.Service = *svc

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.PublicID,
	})
	uc.cache.Invalidate(ctx)

	return b, nil
}
