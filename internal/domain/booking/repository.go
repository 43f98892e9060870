package booking

import (
	"context"
	"time"

	"github.com/lumina-studio/gallery-api/internal/models"
)

type UserListFilter struct {
	Status string
	Page   int
	Limit  int
}

type AdminListFilter struct {
	Status string
	Date   *time.Time
	Search string
	Page   int
	Limit  int
}

type UserStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Upcoming  int64 `json:"upcoming"`
}

type AdminStats struct {
	Total    int64   `json:"total"`
	Pending  int64   `json:"pending"`
	Today    int64   `json:"today"`
	Upcoming int64   `json:"upcoming"`
	Revenue  float64 `json:"revenue"`
}

type Repository interface {
	// -------- Service --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Booking (lookup) --------
	GetByPublicID(
		ctx context.Context,
		publicID string,
	) (*models.Booking, error)

	GetForUser(
		ctx context.Context,
		publicID string,
		userID uint,
	) (*models.Booking, error)

	// -------- Booking (mutation) --------

	// CreateWithCapacityCheck re-validates both per-date capacity rules and
	// inserts the booking in one transaction, so two concurrent requests
	// cannot both take the last open slot.
	CreateWithCapacityCheck(
		ctx context.Context,
		b *models.Booking,
	) error

	Update(
		ctx context.Context,
		b *models.Booking,
	) error

	Delete(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Availability --------
	ActiveCountsByDate(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (map[string]int, error)

	ConfirmedHoursForDate(
		ctx context.Context,
		date time.Time,
	) (int, error)

	// -------- Listing --------
	ListForUser(
		ctx context.Context,
		userID uint,
		f UserListFilter,
	) ([]models.Booking, int64, error)

	StatsForUser(
		ctx context.Context,
		userID uint,
		today time.Time,
	) (UserStats, error)

	AdminList(
		ctx context.Context,
		f AdminListFilter,
	) ([]models.Booking, int64, error)

	AdminStatsFor(
		ctx context.Context,
		today time.Time,
	) (AdminStats, error)

	ListConfirmedBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
