package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (lookup)
// --------------------------------------------------

func (r *BookingGormRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("public_id = ?", publicID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetForUser(
	ctx context.Context,
	publicID string,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (mutation)
// --------------------------------------------------

// CreateWithCapacityCheck serializes booking creation per date: the date's
// rows are locked, both capacity rules re-checked, and the insert performed
// inside one transaction. FOR UPDATE only exists on postgres; sqlite locks
// the whole database on write, which covers the same race in tests.
func (r *BookingGormRepository) CreateWithCapacityCheck(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.Model(&models.Booking{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var active []models.Booking
		if err := q.
			Select("status", "duration").
			Where(
				"booking_date = ? AND status IN ?",
				b.BookingDate,
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			).
			Find(&active).Error; err != nil {
			return err
		}

		if len(active) >= domain.MaxBookingsPerDay {
			return httperr.ErrBusiness("date_fully_booked")
		}

		confirmedHours := 0
		for _, a := range active {
			if a.Status == string(domain.StatusConfirmed) {
				confirmedHours += a.Duration
			}
		}
		if !domain.HasHourCapacity(confirmedHours, b.Duration) {
			return httperr.ErrBusiness("no_hour_capacity")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ActiveCountsByDate(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (map[string]int, error) {

	var rows []struct {
		BookingDate time.Time
		Cnt         int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("booking_date, COUNT(*) AS cnt").
		Where(
			"booking_date >= ? AND booking_date <= ? AND status IN ?",
			start, end,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Group("booking_date").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.BookingDate.Format(domain.DateLayout)] = row.Cnt
	}
	return counts, nil
}

func (r *BookingGormRepository) ConfirmedHoursForDate(
	ctx context.Context,
	date time.Time,
) (int, error) {

	var hours int
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(duration), 0)").
		Where("booking_date = ? AND status = ?", date, string(domain.StatusConfirmed)).
		Scan(&hours).Error; err != nil {
		return 0, err
	}
	return hours, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	f domain.UserListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Preload("Service").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingGormRepository) StatsForUser(
	ctx context.Context,
	userID uint,
	today time.Time,
) (domain.UserStats, error) {

	var stats domain.UserStats

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", string(domain.StatusPending)).
		Count(&stats.Pending).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", string(domain.StatusConfirmed)).
		Count(&stats.Confirmed).Error; err != nil {
		return stats, err
	}
	if err := base().
		Where("status = ? AND booking_date >= ?", string(domain.StatusConfirmed), today).
		Count(&stats.Upcoming).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *BookingGormRepository) AdminList(
	ctx context.Context,
	f domain.AdminListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN services ON services.id = bookings.service_id")

	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}

	if f.Date != nil {
		q = q.Where("bookings.booking_date = ?", *f.Date)
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"bookings.client_name LIKE ? OR bookings.client_phone LIKE ? OR bookings.client_email LIKE ? OR services.name LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Preload("Service").
		Order("bookings.created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingGormRepository) AdminStatsFor(
	ctx context.Context,
	today time.Time,
) (domain.AdminStats, error) {

	var stats domain.AdminStats

	model := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Booking{})
	}

	if err := model().Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := model().Where("status = ?", string(domain.StatusPending)).
		Count(&stats.Pending).Error; err != nil {
		return stats, err
	}
	if err := model().
		Where("booking_date = ? AND status = ?", today, string(domain.StatusConfirmed)).
		Count(&stats.Today).Error; err != nil {
		return stats, err
	}
	if err := model().
		Where("booking_date >= ? AND status = ?", today, string(domain.StatusConfirmed)).
		Count(&stats.Upcoming).Error; err != nil {
		return stats, err
	}

	// Revenue over confirmed+completed bookings at their effective price.
	if err := model().
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.status IN ?", []string{
			string(domain.StatusConfirmed),
			string(domain.StatusCompleted),
		}).
		Select("COALESCE(SUM(COALESCE(bookings.price_agreed, services.price * bookings.duration)), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *BookingGormRepository) ListConfirmedBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"booking_date >= ? AND booking_date < ? AND status = ?",
			start, end, string(domain.StatusConfirmed),
		).
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
