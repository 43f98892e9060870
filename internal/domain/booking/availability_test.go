package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-studio/gallery-api/internal/models"
)

func testService() *models.Service {
	return &models.Service{
		Name:            "Portrait session",
		Price:           50,
		ServiceType:     models.ServiceTypePhoto,
		IsActive:        true,
		Bookable:        true,
		MinBookingHours: 1,
		MaxBookingHours: 8,
	}
}

func TestWindowBounds(t *testing.T) {
	today := mustDate(t, "2025-08-08") // a Friday

	assert.Equal(t, "2025-08-10", WindowStart(today).Format(DateLayout))
	assert.Equal(t, "2025-11-06", WindowEnd(today).Format(DateLayout))
}

func TestAvailableDatesSkipsSundays(t *testing.T) {
	today := mustDate(t, "2025-08-08")

	dates := AvailableDates(today, nil)
	require.NotEmpty(t, dates)

	// The window opens on 2025-08-10, a Sunday, so the first open date is
	// the Monday after.
	assert.Equal(t, "2025-08-11", dates[0])

	for _, d := range dates {
		parsed := mustDate(t, d)
		assert.NotEqual(t, time.Sunday, parsed.Weekday(), d)
	}
}

func TestAvailableDatesRespectsLeadTimeAndHorizon(t *testing.T) {
	today := mustDate(t, "2025-08-08")

	dates := AvailableDates(today, nil)

	assert.NotContains(t, dates, "2025-08-08")
	assert.NotContains(t, dates, "2025-08-09")
	assert.Contains(t, dates, "2025-11-06")
	assert.NotContains(t, dates, "2025-11-07")
}

func TestAvailableDatesExcludesFullDays(t *testing.T) {
	today := mustDate(t, "2025-08-08")

	counts := map[string]int{
		"2025-08-11": 3,
		"2025-08-12": 2,
	}

	dates := AvailableDates(today, counts)

	assert.NotContains(t, dates, "2025-08-11")
	assert.Contains(t, dates, "2025-08-12")
}

func TestHasHourCapacity(t *testing.T) {
	// 5 hours already confirmed leaves room for at most 2 more.
	assert.True(t, HasHourCapacity(5, 1))
	assert.True(t, HasHourCapacity(5, 2))
	assert.False(t, HasHourCapacity(5, 3))

	assert.True(t, HasHourCapacity(0, 7))
	assert.False(t, HasHourCapacity(0, 8))
	assert.False(t, HasHourCapacity(7, 1))
}

func TestValidateCreation(t *testing.T) {
	today := mustDate(t, "2025-08-08")
	svc := testService()

	t.Run("valid request", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "10:00", 2, svc)
		assert.Empty(t, fields)
	})

	t.Run("date in the past", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-01"), "10:00", 2, svc)
		assert.Contains(t, fields, "booking_date")
	})

	t.Run("not enough lead time", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-09"), "10:00", 2, svc)
		assert.Equal(t, "bookings require at least 48 hours notice", fields["booking_date"])
	})

	t.Run("sunday", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-10"), "10:00", 2, svc)
		assert.Equal(t, "the studio is closed on Sundays", fields["booking_date"])
	})

	t.Run("beyond the horizon", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-11-10"), "10:00", 2, svc)
		assert.Contains(t, fields, "booking_date")
	})

	t.Run("time before opening", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "08:30", 2, svc)
		assert.Equal(t, "sessions run between 09:00 and 21:00", fields["booking_time"])
	})

	t.Run("time after closing", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "21:30", 2, svc)
		assert.Contains(t, fields, "booking_time")
	})

	t.Run("malformed time", func(t *testing.T) {
		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "morning", 2, svc)
		assert.Equal(t, "invalid time, expected HH:MM", fields["booking_time"])
	})

	t.Run("duration above the service maximum", func(t *testing.T) {
		capped := testService()
		capped.MaxBookingHours = 4

		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "10:00", 6, capped)
		assert.Equal(t, "maximum booking for this service is 4 hours", fields["duration"])
	})

	t.Run("duration below the service minimum", func(t *testing.T) {
		longform := testService()
		longform.MinBookingHours = 3

		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "10:00", 2, longform)
		assert.Equal(t, "minimum booking for this service is 3 hours", fields["duration"])
	})

	t.Run("inactive service", func(t *testing.T) {
		inactive := testService()
		inactive.IsActive = false

		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "10:00", 2, inactive)
		assert.Contains(t, fields, "service_id")
	})

	t.Run("non-bookable service", func(t *testing.T) {
		editing := testService()
		editing.Bookable = false

		fields := ValidateCreation(today, mustDate(t, "2025-08-11"), "10:00", 2, editing)
		assert.Contains(t, fields, "service_id")
	})
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 150.0, EffectivePrice(nil, 50, 3))

	agreed := 120.0
	assert.Equal(t, 120.0, EffectivePrice(&agreed, 50, 3))
}
