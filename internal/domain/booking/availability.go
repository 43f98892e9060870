package booking

import (
	"fmt"
	"time"

	"github.com/lumina-studio/gallery-api/internal/models"
)

// ===============================
// Availability Rules
// ===============================

const (
	// MinLeadDays is the minimum lead time (48 hours, counted in calendar
	// days) required both to create and to cancel a booking.
	MinLeadDays = 2

	// HorizonDays is how far ahead the booking window extends.
	HorizonDays = 90

	// MaxBookingsPerDay caps pending+confirmed bookings on one date.
	MaxBookingsPerDay = 3

	// MaxConfirmedHoursPerDay caps total confirmed session hours on one
	// date. This is an independent, stricter check than MaxBookingsPerDay;
	// both are applied.
	MaxConfirmedHoursPerDay = 8

	// Sessions run within the studio service window.
	DayOpenMinute  = 9 * 60
	DayCloseMinute = 21 * 60
)

const DateLayout = "2006-01-02"
const TimeLayout = "15:04"

// DaysUntil counts whole calendar days between two UTC-midnight dates.
func DaysUntil(today, date time.Time) int {
	return int(date.Sub(today).Hours() / 24)
}

// WindowStart is the first bookable date: today plus the minimum lead time.
func WindowStart(today time.Time) time.Time {
	return today.AddDate(0, 0, MinLeadDays)
}

// WindowEnd is the last bookable date, inclusive.
func WindowEnd(today time.Time) time.Time {
	return today.AddDate(0, 0, HorizonDays)
}

// IsDateOpen reports whether a date inside the window may still accept new
// bookings given the number of pending+confirmed bookings already on it.
// The studio never shoots on Sundays.
func IsDateOpen(date time.Time, activeCount int) bool {
	if date.Weekday() == time.Sunday {
		return false
	}
	return activeCount < MaxBookingsPerDay
}

// AvailableDates walks the rolling window and keeps the dates that are open.
// activeCounts maps DateLayout-formatted dates to their pending+confirmed
// booking count; absent dates count as zero.
func AvailableDates(today time.Time, activeCounts map[string]int) []string {
	var dates []string

	end := WindowEnd(today)
	for d := WindowStart(today); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsDateOpen(d, activeCounts[d.Format(DateLayout)]) {
			dates = append(dates, d.Format(DateLayout))
		}
	}

	return dates
}

// HasHourCapacity applies the confirmed-hours rule: the date can still take
// a session of the given duration while the running total stays below the
// daily cap.
func HasHourCapacity(confirmedHours, duration int) bool {
	return confirmedHours+duration < MaxConfirmedHoursPerDay
}

// ===============================
// Creation-time validation
// ===============================

// ValidationError carries per-field messages for form redisplay.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation_failed"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ValidateCreation applies the booking-form rules: date in the future with
// enough lead time and not a Sunday, time inside the service window, and a
// duration the selected service allows. It returns field-keyed messages,
// empty when the request is valid.
func ValidateCreation(
	today time.Time,
	date time.Time,
	startTime string,
	duration int,
	svc *models.Service,
) map[string]string {

	fields := map[string]string{}

	switch {
	case date.Before(today):
		fields["booking_date"] = "booking date is in the past"
	case DaysUntil(today, date) < MinLeadDays:
		fields["booking_date"] = "bookings require at least 48 hours notice"
	case date.Weekday() == time.Sunday:
		fields["booking_date"] = "the studio is closed on Sundays"
	case date.After(WindowEnd(today)):
		fields["booking_date"] = fmt.Sprintf("bookings open at most %d days ahead", HorizonDays)
	}

	if t, err := time.Parse(TimeLayout, startTime); err != nil {
		fields["booking_time"] = "invalid time, expected HH:MM"
	} else {
		minute := t.Hour()*60 + t.Minute()
		if minute < DayOpenMinute || minute > DayCloseMinute {
			fields["booking_time"] = "sessions run between 09:00 and 21:00"
		}
	}

	if !svc.IsActive || !svc.Bookable {
		fields["service_id"] = "this service cannot be booked online"
	} else if duration < svc.MinBookingHours {
		fields["duration"] = fmt.Sprintf("minimum booking for this service is %d hours", svc.MinBookingHours)
	} else if duration > svc.MaxBookingHours {
		fields["duration"] = fmt.Sprintf("maximum booking for this service is %d hours", svc.MaxBookingHours)
	}

	return fields
}

// EffectivePrice is the agreed price when set, otherwise service price times
// booked hours.
func EffectivePrice(priceAgreed *float64, servicePrice float64, duration int) float64 {
	if priceAgreed != nil {
		return *priceAgreed
	}
	return servicePrice * float64(duration)
}
