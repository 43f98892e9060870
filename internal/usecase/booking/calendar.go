package booking

import (
	"context"
	"time"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/dto"
	"github.com/lumina-studio/gallery-api/internal/timezone"
)

type CalendarResult struct {
	Year      int                          `json:"year"`
	Month     int                          `json:"month"`
	MonthName string                       `json:"month_name"`
	Days      map[int][]dto.AdminBookingDTO `json:"days"`

	PrevYear  int `json:"prev_year"`
	PrevMonth int `json:"prev_month"`
	NextYear  int `json:"next_year"`
	NextMonth int `json:"next_month"`

	Today string `json:"today"`
}

type AdminCalendar struct {
	repo domain.Repository
	tz   string
}

func NewAdminCalendar(repo domain.Repository, tz string) *AdminCalendar {
	return &AdminCalendar{repo: repo, tz: tz}
}

// Execute groups the month's confirmed bookings by day and computes the
// month-rollover navigation for the requested (year, month).
func (uc *AdminCalendar) Execute(
	ctx context.Context,
	year int,
	month int,
) (*CalendarResult, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListConfirmedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := make(map[int][]dto.AdminBookingDTO)
	for i := range bookings {
		day := bookings[i].BookingDate.Day()
		days[day] = append(days[day], dto.FromBookingAdmin(&bookings[i]))
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}

	return &CalendarResult{
		Year:      year,
		Month:     month,
		MonthName: start.Month().String(),
		Days:      days,
		PrevYear:  prevYear,
		PrevMonth: prevMonth,
		NextYear:  nextYear,
		NextMonth: nextMonth,
		Today:     timezone.TodayIn(uc.tz).Format(domain.DateLayout),
	}, nil
}
