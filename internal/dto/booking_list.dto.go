package dto

import (
	"time"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/models"
)

type BookingDTO struct {
	ID          string    `json:"id"`
	ServiceID   uint      `json:"service_id"`
	ServiceName string    `json:"service_name"`
	BookingDate string    `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Duration    int       `json:"duration"`
	Location    string    `json:"location"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminBookingDTO struct {
	BookingDTO
	AdminNotes  string   `json:"admin_notes"`
	PriceAgreed *float64 `json:"price_agreed"`
	AdminUserID *uint    `json:"admin_user_id"`
}

func FromBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.PublicID,
		ServiceID:   b.ServiceID,
		ServiceName: b.Service.Name,
		BookingDate: b.BookingDate.Format(domain.DateLayout),
		BookingTime: b.BookingTime,
		Duration:    b.Duration,
		Location:    b.Location,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		ClientEmail: b.ClientEmail,
		Message:     b.Message,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice(),
		CreatedAt:   b.CreatedAt,
	}
}

func FromBookingAdmin(b *models.Booking) AdminBookingDTO {
	return AdminBookingDTO{
		BookingDTO:  FromBooking(b),
		AdminNotes:  b.AdminNotes,
		PriceAgreed: b.PriceAgreed,
		AdminUserID: b.AdminUserID,
	}
}
