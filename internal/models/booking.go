package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// PublicID is the identifier exposed in routes and payloads. It is a
	// random UUID so bookings cannot be enumerated.
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"id"`

	UserID *uint `json:"-"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	AdminUserID *uint `json:"admin_user_id"`
	AdminUser   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BookingDate time.Time `gorm:"type:date" json:"booking_date"`
	BookingTime string    `gorm:"size:5" json:"booking_time"`
	Duration    int       `json:"duration"`
	Location    string    `gorm:"size:255" json:"location"`

	// Client contact details are captured on the booking itself so the
	// record stays meaningful even if the user account changes later.
	ClientName  string `gorm:"size:150;not null" json:"client_name"`
	ClientPhone string `gorm:"size:30" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	Message     string `gorm:"type:text" json:"message"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	AdminNotes  string   `gorm:"type:text" json:"-"`
	PriceAgreed *float64 `json:"price_agreed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == "" {
		b.PublicID = uuid.NewString()
	}
	return nil
}

// TotalPrice is the agreed price when staff set one, otherwise the service
// price multiplied by the booked hours. Requires Service to be loaded.
func (b *Booking) TotalPrice() float64 {
	if b.PriceAgreed != nil {
		return *b.PriceAgreed
	}
	return b.Service.Price * float64(b.Duration)
}
