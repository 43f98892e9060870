package models

import "time"

const (
	ServiceTypePhoto   = "PHOTO"
	ServiceTypeVideo   = "VIDEO"
	ServiceTypeEditing = "EDITING"
	ServiceTypeOther   = "OTHER"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `gorm:"size:100" json:"duration"`

	ServiceType string `gorm:"size:20;not null" json:"service_type"`

	IsActive     bool `gorm:"default:true" json:"is_active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	Bookable        bool `gorm:"default:true" json:"bookable"`
	MinBookingHours int  `gorm:"default:1" json:"min_booking_hours"`
	MaxBookingHours int  `gorm:"default:8" json:"max_booking_hours"`
	PrepTimeHours   int  `gorm:"default:0" json:"prep_time_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
