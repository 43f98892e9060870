package models

import "time"

type Photo struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	ObjectKey string `gorm:"size:255;not null" json:"-"`
	ThumbKey  string `gorm:"size:255" json:"-"`

	ContentType string `gorm:"size:100" json:"content_type"`

	IsActive     bool `gorm:"default:true" json:"is_active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
