package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberShopID uuid.UUID  `gorm:"type:uuid;not null;index" json:"barber_shop_id"`
	BarberShop   BarberShop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`

	Price             float64 `gorm:"not null" json:"price"`
	DurationInMinutes int     `gorm:"not null" json:"duration_in_minutes"`

	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	ImageURL string `gorm:"size:500" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
