package models

import (
	"time"

	"github.com/google/uuid"
)

type Barber struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberShopID uuid.UUID  `gorm:"type:uuid;not null;index" json:"barber_shop_id"`
	BarberShop   BarberShop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100;not null" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`

	Bio             string `gorm:"size:1000" json:"bio"`
	ProfileImageURL string `gorm:"size:500" json:"profile_image_url"`

	IsActive          bool    `gorm:"not null;default:true" json:"is_active"`
	YearsOfExperience int     `json:"years_of_experience"`
	AverageRating     float64 `json:"average_rating"`
	TotalReviews      int     `json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
