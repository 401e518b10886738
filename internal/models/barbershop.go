package models

import (
	"time"

	"github.com/google/uuid"
)

type BarberShop struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`

	Street     string `gorm:"size:200" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`

	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Website string `gorm:"size:200" json:"website"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// "15:04" local opening hours, informational only: availability is
	// still computed against the fixed 09:00-17:00 UTC window.
	OpenTime    string `gorm:"size:5" json:"open_time"`
	CloseTime   string `gorm:"size:5" json:"close_time"`
	WorkingDays string `gorm:"size:100" json:"working_days"`

	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
