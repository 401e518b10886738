package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BarberID  uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_barber_window" json:"barber_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`

	StartTime time.Time `gorm:"not null;index:idx_appointments_barber_window" json:"start"`
	EndTime   time.Time `gorm:"not null" json:"end"`

	// Globally unique when present; repeated requests carrying the same
	// key resolve to the first appointment created with it.
	IdempotencyKey *string `gorm:"size:100;uniqueIndex" json:"idempotency_key,omitempty"`

	IsCancelled bool       `gorm:"not null;default:false" json:"is_cancelled"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Opaque concurrency token, regenerated on every mutation.
	RowVersion uuid.UUID `gorm:"type:uuid;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
