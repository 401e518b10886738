package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationOutbox is the durable record of an intent-to-notify.
// Rows are drained by the dispatcher worker and kept forever for audit.
type NotificationOutbox struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventType     string    `gorm:"size:50;not null;index:idx_outbox_event_appointment" json:"event_type"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_outbox_event_appointment" json:"appointment_id"`

	RecipientEmail string `gorm:"size:100;not null" json:"recipient_email"`
	RecipientName  string `gorm:"size:100" json:"recipient_name"`

	Subject  string `gorm:"size:200;not null" json:"subject"`
	Body     string `gorm:"type:text;not null" json:"-"`
	Metadata string `gorm:"type:text" json:"metadata"`

	Status     string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RetryCount int    `gorm:"not null;default:0" json:"retry_count"`
	MaxRetries int    `gorm:"not null;default:3" json:"max_retries"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	LastError   string     `gorm:"size:500" json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
