package outbox

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/models"
)

var ErrNotFound = errors.New("outbox entry not found")

// ===============================
// Construction
// ===============================

func New(
	eventType string,
	appointmentID uuid.UUID,
	recipientEmail string,
	recipientName string,
	subject string,
	body string,
	metadata string,
	maxRetries int,
) (*models.NotificationOutbox, error) {

	if eventType == "" || recipientEmail == "" || subject == "" || body == "" {
		return nil, httperr.ErrBusiness("invalid_notification")
	}
	if maxRetries < 0 {
		return nil, httperr.ErrBusiness("invalid_notification")
	}
	if metadata == "" {
		metadata = "{}"
	}

	return &models.NotificationOutbox{
		ID:             uuid.New(),
		EventType:      eventType,
		AppointmentID:  appointmentID,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		Body:           body,
		Metadata:       metadata,
		Status:         string(StatusPending),
		RetryCount:     0,
		MaxRetries:     maxRetries,
	}, nil
}

// ===============================
// State machine
// ===============================
//
// pending -> processing -> sent            (terminal)
// processing -> pending                    (retry, via MarkAsFailed)
// pending/processing -> failed             (terminal, retries exhausted)

// MarkAsProcessing is legal from pending, or from failed when an entry
// is being retried manually.
func MarkAsProcessing(n *models.NotificationOutbox) error {
	if n.Status != string(StatusPending) && n.Status != string(StatusFailed) {
		return httperr.ErrBusiness("invalid_state")
	}
	n.Status = string(StatusProcessing)
	return nil
}

func MarkAsSent(n *models.NotificationOutbox, now time.Time) error {
	if n.Status != string(StatusProcessing) {
		return httperr.ErrBusiness("invalid_state")
	}
	n.Status = string(StatusSent)
	t := now.UTC()
	n.ProcessedAt = &t
	n.LastError = ""
	return nil
}

// MarkAsFailed records the attempt. The entry reverts to pending until
// retries are exhausted, then lands in the terminal failed status. The
// next dispatcher pass is the only retry backoff.
func MarkAsFailed(n *models.NotificationOutbox, reason string, now time.Time) {
	if reason == "" {
		reason = "unknown error"
	}

	n.RetryCount++
	n.LastError = reason

	if n.RetryCount >= n.MaxRetries {
		n.Status = string(StatusFailed)
		t := now.UTC()
		n.ProcessedAt = &t
		return
	}

	n.Status = string(StatusPending)
}

func CanRetry(n *models.NotificationOutbox) bool {
	return n.Status == string(StatusPending) && n.RetryCount < n.MaxRetries
}
