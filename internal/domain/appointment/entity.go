package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/models"
)

// ErrNotFound is returned by repositories when no appointment matches.
var ErrNotFound = errors.New("appointment not found")

// ===============================
// Construction
// ===============================

// New validates every field and returns a fresh appointment. This is the
// single validation point: callers never re-check these rules.
func New(
	userID uuid.UUID,
	barberID uuid.UUID,
	serviceID uuid.UUID,
	start time.Time,
	end time.Time,
	idempotencyKey string,
	now time.Time,
) (*models.Appointment, error) {

	if userID == uuid.Nil || barberID == uuid.Nil || serviceID == uuid.Nil {
		return nil, httperr.ErrBusiness("missing_reference")
	}
	if !start.Before(end) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}
	if !start.After(now) {
		return nil, httperr.ErrBusiness("start_in_past")
	}

	ap := &models.Appointment{
		ID:         uuid.New(),
		UserID:     userID,
		BarberID:   barberID,
		ServiceID:  serviceID,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
		RowVersion: uuid.New(),
	}
	if idempotencyKey != "" {
		ap.IdempotencyKey = &idempotencyKey
	}

	return ap, nil
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if ap.IsCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	if !ap.StartTime.After(now) {
		return httperr.ErrBusiness("already_started")
	}

	ap.IsCancelled = true
	t := now.UTC()
	ap.CancelledAt = &t
	ap.RowVersion = uuid.New()
	return nil
}

func Reschedule(ap *models.Appointment, newStart, newEnd, now time.Time) error {
	if ap.IsCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	if !newStart.Before(newEnd) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	if !newStart.After(now) {
		return httperr.ErrBusiness("start_in_past")
	}

	ap.StartTime = newStart.UTC()
	ap.EndTime = newEnd.UTC()
	ap.RowVersion = uuid.New()
	return nil
}
