package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/cache"
	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/models"
)

type Reschedule struct {
	appts domain.Repository
	cache *cache.SlotCache

	now func() time.Time
}

func NewReschedule(
	appts domain.Repository,
	slotCache *cache.SlotCache,
) *Reschedule {
	return &Reschedule{
		appts: appts,
		cache: slotCache,
		now:   time.Now,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	id uuid.UUID,
	newStart time.Time,
	newEnd time.Time,
) (*models.Appointment, error) {

	ap, err := uc.appts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	oldStart := ap.StartTime

	if err := domain.Reschedule(ap, newStart, newEnd, uc.now()); err != nil {
		return nil, err
	}

	// Conflict check against the new window, excluding this appointment.
	overlapping, err := uc.appts.ListByBarberAndRange(ctx, ap.BarberID, ap.StartTime, ap.EndTime)
	if err != nil {
		return nil, err
	}
	for _, other := range overlapping {
		if other.ID != ap.ID {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	if err := uc.appts.UpdateWithConflictCheck(ctx, ap); err != nil {
		return nil, err
	}

	// Both the old and the new slot keys change availability. Two
	// distinct date keys when the appointment moved across days.
	uc.cache.Invalidate(ctx,
		cache.SlotKey(ap.BarberID, oldStart, ap.ServiceID),
		cache.SlotKey(ap.BarberID, oldStart, uuid.Nil),
		cache.SlotKey(ap.BarberID, ap.StartTime, ap.ServiceID),
		cache.SlotKey(ap.BarberID, ap.StartTime, uuid.Nil),
	)

	return ap, nil
}
