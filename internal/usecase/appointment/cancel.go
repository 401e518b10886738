package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/cache"
	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/events"
	"github.com/bkalafat/barberly/internal/httperr"
)

type Cancel struct {
	appts  domain.Repository
	cache  *cache.SlotCache
	events *events.Dispatcher

	now func() time.Time
}

func NewCancel(
	appts domain.Repository,
	slotCache *cache.SlotCache,
	dispatcher *events.Dispatcher,
) *Cancel {
	return &Cancel{
		appts:  appts,
		cache:  slotCache,
		events: dispatcher,
		now:    time.Now,
	}
}

func (uc *Cancel) Execute(ctx context.Context, id uuid.UUID) error {

	ap, err := uc.appts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return err
	}

	if err := uc.appts.Update(ctx, ap); err != nil {
		return err
	}

	uc.events.Dispatch(ctx, events.Event{
		Type:          events.AppointmentCancelled,
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		BarberID:      ap.BarberID,
		ServiceID:     ap.ServiceID,
		Start:         ap.StartTime,
		End:           ap.EndTime,
		CancelledAt:   ap.CancelledAt,
	})

	uc.cache.Invalidate(ctx,
		cache.SlotKey(ap.BarberID, ap.StartTime, ap.ServiceID),
		cache.SlotKey(ap.BarberID, ap.StartTime, uuid.Nil),
	)

	return nil
}
