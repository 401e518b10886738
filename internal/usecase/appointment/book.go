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

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	IdempotencyKey string

	UserID    uuid.UUID
	BarberID  uuid.UUID
	ServiceID uuid.UUID

	Start time.Time
	End   time.Time
}

type BookResult struct {
	ID       uuid.UUID
	Replayed bool
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	appts  domain.Repository
	cache  *cache.SlotCache
	events *events.Dispatcher

	now func() time.Time
}

func NewBook(
	appts domain.Repository,
	slotCache *cache.SlotCache,
	dispatcher *events.Dispatcher,
) *Book {
	return &Book{
		appts:  appts,
		cache:  slotCache,
		events: dispatcher,
		now:    time.Now,
	}
}

// Execute books the appointment. A replayed idempotency key returns the
// original appointment id without touching storage, notifications or the
// cache — at most one logical booking per key, however often the client
// retries.
func (uc *Book) Execute(ctx context.Context, in BookInput) (BookResult, error) {

	// --------------------------------------------------
	// 1. Idempotency short-circuit
	// --------------------------------------------------
	if in.IdempotencyKey != "" {
		existing, err := uc.appts.GetByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil {
			return BookResult{ID: existing.ID, Replayed: true}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return BookResult{}, err
		}
	}

	// --------------------------------------------------
	// 2. Construct (single validation point)
	// --------------------------------------------------
	ap, err := domain.New(
		in.UserID,
		in.BarberID,
		in.ServiceID,
		in.Start,
		in.End,
		in.IdempotencyKey,
		uc.now(),
	)
	if err != nil {
		return BookResult{}, err
	}

	// --------------------------------------------------
	// 3. Conflict pre-check
	// --------------------------------------------------
	overlapping, err := uc.appts.ListByBarberAndRange(ctx, in.BarberID, ap.StartTime, ap.EndTime)
	if err != nil {
		return BookResult{}, err
	}
	if len(overlapping) > 0 {
		return BookResult{}, httperr.ErrBusiness("time_conflict")
	}

	// --------------------------------------------------
	// 4. Persist (locked re-check closes the race window)
	// --------------------------------------------------
	if err := uc.appts.CreateWithConflictCheck(ctx, ap); err != nil {
		return BookResult{}, err
	}

	// --------------------------------------------------
	// 5. Booked event -> outbox rows (best effort)
	// --------------------------------------------------
	uc.events.Dispatch(ctx, events.Event{
		Type:          events.AppointmentBooked,
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		BarberID:      ap.BarberID,
		ServiceID:     ap.ServiceID,
		Start:         ap.StartTime,
		End:           ap.EndTime,
	})

	// --------------------------------------------------
	// 6. Cache invalidation
	// --------------------------------------------------
	uc.cache.Invalidate(ctx,
		cache.SlotKey(ap.BarberID, ap.StartTime, ap.ServiceID),
		cache.SlotKey(ap.BarberID, ap.StartTime, uuid.Nil),
	)

	return BookResult{ID: ap.ID}, nil
}
