package appointment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/cache"
	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/httperr"
)

const (
	// The day window is a fixed 09:00-17:00 UTC band. Shop OpenTime and
	// CloseTime are not consulted yet; a known simplification carried
	// over from the original system.
	dayOpenHour  = 9
	dayCloseHour = 17

	defaultSlotMinutes = 30
)

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Availability struct {
	appts domain.Repository
	dir   directory.Repository
	cache *cache.SlotCache

	now func() time.Time
}

func NewAvailability(
	appts domain.Repository,
	dir directory.Repository,
	slotCache *cache.SlotCache,
) *Availability {
	return &Availability{
		appts: appts,
		dir:   dir,
		cache: slotCache,
		now:   time.Now,
	}
}

// Execute returns the free slots for a barber on the given calendar day.
// serviceID is optional; without it the default 30-minute step is used.
func (uc *Availability) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	date time.Time,
	serviceID uuid.UUID,
) ([]Slot, error) {

	if _, err := uc.dir.GetBarber(ctx, barberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	duration := defaultSlotMinutes
	if serviceID != uuid.Nil {
		if svc, err := uc.dir.GetService(ctx, serviceID); err == nil {
			duration = svc.DurationInMinutes
		}
	}

	key := cache.SlotKey(barberID, date, serviceID)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var slots []Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return slots, nil
		}
	}

	slots, err := uc.compute(ctx, barberID, date, duration)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(slots); err == nil {
		uc.cache.Set(ctx, key, string(payload))
	}

	return slots, nil
}

func (uc *Availability) compute(
	ctx context.Context,
	barberID uuid.UUID,
	date time.Time,
	durationMinutes int,
) ([]Slot, error) {

	day := date.UTC()
	open := time.Date(day.Year(), day.Month(), day.Day(), dayOpenHour, 0, 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(), dayCloseHour, 0, 0, 0, time.UTC)

	step := time.Duration(durationMinutes) * time.Minute

	slots := []Slot{}
	for cur := open; !cur.Add(step).After(close); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(step)

		conflicts, err := uc.appts.ListByBarberAndRange(ctx, barberID, slotStart, slotEnd)
		if err != nil {
			return nil, err
		}

		if len(conflicts) == 0 {
			slots = append(slots, Slot{Start: slotStart, End: slotEnd})
		}
	}

	return slots, nil
}
