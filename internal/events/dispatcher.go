package events

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	AppointmentBooked    Type = "AppointmentBooked"
	AppointmentCancelled Type = "AppointmentCancelled"
)

// Event is the flat payload passed between booking logic and the
// notification handlers. Decoupled by the Type tag, not inheritance.
type Event struct {
	Type          Type
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	BarberID      uuid.UUID
	ServiceID     uuid.UUID
	Start         time.Time
	End           time.Time
	CancelledAt   *time.Time
}

type Handler func(ctx context.Context, ev Event) error

// Dispatcher fans events out synchronously to the handlers registered
// for their type. Handler errors are logged and swallowed: notification
// creation is a best-effort side channel and must never fail a booking.
type Dispatcher struct {
	handlers map[Type][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Type][]Handler),
	}
}

func (d *Dispatcher) Register(t Type, h Handler) {
	d.handlers[t] = append(d.handlers[t], h)
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	for _, h := range d.handlers[ev.Type] {
		if err := h(ctx, ev); err != nil {
			log.Printf("events: %s handler failed for appointment %s: %v", ev.Type, ev.AppointmentID, err)
		}
	}
}
