package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/events"
	"github.com/bkalafat/barberly/internal/models"
)

// Notifier reacts to booking and cancellation events by inserting outbox
// rows, one per recipient. It never sends mail itself; the dispatcher
// worker drains the rows later.
type Notifier struct {
	outbox     outbox.Repository
	dir        directory.Repository
	maxRetries int
}

func NewNotifier(
	outboxRepo outbox.Repository,
	dir directory.Repository,
	maxRetries int,
) *Notifier {
	return &Notifier{
		outbox:     outboxRepo,
		dir:        dir,
		maxRetries: maxRetries,
	}
}

func (n *Notifier) Register(d *events.Dispatcher) {
	d.Register(events.AppointmentBooked, n.HandleBooked)
	d.Register(events.AppointmentCancelled, n.HandleCancelled)
}

func (n *Notifier) HandleBooked(ctx context.Context, ev events.Event) error {
	data, err := n.load(ctx, ev)
	if err != nil {
		return err
	}

	meta := metadata(ev)
	body := RenderConfirmation(data)

	entries := []struct {
		email   string
		name    string
		subject string
	}{
		{data.User.Email, data.User.FullName, "Your Appointment Is Confirmed - Barberly"},
		{data.Barber.Email, data.Barber.FullName, "New Appointment - Barberly"},
	}

	for _, e := range entries {
		row, err := outbox.New(
			outbox.EventAppointmentBooked,
			ev.AppointmentID,
			e.email,
			e.name,
			e.subject,
			body,
			meta,
			n.maxRetries,
		)
		if err != nil {
			return err
		}
		if err := n.outbox.Create(ctx, row); err != nil {
			return err
		}
	}

	return nil
}

func (n *Notifier) HandleCancelled(ctx context.Context, ev events.Event) error {
	data, err := n.load(ctx, ev)
	if err != nil {
		return err
	}

	cancelledAt := time.Now().UTC()
	if ev.CancelledAt != nil {
		cancelledAt = *ev.CancelledAt
	}

	meta := metadata(ev)
	body := RenderCancellation(data, cancelledAt)

	entries := []struct {
		email   string
		name    string
		subject string
	}{
		{data.User.Email, data.User.FullName, "Appointment Cancelled - Barberly"},
		{data.Barber.Email, data.Barber.FullName, "Appointment Cancelled - Barberly"},
	}

	for _, e := range entries {
		row, err := outbox.New(
			outbox.EventAppointmentCancelled,
			ev.AppointmentID,
			e.email,
			e.name,
			e.subject,
			body,
			meta,
			n.maxRetries,
		)
		if err != nil {
			return err
		}
		if err := n.outbox.Create(ctx, row); err != nil {
			return err
		}
	}

	return nil
}

func (n *Notifier) load(ctx context.Context, ev events.Event) (TemplateData, error) {
	user, err := n.dir.GetUser(ctx, ev.UserID)
	if err != nil {
		return TemplateData{}, fmt.Errorf("load user %s: %w", ev.UserID, err)
	}
	barber, err := n.dir.GetBarber(ctx, ev.BarberID)
	if err != nil {
		return TemplateData{}, fmt.Errorf("load barber %s: %w", ev.BarberID, err)
	}
	svc, err := n.dir.GetService(ctx, ev.ServiceID)
	if err != nil {
		return TemplateData{}, fmt.Errorf("load service %s: %w", ev.ServiceID, err)
	}
	shop, err := n.dir.GetShop(ctx, barber.BarberShopID)
	if err != nil {
		return TemplateData{}, fmt.Errorf("load shop %s: %w", barber.BarberShopID, err)
	}

	return TemplateData{
		Appointment: &models.Appointment{
			ID:          ev.AppointmentID,
			UserID:      ev.UserID,
			BarberID:    ev.BarberID,
			ServiceID:   ev.ServiceID,
			StartTime:   ev.Start,
			EndTime:     ev.End,
			CancelledAt: ev.CancelledAt,
		},
		User:    user,
		Barber:  barber,
		Service: svc,
		Shop:    shop,
	}, nil
}

func metadata(ev events.Event) string {
	b, _ := json.Marshal(map[string]any{
		"appointment_id": ev.AppointmentID,
		"start":          ev.Start,
		"end":            ev.End,
	})
	return string(b)
}
