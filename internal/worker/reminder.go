package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bkalafat/barberly/internal/config"
	appointment "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/models"
	"github.com/bkalafat/barberly/internal/notification"
)

// ReminderScanner enqueues one reminder outbox entry per appointment
// entering the lookahead window. Dedup goes through the indexed
// (event_type, appointment_id) lookup, so a rescan never enqueues twice.
type ReminderScanner struct {
	appts  appointment.Repository
	outbox outbox.Repository
	dir    directory.Repository

	reminderHours int
	maxRetries    int

	now func() time.Time
}

func NewReminderScanner(
	appts appointment.Repository,
	outboxRepo outbox.Repository,
	dir directory.Repository,
	cfg config.Notification,
) *ReminderScanner {
	return &ReminderScanner{
		appts:         appts,
		outbox:        outboxRepo,
		dir:           dir,
		reminderHours: cfg.ReminderHours,
		maxRetries:    cfg.MaxRetries,
		now:           time.Now,
	}
}

// Start schedules the hourly scan and returns the cron so the caller can
// stop it on shutdown.
func (s *ReminderScanner) Start(ctx context.Context) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() { s.Scan(ctx) }); err != nil {
		log.Fatalf("reminder: failed to schedule scan: %v", err)
	}
	c.Start()
	log.Printf("reminder: scanner started (lookahead=%dh)", s.reminderHours)
	return c
}

func (s *ReminderScanner) Scan(ctx context.Context) {
	now := s.now().UTC()
	windowStart := now.Add(time.Duration(s.reminderHours) * time.Hour)
	windowEnd := windowStart.Add(time.Hour)

	appts, err := s.appts.ListStartingBetween(ctx, windowStart, windowEnd)
	if err != nil {
		log.Printf("reminder: listing appointments failed: %v", err)
		return
	}
	if len(appts) == 0 {
		return
	}

	for i := range appts {
		if ctx.Err() != nil {
			return
		}
		if err := s.enqueue(ctx, &appts[i]); err != nil {
			log.Printf("reminder: appointment %s: %v", appts[i].ID, err)
		}
	}
}

func (s *ReminderScanner) enqueue(ctx context.Context, ap *models.Appointment) error {
	exists, err := s.outbox.HasEventFor(ctx, outbox.EventAppointmentReminder, ap.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	user, err := s.dir.GetUser(ctx, ap.UserID)
	if err != nil {
		return err
	}
	barber, err := s.dir.GetBarber(ctx, ap.BarberID)
	if err != nil {
		return err
	}
	svc, err := s.dir.GetService(ctx, ap.ServiceID)
	if err != nil {
		return err
	}
	shop, err := s.dir.GetShop(ctx, barber.BarberShopID)
	if err != nil {
		return err
	}

	body := notification.RenderReminder(notification.TemplateData{
		Appointment: ap,
		User:        user,
		Barber:      barber,
		Service:     svc,
		Shop:        shop,
	})

	meta, _ := json.Marshal(map[string]any{
		"appointment_id": ap.ID,
		"start":          ap.StartTime,
		"end":            ap.EndTime,
	})

	row, err := outbox.New(
		outbox.EventAppointmentReminder,
		ap.ID,
		user.Email,
		user.FullName,
		"Appointment Reminder - Barberly",
		body,
		string(meta),
		s.maxRetries,
	)
	if err != nil {
		return err
	}

	if err := s.outbox.Create(ctx, row); err != nil {
		return err
	}

	log.Printf("reminder: enqueued reminder for appointment %s", ap.ID)
	return nil
}
