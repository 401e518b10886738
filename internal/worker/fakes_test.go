package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	appointment "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/models"
	"github.com/bkalafat/barberly/internal/notification"
)

// slice-backed outbox repository; insertion order stands in for
// created_at ordering
type fakeOutboxRepo struct {
	mu      sync.Mutex
	entries []*models.NotificationOutbox

	failUpdateFor map[uuid.UUID]bool
	failPending   bool
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{failUpdateFor: map[uuid.UUID]bool{}}
}

func (r *fakeOutboxRepo) Create(_ context.Context, n *models.NotificationOutbox) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeOutboxRepo) GetByID(_ context.Context, id uuid.UUID) (*models.NotificationOutbox, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, outbox.ErrNotFound
}

func (r *fakeOutboxRepo) GetPending(_ context.Context, limit int) ([]models.NotificationOutbox, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failPending {
		return nil, errors.New("db unavailable")
	}
	var out []models.NotificationOutbox
	for _, e := range r.entries {
		if e.Status == string(outbox.StatusPending) {
			out = append(out, *e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) Update(_ context.Context, n *models.NotificationOutbox) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateFor[n.ID] {
		return errors.New("db unavailable")
	}
	for i, e := range r.entries {
		if e.ID == n.ID {
			cp := *n
			r.entries[i] = &cp
			return nil
		}
	}
	return outbox.ErrNotFound
}

func (r *fakeOutboxRepo) CountPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.Status == string(outbox.StatusPending) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOutboxRepo) ListFailed(_ context.Context, limit int) ([]models.NotificationOutbox, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NotificationOutbox
	for _, e := range r.entries {
		if e.Status == string(outbox.StatusFailed) {
			out = append(out, *e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) HasEventFor(_ context.Context, eventType string, appointmentID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.EventType == eventType && e.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOutboxRepo) RequeueStale(_ context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.Status == string(outbox.StatusProcessing) && e.UpdatedAt.Before(olderThan) {
			e.Status = string(outbox.StatusPending)
			n++
		}
	}
	return n, nil
}

func (r *fakeOutboxRepo) get(id uuid.UUID) *models.NotificationOutbox {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp
		}
	}
	return nil
}

var _ outbox.Repository = (*fakeOutboxRepo)(nil)

// sender with a scripted outcome per recipient; default is success
type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: map[string]bool{}}
}

func (s *fakeSender) SendEmail(to, _, _ string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[to] {
		return false
	}
	s.sent = append(s.sent, to)
	return true
}

var _ notification.Sender = (*fakeSender)(nil)

type fakeApptRepo struct {
	appts map[uuid.UUID]*models.Appointment
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: map[uuid.UUID]*models.Appointment{}}
}

func (r *fakeApptRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	if ap, ok := r.appts[id]; ok {
		return ap, nil
	}
	return nil, appointment.ErrNotFound
}

func (r *fakeApptRepo) GetByIdempotencyKey(context.Context, string) (*models.Appointment, error) {
	return nil, appointment.ErrNotFound
}

func (r *fakeApptRepo) CreateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	r.appts[ap.ID] = ap
	return nil
}

func (r *fakeApptRepo) UpdateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	r.appts[ap.ID] = ap
	return nil
}

func (r *fakeApptRepo) Update(_ context.Context, ap *models.Appointment) error {
	r.appts[ap.ID] = ap
	return nil
}

func (r *fakeApptRepo) ListByBarberAndRange(context.Context, uuid.UUID, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListStartingBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appts {
		if ap.IsCancelled {
			continue
		}
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ appointment.Repository = (*fakeApptRepo)(nil)

type fakeDirectory struct {
	barbers  map[uuid.UUID]*models.Barber
	services map[uuid.UUID]*models.Service
	shops    map[uuid.UUID]*models.BarberShop
	users    map[uuid.UUID]*models.User
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		barbers:  map[uuid.UUID]*models.Barber{},
		services: map[uuid.UUID]*models.Service{},
		shops:    map[uuid.UUID]*models.BarberShop{},
		users:    map[uuid.UUID]*models.User{},
	}
}

func (d *fakeDirectory) GetShop(_ context.Context, id uuid.UUID) (*models.BarberShop, error) {
	if s, ok := d.shops[id]; ok {
		return s, nil
	}
	return nil, directory.ErrNotFound
}

func (d *fakeDirectory) GetBarber(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	if b, ok := d.barbers[id]; ok {
		return b, nil
	}
	return nil, directory.ErrNotFound
}

func (d *fakeDirectory) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	if s, ok := d.services[id]; ok {
		return s, nil
	}
	return nil, directory.ErrNotFound
}

func (d *fakeDirectory) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, directory.ErrNotFound
}

var _ directory.Repository = (*fakeDirectory)(nil)
