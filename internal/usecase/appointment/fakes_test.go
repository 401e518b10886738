package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/cache"
	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/models"
)

// in-memory appointment repository used across the use case tests
type fakeApptRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*models.Appointment

	failList bool
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: map[uuid.UUID]*models.Appointment{}}
}

func (r *fakeApptRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeApptRepo) GetByIdempotencyKey(_ context.Context, key string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appts {
		if ap.IdempotencyKey != nil && *ap.IdempotencyKey == key {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeApptRepo) overlapping(barberID uuid.UUID, start, end time.Time, exclude uuid.UUID) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appts {
		if ap.BarberID != barberID || ap.IsCancelled || ap.ID == exclude {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	return out
}

func (r *fakeApptRepo) ListByBarberAndRange(_ context.Context, barberID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errors.New("db unavailable")
	}
	return r.overlapping(barberID, start, end, uuid.Nil), nil
}

func (r *fakeApptRepo) ListStartingBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeApptRepo) CreateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.overlapping(ap.BarberID, ap.StartTime, ap.EndTime, uuid.Nil)) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeApptRepo) UpdateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.overlapping(ap.BarberID, ap.StartTime, ap.EndTime, ap.ID)) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeApptRepo) Update(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeApptRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appts)
}

var _ domain.Repository = (*fakeApptRepo)(nil)

// recording cache store; set fail to simulate a dead backend
type fakeStore struct {
	mu      sync.Mutex
	data    map[string]string
	deleted []string
	fail    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("connection refused")
	}
	val, ok := s.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return val, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("connection refused")
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	if s.fail {
		return errors.New("connection refused")
	}
	delete(s.data, key)
	return nil
}

var _ cache.Store = (*fakeStore)(nil)

// map-backed directory lookups
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
