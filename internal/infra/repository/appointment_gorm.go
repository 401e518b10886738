package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bkalafat/barberly/internal/domain/appointment"
	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetByIdempotencyKey(
	ctx context.Context,
	key string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByBarberAndRange(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND is_cancelled = false AND start_time < ? AND end_time > ?",
			barberID, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListStartingBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"is_cancelled = false AND start_time >= ? AND start_time < ?",
			from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// lockOverlapping selects the overlapping non-cancelled rows FOR UPDATE,
// serializing concurrent bookings that touch the same window. The final
// conflict authority is this re-check inside the insert transaction, not
// the application-level pre-check.
func lockOverlapping(
	tx *gorm.DB,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
	exclude uuid.UUID,
) (int, error) {

	q := tx.Model(&models.Appointment{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND is_cancelled = false AND start_time < ? AND end_time > ?",
			barberID, end, start,
		)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var ids []uuid.UUID
	if err := q.Find(&ids).Error; err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *AppointmentGormRepository) CreateWithConflictCheck(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := lockOverlapping(tx, ap.BarberID, ap.StartTime, ap.EndTime, uuid.Nil)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateWithConflictCheck(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := lockOverlapping(tx, ap.BarberID, ap.StartTime, ap.EndTime, ap.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}
		return tx.Save(ap).Error
	})
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
