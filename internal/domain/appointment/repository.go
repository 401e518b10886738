package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/models"
)

type Repository interface {
	GetByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	GetByIdempotencyKey(
		ctx context.Context,
		key string,
	) (*models.Appointment, error)

	// CreateWithConflictCheck inserts the appointment inside one
	// transaction that first counts overlapping non-cancelled rows for
	// the barber under a row lock. Returns the "time_conflict" business
	// error when the window is taken.
	CreateWithConflictCheck(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateWithConflictCheck persists a rescheduled appointment with the
	// same locked overlap check, excluding the appointment itself.
	UpdateWithConflictCheck(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListByBarberAndRange returns non-cancelled appointments for the
	// barber overlapping [start, end): existing.start < end AND
	// existing.end > start.
	ListByBarberAndRange(
		ctx context.Context,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListStartingBetween returns non-cancelled appointments with
	// start in [from, to), used by the reminder scanner.
	ListStartingBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
