package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.NotificationOutbox) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationOutbox, error)

	// GetPending returns up to limit pending entries in creation order.
	GetPending(ctx context.Context, limit int) ([]models.NotificationOutbox, error)

	Update(ctx context.Context, n *models.NotificationOutbox) error

	CountPending(ctx context.Context) (int64, error)

	ListFailed(ctx context.Context, limit int) ([]models.NotificationOutbox, error)

	// HasEventFor reports whether any entry (in any status) exists for
	// the given event type and appointment. Backed by the indexed
	// (event_type, appointment_id) pair, not a metadata scan.
	HasEventFor(ctx context.Context, eventType string, appointmentID uuid.UUID) (bool, error)

	// RequeueStale resets processing entries untouched since the cutoff
	// back to pending, recovering rows stranded by a dispatcher crash.
	RequeueStale(ctx context.Context, olderThan time.Time) (int64, error)
}
