package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bkalafat/barberly/internal/models"
)

var ErrNotFound = errors.New("directory record not found")

// Repository covers the lookups the scheduling core needs from the
// directory side of the system (shops, barbers, services, users).
type Repository interface {
	GetShop(ctx context.Context, id uuid.UUID) (*models.BarberShop, error)
	GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}
