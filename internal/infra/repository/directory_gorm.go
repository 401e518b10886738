package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkalafat/barberly/internal/domain/directory"
	"github.com/bkalafat/barberly/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

func first[T any](db *gorm.DB, ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *DirectoryGormRepository) GetShop(
	ctx context.Context,
	id uuid.UUID,
) (*models.BarberShop, error) {
	return first[models.BarberShop](r.db, ctx, id)
}

func (r *DirectoryGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {
	return first[models.Barber](r.db, ctx, id)
}

func (r *DirectoryGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {
	return first[models.Service](r.db, ctx, id)
}

func (r *DirectoryGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return first[models.User](r.db, ctx, id)
}

// Compile-time check
var _ directory.Repository = (*DirectoryGormRepository)(nil)
