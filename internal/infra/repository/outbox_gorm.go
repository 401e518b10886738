package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/models"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Create(
	ctx context.Context,
	n *models.NotificationOutbox,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *OutboxGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.NotificationOutbox, error) {

	var n models.NotificationOutbox
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbox.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *OutboxGormRepository) GetPending(
	ctx context.Context,
	limit int,
) ([]models.NotificationOutbox, error) {

	var entries []models.NotificationOutbox
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(outbox.StatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *OutboxGormRepository) Update(
	ctx context.Context,
	n *models.NotificationOutbox,
) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *OutboxGormRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationOutbox{}).
		Where("status = ?", string(outbox.StatusPending)).
		Count(&count).Error
	return count, err
}

func (r *OutboxGormRepository) ListFailed(
	ctx context.Context,
	limit int,
) ([]models.NotificationOutbox, error) {

	var entries []models.NotificationOutbox
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(outbox.StatusFailed)).
		Order("updated_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *OutboxGormRepository) HasEventFor(
	ctx context.Context,
	eventType string,
	appointmentID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationOutbox{}).
		Where("event_type = ? AND appointment_id = ?", eventType, appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OutboxGormRepository) RequeueStale(
	ctx context.Context,
	olderThan time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.NotificationOutbox{}).
		Where("status = ? AND updated_at < ?", string(outbox.StatusProcessing), olderThan).
		Update("status", string(outbox.StatusPending))
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ outbox.Repository = (*OutboxGormRepository)(nil)
