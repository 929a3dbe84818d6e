package repository

import (
	"context"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedRepository interface {
	Create(ctx context.Context, event *entity.FeedEvent) error
	ListByFamily(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]entity.FeedEvent, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, event *entity.FeedEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *feedRepository) ListByFamily(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]entity.FeedEvent, error) {
	var events []entity.FeedEvent
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}
