package repository

import (
	"context"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChampionRepository stores weekly champion records. InsertIfAbsent relies
// on the composite unique index as the idempotency gate: a conflicting
// insert affects zero rows and signals "already rewarded" without a
// separate existence check.
type ChampionRepository interface {
	InsertIfAbsent(ctx context.Context, record *entity.ChampionRecord) (bool, error)
	ExistsForWeek(ctx context.Context, participantID uuid.UUID, weekStart time.Time) (bool, error)
	ListByWeek(ctx context.Context, familyID uuid.UUID, weekStart time.Time) ([]entity.ChampionRecord, error)
}

type championRepository struct {
	db *gorm.DB
}

func NewChampionRepository(db *gorm.DB) ChampionRepository {
	return &championRepository{db: db}
}

func (r *championRepository) InsertIfAbsent(ctx context.Context, record *entity.ChampionRecord) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *championRepository) ExistsForWeek(ctx context.Context, participantID uuid.UUID, weekStart time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ChampionRecord{}).
		Where("participant_id = ? AND week_start = ?", participantID, weekStart).
		Count(&count).Error
	return count > 0, err
}

func (r *championRepository) ListByWeek(ctx context.Context, familyID uuid.UUID, weekStart time.Time) ([]entity.ChampionRecord, error) {
	var records []entity.ChampionRecord
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND week_start = ?", familyID, weekStart).
		Find(&records).Error
	return records, err
}
