package repository

import (
	"context"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepository is the read-only view over raw activity records that
// the score aggregator consumes.
type ActivityRepository interface {
	SumEarnedCoins(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error)
	CountApprovedTasks(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error)
	SumPromotedEarnings(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error)
	CountCareInteractions(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error)
	CountApprovedTaskDays(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error)
}

// SnapshotRepository persists frozen leaderboards. Insert is
// conflict-tolerant: the unique (family, scope, category, week_start) index
// makes a re-run a no-op.
type SnapshotRepository interface {
	InsertIfAbsent(ctx context.Context, snapshot *entity.RankSnapshot) (bool, error)
	FindByWeek(ctx context.Context, familyID uuid.UUID, scope, category string, weekStart time.Time) (*entity.RankSnapshot, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) SumEarnedCoins(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entity.CoinTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("participant_id = ? AND type = ? AND created_at >= ? AND created_at <= ?",
			participantID, entity.CoinEarned, from, to).
		Scan(&total).Error
	return total, err
}

func (r *activityRepository) CountApprovedTasks(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.TaskCompletion{}).
		Where("participant_id = ? AND status = ? AND submitted_at >= ? AND submitted_at <= ?",
			participantID, entity.TaskApproved, from, to).
		Count(&count).Error
	return int(count), err
}

func (r *activityRepository) SumPromotedEarnings(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entity.PromotedTask{}).
		Select("COALESCE(SUM(offered_amount), 0)").
		Where("participant_id = ? AND status = ? AND completed_at >= ? AND completed_at <= ?",
			participantID, entity.PromotedCompleted, from, to).
		Scan(&total).Error
	return total, err
}

func (r *activityRepository) CountCareInteractions(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CareInteraction{}).
		Where("participant_id = ? AND created_at >= ? AND created_at <= ?", participantID, from, to).
		Count(&count).Error
	return int(count), err
}

func (r *activityRepository) CountApprovedTaskDays(ctx context.Context, participantID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Model(&entity.TaskCompletion{}).
		Select("COUNT(DISTINCT DATE(submitted_at))").
		Where("participant_id = ? AND status = ? AND submitted_at >= ? AND submitted_at <= ?",
			participantID, entity.TaskApproved, from, to).
		Scan(&count).Error
	return count, err
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) InsertIfAbsent(ctx context.Context, snapshot *entity.RankSnapshot) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(snapshot)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *snapshotRepository) FindByWeek(ctx context.Context, familyID uuid.UUID, scope, category string, weekStart time.Time) (*entity.RankSnapshot, error) {
	var snapshots []entity.RankSnapshot
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND scope = ? AND category = ? AND week_start = ?",
			familyID, scope, category, weekStart).
		Limit(1).
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}
