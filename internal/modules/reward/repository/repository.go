package repository

import (
	"context"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllowanceRepository tracks per-participant daily draw budgets.
type AllowanceRepository interface {
	// Find returns nil without error when no row exists yet.
	Find(ctx context.Context, participantID uuid.UUID, product string) (*entity.DailyAllowance, error)
	Save(ctx context.Context, allowance *entity.DailyAllowance) error
	// ConsumeUnit atomically takes one unit; false means none were left.
	ConsumeUnit(ctx context.Context, participantID uuid.UUID, product string) (bool, error)
	// RestoreUnit returns a consumed unit after a failed payout.
	RestoreUnit(ctx context.Context, participantID uuid.UUID, product string) error
	// GrantBonusUnit adds one extra unit on top of the day's base grant,
	// creating the row if absent. A row carrying a stale grant date is
	// rolled over to day with baseUnits+1, so a later draw-side refill
	// cannot wipe the bonus.
	GrantBonusUnit(ctx context.Context, participantID uuid.UUID, product string, day time.Time, baseUnits int) error
}

type allowanceRepository struct {
	db *gorm.DB
}

func NewAllowanceRepository(db *gorm.DB) AllowanceRepository {
	return &allowanceRepository{db: db}
}

func (r *allowanceRepository) Find(ctx context.Context, participantID uuid.UUID, product string) (*entity.DailyAllowance, error) {
	var rows []entity.DailyAllowance
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND product = ?", participantID, product).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *allowanceRepository) Save(ctx context.Context, allowance *entity.DailyAllowance) error {
	return r.db.WithContext(ctx).Save(allowance).Error
}

func (r *allowanceRepository) ConsumeUnit(ctx context.Context, participantID uuid.UUID, product string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.DailyAllowance{}).
		Where("participant_id = ? AND product = ? AND units_available > 0", participantID, product).
		Updates(map[string]interface{}{
			"units_available":     gorm.Expr("units_available - 1"),
			"lifetime_units_used": gorm.Expr("lifetime_units_used + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *allowanceRepository) RestoreUnit(ctx context.Context, participantID uuid.UUID, product string) error {
	return r.db.WithContext(ctx).
		Model(&entity.DailyAllowance{}).
		Where("participant_id = ? AND product = ?", participantID, product).
		Updates(map[string]interface{}{
			"units_available":     gorm.Expr("units_available + 1"),
			"lifetime_units_used": gorm.Expr("lifetime_units_used - 1"),
		}).Error
}

func (r *allowanceRepository) GrantBonusUnit(ctx context.Context, participantID uuid.UUID, product string, day time.Time, baseUnits int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}, {Name: "product"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			// A stale row rolls over to the new day here, so the draw-side
			// refill sees a current grant date and leaves the bonus alone.
			"units_available": gorm.Expr(
				"CASE WHEN daily_allowances.last_grant_date < excluded.last_grant_date THEN ? ELSE daily_allowances.units_available + 1 END",
				baseUnits+1),
			"last_grant_date": gorm.Expr(
				"CASE WHEN daily_allowances.last_grant_date < excluded.last_grant_date THEN excluded.last_grant_date ELSE daily_allowances.last_grant_date END"),
		}),
	}).Create(&entity.DailyAllowance{
		ParticipantID:  participantID,
		Product:        product,
		LastGrantDate:  day,
		UnitsAvailable: baseUnits + 1,
	}).Error
}
