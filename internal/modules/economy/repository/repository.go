package repository

import (
	"context"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EconomyRepository aggregates currency-flow figures across one family.
type EconomyRepository interface {
	AverageFamilyBalance(ctx context.Context, familyID uuid.UUID) (int, error)
	SumFamilyTransactions(ctx context.Context, familyID uuid.UUID, txType string, from, to time.Time) (int, error)
}

type economyRepository struct {
	db *gorm.DB
}

func NewEconomyRepository(db *gorm.DB) EconomyRepository {
	return &economyRepository{db: db}
}

func (r *economyRepository) AverageFamilyBalance(ctx context.Context, familyID uuid.UUID) (int, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Select("COALESCE(AVG(coin_balance), 0)").
		Where("family_id = ?", familyID).
		Scan(&avg).Error
	return int(avg), err
}

func (r *economyRepository) SumFamilyTransactions(ctx context.Context, familyID uuid.UUID, txType string, from, to time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entity.CoinTransaction{}).
		Select("COALESCE(SUM(coin_transactions.amount), 0)").
		Joins("JOIN participants ON participants.id = coin_transactions.participant_id").
		Where("participants.family_id = ? AND coin_transactions.type = ? AND coin_transactions.created_at >= ? AND coin_transactions.created_at <= ?",
			familyID, txType, from, to).
		Scan(&total).Error
	return total, err
}
