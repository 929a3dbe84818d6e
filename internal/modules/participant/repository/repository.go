package repository

import (
	"context"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipantRepository is both the participant directory and the
// balance/collection mutator the engine writes through.
type ParticipantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error)
	ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]entity.Participant, error)
	ListAcceptedFriendIDs(ctx context.Context, participantID uuid.UUID) ([]uuid.UUID, error)
	ListPromotedParticipantIDs(ctx context.Context, familyID uuid.UUID) ([]uuid.UUID, error)
	ListFamilyIDs(ctx context.Context) ([]uuid.UUID, error)

	AdjustCoins(ctx context.Context, participantID uuid.UUID, delta int, reason string) error
	AdjustExperience(ctx context.Context, participantID uuid.UUID, delta int) error
	AddAchievement(ctx context.Context, achievement *entity.Achievement) error
	AddCollectible(ctx context.Context, item *entity.CollectionEntry) error
	HasCollectible(ctx context.Context, participantID uuid.UUID, itemID string) (bool, error)
	ListCollection(ctx context.Context, participantID uuid.UUID) ([]entity.CollectionEntry, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.WithContext(ctx).First(&participant, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// FindByIDs returns participants in the same order as the given ids,
// silently skipping ids without a matching row.
func (r *participantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []entity.Participant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Participant, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	ordered := make([]entity.Participant, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *participantRepository) ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]entity.Participant, error) {
	var members []entity.Participant
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *participantRepository) ListAcceptedFriendIDs(ctx context.Context, participantID uuid.UUID) ([]uuid.UUID, error) {
	var friendships []entity.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			participantID, participantID, entity.FriendshipAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == participantID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	return ids, nil
}

// ListPromotedParticipantIDs returns family members with at least one
// completed promoted task, ordered by join date for deterministic ranking.
func (r *participantRepository) ListPromotedParticipantIDs(ctx context.Context, familyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Select("participants.id").
		Joins("JOIN promoted_tasks ON promoted_tasks.participant_id = participants.id AND promoted_tasks.status = ?",
			entity.PromotedCompleted).
		Where("participants.family_id = ?", familyID).
		Group("participants.id, participants.created_at").
		Order("participants.created_at ASC").
		Pluck("participants.id", &ids).Error
	return ids, err
}

func (r *participantRepository) ListFamilyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Family{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *participantRepository) AdjustCoins(ctx context.Context, participantID uuid.UUID, delta int, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&entity.Participant{}).Where("id = ?", participantID)
		if delta < 0 {
			// Never let a spend push the balance negative.
			query = query.Where("coin_balance >= ?", -delta)
		}

		result := query.UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if delta < 0 {
				return apperror.ErrInsufficientBalance
			}
			return apperror.ErrNotFound
		}

		txType := entity.CoinEarned
		amount := delta
		if delta < 0 {
			txType = entity.CoinSpent
			amount = -delta
		}
		return tx.Create(&entity.CoinTransaction{
			ParticipantID: participantID,
			Type:          txType,
			Amount:        amount,
			Reason:        reason,
		}).Error
	})
}

func (r *participantRepository) AdjustExperience(ctx context.Context, participantID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("id = ?", participantID).
		UpdateColumn("experience_total", gorm.Expr("experience_total + ?", delta)).Error
}

func (r *participantRepository) AddAchievement(ctx context.Context, achievement *entity.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *participantRepository) AddCollectible(ctx context.Context, item *entity.CollectionEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

func (r *participantRepository) HasCollectible(ctx context.Context, participantID uuid.UUID, itemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CollectionEntry{}).
		Where("participant_id = ? AND item_id = ?", participantID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *participantRepository) ListCollection(ctx context.Context, participantID uuid.UUID) ([]entity.CollectionEntry, error) {
	var entries []entity.CollectionEntry
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("obtained_at DESC").
		Find(&entries).Error
	return entries, err
}
