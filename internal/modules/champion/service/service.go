package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	championRepo "github.com/famquest/famquest-backend/internal/modules/champion/repository"
	feedService "github.com/famquest/famquest-backend/internal/modules/feed/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	rewardRepo "github.com/famquest/famquest-backend/internal/modules/reward/repository"
	"github.com/google/uuid"
)

const championXPBonus = 50

// RewardManifest describes what a weekly champion receives.
type RewardManifest struct {
	BonusSpins int `json:"bonus_spins"`
	XPBonus    int `json:"xp_bonus"`
}

type ChampionService interface {
	// ProcessChampions detects and rewards last week's winners for every
	// (scope, category) pair. Idempotent and safe to re-run.
	ProcessChampions(ctx context.Context, familyID uuid.UUID) error
	// IsCurrentChampion reports whether the participant won anything in the
	// most recently completed week.
	IsCurrentChampion(ctx context.Context, participantID uuid.UUID) (bool, error)
}

type championService struct {
	repo            championRepo.ChampionRepository
	ranking         rankingService.RankingService
	participantRepo participantRepo.ParticipantRepository
	allowanceRepo   rewardRepo.AllowanceRepository
	feed            feedService.FeedService
	// Base spin units a champion gets per day; the bonus grant stacks on
	// top of this when it rolls an allowance row over to the grant day.
	championDailyGrant int
	now                rankingService.Clock
}

func NewChampionService(
	repo championRepo.ChampionRepository,
	ranking rankingService.RankingService,
	participantRepo participantRepo.ParticipantRepository,
	allowanceRepo rewardRepo.AllowanceRepository,
	feed feedService.FeedService,
	championDailyGrant int,
	now rankingService.Clock,
) ChampionService {
	if now == nil {
		now = time.Now
	}
	return &championService{
		repo:               repo,
		ranking:            ranking,
		participantRepo:    participantRepo,
		allowanceRepo:      allowanceRepo,
		feed:               feed,
		championDailyGrant: championDailyGrant,
		now:                now,
	}
}

func (s *championService) ProcessChampions(ctx context.Context, familyID uuid.UUID) error {
	window := rankingService.PreviousWeek(s.now())

	for _, scope := range rankingService.Scopes {
		for _, category := range rankingService.Categories {
			// A failed pair must not abort the rest of the batch.
			if err := s.processPair(ctx, familyID, scope, category, window); err != nil {
				log.Printf("champion processing failed for family=%s scope=%s category=%s: %v",
					familyID, scope, category, err)
			}
		}
	}
	return nil
}

func (s *championService) processPair(ctx context.Context, familyID uuid.UUID, scope, category string, window rankingService.Window) error {
	result, err := s.ranking.ComputeRanking(ctx, rankingService.RankingQuery{
		FamilyID: familyID,
		Scope:    scope,
		Category: category,
		Window:   window,
	})
	if err != nil {
		return err
	}
	if len(result.Entries) == 0 {
		return nil
	}

	top := result.Entries[0]
	// No champions for zero activity
	if top.Score <= 0 {
		return nil
	}

	manifest := RewardManifest{BonusSpins: 1, XPBonus: championXPBonus}
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return err
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, &entity.ChampionRecord{
		FamilyID:      familyID,
		ParticipantID: top.ParticipantID,
		Scope:         scope,
		Category:      category,
		WeekStart:     window.Start,
		Score:         top.Score,
		Reward:        string(manifestJSON),
	})
	if err != nil {
		return err
	}
	if !inserted {
		// Constraint conflict means another run already rewarded this pair
		log.Printf("champion already recorded for participant=%s scope=%s category=%s week=%s, skipping",
			top.ParticipantID, scope, category, window.Start.Format("2006-01-02"))
		return nil
	}

	return s.issueReward(ctx, familyID, top.ParticipantID, scope, category, manifest)
}

func (s *championService) issueReward(ctx context.Context, familyID, participantID uuid.UUID, scope, category string, manifest RewardManifest) error {
	today := s.now().UTC().Truncate(24 * time.Hour)

	// 1. Grant the bonus spin unit on top of the champion's daily grant.
	// The recipient just became a champion, so the rollover base is the
	// boosted grant.
	if err := s.allowanceRepo.GrantBonusUnit(ctx, participantID, entity.ProductSpin, today, s.championDailyGrant); err != nil {
		return fmt.Errorf("grant bonus spin: %w", err)
	}

	// 2. Achievement record
	if err := s.participantRepo.AddAchievement(ctx, &entity.Achievement{
		ParticipantID: participantID,
		Code:          fmt.Sprintf("weekly_champion_%s_%s", scope, category),
		Title:         fmt.Sprintf("Weekly Champion: %s", rankingService.GetTitle(rankingService.TierDiamond, category)),
		XPBonus:       manifest.XPBonus,
	}); err != nil {
		return fmt.Errorf("add achievement: %w", err)
	}

	// 3. Lifetime experience counter
	if err := s.participantRepo.AdjustExperience(ctx, participantID, manifest.XPBonus); err != nil {
		return fmt.Errorf("adjust experience: %w", err)
	}

	// 4. Feed announcement
	if err := s.feed.PublishEvent(ctx, familyID, participantID, "weekly_champion",
		fmt.Sprintf("crowned weekly champion for %s (%s)!", category, scope),
		map[string]interface{}{
			"scope":       scope,
			"category":    category,
			"bonus_spins": manifest.BonusSpins,
			"xp_bonus":    manifest.XPBonus,
		}); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}

	return nil
}

func (s *championService) IsCurrentChampion(ctx context.Context, participantID uuid.UUID) (bool, error) {
	window := rankingService.PreviousWeek(s.now())
	return s.repo.ExistsForWeek(ctx, participantID, window.Start)
}
