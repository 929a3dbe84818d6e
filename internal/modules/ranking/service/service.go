package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	rankingDto "github.com/famquest/famquest-backend/internal/modules/ranking/dto"
	rankingRepo "github.com/famquest/famquest-backend/internal/modules/ranking/repository"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rankingCacheTTL = 5 * time.Minute

// RankingQuery identifies one leaderboard computation. AnchorID is only
// meaningful for the friends scope: when set, the cohort is the anchor plus
// their accepted connections; when nil the cohort is the whole family friend
// network (union of members and their connections).
type RankingQuery struct {
	FamilyID uuid.UUID
	AnchorID *uuid.UUID
	Scope    string
	Category string
	Window   Window
}

type RankingService interface {
	ComputeRanking(ctx context.Context, q RankingQuery) (*rankingDto.RankingResult, error)
	SnapshotWeek(ctx context.Context, familyID uuid.UUID, window Window) error
}

type rankingService struct {
	aggregator      *ScoreAggregator
	participantRepo participantRepo.ParticipantRepository
	snapshotRepo    rankingRepo.SnapshotRepository
	redisClient     *redis.Client
}

func NewRankingService(
	aggregator *ScoreAggregator,
	participantRepo participantRepo.ParticipantRepository,
	snapshotRepo rankingRepo.SnapshotRepository,
	redisClient *redis.Client,
) RankingService {
	return &rankingService{
		aggregator:      aggregator,
		participantRepo: participantRepo,
		snapshotRepo:    snapshotRepo,
		redisClient:     redisClient,
	}
}

func validScope(scope string) bool {
	for _, s := range Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (s *rankingService) ComputeRanking(ctx context.Context, q RankingQuery) (*rankingDto.RankingResult, error) {
	if !validScope(q.Scope) {
		return nil, apperror.ErrInvalidScope
	}
	if !validCategory(q.Category) {
		return nil, apperror.ErrInvalidCategory
	}

	// 1. Cache lookup (anchored friend boards cache per viewer)
	cacheKey := s.cacheKey(q)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// 2. Resolve the scope to a concrete cohort
	cohort, err := s.resolveScope(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &rankingDto.RankingResult{
		Scope:       q.Scope,
		Category:    q.Category,
		WindowStart: q.Window.Start,
		WindowEnd:   q.Window.End,
		Entries:     []rankingDto.RankEntry{},
	}

	// Empty cohort is an empty result, not an error
	if len(cohort) == 0 {
		return result, nil
	}

	// 3. Score every member
	entries := make([]rankingDto.RankEntry, 0, len(cohort))
	for _, member := range cohort {
		score, err := s.aggregator.Score(ctx, member.ID, q.Category, q.Window)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rankingDto.RankEntry{
			ParticipantID: member.ID,
			DisplayName:   member.Name,
			AvatarURL:     member.AvatarURL,
			Score:         score,
		})
	}

	// 4. Stable sort descending; ties keep resolution order and still get
	// consecutive distinct ranks.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	cohortSize := len(entries)
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Tier = GetTierFromRank(i+1, cohortSize)
		entries[i].Title = GetTitle(entries[i].Tier, q.Category)
	}
	result.Entries = entries

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// SnapshotWeek freezes every (scope, category) leaderboard for the given
// window. Re-running is a no-op thanks to the snapshot uniqueness key.
func (s *rankingService) SnapshotWeek(ctx context.Context, familyID uuid.UUID, window Window) error {
	for _, scope := range Scopes {
		for _, category := range Categories {
			result, err := s.ComputeRanking(ctx, RankingQuery{
				FamilyID: familyID,
				Scope:    scope,
				Category: category,
				Window:   window,
			})
			if err != nil {
				return fmt.Errorf("snapshot %s/%s: %w", scope, category, err)
			}
			if len(result.Entries) == 0 {
				continue
			}

			payload, err := json.Marshal(result.Entries)
			if err != nil {
				return err
			}
			inserted, err := s.snapshotRepo.InsertIfAbsent(ctx, &entity.RankSnapshot{
				FamilyID:  familyID,
				Scope:     scope,
				Category:  category,
				WeekStart: window.Start,
				Entries:   string(payload),
			})
			if err != nil {
				return fmt.Errorf("snapshot %s/%s: %w", scope, category, err)
			}
			if !inserted {
				log.Printf("snapshot already exists for family=%s scope=%s category=%s week=%s",
					familyID, scope, category, window.Start.Format("2006-01-02"))
			}
		}
	}
	return nil
}

func (s *rankingService) resolveScope(ctx context.Context, q RankingQuery) ([]entity.Participant, error) {
	switch q.Scope {
	case ScopeFamily:
		return s.participantRepo.ListFamilyMembers(ctx, q.FamilyID)

	case ScopeFriends:
		if q.AnchorID != nil {
			friendIDs, err := s.participantRepo.ListAcceptedFriendIDs(ctx, *q.AnchorID)
			if err != nil {
				return nil, err
			}
			return s.participantRepo.FindByIDs(ctx, append([]uuid.UUID{*q.AnchorID}, friendIDs...))
		}

		// Group-level friend network: family members plus everyone they are
		// connected to, deduplicated, members first.
		members, err := s.participantRepo.ListFamilyMembers(ctx, q.FamilyID)
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]bool, len(members))
		ids := make([]uuid.UUID, 0, len(members))
		for _, m := range members {
			seen[m.ID] = true
			ids = append(ids, m.ID)
		}
		for _, m := range members {
			friendIDs, err := s.participantRepo.ListAcceptedFriendIDs(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range friendIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		return s.participantRepo.FindByIDs(ctx, ids)

	case ScopePromotedActivity:
		ids, err := s.participantRepo.ListPromotedParticipantIDs(ctx, q.FamilyID)
		if err != nil {
			return nil, err
		}
		return s.participantRepo.FindByIDs(ctx, ids)

	default:
		return nil, apperror.ErrInvalidScope
	}
}

func (s *rankingService) cacheKey(q RankingQuery) string {
	anchor := ""
	if q.AnchorID != nil {
		anchor = ":" + q.AnchorID.String()
	}
	return fmt.Sprintf("ranking:%s:%s:%s:%d%s",
		q.FamilyID, q.Scope, q.Category, q.Window.Start.Unix(), anchor)
}

func (s *rankingService) cacheGet(ctx context.Context, key string) *rankingDto.RankingResult {
	if s.redisClient == nil {
		return nil
	}
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var result rankingDto.RankingResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil
	}
	return &result
}

func (s *rankingService) cacheSet(ctx context.Context, key string, result *rankingDto.RankingResult) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Cache miss on failure is fine, data stays consistent in DB
	if err := s.redisClient.Set(ctx, key, payload, rankingCacheTTL).Err(); err != nil {
		log.Printf("ranking cache write failed: %v", err)
	}
}
