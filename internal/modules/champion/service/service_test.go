package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	rankingDto "github.com/famquest/famquest-backend/internal/modules/ranking/dto"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeChampionRepo struct {
	records []entity.ChampionRecord
}

func (f *fakeChampionRepo) InsertIfAbsent(_ context.Context, record *entity.ChampionRecord) (bool, error) {
	for _, r := range f.records {
		if r.FamilyID == record.FamilyID &&
			r.ParticipantID == record.ParticipantID &&
			r.Scope == record.Scope &&
			r.Category == record.Category &&
			r.WeekStart.Equal(record.WeekStart) {
			return false, nil
		}
	}
	f.records = append(f.records, *record)
	return true, nil
}

func (f *fakeChampionRepo) ExistsForWeek(_ context.Context, participantID uuid.UUID, weekStart time.Time) (bool, error) {
	for _, r := range f.records {
		if r.ParticipantID == participantID && r.WeekStart.Equal(weekStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChampionRepo) ListByWeek(_ context.Context, familyID uuid.UUID, weekStart time.Time) ([]entity.ChampionRecord, error) {
	var records []entity.ChampionRecord
	for _, r := range f.records {
		if r.FamilyID == familyID && r.WeekStart.Equal(weekStart) {
			records = append(records, r)
		}
	}
	return records, nil
}

// fakeRanking serves canned leaderboards keyed by scope/category; unknown
// pairs return an empty board.
type fakeRanking struct {
	boards map[string][]rankingDto.RankEntry
	errors map[string]error
}

func boardKey(scope, category string) string { return scope + "/" + category }

func (f *fakeRanking) ComputeRanking(_ context.Context, q rankingService.RankingQuery) (*rankingDto.RankingResult, error) {
	key := boardKey(q.Scope, q.Category)
	if err := f.errors[key]; err != nil {
		return nil, err
	}
	return &rankingDto.RankingResult{
		Scope:    q.Scope,
		Category: q.Category,
		Entries:  f.boards[key],
	}, nil
}

func (f *fakeRanking) SnapshotWeek(_ context.Context, _ uuid.UUID, _ rankingService.Window) error {
	return nil
}

type fakeDirectory struct {
	achievements []entity.Achievement
	experience   map[uuid.UUID]int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{experience: map[uuid.UUID]int{}}
}

func (f *fakeDirectory) FindByID(_ context.Context, _ uuid.UUID) (*entity.Participant, error) {
	return nil, apperror.ErrNotFound
}
func (f *fakeDirectory) FindByIDs(_ context.Context, _ []uuid.UUID) ([]entity.Participant, error) {
	return nil, nil
}
func (f *fakeDirectory) ListFamilyMembers(_ context.Context, _ uuid.UUID) ([]entity.Participant, error) {
	return nil, nil
}
func (f *fakeDirectory) ListAcceptedFriendIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeDirectory) ListPromotedParticipantIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeDirectory) ListFamilyIDs(_ context.Context) ([]uuid.UUID, error) { return nil, nil }
func (f *fakeDirectory) AdjustCoins(_ context.Context, _ uuid.UUID, _ int, _ string) error {
	return nil
}
func (f *fakeDirectory) AdjustExperience(_ context.Context, id uuid.UUID, delta int) error {
	f.experience[id] += delta
	return nil
}
func (f *fakeDirectory) AddAchievement(_ context.Context, achievement *entity.Achievement) error {
	f.achievements = append(f.achievements, *achievement)
	return nil
}
func (f *fakeDirectory) AddCollectible(_ context.Context, _ *entity.CollectionEntry) error {
	return nil
}
func (f *fakeDirectory) HasCollectible(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}
func (f *fakeDirectory) ListCollection(_ context.Context, _ uuid.UUID) ([]entity.CollectionEntry, error) {
	return nil, nil
}

type fakeBonusUnits struct {
	granted   map[uuid.UUID]int
	baseUnits map[uuid.UUID]int
}

func newFakeBonusUnits() *fakeBonusUnits {
	return &fakeBonusUnits{granted: map[uuid.UUID]int{}, baseUnits: map[uuid.UUID]int{}}
}

func (f *fakeBonusUnits) Find(_ context.Context, _ uuid.UUID, _ string) (*entity.DailyAllowance, error) {
	return nil, nil
}
func (f *fakeBonusUnits) Save(_ context.Context, _ *entity.DailyAllowance) error { return nil }
func (f *fakeBonusUnits) ConsumeUnit(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}
func (f *fakeBonusUnits) RestoreUnit(_ context.Context, _ uuid.UUID, _ string) error { return nil }
func (f *fakeBonusUnits) GrantBonusUnit(_ context.Context, participantID uuid.UUID, _ string, _ time.Time, baseUnits int) error {
	f.granted[participantID]++
	f.baseUnits[participantID] = baseUnits
	return nil
}

type fakeFeed struct {
	events []string
}

func (f *fakeFeed) PublishEvent(_ context.Context, _, _ uuid.UUID, eventType, _ string, _ map[string]interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}
func (f *fakeFeed) GetFeed(_ context.Context, _ uuid.UUID, _, _ int) ([]entity.FeedEvent, error) {
	return nil, nil
}

// ─── Fixture ────────────────────────────────────────────────────────────────

var championTestNow = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

func championFixedClock() time.Time { return championTestNow }

type championFixture struct {
	svc       ChampionService
	repo      *fakeChampionRepo
	ranking   *fakeRanking
	directory *fakeDirectory
	allowance *fakeBonusUnits
	feed      *fakeFeed
	familyID  uuid.UUID
	winnerID  uuid.UUID
}

func newChampionFixture() *championFixture {
	fx := &championFixture{
		repo:      &fakeChampionRepo{},
		ranking:   &fakeRanking{boards: map[string][]rankingDto.RankEntry{}, errors: map[string]error{}},
		directory: newFakeDirectory(),
		allowance: newFakeBonusUnits(),
		feed:      &fakeFeed{},
		familyID:  uuid.New(),
		winnerID:  uuid.New(),
	}
	fx.svc = NewChampionService(fx.repo, fx.ranking, fx.directory, fx.allowance, fx.feed, 2, championFixedClock)
	return fx
}

func (fx *championFixture) setBoard(scope, category string, entries ...rankingDto.RankEntry) {
	fx.ranking.boards[boardKey(scope, category)] = entries
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestProcessChampions_RewardsTopScorer(t *testing.T) {
	fx := newChampionFixture()
	runnerUp := uuid.New()
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryTasksCompleted,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 12, Rank: 1},
		rankingDto.RankEntry{ParticipantID: runnerUp, Score: 7, Rank: 2},
	)

	if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.repo.records) != 1 {
		t.Fatalf("expected 1 champion record, got %d", len(fx.repo.records))
	}
	record := fx.repo.records[0]
	if record.ParticipantID != fx.winnerID {
		t.Error("runner-up must not be crowned")
	}
	if !record.WeekStart.Equal(rankingService.PreviousWeek(championTestNow).Start) {
		t.Errorf("champion must be keyed to the completed week, got %s", record.WeekStart)
	}

	if fx.allowance.granted[fx.winnerID] != 1 {
		t.Errorf("expected 1 bonus spin, got %d", fx.allowance.granted[fx.winnerID])
	}
	if fx.allowance.baseUnits[fx.winnerID] != 2 {
		t.Errorf("bonus must stack on the champion daily grant, got base %d", fx.allowance.baseUnits[fx.winnerID])
	}
	if fx.directory.experience[fx.winnerID] != 50 {
		t.Errorf("expected 50 bonus XP, got %d", fx.directory.experience[fx.winnerID])
	}
	if len(fx.directory.achievements) != 1 {
		t.Fatalf("expected 1 achievement, got %d", len(fx.directory.achievements))
	}
	if fx.directory.achievements[0].Code != "weekly_champion_family_tasksCompleted" {
		t.Errorf("unexpected achievement code %q", fx.directory.achievements[0].Code)
	}
	if len(fx.feed.events) != 1 || fx.feed.events[0] != "weekly_champion" {
		t.Errorf("expected one weekly_champion feed event, got %v", fx.feed.events)
	}
}

func TestProcessChampions_SecondRunIsNoOp(t *testing.T) {
	fx := newChampionFixture()
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryExperience,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 80, Rank: 1},
	)

	for run := 0; run < 2; run++ {
		if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
			t.Fatalf("run %d: unexpected error: %v", run+1, err)
		}
	}

	if len(fx.repo.records) != 1 {
		t.Errorf("expected 1 champion record after re-run, got %d", len(fx.repo.records))
	}
	if fx.allowance.granted[fx.winnerID] != 1 {
		t.Errorf("bonus spin must be issued exactly once, got %d", fx.allowance.granted[fx.winnerID])
	}
	if fx.directory.experience[fx.winnerID] != 50 {
		t.Errorf("XP must be issued exactly once, got %d", fx.directory.experience[fx.winnerID])
	}
	if len(fx.directory.achievements) != 1 {
		t.Errorf("achievement must be issued exactly once, got %d", len(fx.directory.achievements))
	}
	if len(fx.feed.events) != 1 {
		t.Errorf("feed event must be published exactly once, got %d", len(fx.feed.events))
	}
}

func TestProcessChampions_OneChampionPerPair(t *testing.T) {
	fx := newChampionFixture()
	other := uuid.New()
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryExperience,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 80, Rank: 1},
	)
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryStreak,
		rankingDto.RankEntry{ParticipantID: other, Score: 5, Rank: 1},
	)

	if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.repo.records) != 2 {
		t.Fatalf("expected one record per winning pair, got %d", len(fx.repo.records))
	}
	if fx.allowance.granted[fx.winnerID] != 1 || fx.allowance.granted[other] != 1 {
		t.Errorf("each winner gets their own bonus spin, got %v", fx.allowance.granted)
	}
}

func TestProcessChampions_ZeroScoreIsNotCrowned(t *testing.T) {
	fx := newChampionFixture()
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryStreak,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 0, Rank: 1},
	)

	if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.repo.records) != 0 {
		t.Errorf("zero activity must not produce a champion, got %d records", len(fx.repo.records))
	}
	if len(fx.feed.events) != 0 {
		t.Errorf("no feed announcement for an inactive week, got %v", fx.feed.events)
	}
}

func TestProcessChampions_PairFailureDoesNotAbortBatch(t *testing.T) {
	fx := newChampionFixture()
	fx.ranking.errors[boardKey(rankingService.ScopeFamily, rankingService.CategoryExperience)] = errors.New("db down")
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryTasksCompleted,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 9, Rank: 1},
	)

	if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
		t.Fatalf("batch must absorb per-pair failures, got %v", err)
	}
	if len(fx.repo.records) != 1 {
		t.Errorf("healthy pairs must still be processed, got %d records", len(fx.repo.records))
	}
}

func TestIsCurrentChampion(t *testing.T) {
	fx := newChampionFixture()
	fx.setBoard(rankingService.ScopeFamily, rankingService.CategoryExperience,
		rankingDto.RankEntry{ParticipantID: fx.winnerID, Score: 80, Rank: 1},
	)
	if err := fx.svc.ProcessChampions(context.Background(), fx.familyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	isChampion, err := fx.svc.IsCurrentChampion(context.Background(), fx.winnerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isChampion {
		t.Error("last week's winner should be the current champion")
	}

	isChampion, err = fx.svc.IsCurrentChampion(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isChampion {
		t.Error("a stranger must not be the current champion")
	}
}
