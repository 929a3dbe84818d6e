package service

import (
	"context"
	"testing"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeActivityRepo struct {
	earned     map[uuid.UUID]int
	tasks      map[uuid.UUID]int
	promoted   map[uuid.UUID]int
	care       map[uuid.UUID]int
	streakDays map[uuid.UUID]int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		earned:     map[uuid.UUID]int{},
		tasks:      map[uuid.UUID]int{},
		promoted:   map[uuid.UUID]int{},
		care:       map[uuid.UUID]int{},
		streakDays: map[uuid.UUID]int{},
	}
}

func (f *fakeActivityRepo) SumEarnedCoins(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return f.earned[id], nil
}
func (f *fakeActivityRepo) CountApprovedTasks(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return f.tasks[id], nil
}
func (f *fakeActivityRepo) SumPromotedEarnings(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return f.promoted[id], nil
}
func (f *fakeActivityRepo) CountCareInteractions(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return f.care[id], nil
}
func (f *fakeActivityRepo) CountApprovedTaskDays(_ context.Context, id uuid.UUID, _, _ time.Time) (int, error) {
	return f.streakDays[id], nil
}

type fakeParticipantRepo struct {
	members  []entity.Participant
	friends  map[uuid.UUID][]uuid.UUID
	promoted []uuid.UUID
}

func (f *fakeParticipantRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Participant, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			return &f.members[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeParticipantRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Participant, error) {
	byID := make(map[uuid.UUID]entity.Participant)
	for _, m := range f.members {
		byID[m.ID] = m
	}
	var ordered []entity.Participant
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (f *fakeParticipantRepo) ListFamilyMembers(_ context.Context, familyID uuid.UUID) ([]entity.Participant, error) {
	var members []entity.Participant
	for _, m := range f.members {
		if m.FamilyID == familyID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (f *fakeParticipantRepo) ListAcceptedFriendIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f.friends[id], nil
}

func (f *fakeParticipantRepo) ListPromotedParticipantIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.promoted, nil
}

func (f *fakeParticipantRepo) ListFamilyIDs(_ context.Context) ([]uuid.UUID, error) { return nil, nil }
func (f *fakeParticipantRepo) AdjustCoins(_ context.Context, _ uuid.UUID, _ int, _ string) error {
	return nil
}
func (f *fakeParticipantRepo) AdjustExperience(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}
func (f *fakeParticipantRepo) AddAchievement(_ context.Context, _ *entity.Achievement) error {
	return nil
}
func (f *fakeParticipantRepo) AddCollectible(_ context.Context, _ *entity.CollectionEntry) error {
	return nil
}
func (f *fakeParticipantRepo) HasCollectible(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}
func (f *fakeParticipantRepo) ListCollection(_ context.Context, _ uuid.UUID) ([]entity.CollectionEntry, error) {
	return nil, nil
}

type fakeSnapshotRepo struct {
	snapshots map[string]*entity.RankSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: map[string]*entity.RankSnapshot{}}
}

func snapshotKey(s *entity.RankSnapshot) string {
	return s.FamilyID.String() + s.Scope + s.Category + s.WeekStart.Format("2006-01-02")
}

func (f *fakeSnapshotRepo) InsertIfAbsent(_ context.Context, s *entity.RankSnapshot) (bool, error) {
	key := snapshotKey(s)
	if _, exists := f.snapshots[key]; exists {
		return false, nil
	}
	f.snapshots[key] = s
	return true, nil
}

func (f *fakeSnapshotRepo) FindByWeek(_ context.Context, familyID uuid.UUID, scope, category string, weekStart time.Time) (*entity.RankSnapshot, error) {
	return f.snapshots[familyID.String()+scope+category+weekStart.Format("2006-01-02")], nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC) // a Wednesday

func fixedClock() time.Time { return testNow }

func buildFamily(n int) (uuid.UUID, []entity.Participant) {
	familyID := uuid.New()
	members := make([]entity.Participant, n)
	for i := range members {
		members[i] = entity.Participant{
			ID:       uuid.New(),
			FamilyID: familyID,
			Name:     string(rune('A' + i)),
		}
	}
	return familyID, members
}

func newTestService(activity *fakeActivityRepo, participants *fakeParticipantRepo) RankingService {
	aggregator := NewScoreAggregator(activity, fixedClock)
	return NewRankingService(aggregator, participants, newFakeSnapshotRepo(), nil)
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestComputeRanking_RanksAreGaplessPermutation(t *testing.T) {
	familyID, members := buildFamily(5)
	activity := newFakeActivityRepo()
	scores := []int{40, 90, 10, 60, 90}
	for i, m := range members {
		activity.earned[m.ID] = scores[i]
	}

	svc := newTestService(activity, &fakeParticipantRepo{members: members})
	result, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID,
		Scope:    ScopeFamily,
		Category: CategoryExperience,
		Window:   CurrentWeek(testNow),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(result.Entries))
	}
	seen := make(map[int]bool)
	for i, entry := range result.Entries {
		if entry.Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, entry.Rank)
		}
		seen[entry.Rank] = true
		if i > 0 && result.Entries[i-1].Score < entry.Score {
			t.Errorf("entries not sorted descending at index %d", i)
		}
	}
	for r := 1; r <= 5; r++ {
		if !seen[r] {
			t.Errorf("rank %d missing from result", r)
		}
	}
}

func TestComputeRanking_TiesKeepResolutionOrder(t *testing.T) {
	familyID, members := buildFamily(3)
	activity := newFakeActivityRepo()
	// B leads, A and C tie; A resolves before C
	activity.tasks[members[0].ID] = 5
	activity.tasks[members[1].ID] = 9
	activity.tasks[members[2].ID] = 5

	svc := newTestService(activity, &fakeParticipantRepo{members: members})
	result, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID,
		Scope:    ScopeFamily,
		Category: CategoryTasksCompleted,
		Window:   CurrentWeek(testNow),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Entries[0].ParticipantID != members[1].ID {
		t.Error("expected member B first")
	}
	if result.Entries[1].ParticipantID != members[0].ID || result.Entries[2].ParticipantID != members[2].ID {
		t.Error("tied members should keep resolution order")
	}
	if result.Entries[1].Rank != 2 || result.Entries[2].Rank != 3 {
		t.Errorf("tied members should still get consecutive distinct ranks, got %d and %d",
			result.Entries[1].Rank, result.Entries[2].Rank)
	}
}

func TestComputeRanking_EmptyCohortIsEmptyResult(t *testing.T) {
	familyID, members := buildFamily(2)
	svc := newTestService(newFakeActivityRepo(), &fakeParticipantRepo{members: members})

	result, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID,
		Scope:    ScopePromotedActivity, // nobody promoted
		Category: CategoryPromotedEarnings,
		Window:   CurrentWeek(testNow),
	})
	if err != nil {
		t.Fatalf("empty cohort should not error, got %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected empty result, got %d entries", len(result.Entries))
	}
}

func TestComputeRanking_InvalidInputs(t *testing.T) {
	familyID, members := buildFamily(1)
	svc := newTestService(newFakeActivityRepo(), &fakeParticipantRepo{members: members})

	_, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID, Scope: "galaxy", Category: CategoryExperience, Window: CurrentWeek(testNow),
	})
	if err != apperror.ErrInvalidScope {
		t.Errorf("expected ErrInvalidScope, got %v", err)
	}

	_, err = svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID, Scope: ScopeFamily, Category: "vibes", Window: CurrentWeek(testNow),
	})
	if err != apperror.ErrInvalidCategory {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestComputeRanking_ZeroStreakLandsBronze(t *testing.T) {
	familyID, members := buildFamily(3)
	activity := newFakeActivityRepo()
	activity.streakDays[members[0].ID] = 6
	activity.streakDays[members[1].ID] = 3
	// members[2] has no approved tasks in the last 7 days

	svc := newTestService(activity, &fakeParticipantRepo{members: members})
	result, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID,
		Scope:    ScopeFamily,
		Category: CategoryStreak,
		Window:   CurrentWeek(testNow),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := result.Entries[2]
	if last.ParticipantID != members[2].ID {
		t.Fatal("expected zero-streak member last")
	}
	if last.Score != 0 {
		t.Errorf("expected score 0, got %d", last.Score)
	}
	if last.Tier != TierBronze {
		t.Errorf("expected bronze, got %s", last.Tier)
	}
}

func TestComputeRanking_FriendsScopeAnchoredOnViewer(t *testing.T) {
	familyID, members := buildFamily(3)
	outsider := entity.Participant{ID: uuid.New(), FamilyID: uuid.New(), Name: "X"}
	all := append(members, outsider)

	participants := &fakeParticipantRepo{
		members: all,
		friends: map[uuid.UUID][]uuid.UUID{
			members[0].ID: {outsider.ID},
		},
	}
	activity := newFakeActivityRepo()
	activity.earned[members[0].ID] = 10
	activity.earned[outsider.ID] = 30

	svc := newTestService(activity, participants)
	anchor := members[0].ID
	result, err := svc.ComputeRanking(context.Background(), RankingQuery{
		FamilyID: familyID,
		AnchorID: &anchor,
		Scope:    ScopeFriends,
		Category: CategoryExperience,
		Window:   CurrentWeek(testNow),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected anchor plus one friend, got %d entries", len(result.Entries))
	}
	if result.Entries[0].ParticipantID != outsider.ID {
		t.Error("expected the friend with the higher score first")
	}
}

func TestWeekWindows(t *testing.T) {
	current := CurrentWeek(testNow)
	if current.Start.Weekday() != time.Monday {
		t.Errorf("expected Monday start, got %s", current.Start.Weekday())
	}
	if !current.Start.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected week start: %s", current.Start)
	}

	previous := PreviousWeek(testNow)
	if !previous.Start.Equal(current.Start.AddDate(0, 0, -7)) {
		t.Errorf("previous week should start 7 days earlier, got %s", previous.Start)
	}
	if !previous.End.Before(current.Start) {
		t.Error("previous week must end before the current week starts")
	}

	// Sunday still belongs to the week that started the previous Monday
	sunday := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	if !CurrentWeek(sunday).Start.Equal(current.Start) {
		t.Error("Sunday should map to the same week as the preceding Wednesday")
	}
}

func TestSnapshotWeek_IsIdempotent(t *testing.T) {
	familyID, members := buildFamily(2)
	activity := newFakeActivityRepo()
	activity.earned[members[0].ID] = 50

	snapshots := newFakeSnapshotRepo()
	aggregator := NewScoreAggregator(activity, fixedClock)
	svc := NewRankingService(aggregator, &fakeParticipantRepo{members: members}, snapshots, nil)

	window := PreviousWeek(testNow)
	if err := svc.SnapshotWeek(context.Background(), familyID, window); err != nil {
		t.Fatalf("first snapshot run failed: %v", err)
	}
	firstCount := len(snapshots.snapshots)
	if firstCount == 0 {
		t.Fatal("expected snapshots to be written")
	}

	if err := svc.SnapshotWeek(context.Background(), familyID, window); err != nil {
		t.Fatalf("second snapshot run failed: %v", err)
	}
	if len(snapshots.snapshots) != firstCount {
		t.Errorf("second run should not add snapshots: had %d, now %d", firstCount, len(snapshots.snapshots))
	}
}
