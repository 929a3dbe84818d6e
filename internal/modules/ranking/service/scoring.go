package service

import (
	"context"
	"time"

	rankingRepo "github.com/famquest/famquest-backend/internal/modules/ranking/repository"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
)

const (
	CategoryExperience       = "experience"
	CategoryTasksCompleted   = "tasksCompleted"
	CategoryPromotedEarnings = "promotedEarnings"
	CategoryStreak           = "streak"
	CategoryCareInteractions = "careInteractions"

	ScopeFamily           = "family"
	ScopeFriends          = "friends"
	ScopePromotedActivity = "promotedActivity"
)

// Categories and Scopes list every valid value in champion-processing order.
var (
	Categories = []string{
		CategoryExperience,
		CategoryTasksCompleted,
		CategoryPromotedEarnings,
		CategoryStreak,
		CategoryCareInteractions,
	}
	Scopes = []string{ScopeFamily, ScopeFriends, ScopePromotedActivity}
)

const streakLookbackDays = 7

// Clock supplies the current instant; injected so streak scoring is
// deterministic in tests.
type Clock func() time.Time

// Window is an inclusive scoring interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// CurrentWeek returns the Monday-to-Sunday UTC week containing now.
func CurrentWeek(now time.Time) Window {
	now = now.UTC()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(weekday - 1))
	return Window{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// PreviousWeek returns the most recently completed week.
func PreviousWeek(now time.Time) Window {
	current := CurrentWeek(now)
	return Window{Start: current.Start.AddDate(0, 0, -7), End: current.Start.Add(-time.Nanosecond)}
}

// ScoreAggregator computes one participant's score for one category and
// window from raw activity records. Absence of data is a zero score, never
// an error.
type ScoreAggregator struct {
	activity rankingRepo.ActivityRepository
	now      Clock
}

func NewScoreAggregator(activity rankingRepo.ActivityRepository, now Clock) *ScoreAggregator {
	if now == nil {
		now = time.Now
	}
	return &ScoreAggregator{activity: activity, now: now}
}

func (a *ScoreAggregator) Score(ctx context.Context, participantID uuid.UUID, category string, window Window) (int, error) {
	switch category {
	case CategoryExperience:
		return a.activity.SumEarnedCoins(ctx, participantID, window.Start, window.End)
	case CategoryTasksCompleted:
		return a.activity.CountApprovedTasks(ctx, participantID, window.Start, window.End)
	case CategoryPromotedEarnings:
		return a.activity.SumPromotedEarnings(ctx, participantID, window.Start, window.End)
	case CategoryCareInteractions:
		return a.activity.CountCareInteractions(ctx, participantID, window.Start, window.End)
	case CategoryStreak:
		// Streak deliberately ignores the caller's window: it always counts
		// distinct approved-task days in the trailing 7 days from now.
		now := a.now().UTC()
		from := now.AddDate(0, 0, -streakLookbackDays)
		return a.activity.CountApprovedTaskDays(ctx, participantID, from, now)
	default:
		return 0, apperror.ErrInvalidCategory
	}
}
