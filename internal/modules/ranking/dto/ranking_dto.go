package dto

import (
	"time"

	"github.com/google/uuid"
)

// RankEntry is a single row of a computed leaderboard.
// Rank is 1-based; ties keep their resolution order and still get
// consecutive distinct ranks.
type RankEntry struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Score         int       `json:"score"`
	Rank          int       `json:"rank"`
	Tier          string    `json:"tier"`
	Title         string    `json:"title"`
}

type RankingResult struct {
	Scope       string      `json:"scope"`
	Category    string      `json:"category"`
	WindowStart time.Time   `json:"window_start"`
	WindowEnd   time.Time   `json:"window_end"`
	Entries     []RankEntry `json:"entries"`
}

type LeaderboardQuery struct {
	Scope    string `form:"scope" binding:"required,oneof=family friends promotedActivity"`
	Category string `form:"category" binding:"required,oneof=experience tasksCompleted promotedEarnings streak careInteractions"`
}
