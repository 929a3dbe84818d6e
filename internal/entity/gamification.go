package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChampionRecord marks a participant as the weekly winner for one
// (scope, category). The composite unique index is the idempotency key:
// the champion processor inserts with ON CONFLICT DO NOTHING and treats a
// conflict as "already rewarded".
type ChampionRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FamilyID      uuid.UUID `gorm:"type:uuid;index:idx_champion_key,unique,priority:1;not null" json:"family_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index:idx_champion_key,unique,priority:2;not null" json:"participant_id"`
	Scope         string    `gorm:"size:30;index:idx_champion_key,unique,priority:3;not null" json:"scope"`
	Category      string    `gorm:"size:30;index:idx_champion_key,unique,priority:4;not null" json:"category"`
	WeekStart     time.Time `gorm:"index:idx_champion_key,unique,priority:5;not null" json:"week_start"`
	Score         int       `gorm:"not null" json:"score"`
	Reward        string    `gorm:"type:jsonb" json:"reward"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// RankSnapshot freezes one computed leaderboard for historical display.
// At most one snapshot per (family, scope, category, week_start).
type RankSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"type:uuid;index:idx_snapshot_key,unique,priority:1;not null" json:"family_id"`
	Scope     string    `gorm:"size:30;index:idx_snapshot_key,unique,priority:2;not null" json:"scope"`
	Category  string    `gorm:"size:30;index:idx_snapshot_key,unique,priority:3;not null" json:"category"`
	WeekStart time.Time `gorm:"index:idx_snapshot_key,unique,priority:4;not null" json:"week_start"`
	Entries   string    `gorm:"type:jsonb" json:"entries"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Achievement is an append-only record of a one-time award. The XP bonus has
// already been applied to the participant counter once the row exists.
type Achievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index;not null" json:"participant_id"`
	Code          string    `gorm:"size:80;not null" json:"code"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	XPBonus       int       `gorm:"default:0" json:"xp_bonus"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FeedEvent is one entry on the family activity feed.
type FeedEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FamilyID      uuid.UUID `gorm:"type:uuid;index;not null" json:"family_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index;not null" json:"participant_id"`
	Type          string    `gorm:"size:50;not null" json:"type"`
	Message       string    `gorm:"type:text" json:"message"`
	Payload       string    `gorm:"type:jsonb" json:"payload"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
