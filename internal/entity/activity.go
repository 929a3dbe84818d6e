package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskPending  = "pending"
	TaskApproved = "approved"
	TaskRejected = "rejected"
)

// TaskCompletion is one submitted chore. Immutable once approved; the engine
// only ever reads these.
type TaskCompletion struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index:idx_task_participant_date,priority:1;not null" json:"participant_id"`
	FamilyID      uuid.UUID `gorm:"type:uuid;index;not null" json:"family_id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Status        string    `gorm:"size:20;default:pending;index" json:"status"`
	CoinReward    int       `gorm:"default:0" json:"coin_reward"`
	SubmittedAt   time.Time `gorm:"index:idx_task_participant_date,priority:2;not null" json:"submitted_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
}

const (
	CoinEarned = "earned"
	CoinSpent  = "spent"
)

// CoinTransaction is the audit trail for every balance mutation.
type CoinTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index:idx_coin_participant_date,priority:1;not null" json:"participant_id"`
	Type          string    `gorm:"size:20;not null" json:"type"`
	Amount        int       `gorm:"not null" json:"amount"`
	Reason        string    `gorm:"size:100" json:"reason"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_coin_participant_date,priority:2" json:"created_at"`
}

const (
	PromotedOpen      = "open"
	PromotedCompleted = "completed"
)

// PromotedTask is an externally brokered, paid chore (e.g. posted by a
// neighbour). Only completed ones count toward promoted earnings.
type PromotedTask struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParticipantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"participant_id"`
	Title         string     `gorm:"size:200" json:"title"`
	OfferedAmount int        `gorm:"not null" json:"offered_amount"`
	Status        string     `gorm:"size:20;default:open" json:"status"`
	CompletedAt   *time.Time `gorm:"index" json:"completed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// CareInteraction is one interaction with the family companion (feeding,
// petting, playing). Any interaction counts once toward the care score.
type CareInteraction struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index:idx_care_participant_date,priority:1;not null" json:"participant_id"`
	Kind          string    `gorm:"size:50" json:"kind"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_care_participant_date,priority:2" json:"created_at"`
}
