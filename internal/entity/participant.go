package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Family struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

const (
	RoleParent = "parent"
	RoleChild  = "child"
)

// Participant is a family member taking part in the gamification economy.
// CoinBalance and ExperienceTotal are the authoritative counters mutated by
// the reward and champion flows.
type Participant struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID        uuid.UUID `gorm:"type:uuid;index;not null" json:"family_id"`
	Family          Family    `gorm:"foreignKey:FamilyID" json:"-"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Role            string    `gorm:"size:20;default:child" json:"role"`
	AvatarURL       *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	Level           int       `gorm:"default:1" json:"level"`
	CoinBalance     int       `gorm:"default:0" json:"coin_balance"`
	ExperienceTotal int       `gorm:"default:0" json:"experience_total"`
	PasswordHash    string    `gorm:"size:255" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a bidirectional edge; an accepted row connects both
// participants regardless of which side requested it.
type Friendship struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;index:idx_friend_pair,unique,priority:1;not null" json:"requester_id"`
	AddresseeID uuid.UUID `gorm:"type:uuid;index:idx_friend_pair,unique,priority:2;not null" json:"addressee_id"`
	Status      string    `gorm:"size:20;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
