package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProductSpin = "spin"
	ProductPack = "pack"
)

// DailyAllowance tracks how many draws a participant has left for one
// product type today. LastGrantDate is a UTC calendar date; when it is
// older than today the row is refilled before the next draw.
type DailyAllowance struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ParticipantID     uuid.UUID `gorm:"type:uuid;index:idx_allowance_key,unique,priority:1;not null" json:"participant_id"`
	Product           string    `gorm:"size:20;index:idx_allowance_key,unique,priority:2;not null" json:"product"`
	LastGrantDate     time.Time `gorm:"not null" json:"last_grant_date"`
	UnitsAvailable    int       `gorm:"default:0" json:"units_available"`
	LifetimeUnitsUsed int       `gorm:"default:0" json:"lifetime_units_used"`
}

// CollectionEntry is one owned collectible. The unique pair index is what
// makes duplicate detection cheap.
type CollectionEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParticipantID  uuid.UUID `gorm:"type:uuid;index:idx_collection_key,unique,priority:1;not null" json:"participant_id"`
	ItemID         string    `gorm:"size:80;index:idx_collection_key,unique,priority:2;not null" json:"item_id"`
	Rarity         string    `gorm:"size:20;not null" json:"rarity"`
	PremiumVariant bool      `gorm:"default:false" json:"premium_variant"`
	ObtainedAt     time.Time `gorm:"autoCreateTime" json:"obtained_at"`
}
