package service

import (
	"log"
	"math/rand"
	"sync"
)

// Reward payloads are a tagged variant: exactly one kind per outcome, each
// kind using only the fields that apply to it.
type PayloadKind string

const (
	PayloadCoins      PayloadKind = "coins"
	PayloadExperience PayloadKind = "experience"
	// PayloadDoubleBonus is paid out immediately as a flat coin bonus; it is
	// not a deferred next-draw multiplier.
	PayloadDoubleBonus PayloadKind = "doubleBonus"
)

type RewardPayload struct {
	Kind   PayloadKind `json:"kind"`
	Amount int         `json:"amount"`
}

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// SpinOutcome is one slice of the daily wheel. Weights are relative and
// need not sum to exactly 100.
type SpinOutcome struct {
	Label         string        `json:"label"`
	Payload       RewardPayload `json:"payload"`
	Weight        float64       `json:"weight"`
	SpecialEffect bool          `json:"special_effect"`
}

type SpinConfig struct {
	Outcomes           []SpinOutcome
	DailyGrant         int
	ChampionDailyGrant int
}

type RarityWeight struct {
	Rarity string
	Weight float64
}

// PackConfig describes one purchasable collectible pack.
type PackConfig struct {
	ID               string
	Name             string
	BaseCost         int
	Size             int
	RarityWeights    []RarityWeight
	GuaranteedRarity string // empty means no guarantee
}

type CollectibleItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

const (
	guaranteedForceChance = 0.30
	premiumVariantChance  = 0.10
	duplicateCompensation = 25
)

// RandSource is the injected randomness for every draw. *rand.Rand
// satisfies it; tests inject a seeded source.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand guards a *rand.Rand for concurrent handler use.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRand(seed int64) RandSource {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// drawWeighted walks the cumulative weights for a roll in [0, 100) and
// returns the first index whose cumulative weight covers the roll. A roll
// beyond the total (weights not summing to 100) falls back to index 0.
func drawWeighted(roll float64, weights []float64) int {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= roll {
			return i
		}
	}
	log.Printf("[WARN] weighted draw fell through (roll=%.2f total=%.2f), falling back to first entry", roll, cumulative)
	return 0
}
