package bootstrap

import (
	"time"

	economyService "github.com/famquest/famquest-backend/internal/modules/economy/service"
	rewardService "github.com/famquest/famquest-backend/internal/modules/reward/service"
)

// DefaultSpinConfig is the daily wheel. Weights are relative shares of 100.
func DefaultSpinConfig() rewardService.SpinConfig {
	return rewardService.SpinConfig{
		DailyGrant:         1,
		ChampionDailyGrant: 2,
		Outcomes: []rewardService.SpinOutcome{
			{Label: "5 Coins", Weight: 40, Payload: rewardService.RewardPayload{Kind: rewardService.PayloadCoins, Amount: 5}},
			{Label: "15 Coins", Weight: 25, Payload: rewardService.RewardPayload{Kind: rewardService.PayloadCoins, Amount: 15}},
			{Label: "10 XP", Weight: 20, Payload: rewardService.RewardPayload{Kind: rewardService.PayloadExperience, Amount: 10}},
			{Label: "Double Bonus", Weight: 10, Payload: rewardService.RewardPayload{Kind: rewardService.PayloadDoubleBonus, Amount: 20}},
			{Label: "Jackpot! 100 Coins", Weight: 5, Payload: rewardService.RewardPayload{Kind: rewardService.PayloadCoins, Amount: 100}, SpecialEffect: true},
		},
	}
}

// DefaultPackConfigs lists the purchasable collectible packs.
func DefaultPackConfigs() []rewardService.PackConfig {
	return []rewardService.PackConfig{
		{
			ID:       "starter-pack",
			Name:     "Starter Pack",
			BaseCost: 50,
			Size:     3,
			RarityWeights: []rewardService.RarityWeight{
				{Rarity: rewardService.RarityCommon, Weight: 70},
				{Rarity: rewardService.RarityRare, Weight: 25},
				{Rarity: rewardService.RarityEpic, Weight: 4.5},
				{Rarity: rewardService.RarityLegendary, Weight: 0.5},
			},
		},
		{
			ID:       "premium-pack",
			Name:     "Premium Pack",
			BaseCost: 150,
			Size:     5,
			RarityWeights: []rewardService.RarityWeight{
				{Rarity: rewardService.RarityCommon, Weight: 50},
				{Rarity: rewardService.RarityRare, Weight: 35},
				{Rarity: rewardService.RarityEpic, Weight: 12},
				{Rarity: rewardService.RarityLegendary, Weight: 3},
			},
			GuaranteedRarity: rewardService.RarityRare,
		},
	}
}

// DefaultCollectibleCatalog is the full set of collectible pets.
func DefaultCollectibleCatalog() []rewardService.CollectibleItem {
	return []rewardService.CollectibleItem{
		{ID: "pet-hamster", Name: "Hamster", Rarity: rewardService.RarityCommon},
		{ID: "pet-goldfish", Name: "Goldfish", Rarity: rewardService.RarityCommon},
		{ID: "pet-parakeet", Name: "Parakeet", Rarity: rewardService.RarityCommon},
		{ID: "pet-turtle", Name: "Turtle", Rarity: rewardService.RarityCommon},
		{ID: "pet-bunny", Name: "Bunny", Rarity: rewardService.RarityCommon},
		{ID: "pet-kitten", Name: "Kitten", Rarity: rewardService.RarityRare},
		{ID: "pet-puppy", Name: "Puppy", Rarity: rewardService.RarityRare},
		{ID: "pet-hedgehog", Name: "Hedgehog", Rarity: rewardService.RarityRare},
		{ID: "pet-ferret", Name: "Ferret", Rarity: rewardService.RarityRare},
		{ID: "pet-owl", Name: "Owl", Rarity: rewardService.RarityEpic},
		{ID: "pet-fox", Name: "Fox", Rarity: rewardService.RarityEpic},
		{ID: "pet-red-panda", Name: "Red Panda", Rarity: rewardService.RarityEpic},
		{ID: "pet-dragon", Name: "Baby Dragon", Rarity: rewardService.RarityLegendary},
		{ID: "pet-unicorn", Name: "Unicorn", Rarity: rewardService.RarityLegendary},
		{ID: "pet-phoenix", Name: "Phoenix", Rarity: rewardService.RarityLegendary},
	}
}

// DefaultPointSinks is the coin-draining reward catalog. Seasonal entries
// are offered by calendar month instead of the active flag.
func DefaultPointSinks() []economyService.PointSink {
	return []economyService.PointSink{
		{ID: "extra-screen-time", Name: "30 min extra screen time", Cost: 40, Category: "privilege", Rarity: "common", Active: true},
		{ID: "pick-dinner", Name: "Pick tonight's dinner", Cost: 60, Category: "privilege", Rarity: "common", Active: true},
		{ID: "movie-night", Name: "Family movie night pick", Cost: 80, Category: "family", Rarity: "rare", Active: true},
		{ID: "skip-chore", Name: "Skip one chore", Cost: 120, Category: "privilege", Rarity: "rare", Active: true, UnlockLevel: 3},
		{ID: "day-trip", Name: "Choose a weekend day trip", Cost: 300, Category: "family", Rarity: "epic", Active: true, UnlockLevel: 5},
		{ID: "sleepover", Name: "Host a sleepover", Cost: 250, Category: "family", Rarity: "epic", Active: true, UnlockLevel: 4},
		{ID: "holiday-cookies", Name: "Holiday cookie baking", Cost: 90, Category: "seasonal", Rarity: "rare",
			SeasonalMonths: []time.Month{time.December, time.January}},
		{ID: "beach-day", Name: "Beach day", Cost: 200, Category: "seasonal", Rarity: "epic", UnlockLevel: 3,
			SeasonalMonths: []time.Month{time.June, time.July, time.August}},
		{ID: "pumpkin-carving", Name: "Pumpkin carving night", Cost: 70, Category: "seasonal", Rarity: "common",
			SeasonalMonths: []time.Month{time.October}},
	}
}
