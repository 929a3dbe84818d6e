package service

const (
	TierDiamond = "diamond"
	TierGold    = "gold"
	TierSilver  = "silver"
	TierBronze  = "bronze"
)

// GetTierFromRank maps a 1-based rank inside a cohort to a coarse tier.
// percentile = (cohortSize - rank + 1) / cohortSize, so rank 1 in any cohort
// is diamond and last place in a cohort larger than two is bronze (a pair
// cohort lands its runner-up exactly on the 0.5 silver boundary).
func GetTierFromRank(rank, cohortSize int) string {
	if cohortSize < 1 {
		cohortSize = 1
	}
	percentile := float64(cohortSize-rank+1) / float64(cohortSize)

	switch {
	case percentile >= 0.9:
		return TierDiamond
	case percentile >= 0.7:
		return TierGold
	case percentile >= 0.5:
		return TierSilver
	default:
		return TierBronze
	}
}

// Category-specific titles per tier. Unknown categories fall back to the
// generic "Helper" title rather than erroring.
var tierTitles = map[string]map[string]string{
	TierDiamond: {
		CategoryExperience:       "XP Legend",
		CategoryTasksCompleted:   "Chore Champion",
		CategoryPromotedEarnings: "Top Earner",
		CategoryStreak:           "Streak Master",
		CategoryCareInteractions: "Best Caretaker",
	},
	TierGold: {
		CategoryExperience:       "XP Collector",
		CategoryTasksCompleted:   "Busy Bee",
		CategoryPromotedEarnings: "Go-Getter",
		CategoryStreak:           "Streak Keeper",
		CategoryCareInteractions: "Caring Friend",
	},
	TierSilver: {
		CategoryExperience:       "XP Gatherer",
		CategoryTasksCompleted:   "Task Tackler",
		CategoryPromotedEarnings: "Side Hustler",
		CategoryStreak:           "Getting Going",
		CategoryCareInteractions: "Kind Helper",
	},
	TierBronze: {
		CategoryExperience:       "XP Starter",
		CategoryTasksCompleted:   "Fresh Start",
		CategoryPromotedEarnings: "First Steps",
		CategoryStreak:           "Warming Up",
		CategoryCareInteractions: "New Friend",
	},
}

const genericTitle = "Helper"

func GetTitle(tier, category string) string {
	if titles, ok := tierTitles[tier]; ok {
		if title, ok := titles[category]; ok {
			return title
		}
	}
	return genericTitle
}
