package dto

// SpinResult is the outcome of one wheel draw.
type SpinResult struct {
	Label          string `json:"label"`
	Kind           string `json:"kind"`
	Amount         int    `json:"amount"`
	SpecialEffect  bool   `json:"special_effect"`
	UnitsRemaining int    `json:"units_remaining"`
}

// PackItemResult is one drawn collectible. A duplicate carries the coin
// compensation instead of a new collection entry.
type PackItemResult struct {
	ItemID            string `json:"item_id"`
	Name              string `json:"name"`
	Rarity            string `json:"rarity"`
	PremiumVariant    bool   `json:"premium_variant"`
	IsDuplicate       bool   `json:"is_duplicate"`
	CompensationCoins int    `json:"compensation_coins,omitempty"`
}

type PackResult struct {
	PackID   string           `json:"pack_id"`
	CostPaid int              `json:"cost_paid"`
	Items    []PackItemResult `json:"items"`
}
