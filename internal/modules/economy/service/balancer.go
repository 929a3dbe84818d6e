package service

import "math"

// EconomicMetrics is one window's currency-flow measurement for a family.
type EconomicMetrics struct {
	AverageBalance int     `json:"average_balance"`
	TotalEarned    int     `json:"total_earned"`
	TotalSpent     int     `json:"total_spent"`
	InflationRate  float64 `json:"inflation_rate"`
}

// DynamicPricingConfig tunes the closed-loop price controller.
type DynamicPricingConfig struct {
	Threshold      int
	MaxCorrection  float64
	CorrectionStep float64
}

const (
	HealthHealthy  = "healthy"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

type EconomicHealth struct {
	Score           int      `json:"score"`
	Status          string   `json:"status"`
	Recommendations []string `json:"recommendations"`
}

// InflationCorrection returns the price multiplier for the current economy.
// Balances at or under the threshold need no correction; every additional
// full threshold of average balance adds one correction step, capped at
// MaxCorrection.
func InflationCorrection(metrics EconomicMetrics, cfg DynamicPricingConfig) float64 {
	if cfg.Threshold <= 0 || metrics.AverageBalance <= cfg.Threshold {
		return 1.0
	}

	thresholdBreaches := metrics.AverageBalance/cfg.Threshold - 1
	correction := 1 + float64(thresholdBreaches)*cfg.CorrectionStep
	if correction > cfg.MaxCorrection {
		return cfg.MaxCorrection
	}
	return correction
}

// ApplyDynamicPricing scales a base cost by the correction, rounding up so
// corrections never lower a price.
func ApplyDynamicPricing(baseCost int, correction float64) int {
	return int(math.Ceil(float64(baseCost) * correction))
}

// ComputeEconomicHealth scores the economy from 100 down. Every triggered
// condition appends its own recommendation; conditions are independent, not
// mutually exclusive.
func ComputeEconomicHealth(metrics EconomicMetrics) EconomicHealth {
	score := 100
	var recommendations []string

	if metrics.InflationRate > 20 {
		score -= 30
		recommendations = append(recommendations, "Inflation is high: raise reward prices or add new point sinks.")
	} else if metrics.InflationRate > 10 {
		score -= 15
		recommendations = append(recommendations, "Inflation is creeping up: consider a seasonal point sink.")
	}

	ratio := 0.0
	if metrics.TotalEarned > 0 {
		ratio = float64(metrics.TotalSpent) / float64(metrics.TotalEarned)
	}
	if ratio < 0.3 {
		score -= 25
		recommendations = append(recommendations, "Coins are piling up: make rewards more attractive to encourage spending.")
	} else if ratio < 0.6 {
		score -= 10
		recommendations = append(recommendations, "Spending lags earning: promote the reward catalog.")
	}

	if metrics.AverageBalance > 1000 {
		score -= 20
		recommendations = append(recommendations, "Average balances are very high: dynamic pricing is likely active.")
	} else if metrics.AverageBalance > 500 {
		score -= 10
		recommendations = append(recommendations, "Average balances are above target: watch the inflation rate.")
	}

	status := HealthCritical
	switch {
	case score >= 80:
		status = HealthHealthy
	case score >= 60:
		status = HealthWarning
	}

	return EconomicHealth{Score: score, Status: status, Recommendations: recommendations}
}
