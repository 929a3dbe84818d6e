package service

import (
	"context"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	economyRepo "github.com/famquest/famquest-backend/internal/modules/economy/repository"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	"github.com/google/uuid"
)

// Dashboard is the admin-facing view of one family economy.
type Dashboard struct {
	Metrics             EconomicMetrics `json:"metrics"`
	Health              EconomicHealth  `json:"health"`
	InflationCorrection float64         `json:"inflation_correction"`
	ActivePointSinks    []PointSink     `json:"active_point_sinks"`
}

type EconomyService interface {
	// ComputeMetrics measures currency flow for the given window.
	ComputeMetrics(ctx context.Context, familyID uuid.UUID, window rankingService.Window) (EconomicMetrics, error)
	// CurrentCorrection returns the live price multiplier for a family.
	CurrentCorrection(ctx context.Context, familyID uuid.UUID) (float64, error)
	// GetDashboard assembles health, correction and the point-sink catalog
	// filtered for the given participant level.
	GetDashboard(ctx context.Context, familyID uuid.UUID, participantLevel int) (*Dashboard, error)
}

type economyService struct {
	repo    economyRepo.EconomyRepository
	pricing DynamicPricingConfig
	sinks   []PointSink
	now     rankingService.Clock
}

func NewEconomyService(repo economyRepo.EconomyRepository, pricing DynamicPricingConfig, sinks []PointSink, now rankingService.Clock) EconomyService {
	if now == nil {
		now = time.Now
	}
	return &economyService{
		repo:    repo,
		pricing: pricing,
		sinks:   sinks,
		now:     now,
	}
}

func (s *economyService) ComputeMetrics(ctx context.Context, familyID uuid.UUID, window rankingService.Window) (EconomicMetrics, error) {
	avg, err := s.repo.AverageFamilyBalance(ctx, familyID)
	if err != nil {
		return EconomicMetrics{}, err
	}
	earned, err := s.repo.SumFamilyTransactions(ctx, familyID, entity.CoinEarned, window.Start, window.End)
	if err != nil {
		return EconomicMetrics{}, err
	}
	spent, err := s.repo.SumFamilyTransactions(ctx, familyID, entity.CoinSpent, window.Start, window.End)
	if err != nil {
		return EconomicMetrics{}, err
	}

	// Share of this window's earnings that was not drained back out.
	inflationRate := 0.0
	if earned > 0 {
		inflationRate = float64(earned-spent) / float64(earned) * 100
	}

	return EconomicMetrics{
		AverageBalance: avg,
		TotalEarned:    earned,
		TotalSpent:     spent,
		InflationRate:  inflationRate,
	}, nil
}

func (s *economyService) CurrentCorrection(ctx context.Context, familyID uuid.UUID) (float64, error) {
	metrics, err := s.ComputeMetrics(ctx, familyID, rankingService.CurrentWeek(s.now()))
	if err != nil {
		return 1.0, err
	}
	return InflationCorrection(metrics, s.pricing), nil
}

func (s *economyService) GetDashboard(ctx context.Context, familyID uuid.UUID, participantLevel int) (*Dashboard, error) {
	metrics, err := s.ComputeMetrics(ctx, familyID, rankingService.CurrentWeek(s.now()))
	if err != nil {
		return nil, err
	}

	correction := InflationCorrection(metrics, s.pricing)
	sinks := AvailablePointSinks(s.sinks, participantLevel, s.now())

	// Display corrected prices so the UI never recomputes them
	priced := make([]PointSink, len(sinks))
	for i, sink := range sinks {
		priced[i] = sink
		priced[i].Cost = ApplyDynamicPricing(sink.Cost, correction)
	}

	return &Dashboard{
		Metrics:             metrics,
		Health:              ComputeEconomicHealth(metrics),
		InflationCorrection: correction,
		ActivePointSinks:    priced,
	}, nil
}
