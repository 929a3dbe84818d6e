package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/famquest/famquest-backend/internal/entity"
	championService "github.com/famquest/famquest-backend/internal/modules/champion/service"
	economyService "github.com/famquest/famquest-backend/internal/modules/economy/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	rewardDto "github.com/famquest/famquest-backend/internal/modules/reward/dto"
	rewardRepo "github.com/famquest/famquest-backend/internal/modules/reward/repository"
	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/google/uuid"
)

type RewardService interface {
	DrawSpin(ctx context.Context, participantID uuid.UUID) (*rewardDto.SpinResult, error)
	OpenPack(ctx context.Context, participantID uuid.UUID, packID string) (*rewardDto.PackResult, error)
	GetCollection(ctx context.Context, participantID uuid.UUID) ([]entity.CollectionEntry, error)
}

type rewardService struct {
	allowanceRepo   rewardRepo.AllowanceRepository
	participantRepo participantRepo.ParticipantRepository
	champion        championService.ChampionService
	economy         economyService.EconomyService
	spin            SpinConfig
	packs           []PackConfig
	catalog         []CollectibleItem
	rng             RandSource
	now             rankingService.Clock
}

func NewRewardService(
	allowanceRepo rewardRepo.AllowanceRepository,
	participantRepo participantRepo.ParticipantRepository,
	champion championService.ChampionService,
	economy economyService.EconomyService,
	spin SpinConfig,
	packs []PackConfig,
	catalog []CollectibleItem,
	rng RandSource,
	now rankingService.Clock,
) RewardService {
	if now == nil {
		now = time.Now
	}
	return &rewardService{
		allowanceRepo:   allowanceRepo,
		participantRepo: participantRepo,
		champion:        champion,
		economy:         economy,
		spin:            spin,
		packs:           packs,
		catalog:         catalog,
		rng:             rng,
		now:             now,
	}
}

func (s *rewardService) DrawSpin(ctx context.Context, participantID uuid.UUID) (*rewardDto.SpinResult, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	// 1. Load or refill today's allowance
	allowance, err := s.allowanceRepo.Find(ctx, participantID, entity.ProductSpin)
	if err != nil {
		return nil, err
	}
	if allowance == nil {
		allowance = &entity.DailyAllowance{
			ParticipantID:  participantID,
			Product:        entity.ProductSpin,
			LastGrantDate:  today,
			UnitsAvailable: s.dailyGrant(ctx, participantID),
		}
		if err := s.allowanceRepo.Save(ctx, allowance); err != nil {
			return nil, err
		}
	} else if allowance.LastGrantDate.Before(today) {
		allowance.LastGrantDate = today
		allowance.UnitsAvailable = s.dailyGrant(ctx, participantID)
		if err := s.allowanceRepo.Save(ctx, allowance); err != nil {
			return nil, err
		}
	}

	// 2. Take the unit with a conditional decrement; a concurrent draw
	// racing for the last unit loses here instead of double-spending it.
	consumed, err := s.allowanceRepo.ConsumeUnit(ctx, participantID, entity.ProductSpin)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, apperror.ErrNoSpinsAvailable
	}
	allowance.UnitsAvailable--
	allowance.LifetimeUnitsUsed++

	// 3. Draw
	weights := make([]float64, len(s.spin.Outcomes))
	for i, o := range s.spin.Outcomes {
		weights[i] = o.Weight
	}
	outcome := s.spin.Outcomes[drawWeighted(s.rng.Float64()*100, weights)]

	// 4. Apply the payload; fail closed on mutation failure by restoring the
	// consumed unit before surfacing the error.
	if err := s.applyPayload(ctx, participantID, outcome.Payload); err != nil {
		log.Printf("[ERROR] spin reward application failed for participant=%s payload=%s/%d: %v",
			participantID, outcome.Payload.Kind, outcome.Payload.Amount, err)
		allowance.UnitsAvailable++
		allowance.LifetimeUnitsUsed--
		if restoreErr := s.allowanceRepo.RestoreUnit(ctx, participantID, entity.ProductSpin); restoreErr != nil {
			log.Printf("[ERROR] spin refund failed for participant=%s: %v", participantID, restoreErr)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrRewardMutation, err)
	}

	return &rewardDto.SpinResult{
		Label:          outcome.Label,
		Kind:           string(outcome.Payload.Kind),
		Amount:         outcome.Payload.Amount,
		SpecialEffect:  outcome.SpecialEffect,
		UnitsRemaining: allowance.UnitsAvailable,
	}, nil
}

func (s *rewardService) dailyGrant(ctx context.Context, participantID uuid.UUID) int {
	grant := s.spin.DailyGrant
	isChampion, err := s.champion.IsCurrentChampion(ctx, participantID)
	if err != nil {
		log.Printf("champion lookup failed for participant=%s, using base grant: %v", participantID, err)
		return grant
	}
	if isChampion {
		grant = s.spin.ChampionDailyGrant
	}
	return grant
}

func (s *rewardService) applyPayload(ctx context.Context, participantID uuid.UUID, payload RewardPayload) error {
	switch payload.Kind {
	case PayloadCoins:
		return s.participantRepo.AdjustCoins(ctx, participantID, payload.Amount, "spin_reward")
	case PayloadExperience:
		return s.participantRepo.AdjustExperience(ctx, participantID, payload.Amount)
	case PayloadDoubleBonus:
		// Paid out immediately as a flat bonus rather than doubling the next
		// draw.
		return s.participantRepo.AdjustCoins(ctx, participantID, payload.Amount, "spin_double_bonus")
	default:
		return fmt.Errorf("unknown payload kind %q", payload.Kind)
	}
}

func (s *rewardService) OpenPack(ctx context.Context, participantID uuid.UUID, packID string) (*rewardDto.PackResult, error) {
	pack := s.findPack(packID)
	if pack == nil {
		return nil, apperror.ErrUnknownProduct
	}
	if len(s.catalog) == 0 {
		log.Printf("[ERROR] collectible catalog is empty, refusing pack %s", pack.ID)
		return nil, fmt.Errorf("%w: collectible catalog is empty", apperror.ErrRewardMutation)
	}

	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	// 1. Price with the live inflation correction
	correction, err := s.economy.CurrentCorrection(ctx, participant.FamilyID)
	if err != nil {
		log.Printf("pricing correction lookup failed for family=%s, using base cost: %v", participant.FamilyID, err)
		correction = 1.0
	}
	cost := economyService.ApplyDynamicPricing(pack.BaseCost, correction)

	// 2. Deduct the cost first; recoverable order is deduct, record, apply
	if err := s.participantRepo.AdjustCoins(ctx, participantID, -cost, "pack:"+pack.ID); err != nil {
		return nil, err
	}

	result := &rewardDto.PackResult{
		PackID:   pack.ID,
		CostPaid: cost,
		Items:    make([]rewardDto.PackItemResult, 0, pack.Size),
	}

	// 3. Draw and apply each item. A failed mutation mid-pack is fatal:
	// refund the cost and fail closed.
	guaranteedAwarded := pack.GuaranteedRarity == ""
	for i := 0; i < pack.Size; i++ {
		rarity := s.drawRarity(pack, guaranteedAwarded)
		if rarity == pack.GuaranteedRarity {
			guaranteedAwarded = true
		}

		item := s.pickItem(rarity)
		premium := rarity == RarityLegendary || s.rng.Float64() < premiumVariantChance

		itemResult, err := s.awardItem(ctx, participantID, item, premium)
		if err != nil {
			log.Printf("[ERROR] pack item award failed for participant=%s pack=%s item=%s (%d/%d granted): %v",
				participantID, pack.ID, item.ID, len(result.Items), pack.Size, err)
			if refundErr := s.participantRepo.AdjustCoins(ctx, participantID, cost, "pack_refund:"+pack.ID); refundErr != nil {
				log.Printf("[ERROR] pack refund failed for participant=%s pack=%s: %v", participantID, pack.ID, refundErr)
			}
			return nil, fmt.Errorf("%w: %v", apperror.ErrRewardMutation, err)
		}
		result.Items = append(result.Items, itemResult)
	}

	return result, nil
}

func (s *rewardService) findPack(packID string) *PackConfig {
	for i := range s.packs {
		if s.packs[i].ID == packID {
			return &s.packs[i]
		}
	}
	return nil
}

func (s *rewardService) drawRarity(pack *PackConfig, guaranteedAwarded bool) string {
	if !guaranteedAwarded && s.rng.Float64() < guaranteedForceChance {
		return pack.GuaranteedRarity
	}

	weights := make([]float64, len(pack.RarityWeights))
	for i, rw := range pack.RarityWeights {
		weights[i] = rw.Weight
	}
	return pack.RarityWeights[drawWeighted(s.rng.Float64()*100, weights)].Rarity
}

// pickItem selects uniformly from the catalog subset matching the rarity.
// An empty subset means the catalog drifted from the pack config; fall back
// to the first catalog entry so the draw still resolves.
func (s *rewardService) pickItem(rarity string) CollectibleItem {
	matching := make([]CollectibleItem, 0, len(s.catalog))
	for _, item := range s.catalog {
		if item.Rarity == rarity {
			matching = append(matching, item)
		}
	}
	if len(matching) == 0 {
		log.Printf("[WARN] no catalog items for rarity %q, falling back to first entry", rarity)
		return s.catalog[0]
	}
	return matching[s.rng.Intn(len(matching))]
}

func (s *rewardService) awardItem(ctx context.Context, participantID uuid.UUID, item CollectibleItem, premium bool) (rewardDto.PackItemResult, error) {
	owned, err := s.participantRepo.HasCollectible(ctx, participantID, item.ID)
	if err != nil {
		return rewardDto.PackItemResult{}, err
	}

	if owned {
		// Duplicate: compensate with coins instead of a second entry
		if err := s.participantRepo.AdjustCoins(ctx, participantID, duplicateCompensation, "duplicate_compensation:"+item.ID); err != nil {
			return rewardDto.PackItemResult{}, err
		}
		return rewardDto.PackItemResult{
			ItemID:            item.ID,
			Name:              item.Name,
			Rarity:            item.Rarity,
			PremiumVariant:    premium,
			IsDuplicate:       true,
			CompensationCoins: duplicateCompensation,
		}, nil
	}

	if err := s.participantRepo.AddCollectible(ctx, &entity.CollectionEntry{
		ParticipantID:  participantID,
		ItemID:         item.ID,
		Rarity:         item.Rarity,
		PremiumVariant: premium,
	}); err != nil {
		return rewardDto.PackItemResult{}, err
	}

	return rewardDto.PackItemResult{
		ItemID:         item.ID,
		Name:           item.Name,
		Rarity:         item.Rarity,
		PremiumVariant: premium,
	}, nil
}

func (s *rewardService) GetCollection(ctx context.Context, participantID uuid.UUID) ([]entity.CollectionEntry, error) {
	return s.participantRepo.ListCollection(ctx, participantID)
}
