package scheduler

import (
	"context"
	"log"
	"time"

	championService "github.com/famquest/famquest-backend/internal/modules/champion/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the weekly maintenance batch: snapshot last week's
// leaderboards, then detect and reward champions, family by family.
type Scheduler struct {
	cron            *cron.Cron
	ranking         rankingService.RankingService
	champion        championService.ChampionService
	participantRepo participantRepo.ParticipantRepository
}

func New(ranking rankingService.RankingService, champion championService.ChampionService, participantRepo participantRepo.ParticipantRepository) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		ranking:         ranking,
		champion:        champion,
		participantRepo: participantRepo,
	}
}

// Register schedules the weekly batch with the given cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Println("🏆 Starting weekly champion batch...")
		if err := s.RunWeeklyBatch(context.Background()); err != nil {
			log.Printf("❌ Weekly champion batch failed: %v", err)
		} else {
			log.Println("✅ Weekly champion batch completed")
		}
	})
	return err
}

// RunWeeklyBatch processes every family. A family failure is logged and the
// batch moves on; champion processing is idempotent so a partial run can
// safely be repeated.
func (s *Scheduler) RunWeeklyBatch(ctx context.Context) error {
	familyIDs, err := s.participantRepo.ListFamilyIDs(ctx)
	if err != nil {
		return err
	}

	window := rankingService.PreviousWeek(time.Now())
	for _, familyID := range familyIDs {
		if err := s.ranking.SnapshotWeek(ctx, familyID, window); err != nil {
			log.Printf("snapshot failed for family=%s: %v", familyID, err)
		}
		if err := s.champion.ProcessChampions(ctx, familyID); err != nil {
			log.Printf("champion processing failed for family=%s: %v", familyID, err)
		}
	}

	log.Printf("weekly batch processed %d families", len(familyIDs))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("🚀 Weekly scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("🛑 Weekly scheduler stopped")
}
