package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/famquest/famquest-backend/internal/entity"
	feedRepo "github.com/famquest/famquest-backend/internal/modules/feed/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type FeedService interface {
	PublishEvent(ctx context.Context, familyID, participantID uuid.UUID, eventType, message string, payload map[string]interface{}) error
	GetFeed(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]entity.FeedEvent, error)
}

type feedService struct {
	repo        feedRepo.FeedRepository
	redisClient *redis.Client
}

func NewFeedService(repo feedRepo.FeedRepository, redisClient *redis.Client) FeedService {
	return &feedService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *feedService) PublishEvent(ctx context.Context, familyID, participantID uuid.UUID, eventType, message string, payload map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &entity.FeedEvent{
		FamilyID:      familyID,
		ParticipantID: participantID,
		Type:          eventType,
		Message:       message,
		Payload:       string(payloadJSON),
	}

	// 1. Save to DB
	if err := s.repo.Create(ctx, event); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available
	if s.redisClient != nil {
		channel := fmt.Sprintf("family_feed:%s", familyID.String())
		if encoded, err := json.Marshal(event); err == nil {
			s.redisClient.Publish(ctx, channel, encoded)
		}
	}

	return nil
}

func (s *feedService) GetFeed(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]entity.FeedEvent, error) {
	return s.repo.ListByFamily(ctx, familyID, limit, offset)
}
