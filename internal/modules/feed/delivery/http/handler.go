package http

import (
	"net/http"
	"strconv"

	feedService "github.com/famquest/famquest-backend/internal/modules/feed/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	"github.com/famquest/famquest-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const defaultFeedLimit = 20

type FeedHandler struct {
	service         feedService.FeedService
	participantRepo participantRepo.ParticipantRepository
}

func NewFeedHandler(service feedService.FeedService, participantRepo participantRepo.ParticipantRepository) *FeedHandler {
	return &FeedHandler{service: service, participantRepo: participantRepo}
}

// GetFeed lists the caller's family activity feed, newest first.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	participant, err := h.participantRepo.FindByID(c.Request.Context(), participantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedLimit)))
	if limit <= 0 || limit > 100 {
		limit = defaultFeedLimit
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	events, err := h.service.GetFeed(c.Request.Context(), participant.FamilyID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}
