package http

import (
	"net/http"
	"time"

	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	rankingDto "github.com/famquest/famquest-backend/internal/modules/ranking/dto"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"
	"github.com/famquest/famquest-backend/pkg/response"
	"github.com/famquest/famquest-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service         rankingService.RankingService
	participantRepo participantRepo.ParticipantRepository
}

func NewLeaderboardHandler(service rankingService.RankingService, participantRepo participantRepo.ParticipantRepository) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, participantRepo: participantRepo}
}

// GetLeaderboard computes the current-week leaderboard for the caller's
// family. The friends scope is anchored on the caller.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query rankingDto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	participant, err := h.participantRepo.FindByID(c.Request.Context(), participantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	q := rankingService.RankingQuery{
		FamilyID: participant.FamilyID,
		Scope:    query.Scope,
		Category: query.Category,
		Window:   rankingService.CurrentWeek(time.Now()),
	}
	if query.Scope == rankingService.ScopeFriends {
		q.AnchorID = &participantID
	}

	result, err := h.service.ComputeRanking(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
