package http

import (
	"net/http"

	championService "github.com/famquest/famquest-backend/internal/modules/champion/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	"github.com/famquest/famquest-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChampionHandler struct {
	service         championService.ChampionService
	participantRepo participantRepo.ParticipantRepository
}

func NewChampionHandler(service championService.ChampionService, participantRepo participantRepo.ParticipantRepository) *ChampionHandler {
	return &ChampionHandler{service: service, participantRepo: participantRepo}
}

// ProcessChampions is the admin re-run trigger; the weekly cron job calls
// the same service path.
func (h *ChampionHandler) ProcessChampions(c *gin.Context) {
	familyID, err := uuid.Parse(c.Param("family_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid family id"})
		return
	}

	if err := h.service.ProcessChampions(c.Request.Context(), familyID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "champion processing completed"})
}

// GetChampionStatus reports whether the caller holds a current championship
// (drives the cosmetic crown effect).
func (h *ChampionHandler) GetChampionStatus(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	isChampion, err := h.service.IsCurrentChampion(c.Request.Context(), participantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"is_champion": isChampion}})
}
