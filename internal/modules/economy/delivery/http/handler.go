package http

import (
	"net/http"

	economyService "github.com/famquest/famquest-backend/internal/modules/economy/service"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	"github.com/famquest/famquest-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type EconomyHandler struct {
	service         economyService.EconomyService
	participantRepo participantRepo.ParticipantRepository
}

func NewEconomyHandler(service economyService.EconomyService, participantRepo participantRepo.ParticipantRepository) *EconomyHandler {
	return &EconomyHandler{service: service, participantRepo: participantRepo}
}

func (h *EconomyHandler) GetDashboard(c *gin.Context) {
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

	dashboard, err := h.service.GetDashboard(c.Request.Context(), participant.FamilyID, participant.Level)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dashboard})
}
