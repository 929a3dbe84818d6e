package http

import (
	"net/http"

	rewardService "github.com/famquest/famquest-backend/internal/modules/reward/service"
	"github.com/famquest/famquest-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	service rewardService.RewardService
}

func NewRewardHandler(service rewardService.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

func (h *RewardHandler) DrawSpin(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.DrawSpin(c.Request.Context(), participantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *RewardHandler) OpenPack(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	packID := c.Param("pack_id")
	result, err := h.service.OpenPack(c.Request.Context(), participantID, packID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *RewardHandler) GetCollection(c *gin.Context) {
	participantID, err := response.GetParticipantID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	collection, err := h.service.GetCollection(c.Request.Context(), participantID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": collection})
}
