package response

import (
	"log"
	"net/http"

	"github.com/famquest/famquest-backend/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetParticipantID retrieves the authenticated participant ID from the context
func GetParticipantID(c *gin.Context) (uuid.UUID, error) {
	idStr, exists := c.Get("participant_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	participantID, err := uuid.Parse(idStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return participantID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
