package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/famquest/famquest-backend/internal/entity"
	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	participantRepo participantRepo.ParticipantRepository
	secret          string
}

func NewAuthMiddleware(participantRepo participantRepo.ParticipantRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		participantRepo: participantRepo,
		secret:          secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set("participant_id", claims.Subject)
		c.Next()
	}
}

// RequireParent gates the admin surface (champion re-runs, dashboards).
func (m *AuthMiddleware) RequireParent() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr, exists := c.Get("participant_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "participant not authenticated"})
			c.Abort()
			return
		}

		participantID, err := uuid.Parse(idStr.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid participant id"})
			c.Abort()
			return
		}

		participant, err := m.participantRepo.FindByID(c.Request.Context(), participantID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "participant not found"})
			c.Abort()
			return
		}

		if participant.Role != entity.RoleParent {
			c.JSON(http.StatusForbidden, gin.H{"error": "parent access required"})
			c.Abort()
			return
		}

		c.Set("participant", participant)
		c.Next()
	}
}
