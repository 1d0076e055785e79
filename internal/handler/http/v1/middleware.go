package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxEmail  = "email"
)

// AuthMiddleware проверяет Bearer JWT и кладет пользователя в контекст
func AuthMiddleware(tokens realtime.TokenParser, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			respondError(c, http.StatusUnauthorized, "authorization required")
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Warn("Invalid token")
			respondError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// RequireRoles пропускает только пользователей с одной из ролей
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "insufficient permissions")
	}
}

func principalFrom(c *gin.Context) service.Principal {
	id, _ := c.Get(ctxUserID)
	userID, _ := id.(uuid.UUID)
	return service.Principal{ID: userID, Role: c.GetString(ctxRole)}
}
