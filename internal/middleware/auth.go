package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/database"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// RequireAuth checks the session and resolves the acting user from the
// database. The actor is loaded fresh on every request; permissions are never
// cached across requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		id, ok := toUint64(userID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var actor models.User
		if err := database.GetDB().First(&actor, id).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if actor.Status != models.UserStatusActive {
			apierrors.Forbidden(c, "Account is pending approval")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, actor.ID)
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetActor retrieves the acting user loaded by RequireAuth
func GetActor(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return models.User{}, false
	}

	actor, ok := value.(models.User)
	return actor, ok
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
