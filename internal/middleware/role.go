package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
)

// RequireCan gates a route on the authorization policy. Record-specific
// checks (ownership, self-reference) still happen in the services; this stops
// obviously unauthorized roles at the door.
func RequireCan(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetActor(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authz.Can(actor.Snapshot(), action, authz.Target{}) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
