package middleware

import (
	"net/http"

	"github.com/dkhromov/stafftests/internal/actor"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/service"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ResolveActor resolves the session cookie into an Actor once per request.
// Requests without a valid session simply carry no actor; the role gate
// decides whether that matters.
func ResolveActor(authSvc service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		if act, err := authSvc.Resolve(token); err == nil {
			c.Set(actorKey, act)
		}
		c.Next()
	}
}

// RequireRole gates a route group on the actor's role: 401 when no actor
// was resolved, 403 when the role is not in the required set.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		act, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		if !act.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "forbidden"})
			return
		}
		c.Next()
	}
}

// ActorFrom returns the resolved actor for the request, if any.
func ActorFrom(c *gin.Context) (*actor.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil, false
	}
	act, ok := v.(*actor.Actor)
	return act, ok
}
