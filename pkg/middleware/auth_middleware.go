package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"netops/internal/models/db_models"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/authz"
	"netops/pkg/utils"
)

const (
	currentUserKey = "current_user"
	geoScopeKey    = "geo_scope"
)

// Authenticator resolves a session token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*db_models.User, error)
}

type AuthMiddleware struct {
	auth              Authenticator
	enforcer          *authz.Enforcer
	unassignedSeesAll bool
}

func NewAuthMiddleware(auth Authenticator, enforcer *authz.Enforcer, unassignedSeesAll bool) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, enforcer: enforcer, unassignedSeesAll: unassignedSeesAll}
}

// RequireAuth admits requests carrying a valid session for an active user
// whose role satisfies requiredRole. An empty role only requires a session.
func (m *AuthMiddleware) RequireAuth(requiredRole db_models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.auth.Authenticate(c.Request.Context(), tokenFromRequest(c))
		if err != nil {
			if errors.Is(err, utils.ErrDatabaseError) {
				utils.HandleServiceError(c, err)
			} else {
				utils.RespondError(c, http.StatusUnauthorized, err.Error())
			}
			c.Abort()
			return
		}

		if !m.enforcer.Allows(string(user.Role), string(requiredRole)) {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set(geoScopeKey, services.ScopeFor(user, m.unassignedSeesAll))
		c.Next()
	}
}

// OptionalAuth attaches the session user when the request carries a valid
// token and lets the request through either way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token != "" {
			if user, err := m.auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(currentUserKey, user)
				c.Set(geoScopeKey, services.ScopeFor(user, m.unassignedSeesAll))
			}
		}
		c.Next()
	}
}

// tokenFromRequest prefers the session cookie and falls back to a bearer
// header for API clients.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func CurrentUser(c *gin.Context) *db_models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*db_models.User)
	return user
}

// CurrentActor packages the caller for service calls.
func CurrentActor(c *gin.Context) services.Actor {
	actor := services.Actor{User: CurrentUser(c), IP: c.ClientIP()}
	if v, ok := c.Get(geoScopeKey); ok {
		if scope, ok := v.(repositories.GeoScope); ok {
			actor.Scope = scope
			return actor
		}
	}
	actor.Scope = services.ScopeFor(actor.User, false)
	return actor
}
