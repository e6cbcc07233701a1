package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

const (
	ContextClaims = "claims"
	ContextUser   = "user"

	// SessionTokenKey holds the bearer token in the cookie session used by
	// pages and WebSocket upgrades.
	SessionTokenKey = "token"
)

type TokenParser interface {
	ParseToken(raw string) (*identity.Claims, error)
}

// Authenticate reads the token from the Authorization header, falling back
// to the cookie session. It never aborts; guards decide what a missing
// session means.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			if v, ok := sessions.Default(c).Get(SessionTokenKey).(string); ok {
				raw = v
			}
		}

		if raw != "" {
			if claims, err := tokens.ParseToken(raw); err == nil {
				c.Set(ContextClaims, claims)
			}
		}

		c.Next()
	}
}

// RequireAuth rejects API calls without a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFrom(c); !ok {
			httperr.Unauthorized(c, "unauthenticated", "Please log in.")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func ClaimsFrom(c *gin.Context) (*identity.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*identity.Claims)
	return claims, ok
}

// UserFrom returns the account loaded by a guard.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
