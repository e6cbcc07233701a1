package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// AccountReader loads the stored account; its role is the only one a guard
// trusts.
type AccountReader interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type GuardMode int

const (
	GuardPage GuardMode = iota
	GuardAPI
)

const LoadingText = "Loading..."

// Guard lets a request through only when the session's stored role equals
// role. A session check that cannot complete answers 503 with a loading
// placeholder; a missing session or another role is denied.
func Guard(accounts AccountReader, role string, mode GuardMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			deny(c, mode, http.StatusUnauthorized, "unauthenticated", "Please log in.")
			return
		}

		user, err := accounts.GetUser(c.Request.Context(), claims.UserID())
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			deny(c, mode, http.StatusUnauthorized, "account_not_found", "Account not found.")
			return
		case err != nil:
			slog.WarnContext(c.Request.Context(), "session check failed", "user_id", claims.UserID(), "error", err)
			loading(c, mode)
			return
		case user.Role != role:
			deny(c, mode, http.StatusForbidden, "forbidden_role", "This page is not available for your account.")
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

func deny(c *gin.Context, mode GuardMode, status int, code, message string) {
	if mode == GuardPage {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	httperr.Write(c, status, code, message)
}

func loading(c *gin.Context, mode GuardMode) {
	c.Header("Retry-After", "1")
	if mode == GuardPage {
		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte("<p>"+LoadingText+"</p>"))
		c.Abort()
		return
	}
	httperr.Write(c, http.StatusServiceUnavailable, "session_unknown", LoadingText)
}
