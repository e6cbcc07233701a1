package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type fakeAccounts struct {
	users map[string]*models.User
	err   error
}

func (f *fakeAccounts) GetUser(_ context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func withClaims(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextClaims, &identity.Claims{
				Role:             role,
				RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
			})
		}
		c.Next()
	}
}

func guardedEngine(accounts AccountReader, userID, tokenRole, role string, mode GuardMode, ran *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", withClaims(userID, tokenRole), Guard(accounts, role, mode), func(c *gin.Context) {
		*ran = true
		user, ok := UserFrom(c)
		if ok {
			c.String(http.StatusOK, user.ID)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestGuard_CoachPageWithClientSessionRedirects(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleClient},
	}}
	ran := false
	r := guardedEngine(accounts, "u1", models.RoleClient, models.RoleCoach, GuardPage, &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, ran)
}

func TestGuard_UsesStoredRoleNotTokenRole(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleClient},
	}}
	ran := false
	r := guardedEngine(accounts, "u1", models.RoleCoach, models.RoleCoach, GuardAPI, &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden_role")
	assert.False(t, ran)
}

func TestGuard_Allowed(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleCoach},
	}}
	ran := false
	r := guardedEngine(accounts, "u1", models.RoleCoach, models.RoleCoach, GuardPage, &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ran)
	assert.Equal(t, "u1", w.Body.String())
}

func TestGuard_NoSession(t *testing.T) {
	accounts := &fakeAccounts{}

	ran := false
	w := httptest.NewRecorder()
	guardedEngine(accounts, "", "", models.RoleClient, GuardAPI, &ran).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	guardedEngine(accounts, "", "", models.RoleClient, GuardPage, &ran).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	w = httptest.NewRecorder()
	guardedEngine(accounts, "gone", models.RoleClient, models.RoleClient, GuardAPI, &ran).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "account_not_found")

	assert.False(t, ran)
}

func TestGuard_UnknownStateShowsLoading(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("connection refused")}

	ran := false
	w := httptest.NewRecorder()
	guardedEngine(accounts, "u1", models.RoleCoach, models.RoleCoach, GuardPage, &ran).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), LoadingText)
	assert.False(t, ran)
}
