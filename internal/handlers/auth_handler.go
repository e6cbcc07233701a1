package handlers

import (
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/dto"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/httpresp"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
)

type AuthHandler struct {
	auth *identity.Service
}

func NewAuthHandler(auth *identity.Service) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all required fields.")
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), identity.SignUpInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.remember(c, session) {
		return
	}

	slog.InfoContext(c.Request.Context(), "account created",
		"user_id", session.User.ID,
		"role", session.User.Role,
	)

	httpresp.Created(c, toSessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all fields.")
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		code, ok := httperr.BusinessCode(err)
		switch {
		case ok && (code == identity.CodeUserNotFound || code == identity.CodeWrongPassword):
			httperr.Unauthorized(c, code, identity.Message(code))
		case ok:
			httperr.Unauthorized(c, identity.CodeLoginFailed, identity.Message(identity.CodeLoginFailed))
		default:
			slog.ErrorContext(c.Request.Context(), "sign in failed", "error", err)
			httperr.Internal(c, identity.CodeLoginFailed, identity.Message(identity.CodeLoginFailed))
		}
		return
	}

	if !h.remember(c, session) {
		return
	}

	httpresp.OK(c, toSessionResponse(session))
}

// Logout ends the caller's streams and clears the cookie session. It always
// succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		h.auth.SignOut(c.Request.Context(), claims)
	}

	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		slog.WarnContext(c.Request.Context(), "clear session failed", "error", err)
	}

	httpresp.OK(c, gin.H{"redirect": "/login"})
}

func (h *AuthHandler) Reauthenticate(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Please log in.")
		return
	}

	var req dto.ReauthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Password is required.")
		return
	}

	session, err := h.auth.Reauthenticate(c.Request.Context(), claims, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.remember(c, session) {
		return
	}

	httpresp.OK(c, toSessionResponse(session))
}

// remember stores the token in the cookie session used by pages and streams.
func (h *AuthHandler) remember(c *gin.Context, session *identity.Session) bool {
	s := sessions.Default(c)
	s.Set(middleware.SessionTokenKey, session.Token)
	if err := s.Save(); err != nil {
		slog.ErrorContext(c.Request.Context(), "save session failed", "error", err)
		httperr.Internal(c, "session_save_failed", "Could not start the session. Please try again.")
		return false
	}
	return true
}

func toSessionResponse(s *identity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Redirect:  s.Redirect(),
		User:      *s.User,
	}
}

