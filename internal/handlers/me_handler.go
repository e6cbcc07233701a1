package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/dto"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/httpresp"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	ucAccount "github.com/BruksfildServices01/coach-calendar/internal/usecase/account"
)

type MeHandler struct {
	accounts      middleware.AccountReader
	deleteAccount *ucAccount.DeleteAccount
}

func NewMeHandler(
	accounts middleware.AccountReader,
	deleteAccount *ucAccount.DeleteAccount,
) *MeHandler {
	return &MeHandler{
		accounts:      accounts,
		deleteAccount: deleteAccount,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Please log in.")
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, identity.CodeUserNotFound, identity.Message(identity.CodeUserNotFound))
			return
		}
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":     user,
		"redirect": user.DashboardPath(),
	})
}

type deleteAccountError struct {
	httperr.HTTPError
	State string `json:"state"`
}

// Delete removes the caller's account. A stale session answers 401
// requires_recent_login until the password is supplied.
func (h *MeHandler) Delete(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Please log in.")
		return
	}

	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.deleteAccount.Execute(c.Request.Context(), ucAccount.DeleteAccountInput{
		Claims:   claims,
		Confirm:  req.Confirm,
		Password: req.Password,
	})
	if err != nil {
		code, isBusiness := httperr.BusinessCode(err)
		if !isBusiness {
			respondError(c, err)
			return
		}

		status, msg := businessReply(code)
		c.AbortWithStatusJSON(status, deleteAccountError{
			HTTPError: httperr.HTTPError{Code: code, Message: msg},
			State:     string(res.State),
		})
		return
	}

	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		slog.WarnContext(c.Request.Context(), "clear session failed", "error", err)
	}

	httpresp.OK(c, gin.H{
		"state":         res.State,
		"eventsDeleted": res.EventsDeleted,
		"redirect":      "/",
	})
}
