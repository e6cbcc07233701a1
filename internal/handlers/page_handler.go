package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, "home", nil)
}

func (h *PageHandler) Login(c *gin.Context) {
	h.render(c, "login", nil)
}

func (h *PageHandler) SignUp(c *gin.Context) {
	h.render(c, "signup", nil)
}

// Coach and Client run behind a page guard, which loads the account.
func (h *PageHandler) Coach(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	h.render(c, "coach", user)
}

func (h *PageHandler) Client(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	h.render(c, "client", user)
}

func (h *PageHandler) render(c *gin.Context, page string, user *models.User) {
	claims, signedIn := middleware.ClaimsFrom(c)

	dashboard := "/"
	if signedIn {
		dashboard = models.User{Role: claims.Role}.DashboardPath()
	}
	if user != nil {
		dashboard = user.DashboardPath()
	}

	c.HTML(http.StatusOK, "base", gin.H{
		"Page":      page,
		"SignedIn":  signedIn,
		"Dashboard": dashboard,
		"User":      user,
	})
}
