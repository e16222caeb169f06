package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/api/middleware"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/utils"
	"github.com/yoockh/jobboard/internal/views"
)

const (
	registerRedirectMS = 1600
	loginRedirectMS    = 900
)

type AuthHandler struct {
	svc      services.AuthService
	sessions *middleware.Sessions
	log      *logrus.Logger
}

func NewAuthHandler(svc services.AuthService, sessions *middleware.Sessions, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: log}
}

func (h *AuthHandler) page(c *gin.Context, title string) views.AuthPage {
	return views.AuthPage{Base: base(c, title)}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.page(c, "Register"))
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.page(c, "Log in"))
}

// Register is POST /register. With no identity provider configured the
// form is shown again without any message.
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	_ = c.ShouldBind(&in)

	page := h.page(c, "Register")
	page.Name, page.Email = in.Name, in.Email

	if !h.svc.Enabled() {
		c.HTML(http.StatusOK, "register.html", page)
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), in); err != nil {
		page.Error = utils.Message(err, services.MsgAuthUnavailable)
		c.HTML(utils.HTTPStatus(err), "register.html", page)
		return
	}

	page.Success = services.MsgRegistered
	page.RedirectTo = "/login"
	page.RedirectMS = registerRedirectMS
	c.HTML(http.StatusOK, "register.html", page)
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var f loginForm
	_ = c.ShouldBind(&f)

	page := h.page(c, "Log in")
	page.Email = f.Email

	if !h.svc.Enabled() {
		c.HTML(http.StatusOK, "login.html", page)
		return
	}

	u, err := h.svc.Login(c.Request.Context(), f.Email, f.Password)
	if err != nil {
		page.Error = utils.Message(err, services.MsgAuthUnavailable)
		c.HTML(utils.HTTPStatus(err), "login.html", page)
		return
	}

	if err := h.sessions.Issue(c, u); err != nil {
		h.log.WithError(err).Warn("session cookie not issued")
	}
	page.User = u
	page.Success = services.MsgLoggedIn
	page.RedirectTo = "/"
	page.RedirectMS = loginRedirectMS
	c.HTML(http.StatusOK, "login.html", page)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}
