package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/api/middleware"
	"github.com/yoockh/jobboard/internal/utils"
	"github.com/yoockh/jobboard/internal/views"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	c.JSON(status, APIError{
		Code:    utils.CodeOf(err),
		Message: utils.Message(err, http.StatusText(status)),
	})
}

// base fills the fields shared by every page.
func base(c *gin.Context, title string) views.Base {
	return views.Base{Title: title, User: middleware.CurrentUser(c)}
}

func jobsURL(q string) string {
	if q == "" {
		return "/jobs"
	}
	return "/jobs?" + url.Values{"q": {q}}.Encode()
}
