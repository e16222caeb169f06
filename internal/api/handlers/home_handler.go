package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/views"
)

func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", views.HomePage{Base: base(c, "")})
}
