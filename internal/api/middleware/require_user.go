package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/utils"
)

// RequireUser aborts with 401 unless Middleware attached a signed-in user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    utils.CodeUnauthorized,
				"message": "sign in required",
			})
			return
		}
		c.Next()
	}
}
