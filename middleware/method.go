package middleware

import (
	"net/http"

	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
)

// RequireMethod guards a single-method endpoint. Any other method is reported
// as a test-authoring defect and answered with 405.
func RequireMethod(rep utils.Reporter, method string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != method {
			rep.Errorf("%s %s: expected method %s", c.Request.Method, c.Request.URL.Path, method)
			c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
			c.Abort()
			return
		}
		next(c)
	}
}
