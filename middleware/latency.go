package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Latency delays every request by d to simulate the network. A request whose
// context ends while it waits is abandoned with 503 and never reaches its
// handler.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.AbortWithStatus(http.StatusServiceUnavailable)
		}
	}
}
