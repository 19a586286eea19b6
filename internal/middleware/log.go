package middleware

import (
	"log"
	"time"

	"fintrack/internal/models"

	"github.com/gin-gonic/gin"
)

// RequestLog logs method, path, status, latency and the acting user for
// every request. It deliberately writes to the process log only; there is
// no persisted audit trail.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		var userID uint
		if v, ok := c.Get(CtxUser); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}

		log.Printf("%s %s status=%d user=%d took=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			userID,
			time.Since(start),
		)
	}
}
