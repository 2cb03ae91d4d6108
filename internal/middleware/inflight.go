package middleware

import "github.com/gin-gonic/gin"

// Counter is incremented when a request starts and decremented when it settles.
type Counter interface {
	Inc()
	Dec()
}

func InFlight(counter Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		counter.Inc()
		defer counter.Dec()
		c.Next()
	}
}
