package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver receives one observation per served request.
type HTTPObserver interface {
	ObserveHTTP(route string, status int, took time.Duration)
}

// Metrics reports every request to obs under its route template, so path
// parameters do not inflate label cardinality. Unmatched routes are reported
// as "unmatched".
func Metrics(obs HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
	}
}
