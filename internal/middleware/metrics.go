package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classedgee/scheduler-api/internal/service"
)

// Metrics records method, route and latency for every request. Routes
// are reported by their template so path params do not explode the
// label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
