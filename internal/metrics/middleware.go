package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsCollectorInterface defines methods needed by the middleware
type MetricsCollectorInterface interface {
	RecordHTTPRequest(method, path string, status int)
	RecordHTTPDuration(method, path string, seconds float64)
}

// MetricsMiddleware creates a Gin middleware that collects HTTP metrics.
// Paths are labelled by route template; unmatched requests share one label.
func MetricsMiddleware(collector MetricsCollectorInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		collector.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status())
		collector.RecordHTTPDuration(c.Request.Method, path, time.Since(start).Seconds())
	}
}
