package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
)

// Logger logs every request after it completes and feeds the HTTP
// metrics. Durations are observed against the route template so
// /patients/42 and /patients/7 land in the same series.
func Logger(l *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = path
		}

		m.RequestsTotal.WithLabelValues(c.Request.Method, route, statusLabel(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		l.Info("request completed",
			"request_id", c.GetString(ContextRequestID),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
