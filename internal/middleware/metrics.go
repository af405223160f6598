package middleware

import (
	"strconv"
	"time"

	"github.com/clientdesk/crm-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and durations, labeled by route pattern so
// path parameters don't explode the cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}
