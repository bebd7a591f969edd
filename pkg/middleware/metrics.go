package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/metrics"
)

// Metrics instruments HTTP request counts and latency.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m == nil {
			return next
		}
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			m.ObserveAPI(c.Request().Method, routeOf(c), strconv.Itoa(c.Response().Status), time.Since(start))
			return nil
		}
	}
}
