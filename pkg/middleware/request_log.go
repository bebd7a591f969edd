package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/logger"
)

func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			if log == nil {
				return nil
			}

			status := c.Response().Status
			fields := []interface{}{
				"method", strings.ToUpper(c.Request().Method),
				"path", routeOf(c),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if id := RequestIDOf(c); id != "" {
				fields = append(fields, "request_id", id)
			}

			switch {
			case status >= 500:
				log.Error("HTTP request", fields...)
			case status >= 400:
				log.Warn("HTTP request", fields...)
			default:
				log.Info("HTTP request", fields...)
			}
			return nil
		}
	}
}

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return "unknown"
}
