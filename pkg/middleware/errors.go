package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/apperr"
	"citronix/pkg/logger"
	"citronix/pkg/metrics"
)

type ErrorBody struct {
	Error     string            `json:"error"`
	Kind      string            `json:"kind"`
	Status    int               `json:"status"`
	Path      string            `json:"path"`
	Timestamp string            `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBusinessRule:
		return http.StatusUnprocessableEntity
	case apperr.KindMalformedInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders typed failures as JSON. Untyped errors surface as
// internal with a generic message and are logged.
func ErrorHandler(log *logger.Logger, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := ErrorBody{
			Path:      c.Request().URL.Path,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			body.Kind = string(ae.Kind)
			body.Status = StatusOf(ae.Kind)
			body.Error = ae.Message
			body.Fields = ae.Fields
			if ae.Kind == apperr.KindInternal {
				body.Error = "internal server error"
				logError(log, c, err)
			}
		case errors.As(err, &he):
			body.Status = he.Code
			body.Kind = kindForStatus(he.Code)
			body.Error = fmt.Sprint(he.Message)
		default:
			body.Kind = string(apperr.KindInternal)
			body.Status = http.StatusInternalServerError
			body.Error = "internal server error"
			logError(log, c, err)
		}
		m.IncDomainError(body.Kind)

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(body.Status)
		} else {
			werr = c.JSON(body.Status, body)
		}
		if werr != nil && log != nil {
			log.Error("write error response", "error", werr, "path", body.Path)
		}
	}
}

func kindForStatus(code int) string {
	switch {
	case code == http.StatusNotFound:
		return string(apperr.KindNotFound)
	case code >= 500:
		return string(apperr.KindInternal)
	default:
		return string(apperr.KindMalformedInput)
	}
}

func logError(log *logger.Logger, c echo.Context, err error) {
	if log == nil {
		return
	}
	log.Error("request failed", "error", err, "method", c.Request().Method, "path", routeOf(c), "request_id", RequestIDOf(c))
}
