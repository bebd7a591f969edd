package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"citronix/pkg/apperr"
	"citronix/pkg/httpx"
	"citronix/pkg/logger"
	"citronix/pkg/metrics"
)

type payload struct {
	Name string  `json:"name" validate:"required"`
	Area float64 `json:"area" validate:"required,gt=0"`
	Date string  `json:"creation_date" validate:"required,datetime=2006-01-02"`
}

func newEcho(t *testing.T) (*echo.Echo, *logger.Logger) {
	t.Helper()
	log, _ := logger.NewObserved()
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log, metrics.New())
	e.Use(RequestID(), RequestLogger(log), Metrics(metrics.New()))
	return e, log
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var b ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	e, _ := newEcho(t)
	e.GET("/missing", func(echo.Context) error { return apperr.NotFound("farm.get", "Farm not found with id: %d", 9) })
	e.GET("/rule", func(echo.Context) error { return apperr.BusinessRule("Field area must be at least 0.1 hectares") })
	e.GET("/bad", func(echo.Context) error { return apperr.Malformed("invalid id", map[string]string{"id": "must be a positive integer"}) })
	e.GET("/boom", func(echo.Context) error { return errors.New("disk on fire") })
	e.GET("/storage", func(echo.Context) error { return apperr.Internal("farm.list", errors.New("db locked")) })

	tests := []struct {
		path   string
		status int
		kind   string
		msg    string
	}{
		{"/missing", http.StatusNotFound, "not_found", "Farm not found with id: 9"},
		{"/rule", http.StatusUnprocessableEntity, "business_rule_violation", "Field area must be at least 0.1 hectares"},
		{"/bad", http.StatusBadRequest, "malformed_input", "invalid id"},
		{"/boom", http.StatusInternalServerError, "internal", "internal server error"},
		{"/storage", http.StatusInternalServerError, "internal", "internal server error"},
		{"/nowhere", http.StatusNotFound, "not_found", "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.path, "")
			require.Equal(t, tt.status, rec.Code)
			b := decode(t, rec)
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.status, b.Status)
			assert.Equal(t, tt.msg, b.Error)
			assert.Equal(t, tt.path, b.Path)
			assert.NotEmpty(t, b.Timestamp)
		})
	}
}

func TestErrorHandler_UnexpectedErrorsAreLogged(t *testing.T) {
	log, logs := logger.NewObserved()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(log, nil)
	e.GET("/boom", func(echo.Context) error { return errors.New("disk on fire") })

	rec := do(e, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
	require.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	e, _ := newEcho(t)
	e.POST("/farms", func(c echo.Context) error {
		var p payload
		if err := httpx.Bind(c, &p); err != nil {
			return err
		}
		return c.NoContent(http.StatusCreated)
	})

	rec := do(e, http.MethodPost, "/farms", `{"area": -1, "creation_date": "01/02/2024"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	b := decode(t, rec)
	assert.Equal(t, "malformed_input", b.Kind)
	assert.Equal(t, "is required", b.Fields["name"])
	assert.Equal(t, "must be greater than 0", b.Fields["area"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", b.Fields["creation_date"])

	rec = do(e, http.MethodPost, "/farms", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/farms", `{"name": "Sunrise", "area": 10, "creation_date": "2024-01-02"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequestID(t *testing.T) {
	e, _ := newEcho(t)
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, RequestIDOf(c)) })

	rec := do(e, http.MethodGet, "/ping", "")
	minted := rec.Header().Get(HeaderRequestID)
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	log, logs := logger.NewObserved()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(nil, nil)
	e.Use(RequestID(), RequestLogger(log))
	e.GET("/farms/:id", func(c echo.Context) error {
		if c.Param("id") == "1" {
			return c.NoContent(http.StatusOK)
		}
		return apperr.NotFound("farm.get", "Farm not found with id: %s", c.Param("id"))
	})

	do(e, http.MethodGet, "/farms/1", "")
	do(e, http.MethodGet, "/farms/2", "")

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	ctx := entries[1].ContextMap()
	assert.Equal(t, "/farms/:id", ctx["path"])
	assert.EqualValues(t, 404, ctx["status"])
	assert.NotEmpty(t, ctx["request_id"])
}
