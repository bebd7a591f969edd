package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"citronix/pkg/metrics"
	"citronix/pkg/middleware"
	"citronix/pkg/testutil"
)

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) api {
	log := testutil.Logger(t)
	m := metrics.New()
	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(log, m)
	e.Use(middleware.RequestID(), middleware.Metrics(m))
	New(e, Wire(Deps{
		DB:      testutil.DB(t),
		Log:     log,
		Metrics: m,
		Env:     "test",
		Now:     testutil.Clock(testutil.Date(2024, time.June, 15)),
	}))
	return api{t: t, e: e}
}

func (a api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// ok sends the request, asserts the status and decodes the JSON body.
func (a api) ok(status int, method, path string, body any) map[string]any {
	a.t.Helper()
	rec := a.do(method, path, body)
	require.Equal(a.t, status, rec.Code, rec.Body.String())
	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return out
}

func id(m map[string]any) uint { return uint(m["id"].(float64)) }

func TestAPI_HarvestToSaleFlow(t *testing.T) {
	a := newAPI(t)

	farm := a.ok(http.StatusCreated, http.MethodPost, "/farms", map[string]any{
		"name": "Sunrise", "location": "Meknes", "area": 10, "creation_date": "2020-01-01",
	})
	field := a.ok(http.StatusCreated, http.MethodPost, "/fields", map[string]any{"farm_id": id(farm), "area": 2})
	assert.EqualValues(t, 200, field["maximum_tree_capacity"])

	left := a.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/farms/%d/left-area", id(farm)), nil)
	assert.EqualValues(t, 8, left["left_area"])

	tree := a.ok(http.StatusCreated, http.MethodPost, "/trees", map[string]any{"field_id": id(field), "plant_date": "2014-04-01"})
	assert.EqualValues(t, 10, tree["age"])
	assert.EqualValues(t, 12, tree["productivity"])

	harvest := a.ok(http.StatusCreated, http.MethodPost, "/harvests", map[string]any{"date": "2024-04-10", "season": "spring"})
	assert.Equal(t, "SPRING", harvest["season"])
	assert.EqualValues(t, 2024, harvest["year"])

	hid := id(harvest)
	a.ok(http.StatusCreated, http.MethodPost, fmt.Sprintf("/harvests/%d/details", hid), map[string]any{"tree_id": id(tree)})

	got := a.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/harvests/%d/with-details", hid), nil)
	assert.Equal(t, true, got["locked"])
	assert.EqualValues(t, 12, got["total_quantity"])

	a.ok(http.StatusUnprocessableEntity, http.MethodPut, fmt.Sprintf("/harvests/%d", hid), map[string]any{"date": "2024-05-01", "season": "SPRING"})

	sale := a.ok(http.StatusCreated, http.MethodPost, "/sales", map[string]any{
		"date": "2024-04-12", "unit_price": 3.5, "customer": "Marjane", "harvest_id": hid,
	})
	assert.EqualValues(t, 42, sale["revenue"])
	a.ok(http.StatusUnprocessableEntity, http.MethodPost, "/sales", map[string]any{
		"date": "2024-04-13", "unit_price": 3.5, "customer": "Carrefour", "harvest_id": hid,
	})

	probe := a.ok(http.StatusOK, http.MethodPost, "/harvests/validate-tree-season", map[string]any{
		"tree_id": id(tree), "season": "SPRING", "year": 2024,
	})
	assert.Equal(t, true, probe["harvested"])

	rec := a.do(http.MethodGet, "/reports/sales.xlsx?from=2024-01-01&to=2024-12-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "sales_2024-01-01_2024-12-31.xlsx")
	wb, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "42", rows[1][6])

	a.ok(http.StatusNoContent, http.MethodDelete, fmt.Sprintf("/farms/%d", id(farm)), nil)
	after := a.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/harvests/%d", hid), nil)
	assert.EqualValues(t, 0, after["total_quantity"])
	assert.Equal(t, true, after["locked"])
}

func TestAPI_ErrorMapping(t *testing.T) {
	a := newAPI(t)

	body := a.ok(http.StatusNotFound, http.MethodGet, "/farms/42", nil)
	assert.Equal(t, "not_found", body["kind"])
	assert.Equal(t, "Farm not found with id: 42", body["error"])
	assert.Equal(t, "/farms/42", body["path"])

	body = a.ok(http.StatusBadRequest, http.MethodGet, "/farms/abc", nil)
	assert.Equal(t, "malformed_input", body["kind"])
	assert.Contains(t, body["fields"], "id")

	body = a.ok(http.StatusBadRequest, http.MethodPost, "/farms", map[string]any{"name": "x"})
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "area")
	assert.Contains(t, fields, "creation_date")

	a.ok(http.StatusBadRequest, http.MethodGet, "/harvests/by-season/monsoon", nil)
	a.ok(http.StatusUnprocessableEntity, http.MethodGet, "/sales/by-date-range?start=2024-02-01&end=2024-01-01", nil)
	a.ok(http.StatusBadRequest, http.MethodGet, "/sales/by-date-range?start=2024-02-01", nil)

	body = a.ok(http.StatusUnprocessableEntity, http.MethodPost, "/harvests", map[string]any{"date": "2024-04-10", "season": "WINTER"})
	assert.Equal(t, "business_rule_violation", body["kind"])
	assert.EqualValues(t, 422, body["status"])
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	health := a.ok(http.StatusOK, http.MethodGet, "/health", nil)
	assert.Equal(t, "test", health["env"])

	a.do(http.MethodGet, "/farms/7", nil)
	rec := a.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `citronix_http_requests_total{method="GET",route="/farms/:id",status="404"} 1`)
	assert.Contains(t, rec.Body.String(), `citronix_domain_errors_total{kind="not_found"} 1`)
}
