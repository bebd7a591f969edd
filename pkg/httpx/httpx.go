package httpx

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"citronix/pkg/apperr"
	"citronix/pkg/season"
)

const DateLayout = "2006-01-02"

// Bind decodes the body into dst and runs the registered validator.
func Bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Malformed("invalid request body", nil)
	}
	if err := c.Validate(dst); err != nil {
		return err
	}
	return nil
}

func ParamID(c echo.Context, name string) (uint, error) {
	return parseID(name, c.Param(name))
}

func QueryID(c echo.Context, name string) (uint, error) {
	return parseID(name, c.QueryParam(name))
}

func parseID(name, raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Malformed("invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return uint(v), nil
}

func ParseDate(name, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Malformed("invalid "+name, map[string]string{name: "must be a date in YYYY-MM-DD format"})
	}
	return t, nil
}

// QueryDate requires the query parameter to be present.
func QueryDate(c echo.Context, name string) (time.Time, error) {
	return ParseDate(name, c.QueryParam(name))
}

// QueryDateRange reads two required dates such as start/end or from/to.
func QueryDateRange(c echo.Context, startName, endName string) (time.Time, time.Time, error) {
	start, err := QueryDate(c, startName)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := QueryDate(c, endName)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func ParseFloat(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, apperr.Malformed("invalid "+name, map[string]string{name: "must be a number"})
	}
	return v, nil
}

func ParseInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperr.Malformed("invalid "+name, map[string]string{name: "must be an integer"})
	}
	return v, nil
}

func ParseSeason(name, raw string) (season.Season, error) {
	s, err := season.Parse(raw)
	if err != nil {
		return "", apperr.Malformed("invalid "+name, map[string]string{name: "must be one of WINTER, SPRING, SUMMER, AUTUMN"})
	}
	return s, nil
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }
