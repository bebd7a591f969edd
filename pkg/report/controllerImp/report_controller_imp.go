package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"citronix/pkg/httpx"
	"citronix/pkg/report"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportCtrl struct{ b *report.Builder }

func New(b *report.Builder) *ReportCtrl { return &ReportCtrl{b: b} }

// SalesXLSX serves GET /reports/sales.xlsx?from=&to=.
func (h *ReportCtrl) SalesXLSX(c echo.Context) error {
	from, to, err := httpx.QueryDateRange(c, "from", "to")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.b.Write(c.Request().Context(), &buf, from, to); err != nil {
		return err
	}
	name := fmt.Sprintf("sales_%s_%s.xlsx", httpx.FormatDate(from), httpx.FormatDate(to))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
