package report

import (
	"context"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"citronix/entities"
	"citronix/pkg/httpx"
	"citronix/pkg/rules"
)

const (
	HarvestSheet = "Harvests"
	SaleSheet    = "Sales"
)

var (
	harvestHeader = []any{"ID", "Date", "Season", "Year", "Total (kg)", "Sold"}
	saleHeader    = []any{"ID", "Date", "Customer", "Harvest ID", "Unit price", "Quantity (kg)", "Revenue"}
)

// HarvestSource lists harvests with their sales loaded.
type HarvestSource interface {
	HarvestsByDateRange(ctx context.Context, start, end time.Time) ([]entities.Harvest, error)
}

// SaleSource lists sales with their harvest loaded.
type SaleSource interface {
	SalesByDateRange(ctx context.Context, start, end time.Time) ([]entities.Sale, error)
}

type Builder struct {
	harvests HarvestSource
	sales    SaleSource
}

func NewBuilder(h HarvestSource, s SaleSource) *Builder {
	return &Builder{harvests: h, sales: s}
}

// Build renders harvests and sales dated within [from, to]. Revenue is taken
// from the harvest totals at the time of the call. Callers must Close the file.
func (b *Builder) Build(ctx context.Context, from, to time.Time) (*excelize.File, error) {
	harvests, err := b.harvests.HarvestsByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sales, err := b.sales.SalesByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", HarvestSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SaleSheet); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHarvests(f, bold, harvests); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSales(f, bold, sales); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func (b *Builder) Write(ctx context.Context, w io.Writer, from, to time.Time) error {
	f, err := b.Build(ctx, from, to)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeHarvests(f *excelize.File, style int, list []entities.Harvest) error {
	if err := writeRow(f, HarvestSheet, 1, harvestHeader); err != nil {
		return err
	}
	total := 0.0
	for i, h := range list {
		sold := "no"
		if len(h.Sales) > 0 {
			sold = "yes"
		}
		row := []any{h.ID, httpx.FormatDate(h.Date), h.Season.String(), h.Year, h.TotalQuantity, sold}
		if err := writeRow(f, HarvestSheet, i+2, row); err != nil {
			return err
		}
		total += h.TotalQuantity
	}
	last := len(list) + 2
	if err := writeRow(f, HarvestSheet, last, []any{"Total", "", "", "", total, ""}); err != nil {
		return err
	}
	if err := f.SetRowStyle(HarvestSheet, 1, 1, style); err != nil {
		return err
	}
	return f.SetRowStyle(HarvestSheet, last, last, style)
}

func writeSales(f *excelize.File, style int, list []entities.Sale) error {
	if err := writeRow(f, SaleSheet, 1, saleHeader); err != nil {
		return err
	}
	var quantity, revenue float64
	for i := range list {
		s := &list[i]
		q := 0.0
		if s.Harvest != nil {
			q = s.Harvest.TotalQuantity
		}
		r := rules.Revenue(s.UnitPrice, q)
		row := []any{s.ID, httpx.FormatDate(s.Date), s.Customer, s.HarvestID, s.UnitPrice, q, r}
		if err := writeRow(f, SaleSheet, i+2, row); err != nil {
			return err
		}
		quantity += q
		revenue += r
	}
	last := len(list) + 2
	if err := writeRow(f, SaleSheet, last, []any{"Total", "", "", "", "", quantity, revenue}); err != nil {
		return err
	}
	if err := f.SetRowStyle(SaleSheet, 1, 1, style); err != nil {
		return err
	}
	return f.SetRowStyle(SaleSheet, last, last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
