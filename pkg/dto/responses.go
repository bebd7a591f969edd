// Package dto holds the JSON shapes returned by the HTTP layer. Derived
// values such as tree age or sale revenue are filled in at render time.
package dto

import (
	"time"

	"citronix/entities"
	"citronix/pkg/httpx"
	"citronix/pkg/season"
)

type FarmResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Area         float64         `json:"area"`
	CreationDate string          `json:"creation_date"`
	Fields       []FieldResponse `json:"fields,omitempty"`
}

type FieldResponse struct {
	ID                  uint           `json:"id"`
	Area                float64        `json:"area"`
	FarmID              uint           `json:"farm_id"`
	Trees               []TreeResponse `json:"trees,omitempty"`
	MaximumTreeCapacity int            `json:"maximum_tree_capacity"`
	AvailableTreeSpaces int            `json:"available_tree_spaces"`
}

type TreeResponse struct {
	ID           uint    `json:"id"`
	PlantDate    string  `json:"plant_date"`
	FieldID      uint    `json:"field_id"`
	Age          int     `json:"age"`
	Productivity float64 `json:"productivity"`
}

type HarvestResponse struct {
	ID             uint                    `json:"id"`
	Date           string                  `json:"date"`
	Season         season.Season           `json:"season"`
	Year           int                     `json:"year"`
	TotalQuantity  float64                 `json:"total_quantity"`
	Locked         bool                    `json:"locked"`
	HarvestDetails []HarvestDetailResponse `json:"harvest_details,omitempty"`
	Sales          []SaleResponse          `json:"sales,omitempty"`
}

type HarvestDetailResponse struct {
	ID        uint    `json:"id"`
	HarvestID uint    `json:"harvest_id"`
	TreeID    uint    `json:"tree_id"`
	Quantity  float64 `json:"quantity"`
}

type SaleResponse struct {
	ID        uint    `json:"id"`
	Date      string  `json:"date"`
	UnitPrice float64 `json:"unit_price"`
	Customer  string  `json:"customer"`
	HarvestID uint    `json:"harvest_id"`
	Revenue   float64 `json:"revenue"`
}

func Farm(f *entities.Farm, now time.Time) FarmResponse {
	out := FarmResponse{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		Area:         f.Area,
		CreationDate: httpx.FormatDate(f.CreationDate),
	}
	for i := range f.Fields {
		out.Fields = append(out.Fields, Field(&f.Fields[i], len(f.Fields[i].Trees), now))
	}
	return out
}

func Farms(list []entities.Farm, now time.Time) []FarmResponse {
	out := make([]FarmResponse, 0, len(list))
	for i := range list {
		out = append(out, Farm(&list[i], now))
	}
	return out
}

// Field renders a field. treeCount drives the available spaces since Trees
// is only populated on "with trees" reads.
func Field(f *entities.Field, treeCount int, now time.Time) FieldResponse {
	out := FieldResponse{
		ID:                  f.ID,
		Area:                f.Area,
		FarmID:              f.FarmID,
		MaximumTreeCapacity: f.MaxTreeCapacity(),
		AvailableTreeSpaces: f.AvailableSpaces(treeCount),
	}
	for i := range f.Trees {
		out.Trees = append(out.Trees, Tree(&f.Trees[i], now))
	}
	return out
}

func Tree(t *entities.Tree, now time.Time) TreeResponse {
	return TreeResponse{
		ID:           t.ID,
		PlantDate:    httpx.FormatDate(t.PlantDate),
		FieldID:      t.FieldID,
		Age:          t.Age(now),
		Productivity: t.Productivity(now),
	}
}

func Trees(list []entities.Tree, now time.Time) []TreeResponse {
	out := make([]TreeResponse, 0, len(list))
	for i := range list {
		out = append(out, Tree(&list[i], now))
	}
	return out
}

func Harvest(h *entities.Harvest) HarvestResponse {
	out := HarvestResponse{
		ID:            h.ID,
		Date:          httpx.FormatDate(h.Date),
		Season:        h.Season,
		Year:          h.Year,
		TotalQuantity: h.TotalQuantity,
		Locked:        h.Locked,
	}
	for i := range h.Details {
		out.HarvestDetails = append(out.HarvestDetails, HarvestDetail(&h.Details[i]))
	}
	for i := range h.Sales {
		s := h.Sales[i]
		s.Harvest = h
		out.Sales = append(out.Sales, Sale(&s))
	}
	return out
}

func Harvests(list []entities.Harvest) []HarvestResponse {
	out := make([]HarvestResponse, 0, len(list))
	for i := range list {
		out = append(out, Harvest(&list[i]))
	}
	return out
}

func HarvestDetail(d *entities.HarvestDetail) HarvestDetailResponse {
	return HarvestDetailResponse{ID: d.ID, HarvestID: d.HarvestID, TreeID: d.TreeID, Quantity: d.Quantity}
}

func HarvestDetails(list []entities.HarvestDetail) []HarvestDetailResponse {
	out := make([]HarvestDetailResponse, 0, len(list))
	for i := range list {
		out = append(out, HarvestDetail(&list[i]))
	}
	return out
}

func Sale(s *entities.Sale) SaleResponse {
	return SaleResponse{
		ID:        s.ID,
		Date:      httpx.FormatDate(s.Date),
		UnitPrice: s.UnitPrice,
		Customer:  s.Customer,
		HarvestID: s.HarvestID,
		Revenue:   s.Revenue(),
	}
}

func Sales(list []entities.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for i := range list {
		out = append(out, Sale(&list[i]))
	}
	return out
}
