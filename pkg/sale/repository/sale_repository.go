package repository

import (
	"time"

	"citronix/entities"
	"citronix/pkg/dbctx"
	"citronix/pkg/season"
)

// SaleRepository reads always preload the sale's harvest so revenue can be derived.
type SaleRepository interface {
	Create(dbc dbctx.Context, s *entities.Sale) error
	Update(dbc dbctx.Context, s *entities.Sale) error
	FindByID(dbc dbctx.Context, id uint) (*entities.Sale, error)
	List(dbc dbctx.Context) ([]entities.Sale, error)
	FindByHarvest(dbc dbctx.Context, harvestID uint) ([]entities.Sale, error)
	FindByDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Sale, error)
	FindByCustomer(dbc dbctx.Context, customer string) ([]entities.Sale, error)
	CountByHarvest(dbc dbctx.Context, harvestID uint) (int, error)
	// TotalRevenueBetween sums unit_price x the harvest's current total.
	TotalRevenueBetween(dbc dbctx.Context, start, end time.Time) (float64, error)
	AverageUnitPriceBySeason(dbc dbctx.Context, s season.Season) (float64, error)
	Delete(dbc dbctx.Context, id uint) error
}
