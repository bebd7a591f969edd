package service

import (
	"context"
	"time"

	"citronix/entities"
	"citronix/pkg/season"
)

type SaleInput struct {
	Date      time.Time
	UnitPrice float64
	Customer  string
	HarvestID uint
}

// SaleService returns sales with their harvest loaded; Revenue always
// reflects the harvest's current total.
type SaleService interface {
	CreateSale(ctx context.Context, in SaleInput) (*entities.Sale, error)
	// UpdateSale may re-link to a harvest that already has sales.
	UpdateSale(ctx context.Context, id uint, in SaleInput) (*entities.Sale, error)
	GetSale(ctx context.Context, id uint) (*entities.Sale, error)
	ListSales(ctx context.Context) ([]entities.Sale, error)
	SalesByHarvest(ctx context.Context, harvestID uint) ([]entities.Sale, error)
	SalesByDateRange(ctx context.Context, start, end time.Time) ([]entities.Sale, error)
	SalesByCustomer(ctx context.Context, customer string) ([]entities.Sale, error)
	DeleteSale(ctx context.Context, id uint) error
	TotalRevenueBetween(ctx context.Context, start, end time.Time) (float64, error)
	AverageUnitPriceBySeason(ctx context.Context, s season.Season) (float64, error)
}
