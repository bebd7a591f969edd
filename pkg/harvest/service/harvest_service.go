package service

import (
	"context"
	"time"

	"citronix/entities"
	"citronix/pkg/season"
)

type HarvestInput struct {
	Date   time.Time
	Season season.Season
}

type HarvestService interface {
	CreateHarvest(ctx context.Context, in HarvestInput) (*entities.Harvest, error)
	// UpdateHarvest rejects date or season changes once the harvest is locked.
	UpdateHarvest(ctx context.Context, id uint, in HarvestInput) (*entities.Harvest, error)
	GetHarvest(ctx context.Context, id uint) (*entities.Harvest, error)
	GetHarvestWithDetails(ctx context.Context, id uint) (*entities.Harvest, error)
	ListHarvests(ctx context.Context) ([]entities.Harvest, error)
	HarvestsBySeason(ctx context.Context, s season.Season) ([]entities.Harvest, error)
	HarvestsByDateRange(ctx context.Context, start, end time.Time) ([]entities.Harvest, error)
	TotalQuantityBetween(ctx context.Context, start, end time.Time) (float64, error)
	RecomputeTotal(ctx context.Context, id uint) (float64, error)
	DeleteHarvest(ctx context.Context, id uint) error
}

type HarvestDetailService interface {
	// AddDetail records the tree's productivity at the harvest date.
	AddDetail(ctx context.Context, harvestID, treeID uint) (*entities.HarvestDetail, error)
	// UpdateDetail re-points a detail at a tree and recaptures its quantity.
	UpdateDetail(ctx context.Context, id, treeID uint) (*entities.HarvestDetail, error)
	GetDetail(ctx context.Context, id uint) (*entities.HarvestDetail, error)
	ListDetails(ctx context.Context) ([]entities.HarvestDetail, error)
	DetailsByHarvest(ctx context.Context, harvestID uint) ([]entities.HarvestDetail, error)
	DetailsByTree(ctx context.Context, treeID uint) ([]entities.HarvestDetail, error)
	DeleteDetail(ctx context.Context, id uint) error
	TotalQuantity(ctx context.Context, harvestID uint) (float64, error)
	IsTreeHarvestedInSeason(ctx context.Context, treeID uint, s season.Season, year int) (bool, error)
	// BulkForField and BulkForFarm write every eligible tree or nothing.
	BulkForField(ctx context.Context, harvestID, fieldID uint) ([]entities.HarvestDetail, error)
	BulkForFarm(ctx context.Context, harvestID, farmID uint) ([]entities.HarvestDetail, error)
}
