package repository

import (
	"time"

	"citronix/entities"
	"citronix/pkg/dbctx"
	"citronix/pkg/season"
)

type HarvestRepository interface {
	Create(dbc dbctx.Context, h *entities.Harvest) error
	Update(dbc dbctx.Context, h *entities.Harvest) error
	FindByID(dbc dbctx.Context, id uint) (*entities.Harvest, error)
	// FindByIDWithDetails preloads details and sales.
	FindByIDWithDetails(dbc dbctx.Context, id uint) (*entities.Harvest, error)
	List(dbc dbctx.Context) ([]entities.Harvest, error)
	FindBySeason(dbc dbctx.Context, s season.Season) ([]entities.Harvest, error)
	FindByDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Harvest, error)
	SumTotalQuantityBetween(dbc dbctx.Context, start, end time.Time) (float64, error)
	ExistsForSeasonYear(dbc dbctx.Context, s season.Season, year int, excludeID uint) (bool, error)
	// Lock marks the harvest as having had details. It is never undone.
	Lock(dbc dbctx.Context, id uint) error
	// RecomputeTotal persists the sum of the harvest's detail quantities and returns it.
	RecomputeTotal(dbc dbctx.Context, id uint) (float64, error)
	// Delete removes the harvest with its details and sales.
	Delete(dbc dbctx.Context, id uint) error
}

type HarvestDetailRepository interface {
	Create(dbc dbctx.Context, d *entities.HarvestDetail) error
	CreateBatch(dbc dbctx.Context, ds []*entities.HarvestDetail) error
	Update(dbc dbctx.Context, d *entities.HarvestDetail) error
	FindByID(dbc dbctx.Context, id uint) (*entities.HarvestDetail, error)
	List(dbc dbctx.Context) ([]entities.HarvestDetail, error)
	FindByHarvest(dbc dbctx.Context, harvestID uint) ([]entities.HarvestDetail, error)
	FindByTree(dbc dbctx.Context, treeID uint) ([]entities.HarvestDetail, error)
	SumQuantityByHarvest(dbc dbctx.Context, harvestID uint) (float64, error)
	ExistsForTreeSeasonYear(dbc dbctx.Context, treeID uint, s season.Season, year int) (bool, error)
	// HarvestedTrees reports which of treeIDs already have a detail in (season, year).
	HarvestedTrees(dbc dbctx.Context, treeIDs []uint, s season.Season, year int) (map[uint]bool, error)
	Delete(dbc dbctx.Context, id uint) error
}
