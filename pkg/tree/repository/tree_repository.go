package repository

import (
	"time"

	"citronix/entities"
	"citronix/pkg/dbctx"
)

type TreeRepository interface {
	Create(dbc dbctx.Context, t *entities.Tree) error
	CreateBatch(dbc dbctx.Context, ts []*entities.Tree) error
	Update(dbc dbctx.Context, t *entities.Tree) error
	FindByID(dbc dbctx.Context, id uint) (*entities.Tree, error)
	List(dbc dbctx.Context) ([]entities.Tree, error)
	FindByField(dbc dbctx.Context, fieldID uint) ([]entities.Tree, error)
	// FindByFarm joins through the farm's fields.
	FindByFarm(dbc dbctx.Context, farmID uint) ([]entities.Tree, error)
	FindByPlantDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Tree, error)
	FindPlantedOnOrBefore(dbc dbctx.Context, cutoff time.Time) ([]entities.Tree, error)
	CountByField(dbc dbctx.Context, fieldID uint) (int, error)
	CountByFieldPlantedBetween(dbc dbctx.Context, fieldID uint, start, end time.Time) (int, error)
	// Delete removes the tree and its harvest details, then recomputes the
	// affected harvest totals.
	Delete(dbc dbctx.Context, id uint) error
}
