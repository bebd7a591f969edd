package repository

import (
	"time"

	"citronix/entities"
	"citronix/pkg/dbctx"
)

type FarmRepository interface {
	Create(dbc dbctx.Context, f *entities.Farm) error
	Update(dbc dbctx.Context, f *entities.Farm) error
	FindByID(dbc dbctx.Context, id uint) (*entities.Farm, error)
	// FindByIDWithFields preloads fields and their trees.
	FindByIDWithFields(dbc dbctx.Context, id uint) (*entities.Farm, error)
	List(dbc dbctx.Context) ([]entities.Farm, error)
	ExistsByName(dbc dbctx.Context, name string, excludeID uint) (bool, error)
	FindByMinArea(dbc dbctx.Context, minArea float64) ([]entities.Farm, error)
	FindByCreationDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Farm, error)
	// Delete removes the farm with its fields, trees and their harvest details.
	Delete(dbc dbctx.Context, id uint) error
}
