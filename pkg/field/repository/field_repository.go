package repository

import (
	"citronix/entities"
	"citronix/pkg/dbctx"
)

type FieldRepository interface {
	Create(dbc dbctx.Context, f *entities.Field) error
	Update(dbc dbctx.Context, f *entities.Field) error
	FindByID(dbc dbctx.Context, id uint) (*entities.Field, error)
	FindByIDWithTrees(dbc dbctx.Context, id uint) (*entities.Field, error)
	List(dbc dbctx.Context) ([]entities.Field, error)
	FindByFarm(dbc dbctx.Context, farmID uint) ([]entities.Field, error)
	FindByMaxArea(dbc dbctx.Context, maxArea float64) ([]entities.Field, error)
	CountByFarm(dbc dbctx.Context, farmID uint) (int, error)
	SumAreaByFarm(dbc dbctx.Context, farmID uint) (float64, error)
	// TreeCounts returns the number of trees per field; fields without trees map to 0.
	TreeCounts(dbc dbctx.Context, fieldIDs []uint) (map[uint]int, error)
	// Delete removes the field with its trees and their harvest details.
	Delete(dbc dbctx.Context, id uint) error
}
