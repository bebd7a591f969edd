package service

import (
	"context"

	"citronix/entities"
)

type FieldInput struct {
	FarmID uint
	Area   float64
}

type FieldService interface {
	CreateField(ctx context.Context, in FieldInput) (*entities.Field, error)
	// UpdateField resizes a field and may move it to another farm.
	UpdateField(ctx context.Context, id uint, in FieldInput) (*entities.Field, error)
	GetField(ctx context.Context, id uint) (*entities.Field, error)
	GetFieldWithTrees(ctx context.Context, id uint) (*entities.Field, error)
	ListFields(ctx context.Context) ([]entities.Field, error)
	FieldsByFarm(ctx context.Context, farmID uint) ([]entities.Field, error)
	FieldsByMaxArea(ctx context.Context, maxArea float64) ([]entities.Field, error)
	CountByFarm(ctx context.Context, farmID uint) (int, error)
	TotalAreaByFarm(ctx context.Context, farmID uint) (float64, error)
	TreeCounts(ctx context.Context, fieldIDs ...uint) (map[uint]int, error)
	DeleteField(ctx context.Context, id uint) error
}
