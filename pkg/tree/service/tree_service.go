package service

import (
	"context"
	"time"

	"citronix/entities"
)

type TreeInput struct {
	FieldID   uint
	PlantDate time.Time
}

// Productivity is a tree's yield evaluated at ReferenceDate.
type Productivity struct {
	TreeID        uint      `json:"tree_id"`
	Age           int       `json:"age"`
	Productivity  float64   `json:"productivity"`
	ReferenceDate time.Time `json:"-"`
}

type TreeService interface {
	PlantTree(ctx context.Context, in TreeInput) (*entities.Tree, error)
	// PlantTrees plants every date on the field or none of them.
	PlantTrees(ctx context.Context, fieldID uint, plantDates []time.Time) ([]entities.Tree, error)
	UpdateTree(ctx context.Context, id uint, in TreeInput) (*entities.Tree, error)
	GetTree(ctx context.Context, id uint) (*entities.Tree, error)
	ListTrees(ctx context.Context) ([]entities.Tree, error)
	TreesByField(ctx context.Context, fieldID uint) ([]entities.Tree, error)
	TreesByPlantingPeriod(ctx context.Context, start, end time.Time) ([]entities.Tree, error)
	TreesOlderThan(ctx context.Context, years int) ([]entities.Tree, error)
	CountByField(ctx context.Context, fieldID uint) (int, error)
	CountPlantedInPeriod(ctx context.Context, fieldID uint, start, end time.Time) (int, error)
	Productivity(ctx context.Context, id uint) (Productivity, error)
	DeleteTree(ctx context.Context, id uint) error
	// Now is the reference date used for derived age and productivity.
	Now() time.Time
}
