package service

import (
	"context"
	"time"

	"citronix/entities"
)

// FarmInput carries the mutable farm attributes for create and update.
type FarmInput struct {
	Name         string
	Location     string
	Area         float64
	CreationDate time.Time
}

type FarmService interface {
	CreateFarm(ctx context.Context, in FarmInput) (*entities.Farm, error)
	UpdateFarm(ctx context.Context, id uint, in FarmInput) (*entities.Farm, error)
	GetFarm(ctx context.Context, id uint) (*entities.Farm, error)
	GetFarmWithFields(ctx context.Context, id uint) (*entities.Farm, error)
	ListFarms(ctx context.Context) ([]entities.Farm, error)
	LeftArea(ctx context.Context, id uint) (float64, error)
	DeleteFarm(ctx context.Context, id uint) error
	FarmsByMinArea(ctx context.Context, minArea float64) ([]entities.Farm, error)
	FarmsByCreationDate(ctx context.Context, start, end time.Time) ([]entities.Farm, error)
	NameExists(ctx context.Context, name string) (bool, error)
}
