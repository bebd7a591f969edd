package entities

import (
	"time"

	"citronix/pkg/season"
)

type Harvest struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	Date   time.Time     `gorm:"not null;index" json:"date"`
	Season season.Season `gorm:"size:16;not null;uniqueIndex:idx_harvest_season_year" json:"season"`
	// Year mirrors Date so (season, year) can be a storage constraint.
	Year          int     `gorm:"not null;uniqueIndex:idx_harvest_season_year" json:"year"`
	TotalQuantity float64 `gorm:"not null;default:0" json:"total_quantity"`
	// Locked is set when the first detail is attached and never cleared.
	Locked bool `gorm:"not null;default:false" json:"locked"`

	Details []HarvestDetail `gorm:"foreignKey:HarvestID" json:"details,omitempty"`
	Sales   []Sale          `gorm:"foreignKey:HarvestID" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type HarvestDetail struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	HarvestID uint    `gorm:"not null;uniqueIndex:idx_detail_harvest_tree" json:"harvest_id"`
	TreeID    uint    `gorm:"not null;uniqueIndex:idx_detail_harvest_tree;index" json:"tree_id"`
	Quantity  float64 `gorm:"not null" json:"quantity"`

	Harvest *Harvest `gorm:"foreignKey:HarvestID" json:"-"`
	Tree    *Tree    `gorm:"foreignKey:TreeID" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
