package entities

import (
	"time"

	"citronix/pkg/rules"
)

type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Customer  string    `gorm:"size:255;not null;index" json:"customer"`
	HarvestID uint      `gorm:"not null;index" json:"harvest_id"`

	Harvest *Harvest `gorm:"foreignKey:HarvestID" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revenue follows the linked harvest's current total. Harvest must be loaded.
func (s *Sale) Revenue() float64 {
	if s.Harvest == nil {
		return 0
	}
	return rules.Revenue(s.UnitPrice, s.Harvest.TotalQuantity)
}
