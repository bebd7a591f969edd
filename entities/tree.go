package entities

import (
	"time"

	"citronix/pkg/rules"
)

type Tree struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FieldID   uint      `gorm:"not null;index" json:"field_id"`
	PlantDate time.Time `gorm:"not null;index" json:"plant_date"`

	Field *Field `gorm:"foreignKey:FieldID" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Age and Productivity are derived against ref, never stored.
func (t *Tree) Age(ref time.Time) int { return rules.WholeYearsBetween(t.PlantDate, ref) }

func (t *Tree) Productivity(ref time.Time) float64 { return rules.ProductivityOf(t.PlantDate, ref) }
