package entities

import (
	"time"

	"citronix/pkg/rules"
)

type Field struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	FarmID uint    `gorm:"not null;index" json:"farm_id"`
	Area   float64 `gorm:"not null" json:"area"`

	Farm  *Farm  `gorm:"foreignKey:FarmID" json:"-"`
	Trees []Tree `gorm:"foreignKey:FieldID" json:"trees,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *Field) MaxTreeCapacity() int { return rules.MaxTreeCapacity(f.Area) }

// AvailableSpaces needs the tree count since Trees may not be loaded.
func (f *Field) AvailableSpaces(treeCount int) int {
	if left := f.MaxTreeCapacity() - treeCount; left > 0 {
		return left
	}
	return 0
}
