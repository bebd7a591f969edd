package entities

import (
	"time"

	"citronix/pkg/rules"
)

type Farm struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Location     string    `gorm:"size:255;not null" json:"location"`
	Area         float64   `gorm:"not null" json:"area"`
	CreationDate time.Time `gorm:"not null;index" json:"creation_date"`

	Fields []Field `gorm:"foreignKey:FarmID" json:"fields,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldAreas is only meaningful when Fields was preloaded.
func (f *Farm) FieldAreas() []float64 {
	out := make([]float64, 0, len(f.Fields))
	for _, fd := range f.Fields {
		out = append(out, fd.Area)
	}
	return out
}

func (f *Farm) LeftArea() float64 { return rules.LeftArea(f.Area, f.FieldAreas()) }
