// Package rules holds the farm and harvest invariants. Every function is pure:
// callers load what the rule needs from storage and pass plain values in.
package rules

const (
	// Yields in kg per season by age tier.
	YoungTreeProductivity  = 2.5
	MatureTreeProductivity = 12.0
	OldTreeProductivity    = 20.0

	YoungTreeAgeLimit  = 3
	MatureTreeAgeLimit = 10
	MaxTreeAge         = 20

	// Field-scoped bulk harvesting only takes trees strictly older than this.
	BulkFieldMinTreeAge = 3

	MinFieldArea       = 0.1
	MaxFieldFarmRatio  = 0.5
	MaxTreesPerHectare = 100
	MaxFieldsPerFarm   = 10
	PlantingStartMonth = 3
	PlantingEndMonth   = 5
)
