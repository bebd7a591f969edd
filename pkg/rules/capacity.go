package rules

import (
	"math"

	"citronix/pkg/apperr"
)

func ValidateFarmArea(area float64) error {
	if area <= 0 {
		return apperr.BusinessRule("Farm area must be positive")
	}
	return nil
}

func ValidateFieldArea(area float64) error {
	if area < MinFieldArea {
		return apperr.BusinessRule("Field area must be at least %.1f hectares", MinFieldArea)
	}
	return nil
}

func ValidateFieldToFarmRatio(fieldArea, farmArea float64) error {
	if fieldArea > farmArea*MaxFieldFarmRatio {
		return apperr.BusinessRule("Field area cannot exceed 50%% of farm area")
	}
	return nil
}

// ValidateFarmFieldAddition checks a new field against the farm's existing
// fields. The total must stay strictly below the farm area.
func ValidateFarmFieldAddition(farmArea float64, fieldAreas []float64, newFieldArea float64) error {
	if len(fieldAreas) >= MaxFieldsPerFarm {
		return apperr.BusinessRule("Farm has reached maximum number of fields: %d", MaxFieldsPerFarm)
	}
	if UsedArea(fieldAreas)+newFieldArea >= farmArea {
		return apperr.BusinessRule("Total field area cannot exceed farm area")
	}
	return nil
}

// ValidateFieldUpdate re-checks a resized field against its farm. Unlike
// ValidateFarmFieldAddition the total may reach the farm area exactly.
func ValidateFieldUpdate(farmArea float64, fieldAreas map[uint]float64, fieldID uint, newArea float64) error {
	others := 0.0
	for id, a := range fieldAreas {
		if id != fieldID {
			others += a
		}
	}
	if others+newArea > farmArea {
		return apperr.BusinessRule(
			"Updated field area (%.1f) would exceed farm's capacity. Available area: %.1f",
			newArea, farmArea-others)
	}
	return nil
}

// ValidateFieldCount guards the field limit when a field moves into a farm.
func ValidateFieldCount(fieldCount int) error {
	if fieldCount >= MaxFieldsPerFarm {
		return apperr.BusinessRule("Farm has reached maximum number of fields: %d", MaxFieldsPerFarm)
	}
	return nil
}

// ValidateFarmResize checks that a farm's existing fields still fit a new area.
func ValidateFarmResize(newArea float64, fieldAreas []float64) error {
	if err := ValidateFarmArea(newArea); err != nil {
		return err
	}
	if len(fieldAreas) == 0 {
		return nil
	}
	if UsedArea(fieldAreas) >= newArea {
		return apperr.BusinessRule("Farm area must remain greater than its fields' total area (%.1f)", UsedArea(fieldAreas))
	}
	for _, a := range fieldAreas {
		if err := ValidateFieldToFarmRatio(a, newArea); err != nil {
			return err
		}
	}
	return nil
}

// MaxTreeCapacity is floor(area x trees per hectare). The epsilon keeps
// areas like 0.29 from flooring to 28 through float error.
func MaxTreeCapacity(fieldArea float64) int {
	return int(math.Floor(fieldArea*MaxTreesPerHectare + 1e-9))
}

func ValidateTreeDensity(fieldArea float64, currentTrees, additional int) error {
	limit := MaxTreeCapacity(fieldArea)
	if currentTrees+additional > limit {
		return apperr.BusinessRule("Maximum tree density exceeded. Maximum allowed: %d trees", limit)
	}
	return nil
}
