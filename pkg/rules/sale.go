package rules

import (
	"time"

	"citronix/pkg/apperr"
)

func ValidateHarvestHasQuantity(totalQuantity float64) error {
	if totalQuantity <= 0 {
		return apperr.BusinessRule("Cannot create sale for harvest with no quantity")
	}
	return nil
}

func ValidateSaleNotBeforeHarvest(saleDate, harvestDate time.Time) error {
	if DateOf(saleDate).Before(DateOf(harvestDate)) {
		return apperr.BusinessRule("Sale date cannot be before harvest date")
	}
	return nil
}

// ValidateHarvestNotAlreadySold is checked on sale creation only.
func ValidateHarvestNotAlreadySold(harvestID uint, sold bool) error {
	if sold {
		return apperr.BusinessRule("Harvest %d has already been sold", harvestID)
	}
	return nil
}
