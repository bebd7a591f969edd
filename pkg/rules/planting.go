package rules

import (
	"time"

	"citronix/pkg/apperr"
)

func ValidatePlantingDate(d time.Time) error {
	m := int(d.Month())
	if m < PlantingStartMonth || m > PlantingEndMonth {
		return apperr.BusinessRule("Trees can only be planted between March and May")
	}
	return nil
}

func ValidateDateRange(start, end time.Time) error {
	if DateOf(start).After(DateOf(end)) {
		return apperr.BusinessRule("Start date must be before end date")
	}
	return nil
}
