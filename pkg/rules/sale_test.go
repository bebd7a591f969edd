package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScenarioE_SaleRules(t *testing.T) {
	assertRuleViolation(t, ValidateHarvestHasQuantity(0))
	assert.NoError(t, ValidateHarvestHasQuantity(5.0))

	assert.NoError(t, ValidateHarvestNotAlreadySold(1, false))
	assertRuleViolation(t, ValidateHarvestNotAlreadySold(1, true))
}

func TestValidateSaleNotBeforeHarvest(t *testing.T) {
	h := date(2024, time.April, 10)
	assert.NoError(t, ValidateSaleNotBeforeHarvest(h, h))
	assert.NoError(t, ValidateSaleNotBeforeHarvest(date(2024, time.April, 11), h))
	assertRuleViolation(t, ValidateSaleNotBeforeHarvest(date(2024, time.April, 9), h))
}
