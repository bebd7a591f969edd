package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"citronix/pkg/apperr"
)

func assertRuleViolation(t *testing.T, err error) {
	t.Helper()
	assert.True(t, apperr.IsKind(err, apperr.KindBusinessRule), "expected business rule violation, got %v", err)
}

func TestValidateFarmArea(t *testing.T) {
	assert.NoError(t, ValidateFarmArea(0.5))
	assertRuleViolation(t, ValidateFarmArea(0))
	assertRuleViolation(t, ValidateFarmArea(-1))
}

func TestValidateFieldArea(t *testing.T) {
	assert.NoError(t, ValidateFieldArea(0.1))
	assertRuleViolation(t, ValidateFieldArea(0.09))
}

func TestValidateFieldToFarmRatio(t *testing.T) {
	assert.NoError(t, ValidateFieldToFarmRatio(5.0, 10.0))
	assertRuleViolation(t, ValidateFieldToFarmRatio(5.01, 10.0))
}

func TestScenarioA_FieldAdditionTotalMustStayBelowFarmArea(t *testing.T) {
	farmArea := 10.0
	var fields []float64

	assert.NoError(t, ValidateFieldToFarmRatio(4.0, farmArea))
	assert.NoError(t, ValidateFarmFieldAddition(farmArea, fields, 4.0))
	fields = append(fields, 4.0)

	assertRuleViolation(t, ValidateFarmFieldAddition(farmArea, fields, 6.0))
	assert.NoError(t, ValidateFarmFieldAddition(farmArea, fields, 5.9))
}

func TestValidateFarmFieldAddition_CountLimit(t *testing.T) {
	fields := make([]float64, MaxFieldsPerFarm)
	for i := range fields {
		fields[i] = 0.1
	}
	assertRuleViolation(t, ValidateFarmFieldAddition(100, fields, 0.1))
	assert.NoError(t, ValidateFarmFieldAddition(100, fields[:9], 0.1))
}

// Creation rejects a total equal to the farm area; update accepts it.
func TestFieldCapacity_CreateAndUpdateBoundsDiffer(t *testing.T) {
	assertRuleViolation(t, ValidateFarmFieldAddition(10.0, []float64{5.0}, 5.0))

	fields := map[uint]float64{1: 5.0, 2: 4.0}
	assert.NoError(t, ValidateFieldUpdate(10.0, fields, 2, 5.0))
	assertRuleViolation(t, ValidateFieldUpdate(10.0, fields, 2, 5.1))
}

func TestValidateFieldUpdate_ExcludesSelf(t *testing.T) {
	fields := map[uint]float64{1: 4.0}
	assert.NoError(t, ValidateFieldUpdate(10.0, fields, 1, 5.0))
}

func TestValidateFarmResize(t *testing.T) {
	assert.NoError(t, ValidateFarmResize(10, nil))
	assert.NoError(t, ValidateFarmResize(10, []float64{4, 5}))
	assertRuleViolation(t, ValidateFarmResize(9, []float64{4, 5}))
	assertRuleViolation(t, ValidateFarmResize(9.5, []float64{5, 1}))
	assertRuleViolation(t, ValidateFarmResize(0, nil))
}

func TestScenarioB_TreeDensity(t *testing.T) {
	assert.Equal(t, 100, MaxTreeCapacity(1.0))
	for planted := 0; planted < 100; planted++ {
		assert.NoError(t, ValidateTreeDensity(1.0, planted, 1))
	}
	assertRuleViolation(t, ValidateTreeDensity(1.0, 100, 1))
	assertRuleViolation(t, ValidateTreeDensity(1.0, 0, 101))
}

func TestMaxTreeCapacity_Floors(t *testing.T) {
	assert.Equal(t, 10, MaxTreeCapacity(0.1))
	assert.Equal(t, 25, MaxTreeCapacity(0.255))
	assert.Equal(t, 29, MaxTreeCapacity(0.29))
	assertRuleViolation(t, ValidateTreeDensity(0.255, 25, 1))
}

func TestScenarioC_PlantingWindow(t *testing.T) {
	assertRuleViolation(t, ValidatePlantingDate(date(2024, time.January, 15)))
	assertRuleViolation(t, ValidatePlantingDate(date(2024, time.February, 29)))
	assertRuleViolation(t, ValidatePlantingDate(date(2024, time.June, 1)))
	for _, m := range []time.Month{time.March, time.April, time.May} {
		assert.NoError(t, ValidatePlantingDate(date(2024, m, 1)))
	}
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange(date(2024, 1, 1), date(2024, 1, 1)))
	assertRuleViolation(t, ValidateDateRange(date(2024, 1, 2), date(2024, 1, 1)))
}

func TestAggregates(t *testing.T) {
	assert.Equal(t, 4.5, LeftArea(10, []float64{4, 1.5}))
	assert.Equal(t, 10.0, LeftArea(10, nil))

	q := []float64{2.5, 12, 20}
	first := RecomputeHarvestTotal(q)
	assert.Equal(t, 34.5, first)
	assert.Equal(t, first, RecomputeHarvestTotal(q))
	assert.Equal(t, 0.0, RecomputeHarvestTotal(nil))

	assert.Equal(t, 17.5, Revenue(3.5, 5))
}
