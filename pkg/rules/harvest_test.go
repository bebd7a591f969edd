package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citronix/pkg/season"
)

func TestScenarioD_SeasonRules(t *testing.T) {
	d := date(2024, time.April, 10)
	assert.NoError(t, ValidateSeasonUniqueness(false, season.Spring, 2024))
	assert.NoError(t, ValidateSeasonMatchesDate(season.Spring, d))

	assertRuleViolation(t, ValidateSeasonUniqueness(true, season.Spring, 2024))
	assertRuleViolation(t, ValidateSeasonMatchesDate(season.Winter, d))
}

func TestValidateLockedFieldsUnchanged(t *testing.T) {
	d := date(2024, time.April, 10)
	assert.NoError(t, ValidateLockedFieldsUnchanged(false, d, season.Spring, date(2024, time.May, 1), season.Spring))
	assert.NoError(t, ValidateLockedFieldsUnchanged(true, d, season.Spring, d.Add(3*time.Hour), season.Spring))
	assertRuleViolation(t, ValidateLockedFieldsUnchanged(true, d, season.Spring, date(2024, time.May, 1), season.Spring))
	assertRuleViolation(t, ValidateLockedFieldsUnchanged(true, d, season.Spring, d, season.Summer))
}

func TestValidateTreeHarvestUpdate(t *testing.T) {
	assert.NoError(t, ValidateTreeHarvestUpdate(1, 1, true))
	assert.NoError(t, ValidateTreeHarvestUpdate(1, 2, false))
	assertRuleViolation(t, ValidateTreeHarvestUpdate(1, 2, true))
	assertRuleViolation(t, ValidateTreeNotAlreadyHarvested(3, season.Spring, 2024, true))
}

func TestValidateProductiveAge(t *testing.T) {
	assert.NoError(t, ValidateProductiveAge(1, 20))
	assertRuleViolation(t, ValidateProductiveAge(1, 21))
}

func bulkTarget(scope BulkScope) BulkTarget {
	return BulkTarget{
		Scope:       scope,
		ScopeID:     7,
		Season:      season.Spring,
		Year:        2024,
		HarvestDate: date(2024, time.April, 10),
		Now:         date(2024, time.April, 10),
	}
}

func TestSelectEligible_NoTrees(t *testing.T) {
	_, err := SelectEligible(bulkTarget(ScopeField), nil)
	require.Error(t, err)
	assertRuleViolation(t, err)
	assert.Contains(t, err.Error(), "No trees found in field 7")
}

func TestSelectEligible_AllHarvested(t *testing.T) {
	cands := []Candidate{
		{TreeID: 1, PlantDate: date(2015, time.April, 1), Harvested: true},
		{TreeID: 2, PlantDate: date(2015, time.April, 1), Harvested: true},
	}
	_, err := SelectEligible(bulkTarget(ScopeFarm), cands)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been harvested")
}

// Field scope drops trees aged 3 or younger; farm scope keeps them.
func TestSelectEligible_MinimumAgeOnlyForFieldScope(t *testing.T) {
	cands := []Candidate{
		{TreeID: 1, PlantDate: date(2021, time.April, 1)}, // 3 years
		{TreeID: 2, PlantDate: date(2020, time.April, 1)}, // 4 years
		{TreeID: 3, PlantDate: date(2023, time.April, 1)}, // 1 year
	}

	field, err := SelectEligible(bulkTarget(ScopeField), cands)
	require.NoError(t, err)
	require.Len(t, field, 1)
	assert.Equal(t, uint(2), field[0].TreeID)

	farm, err := SelectEligible(bulkTarget(ScopeFarm), cands)
	require.NoError(t, err)
	assert.Len(t, farm, 3)
}

func TestSelectEligible_OnlyYoungTreesInField(t *testing.T) {
	cands := []Candidate{{TreeID: 1, PlantDate: date(2023, time.April, 1)}}
	_, err := SelectEligible(bulkTarget(ScopeField), cands)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No eligible trees")
}

func TestSelectEligible_SkipsHarvestedAndSenescent(t *testing.T) {
	cands := []Candidate{
		{TreeID: 1, PlantDate: date(2010, time.April, 1), Harvested: true},
		{TreeID: 2, PlantDate: date(2000, time.April, 1)}, // 24 years at harvest
		{TreeID: 3, PlantDate: date(2012, time.April, 1)},
	}
	out, err := SelectEligible(bulkTarget(ScopeFarm), cands)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint(3), out[0].TreeID)
}
