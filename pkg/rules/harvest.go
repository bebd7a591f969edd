package rules

import (
	"time"

	"citronix/pkg/apperr"
	"citronix/pkg/season"
)

// ValidateSeasonUniqueness fails when another harvest already holds the
// (season, year) slot. Callers exclude the harvest being updated from the probe.
func ValidateSeasonUniqueness(exists bool, s season.Season, year int) error {
	if exists {
		return apperr.BusinessRule("A harvest already exists for season %s in year %d", s, year)
	}
	return nil
}

func ValidateSeasonMatchesDate(s season.Season, date time.Time) error {
	if expected := season.Of(date); s != expected {
		return apperr.BusinessRule("Invalid season %s for date %s. Expected season: %s",
			s, date.Format("2006-01-02"), expected)
	}
	return nil
}

// ValidateLockedFieldsUnchanged rejects date or season changes on a locked harvest.
func ValidateLockedFieldsUnchanged(locked bool, date time.Time, s season.Season, proposedDate time.Time, proposedSeason season.Season) error {
	if !locked {
		return nil
	}
	if !DateOf(date).Equal(DateOf(proposedDate)) || s != proposedSeason {
		return apperr.BusinessRule("Cannot change harvest date or season when harvest details exist")
	}
	return nil
}

func ValidateTreeNotAlreadyHarvested(treeID uint, s season.Season, year int, exists bool) error {
	if exists {
		return apperr.BusinessRule("Tree %d has already been harvested in %s %d", treeID, s, year)
	}
	return nil
}

// ValidateTreeHarvestUpdate only applies the exclusivity check when the detail
// is re-pointed at a different tree.
func ValidateTreeHarvestUpdate(currentTreeID, newTreeID uint, alreadyHarvested bool) error {
	if currentTreeID != newTreeID && alreadyHarvested {
		return apperr.BusinessRule("Tree %d already harvested in this season", newTreeID)
	}
	return nil
}

func ValidateProductiveAge(treeID uint, age int) error {
	if !IsProductiveAge(age) {
		return apperr.BusinessRule("Tree %d is %d years old and past its productive age of %d", treeID, age, MaxTreeAge)
	}
	return nil
}

func ValidateFarmHasFields(farmID uint, fieldCount int) error {
	if fieldCount == 0 {
		return apperr.BusinessRule("No fields found in farm %d", farmID)
	}
	return nil
}

type BulkScope string

const (
	ScopeField BulkScope = "field"
	ScopeFarm  BulkScope = "farm"
)

// Candidate is a tree considered for bulk harvesting.
type Candidate struct {
	TreeID    uint
	PlantDate time.Time
	// Harvested is true when the tree already has a detail in the target (season, year).
	Harvested bool
}

type BulkTarget struct {
	Scope       BulkScope
	ScopeID     uint
	Season      season.Season
	Year        int
	HarvestDate time.Time
	// Now is the reference date for the field-scoped minimum age filter.
	Now time.Time
}

// SelectEligible filters the trees under a scope down to those that can get a
// harvest detail. Field scope additionally drops trees aged BulkFieldMinTreeAge
// or less; farm scope does not. Nothing is returned unless the set is non-empty.
func SelectEligible(t BulkTarget, candidates []Candidate) ([]Candidate, error) {
	if len(candidates) == 0 {
		return nil, apperr.BusinessRule("No trees found in %s %d", t.Scope, t.ScopeID)
	}
	fresh := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Harvested {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		return nil, apperr.BusinessRule("All trees in %s %d have already been harvested in %s %d",
			t.Scope, t.ScopeID, t.Season, t.Year)
	}
	out := make([]Candidate, 0, len(fresh))
	for _, c := range fresh {
		if t.Scope == ScopeField && WholeYearsBetween(c.PlantDate, t.Now) <= BulkFieldMinTreeAge {
			continue
		}
		if !IsProductiveAge(WholeYearsBetween(c.PlantDate, t.HarvestDate)) {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, apperr.BusinessRule("No eligible trees in %s %d for %s %d",
			t.Scope, t.ScopeID, t.Season, t.Year)
	}
	return out, nil
}
