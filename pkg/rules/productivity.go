package rules

import "time"

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WholeYearsBetween counts completed years from `from` to `to`. The result is
// negative when `to` precedes `from`.
func WholeYearsBetween(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return -WholeYearsBetween(to, from)
	}
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// YieldForAge is the step function behind ProductivityOf.
func YieldForAge(age int) float64 {
	switch {
	case age > MaxTreeAge:
		return 0.0
	case age > MatureTreeAgeLimit:
		return OldTreeProductivity
	case age >= YoungTreeAgeLimit:
		return MatureTreeProductivity
	default:
		return YoungTreeProductivity
	}
}

// ProductivityOf returns a tree's yield in kg at the reference date.
func ProductivityOf(plantDate, referenceDate time.Time) float64 {
	return YieldForAge(WholeYearsBetween(plantDate, referenceDate))
}

// IsProductiveAge reports whether a tree of this age may still be harvested.
func IsProductiveAge(age int) bool { return age <= MaxTreeAge }
