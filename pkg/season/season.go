package season

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Season string

const (
	Winter Season = "WINTER"
	Spring Season = "SPRING"
	Summer Season = "SUMMER"
	Autumn Season = "AUTUMN"
)

// All lists the seasons in calendar order starting from the year's first month.
var All = []Season{Winter, Spring, Summer, Autumn}

// Of maps a calendar date to its season. Dec/Jan/Feb is winter.
func Of(d time.Time) Season {
	switch d.Month() {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

func (s Season) Valid() bool {
	switch s {
	case Winter, Spring, Summer, Autumn:
		return true
	}
	return false
}

func (s Season) String() string { return string(s) }

// Parse accepts the season name in any letter case.
func Parse(v string) (Season, error) {
	s := Season(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown season %q", v)
	}
	return s, nil
}

func (s Season) Value() (driver.Value, error) { return string(s), nil }

func (s *Season) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = Season(v)
	case []byte:
		*s = Season(string(v))
	case nil:
		*s = ""
	default:
		return fmt.Errorf("season: cannot scan %T", src)
	}
	return nil
}
