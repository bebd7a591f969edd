package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_MonthsPartitionIntoFourSeasons(t *testing.T) {
	want := map[time.Month]Season{
		time.January: Winter, time.February: Winter, time.March: Spring,
		time.April: Spring, time.May: Spring, time.June: Summer,
		time.July: Summer, time.August: Summer, time.September: Autumn,
		time.October: Autumn, time.November: Autumn, time.December: Winter,
	}
	counts := map[Season]int{}
	for m := time.January; m <= time.December; m++ {
		got := Of(time.Date(2024, m, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, want[m], got, "month %s", m)
		counts[got]++
	}
	for _, s := range All {
		assert.Equal(t, 3, counts[s], "season %s", s)
	}
}

func TestOf_MonthEdges(t *testing.T) {
	assert.Equal(t, Winter, Of(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Spring, Of(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Autumn, Of(time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Winter, Of(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParse(t *testing.T) {
	s, err := Parse(" spring ")
	require.NoError(t, err)
	assert.Equal(t, Spring, s)

	_, err = Parse("monsoon")
	assert.Error(t, err)
}

func TestSeason_ValueScan(t *testing.T) {
	v, err := Summer.Value()
	require.NoError(t, err)
	assert.Equal(t, "SUMMER", v)

	var s Season
	require.NoError(t, s.Scan([]byte("AUTUMN")))
	assert.Equal(t, Autumn, s)
	require.NoError(t, s.Scan("WINTER"))
	assert.Equal(t, Winter, s)
	assert.Error(t, s.Scan(42))
}
