package rules

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorp74/recal/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return model.Date(y, m, d)
}

func TestEasterSunday(t *testing.T) {
	known := map[int]time.Time{
		1583: date(1583, time.April, 10),
		2000: date(2000, time.April, 23),
		2008: date(2008, time.March, 23),
		2023: date(2023, time.April, 9),
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2038: date(2038, time.April, 25),
	}
	for year, want := range known {
		got, ok := EasterSunday(year)
		require.True(t, ok, "year %d", year)
		assert.Equal(t, want, got, "year %d", year)
	}
}

func TestEasterSundayBounds(t *testing.T) {
	for year := 1583; year <= 2200; year++ {
		got, ok := EasterSunday(year)
		require.True(t, ok, "year %d", year)
		assert.Equal(t, time.Sunday, got.Weekday(), "year %d", year)

		lo := date(year, time.March, 22)
		hi := date(year, time.April, 25)
		assert.False(t, got.Before(lo), "year %d: %v before 22 March", year, got)
		assert.False(t, got.After(hi), "year %d: %v after 25 April", year, got)
	}
}

func TestEasterSundayBefore1583(t *testing.T) {
	_, ok := EasterSunday(1582)
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		rule string
		year int
		want time.Time
		none bool
	}{
		// Easter-relative
		{rule: "E", year: 2024, want: date(2024, time.March, 31)},
		{rule: "E-2", year: 2024, want: date(2024, time.March, 29)},
		{rule: "E+1", year: 2025, want: date(2025, time.April, 21)},
		{rule: "E+39", year: 2024, want: date(2024, time.May, 9)},
		{rule: "E+0", year: 2023, want: date(2023, time.April, 9)},
		{rule: "E", year: 1500, none: true},
		{rule: "Easter", year: 2024, none: true},

		// Nth weekday of month
		{rule: "5/1#1", year: 2023, want: date(2023, time.May, 1)},
		{rule: "1/1#5", year: 2024, want: date(2024, time.January, 29)},
		{rule: "1/1#5", year: 2021, want: date(2021, time.January, 25)},
		{rule: "11/4#4", year: 2024, want: date(2024, time.November, 28)},
		{rule: "5/0#2", year: 2024, want: date(2024, time.May, 12)},
		{rule: "5/9#1", year: 2024, none: true},
		{rule: "5/1#0", year: 2024, none: true},
		{rule: "5/1#6", year: 2024, none: true},
		{rule: "13/1#1", year: 2024, none: true},

		// Conditional weekday
		{rule: "12/26?0+1", year: 2021, want: date(2021, time.December, 27)},
		{rule: "12/26?0+1", year: 2024, none: true},
		{rule: "12/26?4-2", year: 2024, want: date(2024, time.December, 24)},
		{rule: "12/25?", year: 2024, want: date(2024, time.December, 25)},
		{rule: "12/25?2024", year: 2030, want: date(2030, time.December, 25)},
		{rule: "12/25?x+1", year: 2024, none: true},
		{rule: "12/25?9+1", year: 2024, none: true},
		{rule: "12/25?0*1", year: 2024, none: true},

		// Annual
		{rule: "7/4", year: 2024, want: date(2024, time.July, 4)},
		{rule: "2/29", year: 2024, want: date(2024, time.February, 29)},
		{rule: "2/29", year: 2023, none: true},
		{rule: "2/30", year: 2024, none: true},
		{rule: "13/1", year: 2024, none: true},

		// Unrecognized
		{rule: "hello", year: 2024, none: true},
		{rule: "7/4/2024", year: 2024, none: true},
		{rule: "", year: 2024, none: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s@%d", tt.rule, tt.year), func(t *testing.T) {
			got, ok := Evaluate(tt.rule, tt.year).Get()
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNthWeekdayFifthMeansLast(t *testing.T) {
	// February 2023 has exactly four of every weekday; #5 steps back to
	// the last occurrence.
	got, ok := findNthWeekday(2023, 2, 1, 5).Get()
	require.True(t, ok)
	assert.Equal(t, date(2023, time.February, 27), got)

	// When a literal fifth occurrence exists it wins.
	got, ok = findNthWeekday(2024, 1, 1, 5).Get()
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 29), got)
}
