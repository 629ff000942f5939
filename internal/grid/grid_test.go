package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/igorp74/recal/internal/model"
)

func TestMonthAt(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		offset    int
		wantYear  int
		wantMonth time.Month
	}{
		{"zero offset", 2024, time.June, 0, 2024, time.June},
		{"within year", 2024, time.January, 5, 2024, time.June},
		{"across year end", 2024, time.November, 2, 2025, time.January},
		{"full year ahead", 2024, time.March, 12, 2025, time.March},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := MonthAt(tt.year, tt.month, tt.offset)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29}, // leap
		{2023, time.February, 28},
		{1900, time.February, 28}, // century, not leap
		{2000, time.February, 29}, // 400-year rule
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month),
			"%d-%02d", tt.year, tt.month)
	}
}

func TestWeekGeometrySundayStartMonth(t *testing.T) {
	// September 2024 starts on a Sunday.
	first := model.Date(2024, time.September, 1)

	assert.Equal(t, 6, WeekOffset(first, true))
	assert.Equal(t, 0, WeekOffset(first, false))

	// monday-first: 6 leading blanks + 30 days = 6 week rows.
	assert.Equal(t, 6, WeeksInMonth(first, true))
	assert.Equal(t, 5, WeeksInMonth(first, false))

	// First monday-first week row holds only day 1, in the last cell.
	assert.Equal(t, -5, WeekStartDay(first, 0, true))
	assert.False(t, EmptyWeek(first, 0, true))
	assert.Equal(t, 2, WeekStartDay(first, 1, true))
}

func TestEmptyWeek(t *testing.T) {
	// February 2021: starts Monday, 28 days, exactly 4 monday-first weeks.
	first := model.Date(2021, time.February, 1)
	assert.Equal(t, 4, WeeksInMonth(first, true))
	assert.False(t, EmptyWeek(first, 3, true))
	assert.True(t, EmptyWeek(first, 4, true))
	assert.True(t, EmptyWeek(first, 5, true))
}

func TestWeekNumber(t *testing.T) {
	// 2024-01-01 is a Monday, ISO week 1.
	jan := model.Date(2024, time.January, 1)
	assert.Equal(t, 1, WeekNumber(jan, 0, true))
	assert.Equal(t, 2, WeekNumber(jan, 1, true))

	// January 2021 starts on a Friday; Jan 1-3 belong to ISO week 53 of
	// 2020, so the first row reports 53.
	jan21 := model.Date(2021, time.January, 1)
	assert.Equal(t, 53, WeekNumber(jan21, 0, true))
	assert.Equal(t, 1, WeekNumber(jan21, 1, true))
}
