package bangla_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
)

// TestIsLeapYear covers the three branches of the Gregorian rule.
func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2025, false},
		{1900, false}, // century, not divisible by 400
		{2000, true},  // divisible by 400
		{2100, false},
		{1600, true},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, bangla.IsLeapYear(tt.year), "year %d", tt.year)
	}
}

// TestIsLeapYear_Periodicity checks the 400-year cycle over a wide range.
func TestIsLeapYear_Periodicity(t *testing.T) {
	for y := 1200; y <= 2800; y++ {
		assert.Equalf(t, bangla.IsLeapYear(y), bangla.IsLeapYear(y+400), "year %d", y)
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             int
	}{
		{"First day", 2025, 1, 1, 1},
		{"Mid April, common year", 2025, 4, 14, 104},
		{"Mid April, leap year", 2024, 4, 14, 105},
		{"Leap day", 2024, 2, 29, 60},
		{"Last day, common year", 2025, 12, 31, 365},
		{"Last day, leap year", 2024, 12, 31, 366},
		{"December 21", 2025, 12, 21, 355},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bangla.DayOfYear(tt.year, tt.month, tt.day))
		})
	}
}

// TestWeekday spot-checks dates across several centuries.
func TestWeekday(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             int
	}{
		{"Millennium (Saturday)", 2000, 1, 1, 6},
		{"Pohela Boishakh 1432 (Monday)", 2025, 4, 14, 1},
		{"Unix epoch (Thursday)", 1970, 1, 1, 4},
		{"1900-01-01 (Monday)", 1900, 1, 1, 1},
		{"1776-07-04 (Thursday)", 1776, 7, 4, 4},
		{"Leap day 2024 (Thursday)", 2024, 2, 29, 4},
		{"1600-02-29 (Tuesday)", 1600, 2, 29, 2},
		{"2400-03-01 (Wednesday)", 2400, 3, 1, 3},
		{"2025-12-21 (Sunday)", 2025, 12, 21, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bangla.Weekday(tt.year, tt.month, tt.day))
		})
	}
}

func TestTimestampToDate(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		want bangla.GregorianDate
	}{
		{"Epoch", 0, bangla.GregorianDate{Year: 1970, Month: 1, Day: 1}},
		{"Last second of epoch day", 86399, bangla.GregorianDate{Year: 1970, Month: 1, Day: 1}},
		{"Leap day 2000", 951782400, bangla.GregorianDate{Year: 2000, Month: 2, Day: 29}},
		{"Pohela Boishakh 1432", 1744588800, bangla.GregorianDate{Year: 2025, Month: 4, Day: 14}},
		{"New Year's Eve of a leap year", 1735603200, bangla.GregorianDate{Year: 2024, Month: 12, Day: 31}},
		{"Winter solstice 2025", 1766275200, bangla.GregorianDate{Year: 2025, Month: 12, Day: 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bangla.TimestampToDate(tt.ts))
		})
	}
}

func TestGregorianDate_Next(t *testing.T) {
	tests := []struct {
		in, want bangla.GregorianDate
	}{
		{bangla.GregorianDate{Year: 2025, Month: 4, Day: 14}, bangla.GregorianDate{Year: 2025, Month: 4, Day: 15}},
		{bangla.GregorianDate{Year: 2024, Month: 2, Day: 28}, bangla.GregorianDate{Year: 2024, Month: 2, Day: 29}},
		{bangla.GregorianDate{Year: 2025, Month: 2, Day: 28}, bangla.GregorianDate{Year: 2025, Month: 3, Day: 1}},
		{bangla.GregorianDate{Year: 2025, Month: 12, Day: 31}, bangla.GregorianDate{Year: 2026, Month: 1, Day: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Next(), tt.in.String())
	}
}

func TestGregorianDate_Valid(t *testing.T) {
	assert.True(t, bangla.GregorianDate{Year: 2024, Month: 2, Day: 29}.Valid())
	assert.False(t, bangla.GregorianDate{Year: 2025, Month: 2, Day: 29}.Valid())
	assert.False(t, bangla.GregorianDate{Year: 2025, Month: 13, Day: 1}.Valid())
	assert.False(t, bangla.GregorianDate{Year: 2025, Month: 1, Day: 0}.Valid())
	assert.False(t, bangla.GregorianDate{Year: 2025, Month: 4, Day: 31}.Valid())
}

func TestGregorianDate_Before(t *testing.T) {
	a := bangla.GregorianDate{Year: 2025, Month: 4, Day: 14}

	assert.True(t, a.Before(bangla.GregorianDate{Year: 2025, Month: 4, Day: 15}))
	assert.True(t, a.Before(bangla.GregorianDate{Year: 2025, Month: 5, Day: 1}))
	assert.True(t, a.Before(bangla.GregorianDate{Year: 2026, Month: 1, Day: 1}))
	assert.False(t, a.Before(a))
	assert.False(t, a.Before(bangla.GregorianDate{Year: 2024, Month: 12, Day: 31}))
}
