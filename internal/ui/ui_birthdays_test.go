package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
)

func names(entries []engine.BirthdayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func sampleBirthdays() []engine.BirthdayEntry {
	day := func(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
	return []engine.BirthdayEntry{
		{Name: "Karim", NextOccurrence: day(2026, 6, 15), YearKnown: true, AgeNext: 40,
			BanglaBirth: bangla.Date{Day: 1, Month: 2, Year: 1393}},
		{Name: "amina", NextOccurrence: day(2025, 12, 21), YearKnown: false,
			BanglaBirth: bangla.Date{Day: 6, Month: 8}},
		{Name: "Rahim", NextOccurrence: day(2026, 1, 1), YearKnown: true, AgeNext: 26,
			BanglaBirth: bangla.Date{Day: 18, Month: 8, Year: 1406}},
		{Name: "Baby", NextOccurrence: day(2026, 6, 16), YearKnown: true, AgeNext: 0,
			BanglaBirth: bangla.Date{Day: 2, Month: 2, Year: 1433}},
	}
}

func TestSortBirthdays(t *testing.T) {
	tests := []struct {
		name string
		col  int
		asc  bool
		want []string
	}{
		{"NextDate_Asc", config.ColIDNextDate, true, []string{"amina", "Rahim", "Karim", "Baby"}},
		{"NextDate_Desc", config.ColIDNextDate, false, []string{"Baby", "Karim", "Rahim", "amina"}},
		{"Name_CaseInsensitive", config.ColIDName, true, []string{"amina", "Baby", "Karim", "Rahim"}},
		{"BanglaDate_Asc", config.ColIDBanglaDate, true, []string{"Karim", "Baby", "amina", "Rahim"}},
		{"Age_UnknownLast", config.ColIDAge, true, []string{"Baby", "Rahim", "Karim", "amina"}},
		{"Age_Desc", config.ColIDAge, false, []string{"amina", "Karim", "Rahim", "Baby"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := sampleBirthdays()
			sortBirthdays(entries, tt.col, tt.asc)
			assert.Equal(t, tt.want, names(entries))
		})
	}
}

func TestSortBirthdays_TieBreak(t *testing.T) {
	same := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []engine.BirthdayEntry{
		{Name: "Zaman", NextOccurrence: same},
		{Name: "anis", NextOccurrence: same},
	}
	sortBirthdays(entries, config.ColIDNextDate, true)
	assert.Equal(t, []string{"anis", "Zaman"}, names(entries))
}

func TestBirthdayCells(t *testing.T) {
	app, _, _ := setupTestApp(t)
	e := sampleBirthdays()[2]

	assert.Equal(t, "Rahim", app.birthdayCell(e, config.ColIDName))
	assert.Equal(t, "১৮ই পৌষ", app.birthdayCell(e, config.ColIDBanglaDate))
	assert.Equal(t, "2026-01-01", app.birthdayCell(e, config.ColIDNextDate))
	assert.Equal(t, "২৬", app.birthdayCell(e, config.ColIDAge))

	useLanguage(app, "en")
	assert.Equal(t, "26", app.formatAge(e))
	assert.Equal(t, "0", app.formatAge(sampleBirthdays()[3]))
	assert.Equal(t, config.AgeUnknown, app.formatAge(sampleBirthdays()[1]))
}

func TestColumnTitleKeys(t *testing.T) {
	assert.Equal(t, config.TKeyColName, columnTitleKey(config.ColIDName))
	assert.Equal(t, config.TKeyColBanglaDate, columnTitleKey(config.ColIDBanglaDate))
	assert.Equal(t, config.TKeyColNextDate, columnTitleKey(config.ColIDNextDate))
	assert.Equal(t, config.TKeyColAge, columnTitleKey(config.ColIDAge))
}

func TestBirthdaysWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Birthdays = sampleBirthdays()

	app.ShowBirthdaysWindow()
	w := app.birthdaysWindow
	assert.NotNil(t, w)

	app.ShowBirthdaysWindow()
	assert.Equal(t, w, app.birthdaysWindow, "second call focuses the open window")

	w.Close()
	assert.Nil(t, app.birthdaysWindow)
	assert.Equal(t, "Karim", app.Birthdays[0].Name, "the window sorts a copy")
}
