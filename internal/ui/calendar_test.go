package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

func openCalendar(t *testing.T) (*BongabdoApp, *calendarView) {
	t.Helper()
	app, _, _ := setupTestApp(t)
	app.ShowCalendarWindow()
	require.NotNil(t, app.calendar)
	return app, app.calendar
}

func TestCalendar_OpensOnToday(t *testing.T) {
	_, v := openCalendar(t)

	assert.Equal(t, bangla.Cursor{Month: 8, Year: 1432}, v.cursor)
	assert.Equal(t, "পৌষ", v.title.Text)
	assert.Equal(t, "১৪৩২ বঙ্গাব্দ • শীতকাল", v.subtitle.Text)
	assert.Equal(t, "রবি", v.header[0].Text)
	assert.Equal(t, "শনি", v.header[6].Text)
	assert.Len(t, v.cells, config.GridRows*config.GridColumns)
}

func TestCalendar_Singleton(t *testing.T) {
	app, v := openCalendar(t)
	app.ShowCalendarWindow()
	assert.Same(t, v, app.calendar)
}

func TestCalendar_GridCells(t *testing.T) {
	_, v := openCalendar(t)

	first := bangla.FirstWeekdayOfMonth(8, 1432)
	for i := 0; i < first; i++ {
		assert.Empty(t, v.cells[i].Text, "leading blank %d", i)
		assert.True(t, v.cells[i].Disabled())
	}

	one := v.cells[first]
	assert.Equal(t, "১", one.Text)
	assert.Equal(t, 1, one.day)
	assert.False(t, one.Disabled())

	// Today (5 Poush) is highlighted.
	today := v.cells[first+4]
	assert.Equal(t, "৫", today.Text)
	assert.Equal(t, widget.HighImportance, today.Importance)
	assert.Equal(t, widget.LowImportance, one.Importance)

	last := v.cells[first+bangla.DaysInMonth(8, 1432)-1]
	assert.Equal(t, "৩০", last.Text)
	assert.Empty(t, v.cells[first+bangla.DaysInMonth(8, 1432)].Text, "trailing blank")
}

func TestCalendar_Navigation(t *testing.T) {
	_, v := openCalendar(t)

	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, bangla.Cursor{Month: 9, Year: 1432}, v.cursor)
	assert.Equal(t, "মাঘ", v.title.Text)

	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	assert.Equal(t, bangla.Cursor{Month: 7, Year: 1432}, v.cursor)
	assert.Equal(t, "অগ্রহায়ণ", v.title.Text)

	// No highlight outside today's month.
	for _, c := range v.cells {
		assert.NotEqual(t, widget.HighImportance, c.Importance)
	}

	v.home()
	assert.Equal(t, bangla.Cursor{Month: 8, Year: 1432}, v.cursor)
}

func TestCalendar_YearRollover(t *testing.T) {
	_, v := openCalendar(t)

	for i := 0; i < 4; i++ {
		v.next()
	}
	assert.Equal(t, bangla.Cursor{Month: bangla.Boishakh, Year: 1433}, v.cursor)
	assert.Equal(t, "১৪৩৩ বঙ্গাব্দ • গ্রীষ্মকাল", v.subtitle.Text)

	v.prev()
	assert.Equal(t, bangla.Cursor{Month: bangla.Choitro, Year: 1432}, v.cursor)
}

func TestCalendar_Hover(t *testing.T) {
	app, v := openCalendar(t)
	useLanguage(app, "en")

	first := bangla.FirstWeekdayOfMonth(8, 1432)
	cell := v.cells[first+19]
	cell.MouseIn(&desktop.MouseEvent{})

	assert.Equal(t, 20, v.cursor.HoverDay)
	assert.Equal(t, "২০শে পৌষ • Gregorian: 2026-01-03", v.status.Text)

	cell.MouseOut()
	assert.False(t, v.cursor.HasHover())
	assert.Empty(t, v.status.Text)

	// Blank cells do not hover.
	if first > 0 {
		v.cells[0].MouseIn(&desktop.MouseEvent{})
		assert.False(t, v.cursor.HasHover())
	}

	v.hover(3)
	v.next()
	assert.False(t, v.cursor.HasHover(), "navigation clears the hover")
}

func TestCalendar_HoverSkippedDay(t *testing.T) {
	app, v := openCalendar(t)
	useLanguage(app, "en")

	// 17 Poush 1432 is never produced by the converter.
	v.hover(17)
	assert.Equal(t, "১৭ই পৌষ", v.status.Text)

	v.hover(18)
	assert.Equal(t, "১৮ই পৌষ • Gregorian: 2026-01-01", v.status.Text)
}

func TestCalendar_EscapeCloses(t *testing.T) {
	app, v := openCalendar(t)

	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Nil(t, app.calendar)
}

func TestCalendar_FollowsDayChange(t *testing.T) {
	app, v := openCalendar(t)
	first := bangla.FirstWeekdayOfMonth(8, 1432)

	app.Clock = MockClock{CurrentTime: lateEvening.AddDate(0, 0, 1)}
	require.True(t, app.refreshDate())

	assert.Equal(t, widget.HighImportance, v.cells[first+5].Importance)
	assert.Equal(t, widget.LowImportance, v.cells[first+4].Importance)
}

func TestCalendar_RefreshFromWorker(t *testing.T) {
	app, v := openCalendar(t)
	app.ShowDateWidget()
	first := bangla.FirstWeekdayOfMonth(8, 1432)

	// The test goroutine plays the UI loop.
	queued := make(chan func(), 4)
	app.runOnMain = func(fn func()) { queued <- fn }
	app.Clock = MockClock{CurrentTime: lateEvening.AddDate(0, 0, 1)}

	changed := make(chan bool)
	go func() { changed <- app.refreshDate() }()

	for day := 1; day <= 10; day++ {
		v.hover(day)
	}
	require.True(t, <-changed)

	assert.Equal(t, "৫ই পৌষ,", app.dateWidget.texts()[0], "nothing is drawn off the UI goroutine")
	require.Len(t, queued, 1)
	(<-queued)()

	assert.Equal(t, "৬ই পৌষ,", app.dateWidget.texts()[0])
	assert.Equal(t, widget.HighImportance, v.cells[first+5].Importance)
	assert.Equal(t, 10, v.cursor.HoverDay)
}
