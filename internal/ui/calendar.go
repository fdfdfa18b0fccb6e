package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

// calendarView is the পুঞ্জিকা popup. It owns the cursor; the grid is redrawn
// from bangla.BuildMonth whenever the cursor moves.
type calendarView struct {
	app    *BongabdoApp
	window fyne.Window
	cursor bangla.Cursor

	title    *widget.Label
	subtitle *widget.Label
	status   *widget.Label
	header   [config.GridColumns]*widget.Label
	cells    []*dayCell
}

// ShowCalendarWindow opens the calendar on the current month, or focuses it.
func (app *BongabdoApp) ShowCalendarWindow() {
	if app.calendar != nil {
		app.calendar.window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenCalendar, config.LogKeyComponent, config.CompUICal)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinCalendar))
	v := &calendarView{
		app:    app,
		window: w,
		cursor: bangla.CursorFor(app.Today()),
	}
	w.SetContent(v.build())
	w.Canvas().SetOnTypedKey(v.typedKey)
	w.Resize(fyne.NewSize(config.CalendarWinWidth, config.CalendarWinHeight))
	w.SetOnClosed(func() { app.calendar = nil })

	app.calendar = v
	v.render()
	w.Show()
}

func (v *calendarView) build() fyne.CanvasObject {
	v.title = widget.NewLabel("")
	v.title.Alignment = fyne.TextAlignCenter
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	v.subtitle = widget.NewLabel("")
	v.subtitle.Alignment = fyne.TextAlignCenter

	v.status = widget.NewLabel("")
	v.status.Alignment = fyne.TextAlignCenter

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.prev)
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), v.next)
	today := widget.NewButton(v.app.GetMsg(config.TKeyNavToday), v.home)

	heading := container.NewBorder(nil, nil, prev, next,
		container.NewVBox(v.title, v.subtitle))

	grid := container.NewGridWithColumns(config.GridColumns)
	for i := range v.header {
		l := widget.NewLabel("")
		l.Alignment = fyne.TextAlignCenter
		l.TextStyle = fyne.TextStyle{Bold: true}
		v.header[i] = l
		grid.Add(l)
	}

	v.cells = make([]*dayCell, config.GridRows*config.GridColumns)
	for i := range v.cells {
		v.cells[i] = newDayCell(v.hover, v.leave)
		grid.Add(v.cells[i])
	}

	return container.NewPadded(container.NewBorder(heading,
		container.NewVBox(v.status, today), nil, nil, grid))
}

// render redraws the window from the cursor.
func (v *calendarView) render() {
	m := bangla.BuildMonth(v.cursor, v.app.Today())

	v.title.SetText(m.Title)
	v.subtitle.SetText(m.Subtitle)
	for i, name := range m.Weekdays {
		v.header[i].SetText(name)
	}

	for i, c := range v.cells {
		var cell bangla.Cell
		if i < m.CellCount() {
			cell = m.Weeks[i/config.GridColumns][i%config.GridColumns]
		}
		c.set(cell)
	}

	v.status.SetText(v.hoverText())
}

// hoverText describes the hovered day with its Gregorian date, when it has one.
func (v *calendarView) hoverText() string {
	if !v.cursor.HasHover() {
		return ""
	}
	d := bangla.Date{Day: v.cursor.HoverDay, Month: v.cursor.Month, Year: v.cursor.Year}
	label := bangla.Ordinal(d.Day) + " " + bangla.MonthName(d.Month)
	if !bangla.Exists(d) {
		// No Gregorian day converts to it.
		return label
	}
	g := bangla.ToGregorian(d)
	return label + " • " + v.app.GetMsgWith(config.TKeyHoverGregorian, map[string]any{"Date": g.String()})
}

func (v *calendarView) prev() { v.move(v.cursor.Retreat()) }
func (v *calendarView) next() { v.move(v.cursor.Advance()) }
func (v *calendarView) home() { v.move(bangla.CursorFor(v.app.Today())) }

func (v *calendarView) move(c bangla.Cursor) {
	v.cursor = c.ClearHover()
	slog.Debug(config.MsgNavigate,
		config.LogKeyComponent, config.CompUICal,
		config.LogKeyMonth, v.cursor.Month,
		config.LogKeyYear, v.cursor.Year)
	v.render()
}

func (v *calendarView) hover(day int) {
	v.cursor = v.cursor.WithHover(day)
	v.render()
}

func (v *calendarView) leave() {
	if !v.cursor.HasHover() {
		return
	}
	v.cursor = v.cursor.ClearHover()
	v.render()
}

// typedKey maps Left/Right to month navigation and Escape to close.
func (v *calendarView) typedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyLeft:
		v.prev()
	case fyne.KeyRight:
		v.next()
	case fyne.KeyEscape:
		v.window.Close()
	}
}
