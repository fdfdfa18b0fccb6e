package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

// dateWidget is the small always-available window showing today's three
// lines. Tapping it opens the calendar.
type dateWidget struct {
	window fyne.Window
	lines  [3]*widget.Label
}

func (w *dateWidget) show(d bangla.Date) {
	for i, text := range d.Lines() {
		w.lines[i].SetText(text)
	}
}

// texts returns what the widget currently displays.
func (w *dateWidget) texts() [3]string {
	var out [3]string
	for i, l := range w.lines {
		out[i] = l.Text
	}
	return out
}

// ShowDateWidget opens the date window, or focuses it when already open.
// Closing it only hides it; the tray keeps the application alive.
func (app *BongabdoApp) ShowDateWidget() {
	if app.dateWidget != nil {
		app.dateWidget.window.Show()
		app.dateWidget.window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyAppTitle))
	dw := &dateWidget{window: w}

	box := container.NewVBox()
	for i := range dw.lines {
		l := widget.NewLabel("")
		l.Alignment = fyne.TextAlignCenter
		if i == 0 {
			l.TextStyle = fyne.TextStyle{Bold: true}
		}
		dw.lines[i] = l
		box.Add(l)
	}

	open := widget.NewButton(app.GetMsg(config.TKeyMenuCalendar), func() {
		app.ShowCalendarWindow()
	})
	open.Importance = widget.LowImportance

	w.SetContent(container.NewPadded(container.NewBorder(nil, open, nil, nil, box)))
	w.Resize(fyne.NewSize(config.WidgetWinWidth, config.WidgetWinHeight))
	w.SetFixedSize(true)
	w.SetCloseIntercept(func() { w.Hide() })

	app.dateWidget = dw
	app.refreshDate()
	w.Show()
}
