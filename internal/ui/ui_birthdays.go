package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
)

// ShowBirthdaysWindow displays all Bangla birthdays sorted by next occurrence.
// It implements a singleton pattern: if the window is already open, it requests focus.
// It uses native Fyne table headers for sorting interaction.
func (app *BongabdoApp) ShowBirthdaysWindow() {
	if app.birthdaysWindow != nil {
		app.birthdaysWindow.RequestFocus()
		return
	}

	app.birthdaysWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinBirthdays))
	app.birthdaysWindow.Resize(fyne.NewSize(config.BirthdaysWinWidth, config.BirthdaysWinHeight))

	// Local copy for sorting and display.
	app.BirthdaysMut.RLock()
	entries := make([]engine.BirthdayEntry, len(app.Birthdays))
	copy(entries, app.Birthdays)
	app.BirthdaysMut.RUnlock()

	slog.Info(config.MsgOpenBirthdays,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(entries))

	currentSortCol := config.ColIDNextDate
	sortAsc := true

	var refreshTable func()

	performSort := func() {
		sortBirthdays(entries, currentSortCol, sortAsc)
		slog.Debug(config.MsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(entries), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(entries) {
				return
			}
			label.SetText(app.birthdayCell(entries[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}

	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := app.GetMsg(columnTitleKey(id.Col))
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDBanglaDate, config.ColWidthBanglaDate)
	table.SetColumnWidth(config.ColIDNextDate, config.ColWidthNextDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	app.birthdaysWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.birthdaysWindow.SetOnClosed(func() {
		app.birthdaysWindow = nil
	})
	app.birthdaysWindow.Show()
}

func columnTitleKey(col int) string {
	switch col {
	case config.ColIDName:
		return config.TKeyColName
	case config.ColIDBanglaDate:
		return config.TKeyColBanglaDate
	case config.ColIDNextDate:
		return config.TKeyColNextDate
	default:
		return config.TKeyColAge
	}
}

// birthdayCell renders one table cell.
func (app *BongabdoApp) birthdayCell(e engine.BirthdayEntry, col int) string {
	switch col {
	case config.ColIDName:
		return e.Name
	case config.ColIDBanglaDate:
		return e.BanglaLabel()
	case config.ColIDNextDate:
		return e.NextOccurrence.Format(config.DateFormatDisplay)
	default:
		return app.formatAge(e)
	}
}

// formatAge shows the age reached on the next birthday, in the digits of
// the interface language.
func (app *BongabdoApp) formatAge(e engine.BirthdayEntry) string {
	if !e.YearKnown {
		return config.AgeUnknown
	}
	return app.numeral(e.AgeNext)
}

// sortBirthdays orders entries by the given column. Ties fall back to the
// next occurrence, then the name. Unknown ages sort after known ones in
// ascending order.
func sortBirthdays(entries []engine.BirthdayEntry, col int, asc bool) {
	byDate := func(a, b engine.BirthdayEntry) bool {
		if a.NextOccurrence.Equal(b.NextOccurrence) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.NextOccurrence.Before(b.NextOccurrence)
	}

	less := func(a, b engine.BirthdayEntry) bool {
		switch col {
		case config.ColIDName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
		case config.ColIDBanglaDate:
			if a.BanglaBirth.Month != b.BanglaBirth.Month {
				return a.BanglaBirth.Month < b.BanglaBirth.Month
			}
			if a.BanglaBirth.Day != b.BanglaBirth.Day {
				return a.BanglaBirth.Day < b.BanglaBirth.Day
			}
		case config.ColIDAge:
			if a.YearKnown != b.YearKnown {
				return a.YearKnown
			}
			if a.AgeNext != b.AgeNext {
				return a.AgeNext < b.AgeNext
			}
		}
		return byDate(a, b)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if asc {
			return less(entries[i], entries[j])
		}
		return less(entries[j], entries[i])
	})
}
