package ui

import (
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
)

// dayCell is a grid button that reports the pointer entering and leaving it.
type dayCell struct {
	widget.Button
	day int

	onHover func(day int)
	onLeave func()
}

var _ desktop.Hoverable = (*dayCell)(nil)

func newDayCell(onHover func(int), onLeave func()) *dayCell {
	c := &dayCell{onHover: onHover, onLeave: onLeave}
	c.ExtendBaseWidget(c)
	return c
}

// set shows a grid cell. Blank cells are disabled and empty.
func (c *dayCell) set(cell bangla.Cell) {
	c.day = cell.Day
	c.Text = cell.Label

	switch {
	case cell.Today:
		c.Importance = widget.HighImportance
	case cell.Hover:
		c.Importance = widget.MediumImportance
	default:
		c.Importance = widget.LowImportance
	}

	if cell.Day == bangla.NoDay {
		c.Disable()
	} else {
		c.Enable()
	}
	c.Refresh()
}

// MouseIn is called when a desktop pointer enters the widget.
func (c *dayCell) MouseIn(e *desktop.MouseEvent) {
	c.Button.MouseIn(e)
	if c.day != bangla.NoDay && c.onHover != nil {
		c.onHover(c.day)
	}
}

// MouseMoved is called when a desktop pointer hovers over the widget.
func (c *dayCell) MouseMoved(e *desktop.MouseEvent) {
	c.Button.MouseMoved(e)
}

// MouseOut is called when a desktop pointer exits the widget.
func (c *dayCell) MouseOut() {
	c.Button.MouseOut()
	if c.onLeave != nil {
		c.onLeave()
	}
}
