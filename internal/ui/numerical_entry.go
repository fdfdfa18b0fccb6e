package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is a custom Entry widget that only accepts numeric input.
// Bangla digits are accepted and stored as ASCII digits.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events.
func (e *NumericalEntry) TypedRune(r rune) {
	if d, ok := asciiDigit(r); ok {
		e.Entry.TypedRune(d)
	}
	// Pasted text bypasses this filter; Value normalizes it and the Validator
	// rejects the rest.
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Value returns the text with Bangla digits replaced by ASCII ones.
func (e *NumericalEntry) Value() string {
	return normalizeDigits(e.Text)
}

func asciiDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= '০' && r <= '৯':
		return '0' + (r - '০'), true
	}
	return 0, false
}

func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := asciiDigit(r); ok {
			return d
		}
		return r
	}, s)
}
