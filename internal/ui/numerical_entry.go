package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, up to MaxLen of them.
type NumericalEntry struct {
	widget.Entry

	// MaxLen caps the number of digits. Zero means no limit.
	MaxLen int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not 0-9 or would exceed MaxLen.
// Pasted text bypasses this filter; the form validates on submit.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxLen > 0 && len([]rune(e.Text)) >= e.MaxLen {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
