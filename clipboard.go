package richedit

import "context"

// Clipboard is the external clipboard service. Reads are asynchronous
// platform calls; the context bounds the wait. Failures must not crash
// the editor: callers log and drop the operation.
type Clipboard interface {
	// ReadText returns the clipboard's text content, or an error when the
	// clipboard is unavailable or holds no text.
	ReadText(ctx context.Context) (string, error)

	// WriteText stores text on the clipboard.
	WriteText(text string) error
}

// SelectionChangeCause identifies what triggered a selection change, so
// the notification choke point can decide whether the host's text-input
// bridge must be told about a no-op change.
type SelectionChangeCause int

const (
	// CauseTap is a single tap or click.
	CauseTap SelectionChangeCause = iota
	// CauseDoubleTap is a double tap or double click.
	CauseDoubleTap
	// CauseLongPress is a long press.
	CauseLongPress
	// CauseDrag is an active drag selection.
	CauseDrag
	// CauseKeyboard is keyboard-driven movement or editing.
	CauseKeyboard
	// CauseFocus is a focus-triggered selection event.
	CauseFocus
	// CauseFloatingCursor is the commit at the end of a floating-cursor
	// drag.
	CauseFloatingCursor
)

// String returns the string representation of the cause.
func (c SelectionChangeCause) String() string {
	switch c {
	case CauseTap:
		return "Tap"
	case CauseDoubleTap:
		return "DoubleTap"
	case CauseLongPress:
		return "LongPress"
	case CauseDrag:
		return "Drag"
	case CauseKeyboard:
		return "Keyboard"
	case CauseFocus:
		return "Focus"
	case CauseFloatingCursor:
		return "FloatingCursor"
	default:
		return "Unknown"
	}
}

// SelectionDelegate is implemented by whatever hosts the editor. It
// exposes the live editing value for the clipboard shortcuts and the
// enabled/disabled flag for each. The paste path reads Value() at apply
// time, not at request time, so a paste whose clipboard read raced a
// local edit applies to the current text.
type SelectionDelegate interface {
	// Value returns the live editing value.
	Value() EditingValue

	// SetValue requests that the host replace the editing value.
	SetValue(v EditingValue, cause SelectionChangeCause)

	// ReadOnly reports whether the field rejects edits. Cut and paste are
	// no-ops on read-only fields.
	ReadOnly() bool

	// CopyEnabled, CutEnabled, PasteEnabled, and SelectAllEnabled gate
	// the corresponding shortcuts.
	CopyEnabled() bool
	CutEnabled() bool
	PasteEnabled() bool
	SelectAllEnabled() bool
}
