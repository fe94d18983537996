package richedit

// InputAction is the editor action reported by the platform input method
// (the "enter key" semantics).
type InputAction int

const (
	// ActionUnspecified is an action the platform did not classify.
	ActionUnspecified InputAction = iota
	// ActionDone commits the field.
	ActionDone
	// ActionNewline inserts a line break.
	ActionNewline
)

// String returns the string representation of the action.
func (a InputAction) String() string {
	switch a {
	case ActionUnspecified:
		return "Unspecified"
	case ActionDone:
		return "Done"
	case ActionNewline:
		return "Newline"
	default:
		return "Unknown"
	}
}

// FloatingDragState is the phase of a platform floating-cursor drag.
type FloatingDragState int

const (
	// FloatingDragStart begins a drag session.
	FloatingDragStart FloatingDragState = iota
	// FloatingDragUpdate moves the cursor within a session.
	FloatingDragUpdate
	// FloatingDragEnd ends the session and snaps the cursor back.
	FloatingDragEnd
)

// String returns the string representation of the drag state.
func (s FloatingDragState) String() string {
	switch s {
	case FloatingDragStart:
		return "Start"
	case FloatingDragUpdate:
		return "Update"
	case FloatingDragEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// InputConnection is the editor's handle to the platform text-input
// bridge (IME). The host framework implements it; the editor calls it to
// keep the platform's copy of the editing state in sync.
type InputConnection interface {
	// SetEditingState pushes the editor's value to the platform.
	SetEditingState(v EditingValue)

	// Show asks the platform to present its input UI (soft keyboard).
	Show()

	// Close tears the connection down.
	Close()
}

// InputClient is the callback side of the text-input bridge: the platform
// calls it with remote edits and actions. [Editor] implements it.
type InputClient interface {
	// UpdateEditingValue delivers a value produced by the platform IME.
	UpdateEditingValue(v EditingValue)

	// PerformAction delivers an editor action.
	PerformAction(a InputAction)

	// UpdateFloatingCursor delivers a floating-cursor drag event with the
	// pointer location in layout coordinates.
	UpdateFloatingCursor(state FloatingDragState, p Point)
}
