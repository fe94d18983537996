package richedit

import "time"

// EditorConfig configures an Editor.
type EditorConfig struct {
	// Direction is the field's base text direction.
	Direction Direction

	// Policy is the platform presentation policy. Zero value means
	// DefaultPolicy.
	Policy Policy

	// ReadOnly rejects all edits while leaving selection and copy
	// available.
	ReadOnly bool

	// Clipboard backs the copy, cut, and paste shortcuts. Nil disables
	// them.
	Clipboard Clipboard

	// Input is the platform text-input bridge. Nil means no IME.
	Input InputConnection

	// BlinkAnimated enables the caret fade-in start delay.
	BlinkAnimated bool

	// DeterministicCaret freezes the caret visible for tests.
	DeterministicCaret bool

	// OnAction receives editor actions from the platform. Nil falls back
	// to the default handling: Newline inserts a line break, Done closes
	// the input connection.
	OnAction func(InputAction)
}

// Editor assembles the editing core: the value controller, the selection
// and gesture handler, the caret blinker, the floating cursor, and the
// post-layout deferred queue. It implements [InputClient] toward the
// platform bridge and [SelectionDelegate] toward its own handlers.
//
// The editor holds no layout of its own. The host runs the layout engine
// after each change and hands the resulting geometry back through
// LayoutChanged, which also flushes callbacks deferred to "after the
// next layout".
type Editor struct {
	ctrl      *Controller
	selection *SelectionHandler
	blinker   *CaretBlinker
	floating  *FloatingCursor
	deferred  DeferredQueue

	input    InputConnection
	policy   Policy
	readOnly bool
	onAction func(InputAction)

	geom     Geometry
	focused  bool
	viewport Size
	scroll   Point

	lastSent    EditingValue
	hasLastSent bool
	unsubscribe func()
	closed      bool
}

var (
	_ InputClient       = (*Editor)(nil)
	_ SelectionDelegate = (*Editor)(nil)
)

// NewEditor creates an editor with an empty value.
func NewEditor(cfg EditorConfig) *Editor {
	policy := cfg.Policy
	if policy == (Policy{}) {
		policy = DefaultPolicy()
	}

	e := &Editor{
		ctrl:     NewController(cfg.Direction),
		input:    cfg.Input,
		policy:   policy,
		readOnly: cfg.ReadOnly,
		onAction: cfg.OnAction,
	}
	e.selection = NewSelectionHandler(e, nil, policy)
	if cfg.Clipboard != nil {
		e.selection.SetClipboard(cfg.Clipboard)
	}
	e.blinker = NewCaretBlinker(BlinkerConfig{
		Policy:        policy,
		Animated:      cfg.BlinkAnimated,
		Deterministic: cfg.DeterministicCaret,
	})
	e.floating = NewFloatingCursor(e, nil, policy)

	e.unsubscribe = e.ctrl.Subscribe(e.valueChanged)
	return e
}

// Controller returns the editing value controller.
func (e *Editor) Controller() *Controller { return e.ctrl }

// Selection returns the selection and gesture handler.
func (e *Editor) Selection() *SelectionHandler { return e.selection }

// Blinker returns the caret blinker.
func (e *Editor) Blinker() *CaretBlinker { return e.blinker }

// Floating returns the floating cursor.
func (e *Editor) Floating() *FloatingCursor { return e.floating }

// Deferred returns the post-layout callback queue.
func (e *Editor) Deferred() *DeferredQueue { return &e.deferred }

// Focused reports whether the editor has input focus.
func (e *Editor) Focused() bool { return e.focused }

// LayoutChanged installs the geometry produced by the latest layout pass
// and flushes callbacks waiting for settled geometry.
func (e *Editor) LayoutChanged(geom Geometry) {
	e.geom = geom
	e.selection.SetGeometry(geom)
	e.floating.SetGeometry(geom)
	e.deferred.Flush()
}

// Focus grants or removes input focus. Gaining focus opens the input
// connection and starts the caret; losing focus closes it and stops the
// caret.
func (e *Editor) Focus(focused bool) {
	if e.focused == focused {
		return
	}
	e.focused = focused
	if focused {
		if e.input != nil {
			e.input.SetEditingState(e.ctrl.Value())
			e.input.Show()
		}
		if e.geom != nil {
			e.selection.Focus(true)
		}
	} else {
		e.selection.Focus(false)
		if e.input != nil {
			e.input.Close()
		}
	}
	e.blinker.SelectionChanged(e.ctrl.Selection(), e.focused)
}

// InsertText replaces the selection with text and collapses the caret
// after it. No-op when read-only.
func (e *Editor) InsertText(text string) {
	if e.readOnly {
		return
	}
	v := e.ctrl.Value()
	sel := v.Selection
	if !sel.IsValid() {
		sel = CollapsedSelection(v.RuneLen())
	}
	v.Text = replaceRuneRange(v.Text, sel.Start(), sel.End(), text)
	v.Selection = CollapsedSelection(sel.Start() + runeLen(text))
	v.Composing = EmptyRange
	e.SetValue(v, CauseKeyboard)
}

// InsertInline inserts one reserved code point at the selection base.
// No-op when read-only.
func (e *Editor) InsertInline(r rune) error {
	if e.readOnly {
		return nil
	}
	return e.ctrl.InsertInline(r)
}

// ScrollOffset returns the current scroll offset.
func (e *Editor) ScrollOffset() Point { return e.scroll }

// SetViewport records the visible size used by caret scroll-into-view.
func (e *Editor) SetViewport(s Size) { e.viewport = s }

// EnsureCaretVisible schedules a scroll adjustment after the next layout
// so the caret ends up inside the viewport. Returns a cancel function.
func (e *Editor) EnsureCaretVisible() (cancel func()) {
	return e.deferred.Defer(func() {
		if e.geom == nil || e.viewport.IsZero() {
			return
		}
		sel := e.ctrl.Selection()
		if !sel.IsValid() {
			return
		}
		caret := e.geom.CaretRect(Position{Offset: sel.Extent, Affinity: sel.Affinity}, e.policy.Caret)
		e.scroll.X = scrollToReveal(e.scroll.X, caret.MinX, caret.MaxX, e.viewport.W)
		e.scroll.Y = scrollToReveal(e.scroll.Y, caret.MinY, caret.MaxY, e.viewport.H)
	})
}

// Advance drives time-based animation (the floating-cursor snap-back).
// It reports whether another frame is needed.
func (e *Editor) Advance(dt time.Duration) bool {
	return e.floating.Advance(dt)
}

// Close tears the editor down: pending deferred callbacks are dropped,
// timers stopped, and the input connection closed.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.deferred.Close()
	e.blinker.Stop()
	e.unsubscribe()
	if e.input != nil {
		e.input.Close()
	}
}

// UpdateEditingValue implements [InputClient]: a value pushed by the
// platform IME replaces the local one.
func (e *Editor) UpdateEditingValue(v EditingValue) {
	if e.readOnly {
		// The platform may still move the selection on a read-only field.
		cur := e.ctrl.Value()
		cur.Selection = v.Selection
		v = cur
	}
	e.lastSent = v
	e.hasLastSent = true
	_ = e.ctrl.SetValue(v)
}

// PerformAction implements [InputClient].
func (e *Editor) PerformAction(a InputAction) {
	if e.onAction != nil {
		e.onAction(a)
		return
	}
	switch a {
	case ActionNewline:
		e.InsertText("\n")
	case ActionDone:
		e.Focus(false)
	}
}

// UpdateFloatingCursor implements [InputClient].
func (e *Editor) UpdateFloatingCursor(state FloatingDragState, p Point) {
	if e.geom == nil {
		return
	}
	switch state {
	case FloatingDragStart:
		e.blinker.Stop()
		e.floating.Start(p)
	case FloatingDragUpdate:
		e.floating.Update(p)
	case FloatingDragEnd:
		e.floating.End()
		e.blinker.SelectionChanged(e.ctrl.Selection(), e.focused)
	}
}

// Value implements [SelectionDelegate].
func (e *Editor) Value() EditingValue { return e.ctrl.Value() }

// SetValue implements [SelectionDelegate]. Keyboard and focus caused
// changes always reach the input bridge, even when the committed value is
// unchanged, so the platform's copy of the editing state never drifts.
func (e *Editor) SetValue(v EditingValue, cause SelectionChangeCause) {
	before := e.ctrl.Value()
	_ = e.ctrl.SetValue(v)
	after := e.ctrl.Value()

	forced := cause == CauseKeyboard || cause == CauseFocus
	if before == after && forced && e.input != nil && e.focused {
		e.input.SetEditingState(after)
		e.lastSent = after
		e.hasLastSent = true
	}
	e.blinker.SelectionChanged(after.Selection, e.focused)
	if cause != CauseFloatingCursor {
		e.EnsureCaretVisible()
	}
}

// ReadOnly implements [SelectionDelegate].
func (e *Editor) ReadOnly() bool { return e.readOnly }

// CopyEnabled implements [SelectionDelegate].
func (e *Editor) CopyEnabled() bool { return true }

// CutEnabled implements [SelectionDelegate].
func (e *Editor) CutEnabled() bool { return !e.readOnly }

// PasteEnabled implements [SelectionDelegate].
func (e *Editor) PasteEnabled() bool { return !e.readOnly }

// SelectAllEnabled implements [SelectionDelegate].
func (e *Editor) SelectAllEnabled() bool { return true }

// valueChanged is the controller observer: it mirrors committed values to
// the input bridge, skipping the echo of a value the bridge itself sent.
func (e *Editor) valueChanged(v EditingValue) {
	if e.input == nil || !e.focused {
		return
	}
	if e.hasLastSent && v == e.lastSent {
		return
	}
	e.input.SetEditingState(v)
	e.lastSent = v
	e.hasLastSent = true
}

// scrollToReveal shifts a scroll position the minimum distance needed to
// bring [lo, hi] into a window of the given extent.
func scrollToReveal(scroll, lo, hi, extent float64) float64 {
	if extent <= 0 {
		return scroll
	}
	if lo < scroll {
		return lo
	}
	if hi > scroll+extent {
		return hi - extent
	}
	return scroll
}
