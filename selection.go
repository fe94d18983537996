package richedit

import "unicode"

// GestureState is the selection handler's pointer state.
type GestureState int

const (
	// GestureIdle means no drag is in progress.
	GestureIdle GestureState = iota
	// GestureDragging means a word-drag selection is in progress.
	GestureDragging
)

// String returns the string representation of the gesture state.
func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "Idle"
	case GestureDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// SelectionHandler turns taps, long presses, and drags into selection
// changes. It owns nothing: the editing value lives behind the delegate,
// geometry behind the Geometry interface, so a handler can be exercised
// against a fake layout in tests.
//
// Every selection change funnels through one choke point that drops
// no-op changes except keyboard-originated ones and focus-triggered
// empty selections, which always notify so an attached text-input bridge
// stays synchronized.
type SelectionHandler struct {
	delegate  SelectionDelegate
	geom      Geometry
	policy    Policy
	clipboard Clipboard

	state      GestureState
	dragOrigin Range // word range at the drag-start point

	// Remembered horizontal position for vertical caret movement.
	// Cleared by any non-vertical movement.
	rememberedX    float64
	hasRememberedX bool
}

// NewSelectionHandler creates a handler bound to the given collaborators.
func NewSelectionHandler(delegate SelectionDelegate, geom Geometry, policy Policy) *SelectionHandler {
	return &SelectionHandler{
		delegate: delegate,
		geom:     geom,
		policy:   policy,
	}
}

// State returns the current gesture state.
func (h *SelectionHandler) State() GestureState { return h.state }

// SetGeometry replaces the layout the handler hit-tests against. Called
// after every relayout.
func (h *SelectionHandler) SetGeometry(geom Geometry) { h.geom = geom }

// Tap collapses the selection at the tapped position.
func (h *SelectionHandler) Tap(p Point) {
	pos := h.geom.PositionForPoint(p)
	h.clearRememberedX()
	h.setSelection(Selection{
		Base:     pos.Offset,
		Extent:   pos.Offset,
		Affinity: pos.Affinity,
	}, CauseTap)
}

// DoubleTap selects the word at the tapped position.
func (h *SelectionHandler) DoubleTap(p Point) {
	h.selectWordAt(p, CauseDoubleTap)
}

// LongPress selects the word at the pressed position.
func (h *SelectionHandler) LongPress(p Point) {
	h.selectWordAt(p, CauseLongPress)
}

// DragStart begins a word-drag selection anchored at the word under p.
func (h *SelectionHandler) DragStart(p Point) {
	pos := h.geom.PositionForPoint(p)
	h.state = GestureDragging
	h.dragOrigin = h.wordRangeAt(pos.Offset)
	h.clearRememberedX()
	h.setSelection(Selection{
		Base:   h.dragOrigin.Start,
		Extent: h.dragOrigin.End,
	}, CauseDrag)
}

// DragUpdate extends the drag selection to the word under p. The base
// stays at the origin word; base and extent swap sides when the pointer
// crosses back over the origin.
func (h *SelectionHandler) DragUpdate(p Point) {
	if h.state != GestureDragging {
		return
	}
	pos := h.geom.PositionForPoint(p)
	word := h.wordRangeAt(pos.Offset)
	sel := Selection{Base: h.dragOrigin.Start, Extent: word.End}
	if word.Start < h.dragOrigin.Start {
		sel = Selection{Base: h.dragOrigin.End, Extent: word.Start}
	}
	h.setSelection(sel, CauseDrag)
}

// DragEnd finishes the drag, leaving the selection where it is.
func (h *SelectionHandler) DragEnd() {
	h.state = GestureIdle
}

// Focus reports a focus change. Gaining focus with no selection places a
// collapsed caret at the end of the text; that event always notifies so
// the text-input bridge learns the field is active.
func (h *SelectionHandler) Focus(focused bool) {
	if !focused {
		h.state = GestureIdle
		return
	}
	v := h.delegate.Value()
	if v.Selection.IsValid() {
		return
	}
	h.setSelection(CollapsedSelection(v.RuneLen()), CauseFocus)
}

// selectWordAt selects the word at p, applying the whitespace fallback
// policy: a hit on whitespace may select the previous word instead.
func (h *SelectionHandler) selectWordAt(p Point, cause SelectionChangeCause) {
	pos := h.geom.PositionForPoint(p)
	word := h.wordRangeAt(pos.Offset)
	h.clearRememberedX()
	h.setSelection(Selection{Base: word.Start, Extent: word.End}, cause)
}

// wordRangeAt returns the word range containing offset. When the word is
// whitespace-only and the fallback policy allows it, the previous word is
// returned instead.
func (h *SelectionHandler) wordRangeAt(offset int) Range {
	word := h.geom.WordBoundaryAt(offset)
	if !h.fallbackToPreviousWord() {
		return word
	}
	text := h.delegate.Value().Text
	if word.Start >= word.End || !whitespaceOnly(text, word.Start, word.End) {
		return word
	}
	if word.Start == 0 {
		return word
	}
	return h.geom.WordBoundaryAt(word.Start - 1)
}

func (h *SelectionHandler) fallbackToPreviousWord() bool {
	switch h.policy.WordFallback {
	case WordFallbackAlways:
		return true
	case WordFallbackWhenReadOnly:
		return h.delegate.ReadOnly()
	default:
		return false
	}
}

// setSelection is the notification choke point. A change that leaves the
// selection identical is dropped unless it is keyboard-originated or a
// focus-triggered collapsed selection.
func (h *SelectionHandler) setSelection(sel Selection, cause SelectionChangeCause) {
	v := h.delegate.Value()
	if v.Selection == sel {
		alwaysNotify := cause == CauseKeyboard ||
			(cause == CauseFocus && sel.IsCollapsed())
		if !alwaysNotify {
			return
		}
	}
	v.Selection = sel
	h.delegate.SetValue(v, cause)
}

func (h *SelectionHandler) clearRememberedX() {
	h.hasRememberedX = false
}

// whitespaceOnly reports whether the rune range [start, end) of text is
// entirely whitespace.
func whitespaceOnly(text string, start, end int) bool {
	i := 0
	for _, r := range text {
		if i >= end {
			break
		}
		if i >= start && !unicode.IsSpace(r) {
			return false
		}
		i++
	}
	return true
}
