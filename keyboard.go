package richedit

import (
	"context"
	"log/slog"
)

// Key identifies a keyboard action the editor core understands. Mapping
// physical keys and platform chords onto these is the host's job.
type Key int

const (
	// KeyLeft moves the caret left.
	KeyLeft Key = iota
	// KeyRight moves the caret right.
	KeyRight
	// KeyUp moves the caret up one line.
	KeyUp
	// KeyDown moves the caret down one line.
	KeyDown
	// KeyBackspace deletes backward.
	KeyBackspace
	// KeyDelete deletes forward.
	KeyDelete
	// KeyCopy copies the selection to the clipboard.
	KeyCopy
	// KeyCut cuts the selection to the clipboard.
	KeyCut
	// KeyPaste inserts the clipboard text at the selection.
	KeyPaste
	// KeySelectAll selects the entire text.
	KeySelectAll
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyCopy:
		return "Copy"
	case KeyCut:
		return "Cut"
	case KeyPaste:
		return "Paste"
	case KeySelectAll:
		return "SelectAll"
	default:
		return "Unknown"
	}
}

// KeyEvent is one keyboard action with its modifiers. Word and Line are
// the word-jump and line-jump modifiers (platform chords differ; the
// host maps them). Shift extends the selection instead of collapsing it.
type KeyEvent struct {
	Key   Key
	Shift bool
	Word  bool
	Line  bool
}

// SetClipboard attaches the clipboard used by the copy, cut, and paste
// shortcuts. Without one those shortcuts are no-ops.
func (h *SelectionHandler) SetClipboard(cb Clipboard) {
	h.clipboard = cb
}

// HandleKey applies one keyboard action. The context bounds the
// asynchronous clipboard read on paste; every other action is
// synchronous. All resulting changes are keyboard-originated and always
// notify, even when the selection ends up unchanged.
func (h *SelectionHandler) HandleKey(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyLeft, KeyRight:
		h.moveHorizontal(ev)
	case KeyUp, KeyDown:
		h.moveVertical(ev)
	case KeyBackspace, KeyDelete:
		h.deleteAtCaret(ev.Key == KeyBackspace)
	case KeyCopy:
		h.copySelection()
	case KeyCut:
		h.cutSelection()
	case KeyPaste:
		h.paste(ctx)
	case KeySelectAll:
		h.selectAll()
	}
}

func (h *SelectionHandler) moveHorizontal(ev KeyEvent) {
	v := h.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() {
		sel = CollapsedSelection(0)
	}
	h.clearRememberedX()

	extent := sel.Extent
	switch {
	case ev.Line:
		line := h.geom.LineBoundaryAt(extent)
		if ev.Key == KeyLeft {
			extent = line.Start
		} else {
			extent = line.End
		}
	case ev.Word:
		if ev.Key == KeyLeft {
			extent = h.prevWordBoundary(v.Text, extent)
		} else {
			extent = h.nextWordBoundary(v.Text, extent)
		}
	default:
		if ev.Key == KeyLeft {
			extent = PrevGraphemeOffset(v.Text, extent)
		} else {
			extent = NextGraphemeOffset(v.Text, extent)
		}
	}

	h.applyMovement(sel, extent, ev.Shift)
}

// moveVertical moves the caret by one visual line. The probe point sits
// half a line height above the caret top for up and 1.5 line heights
// below for down. The horizontal position of the first vertical move is
// remembered and reused, so traversing a short line and re-entering a
// longer one restores the original column.
func (h *SelectionHandler) moveVertical(ev KeyEvent) {
	v := h.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() {
		sel = CollapsedSelection(0)
	}

	caret := h.geom.CaretRect(Position{Offset: sel.Extent, Affinity: sel.Affinity}, h.policy.Caret)
	x := caret.MinX
	if h.hasRememberedX {
		x = h.rememberedX
	} else {
		h.rememberedX = x
		h.hasRememberedX = true
	}

	lh := h.geom.LineHeight()
	y := caret.MinY - lh/2
	if ev.Key == KeyDown {
		y = caret.MinY + lh*1.5
	}
	pos := h.geom.PositionForPoint(Pt(x, y))

	extent := pos.Offset
	if extent == sel.Extent && !ev.Word && !ev.Line {
		// Already on the first or last line: clamp to the text edge.
		if ev.Key == KeyUp {
			extent = 0
		} else {
			extent = v.RuneLen()
		}
	}

	h.applyMovement(sel, extent, ev.Shift)
}

// applyMovement commits a moved extent, keeping the base when extending.
func (h *SelectionHandler) applyMovement(sel Selection, extent int, extend bool) {
	next := Selection{Base: sel.Base, Extent: extent}
	if !extend {
		next = CollapsedSelection(extent)
	}
	h.setSelection(next, CauseKeyboard)
}

// nextWordBoundary returns the end of the next word after offset,
// skipping whitespace-only words.
func (h *SelectionHandler) nextWordBoundary(text string, offset int) int {
	n := runeLen(text)
	for offset < n {
		r := h.geom.WordBoundaryAt(offset)
		if r.End <= offset {
			break
		}
		if !whitespaceOnly(text, r.Start, r.End) && r.End > offset {
			return r.End
		}
		offset = r.End
	}
	return n
}

// prevWordBoundary returns the start of the previous word before offset,
// skipping whitespace-only words.
func (h *SelectionHandler) prevWordBoundary(text string, offset int) int {
	for offset > 0 {
		r := h.geom.WordBoundaryAt(offset - 1)
		if !whitespaceOnly(text, r.Start, r.End) && r.Start < offset {
			return r.Start
		}
		if r.Start >= offset {
			break
		}
		offset = r.Start
	}
	return 0
}

// deleteAtCaret removes the selected range, or one grapheme cluster
// adjacent to a collapsed caret.
func (h *SelectionHandler) deleteAtCaret(backward bool) {
	if h.delegate.ReadOnly() {
		return
	}
	v := h.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() {
		return
	}
	h.clearRememberedX()

	start, end := sel.Start(), sel.End()
	if sel.IsCollapsed() {
		if backward {
			start = PrevGraphemeOffset(v.Text, end)
		} else {
			end = NextGraphemeOffset(v.Text, start)
		}
	}
	if start == end {
		// Nothing to delete at a text edge, but keyboard changes always
		// notify.
		h.setSelection(sel, CauseKeyboard)
		return
	}

	v.Text = deleteRuneRange(v.Text, start, end)
	v.Selection = CollapsedSelection(start)
	v.Composing = EmptyRange
	h.delegate.SetValue(v, CauseKeyboard)
}

func (h *SelectionHandler) copySelection() {
	if h.clipboard == nil || !h.delegate.CopyEnabled() {
		return
	}
	v := h.delegate.Value()
	if !v.Selection.IsValid() || v.Selection.IsCollapsed() {
		return
	}
	if err := h.clipboard.WriteText(v.SelectedText()); err != nil {
		Logger().Warn("richedit: clipboard write failed",
			slog.String("error", err.Error()))
	}
}

func (h *SelectionHandler) cutSelection() {
	if h.clipboard == nil || !h.delegate.CutEnabled() || h.delegate.ReadOnly() {
		return
	}
	v := h.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() || sel.IsCollapsed() {
		return
	}
	if err := h.clipboard.WriteText(v.SelectedText()); err != nil {
		Logger().Warn("richedit: clipboard write failed",
			slog.String("error", err.Error()))
		return
	}
	v.Text = deleteRuneRange(v.Text, sel.Start(), sel.End())
	v.Selection = CollapsedSelection(sel.Start())
	v.Composing = EmptyRange
	h.delegate.SetValue(v, CauseKeyboard)
}

// paste reads the clipboard and splices its text over the selection. The
// read is asynchronous; local edits may land before it returns, so the
// editing value is re-read at apply time and the paste targets the
// current selection, never the one captured at request time.
func (h *SelectionHandler) paste(ctx context.Context) {
	if h.clipboard == nil || !h.delegate.PasteEnabled() || h.delegate.ReadOnly() {
		return
	}
	text, err := h.clipboard.ReadText(ctx)
	if err != nil {
		Logger().Warn("richedit: clipboard read failed",
			slog.String("error", err.Error()))
		return
	}

	v := h.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() {
		sel = CollapsedSelection(v.RuneLen())
	}
	v.Text = replaceRuneRange(v.Text, sel.Start(), sel.End(), text)
	v.Selection = CollapsedSelection(sel.Start() + runeLen(text))
	v.Composing = EmptyRange
	h.delegate.SetValue(v, CauseKeyboard)
}

func (h *SelectionHandler) selectAll() {
	if !h.delegate.SelectAllEnabled() {
		return
	}
	n := h.delegate.Value().RuneLen()
	h.setSelection(Selection{Base: 0, Extent: n}, CauseKeyboard)
}
