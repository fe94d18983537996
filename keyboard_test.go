package richedit

import (
	"context"
	"errors"
	"testing"
)

// fakeClipboard stores written text and serves a canned read.
type fakeClipboard struct {
	text    string
	readErr error
	written []string
}

func (c *fakeClipboard) ReadText(ctx context.Context) (string, error) {
	return c.text, c.readErr
}

func (c *fakeClipboard) WriteText(text string) error {
	c.written = append(c.written, text)
	return nil
}

func newKeyboardHandler(text string, sel Selection) (*SelectionHandler, *fakeDelegate, *fakeClipboard) {
	d := newFakeDelegate(text, sel)
	cb := &fakeClipboard{}
	h := NewSelectionHandler(d, newGrid(text, 20), DefaultPolicy())
	h.SetClipboard(cb)
	return h, d, cb
}

func TestHandleKey_CharacterMovement(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  Selection
		ev   KeyEvent
		want Selection
	}{
		{
			name: "right",
			text: "abc", sel: CollapsedSelection(1),
			ev:   KeyEvent{Key: KeyRight},
			want: CollapsedSelection(2),
		},
		{
			name: "left",
			text: "abc", sel: CollapsedSelection(2),
			ev:   KeyEvent{Key: KeyLeft},
			want: CollapsedSelection(1),
		},
		{
			name: "right over combining mark",
			text: "aéb", sel: CollapsedSelection(1),
			ev:   KeyEvent{Key: KeyRight},
			want: CollapsedSelection(3),
		},
		{
			name: "left over reserved code point",
			text: "ab", sel: CollapsedSelection(2),
			ev:   KeyEvent{Key: KeyLeft},
			want: CollapsedSelection(1),
		},
		{
			name: "right clamped at end",
			text: "ab", sel: CollapsedSelection(2),
			ev:   KeyEvent{Key: KeyRight},
			want: CollapsedSelection(2),
		},
		{
			name: "shift extends",
			text: "abc", sel: CollapsedSelection(1),
			ev:   KeyEvent{Key: KeyRight, Shift: true},
			want: Selection{Base: 1, Extent: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d, _ := newKeyboardHandler(tt.text, tt.sel)
			h.HandleKey(context.Background(), tt.ev)
			if d.value.Selection != tt.want {
				t.Errorf("selection = %+v, want %+v", d.value.Selection, tt.want)
			}
		})
	}
}

func TestHandleKey_WordMovement(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		ev   KeyEvent
		want int
	}{
		{name: "next from start", sel: CollapsedSelection(0), ev: KeyEvent{Key: KeyRight, Word: true}, want: 5},
		{name: "next skips space", sel: CollapsedSelection(5), ev: KeyEvent{Key: KeyRight, Word: true}, want: 11},
		{name: "prev from end", sel: CollapsedSelection(11), ev: KeyEvent{Key: KeyLeft, Word: true}, want: 6},
		{name: "prev skips space", sel: CollapsedSelection(6), ev: KeyEvent{Key: KeyLeft, Word: true}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d, _ := newKeyboardHandler("hello world", tt.sel)
			h.HandleKey(context.Background(), tt.ev)
			if got := d.value.Selection; got != CollapsedSelection(tt.want) {
				t.Errorf("selection = %+v, want caret at %d", got, tt.want)
			}
		})
	}
}

func TestHandleKey_LineMovement(t *testing.T) {
	// perLine 6: lines [0,6) and [6,11).
	d := newFakeDelegate("hello world", CollapsedSelection(8))
	h := NewSelectionHandler(d, newGrid("hello world", 6), DefaultPolicy())

	h.HandleKey(context.Background(), KeyEvent{Key: KeyLeft, Line: true})
	if got := d.value.Selection; got != CollapsedSelection(6) {
		t.Errorf("line start: selection = %+v, want caret at 6", got)
	}

	h.HandleKey(context.Background(), KeyEvent{Key: KeyRight, Line: true})
	if got := d.value.Selection; got != CollapsedSelection(11) {
		t.Errorf("line end: selection = %+v, want caret at 11", got)
	}
}

func TestHandleKey_VerticalMovement(t *testing.T) {
	// Three lines of 6: [0,6), [6,12), [12,13).
	text := "abcdefghijklm"
	d := newFakeDelegate(text, CollapsedSelection(4))
	h := NewSelectionHandler(d, newGrid(text, 6), DefaultPolicy())
	ctx := context.Background()

	h.HandleKey(ctx, KeyEvent{Key: KeyDown})
	if got := d.value.Selection; got != CollapsedSelection(10) {
		t.Fatalf("down: selection = %+v, want caret at 10", got)
	}

	// The last line has one rune; the caret clamps to its end.
	h.HandleKey(ctx, KeyEvent{Key: KeyDown})
	if got := d.value.Selection; got != CollapsedSelection(13) {
		t.Fatalf("down to short line: selection = %+v, want caret at 13", got)
	}

	// Moving back up restores the remembered column.
	h.HandleKey(ctx, KeyEvent{Key: KeyUp})
	if got := d.value.Selection; got != CollapsedSelection(10) {
		t.Errorf("up restores column: selection = %+v, want caret at 10", got)
	}
}

func TestHandleKey_VerticalClampsAtEdges(t *testing.T) {
	d := newFakeDelegate("abcdef", CollapsedSelection(3))
	h := NewSelectionHandler(d, newGrid("abcdef", 20), DefaultPolicy())
	ctx := context.Background()

	h.HandleKey(ctx, KeyEvent{Key: KeyUp})
	if got := d.value.Selection; got != CollapsedSelection(0) {
		t.Errorf("up on first line: selection = %+v, want caret at 0", got)
	}

	_ = d.causes
	h.HandleKey(ctx, KeyEvent{Key: KeyDown})
	h.HandleKey(ctx, KeyEvent{Key: KeyDown})
	if got := d.value.Selection; got != CollapsedSelection(6) {
		t.Errorf("down on last line: selection = %+v, want caret at 6", got)
	}
}

func TestHandleKey_Backspace(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sel      Selection
		wantText string
		wantSel  Selection
	}{
		{
			name: "simple",
			text: "abc", sel: CollapsedSelection(2),
			wantText: "ac", wantSel: CollapsedSelection(1),
		},
		{
			name: "removes whole cluster",
			text: "aéb", sel: CollapsedSelection(3),
			wantText: "ab", wantSel: CollapsedSelection(1),
		},
		{
			name: "at start is a no-op",
			text: "abc", sel: CollapsedSelection(0),
			wantText: "abc", wantSel: CollapsedSelection(0),
		},
		{
			name: "deletes selection",
			text: "hello", sel: Selection{Base: 1, Extent: 4},
			wantText: "ho", wantSel: CollapsedSelection(1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d, _ := newKeyboardHandler(tt.text, tt.sel)
			h.HandleKey(context.Background(), KeyEvent{Key: KeyBackspace})
			if d.value.Text != tt.wantText {
				t.Errorf("text = %q, want %q", d.value.Text, tt.wantText)
			}
			if d.value.Selection != tt.wantSel {
				t.Errorf("selection = %+v, want %+v", d.value.Selection, tt.wantSel)
			}
		})
	}
}

func TestHandleKey_DeleteForward(t *testing.T) {
	h, d, _ := newKeyboardHandler("abc", CollapsedSelection(1))
	h.HandleKey(context.Background(), KeyEvent{Key: KeyDelete})
	if d.value.Text != "ac" || d.value.Selection != CollapsedSelection(1) {
		t.Errorf("got %q %+v, want %q caret 1", d.value.Text, d.value.Selection, "ac")
	}
}

func TestHandleKey_EditsRespectReadOnly(t *testing.T) {
	h, d, _ := newKeyboardHandler("abc", CollapsedSelection(2))
	d.readOnly = true
	h.HandleKey(context.Background(), KeyEvent{Key: KeyBackspace})
	if d.value.Text != "abc" {
		t.Errorf("read-only field edited: %q", d.value.Text)
	}
}

func TestHandleKey_Copy(t *testing.T) {
	h, d, cb := newKeyboardHandler("hello world", Selection{Base: 0, Extent: 5})
	h.HandleKey(context.Background(), KeyEvent{Key: KeyCopy})
	if len(cb.written) != 1 || cb.written[0] != "hello" {
		t.Errorf("clipboard = %v, want [hello]", cb.written)
	}
	if d.value.Text != "hello world" {
		t.Errorf("copy modified text: %q", d.value.Text)
	}
}

func TestHandleKey_Cut(t *testing.T) {
	h, d, cb := newKeyboardHandler("hello world", Selection{Base: 0, Extent: 6})
	h.HandleKey(context.Background(), KeyEvent{Key: KeyCut})
	if len(cb.written) != 1 || cb.written[0] != "hello " {
		t.Errorf("clipboard = %v, want [hello ]", cb.written)
	}
	if d.value.Text != "world" || d.value.Selection != CollapsedSelection(0) {
		t.Errorf("after cut: %q %+v", d.value.Text, d.value.Selection)
	}
}

func TestHandleKey_CutReadOnly(t *testing.T) {
	h, d, cb := newKeyboardHandler("hello", Selection{Base: 0, Extent: 5})
	d.readOnly = true
	h.HandleKey(context.Background(), KeyEvent{Key: KeyCut})
	if len(cb.written) != 0 || d.value.Text != "hello" {
		t.Error("cut ran on a read-only field")
	}
}

func TestHandleKey_Paste(t *testing.T) {
	h, d, cb := newKeyboardHandler("hello world", Selection{Base: 0, Extent: 5})
	cb.text = "XY"
	h.HandleKey(context.Background(), KeyEvent{Key: KeyPaste})
	if d.value.Text != "XY world" {
		t.Errorf("text = %q, want %q", d.value.Text, "XY world")
	}
	if d.value.Selection != CollapsedSelection(2) {
		t.Errorf("selection = %+v, want caret at 2", d.value.Selection)
	}
}

// racingClipboard mutates the delegate during the read, simulating a
// local edit landing while the asynchronous clipboard call is in flight.
type racingClipboard struct {
	d *fakeDelegate
}

func (c *racingClipboard) ReadText(ctx context.Context) (string, error) {
	c.d.value = EditingValue{
		Text:      "fresh text",
		Selection: Selection{Base: 0, Extent: 5},
		Composing: EmptyRange,
	}
	return "XY", nil
}

func (c *racingClipboard) WriteText(string) error { return nil }

func TestHandleKey_PasteUsesLiveValue(t *testing.T) {
	d := newFakeDelegate("stale", Selection{Base: 0, Extent: 5})
	h := NewSelectionHandler(d, newGrid("stale", 20), DefaultPolicy())
	h.SetClipboard(&racingClipboard{d: d})

	h.HandleKey(context.Background(), KeyEvent{Key: KeyPaste})
	if d.value.Text != "XY text" {
		t.Errorf("paste applied to stale snapshot: %q, want %q", d.value.Text, "XY text")
	}
}

func TestHandleKey_PasteReadError(t *testing.T) {
	h, d, cb := newKeyboardHandler("hello", CollapsedSelection(0))
	cb.readErr = errors.New("unavailable")
	h.HandleKey(context.Background(), KeyEvent{Key: KeyPaste})
	if d.value.Text != "hello" {
		t.Errorf("failed paste modified text: %q", d.value.Text)
	}
}

func TestHandleKey_SelectAll(t *testing.T) {
	h, d, _ := newKeyboardHandler("hello", CollapsedSelection(2))
	h.HandleKey(context.Background(), KeyEvent{Key: KeySelectAll})
	if got := d.value.Selection; got.Start() != 0 || got.End() != 5 {
		t.Errorf("selection = %+v, want [0, 5)", got)
	}
}
