package layout

import (
	"testing"

	"github.com/gogpu/richedit"
)

var testProto = richedit.CaretPrototype{Width: 2}

func TestCaretRect_Basic(t *testing.T) {
	l := layoutText(t, "hello", Options{}, Constraints{})

	tests := []struct {
		name   string
		offset int
		wantX  float64
	}{
		{name: "start", offset: 0, wantX: 0},
		{name: "middle", offset: 3, wantX: 30},
		{name: "end", offset: 5, wantX: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := l.CaretRect(richedit.Position{Offset: tt.offset}, testProto)
			if r.MinX != tt.wantX {
				t.Errorf("caret x = %v, want %v", r.MinX, tt.wantX)
			}
			if r.MinY != 0 || r.MaxY != 10 {
				t.Errorf("caret extent = [%v, %v], want [0, 10]", r.MinY, r.MaxY)
			}
			if r.Width() != 2 {
				t.Errorf("caret width = %v, want 2", r.Width())
			}
		})
	}
}

func TestCaretRect_AffinityAtSoftWrap(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45})

	up := l.CaretRect(richedit.Position{Offset: 4, Affinity: richedit.AffinityUpstream}, testProto)
	if up.MinX != 40 || up.MinY != 0 {
		t.Errorf("upstream caret = %+v, want end of first line", up)
	}

	down := l.CaretRect(richedit.Position{Offset: 4, Affinity: richedit.AffinityDownstream}, testProto)
	if down.MinX != 0 || down.MinY != 12 {
		t.Errorf("downstream caret = %+v, want start of second line", down)
	}
}

func TestCaretRect_Prototype(t *testing.T) {
	l := layoutText(t, "ab", Options{}, Constraints{})

	tall := l.CaretRect(richedit.Position{Offset: 1}, richedit.CaretPrototype{Width: 2, HeightExtension: 2})
	if tall.MinY != -1 || tall.MaxY != 11 {
		t.Errorf("tall caret = [%v, %v], want [-1, 11]", tall.MinY, tall.MaxY)
	}

	inset := l.CaretRect(richedit.Position{Offset: 1}, richedit.CaretPrototype{Width: 2, VerticalInset: 2})
	if inset.MinY != 2 || inset.MaxY != 8 {
		t.Errorf("inset caret = [%v, %v], want [2, 8]", inset.MinY, inset.MaxY)
	}
}

func TestCaretRect_RTLCluster(t *testing.T) {
	l := layoutText(t, "abאב", Options{}, Constraints{})

	// Offset 2 is the leading edge of the RTL run, which is its right
	// side. The RTL cluster for offset 2 occupies [30, 40).
	r := l.CaretRect(richedit.Position{Offset: 2}, testProto)
	if r.MinX != 40 {
		t.Errorf("caret x at RTL leading edge = %v, want 40", r.MinX)
	}
}

func TestLineForOffset(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45})
	if got := l.LineForOffset(richedit.Position{Offset: 2}); got != 0 {
		t.Errorf("LineForOffset(2) = %d, want 0", got)
	}
	if got := l.LineForOffset(richedit.Position{Offset: 4, Affinity: richedit.AffinityUpstream}); got != 0 {
		t.Errorf("LineForOffset(4, upstream) = %d, want 0", got)
	}
	if got := l.LineForOffset(richedit.Position{Offset: 4, Affinity: richedit.AffinityDownstream}); got != 1 {
		t.Errorf("LineForOffset(4, downstream) = %d, want 1", got)
	}
}

func TestSelectionBoxes_WithinSelection(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45})

	sel := richedit.Selection{Base: 1, Extent: 6}
	boxes := l.SelectionBoxes(sel, richedit.HeightTight, richedit.WidthTight)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2 (one per line): %+v", len(boxes), boxes)
	}
	first, second := boxes[0], boxes[1]
	if first.Rect != richedit.R(10, 0, 40, 10) {
		t.Errorf("first box = %+v, want [10 0 40 10]", first.Rect)
	}
	if second.Rect != richedit.R(0, 12, 20, 22) {
		t.Errorf("second box = %+v, want [0 12 20 22]", second.Rect)
	}
}

func TestSelectionBoxes_CollapsedAndInvalid(t *testing.T) {
	l := layoutText(t, "hello", Options{}, Constraints{})
	if boxes := l.SelectionBoxes(richedit.CollapsedSelection(2), richedit.HeightTight, richedit.WidthTight); boxes != nil {
		t.Errorf("collapsed selection produced boxes: %+v", boxes)
	}
	if boxes := l.SelectionBoxes(richedit.InvalidSelection, richedit.HeightTight, richedit.WidthTight); boxes != nil {
		t.Errorf("invalid selection produced boxes: %+v", boxes)
	}
}

func TestSelectionBoxes_ReversedSelection(t *testing.T) {
	l := layoutText(t, "hello", Options{}, Constraints{})
	fwd := l.SelectionBoxes(richedit.Selection{Base: 1, Extent: 4}, richedit.HeightTight, richedit.WidthTight)
	rev := l.SelectionBoxes(richedit.Selection{Base: 4, Extent: 1}, richedit.HeightTight, richedit.WidthTight)
	if len(fwd) != 1 || len(rev) != 1 || fwd[0] != rev[0] {
		t.Errorf("reversed selection differs: %+v vs %+v", fwd, rev)
	}
}

func TestSelectionBoxes_HeightMax(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45})
	boxes := l.SelectionBoxes(richedit.Selection{Base: 0, Extent: 2}, richedit.HeightMax, richedit.WidthTight)
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
	// HeightMax extends the box through the inter-line gap.
	if boxes[0].Rect.MaxY != 12 {
		t.Errorf("box bottom = %v, want 12", boxes[0].Rect.MaxY)
	}
}

func TestSelectionBoxes_WidthMax(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45, MinWidth: 45})
	boxes := l.SelectionBoxes(richedit.Selection{Base: 0, Extent: 7}, richedit.HeightTight, richedit.WidthMax)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	// The fully-selected wrapped first line extends to the layout width.
	if boxes[0].Rect.MinX != 0 || boxes[0].Rect.MaxX != l.Width() {
		t.Errorf("first box = %+v, want full width %v", boxes[0].Rect, l.Width())
	}
	// The last line stays tight.
	if boxes[1].Rect.MaxX != 30 {
		t.Errorf("last box = %+v, want right edge 30", boxes[1].Rect)
	}
}

func TestSelectionBoxes_RTLRunSplitsBoxes(t *testing.T) {
	l := layoutText(t, "abאב", Options{}, Constraints{})
	boxes := l.SelectionBoxes(richedit.Selection{Base: 1, Extent: 3}, richedit.HeightTight, richedit.WidthTight)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2 (one per direction): %+v", len(boxes), boxes)
	}
	if boxes[0].Direction != richedit.DirectionLTR || boxes[0].Rect != richedit.R(10, 0, 20, 10) {
		t.Errorf("LTR box = %+v", boxes[0])
	}
	if boxes[1].Direction != richedit.DirectionRTL || boxes[1].Rect != richedit.R(30, 0, 40, 10) {
		t.Errorf("RTL box = %+v", boxes[1])
	}
}
