package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/richedit"
)

// fixedShaper shapes every rune to a 10px advance with fixed metrics, so
// geometry in tests is exact.
type fixedShaper struct {
	texts []string // every shaped run, in order
}

const (
	fixedAdvance = 10.0
	fixedAscent  = 8.0
	fixedDescent = 2.0
	fixedGap     = 2.0
)

func (s *fixedShaper) Shape(req RunRequest) ShapedRun {
	s.texts = append(s.texts, req.Text)
	run := ShapedRun{Direction: req.Direction, Ascent: fixedAscent, Descent: fixedDescent}
	i := 0
	for range req.Text {
		run.Glyphs = append(run.Glyphs, Glyph{
			Cluster:  req.Start + i,
			X:        float64(i) * fixedAdvance,
			XAdvance: fixedAdvance,
		})
		run.Advance += fixedAdvance
		i++
	}
	return run
}

func (s *fixedShaper) Metrics(size float64) Metrics {
	return Metrics{Ascent: fixedAscent, Descent: fixedDescent, LineGap: fixedGap}
}

// fixedContent is a fixed-size inline object.
type fixedContent struct {
	w, h     float64
	baseline float64
	hasBase  bool
	hit      bool
}

func (c *fixedContent) Measure(maxWidth float64) richedit.Size { return richedit.Size{W: c.w, H: c.h} }
func (c *fixedContent) Layout(maxWidth float64) richedit.Size  { return richedit.Size{W: c.w, H: c.h} }
func (c *fixedContent) Baseline() (float64, bool)              { return c.baseline, c.hasBase }
func (c *fixedContent) HitTest(p richedit.Point) bool          { return c.hit }

func layoutText(t *testing.T, text string, opts Options, c Constraints) *TextLayout {
	t.Helper()
	return layoutSpans(t, richedit.BuildSpans(text, richedit.SpanConfig{}), opts, c)
}

func layoutSpans(t *testing.T, spans []richedit.Span, opts Options, c Constraints) *TextLayout {
	t.Helper()
	e := NewEngine(&fixedShaper{}, opts)
	l, err := e.Layout(spans, c)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return l
}

func TestEngine_SingleLine(t *testing.T) {
	l := layoutText(t, "hello", Options{}, Constraints{})
	if got := l.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	ln := l.Lines()[0]
	if ln.Start != 0 || ln.End != 5 {
		t.Errorf("line range = [%d, %d), want [0, 5)", ln.Start, ln.End)
	}
	if ln.Width != 50 {
		t.Errorf("line width = %v, want 50", ln.Width)
	}
	if l.Height() != fixedAscent+fixedDescent {
		t.Errorf("height = %v, want %v", l.Height(), fixedAscent+fixedDescent)
	}
	if ln.Y != fixedAscent {
		t.Errorf("baseline = %v, want %v", ln.Y, fixedAscent)
	}
}

func TestEngine_SoftWrap(t *testing.T) {
	l := layoutText(t, "aaa bbb", Options{}, Constraints{MaxWidth: 45})
	if got := l.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	first, second := l.Lines()[0], l.Lines()[1]
	if first.Start != 0 || first.End != 4 {
		t.Errorf("first line = [%d, %d), want [0, 4)", first.Start, first.End)
	}
	if second.Start != 4 || second.End != 7 {
		t.Errorf("second line = [%d, %d), want [4, 7)", second.Start, second.End)
	}
	if second.Y != fixedAscent+fixedDescent+fixedGap+fixedAscent {
		t.Errorf("second baseline = %v", second.Y)
	}
}

func TestEngine_HardBreak(t *testing.T) {
	l := layoutText(t, "ab\ncd", Options{}, Constraints{})
	if got := l.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if first := l.Lines()[0]; first.End != 3 {
		t.Errorf("first line end = %d, want 3 (newline included)", first.End)
	}
	if second := l.Lines()[1]; second.Start != 3 || second.End != 5 {
		t.Errorf("second line = [%d, %d), want [3, 5)", second.Start, second.End)
	}
	// The newline itself has no width.
	if w := l.Lines()[0].Width; w != 20 {
		t.Errorf("first line width = %v, want 20", w)
	}
}

func TestEngine_TrailingNewlineOpensEmptyLine(t *testing.T) {
	l := layoutText(t, "ab\n", Options{}, Constraints{})
	if got := l.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	last := l.Lines()[1]
	if last.Start != 3 || last.End != 3 {
		t.Errorf("trailing line = [%d, %d), want collapsed at 3", last.Start, last.End)
	}
}

func TestEngine_SingleLineFieldNeverWraps(t *testing.T) {
	l := layoutText(t, "aaa bbb ccc", Options{MaxLines: 1}, Constraints{MaxWidth: 30})
	if got := l.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
}

func TestEngine_ObscuredShapesMask(t *testing.T) {
	sh := &fixedShaper{}
	e := NewEngine(sh, Options{Obscured: true})
	spans := richedit.BuildSpans("secret", richedit.SpanConfig{})
	l, err := e.Layout(spans, Constraints{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	for _, text := range sh.texts {
		if strings.ContainsAny(text, "secret") {
			t.Errorf("shaped run %q leaks the original text", text)
		}
		for _, r := range text {
			if r != DefaultObscuringCharacter {
				t.Errorf("shaped rune %q, want mask", r)
			}
		}
	}
	// Boundary queries still see the original text.
	if got := l.WordBoundaryAt(2); got != (richedit.Range{Start: 0, End: 6}) {
		t.Errorf("WordBoundaryAt on obscured field = %+v", got)
	}
}

func TestEngine_MinWidth(t *testing.T) {
	l := layoutText(t, "ab", Options{}, Constraints{MinWidth: 100})
	if l.Width() != 100 {
		t.Errorf("width = %v, want MinWidth 100", l.Width())
	}
}

func TestMeasure_BaselineAlignmentUnavailable(t *testing.T) {
	content := &fixedContent{w: 10, h: 10, baseline: 8, hasBase: true}
	resolver := func(r rune) (richedit.InlineContent, bool) { return content, true }
	spans := richedit.BuildSpans("ab", richedit.SpanConfig{
		Resolver:  resolver,
		Alignment: richedit.AlignBaseline,
	})

	e := NewEngine(&fixedShaper{}, Options{})
	_, err := e.Measure(spans, Constraints{})
	if !errors.Is(err, richedit.ErrBaselineUnavailable) {
		t.Errorf("Measure error = %v, want ErrBaselineUnavailable", err)
	}

	// A full layout pass resolves the baseline.
	if _, err := e.Layout(spans, Constraints{}); err != nil {
		t.Errorf("Layout: %v", err)
	}
}

func TestMeasure_BottomAlignedInline(t *testing.T) {
	content := &fixedContent{w: 30, h: 5}
	resolver := func(r rune) (richedit.InlineContent, bool) { return content, true }
	spans := richedit.BuildSpans("ab", richedit.SpanConfig{Resolver: resolver})

	e := NewEngine(&fixedShaper{}, Options{})
	size, err := e.Measure(spans, Constraints{})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if size.W != 50 {
		t.Errorf("measured width = %v, want 50", size.W)
	}
}

func TestEngine_TallInlineGrowsLine(t *testing.T) {
	content := &fixedContent{w: 10, h: 20}
	resolver := func(r rune) (richedit.InlineContent, bool) { return content, true }
	spans := richedit.BuildSpans("ab", richedit.SpanConfig{Resolver: resolver})

	l := layoutSpans(t, spans, Options{}, Constraints{})
	ln := l.Lines()[0]
	// Bottom alignment: the box's bottom sits on the line bottom, so the
	// line ascent grows to fit the 20px box above the descent.
	if ln.Ascent != 18 || ln.Descent != fixedDescent {
		t.Errorf("line metrics = (%v, %v), want (18, 2)", ln.Ascent, ln.Descent)
	}

	rects := l.InlineRects()
	rect, ok := rects[1]
	if !ok {
		t.Fatal("no inline rect for offset 1")
	}
	want := richedit.R(10, 0, 20, 20)
	if rect != want {
		t.Errorf("inline rect = %+v, want %+v", rect, want)
	}
}

func TestEngine_InlineAlignments(t *testing.T) {
	tests := []struct {
		name      string
		alignment richedit.InlineAlignment
		h         float64
		wantTop   float64
	}{
		// Line metrics stay (8, 2) for boxes no taller than the text.
		{name: "bottom", alignment: richedit.AlignBottom, h: 6, wantTop: 4},
		{name: "top", alignment: richedit.AlignTop, h: 6, wantTop: 0},
		{name: "above baseline", alignment: richedit.AlignAboveBaseline, h: 6, wantTop: 2},
		{name: "below baseline", alignment: richedit.AlignBelowBaseline, h: 2, wantTop: 8},
		{name: "middle", alignment: richedit.AlignMiddle, h: 6, wantTop: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &fixedContent{w: 10, h: tt.h, baseline: tt.h, hasBase: true}
			resolver := func(r rune) (richedit.InlineContent, bool) { return content, true }
			spans := richedit.BuildSpans("ab", richedit.SpanConfig{
				Resolver:  resolver,
				Alignment: tt.alignment,
			})
			l := layoutSpans(t, spans, Options{}, Constraints{})
			rect := l.InlineRects()[1]
			if rect.MinY != tt.wantTop {
				t.Errorf("inline top = %v, want %v", rect.MinY, tt.wantTop)
			}
		})
	}
}

func TestEngine_BidiRunReversal(t *testing.T) {
	l := layoutText(t, "abאב", Options{}, Constraints{}) // "ab" + two Hebrew letters

	// Logical offsets 2 and 3 are laid right to left after the LTR run:
	// offset 3's cluster occupies [20, 30), offset 2's [30, 40).
	pos := l.PositionForPoint(richedit.Pt(39, 5))
	if pos.Offset != 2 {
		t.Errorf("tap at right edge of RTL run: offset = %d, want 2", pos.Offset)
	}
	pos = l.PositionForPoint(richedit.Pt(29, 5))
	if pos.Offset != 3 {
		t.Errorf("tap between the two RTL clusters: offset = %d, want 3", pos.Offset)
	}
}
