package layout

import (
	"math"

	"github.com/gogpu/richedit"
)

// PositionForPoint implements richedit.Geometry. The point is clamped to
// the layout bounds, so taps above the first line resolve to offset 0 and
// taps below the last line to the end of the text. Within a line the
// caret snaps to the nearest cluster boundary; a tap on an inline
// placeholder resolves to whichever side of it is closer, never inside.
func (l *TextLayout) PositionForPoint(p richedit.Point) richedit.Position {
	if len(l.lines) == 0 {
		return richedit.Position{Offset: 0, Affinity: richedit.AffinityDownstream}
	}

	li := l.lineIndexForY(p.Y)
	ln := &l.lines[li]
	if len(ln.cells) == 0 {
		return richedit.Position{Offset: ln.Start, Affinity: richedit.AffinityDownstream}
	}

	offset := nearestBoundary(ln, p.X)
	aff := richedit.AffinityDownstream
	if offset == ln.End && li < len(l.lines)-1 && !lineEndsHard(ln) {
		aff = richedit.AffinityUpstream
	}
	return richedit.Position{Offset: offset, Affinity: aff}
}

// lineIndexForY returns the line whose vertical slot contains y, clamping
// out-of-bounds points to the first or last line. Each line's slot runs
// to the top of the next line, so the inter-line gap belongs to the line
// above it.
func (l *TextLayout) lineIndexForY(y float64) int {
	last := len(l.lines) - 1
	if y < l.lines[0].Top() {
		return 0
	}
	for i := 0; i < last; i++ {
		if y < l.lines[i+1].Top() {
			return i
		}
	}
	return last
}

// nearestBoundary returns the cluster boundary of the line visually
// closest to x. Every cell contributes its leading and trailing edges;
// hard break cells are skipped so the caret cannot land past a newline.
func nearestBoundary(ln *Line, x float64) int {
	best := ln.Start
	bestDist := math.Inf(1)
	consider := func(edgeX float64, offset int) {
		d := math.Abs(x - edgeX)
		if d < bestDist {
			bestDist = d
			best = offset
		}
	}
	for i := range ln.cells {
		cl := &ln.cells[i]
		if cl.mustBreakAfter {
			consider(cl.x, cl.start)
			continue
		}
		lead, trail := cl.x, cl.x+cl.width
		if cl.dir == richedit.DirectionRTL {
			lead, trail = trail, lead
		}
		consider(lead, cl.start)
		consider(trail, cl.end)
	}
	return best
}

// HitTestInline returns the inline content whose box contains the point,
// if any. The point passed to the content is relative to the box origin.
func (l *TextLayout) HitTestInline(p richedit.Point) (richedit.InlineContent, bool) {
	for _, box := range l.inlines {
		if !box.rect.Contains(p) {
			continue
		}
		local := richedit.Pt(p.X-box.rect.MinX, p.Y-box.rect.MinY)
		if box.content.HitTest(local) {
			return box.content, true
		}
	}
	return nil, false
}

// InlineRects returns the final rectangle of every inline placeholder in
// layout order, keyed by the rune offset of its reserved code point.
func (l *TextLayout) InlineRects() map[int]richedit.Rect {
	if len(l.inlines) == 0 {
		return nil
	}
	out := make(map[int]richedit.Rect, len(l.inlines))
	for _, box := range l.inlines {
		out[box.offset] = box.rect
	}
	return out
}
