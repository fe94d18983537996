package layout

import (
	"github.com/gogpu/richedit"
)

// Width returns the layout width.
func (l *TextLayout) Width() float64 { return l.width }

// Height returns the layout height.
func (l *TextLayout) Height() float64 { return l.height }

// Lines returns the laid-out lines.
func (l *TextLayout) Lines() []Line { return l.lines }

// LineCount implements richedit.Geometry.
func (l *TextLayout) LineCount() int { return len(l.lines) }

// LineHeight implements richedit.Geometry: the preferred height of one
// line including the scaled line gap.
func (l *TextLayout) LineHeight() float64 {
	return l.metrics.Ascent + l.metrics.Descent + l.metrics.LineGap*l.spacing
}

// Bounds implements richedit.Geometry.
func (l *TextLayout) Bounds() richedit.Rect {
	return richedit.R(0, 0, l.width, l.height)
}

// LineForOffset returns the index of the line containing pos.
func (l *TextLayout) LineForOffset(pos richedit.Position) int {
	return l.lineIndexFor(clampOffset(pos.Offset, l.textLen), pos.Affinity)
}

// lineEndsHard reports whether the line terminates with a hard break.
func lineEndsHard(ln *Line) bool {
	n := len(ln.cells)
	return n > 0 && ln.cells[n-1].mustBreakAfter
}

// lineIndexFor locates the line containing the offset. At a soft wrap
// boundary the offset belongs to the earlier line with upstream affinity
// and to the later line with downstream affinity; after a hard break it
// always belongs to the later line.
func (l *TextLayout) lineIndexFor(offset int, aff richedit.Affinity) int {
	last := len(l.lines) - 1
	if last < 0 {
		return 0
	}
	for i := range l.lines {
		ln := &l.lines[i]
		if offset < ln.End {
			return i
		}
		if offset == ln.End {
			if i == last {
				return i
			}
			if !lineEndsHard(ln) && aff == richedit.AffinityUpstream {
				return i
			}
			// Position belongs to the following line.
			continue
		}
	}
	return last
}

// caretX returns the visual x coordinate of the caret boundary at offset
// within the line. Leading and trailing edges respect each cell's
// direction, so the caret lands on the correct side of RTL runs.
func caretX(ln *Line, offset int) float64 {
	if len(ln.cells) == 0 {
		return 0
	}
	for i := range ln.cells {
		cl := &ln.cells[i]
		if offset == cl.start {
			if cl.dir == richedit.DirectionRTL {
				return cl.x + cl.width
			}
			return cl.x
		}
		if offset > cl.start && offset < cl.end {
			// Inside a cluster: interpolate by rune position.
			f := float64(offset-cl.start) / float64(cl.end-cl.start)
			if cl.dir == richedit.DirectionRTL {
				return cl.x + cl.width*(1-f)
			}
			return cl.x + cl.width*f
		}
	}
	lastCell := &ln.cells[len(ln.cells)-1]
	if lastCell.dir == richedit.DirectionRTL {
		return lastCell.x
	}
	return lastCell.x + lastCell.width
}

// CaretRect implements richedit.Geometry. The caret prototype shapes the
// rectangle: HeightExtension grows it symmetrically beyond the line
// extents, VerticalInset shrinks it from both edges.
func (l *TextLayout) CaretRect(pos richedit.Position, proto richedit.CaretPrototype) richedit.Rect {
	offset := clampOffset(pos.Offset, l.textLen)
	li := l.lineIndexFor(offset, pos.Affinity)
	if li >= len(l.lines) {
		return richedit.Rect{}
	}
	ln := &l.lines[li]

	width := proto.Width
	if width <= 0 {
		width = 1
	}
	x := caretX(ln, offset)
	top := ln.Top() - proto.HeightExtension/2 + proto.VerticalInset
	bottom := ln.Bottom() + proto.HeightExtension/2 - proto.VerticalInset
	return richedit.R(x, top, x+width, bottom)
}

// SelectionBoxes implements richedit.Geometry. One box is produced per
// same-direction run per line, merged where adjacent; boxes never cover
// offsets outside [sel.Start(), sel.End()].
func (l *TextLayout) SelectionBoxes(sel richedit.Selection, hs richedit.BoxHeightStyle, ws richedit.BoxWidthStyle) []richedit.Box {
	if !sel.IsValid() || sel.IsCollapsed() {
		return nil
	}
	start := clampOffset(sel.Start(), l.textLen)
	end := clampOffset(sel.End(), l.textLen)
	if start >= end {
		return nil
	}

	gap := l.metrics.LineGap * l.spacing
	var boxes []richedit.Box
	for i := range l.lines {
		ln := &l.lines[i]
		ovStart, ovEnd := maxInt(start, ln.Start), minInt(end, ln.End)
		if ovStart >= ovEnd {
			continue
		}

		top, bottom := ln.Top(), ln.Bottom()
		if hs == richedit.HeightMax {
			bottom += gap
		}

		if ws == richedit.WidthMax && ovStart == ln.Start && ovEnd == ln.End && i < len(l.lines)-1 {
			// Fully-selected wrapped line: one full-width box.
			boxes = append(boxes, richedit.Box{
				Rect:      richedit.R(0, top, l.width, bottom),
				Direction: l.opts.Direction,
			})
			continue
		}

		lineBoxes := cellBoxes(ln, ovStart, ovEnd, top, bottom)
		boxes = append(boxes, mergeBoxes(lineBoxes)...)
	}
	return boxes
}

// cellBoxes produces one box per cell portion intersecting [start, end).
func cellBoxes(ln *Line, start, end int, top, bottom float64) []richedit.Box {
	var out []richedit.Box
	for i := range ln.cells {
		cl := &ln.cells[i]
		s, e := maxInt(start, cl.start), minInt(end, cl.end)
		if s >= e || cl.width == 0 {
			continue
		}
		f0 := float64(s-cl.start) / float64(cl.end-cl.start)
		f1 := float64(e-cl.start) / float64(cl.end-cl.start)
		var minX, maxX float64
		if cl.dir == richedit.DirectionRTL {
			minX = cl.x + cl.width*(1-f1)
			maxX = cl.x + cl.width*(1-f0)
		} else {
			minX = cl.x + cl.width*f0
			maxX = cl.x + cl.width*f1
		}
		out = append(out, richedit.Box{
			Rect:      richedit.R(minX, top, maxX, bottom),
			Direction: cl.dir,
		})
	}
	return out
}

// mergeBoxes coalesces horizontally adjacent boxes of the same direction.
func mergeBoxes(in []richedit.Box) []richedit.Box {
	var out []richedit.Box
	for _, b := range in {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.Direction == b.Direction && prev.Rect.MinY == b.Rect.MinY &&
				(prev.Rect.MaxX == b.Rect.MinX || b.Rect.MaxX == prev.Rect.MinX) {
				if b.Rect.MinX < prev.Rect.MinX {
					prev.Rect.MinX = b.Rect.MinX
				}
				if b.Rect.MaxX > prev.Rect.MaxX {
					prev.Rect.MaxX = b.Rect.MaxX
				}
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func clampOffset(o, n int) int {
	if o < 0 {
		return 0
	}
	if o > n {
		return n
	}
	return o
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
