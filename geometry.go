package richedit

// Position is a caret position: a rune offset plus the affinity that
// disambiguates it at soft line wraps.
type Position struct {
	Offset   int
	Affinity Affinity
}

// Box is one rectangle of selection geometry, carrying the text direction
// of the run it covers so hosts can render direction-dependent handles.
type Box struct {
	Rect      Rect
	Direction Direction
}

// BoxHeightStyle selects how tall selection boxes are.
type BoxHeightStyle int

const (
	// HeightTight sizes boxes to the ascent+descent of their line.
	HeightTight BoxHeightStyle = iota
	// HeightMax extends boxes to the full line height including the line
	// gap, so boxes of adjacent lines touch.
	HeightMax
)

// String returns the string representation of the height style.
func (s BoxHeightStyle) String() string {
	switch s {
	case HeightTight:
		return "Tight"
	case HeightMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// BoxWidthStyle selects how wide selection boxes are.
type BoxWidthStyle int

const (
	// WidthTight sizes boxes to the glyphs they cover.
	WidthTight BoxWidthStyle = iota
	// WidthMax extends the boxes of fully-selected lines to the layout
	// width.
	WidthMax
)

// String returns the string representation of the width style.
func (s BoxWidthStyle) String() string {
	switch s {
	case WidthTight:
		return "Tight"
	case WidthMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// Geometry answers the spatial queries the selection, keyboard, and
// floating-cursor code needs. richedit/layout produces a Geometry per
// layout pass; it is valid until the next text, constraint, or size
// change and must not be retained across passes.
//
// Points are in layout coordinates: the host subtracts its scroll offset
// before calling and adds it back when painting.
type Geometry interface {
	// PositionForPoint maps a point to the closest caret position. The
	// point is clamped to the content extents; an inline object is never
	// split, the position lands before or after it.
	PositionForPoint(p Point) Position

	// CaretRect returns the caret rectangle for a collapsed position,
	// shaped by the platform caret prototype.
	CaretRect(pos Position, proto CaretPrototype) Rect

	// SelectionBoxes returns the rectangles covering the selection, one
	// or more per line, in logical order. Boxes never extend outside
	// [sel.Start(), sel.End()].
	SelectionBoxes(sel Selection, hs BoxHeightStyle, ws BoxWidthStyle) []Box

	// WordBoundaryAt returns the word range containing the offset, using
	// linguistic segmentation.
	WordBoundaryAt(offset int) Range

	// LineBoundaryAt returns the visual line range containing the offset.
	LineBoundaryAt(offset int) Range

	// LineHeight returns the preferred height of one line.
	LineHeight() float64

	// LineCount returns the number of laid-out lines.
	LineCount() int

	// Bounds returns the content extents, used to clamp the floating
	// cursor.
	Bounds() Rect
}
