package layout

import (
	"github.com/gogpu/richedit"
)

// Metrics holds font metrics at a specific size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font
	// (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64
}

// LineHeight returns the total line height (ascent + descent + line gap).
// This is the recommended vertical distance between baselines of
// consecutive lines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// RunRequest describes one uniform-direction text run to shape.
type RunRequest struct {
	// Text is the run's substring. Obscuring, if enabled, has already
	// been applied.
	Text string

	// Start is the rune offset of the run within the flat string. Glyph
	// cluster values in the result are relative to the flat string, not
	// the run.
	Start int

	// Size is the font size in pixels.
	Size float64

	// Direction is the run's resolved direction.
	Direction richedit.Direction
}

// Glyph is one positioned glyph in a shaped run.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint32

	// Cluster is the rune offset in the flat string of the character
	// cluster this glyph belongs to. Multiple glyphs can share a cluster
	// (ligatures); one character can produce multiple glyphs.
	Cluster int

	// X and Y are the pen position relative to the run origin.
	X, Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}

// ShapedRun is the result of shaping one RunRequest.
type ShapedRun struct {
	// Glyphs is the positioned glyph sequence, in visual order.
	Glyphs []Glyph

	// Advance is the total advance of all glyphs.
	Advance float64

	// Ascent and Descent are the run's vertical extents (both positive).
	Ascent, Descent float64

	// Direction is the run's direction.
	Direction richedit.Direction
}

// Shaper is the external text-shaping primitive. The engine treats it as
// a black box: styled runs go in, positioned glyphs and metrics come out.
type Shaper interface {
	// Shape shapes one uniform-direction run.
	Shape(req RunRequest) ShapedRun

	// Metrics returns font metrics at the given size.
	Metrics(size float64) Metrics
}
