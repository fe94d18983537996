// Package layout lays out richedit span sequences and answers the
// geometry queries behind caret placement, selection rendering, and hit
// testing.
//
// The engine is a pure function of its inputs: spans, width constraints,
// and line-count options go in; a TextLayout comes out. A TextLayout
// implements richedit.Geometry and stays valid until any of those inputs
// change, at which point the caller lays out again.
//
// Text shaping is delegated to a Shaper. GoTextShaper adapts
// go-text/typesetting's HarfBuzz implementation and is the production
// choice; tests substitute deterministic fixed-advance shapers. Inline
// objects are measured through their richedit.InlineContent and take part
// in line metrics as placeholder boxes positioned by their alignment.
package layout
