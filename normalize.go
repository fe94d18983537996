package richedit

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Invisible directional marker code points.
const (
	// LRMark is the left-to-right mark (U+200E).
	LRMark rune = '‎'
	// RLMark is the right-to-left mark (U+200F).
	RLMark rune = '‏'
)

// Normalizer stabilizes caret placement around weakly-directional
// whitespace in bidirectional text. After every maximal run of whitespace
// it inserts an invisible directional marker matching the direction of
// the preceding strong text, so a caret placed next to the whitespace
// does not jump to the opposite side of the field.
//
// Normalize is a pure transform apart from a one-way performance guard:
// it passes values through untouched until the first time
// mixed-direction content is seen, and always runs afterwards. The
// Controller invokes it as the very last step before committing a value,
// after all caller-supplied formatters, so the stored text always
// reflects the normalization.
type Normalizer struct {
	base      Direction
	triggered bool
}

// NewNormalizer creates a Normalizer for a field with the given declared
// base direction.
func NewNormalizer(base Direction) *Normalizer {
	return &Normalizer{base: base}
}

// Triggered reports whether mixed-direction content has been seen.
func (n *Normalizer) Triggered() bool {
	return n.triggered
}

// Normalize adjusts next so every maximal whitespace run is followed by a
// directional marker matching the last seen strong direction, stripping
// markers deposited by earlier passes so they never accumulate. Selection
// and composing offsets are shifted to account for removed and inserted
// markers at or before them. Normalize is idempotent.
func (n *Normalizer) Normalize(prev, next EditingValue) EditingValue {
	if !n.triggered {
		if !mixedDirection(next.Text) && !mixedDirection(prev.Text) {
			return next
		}
		n.triggered = true
	}

	stripped, stripMap := stripStaleMarkers([]rune(next.Text))
	out, insertMap := insertMarkers(stripped, n.base)

	mapOffset := func(o int) int {
		if o < 0 {
			return o
		}
		if o > len(stripMap)-1 {
			o = len(stripMap) - 1
		}
		return insertMap[stripMap[o]]
	}

	adjusted := EditingValue{
		Text:      string(out),
		Selection: next.Selection,
		Composing: next.Composing,
	}
	if adjusted.Selection.IsValid() {
		adjusted.Selection.Base = mapOffset(adjusted.Selection.Base)
		adjusted.Selection.Extent = mapOffset(adjusted.Selection.Extent)
	}
	if adjusted.Composing.IsValid() {
		adjusted.Composing.Start = mapOffset(adjusted.Composing.Start)
		adjusted.Composing.End = mapOffset(adjusted.Composing.End)
	}
	return adjusted
}

// isDirMarker reports whether r is one of the markers this pass inserts.
func isDirMarker(r rune) bool {
	return r == LRMark || r == RLMark
}

// isNormalizedSpace reports whether r counts as whitespace for marker
// placement.
func isNormalizedSpace(r rune) bool {
	return unicode.IsSpace(r) && !isDirMarker(r)
}

// RuneDirection classifies a code point as LTR or RTL. The
// classification is binary: strong right-to-left classes (R, AL) map to
// RTL, everything else to LTR. The layout engine uses it to split text
// runs by direction before shaping.
func RuneDirection(r rune) Direction {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.R, bidi.AL:
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

// StrongRuneDirection returns the direction of a strong code point, or
// ok false for neutral ones (whitespace, punctuation, digits). Neutral
// code points inherit the direction of the preceding strong run.
func StrongRuneDirection(r rune) (Direction, bool) {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.L:
		return DirectionLTR, true
	case bidi.R, bidi.AL:
		return DirectionRTL, true
	default:
		return 0, false
	}
}

// mixedDirection reports whether text contains strong code points of both
// directions.
func mixedDirection(text string) bool {
	var sawLTR, sawRTL bool
	for _, r := range text {
		d, ok := StrongRuneDirection(r)
		if !ok {
			continue
		}
		if d == DirectionLTR {
			sawLTR = true
		} else {
			sawRTL = true
		}
		if sawLTR && sawRTL {
			return true
		}
	}
	return false
}

// stripStaleMarkers removes directional markers that immediately follow a
// whitespace run; those are the ones a previous pass inserted. It returns
// the surviving runes and an offset map where offsetMap[i] is the output
// offset for input rune offset i (length len(in)+1).
func stripStaleMarkers(in []rune) ([]rune, []int) {
	out := make([]rune, 0, len(in))
	offsetMap := make([]int, len(in)+1)
	afterSpace := false
	for i, r := range in {
		offsetMap[i] = len(out)
		if isDirMarker(r) && afterSpace {
			// Drop the marker; afterSpace stays set so a run of stale
			// markers is removed entirely.
			continue
		}
		afterSpace = isNormalizedSpace(r)
		out = append(out, r)
	}
	offsetMap[len(in)] = len(out)
	return out, offsetMap
}

// insertMarkers inserts one directional marker after every maximal
// whitespace run, chosen by the direction of the last non-whitespace code
// point before the run (base direction when there is none). It returns
// the resulting runes and an offset map like stripStaleMarkers'.
func insertMarkers(in []rune, base Direction) ([]rune, []int) {
	out := make([]rune, 0, len(in)+4)
	offsetMap := make([]int, len(in)+1)
	lastDir := base
	inSpace := false

	marker := func() rune {
		if lastDir == DirectionRTL {
			return RLMark
		}
		return LRMark
	}

	for i, r := range in {
		if inSpace && !isNormalizedSpace(r) {
			out = append(out, marker())
			inSpace = false
		}
		offsetMap[i] = len(out)
		if isNormalizedSpace(r) {
			inSpace = true
		} else if !isDirMarker(r) {
			lastDir = RuneDirection(r)
		}
		out = append(out, r)
	}
	if inSpace {
		out = append(out, marker())
	}
	offsetMap[len(in)] = len(out)
	return out, offsetMap
}
