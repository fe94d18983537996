package richedit

import "unicode/utf8"

// Affinity disambiguates a caret offset that has two visual positions,
// such as the offset at a soft line wrap: upstream renders the caret at
// the end of the earlier line, downstream at the start of the later one.
type Affinity int

const (
	// AffinityDownstream associates the position with the following text.
	AffinityDownstream Affinity = iota
	// AffinityUpstream associates the position with the preceding text.
	AffinityUpstream
)

// String returns the string representation of the affinity.
func (a Affinity) String() string {
	switch a {
	case AffinityDownstream:
		return "Downstream"
	case AffinityUpstream:
		return "Upstream"
	default:
		return "Unknown"
	}
}

// Selection is a range in the flat string, in rune offsets. Base is where
// the selection started, Extent where it currently ends; Base may be
// greater than Extent. A collapsed selection (Base == Extent) is a caret.
type Selection struct {
	Base   int
	Extent int
	// Affinity disambiguates the caret position at soft wrap boundaries.
	Affinity Affinity
	// Directional marks a selection made with a directional intent, such
	// as shift+arrow, as opposed to a word or line selection.
	Directional bool
}

// InvalidSelection is the sentinel "no selection" value.
var InvalidSelection = Selection{Base: -1, Extent: -1}

// CollapsedSelection returns a caret at the given rune offset.
func CollapsedSelection(offset int) Selection {
	return Selection{Base: offset, Extent: offset}
}

// IsValid reports whether both offsets are non-negative.
func (s Selection) IsValid() bool {
	return s.Base >= 0 && s.Extent >= 0
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.Base == s.Extent
}

// Start returns the smaller of the two offsets.
func (s Selection) Start() int {
	if s.Base <= s.Extent {
		return s.Base
	}
	return s.Extent
}

// End returns the larger of the two offsets.
func (s Selection) End() int {
	if s.Base >= s.Extent {
		return s.Base
	}
	return s.Extent
}

// Contains reports whether the offset lies inside [Start, End).
func (s Selection) Contains(offset int) bool {
	return s.IsValid() && offset >= s.Start() && offset < s.End()
}

// Range is a pair of rune offsets, used for the IME composing region and
// for boundary query results. End is exclusive.
type Range struct {
	Start, End int
}

// EmptyRange is the sentinel "no range" value.
var EmptyRange = Range{Start: -1, End: -1}

// IsValid reports whether both offsets are non-negative.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.End >= 0
}

// IsCollapsed reports whether the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// Len returns the length of the range in runes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether the offset lies inside [Start, End).
func (r Range) Contains(offset int) bool {
	return r.IsValid() && offset >= r.Start && offset < r.End
}

// EditingValue is an immutable snapshot of the editing state: the flat
// text, the selection, and the IME composing region. The Controller is
// the sole owner and mutator; every edit replaces the value wholesale and
// observers receive read-only snapshots.
type EditingValue struct {
	// Text is the flat string, possibly containing reserved code points.
	Text string
	// Selection is the caret or selected range, InvalidSelection when the
	// field has no selection.
	Selection Selection
	// Composing is the IME composition range, EmptyRange when absent.
	Composing Range
}

// RuneLen returns the length of the value's text in runes.
func (v EditingValue) RuneLen() int {
	return utf8.RuneCountInString(v.Text)
}

// SelectedText returns the substring covered by the selection.
func (v EditingValue) SelectedText() string {
	if !v.Selection.IsValid() || v.Selection.IsCollapsed() {
		return ""
	}
	return runeSubstring(v.Text, v.Selection.Start(), v.Selection.End())
}

// IsComposing reports whether an IME composition is in progress.
func (v EditingValue) IsComposing() bool {
	return v.Composing.IsValid() && !v.Composing.IsCollapsed()
}

// Validate checks the value's offsets. Offsets must satisfy
// 0 <= offset <= RuneLen, except the invalid sentinels (-1, -1). A
// malformed value yields a *ValidationError; the caller must reject the
// value and keep its previous one.
func (v EditingValue) Validate() error {
	n := v.RuneLen()
	if v.Selection != InvalidSelection {
		if v.Selection.Base < 0 || v.Selection.Extent < 0 ||
			v.Selection.Base > n || v.Selection.Extent > n {
			return &ValidationError{Field: "selection", Start: v.Selection.Base, End: v.Selection.Extent, TextLen: n}
		}
	}
	if v.Composing != EmptyRange {
		if v.Composing.Start < 0 || v.Composing.End < v.Composing.Start || v.Composing.End > n {
			return &ValidationError{Field: "composing", Start: v.Composing.Start, End: v.Composing.End, TextLen: n}
		}
	}
	return nil
}

// runeSubstring returns text[start:end] in rune offsets.
func runeSubstring(text string, start, end int) string {
	if start >= end {
		return ""
	}
	byteStart, byteEnd := -1, len(text)
	i := 0
	for b := range text {
		if i == start {
			byteStart = b
		}
		if i == end {
			byteEnd = b
			break
		}
		i++
	}
	if byteStart < 0 {
		if i == start {
			byteStart = len(text)
		} else {
			return ""
		}
	}
	return text[byteStart:byteEnd]
}

// spliceRune returns text with r inserted at the given rune offset.
func spliceRune(text string, offset int, r rune) string {
	return runeSubstring(text, 0, offset) + string(r) + runeSubstring(text, offset, utf8.RuneCountInString(text))
}

// deleteRuneRange returns text with the rune range [start, end) removed.
func deleteRuneRange(text string, start, end int) string {
	n := utf8.RuneCountInString(text)
	return runeSubstring(text, 0, start) + runeSubstring(text, end, n)
}

// replaceRuneRange returns text with the rune range [start, end) replaced
// by repl.
func replaceRuneRange(text string, start, end int, repl string) string {
	n := utf8.RuneCountInString(text)
	return runeSubstring(text, 0, start) + repl + runeSubstring(text, end, n)
}
