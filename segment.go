package richedit

import (
	"github.com/scalecode-solutions/runeseg"
)

// Grapheme cluster helpers over rune offsets. An inline object's reserved
// code point forms a single-rune cluster, so cluster-wise movement treats
// inline objects as one character without special-casing them.

// NextGraphemeOffset returns the rune offset just past the grapheme
// cluster starting at or containing offset. Returns the text length when
// offset is at or past the end.
func NextGraphemeOffset(text string, offset int) int {
	n := 0
	state := -1
	rest := text
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = runeseg.StepString(rest, state)
		clusterLen := runeLen(cluster)
		if n+clusterLen > offset {
			return n + clusterLen
		}
		n += clusterLen
	}
	return n
}

// PrevGraphemeOffset returns the rune offset of the start of the grapheme
// cluster ending at or containing offset. Returns 0 when offset is at or
// before the start.
func PrevGraphemeOffset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	state := -1
	rest := text
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = runeseg.StepString(rest, state)
		next := n + runeLen(cluster)
		if next >= offset {
			// n is the last cluster boundary strictly before offset.
			return n
		}
		n = next
	}
	return n
}

// GraphemeRangeAt returns the rune range of the grapheme cluster
// containing offset. Offsets at the text end return a collapsed range.
func GraphemeRangeAt(text string, offset int) Range {
	n := 0
	state := -1
	rest := text
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = runeseg.StepString(rest, state)
		clusterLen := runeLen(cluster)
		if offset < n+clusterLen {
			return Range{Start: n, End: n + clusterLen}
		}
		n += clusterLen
	}
	return Range{Start: n, End: n}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
