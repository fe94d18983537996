package layout

import (
	"unicode"

	"github.com/scalecode-solutions/runeseg"

	"github.com/gogpu/richedit"
)

// WordBoundaryAt implements richedit.Geometry. It returns the rune range
// of the word containing offset per Unicode word segmentation. A reserved
// inline code point segments as its own word, so double-tapping an inline
// object selects exactly that object.
func (l *TextLayout) WordBoundaryAt(offset int) richedit.Range {
	offset = clampOffset(offset, l.textLen)
	wordStart, n := 0, 0
	state := -1
	rest := l.text
	var cluster string
	var boundaries int
	for len(rest) > 0 {
		cluster, rest, boundaries, state = runeseg.StepString(rest, state)
		n += runeCount(cluster)
		if boundaries&runeseg.MaskWord != 0 {
			if offset < n {
				return richedit.Range{Start: wordStart, End: n}
			}
			wordStart = n
		}
	}
	return richedit.Range{Start: wordStart, End: n}
}

// LineBoundaryAt implements richedit.Geometry. It returns the rune range
// of the visual line containing offset, excluding a trailing hard break
// so that "extend to line end" never swallows the newline.
func (l *TextLayout) LineBoundaryAt(offset int) richedit.Range {
	if len(l.lines) == 0 {
		return richedit.Range{Start: 0, End: 0}
	}
	offset = clampOffset(offset, l.textLen)
	ln := &l.lines[l.lineIndexFor(offset, richedit.AffinityDownstream)]
	end := ln.End
	if lineEndsHard(ln) {
		end--
	}
	return richedit.Range{Start: ln.Start, End: end}
}

// NextWordOffset returns the end of the word after offset, skipping
// whitespace-only segments. Returns the text length when no further word
// exists.
func (l *TextLayout) NextWordOffset(offset int) int {
	offset = clampOffset(offset, l.textLen)
	segStart, n := 0, 0
	state := -1
	rest := l.text
	var cluster string
	var boundaries int
	for len(rest) > 0 {
		cluster, rest, boundaries, state = runeseg.StepString(rest, state)
		n += runeCount(cluster)
		if boundaries&runeseg.MaskWord != 0 {
			if n > offset && !whitespaceSegment(l.text, segStart, n) {
				return n
			}
			segStart = n
		}
	}
	return l.textLen
}

// PrevWordOffset returns the start of the word before offset, skipping
// whitespace-only segments. Returns 0 when no earlier word exists.
func (l *TextLayout) PrevWordOffset(offset int) int {
	offset = clampOffset(offset, l.textLen)
	best := 0
	segStart, n := 0, 0
	state := -1
	rest := l.text
	var cluster string
	var boundaries int
	for len(rest) > 0 {
		cluster, rest, boundaries, state = runeseg.StepString(rest, state)
		n += runeCount(cluster)
		if boundaries&runeseg.MaskWord != 0 {
			if segStart < offset && !whitespaceSegment(l.text, segStart, n) {
				best = segStart
			}
			segStart = n
		}
	}
	return best
}

// whitespaceSegment reports whether the rune range [start, end) of text
// contains only whitespace.
func whitespaceSegment(text string, start, end int) bool {
	i := 0
	for _, r := range text {
		if i >= end {
			break
		}
		if i >= start && !unicode.IsSpace(r) {
			return false
		}
		i++
	}
	return true
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
