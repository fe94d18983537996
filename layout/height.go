package layout

import "math"

// PreferredHeight returns the height the field should occupy given the
// available vertical space. The rules, in order:
//
//   - Expands fills the available height when it is bounded.
//   - MaxLines == 1 is always exactly one line tall.
//   - MaxLines set with MinLines unset (or equal) locks the height to
//     MaxLines lines regardless of content.
//   - Otherwise the height follows the content, clamped below by
//     MinLines and above by MaxLines where set.
func (l *TextLayout) PreferredHeight(availableHeight float64) float64 {
	lh := l.LineHeight()
	maxLines, minLines := l.opts.MaxLines, l.opts.MinLines

	if l.opts.Expands && availableHeight > 0 && !math.IsInf(availableHeight, 1) {
		return availableHeight
	}
	if maxLines == 1 {
		return lh
	}
	if maxLines > 0 && (minLines == 0 || minLines == maxLines) {
		return lh * float64(maxLines)
	}

	h := l.height
	if h < lh {
		h = lh
	}
	if minLines > 1 {
		if min := lh * float64(minLines); h < min {
			h = min
		}
	}
	if maxLines > 0 {
		if max := lh * float64(maxLines); h > max {
			h = max
		}
	}
	return h
}
