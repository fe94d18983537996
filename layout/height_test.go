package layout

import (
	"math"
	"testing"
)

func TestPreferredHeight(t *testing.T) {
	// Line height is ascent + descent + gap = 12. Three lines of content
	// occupy 34px (the final line has no trailing gap).
	text := "ab\ncd\nef"

	tests := []struct {
		name      string
		opts      Options
		available float64
		want      float64
	}{
		{name: "content height", opts: Options{}, available: math.Inf(1), want: 34},
		{name: "single line field", opts: Options{MaxLines: 1}, available: math.Inf(1), want: 12},
		{name: "max lines locks height", opts: Options{MaxLines: 2}, available: math.Inf(1), want: 24},
		{name: "min equals max locks height", opts: Options{MaxLines: 2, MinLines: 2}, available: math.Inf(1), want: 24},
		{name: "content clamped by max lines", opts: Options{MaxLines: 2, MinLines: 1}, available: math.Inf(1), want: 24},
		{name: "min lines floors short content", opts: Options{MinLines: 5}, available: math.Inf(1), want: 60},
		{name: "expands fills bounded space", opts: Options{Expands: true}, available: 100, want: 100},
		{name: "expands with unbounded space follows content", opts: Options{Expands: true}, available: math.Inf(1), want: 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layoutText(t, text, tt.opts, Constraints{})
			if got := l.PreferredHeight(tt.available); got != tt.want {
				t.Errorf("PreferredHeight(%v) = %v, want %v", tt.available, got, tt.want)
			}
		})
	}
}

func TestPreferredHeight_EmptyTextIsOneLine(t *testing.T) {
	l := layoutText(t, "", Options{}, Constraints{})
	if got := l.PreferredHeight(math.Inf(1)); got != 12 {
		t.Errorf("PreferredHeight on empty text = %v, want one line height 12", got)
	}
}
