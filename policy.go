package richedit

import "time"

// CaretPrototype describes the platform flavor of the caret rectangle.
// One platform family draws a caret slightly taller than the line with a
// small inset; others draw a shorter caret with explicit top and bottom
// offsets. The prototype is a presentation policy parameter, never a
// hard-coded constant in the geometry code.
type CaretPrototype struct {
	// Width is the caret thickness in pixels.
	Width float64
	// HeightExtension is added to the line height (tall caret family).
	HeightExtension float64
	// VerticalInset shrinks the caret from the top and bottom of the line
	// (short caret family).
	VerticalInset float64
}

// WordFallback controls what a word selection does when the hit lands on
// whitespace: extend to the previous word, or select the whitespace run
// itself.
type WordFallback int

const (
	// WordFallbackAlways always extends to the previous word.
	WordFallbackAlways WordFallback = iota
	// WordFallbackWhenReadOnly extends to the previous word only when the
	// field is read-only.
	WordFallbackWhenReadOnly
	// WordFallbackNever selects the whitespace run itself.
	WordFallbackNever
)

// String returns the string representation of the fallback mode.
func (f WordFallback) String() string {
	switch f {
	case WordFallbackAlways:
		return "Always"
	case WordFallbackWhenReadOnly:
		return "WhenReadOnly"
	case WordFallbackNever:
		return "Never"
	default:
		return "Unknown"
	}
}

// Policy bundles the platform-dependent presentation parameters. Hosts
// pick a preset or load one from a TOML file with [LoadPolicyTOML];
// nothing in the core reads platform state implicitly.
type Policy struct {
	// Caret is the caret prototype geometry.
	Caret CaretPrototype

	// WordFallback is the whitespace behavior of word selection.
	WordFallback WordFallback

	// BlinkHalfPeriod is the caret blink half period.
	BlinkHalfPeriod time.Duration

	// BlinkStartDelay is the delay before the first blink toggle when
	// opacity animation is enabled.
	BlinkStartDelay time.Duration

	// FloatingCursorMargin extends the content bounds the floating cursor
	// is clamped to.
	FloatingCursorMargin float64

	// FloatingResetDuration is the length of the snap-back animation when
	// a floating cursor drag ends.
	FloatingResetDuration time.Duration
}

// DefaultPolicy returns a platform-neutral policy.
func DefaultPolicy() Policy {
	return Policy{
		Caret:                 CaretPrototype{Width: 2},
		WordFallback:          WordFallbackWhenReadOnly,
		BlinkHalfPeriod:       500 * time.Millisecond,
		BlinkStartDelay:       150 * time.Millisecond,
		FloatingCursorMargin:  4,
		FloatingResetDuration: 125 * time.Millisecond,
	}
}

// CupertinoPolicy returns the policy matching the iOS/macOS family: a
// caret taller than the line and word selection that always extends to
// the previous word from whitespace.
func CupertinoPolicy() Policy {
	p := DefaultPolicy()
	p.Caret = CaretPrototype{Width: 2, HeightExtension: 2}
	p.WordFallback = WordFallbackAlways
	return p
}

// MaterialPolicy returns the policy matching the Android/desktop family:
// a caret inset from the line edges and whitespace word selection only in
// read-only fields.
func MaterialPolicy() Policy {
	p := DefaultPolicy()
	p.Caret = CaretPrototype{Width: 2, VerticalInset: 2}
	p.WordFallback = WordFallbackWhenReadOnly
	return p
}
