package richedit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the richedit packages.
var (
	// ErrBaselineUnavailable is returned by intrinsic (dry) measurement
	// when an inline object is aligned relative to the text baseline. No
	// baseline is knowable without a full shaping pass, so callers of
	// intrinsic sizing must treat this as "skip this measurement". It is
	// never a crash condition.
	ErrBaselineUnavailable = errors.New("richedit: baseline unavailable without full layout")

	// ErrCodecFull is returned by Codec.Register when every code point in
	// the reserved range has been allocated.
	ErrCodecFull = errors.New("richedit: reserved code point range exhausted")
)

// ValidationError reports a malformed incoming editing value, such as
// selection or composing offsets outside [0, len(text)]. The value that
// produced it is rejected and the previous valid value is retained; the
// error never propagates to the display.
type ValidationError struct {
	// Field names the offending part of the value ("selection" or "composing").
	Field string
	// Start and End are the rejected offsets.
	Start, End int
	// TextLen is the rune length of the value's text.
	TextLen int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("richedit: invalid %s range [%d, %d] for text of length %d",
		e.Field, e.Start, e.End, e.TextLen)
}

// ArgumentError reports caller misuse, such as inserting a code point
// outside the reserved range as an inline object. It signals a programmer
// error: fail fast, not recoverable.
type ArgumentError struct {
	// Op is the operation that was misused.
	Op string
	// Reason describes the misuse.
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("richedit: %s: %s", e.Op, e.Reason)
}
