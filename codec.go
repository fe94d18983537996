package richedit

import "fmt"

// Reserved code point range for inline objects. Every scalar value in
// [ReservedFirst, ReservedLast] appearing in the flat string denotes
// exactly one inline object and is never treated as displayable text.
// The range is the Basic Multilingual Plane private use area.
const (
	ReservedFirst rune = 0xE000
	ReservedLast  rune = 0xF8FF
)

// IsReserved reports whether r lies in the reserved inline-object range.
func IsReserved(r rune) bool {
	return r >= ReservedFirst && r <= ReservedLast
}

// InlineContent is externally rendered visual content addressed by one
// reserved code point. The caller owns the content; the core only
// measures it, positions its placeholder box, and forwards hit tests.
type InlineContent interface {
	// Measure returns the content's size under a width constraint without
	// performing a full layout. Used for intrinsic sizing.
	Measure(maxWidth float64) Size

	// Layout performs a full layout pass under a width constraint and
	// returns the resulting size.
	Layout(maxWidth float64) Size

	// Baseline returns the distance from the content's top edge to its
	// alphabetic baseline. ok is false when the content has no baseline,
	// in which case baseline-relative alignments fall back to bottom.
	Baseline() (baseline float64, ok bool)

	// HitTest reports whether the point, in content-local coordinates,
	// hits the content. Called only for points inside the placeholder box.
	HitTest(p Point) bool
}

// Resolver maps a reserved code point to its inline content. It must be a
// total, side-effect-free function; returning ok=false means the code
// point has no mapping and is rendered as a literal text character (a
// tofu glyph at worst), never an error.
type Resolver func(r rune) (InlineContent, bool)

// InlineAlignment positions an inline object's placeholder box relative
// to the text it sits in.
type InlineAlignment int

const (
	// AlignBottom aligns the bottom of the placeholder with the bottom of
	// the line (the default).
	AlignBottom InlineAlignment = iota
	// AlignTop aligns the top of the placeholder with the top of the line.
	AlignTop
	// AlignMiddle centers the placeholder vertically within the line.
	AlignMiddle
	// AlignBaseline aligns the placeholder's own baseline with the text
	// baseline.
	AlignBaseline
	// AlignAboveBaseline sits the placeholder's bottom on the text baseline.
	AlignAboveBaseline
	// AlignBelowBaseline hangs the placeholder's top from the text baseline.
	AlignBelowBaseline
)

// String returns the string representation of the alignment.
func (a InlineAlignment) String() string {
	switch a {
	case AlignBottom:
		return "Bottom"
	case AlignTop:
		return "Top"
	case AlignMiddle:
		return "Middle"
	case AlignBaseline:
		return "Baseline"
	case AlignAboveBaseline:
		return "AboveBaseline"
	case AlignBelowBaseline:
		return "BelowBaseline"
	default:
		return "Unknown"
	}
}

// NeedsBaseline reports whether the alignment requires a text baseline,
// and therefore a full (non-dry) layout pass, to resolve.
func (a InlineAlignment) NeedsBaseline() bool {
	switch a {
	case AlignBaseline, AlignAboveBaseline, AlignBelowBaseline:
		return true
	default:
		return false
	}
}

// Codec allocates reserved code points for caller-defined inline content
// tags and maps them back. It exists for callers that want the core to
// manage the tag<->code point association; callers with their own
// allocation scheme only need a [Resolver].
//
// Codec is not safe for concurrent use; like the rest of the package it
// assumes a single-threaded host.
type Codec struct {
	next   rune
	byTag  map[string]rune
	byRune map[rune]codecEntry
}

type codecEntry struct {
	tag     string
	content InlineContent
}

// NewCodec creates an empty codec allocating from ReservedFirst upward.
func NewCodec() *Codec {
	return &Codec{
		next:   ReservedFirst,
		byTag:  make(map[string]rune),
		byRune: make(map[rune]codecEntry),
	}
}

// Register associates tag with content and returns the allocated reserved
// code point. Registering an existing tag replaces its content and
// returns the code point already allocated for it. Register fails with
// ErrCodecFull once the reserved range is exhausted and with an
// *ArgumentError for an empty tag or nil content.
func (c *Codec) Register(tag string, content InlineContent) (rune, error) {
	if tag == "" {
		return 0, &ArgumentError{Op: "Codec.Register", Reason: "empty tag"}
	}
	if content == nil {
		return 0, &ArgumentError{Op: "Codec.Register", Reason: fmt.Sprintf("nil content for tag %q", tag)}
	}
	if r, ok := c.byTag[tag]; ok {
		c.byRune[r] = codecEntry{tag: tag, content: content}
		return r, nil
	}
	if c.next > ReservedLast {
		return 0, ErrCodecFull
	}
	r := c.next
	c.next++
	c.byTag[tag] = r
	c.byRune[r] = codecEntry{tag: tag, content: content}
	return r, nil
}

// Encode returns the code point allocated for tag.
func (c *Codec) Encode(tag string) (rune, bool) {
	r, ok := c.byTag[tag]
	return r, ok
}

// Decode returns the tag registered for the code point.
func (c *Codec) Decode(r rune) (string, bool) {
	e, ok := c.byRune[r]
	return e.tag, ok
}

// Resolve satisfies [Resolver].
func (c *Codec) Resolve(r rune) (InlineContent, bool) {
	e, ok := c.byRune[r]
	if !ok {
		return nil, false
	}
	return e.content, true
}
