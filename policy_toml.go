package richedit

import (
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// policyFile is the TOML schema for presentation policies. All fields are
// optional; absent fields keep their DefaultPolicy values.
//
//	[caret]
//	width = 2.0
//	height_extension = 2.0
//	vertical_inset = 0.0
//
//	word_fallback = "always" # always | when_read_only | never
//	blink_half_period_ms = 500
//	blink_start_delay_ms = 150
//	floating_cursor_margin = 4.0
//	floating_reset_duration_ms = 125
type policyFile struct {
	Caret struct {
		Width           *float64 `toml:"width"`
		HeightExtension *float64 `toml:"height_extension"`
		VerticalInset   *float64 `toml:"vertical_inset"`
	} `toml:"caret"`
	WordFallback            *string  `toml:"word_fallback"`
	BlinkHalfPeriodMS       *int     `toml:"blink_half_period_ms"`
	BlinkStartDelayMS       *int     `toml:"blink_start_delay_ms"`
	FloatingCursorMargin    *float64 `toml:"floating_cursor_margin"`
	FloatingResetDurationMS *int     `toml:"floating_reset_duration_ms"`
}

// LoadPolicyTOML reads a presentation policy from TOML, starting from
// DefaultPolicy and overriding the fields present in the document.
func LoadPolicyTOML(r io.Reader) (Policy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Policy{}, fmt.Errorf("richedit: reading policy: %w", err)
	}
	return ParsePolicyTOML(data)
}

// ParsePolicyTOML parses a presentation policy from TOML bytes.
func ParsePolicyTOML(data []byte) (Policy, error) {
	var f policyFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Policy{}, fmt.Errorf("richedit: parsing policy: %w", err)
	}

	p := DefaultPolicy()
	if f.Caret.Width != nil {
		p.Caret.Width = *f.Caret.Width
	}
	if f.Caret.HeightExtension != nil {
		p.Caret.HeightExtension = *f.Caret.HeightExtension
	}
	if f.Caret.VerticalInset != nil {
		p.Caret.VerticalInset = *f.Caret.VerticalInset
	}
	if f.WordFallback != nil {
		switch *f.WordFallback {
		case "always":
			p.WordFallback = WordFallbackAlways
		case "when_read_only":
			p.WordFallback = WordFallbackWhenReadOnly
		case "never":
			p.WordFallback = WordFallbackNever
		default:
			return Policy{}, fmt.Errorf("richedit: unknown word_fallback %q", *f.WordFallback)
		}
	}
	if f.BlinkHalfPeriodMS != nil {
		p.BlinkHalfPeriod = time.Duration(*f.BlinkHalfPeriodMS) * time.Millisecond
	}
	if f.BlinkStartDelayMS != nil {
		p.BlinkStartDelay = time.Duration(*f.BlinkStartDelayMS) * time.Millisecond
	}
	if f.FloatingCursorMargin != nil {
		p.FloatingCursorMargin = *f.FloatingCursorMargin
	}
	if f.FloatingResetDurationMS != nil {
		p.FloatingResetDuration = time.Duration(*f.FloatingResetDurationMS) * time.Millisecond
	}
	return p, nil
}
