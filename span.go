package richedit

// Style carries the text attributes the layout engine needs. Painting
// attributes (color, font selection) belong to the host framework.
type Style struct {
	// Size is the font size in pixels.
	Size float64
	// LineSpacing is a multiplier for line height. Zero means 1.0.
	LineSpacing float64
}

// SpanKind discriminates the two span variants.
type SpanKind int

const (
	// SpanText is a contiguous run of plain text.
	SpanText SpanKind = iota
	// SpanInline is a single reserved code point standing for one inline
	// object.
	SpanInline
)

// String returns the string representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "Text"
	case SpanInline:
		return "Inline"
	default:
		return "Unknown"
	}
}

// Span is one offset-contiguous run produced from an editing value for a
// single layout pass: either a text run or an inline-object run. Spans
// are produced fresh on each pass and never persisted. The concatenation
// of all span lengths equals the rune length of the source text, which
// every other component relies on to translate between flat offsets and
// span-relative offsets.
type Span struct {
	// Kind discriminates the variant.
	Kind SpanKind
	// Start and End are the span's rune offsets in the flat string, End
	// exclusive. For SpanInline, End == Start+1 always.
	Start, End int
	// Style is the text style for the run.
	Style Style
	// Composing marks spans covered by the IME composing range; hosts
	// render them with an underline decoration.
	Composing bool

	// Text is the run's substring. Set for SpanText only.
	Text string

	// Rune is the reserved code point. Set for SpanInline only.
	Rune rune
	// Content is the resolved inline content. Set for SpanInline only.
	Content InlineContent
	// Alignment positions the placeholder box. Set for SpanInline only.
	Alignment InlineAlignment
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// SpanConfig configures span building.
type SpanConfig struct {
	// Style is the base style applied to every span.
	Style Style
	// Resolver maps reserved code points to inline content. A nil
	// resolver leaves every reserved code point as literal text.
	Resolver Resolver
	// Composing is the IME composing range; spans intersecting it are
	// marked Composing. Use EmptyRange when not composing.
	Composing Range
	// Alignment is applied to every inline-object span. The zero value is
	// AlignBottom.
	Alignment InlineAlignment
}

// BuildSpans partitions the flat string into an ordered, offset-contiguous
// sequence of text and inline-object spans.
//
// Each reserved code point is its own single-rune span: two adjacent
// reserved code points are two separate spans, never merged. A reserved
// code point the resolver does not recognize becomes a literal one-rune
// text span. Non-reserved runs are split at the composing range edges so
// the composing decoration covers exactly the composing substring.
func BuildSpans(text string, cfg SpanConfig) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	runes := []rune(text)
	composing := cfg.Composing
	if !composing.IsValid() || composing.IsCollapsed() {
		composing = EmptyRange
	}

	flushText := func(start, end int) {
		if start >= end {
			return
		}
		// Split the run at composing boundaries that fall inside it.
		cuts := []int{start, end}
		if composing.IsValid() {
			if composing.Start > start && composing.Start < end {
				cuts = append(cuts, composing.Start)
			}
			if composing.End > start && composing.End < end {
				cuts = append(cuts, composing.End)
			}
		}
		sortInts(cuts)
		for i := 0; i+1 < len(cuts); i++ {
			lo, hi := cuts[i], cuts[i+1]
			if lo == hi {
				continue
			}
			spans = append(spans, Span{
				Kind:      SpanText,
				Start:     lo,
				End:       hi,
				Style:     cfg.Style,
				Composing: composing.IsValid() && lo >= composing.Start && hi <= composing.End,
				Text:      string(runes[lo:hi]),
			})
		}
	}

	runStart := 0
	for i, r := range runes {
		if !IsReserved(r) {
			continue
		}
		flushText(runStart, i)
		if content, ok := resolve(cfg.Resolver, r); ok {
			spans = append(spans, Span{
				Kind:      SpanInline,
				Start:     i,
				End:       i + 1,
				Style:     cfg.Style,
				Composing: composing.Contains(i),
				Rune:      r,
				Content:   content,
				Alignment: cfg.Alignment,
			})
		} else {
			// No mapping: the code point renders as ordinary text.
			spans = append(spans, Span{
				Kind:      SpanText,
				Start:     i,
				End:       i + 1,
				Style:     cfg.Style,
				Composing: composing.Contains(i),
				Text:      string(r),
			})
		}
		runStart = i + 1
	}
	flushText(runStart, len(runes))

	return spans
}

func resolve(r Resolver, c rune) (InlineContent, bool) {
	if r == nil {
		return nil, false
	}
	return r(c)
}

// sortInts sorts a tiny slice in place. The cut slices above hold at most
// four elements.
func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
