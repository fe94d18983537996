package layout

import (
	"log/slog"
	"math"
	"strings"

	"github.com/scalecode-solutions/runeseg"

	"github.com/gogpu/richedit"
)

// DefaultFontSize is used when a span style carries no size.
const DefaultFontSize = 14.0

// DefaultObscuringCharacter masks characters in obscured (password)
// fields.
const DefaultObscuringCharacter = '•' // bullet

// Constraints bound the layout width.
type Constraints struct {
	// MinWidth is the minimum layout width. Lines shorter than MinWidth
	// report it as the layout width.
	MinWidth float64
	// MaxWidth is the wrapping width. Zero or infinite means no wrapping.
	MaxWidth float64
}

// bounded reports whether MaxWidth constrains wrapping.
func (c Constraints) bounded() bool {
	return c.MaxWidth > 0 && !math.IsInf(c.MaxWidth, 1)
}

// Options configure an Engine.
type Options struct {
	// MaxLines caps the number of lines; zero means unlimited. MaxLines
	// of one disables soft wrapping entirely.
	MaxLines int
	// MinLines sets a floor for the reported preferred height; zero means
	// no floor.
	MinLines int
	// Expands makes PreferredHeight grow to fill the given bound.
	Expands bool
	// Obscured replaces every text character with ObscuringCharacter
	// before shaping. Inline objects are not obscured.
	Obscured bool
	// ObscuringCharacter is the mask character; zero means the default
	// bullet.
	ObscuringCharacter rune
	// Direction is the base text direction of the field.
	Direction richedit.Direction
}

// Engine turns span sequences into TextLayouts. Engines are cheap and
// stateless; the same engine may serve many layout passes.
type Engine struct {
	shaper Shaper
	opts   Options
}

// NewEngine creates a layout engine using the given shaper.
func NewEngine(s Shaper, opts Options) *Engine {
	if opts.ObscuringCharacter == 0 {
		opts.ObscuringCharacter = DefaultObscuringCharacter
	}
	return &Engine{shaper: s, opts: opts}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// cell is one atomic horizontal unit of a line: a grapheme cluster of
// text or one inline object's placeholder box. Cells are never split by
// wrapping, selection, or hit testing.
type cell struct {
	start, end int // rune offsets in the flat string
	width      float64
	dir        richedit.Direction
	x          float64 // visual left edge, set during line assembly

	inline *inlineBox // nil for text cells

	canBreakAfter  bool
	mustBreakAfter bool
}

// inlineBox is the measured placeholder for one inline object.
type inlineBox struct {
	content     richedit.InlineContent
	size        richedit.Size
	alignment   richedit.InlineAlignment
	baseline    float64
	hasBaseline bool
	offset      int           // rune offset of the reserved code point
	rect        richedit.Rect // final box, set during line assembly
}

// Line is one laid-out visual line.
type Line struct {
	// Start and End are the line's rune offsets in the flat string. End
	// includes a terminating hard break, if any.
	Start, End int
	// Y is the baseline y position within the layout.
	Y float64
	// Ascent and Descent are the line's vertical extents around Y.
	Ascent, Descent float64
	// Width is the sum of the line's cell widths.
	Width float64

	cells []cell // logical order
}

// Top returns the y coordinate of the line's top edge.
func (l *Line) Top() float64 { return l.Y - l.Ascent }

// Bottom returns the y coordinate of the line's bottom edge.
func (l *Line) Bottom() float64 { return l.Y + l.Descent }

// TextLayout is the result of one layout pass. It implements
// richedit.Geometry and is valid until the next text, constraint, or
// option change.
type TextLayout struct {
	opts    Options
	metrics Metrics
	spacing float64

	text    string // original flat string (never obscured)
	textLen int

	lines   []Line
	inlines []*inlineBox

	width, height float64
}

var _ richedit.Geometry = (*TextLayout)(nil)

// Layout lays the span sequence out under the given constraints. Inline
// objects receive a full layout pass (including a baseline query when
// their alignment requires one); text runs are shaped through the
// engine's Shaper.
func (e *Engine) Layout(spans []richedit.Span, c Constraints) (*TextLayout, error) {
	return e.run(spans, c, false)
}

// Measure computes the size the spans would occupy without performing a
// full layout of inline content. Inline objects aligned relative to the
// baseline cannot be measured without shaping; Measure then returns
// richedit.ErrBaselineUnavailable and callers must skip the measurement.
func (e *Engine) Measure(spans []richedit.Span, c Constraints) (richedit.Size, error) {
	l, err := e.run(spans, c, true)
	if err != nil {
		return richedit.Size{}, err
	}
	return richedit.Size{W: l.width, H: l.height}, nil
}

func (e *Engine) run(spans []richedit.Span, c Constraints, dry bool) (*TextLayout, error) {
	style := baseStyle(spans)
	size := style.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	spacing := style.LineSpacing
	if spacing <= 0 {
		spacing = 1.0
	}

	l := &TextLayout{
		opts:    e.opts,
		metrics: e.shaper.Metrics(size),
		spacing: spacing,
		text:    flatText(spans),
	}
	l.textLen = len([]rune(l.text))

	cells, inlines, err := e.buildCells(spans, size, c, dry)
	if err != nil {
		return nil, err
	}
	l.inlines = inlines

	rows := e.wrapCells(cells, c)
	e.assembleLines(l, rows)

	for i := range l.lines {
		if l.lines[i].Width > l.width {
			l.width = l.lines[i].Width
		}
	}
	if l.width < c.MinWidth {
		l.width = c.MinWidth
	}
	if n := len(l.lines); n > 0 {
		l.height = l.lines[n-1].Bottom()
	}

	richedit.Logger().Debug("layout pass",
		slog.Int("spans", len(spans)),
		slog.Int("lines", len(l.lines)),
		slog.Bool("dry", dry))
	return l, nil
}

// baseStyle returns the style shared by the span sequence. Spans are
// produced with one base style per pass, so the first span's style
// stands for all of them.
func baseStyle(spans []richedit.Span) richedit.Style {
	if len(spans) == 0 {
		return richedit.Style{}
	}
	return spans[0].Style
}

// flatText reconstructs the flat string from the span sequence. Span
// offsets are contiguous by construction, so plain concatenation
// round-trips the source text.
func flatText(spans []richedit.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Kind == richedit.SpanInline {
			b.WriteRune(s.Rune)
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// buildCells converts spans to cells: grapheme clusters for text spans,
// one placeholder cell per inline span.
func (e *Engine) buildCells(spans []richedit.Span, size float64, c Constraints, dry bool) ([]cell, []*inlineBox, error) {
	var cells []cell
	var inlines []*inlineBox

	inlineMax := c.MaxWidth
	if !c.bounded() {
		inlineMax = math.Inf(1)
	}

	for _, s := range spans {
		switch s.Kind {
		case richedit.SpanInline:
			box, err := measureInline(s, inlineMax, dry)
			if err != nil {
				return nil, nil, err
			}
			inlines = append(inlines, box)
			cells = append(cells, cell{
				start:         s.Start,
				end:           s.End,
				width:         box.size.W,
				dir:           e.opts.Direction,
				inline:        box,
				canBreakAfter: true,
			})
		case richedit.SpanText:
			cells = append(cells, e.textCells(s, size)...)
		}
	}
	return cells, inlines, nil
}

// measureInline lays out (or, for a dry pass, measures) one inline
// object and resolves its baseline when the alignment needs it.
func measureInline(s richedit.Span, maxWidth float64, dry bool) (*inlineBox, error) {
	box := &inlineBox{
		content:   s.Content,
		alignment: s.Alignment,
		offset:    s.Start,
	}
	if dry {
		if s.Alignment.NeedsBaseline() {
			return nil, richedit.ErrBaselineUnavailable
		}
		box.size = s.Content.Measure(maxWidth)
		return box, nil
	}
	box.size = s.Content.Layout(maxWidth)
	if s.Alignment.NeedsBaseline() {
		box.baseline, box.hasBaseline = s.Content.Baseline()
	}
	return box, nil
}

// textCells shapes one text span and splits it into grapheme cluster
// cells carrying per-cluster widths, directions, and break opportunities.
func (e *Engine) textCells(s richedit.Span, size float64) []cell {
	text := s.Text
	if e.opts.Obscured {
		text = obscure(text, e.opts.ObscuringCharacter)
	}

	// Shape each maximal same-direction segment; neutral code points
	// inherit the direction of the preceding strong run.
	var cells []cell
	for _, seg := range directionSegments(text, s.Start, e.opts.Direction) {
		run := e.shaper.Shape(RunRequest{
			Text:      seg.text,
			Start:     seg.start,
			Size:      size,
			Direction: seg.dir,
		})
		cells = append(cells, clusterCells(seg, run)...)
	}
	return cells
}

// segment is a maximal same-direction piece of a text span.
type segment struct {
	text  string
	start int // rune offset in the flat string
	dir   richedit.Direction
}

// directionSegments splits text into same-direction segments. Neutral
// runes attach to the previous strong run; leading neutrals take the base
// direction.
func directionSegments(text string, start int, base richedit.Direction) []segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var segs []segment
	segStart := 0
	cur := base
	if d, ok := richedit.StrongRuneDirection(runes[0]); ok {
		cur = d
	}
	for i := 1; i < len(runes); i++ {
		d, ok := richedit.StrongRuneDirection(runes[i])
		if !ok || d == cur {
			continue
		}
		segs = append(segs, segment{text: string(runes[segStart:i]), start: start + segStart, dir: cur})
		segStart = i
		cur = d
	}
	segs = append(segs, segment{text: string(runes[segStart:]), start: start + segStart, dir: cur})
	return segs
}

// clusterCells splits a shaped segment into grapheme cluster cells. A
// cluster's width is the sum of the advances of the glyphs mapped to it.
func clusterCells(seg segment, run ShapedRun) []cell {
	// Per-rune advance of the segment, accumulated from glyph clusters.
	runes := []rune(seg.text)
	advance := make([]float64, len(runes))
	for _, g := range run.Glyphs {
		i := g.Cluster - seg.start
		if i >= 0 && i < len(advance) {
			advance[i] += g.XAdvance
		}
	}

	var cells []cell
	rest := seg.text
	state := -1
	off := 0
	var cluster string
	var boundaries int
	for len(rest) > 0 {
		cluster, rest, boundaries, state = runeseg.StepString(rest, state)
		n := len([]rune(cluster))
		w := 0.0
		for i := off; i < off+n && i < len(advance); i++ {
			w += advance[i]
		}
		cl := cell{
			start: seg.start + off,
			end:   seg.start + off + n,
			width: w,
			dir:   seg.dir,
		}
		switch boundaries & runeseg.MaskLine {
		case runeseg.LineCanBreak:
			cl.canBreakAfter = true
		case runeseg.LineMustBreak:
			// UAX#14 ends every text with a mandatory break; a hard break
			// cell exists only for a real newline.
			if strings.ContainsRune(cluster, '\n') {
				cl.mustBreakAfter = true
				cl.width = 0
			} else {
				cl.canBreakAfter = true
			}
		}
		cells = append(cells, cl)
		off += n
	}
	return cells
}

// obscure replaces every rune with the mask character.
func obscure(text string, mask rune) string {
	runes := []rune(text)
	for i := range runes {
		runes[i] = mask
	}
	return string(runes)
}

/// wrapCells breaks the cell sequence into rows: greedy wrapping at the
// last break opportunity that fits MaxWidth, hard breaks always honored.
// A single-line field (MaxLines == 1) never soft-wraps.
func (e *Engine) wrapCells(cells []cell, c Constraints) [][]cell {
	var rows [][]cell
	softWrap := c.bounded() && e.opts.MaxLines != 1

	rowStart := 0
	lineWidth := 0.0
	lastBreak := -1 // index of last cell with canBreakAfter in current row

	flush := func(end int) {
		rows = append(rows, cells[rowStart:end])
		rowStart = end
		lineWidth = 0
		lastBreak = -1
	}

	for i := 0; i < len(cells); i++ {
		cl := cells[i]
		lineWidth += cl.width

		if softWrap && lineWidth > c.MaxWidth && i > rowStart {
			breakAt := i // overflow cell moves to the next row
			if lastBreak >= rowStart {
				breakAt = lastBreak + 1
			}
			flush(breakAt)
			// Cells from breakAt through i open the new row: restore
			// their accumulated width and break opportunities.
			for j := rowStart; j <= i; j++ {
				lineWidth += cells[j].width
				if j < i && cells[j].canBreakAfter {
					lastBreak = j
				}
			}
		}

		if cl.mustBreakAfter {
			flush(i + 1)
			continue
		}
		if cl.canBreakAfter {
			lastBreak = i
		}
	}
	if rowStart < len(cells) || len(rows) == 0 {
		rows = append(rows, cells[rowStart:])
	}
	// A trailing hard break opens one more, empty line for the caret.
	if n := len(cells); n > 0 && cells[n-1].mustBreakAfter && rowStart == n {
		rows = append(rows, cells[n:])
	}
	return rows
}

// assembleLines computes line metrics, positions cells horizontally with
// run-level bidi reversal, and places inline boxes vertically by their
// alignment.
func (e *Engine) assembleLines(l *TextLayout, rows [][]cell) {
	m := l.metrics
	gap := m.LineGap * l.spacing

	offset := 0
	var y float64
	for rowIdx, row := range rows {
		line := Line{Start: offset}

		// Vertical metrics: text baseline extents, grown by inline boxes.
		line.Ascent, line.Descent = m.Ascent, m.Descent
		for i := range row {
			if box := row[i].inline; box != nil {
				a, d := box.contributions(m)
				if a > line.Ascent {
					line.Ascent = a
				}
				if d > line.Descent {
					line.Descent = d
				}
			}
		}

		if rowIdx == 0 {
			y = line.Ascent
		} else {
			y += gap + line.Ascent
		}
		line.Y = y
		y += line.Descent

		// Horizontal positions: contiguous same-direction groups are laid
		// left to right; cells inside an RTL group run right to left.
		x := 0.0
		for i := 0; i < len(row); {
			j := i
			groupWidth := 0.0
			for j < len(row) && row[j].dir == row[i].dir {
				groupWidth += row[j].width
				j++
			}
			if row[i].dir == richedit.DirectionRTL {
				gx := x + groupWidth
				for k := i; k < j; k++ {
					gx -= row[k].width
					row[k].x = gx
				}
			} else {
				gx := x
				for k := i; k < j; k++ {
					row[k].x = gx
					gx += row[k].width
				}
			}
			x += groupWidth
			i = j
		}
		line.Width = x

		// Final inline box rectangles.
		for i := range row {
			if box := row[i].inline; box != nil {
				top := box.top(line.Y, line.Ascent, line.Descent, m)
				box.rect = richedit.R(row[i].x, top, row[i].x+box.size.W, top+box.size.H)
			}
		}

		line.cells = row
		if n := len(row); n > 0 {
			line.End = row[n-1].end
		} else {
			line.End = line.Start
		}
		offset = line.End
		l.lines = append(l.lines, line)
	}
}

// contributions returns the ascent and descent the box demands from its
// line, given the text metrics.
func (b *inlineBox) contributions(m Metrics) (ascent, descent float64) {
	h := b.size.H
	switch b.alignment {
	case richedit.AlignBaseline:
		bl := b.baseline
		if !b.hasBaseline {
			bl = h // no baseline: sit on the text baseline like bottom-aligned content
		}
		return max(m.Ascent, bl), max(m.Descent, h-bl)
	case richedit.AlignAboveBaseline:
		return max(m.Ascent, h), m.Descent
	case richedit.AlignBelowBaseline:
		return m.Ascent, max(m.Descent, h)
	case richedit.AlignTop:
		return m.Ascent, max(m.Descent, h-m.Ascent)
	case richedit.AlignMiddle:
		center := (m.Ascent - m.Descent) / 2 // above baseline
		return max(m.Ascent, center+h/2), max(m.Descent, h/2-center)
	default: // AlignBottom
		return max(m.Ascent, h-m.Descent), m.Descent
	}
}

// top returns the y coordinate of the box's top edge once the line's
// final metrics are known.
func (b *inlineBox) top(baseline, ascent, descent float64, m Metrics) float64 {
	h := b.size.H
	switch b.alignment {
	case richedit.AlignBaseline:
		bl := b.baseline
		if !b.hasBaseline {
			bl = h
		}
		return baseline - bl
	case richedit.AlignAboveBaseline:
		return baseline - h
	case richedit.AlignBelowBaseline:
		return baseline
	case richedit.AlignTop:
		return baseline - ascent
	case richedit.AlignMiddle:
		center := (m.Ascent - m.Descent) / 2
		return baseline - center - h/2
	default: // AlignBottom
		return baseline + descent - h
	}
}
