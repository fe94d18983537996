package layout

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/richedit"
)

// GoTextShaper provides HarfBuzz-level text shaping using
// go-text/typesetting. It supports ligature substitution, kerning,
// contextual alternates, right-to-left text, and complex scripts.
//
// GoTextShaper is safe for concurrent use. It holds the parsed font.Font
// (which is thread-safe) and creates lightweight font.Face instances per
// Shape call (font.Face is NOT safe for concurrent use). The
// HarfbuzzShaper instances are pooled via sync.Pool since they also are
// not concurrent-safe.
type GoTextShaper struct {
	// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has
	// internal mutable state and is NOT safe for concurrent use, but
	// reusing across sequential calls is efficient.
	shaperPool sync.Pool

	fnt *font.Font

	// mu protects the metrics cache.
	mu      sync.Mutex
	metrics map[float64]Metrics
}

var _ Shaper = (*GoTextShaper)(nil)

// NewGoTextShaper parses TTF/OTF font data and returns a shaper backed by
// go-text/typesetting's HarfBuzz implementation.
func NewGoTextShaper(fontData []byte) (*GoTextShaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fnt:     face.Font,
		metrics: make(map[float64]Metrics),
	}, nil
}

// Shape implements the Shaper interface. It converts the run into
// positioned glyphs; cluster values are rune offsets in the flat string
// (req.Start plus the in-run text index).
func (s *GoTextShaper) Shape(req RunRequest) ShapedRun {
	if req.Text == "" {
		return ShapedRun{Direction: req.Direction}
	}

	// font.Face is NOT safe for concurrent use; each Shape call gets its
	// own. font.NewFace is cheap, it wraps the thread-safe *Font.
	goTextFace := font.NewFace(s.fnt)

	runes := []rune(req.Text)
	dir := mapDirection(req.Direction)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      goTextFace,
		Size:      floatToFixed(req.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hbShaper := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hbShaper.Shape(input)
	s.shaperPool.Put(hbShaper)

	run := ShapedRun{
		Glyphs:    convertGlyphs(output.Glyphs, req.Start),
		Advance:   fixedToFloat(output.Advance),
		Ascent:    fixedToFloat(output.LineBounds.Ascent),
		Descent:   -fixedToFloat(output.LineBounds.Descent),
		Direction: req.Direction,
	}
	if run.Descent < 0 {
		run.Descent = -run.Descent
	}
	return run
}

// Metrics implements the Shaper interface. Line bounds come from shaping
// a probe string at the requested size; results are cached per size.
func (s *GoTextShaper) Metrics(size float64) Metrics {
	s.mu.Lock()
	if m, ok := s.metrics[size]; ok {
		s.mu.Unlock()
		return m
	}
	s.mu.Unlock()

	probe := s.Shape(RunRequest{Text: "Ag", Size: size, Direction: richedit.DirectionLTR})
	m := Metrics{Ascent: probe.Ascent, Descent: probe.Descent}

	s.mu.Lock()
	s.metrics[size] = m
	s.mu.Unlock()
	return m
}

// mapDirection converts richedit.Direction to go-text's di.Direction.
func mapDirection(d richedit.Direction) di.Direction {
	if d == richedit.DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space rune. Mixed-script text is split into runs before shaping, so
// one script per run suffices.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// convertGlyphs converts go-text output glyphs to the Glyph slice,
// shifting cluster indices by the run's flat-string offset.
func convertGlyphs(glyphs []shaping.Glyph, runStart int) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]Glyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		xOff := fixedToFloat(g.XOffset)
		result[i] = Glyph{
			ID:      uint32(g.GlyphID),
			Cluster: runStart + g.TextIndex(),
			X:       x + xOff,
			Y:       fixedToFloat(g.YOffset),
		}
		adv := fixedToFloat(g.Advance)
		result[i].XAdvance = adv
		x += adv
	}
	return result
}
