package canvas

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer reports the extent of a string set in a font.
//
// The returned box is relative to the text origin on the baseline:
// X0 = 0, X1 = advance width, Y0 = -ascent, Y1 = descent. baseline is the
// distance from the top of the box to the baseline.
type TextMeasurer interface {
	TextBBox(text string, f Font) (box Rect, baseline float64)
}

type faceKey struct {
	bold, italic bool
	size         float64
}

// FaceMetrics measures and rasterizes text with the Go font family.
// Faces are created lazily and kept for the lifetime of the value.
// A FaceMetrics is not safe for concurrent use; give each render worker
// its own.
type FaceMetrics struct {
	fonts map[[2]bool]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFaceMetrics parses the embedded Go fonts.
func NewFaceMetrics() (*FaceMetrics, error) {
	m := &FaceMetrics{
		fonts: make(map[[2]bool]*opentype.Font, 4),
		faces: make(map[faceKey]font.Face),
	}
	for key, ttf := range map[[2]bool][]byte{
		{false, false}: goregular.TTF,
		{true, false}:  gobold.TTF,
		{false, true}:  goitalic.TTF,
		{true, true}:   gobolditalic.TTF,
	} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse go font: %w", err)
		}
		m.fonts[key] = f
	}
	return m, nil
}

// Face returns the font face for f scaled by scale.
func (m *FaceMetrics) Face(f Font, scale float64) (font.Face, error) {
	f = f.orDefault()
	key := faceKey{bold: f.Bold, italic: f.Italic, size: f.Size * scale}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.fonts[[2]bool{f.Bold, f.Italic}], &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// TextBBox implements TextMeasurer.
func (m *FaceMetrics) TextBBox(text string, f Font) (Rect, float64) {
	face, err := m.Face(f, 1)
	if err != nil {
		return approxBBox(text, f.orDefault())
	}
	met := face.Metrics()
	ascent, descent := fixedToFloat(met.Ascent), fixedToFloat(met.Descent)
	adv := fixedToFloat(font.MeasureString(face, text))
	return Rect{X0: 0, Y0: -ascent, X1: adv, Y1: descent}, ascent
}

// fontTTF returns the TTF data used for f, for embedding into SVG output.
func fontTTF(f Font) []byte {
	switch {
	case f.Bold && f.Italic:
		return gobolditalic.TTF
	case f.Bold:
		return gobold.TTF
	case f.Italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// approxBBox estimates text extent from character count. It is the fallback
// when no face can be built and is what [ApproxMetrics] reports.
func approxBBox(text string, f Font) (Rect, float64) {
	const (
		charWidth = 0.55
		ascent    = 0.9
		descent   = 0.25
	)
	n := float64(len([]rune(text)))
	return Rect{X0: 0, Y0: -ascent * f.Size, X1: n * charWidth * f.Size, Y1: descent * f.Size}, ascent * f.Size
}

// ApproxMetrics is a font-free TextMeasurer based on average glyph width.
// It is deterministic across platforms, which makes it handy in tests.
type ApproxMetrics struct{}

// TextBBox implements TextMeasurer.
func (ApproxMetrics) TextBBox(text string, f Font) (Rect, float64) {
	return approxBBox(text, f.orDefault())
}
