// Package textmetrics measures the rendered pixel width of label text.
//
// Lane assignment and collapse decisions depend on reproducible widths,
// so every measurer here is deterministic for a given (text, size) pair.
// The primary implementation reads real glyph advances from the embedded
// Go Regular font; a length-based estimator serves as the degraded
// fallback when the font cannot be constructed.
package textmetrics

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the pixel width of text rendered at a font size.
// Implementations must be deterministic: same text and size, same width.
type Measurer interface {
	Measure(text string, size float64) float64
}

// EstimateRatio is the per-character width fraction of the font size used
// by the fallback estimator. It deliberately over-counts the Go Regular
// mean advance so the estimate errs toward wider boxes, which can waste
// lane space but not cause real overlap.
const EstimateRatio = 0.62

// measureDPI fixes the face resolution so one font-size unit equals one
// pixel (72 DPI makes point size and pixel size coincide).
const measureDPI = 72

// FaceMeasurer measures text with real glyph metrics from an OpenType
// font. Faces are built lazily per size and reused; the zero value is not
// usable, construct with NewFaceMeasurer.
type FaceMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer builds a measurer over the embedded Go Regular font.
func NewFaceMeasurer() (*FaceMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the advance width of text at the given size in pixels.
func (m *FaceMeasurer) Measure(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}

	// font.Face is not safe for concurrent use; measuring under the same
	// lock that guards the face map keeps callers goroutine-safe.
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[size]
	if !ok {
		var err error
		face, err = opentype.NewFace(m.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     measureDPI,
			Hinting: font.HintingNone,
		})
		if err != nil {
			// Face construction only fails for degenerate sizes; fall back
			// to the estimator rather than failing layout.
			return Estimate(text, size)
		}
		m.faces[size] = face
	}

	adv := font.MeasureString(face, text)
	return float64(adv) / 64 // fixed.Int26_6 to pixels
}

// EstimateMeasurer approximates width as rune count times a fixed
// fraction of the font size. Inferior but safe: it never fails and it
// over-counts typical Latin text.
type EstimateMeasurer struct{}

// Measure returns the estimated width of text at the given size.
func (EstimateMeasurer) Measure(text string, size float64) float64 {
	return Estimate(text, size)
}

// Estimate is the shared length-based width approximation.
func Estimate(text string, size float64) float64 {
	if size <= 0 {
		return 0
	}
	n := len([]rune(text))
	return float64(n) * size * EstimateRatio
}

// Default returns the best available measurer: glyph metrics when the
// embedded font parses, otherwise the estimator.
func Default() Measurer {
	if m, err := NewFaceMeasurer(); err == nil {
		return m
	}
	return EstimateMeasurer{}
}

// Ensure both implementations satisfy Measurer.
var (
	_ Measurer = (*FaceMeasurer)(nil)
	_ Measurer = EstimateMeasurer{}
)
