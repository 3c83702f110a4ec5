package asset

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/rangetable"
)

// GlyphBitmap is one rasterized code point. Pix holds 8-bit coverage with
// stride Width, top row first.
type GlyphBitmap struct {
	Rune     rune
	Width    int
	Height   int
	BearingX int // pen to left edge
	BearingY int // baseline to top edge
	Advance  int
	Pix      []byte
}

// FaceMetrics are whole-pixel vertical metrics. Descender is negative below
// the baseline.
type FaceMetrics struct {
	Size       int
	LineHeight int
	Ascender   int
	Descender  int
	NumGlyphs  int
}

// GlyphTable returns printable ASCII and Latin-1 merged with the named
// unicode.Scripts tables.
func GlyphTable(scripts []string) (*unicode.RangeTable, error) {
	var base []rune
	for r := rune(0x20); r <= 0xFF; r++ {
		if r < 0x7F || r >= 0xA0 {
			base = append(base, r)
		}
	}
	tables := []*unicode.RangeTable{rangetable.New(base...)}
	for _, name := range scripts {
		t, ok := unicode.Scripts[name]
		if !ok {
			return nil, fmt.Errorf("unknown unicode script %q", name)
		}
		tables = append(tables, t)
	}
	return rangetable.Merge(tables...), nil
}

// LoadFont reads a TrueType or OpenType file and rasterizes table at size px.
func LoadFont(path string, size int, table *unicode.RangeTable) ([]GlyphBitmap, FaceMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FaceMetrics{}, fmt.Errorf("read font: %w", err)
	}
	glyphs, m, err := RasterizeFont(data, size, table)
	if err != nil {
		return nil, FaceMetrics{}, fmt.Errorf("font %q: %w", path, err)
	}
	return glyphs, m, nil
}

// RasterizeFont renders every code point of table that the font maps to a
// glyph. Code points the font lacks are left out.
func RasterizeFont(data []byte, size int, table *unicode.RangeTable) ([]GlyphBitmap, FaceMetrics, error) {
	if size <= 0 {
		return nil, FaceMetrics{}, fmt.Errorf("font size must be positive, got %d", size)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, FaceMetrics{}, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(size), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, FaceMetrics{}, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	// Metrics in pixels
	fm := face.Metrics()
	metrics := FaceMetrics{
		Size:       size,
		LineHeight: fm.Height.Round(),
		Ascender:   fm.Ascent.Round(),
		Descender:  -fm.Descent.Round(),
		NumGlyphs:  ft.NumGlyphs(),
	}

	var (
		buf    sfnt.Buffer
		glyphs []GlyphBitmap
	)
	rangetable.Visit(table, func(r rune) {
		idx, err := ft.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return
		}
		dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			return
		}
		g := GlyphBitmap{
			Rune:     r,
			Width:    dr.Dx(),
			Height:   dr.Dy(),
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  adv.Round(),
		}
		if g.Width > 0 && g.Height > 0 {
			// The face reuses its mask between calls.
			alpha := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
			draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
			g.Pix = alpha.Pix
		}
		glyphs = append(glyphs, g)
	})
	return glyphs, metrics, nil
}
