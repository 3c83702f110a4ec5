package ck

// Glyph is one rasterized code point at a fixed pixel size.
// Glyphs are immutable once cached.
type Glyph struct {
	Texture  uint32 // GPU texture holding the coverage bitmap
	Width    int    // bitmap width in pixels
	Height   int    // bitmap height in pixels
	BearingX int    // origin to left edge of the bitmap
	BearingY int    // baseline to top edge of the bitmap
	Advance  int    // origin to next origin
}

// Font is a glyph cache plus face metrics.
// Each widget owns its Font; fonts are not shared between widgets.
type Font struct {
	Glyphs     *HashMap[*Glyph]
	Size       int
	LineHeight int
	Ascender   int
	Descender  int // negative below the baseline
}

// NewFont creates an empty font with room for about capacity glyphs.
func NewFont(size, lineHeight, ascender, descender, capacity int) (*Font, error) {
	if capacity <= 0 {
		capacity = 256
	}
	glyphs, err := NewHashMap[*Glyph](capacity)
	if err != nil {
		return nil, err
	}
	return &Font{
		Glyphs:     glyphs,
		Size:       size,
		LineHeight: lineHeight,
		Ascender:   ascender,
		Descender:  descender,
	}, nil
}

// Add caches g for r.
func (f *Font) Add(r rune, g *Glyph) {
	f.Glyphs.Insert(int64(r), g)
}

// Glyph returns the cached glyph for r.
func (f *Font) Glyph(r rune) (*Glyph, bool) {
	if f == nil || f.Glyphs == nil {
		return nil, false
	}
	return f.Glyphs.Get(int64(r))
}

// Textures returns every glyph texture, for release by the backend.
func (f *Font) Textures() []uint32 {
	if f == nil || f.Glyphs == nil {
		return nil
	}
	out := make([]uint32, 0, f.Glyphs.Len())
	f.Glyphs.Range(func(_ int64, g *Glyph) bool {
		if g.Texture != 0 {
			out = append(out, g.Texture)
		}
		return true
	})
	return out
}
