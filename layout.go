package ck

import "strings"

// Alignment anchors a text block inside a widget box.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignTop
	AlignBottom
	AlignTopLeft
	AlignTopRight
	AlignBottomLeft
	AlignBottomRight
)

var alignmentNames = [...]string{
	AlignLeft:        "left",
	AlignCenter:      "center",
	AlignRight:       "right",
	AlignTop:         "top",
	AlignBottom:      "bottom",
	AlignTopLeft:     "top-left",
	AlignTopRight:    "top-right",
	AlignBottomLeft:  "bottom-left",
	AlignBottomRight: "bottom-right",
}

func (a Alignment) String() string {
	if a >= 0 && int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "align(?)"
}

// TextWidth sums glyph advances of text. Each '\n' starts a new line and the
// widest line wins. Code points without a cached glyph add nothing.
func TextWidth(text string, glyphs *HashMap[*Glyph]) int {
	if glyphs == nil {
		return 0
	}
	width, widest := 0, 0
	eachRune(text, func(r rune, _, _ int) bool {
		if r == '\n' {
			widest = max(widest, width)
			width = 0
			return true
		}
		if g, ok := glyphs.Get(int64(r)); ok {
			width += g.Advance
		}
		return true
	})
	return max(widest, width)
}

// LineCount returns how many visual rows text occupies when wrapped at
// wrapWidth: the sum over physical lines of ceil(width / wrapWidth).
// Empty lines take no rows. A non-positive wrapWidth disables wrapping, so
// every line with a visible width takes one row.
func LineCount(text string, wrapWidth int, glyphs *HashMap[*Glyph]) int {
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		w := TextWidth(line, glyphs)
		if w == 0 {
			continue
		}
		if wrapWidth <= 0 {
			rows++
			continue
		}
		rows += (w + wrapWidth - 1) / wrapWidth
	}
	return rows
}

// AlignmentOffsetX returns the horizontal offset of text inside a box.
// Left-family modes pin to 0, right-family modes to the right edge, and
// center, top and bottom all center horizontally.
func AlignmentOffsetX(a Alignment, box Size, text string, font *Font) int {
	var glyphs *HashMap[*Glyph]
	if font != nil {
		glyphs = font.Glyphs
	}
	width := TextWidth(text, glyphs)

	switch a {
	case AlignLeft, AlignTopLeft, AlignBottomLeft:
		return 0
	case AlignRight, AlignTopRight, AlignBottomRight:
		return box.Width - width
	case AlignCenter, AlignTop, AlignBottom:
		return (box.Width - width) / 2
	}
	return 0
}

// AlignmentOffsetY returns the vertical offset of row lineIndex of a block of
// totalLines rows. The block is anchored to the top, bottom or vertical
// center of the box; row 0 is the topmost.
func AlignmentOffsetY(a Alignment, box Size, ascender, totalLines, lineIndex int) int {
	blockHeight := ascender * totalLines
	top := 0
	switch a {
	case AlignBottom, AlignBottomLeft, AlignBottomRight:
		top = blockHeight
	case AlignCenter, AlignLeft, AlignRight:
		top = box.Height/2 + blockHeight/2
	case AlignTop, AlignTopLeft, AlignTopRight:
		top = box.Height
	}
	return top - (lineIndex+1)*ascender
}

// TextRun is one visual row of wrapped text and its window position.
type TextRun struct {
	Text string
	X, Y float32
}

// WrapText splits text into rows that fit box.Width and positions each row
// per the alignment. Rows are packed greedily one code point at a time; a code
// point too wide for an empty row still gets a row of its own.
func WrapText(text string, font *Font, pos Position, box Size, a Alignment) []TextRun {
	if text == "" || font == nil {
		return nil
	}
	total := LineCount(text, box.Width, font.Glyphs)

	var runs []TextRun
	row := 0
	for _, line := range strings.Split(text, "\n") {
		for len(line) > 0 {
			end := fitRow(line, font, box.Width)
			seg := line[:end]
			x := AlignmentOffsetX(a, box, seg, font)
			y := AlignmentOffsetY(a, box, font.Ascender, total, row)
			runs = append(runs, TextRun{
				Text: seg,
				X:    pos.X + float32(x),
				Y:    pos.Y + float32(y),
			})
			row++
			line = line[end:]
		}
	}
	return runs
}

// fitRow returns the byte length of the longest prefix of line whose advances
// fit in width. The result is never 0 for a non-empty line.
func fitRow(line string, font *Font, width int) int {
	used, end := 0, 0
	for end < len(line) {
		r, size := DecodeRune(line[end:])
		if size == 0 {
			end++
			continue
		}
		g, ok := font.Glyph(r)
		if !ok {
			end += size
			continue
		}
		if used+g.Advance > width {
			break
		}
		used += g.Advance
		end += size
	}
	if end == 0 {
		_, size := DecodeRune(line)
		end = max(size, 1)
	}
	return end
}

// GlyphQuad is one textured rectangle of a text run, bottom-left origin.
type GlyphQuad struct {
	Texture uint32
	X, Y    float32
	W, H    float32
}

// LayoutGlyphs places the glyphs of text with the pen starting at (x, y).
// Embedded newlines move the pen down one ascender; the block is first shifted
// up so the last line sits on y. Glyphs missing from the cache are skipped and
// empty bitmaps only advance the pen.
func LayoutGlyphs(font *Font, text string, x, y, scale float32) []GlyphQuad {
	if font == nil || text == "" {
		return nil
	}
	lineStep := float32(font.Ascender) * scale
	y += float32(strings.Count(text, "\n")) * lineStep
	start := x

	quads := make([]GlyphQuad, 0, len(text))
	eachRune(text, func(r rune, _, _ int) bool {
		if r == '\n' {
			x = start
			y -= lineStep
			return true
		}
		g, ok := font.Glyph(r)
		if !ok {
			return true
		}
		if g.Width > 0 && g.Height > 0 {
			quads = append(quads, GlyphQuad{
				Texture: g.Texture,
				X:       x + float32(g.BearingX)*scale,
				Y:       y - float32(g.Height-g.BearingY+font.Descender)*scale,
				W:       float32(g.Width) * scale,
				H:       float32(g.Height) * scale,
			})
		}
		x += float32(g.Advance) * scale
		return true
	})
	return quads
}
