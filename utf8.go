package ck

// DecodeRune decodes the first code point of s.
//
// It returns the code point and the number of bytes consumed, or a length of
// 0 when the lead byte is invalid, a continuation byte is malformed, or the
// sequence is truncated. The decoder is lenient: surrogates, overlong forms and
// values above U+10FFFF are returned as decoded. Callers skip one byte on a
// zero length and retry.
//
// unicode/utf8 is not used because it rejects those forms and reports
// RuneError with width 1, which would change which glyphs a text run looks up.
func DecodeRune(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	c0 := s[0]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0&0xE0 == 0xC0:
		if len(s) < 2 || !continuation(s[1]) {
			return 0, 0
		}
		return rune(c0&0x1F)<<6 | rune(s[1]&0x3F), 2
	case c0&0xF0 == 0xE0:
		if len(s) < 3 || !continuation(s[1]) || !continuation(s[2]) {
			return 0, 0
		}
		return rune(c0&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), 3
	case c0&0xF8 == 0xF0:
		if len(s) < 4 || !continuation(s[1]) || !continuation(s[2]) || !continuation(s[3]) {
			return 0, 0
		}
		return rune(c0&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F), 4
	}
	return 0, 0
}

func continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// RuneCount returns the number of decodable code points in s.
// Malformed bytes are skipped and not counted.
func RuneCount(s string) int {
	n := 0
	for len(s) > 0 {
		_, size := DecodeRune(s)
		if size == 0 {
			s = s[1:]
			continue
		}
		s = s[size:]
		n++
	}
	return n
}

// eachRune calls fn for every decodable code point with its byte offset.
// Malformed bytes are skipped. Iteration stops when fn returns false.
func eachRune(s string, fn func(r rune, off, size int) bool) {
	for off := 0; off < len(s); {
		r, size := DecodeRune(s[off:])
		if size == 0 {
			off++
			continue
		}
		if !fn(r, off, size) {
			return
		}
		off += size
	}
}
