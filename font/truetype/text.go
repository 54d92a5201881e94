// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package truetype

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdffont/font"
)

// makeCharTables fills the width and bounding box tables for the 256 codes
// of a single-byte encoding.
func (f *Font) makeCharTables() {
	for code := 0; code < 256; code++ {
		var r rune
		if f.IsFontSpecific() {
			r = rune(code)
		} else {
			r = f.encoding.DecodeByte(byte(code))
			if r == utf8.RuneError {
				continue
			}
		}
		m, ok := f.Metrics(r)
		if !ok {
			continue
		}
		f.charWidths[code] = m.Width
		f.charBBoxes[code] = f.GlyphBBox(m.GID)
	}
}

// isSymbolCode reports whether r can be used with a font-specific font.
// This is the case for the ranges 0x0000-0x00FF and 0xF000-0xF0FF.
func isSymbolCode(r rune) bool {
	hi := r &^ 0xFF
	return hi == 0 || hi == 0xF000
}

// encodeByte returns the single-byte code for r.
func (f *Font) encodeByte(r rune) (byte, bool) {
	if f.IsFontSpecific() {
		if !isSymbolCode(r) {
			return 0, false
		}
		return byte(r), true
	}
	return f.encoding.EncodeRune(r)
}

// Width returns the width of a character.
// Characters which cannot be shown with the font have width 0.
func (f *Font) Width(r rune) int {
	switch {
	case f.isUnicode && f.vertical:
		return DefaultWidth
	case f.isUnicode:
		if f.IsFontSpecific() && !isSymbolCode(r) {
			return 0
		}
		m, _ := f.Metrics(r)
		return m.Width
	case f.winAnsi:
		if r >= 0 && r < 128 || r >= 160 && r <= 255 {
			return f.charWidths[r]
		}
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			return f.charWidths[b]
		}
		return 0
	default:
		b, ok := f.encodeByte(r)
		if !ok {
			return 0
		}
		return f.charWidths[b]
	}
}

// TextWidth returns the width of a string.
func (f *Font) TextWidth(s string) int {
	return f.runesWidth([]rune(s))
}

// TextWidthUTF16 returns the width of a string, given as UTF-16 code
// units.  A surrogate pair counts as a single character.
func (f *Font) TextWidthUTF16(text []uint16) int {
	return f.runesWidth(font.DecodeUTF16(text))
}

func (f *Font) runesWidth(rr []rune) int {
	if f.isUnicode && f.vertical {
		return DefaultWidth * len(rr)
	}
	total := 0
	for _, r := range rr {
		total += f.Width(r)
	}
	return total
}

// Encode converts a string to the character codes of the font.
// For Unicode fonts, the codes are two-byte glyph IDs, otherwise single
// bytes.  Characters which cannot be shown are omitted.
func (f *Font) Encode(s string) []byte {
	return f.encodeRunes([]rune(s))
}

// EncodeUTF16 converts text given as UTF-16 code units to the character
// codes of the font.  Surrogate pairs are combined before lookup, so that
// every pair gives at most one glyph.  Unpaired surrogates are omitted.
func (f *Font) EncodeUTF16(text []uint16) []byte {
	return f.encodeRunes(font.DecodeUTF16(text))
}

func (f *Font) encodeRunes(rr []rune) []byte {
	var res []byte
	for _, r := range rr {
		if !f.isUnicode {
			if b, ok := f.encodeByte(r); ok {
				res = append(res, b)
			}
			continue
		}

		if f.IsFontSpecific() && !isSymbolCode(r) {
			continue
		}
		m, ok := f.Metrics(r)
		if !ok {
			continue
		}
		res = append(res, byte(m.GID>>8), byte(m.GID))
	}
	return res
}

// Kern returns the kerning adjustment between two characters.
// The value is usually negative.
func (f *Font) Kern(a, b rune) int {
	ma, ok := f.Metrics(a)
	if !ok {
		return 0
	}
	mb, ok := f.Metrics(b)
	if !ok {
		return 0
	}
	return f.kerning[glyph.Pair{Left: ma.GID, Right: mb.GID}]
}

// Widths returns the widths of the 256 codes of a single-byte font.
// For Unicode fonts, nil is returned.
func (f *Font) Widths() []int {
	if f.isUnicode {
		return nil
	}
	res := make([]int, 256)
	copy(res, f.charWidths[:])
	return res
}

// CharBBox returns the bounding box of the glyph for a single-byte code.
// For Unicode fonts, the zero rectangle is returned.
func (f *Font) CharBBox(code byte) rect.Rect {
	return f.charBBoxes[code]
}
