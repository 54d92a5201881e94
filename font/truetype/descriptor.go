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
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdffont/font"
)

// StemV is the value used for the /StemV entry of font descriptors.
// TrueType fonts do not record the stem width.
const StemV = 80

func (f *Font) toPDF(x int) float64 {
	return float64(x) * 1000 / float64(f.head.UnitsPerEm)
}

// FontBBox returns the font bounding box from the "head" table.
func (f *Font) FontBBox() rect.Rect {
	b := f.head.FontBBox
	return rect.Rect{
		LLx: f.toPDF(int(b.LLx)),
		LLy: f.toPDF(int(b.LLy)),
		URx: f.toPDF(int(b.URx)),
		URy: f.toPDF(int(b.URy)),
	}
}

// Ascent returns the typographic ascender of the font.
// If the font has no "OS/2" table, the value from "hhea" is used.
func (f *Font) Ascent() float64 {
	if f.os2 != nil {
		return float64(f.os2.TypoAscender)
	}
	return f.toPDF(int(f.hhea.Ascent))
}

// Descent returns the typographic descender of the font.
// The value is usually negative.
func (f *Font) Descent() float64 {
	if f.os2 != nil {
		return float64(f.os2.TypoDescender)
	}
	return f.toPDF(int(f.hhea.Descent))
}

// CapHeight returns the height of capital letters.
func (f *Font) CapHeight() float64 {
	if f.os2 != nil {
		return float64(f.os2.CapHeight)
	}
	return 700
}

// ItalicAngle returns the italic angle in degrees, counter-clockwise from
// the vertical.
func (f *Font) ItalicAngle() float64 {
	return f.post.ItalicAngle
}

// Underline returns the position and the thickness of the underline.
func (f *Font) Underline() (position, thickness float64) {
	return f.toPDF(int(f.post.UnderlinePosition)), f.toPDF(int(f.post.UnderlineThickness))
}

// Strikeout returns the position and the thickness of the strikeout line.
// If the font has no "OS/2" table, both values are 0.
func (f *Font) Strikeout() (position, thickness float64) {
	if f.os2 == nil {
		return 0, 0
	}
	return float64(f.os2.StrikeoutPosition), float64(f.os2.StrikeoutSize)
}

// Panose returns the 12 byte panose value for the /Style dictionary of
// CIDFonts: the sFamilyClass field followed by the 10 panose bytes.
// If the font has no "OS/2" table, nil is returned.
func (f *Font) Panose() []byte {
	if f.os2 == nil {
		return nil
	}
	res := make([]byte, 0, 12)
	res = append(res, byte(f.os2.FamilyClass>>8), byte(f.os2.FamilyClass))
	return append(res, f.os2.Panose[:]...)
}

// Descriptor returns a font descriptor for the font, using the given
// font name.  The font file is not set.
func (f *Font) Descriptor(fontName string) *font.Descriptor {
	d := &font.Descriptor{
		FontName:    fontName,
		FontFamily:  f.family,
		Flags:       f.Flags(),
		FontBBox:    f.FontBBox(),
		ItalicAngle: f.ItalicAngle(),
		Ascent:      f.Ascent(),
		Descent:     f.Descent(),
		CapHeight:   f.CapHeight(),
		StemV:       StemV,
	}
	if f.os2 != nil {
		d.FontWeight = f.os2.WeightClass
		d.FontStretch = f.os2.WidthClass
		d.XHeight = float64(f.os2.XHeight)
		d.AvgWidth = float64(f.os2.AvgCharWidth)
	}
	return d
}
