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

package testfont

import (
	"bytes"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/kern"
	"seehuhn.de/go/sfnt/os2"
)

// Glyph IDs in the fonts returned by Basic and Symbolic.
const (
	GIDNotdef   glyph.ID = 0
	GIDSpace    glyph.ID = 1
	GIDC        glyph.ID = 2
	GIDAdiaer   glyph.ID = 3 // Ä
	GIDEuro     glyph.ID = 4
	GIDSmiley   glyph.ID = 5 // U+1F600, outside the BMP
	GIDZero     glyph.ID = 6
	GIDOne      glyph.ID = 7
	GIDTwo      glyph.ID = 8
	GIDLigature glyph.ID = 9 // composite of A and B, not mapped
	GIDA        glyph.ID = 10
	GIDB        glyph.ID = 11
)

// Basic returns a font with 12 glyphs and 2048 units per em.
// After normalization to 1000 units per em, the glyph widths are
//
//	gid:   0   1   2   3   4    5   6   7   8    9  10  11
//	width: 500 250 537 500 585 1000 488 488 488 1099 500 599
//
// Both 'A' and 'a' are mapped to glyph 10.
func Basic() *Font {
	sq := func(size funit.Int16) *glyf.Glyph {
		return square(100, 0, size)
	}
	return &Font{
		PostScriptName: "Test-Regular",
		Family:         "Test",
		UnitsPerEm:     2048,
		Glyphs: []Glyph{
			{Width: 1024, Outline: sq(800)},
			{Width: 512},
			{Width: 1100, Outline: sq(900)},
			{Width: 1024, Outline: sq(820)},
			{Width: 1200, Outline: sq(1000)},
			{Width: 2048, Outline: square(-10, -200, 1800)},
			{Width: 1000, Outline: sq(700)},
			{Width: 1000, Outline: sq(700)},
			{Width: 1000, Outline: sq(700)},
			{Width: 2252, Outline: composite(
				funit.Rect16{LLx: 100, LLy: 0, URx: 1100, URy: 1434}, GIDA, GIDB)},
			{Width: 1024, Outline: sq(900)},
			{Width: 1228, Outline: square(100, 0, 1000)},
		},
		Unicode: map[uint32]glyph.ID{
			' ':     GIDSpace,
			'A':     GIDA,
			'B':     GIDB,
			'C':     GIDC,
			'a':     GIDA,
			'0':     GIDZero,
			'1':     GIDOne,
			'2':     GIDTwo,
			0xC4:    GIDAdiaer,
			0x20AC:  GIDEuro,
			0x1F600: GIDSmiley,
		},
		MacRoman: map[byte]glyph.ID{
			' ': GIDSpace,
			'A': GIDA,
			'B': GIDB,
		},
		Kerning: kern.Info{
			{Left: GIDA, Right: GIDB}: -102,
		},
		Ascent:    1900,
		Descent:   -500,
		CapHeight: 1434,
	}
}

// Symbolic returns a symbol font: the font has a (3,0) "cmap" subtable with
// glyphs in the range 0xF020 to 0xF042, in addition to a (3,1) subtable.
// The glyphs are the same as for Basic.
func Symbolic() *Font {
	f := Basic()
	f.PostScriptName = "TestSymbol"
	f.Family = "Test Symbol"
	f.Symbol = map[uint16]glyph.ID{
		0xF020: GIDSpace,
		0xF041: GIDB,
		0xF042: GIDC,
	}
	return f
}

func square(x0, y0, size funit.Int16) *glyf.Glyph {
	outline := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{{
			{X: x0, Y: y0, OnCurve: true},
			{X: x0 + size, Y: y0, OnCurve: true},
			{X: x0 + size, Y: y0 + size, OnCurve: true},
			{X: x0, Y: y0 + size, OnCurve: true},
		}},
	}
	g := outline.AsGlyph()
	return &g
}

func composite(bbox funit.Rect16, components ...glyph.ID) *glyf.Glyph {
	cc := make([]glyf.GlyphComponent, len(components))
	for i, gid := range components {
		comp := &glyf.ComponentUnpacked{
			Child: gid,
			Trfm:  matrix.Identity,
		}
		cc[i] = comp.Pack()
	}
	return &glyf.Glyph{
		Rect16: bbox,
		Data:   glyf.CompositeGlyph{Components: cc},
	}
}

// Compact returns an OpenType font with CFF outlines and 1000 units per em.
// The glyphs are .notdef (GID 0), space (GID 1), A (GID 2) and B (GID 3),
// with widths 500, 250, 600 and 650.  The PostScript name of the font is
// "TestCompact-Regular".
func Compact() []byte {
	notdef := cff.NewGlyph(".notdef", 500)
	cffBox(notdef, 50, 0, 400, 700)
	space := cff.NewGlyph("space", 250)
	a := cff.NewGlyph("A", 600)
	cffBox(a, 50, 0, 500, 700)
	b := cff.NewGlyph("B", 650)
	b.MoveTo(50, 0)
	b.LineTo(350, 0)
	b.CurveTo(650, 0, 650, 700, 350, 700)
	b.LineTo(50, 700)

	glyphs := []*cff.Glyph{notdef, space, a, b}
	outlines := &cff.Outlines{
		Glyphs: glyphs,
		Private: []*type1.PrivateDict{
			{BlueValues: []funit.Int16{-10, 0, 700, 710}, BlueScale: 0.039625},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: cff.StandardEncoding(glyphs),
	}

	cmapSubtable := cmap.Format4{' ': 1, 'A': 2, 'B': 3}
	f := &sfnt.Font{
		FamilyName: "TestCompact",
		Width:      os2.WidthNormal,
		Weight:     os2.WeightNormal,
		IsRegular:  true,
		PermUse:    os2.PermInstall,
		UnitsPerEm: 1000,
		FontMatrix: matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
		Ascent:     800,
		Descent:    -200,
		LineGap:    200,
		CapHeight:  700,
		XHeight:    500,
		Outlines:   outlines,
		CMapTable: cmap.Table{
			{PlatformID: 3, EncodingID: 1}: cmapSubtable.Encode(0),
		},
	}

	buf := &bytes.Buffer{}
	_, err := f.Write(buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func cffBox(g *cff.Glyph, x0, y0, x1, y1 float64) {
	g.MoveTo(x0, y0)
	g.LineTo(x1, y0)
	g.LineTo(x1, y1)
	g.LineTo(x0, y1)
}
