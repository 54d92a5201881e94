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

// Package testfont builds small TrueType fonts in memory, for use in tests.
package testfont

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/hmtx"
	"seehuhn.de/go/sfnt/kern"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/name"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/post"
)

// Glyph describes a glyph of a test font.
type Glyph struct {
	Width   uint16
	Outline *glyf.Glyph // nil for glyphs without outline
}

// Font describes a TrueType test font.
type Font struct {
	PostScriptName string
	Family         string

	UnitsPerEm uint16
	Glyphs     []Glyph

	// Unicode is written as a (3,1) subtable.  If any code is outside the
	// BMP, a (3,10) subtable is added.
	Unicode map[uint32]glyph.ID

	// Symbol is written as a (3,0) subtable.
	Symbol map[uint16]glyph.ID

	// MacRoman is written as a (1,0) subtable.
	MacRoman map[byte]glyph.ID

	// RawCmap holds additional encoded "cmap" subtables.  These replace
	// subtables generated from the fields above.
	RawCmap cmap.Table

	Kerning kern.Info

	PermUse  os2.Permissions
	IsBold   bool
	IsItalic bool

	Ascent    funit.Int16
	Descent   funit.Int16 // negative
	CapHeight funit.Int16

	ItalicAngle  float64
	IsFixedPitch bool

	// CaretAngle is the slope of the caret in radians, 0 for upright fonts.
	CaretAngle float64

	// Omit lists tables which are not written.
	Omit []string
}

// Tables returns the binary representation of all tables of the font.
func (f *Font) Tables() map[string][]byte {
	gg := make(glyf.Glyphs, len(f.Glyphs))
	widths := make([]funit.Int16, len(f.Glyphs))
	extents := make([]funit.Rect16, len(f.Glyphs))
	var bbox funit.Rect16
	for i, g := range f.Glyphs {
		gg[i] = g.Outline
		widths[i] = funit.Int16(g.Width)
		if g.Outline == nil {
			continue
		}
		extents[i] = g.Outline.Rect16
		bbox.LLx = min(bbox.LLx, g.Outline.LLx)
		bbox.LLy = min(bbox.LLy, g.Outline.LLy)
		bbox.URx = max(bbox.URx, g.Outline.URx)
		bbox.URy = max(bbox.URy, g.Outline.URy)
	}
	glyfEnc := gg.Encode()

	lineGap := funit.Int16(f.UnitsPerEm / 30)
	hmtxInfo := &hmtx.Info{
		Widths:       widths,
		GlyphExtents: extents,
		Ascent:       f.Ascent,
		Descent:      f.Descent,
		LineGap:      lineGap,
		CaretAngle:   f.CaretAngle,
	}
	hheaData, hmtxData := hmtxInfo.Encode()

	headInfo := &head.Info{
		FontRevision:  0x00010000,
		HasYBaseAt0:   true,
		HasXBaseAt0:   true,
		UnitsPerEm:    f.UnitsPerEm,
		FontBBox:      bbox,
		IsBold:        f.IsBold,
		IsItalic:      f.IsItalic,
		LowestRecPPEM: 7,
		LocaFormat:    glyfEnc.LocaFormat,
	}
	maxpInfo := &maxp.Info{
		NumGlyphs: len(f.Glyphs),
		TTF: &maxp.TTFInfo{
			MaxZones:          2,
			MaxComponentDepth: 1,
		},
	}
	os2Info := &os2.Info{
		WeightClass:   os2.WeightNormal,
		WidthClass:    os2.WidthNormal,
		IsRegular:     !f.IsBold && !f.IsItalic,
		IsBold:        f.IsBold,
		IsItalic:      f.IsItalic,
		Ascent:        f.Ascent * 4 / 5,
		Descent:       f.Descent * 4 / 5,
		LineGap:       lineGap,
		WinAscent:     f.Ascent,
		WinDescent:    -f.Descent,
		CapHeight:     f.CapHeight,
		XHeight:       f.CapHeight * 2 / 3,
		AvgGlyphWidth: funit.Int16(f.UnitsPerEm / 2),
		FamilyClass:   0x0805,
		Panose:        [10]byte{2, 11, 5, 2, 4, 5, 4, 2, 2, 4},
		Vendor:        "TEST",
		PermUse:       f.PermUse,
	}
	postInfo := &post.Info{
		ItalicAngle:        f.ItalicAngle,
		UnderlinePosition:  -funit.Int16(f.UnitsPerEm / 10),
		UnderlineThickness: funit.Int16(f.UnitsPerEm / 20),
		IsFixedPitch:       f.IsFixedPitch,
	}
	nameInfo := &name.Info{
		Windows: name.Tables{
			"en-US": &name.Table{
				Family:         f.Family,
				Subfamily:      "Regular",
				FullName:       f.Family + " Regular",
				PostScriptName: f.PostScriptName,
			},
		},
	}

	tables := map[string][]byte{
		"head": headInfo.Encode(),
		"hhea": hheaData,
		"hmtx": hmtxData,
		"maxp": maxpInfo.Encode(),
		"OS/2": os2Info.Encode(),
		"post": postInfo.Encode(),
		"name": nameInfo.Encode(1),
		"cmap": f.encodeCmap(),
		"glyf": glyfEnc.GlyfData,
		"loca": glyfEnc.LocaData,
	}
	if len(f.Kerning) > 0 {
		tables["kern"] = f.Kerning.Encode()
	}
	for _, name := range f.Omit {
		delete(tables, name)
	}
	return tables
}

func (f *Font) encodeCmap() []byte {
	tab := cmap.Table{}
	if len(f.Unicode) > 0 {
		bmp := cmap.Format4{}
		full := cmap.Format12{}
		for c, gid := range f.Unicode {
			full[c] = gid
			if c <= 0xFFFF {
				bmp[uint16(c)] = gid
			}
		}
		tab[cmap.Key{PlatformID: 3, EncodingID: 1}] = bmp.Encode(0)
		if len(full) > len(bmp) {
			tab[cmap.Key{PlatformID: 3, EncodingID: 10}] = full.Encode(0)
		}
	}
	if len(f.Symbol) > 0 {
		sym := cmap.Format4{}
		for c, gid := range f.Symbol {
			sym[c] = gid
		}
		tab[cmap.Key{PlatformID: 3, EncodingID: 0}] = sym.Encode(0)
	}
	if len(f.MacRoman) > 0 {
		mac := &cmap.Format0{}
		for c, gid := range f.MacRoman {
			mac.Data[c] = byte(gid)
		}
		tab[cmap.Key{PlatformID: 1, EncodingID: 0}] = mac.Encode(0)
	}
	for key, data := range f.RawCmap {
		tab[key] = data
	}
	return tab.Encode()
}

// Bytes returns the font as a TrueType font file.
func (f *Font) Bytes() []byte {
	buf := &bytes.Buffer{}
	_, err := header.Write(buf, header.ScalerTypeTrueType, f.Tables())
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Collection returns a TrueType collection containing the given fonts.
// Tables are not shared between the fonts.
func Collection(fonts ...*Font) []byte {
	type entry struct {
		name   string
		data   []byte
		offset uint32
	}

	numFonts := len(fonts)
	pos := uint32(12 + 4*numFonts)
	dirOffsets := make([]uint32, numFonts)
	entries := make([][]*entry, numFonts)
	for i, f := range fonts {
		tables := f.Tables()
		names := maps.Keys(tables)
		slices.Sort(names)
		for _, name := range names {
			entries[i] = append(entries[i], &entry{name: name, data: tables[name]})
		}
		dirOffsets[i] = pos
		pos += uint32(12 + 16*len(names))
	}
	for _, ee := range entries {
		for _, e := range ee {
			pos = (pos + 3) &^ 3
			e.offset = pos
			pos += uint32(len(e.data))
		}
	}

	var res []byte
	res = append(res, "ttcf"...)
	res = binary.BigEndian.AppendUint32(res, 0x00010000)
	res = binary.BigEndian.AppendUint32(res, uint32(numFonts))
	for _, offs := range dirOffsets {
		res = binary.BigEndian.AppendUint32(res, offs)
	}
	for _, ee := range entries {
		res = binary.BigEndian.AppendUint32(res, header.ScalerTypeTrueType)
		res = binary.BigEndian.AppendUint16(res, uint16(len(ee)))
		res = append(res, 0, 0, 0, 0, 0, 0) // binary search fields are not used
		for _, e := range ee {
			res = append(res, e.name...)
			res = binary.BigEndian.AppendUint32(res, checksum(e.data))
			res = binary.BigEndian.AppendUint32(res, e.offset)
			res = binary.BigEndian.AppendUint32(res, uint32(len(e.data)))
		}
	}
	for _, ee := range entries {
		for _, e := range ee {
			for uint32(len(res)) < e.offset {
				res = append(res, 0)
			}
			res = append(res, e.data...)
		}
	}
	for len(res)%4 != 0 {
		res = append(res, 0)
	}
	return res
}

func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) > 0 {
		var word [4]byte
		n := copy(word[:], data)
		sum += binary.BigEndian.Uint32(word[:])
		data = data[n:]
	}
	return sum
}
