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

// Package truetype maps text to glyphs and glyph widths for TrueType and
// OpenType fonts.
//
// A Font either uses Unicode text with two-byte glyph IDs as character
// codes, or one of the legacy single-byte encodings from
// golang.org/x/text/encoding/charmap.  All widths are given in PDF glyph
// space units, i.e. 1000 units per em.
package truetype

import (
	"math"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/post"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/sfnt"
)

// DefaultWidth is the width used for CIDs without an explicit width, and
// the width of all characters in vertical mode.
const DefaultWidth = 1000

// Options controls how text is mapped to glyphs.
type Options struct {
	// Encoding is the single-byte encoding used for text.  If this is nil,
	// the font uses Unicode text and two-byte glyph IDs as character codes.
	Encoding *charmap.Charmap

	// Vertical selects vertical writing mode.  This only has an effect if
	// Encoding is nil.
	Vertical bool
}

// Font is a TrueType or OpenType font, prepared for use in a PDF file.
// A Font is immutable after construction and can be used concurrently.
type Font struct {
	prog *sfnt.Program

	head *head.Info
	hhea *sfnt.HorizontalHeader
	os2  *sfnt.WindowsMetrics // nil if the font has no "OS/2" table
	post *post.Info
	maps *sfnt.CharacterMaps // nil if the font has no "cmap" table

	postScriptName string
	family         string

	numGlyphs int
	widths    []int
	bbox      []rect.Rect
	kerning   sfnt.Kerning

	encoding  *charmap.Charmap
	isUnicode bool
	vertical  bool
	winAnsi   bool

	metrics resolver // used for width queries
	active  resolver // used for glyph selection in composite fonts

	charWidths [256]int
	charBBoxes [256]rect.Rect
}

// Metrics describes the glyph used for a character.
type Metrics struct {
	GID   glyph.ID
	Width int
}

// New prepares a font for use in a PDF file.
func New(prog *sfnt.Program, opt *Options) (*Font, error) {
	if opt == nil {
		opt = &Options{}
	}

	f := &Font{
		prog:      prog,
		encoding:  opt.Encoding,
		isUnicode: opt.Encoding == nil,
		vertical:  opt.Encoding == nil && opt.Vertical,
	}

	var err error
	f.head, err = prog.ReadFontHeader()
	if err != nil {
		return nil, err
	}
	f.hhea, err = prog.ReadHorizontalHeader()
	if err != nil {
		return nil, err
	}
	upem := f.head.UnitsPerEm

	f.os2, err = prog.ReadWindowsMetrics(upem)
	if err != nil {
		return nil, err
	}
	f.post, err = prog.ReadPostTable()
	if err != nil {
		return nil, err
	}
	if f.post == nil {
		// without a "post" table, the italic angle follows the caret slope
		f.post = &post.Info{
			ItalicAngle: f.hhea.CaretAngle * 180 / math.Pi,
		}
	}

	names, err := prog.ReadNames()
	if err == nil {
		f.postScriptName = names.PostScriptName
		f.family = names.Family
	}

	f.numGlyphs, err = prog.ReadMaxGlyphID()
	if err != nil {
		return nil, err
	}
	f.widths, err = prog.ReadGlyphWidths(int(f.hhea.NumOfLongHorMetrics), upem)
	if err != nil {
		return nil, err
	}
	f.maps, err = prog.ReadCharacterMaps()
	if err != nil {
		return nil, err
	}
	f.kerning, err = prog.ReadKerning(upem)
	if err != nil {
		return nil, err
	}
	f.bbox, err = prog.ReadBBox(upem)
	if err != nil {
		return nil, err
	}

	f.selectMaps()

	if !f.isUnicode {
		f.winAnsi = f.encoding == charmap.Windows1252 && !f.IsFontSpecific()
		f.makeCharTables()
	}

	return f, nil
}

// PostScriptName returns the PostScript name of the font.
func (f *Font) PostScriptName() string {
	return f.postScriptName
}

// Family returns the family name of the font.
func (f *Font) Family() string {
	return f.family
}

// Style returns a suffix describing the style of the font, as used in
// the names of Type 0 fonts: one of "", ",Bold", ",Italic" and
// ",BoldItalic".
func (f *Font) Style() string {
	switch {
	case f.head.IsBold && f.head.IsItalic:
		return ",BoldItalic"
	case f.head.IsBold:
		return ",Bold"
	case f.head.IsItalic:
		return ",Italic"
	default:
		return ""
	}
}

// Program returns the underlying font program.
func (f *Font) Program() *sfnt.Program {
	return f.prog
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.numGlyphs
}

// IsUnicode reports whether the font uses Unicode text and two-byte
// glyph IDs as character codes.
func (f *Font) IsUnicode() bool {
	return f.isUnicode
}

// IsVertical reports whether the font uses vertical writing mode.
func (f *Font) IsVertical() bool {
	return f.vertical
}

// IsFontSpecific reports whether the font has a (3,0) symbol "cmap"
// subtable, which then takes precedence over the other subtables.
func (f *Font) IsFontSpecific() bool {
	return f.maps != nil && f.maps.FontSpecific
}

// CanEmbed reports whether the license of the font permits embedding.
func (f *Font) CanEmbed() bool {
	return f.os2 == nil || !f.os2.EmbeddingRestricted()
}

// FSType returns the embedding permissions from the "OS/2" table.
func (f *Font) FSType() uint16 {
	if f.os2 == nil {
		return 0
	}
	return f.os2.FSType
}

// GlyphWidth returns the advance width of a glyph.
func (f *Font) GlyphWidth(gid glyph.ID) int {
	if int(gid) >= len(f.widths) {
		return 0
	}
	return f.widths[gid]
}

// GlyphBBox returns the bounding box of a glyph.
func (f *Font) GlyphBBox(gid glyph.ID) rect.Rect {
	if int(gid) >= len(f.bbox) {
		return rect.Rect{}
	}
	return f.bbox[gid]
}

// Flags returns the PDF font descriptor flags for the font.
func (f *Font) Flags() font.Flags {
	var flags font.Flags
	if f.post.IsFixedPitch {
		flags |= font.FlagFixedPitch
	}
	if f.IsFontSpecific() {
		flags |= font.FlagSymbolic
	} else {
		flags |= font.FlagNonsymbolic
	}
	if f.head.IsItalic {
		flags |= font.FlagItalic
	}
	if f.head.IsBold {
		flags |= font.FlagForceBold
	}
	return flags
}
