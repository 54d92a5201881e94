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

package composite

import (
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	pdf "seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cmap"
	"seehuhn.de/go/pdffont/font/tounicode"
	"seehuhn.de/go/pdffont/font/truetype"
)

// type2Source is a TrueType or OpenType font, embedded into the PDF file.
// CIDs are glyph IDs.
type type2Source struct {
	font     *truetype.Font
	enc      *cmap.Encoding
	opt      *Options
	vertical bool
}

func (s *type2Source) appendCode(buf []byte, reg *Registry, r rune) []byte {
	m, ok := s.font.ActiveMetrics(r)
	if !ok {
		return buf
	}
	reg.Add(cid.CID(m.GID), Entry{GID: m.GID, Width: m.Width, Text: r})
	return append(buf, byte(m.GID>>8), byte(m.GID))
}

func (s *type2Source) width(r rune) int {
	m, ok := s.font.ActiveMetrics(r)
	if !ok {
		return 0
	}
	if s.vertical {
		return DefaultWidth
	}
	return m.Width
}

// addRanges adds the glyphs for the configured character ranges to the
// registry.  For fonts from a TrueType collection, all glyphs in the BMP
// are added, since the font must be extracted from the collection anyway.
func (s *type2Source) addRanges(reg *Registry) {
	if s.opt.Subset {
		return
	}
	collection := s.font.Program().IsCollection()
	if len(s.opt.Ranges) == 0 && !collection {
		return
	}

	inRange := s.opt.inRange
	if len(s.opt.Ranges) == 0 {
		inRange = func(r rune) bool { return r <= 0xFFFF }
	}
	s.font.ActiveCodes(func(r rune, m truetype.Metrics) bool {
		if inRange(r) {
			reg.Add(cid.CID(m.GID), Entry{GID: m.GID, Width: m.Width, Text: r})
		}
		return true
	})
}

func (s *type2Source) finalize(reg *Registry) (*Output, error) {
	s.addRanges(reg)

	cids := reg.CIDs()
	glyphs := make(map[glyph.ID]bool, len(cids))
	gids := make([]glyph.ID, len(cids))
	for i, c := range cids {
		glyphs[glyph.ID(c)] = true
		gids[i] = glyph.ID(c)
	}

	prog := s.font.Program()
	isCFF := prog.IsCompact()
	var data []byte
	var err error
	switch {
	case isCFF:
		data, err = prog.GetSubset(glyphs, s.opt.Subset || len(s.opt.Ranges) > 0)
	case s.opt.Subset || prog.IsCollection():
		data, err = prog.GetSubset(glyphs, true)
	default:
		data, err = prog.GetFullFont()
	}
	if err != nil {
		return nil, err
	}

	var tag string
	if s.opt.Subset {
		tag = font.SubsetTag(gids, s.font.NumGlyphs()) + "+"
	}
	name := s.font.PostScriptName()
	baseFont := tag + name
	if isCFF {
		baseFont += "-" + s.enc.Name
	}

	fd := s.font.Descriptor(tag + name)
	fd.Panose = s.font.Panose()

	out := &Output{
		Font: pdf.Dict{
			"Type":     pdf.Name("Font"),
			"Subtype":  pdf.Name("Type0"),
			"BaseFont": pdf.Name(baseFont),
			"Encoding": pdf.Name(s.enc.Name),
		},
		CIDFont: pdf.Dict{
			"Type":          pdf.Name("Font"),
			"BaseFont":      pdf.Name(baseFont),
			"CIDSystemInfo": rosDict(cmap.IdentityROS()),
			"DW":            pdf.Integer(DefaultWidth),
		},
		Descriptor: fd,
		FontFile:   data,
	}
	if isCFF {
		out.CIDFont["Subtype"] = pdf.Name("CIDFontType0")
		out.FontFileKey = "FontFile3"
		out.FontFileDict = pdf.Dict{"Subtype": pdf.Name("CIDFontType0C")}
	} else {
		out.CIDFont["Subtype"] = pdf.Name("CIDFontType2")
		out.CIDFont["CIDToGIDMap"] = pdf.Name("Identity")
		out.FontFileKey = "FontFile2"
		out.FontFileDict = pdf.Dict{"Length1": pdf.Integer(len(data))}
	}

	width := func(c cid.CID) int {
		e, _ := reg.Lookup(c)
		return e.Width
	}
	if w := horizontalWidths(cids, width, DefaultWidth, s.opt.CompactWidths); w != nil {
		out.CIDFont["W"] = w
	}
	if s.vertical {
		advance := func(cid.CID) int { return DefaultWidth }
		if w2 := verticalWidths(cids, advance, width, DefaultWidth); w2 != nil {
			out.CIDFont["W2"] = w2
		}
	}

	entries := make([]tounicode.Entry, 0, len(cids))
	for _, c := range cids {
		e, _ := reg.Lookup(c)
		entries = append(entries, tounicode.Entry{Code: uint16(c), Text: e.Text})
	}
	out.ToUnicode = tounicode.Make(entries)

	return out, nil
}
