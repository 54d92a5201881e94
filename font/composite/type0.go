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
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/cid"

	pdf "seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cmap"
)

// CIDProgram describes a CID font which is not embedded into the PDF file.
// Such fonts are expected to be available to the viewer, typically as one
// of the fonts for Chinese, Japanese or Korean text.
// All lengths are given in PDF glyph space units.
type CIDProgram struct {
	// Name is the PostScript name of the font.
	Name string

	// Style is either empty, or a suffix like ",Bold" or ",Italic".
	Style string

	// ROS describes the character collection of the font.
	ROS *cid.SystemInfo

	FontBBox    rect.Rect
	Ascent      float64
	Descent     float64
	CapHeight   float64
	ItalicAngle float64
	StemV       float64
	Flags       font.Flags
	Panose      []byte

	// Widths gives the horizontal advance for each CID.  CIDs which are not
	// listed use the default width 1000.
	Widths map[cid.CID]int

	// VMetrics gives the vertical advance for each CID, used in vertical
	// writing mode.  The value is usually positive.
	VMetrics map[cid.CID]int
}

// DefaultWidth is the width of CIDs which are not listed in the
// width arrays.
const DefaultWidth = 1000

// type0Source is a CID font which is not embedded.
type type0Source struct {
	prog     *CIDProgram
	enc      *cmap.Encoding
	opt      *Options
	vertical bool
}

func (s *type0Source) appendCode(buf []byte, reg *Registry, r rune) []byte {
	code, c, ok := s.enc.Lookup(r)
	if !ok {
		return buf
	}
	reg.Add(c, Entry{Width: s.hWidth(c), Text: r})
	return append(buf, code...)
}

func (s *type0Source) hWidth(c cid.CID) int {
	return s.prog.Widths[c]
}

func (s *type0Source) width(r rune) int {
	_, c, ok := s.enc.Lookup(r)
	if !ok {
		return 0
	}
	var w int
	if s.vertical {
		w = s.prog.VMetrics[c]
	} else {
		w = s.prog.Widths[c]
	}
	if w <= 0 {
		return DefaultWidth
	}
	return w
}

// baseFont returns the name of the Type 0 font: the font name, followed by
// the style and the CMap name, separated by hyphens.
func (s *type0Source) baseFont() string {
	parts := []string{s.prog.Name}
	if style := strings.TrimPrefix(s.prog.Style, ","); style != "" {
		parts = append(parts, style)
	}
	parts = append(parts, s.enc.Name)
	return strings.Join(parts, "-")
}

func (s *type0Source) finalize(reg *Registry) (*Output, error) {
	p := s.prog
	name := p.Name + p.Style

	fd := &font.Descriptor{
		FontName:    name,
		Flags:       p.Flags,
		FontBBox:    p.FontBBox,
		ItalicAngle: p.ItalicAngle,
		Ascent:      p.Ascent,
		Descent:     p.Descent,
		CapHeight:   p.CapHeight,
		StemV:       p.StemV,
		Panose:      p.Panose,
	}

	ros := s.enc.ROS
	if ros == nil {
		ros = p.ROS
	}

	out := &Output{
		Font: pdf.Dict{
			"Type":     pdf.Name("Font"),
			"Subtype":  pdf.Name("Type0"),
			"BaseFont": pdf.Name(s.baseFont()),
			"Encoding": pdf.Name(s.enc.Name),
		},
		CIDFont: pdf.Dict{
			"Type":          pdf.Name("Font"),
			"Subtype":       pdf.Name("CIDFontType0"),
			"BaseFont":      pdf.Name(name),
			"CIDSystemInfo": rosDict(ros),
			"DW":            pdf.Integer(DefaultWidth),
		},
		Descriptor: fd,
	}

	cids := reg.CIDs()
	if w := horizontalWidths(cids, s.hWidth, DefaultWidth, s.opt.CompactWidths); w != nil {
		out.CIDFont["W"] = w
	}
	if s.vertical {
		v := func(c cid.CID) int { return p.VMetrics[c] }
		if w2 := verticalWidths(cids, v, s.hWidth, DefaultWidth); w2 != nil {
			out.CIDFont["W2"] = w2
		}
	}

	return out, nil
}
