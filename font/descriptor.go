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

package font

import (
	"math"

	pdf "seehuhn.de/go/pdffont"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/os2"
)

// Descriptor represents a PDF font descriptor.
// All lengths are given in PDF glyph space units (1/1000 of the text size).
//
// See section 9.8.1 of PDF 32000-1:2008.
type Descriptor struct {
	FontName    string     // required
	FontFamily  string     // optional
	FontStretch os2.Width  // optional
	FontWeight  os2.Weight // optional
	Flags       Flags      // required

	FontBBox     rect.Rect // required
	ItalicAngle  float64   // required
	Ascent       float64   // required
	Descent      float64   // required
	Leading      float64   // optional (default: 0)
	CapHeight    float64   // required, except if no latin chars
	XHeight      float64   // optional (default: 0)
	StemV        float64   // required (0 = unknown)
	StemH        float64   // optional (default: 0)
	MaxWidth     float64   // optional (default: 0)
	AvgWidth     float64   // optional (default: 0)
	MissingWidth float64   // optional (default: 0)

	// Panose, if set, is the 12 byte /Panose entry of the /Style
	// dictionary of a CIDFont: the sFamilyClass value from the OS/2 table,
	// followed by the 10 panose bytes.
	Panose []byte

	// FontFile, if set, refers to the embedded font program.
	// FontFileKey selects the dictionary key to use, one of "FontFile",
	// "FontFile2" or "FontFile3".
	FontFile    *pdf.Reference
	FontFileKey pdf.Name
}

// AsDict converts the font descriptor to a PDF dictionary.
func (d *Descriptor) AsDict() pdf.Dict {
	dict := pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"FontName":    pdf.Name(d.FontName),
		"Flags":       pdf.Integer(d.Flags),
		"FontBBox":    rectToArray(d.FontBBox),
		"ItalicAngle": pdf.Number(d.ItalicAngle),
		"Ascent":      pdf.Number(d.Ascent),
		"Descent":     pdf.Number(d.Descent),
		"CapHeight":   pdf.Number(d.CapHeight),
		"StemV":       pdf.Number(d.StemV),
	}
	if d.FontFamily != "" {
		dict["FontFamily"] = pdf.String(d.FontFamily)
	}
	if stretch, ok := stretchNames[d.FontStretch]; ok {
		dict["FontStretch"] = stretch
	}
	if d.FontWeight != 0 {
		dict["FontWeight"] = pdf.Integer(d.FontWeight.Rounded())
	}
	if d.Leading != 0 {
		dict["Leading"] = pdf.Number(d.Leading)
	}
	if d.XHeight != 0 {
		dict["XHeight"] = pdf.Number(d.XHeight)
	}
	if d.StemH != 0 {
		dict["StemH"] = pdf.Number(d.StemH)
	}
	if d.MaxWidth != 0 {
		dict["MaxWidth"] = pdf.Number(d.MaxWidth)
	}
	if d.AvgWidth != 0 {
		dict["AvgWidth"] = pdf.Number(d.AvgWidth)
	}
	if d.MissingWidth != 0 {
		dict["MissingWidth"] = pdf.Number(d.MissingWidth)
	}
	if len(d.Panose) > 0 {
		dict["Style"] = pdf.Dict{"Panose": pdf.String(d.Panose)}
	}
	if d.FontFile != nil {
		key := d.FontFileKey
		if key == "" {
			key = "FontFile2"
		}
		dict[key] = d.FontFile
	}
	return dict
}

func rectToArray(r rect.Rect) pdf.Array {
	return pdf.Array{
		pdf.Number(math.Round(r.LLx)),
		pdf.Number(math.Round(r.LLy)),
		pdf.Number(math.Round(r.URx)),
		pdf.Number(math.Round(r.URy)),
	}
}

var stretchNames = map[os2.Width]pdf.Name{
	os2.WidthUltraCondensed: "UltraCondensed",
	os2.WidthExtraCondensed: "ExtraCondensed",
	os2.WidthCondensed:      "Condensed",
	os2.WidthSemiCondensed:  "SemiCondensed",
	os2.WidthNormal:         "Normal",
	os2.WidthSemiExpanded:   "SemiExpanded",
	os2.WidthExpanded:       "Expanded",
	os2.WidthExtraExpanded:  "ExtraExpanded",
	os2.WidthUltraExpanded:  "UltraExpanded",
}
