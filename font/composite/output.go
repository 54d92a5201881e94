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
	"golang.org/x/exp/maps"
	"seehuhn.de/go/postscript/cid"

	pdf "seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/widths"
)

// Output holds the PDF objects for a finalized composite font.
// References between the objects are filled in by [Output.Write].
type Output struct {
	// Font is the Type 0 font dictionary.
	Font pdf.Dict

	// CIDFont is the dictionary of the descendant CIDFont.
	CIDFont pdf.Dict

	Descriptor *font.Descriptor

	// FontFile is the font program to embed, or nil if the font is not
	// embedded.  FontFileKey is the key used in the font descriptor, and
	// FontFileDict holds additional entries for the stream dictionary.
	FontFile     []byte
	FontFileKey  pdf.Name
	FontFileDict pdf.Dict

	// ToUnicode is the contents of the ToUnicode CMap stream, or nil.
	ToUnicode []byte

	// Compress selects whether streams are compressed.
	Compress bool
}

// Write writes the font to a PDF file.  If ref is nil, a new reference is
// allocated for the font dictionary.  The reference to the font dictionary
// is returned.
func (out *Output) Write(w *pdf.Writer, ref *pdf.Reference) (*pdf.Reference, error) {
	if ref == nil {
		ref = w.Alloc()
	}
	cidFontRef := w.Alloc()
	fdRef := w.Alloc()

	fontDict := maps.Clone(out.Font)
	cidFontDict := maps.Clone(out.CIDFont)
	fd := *out.Descriptor

	if out.FontFile != nil {
		fileRef, err := w.WriteStream(out.FontFileDict, out.FontFile, nil, out.Compress)
		if err != nil {
			return nil, err
		}
		fd.FontFile = fileRef
		fd.FontFileKey = out.FontFileKey
	}
	if out.ToUnicode != nil {
		toUniRef, err := w.WriteStream(nil, out.ToUnicode, nil, out.Compress)
		if err != nil {
			return nil, err
		}
		fontDict["ToUnicode"] = toUniRef
	}

	_, err := w.WriteIndirect(fd.AsDict(), fdRef)
	if err != nil {
		return nil, err
	}

	cidFontDict["FontDescriptor"] = fdRef
	_, err = w.WriteIndirect(cidFontDict, cidFontRef)
	if err != nil {
		return nil, err
	}

	fontDict["DescendantFonts"] = pdf.Array{cidFontRef}
	return w.WriteIndirect(fontDict, ref)
}

// horizontalWidths returns the /W entry for the given CIDs, or nil if all
// CIDs have the default width.
func horizontalWidths(cids []cid.CID, w func(cid.CID) int, dw int, compact bool) pdf.Object {
	if compact {
		a := widths.EncodeCompact(cids, w, dw)
		if len(a) == 0 {
			return nil
		}
		return a
	}
	s := widths.EncodeHorizontal(cids, w, dw)
	if s == "" {
		return nil
	}
	return pdf.Literal(s)
}

// verticalWidths returns the /W2 entry for the given CIDs, or nil if no
// CID has vertical metrics.
func verticalWidths(cids []cid.CID, v, h func(cid.CID) int, dw int) pdf.Object {
	s := widths.EncodeVertical(cids, v, h, dw)
	if s == "" {
		return nil
	}
	return pdf.Literal(s)
}

func rosDict(ros *cid.SystemInfo) pdf.Dict {
	return pdf.Dict{
		"Registry":   pdf.String(ros.Registry),
		"Ordering":   pdf.String(ros.Ordering),
		"Supplement": pdf.Integer(ros.Supplement),
	}
}
