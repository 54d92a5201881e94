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

// Package pdf implements the small part of the PDF object model needed to
// write font resources to a PDF file.
//
// The native PDF object types are implemented by Array, Bool, Dict,
// Integer, Name, Real, Reference, Stream and String.  All of these
// implement the [Object] interface.  [Literal] holds pre-formatted PDF
// syntax, for example width arrays.
//
// A [Writer] writes objects sequentially:
//
//	w, err := pdf.Create("out.pdf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fontRef, err := w.WriteIndirect(fontDict, nil)
//	...
//	err = w.Close(catalogRef, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The font subsystem lives in the sub-packages of [seehuhn.de/go/pdffont/font].
package pdf
