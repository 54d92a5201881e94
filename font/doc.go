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

// Package font implements the foundations of PDF font handling.  Support for
// specific font types is provided by sub-packages.
//
// # Embedding fonts into PDF files
//
// TrueType and OpenType font programs (.ttf, .otf and .ttc files) are read by
// [seehuhn.de/go/pdffont/font/sfnt].  The package
// [seehuhn.de/go/pdffont/font/truetype] derives glyph metrics and
// character-to-glyph mappings from a font program, and
// [seehuhn.de/go/pdffont/font/composite] composes CID-keyed composite font
// resources, including subsetting, width arrays and ToUnicode maps.
//
// # Errors
//
// The error types in this package are used by all sub-packages:
//   - [FormatError] for malformed font data
//   - [UnsupportedFontError] for valid font data which cannot be used
//   - [LicensingError] when the font license does not permit embedding
//   - [IllegalStateError] when an object is used after it has been finalized
package font
