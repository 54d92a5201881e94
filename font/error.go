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

import "fmt"

// FormatError indicates a problem with font data.
type FormatError struct {
	SubSystem string
	Reason    string
}

func (err *FormatError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// UnsupportedFontError indicates that a font file seems valid but uses a
// feature, or a combination of font and encoding, which is not supported by
// this library.
type UnsupportedFontError struct {
	SubSystem string
	Feature   string
}

func (err *UnsupportedFontError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// IsUnsupported returns true if the error is an UnsupportedFontError.
func IsUnsupported(err error) bool {
	_, ok := err.(*UnsupportedFontError)
	return ok
}

// LicensingError indicates that the license of a font does not permit
// embedding the font into a PDF file.
type LicensingError struct {
	FontName string
	FSType   uint16 // the OS/2 embedding permissions
}

func (err *LicensingError) Error() string {
	return fmt.Sprintf("font %q cannot be embedded due to licensing restrictions (fsType 0x%04x)",
		err.FontName, err.FSType)
}

// IllegalStateError indicates that an operation was attempted on an object
// which is in the wrong state for this operation.
type IllegalStateError struct {
	Op    string
	State string
}

func (err *IllegalStateError) Error() string {
	return err.Op + ": not allowed in state " + err.State
}
