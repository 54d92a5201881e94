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

package cmap

import (
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/font"
)

// Predefined returns one of the predefined identity CMaps.
// The supported names are "Identity-H" and "Identity-V".
//
// For the identity CMaps, text is converted to two-byte codes using UCS-2
// and the CID equals the code.
func Predefined(name string) (*Encoding, error) {
	var wMode int
	switch name {
	case "Identity-H":
		wMode = 0
	case "Identity-V":
		wMode = 1
	default:
		return nil, &font.UnsupportedFontError{
			SubSystem: "cmap",
			Feature:   "predefined CMap " + name,
		}
	}
	return &Encoding{
		Name:     name,
		ROS:      IdentityROS(),
		WMode:    wMode,
		codec:    codecUCS2,
		identity: true,
	}, nil
}

// IdentityROS returns the character collection Adobe-Identity-0.
func IdentityROS() *cid.SystemInfo {
	return &cid.SystemInfo{
		Registry:   "Adobe",
		Ordering:   "Identity",
		Supplement: 0,
	}
}
