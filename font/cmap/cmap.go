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

// Package cmap maps Unicode text to CIDs, using CMaps whose character codes
// are a Unicode encoding.
package cmap

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"seehuhn.de/go/postscript/cid"
)

// Encoding is a CMap which maps Unicode text to CIDs.
type Encoding struct {
	// Name is the name of the CMap, for example "UniJIS-UTF16-H".
	Name string

	// ROS describes the character collection the CIDs refer to.
	ROS *cid.SystemInfo

	// WMode is the writing mode: 0 for horizontal, 1 for vertical.
	WMode int

	codec    codec
	identity bool
	singles  map[string]cid.CID
	ranges   []cidRange
	parent   *Encoding
}

type cidRange struct {
	low, high []byte
	first     cid.CID
}

// IsIdentity reports whether the CMap is Identity-H or Identity-V.
func (e *Encoding) IsIdentity() bool {
	return e.identity
}

// IsVertical reports whether the CMap uses vertical writing mode.
func (e *Encoding) IsVertical() bool {
	return e.WMode == 1
}

// Lookup returns the character code and the CID for r.
// If r cannot be represented, ok is false.
func (e *Encoding) Lookup(r rune) (code []byte, c cid.CID, ok bool) {
	code = e.codec.appendCode(nil, r)
	if code == nil {
		return nil, 0, false
	}
	c, ok = e.lookupCode(code)
	if !ok {
		return nil, 0, false
	}
	return code, c, true
}

func (e *Encoding) lookupCode(code []byte) (cid.CID, bool) {
	if e.identity {
		if len(code) != 2 {
			return 0, false
		}
		return cid.CID(code[0])<<8 | cid.CID(code[1]), true
	}

	if c, ok := e.singles[string(code)]; ok {
		return c, true
	}
	for _, rg := range e.ranges {
		if len(rg.low) != len(code) {
			continue
		}
		if bytes.Compare(rg.low, code) <= 0 && bytes.Compare(code, rg.high) <= 0 {
			return rg.first + cid.CID(codeValue(code)-codeValue(rg.low)), true
		}
	}
	if e.parent != nil {
		return e.parent.lookupCode(code)
	}
	return 0, false
}

func codeValue(code []byte) uint32 {
	var res uint32
	for _, b := range code {
		res = res<<8 | uint32(b)
	}
	return res
}

// codec describes how Unicode text is converted to character codes.
type codec int

const (
	codecUTF16 codec = iota // UTF-16BE, including surrogate pairs
	codecUCS2               // UTF-16BE, BMP only
	codecUTF32              // UTF-32BE
	codecUTF8
)

func codecFor(name string) (codec, bool) {
	switch {
	case strings.Contains(name, "UTF16"):
		return codecUTF16, true
	case strings.Contains(name, "UCS2"):
		return codecUCS2, true
	case strings.Contains(name, "UTF32"):
		return codecUTF32, true
	case strings.Contains(name, "UTF8"):
		return codecUTF8, true
	default:
		return 0, false
	}
}

func (c codec) appendCode(buf []byte, r rune) []byte {
	if r < 0 || r > unicode.MaxRune || (r >= 0xD800 && r < 0xE000) {
		return nil
	}
	switch c {
	case codecUTF16:
		if r < 0x10000 {
			return append(buf, byte(r>>8), byte(r))
		}
		hi, lo := utf16.EncodeRune(r)
		return append(buf, byte(hi>>8), byte(hi), byte(lo>>8), byte(lo))
	case codecUCS2:
		if r >= 0x10000 {
			return nil
		}
		return append(buf, byte(r>>8), byte(r))
	case codecUTF32:
		return append(buf, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
	default:
		return utf8.AppendRune(buf, r)
	}
}
