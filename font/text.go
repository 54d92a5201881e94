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

import "unicode/utf16"

// DecodeUTF16 converts UTF-16 code units to Unicode code points.
// Surrogate pairs are combined into a single code point.  Unpaired
// surrogates are kept as they are, so that they can be dropped by
// the character lookup instead of turning into U+FFFD.
func DecodeUTF16(text []uint16) []rune {
	res := make([]rune, 0, len(text))
	for i := 0; i < len(text); i++ {
		r := rune(text[i])
		if utf16.IsSurrogate(r) && i+1 < len(text) {
			if pair := utf16.DecodeRune(r, rune(text[i+1])); pair != 0xFFFD {
				r = pair
				i++
			}
		}
		res = append(res, r)
	}
	return res
}
