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

// Package tounicode writes ToUnicode CMaps for composite fonts with
// two-byte character codes.
package tounicode

import (
	"bytes"
	"fmt"
	"text/template"
	"unicode/utf16"

	"golang.org/x/exp/slices"
)

// Entry maps a two-byte character code to a Unicode code point.
type Entry struct {
	Code uint16
	Text rune
}

// ChunkSize is the maximal number of entries in a beginbfrange block.
const ChunkSize = 100

// Make returns the text of a ToUnicode CMap for the given entries.
// Every entry is written as a range consisting of a single code.
// The entries are sorted by code; if there are several entries for the same
// code, the first one is used.  If entries is empty, nil is returned.
func Make(entries []Entry) []byte {
	if len(entries) == 0 {
		return nil
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return int(a.Code) - int(b.Code)
	})
	sorted = slices.CompactFunc(sorted, func(a, b Entry) bool {
		return a.Code == b.Code
	})

	buf := &bytes.Buffer{}
	err := toUnicodeTmpl.Execute(buf, chunks(sorted))
	if err != nil {
		// The template only fails if writing to buf fails.
		panic(err)
	}
	return buf.Bytes()
}

func chunks(x []Entry) [][]Entry {
	var res [][]Entry
	for len(x) > ChunkSize {
		res = append(res, x[:ChunkSize])
		x = x[ChunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

// hex formats a code or code point.  Values outside the BMP are written as
// a UTF-16 surrogate pair, enclosed in brackets.
func hex(x int) string {
	if x < 0x10000 {
		return fmt.Sprintf("<%04X>", x)
	}
	hi, lo := utf16.EncodeRune(rune(x))
	return fmt.Sprintf("[<%04X%04X>]", hi, lo)
}

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"Entry": func(e Entry) string {
		code := hex(int(e.Code))
		return code + code + hex(int(e.Text))
	},
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo
<< /Registry (TTX+0)
/Ordering (T42UV)
/Supplement 0
>> def
/CMapName /TTX+0 def
/CMapType 2 def
1 begincodespacerange
<0000><FFFF>
endcodespacerange
{{range . -}}
{{len .}} beginbfrange
{{range . -}}
{{Entry .}}
{{end -}}
endbfrange
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end end
`))
