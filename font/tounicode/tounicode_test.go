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

package tounicode

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeExact(t *testing.T) {
	entries := []Entry{
		{Code: 10, Text: 'A'},
		{Code: 3, Text: 0xC4},
		{Code: 5, Text: 0x1F600},
	}
	got := string(Make(entries))
	want := `/CIDInit /ProcSet findresource begin
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
3 beginbfrange
<0003><0003><00C4>
<0005><0005>[<D83DDE00>]
<000A><000A><0041>
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end end
`
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected CMap (-want +got):\n%s", d)
	}
}

func TestMakeChunks(t *testing.T) {
	var entries []Entry
	for i := 0; i < 250; i++ {
		entries = append(entries, Entry{Code: uint16(1000 - i), Text: rune(0x4E00 + i)})
	}
	body := string(Make(entries))

	re := regexp.MustCompile(`(?m)^(\d+) beginbfrange$`)
	var sizes []int
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		n, _ := strconv.Atoi(m[1])
		sizes = append(sizes, n)
	}
	if d := cmp.Diff([]int{100, 100, 50}, sizes); d != "" {
		t.Errorf("unexpected block sizes (-want +got):\n%s", d)
	}
	if n := strings.Count(body, "endbfrange"); n != 3 {
		t.Errorf("%d endbfrange lines, expected 3", n)
	}

	// the codes are sorted
	first := strings.Index(body, "<02EF><02EF>")
	last := strings.Index(body, "<03E8><03E8>")
	if first < 0 || last < 0 || first > last {
		t.Error("entries not sorted")
	}
}

func TestMakeDuplicate(t *testing.T) {
	body := string(Make([]Entry{{Code: 7, Text: 'x'}, {Code: 7, Text: 'y'}}))
	if !strings.Contains(body, "<0007><0007><0078>\n") {
		t.Error("first entry missing")
	}
	if strings.Contains(body, "<0079>") {
		t.Error("second entry present")
	}
}

func TestMakeEmpty(t *testing.T) {
	if res := Make(nil); res != nil {
		t.Errorf("got %q, want nil", res)
	}
}
