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

package sfnt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/internal/testfont"
)

func TestReadBasic(t *testing.T) {
	p, err := Parse(testfont.Basic().Bytes())
	if err != nil {
		t.Fatal(err)
	}

	if p.IsCompact() || p.IsCollection() {
		t.Errorf("wrong font type: compact=%t, collection=%t",
			p.IsCompact(), p.IsCollection())
	}

	headInfo, err := p.ReadFontHeader()
	if err != nil {
		t.Fatal(err)
	}
	if headInfo.UnitsPerEm != 2048 {
		t.Errorf("unitsPerEm = %d, want 2048", headInfo.UnitsPerEm)
	}

	hheaInfo, err := p.ReadHorizontalHeader()
	if err != nil {
		t.Fatal(err)
	}
	if hheaInfo.NumOfLongHorMetrics != 12 {
		t.Errorf("numOfLongHorMetrics = %d, want 12", hheaInfo.NumOfLongHorMetrics)
	}

	numGlyphs, err := p.ReadMaxGlyphID()
	if err != nil {
		t.Fatal(err)
	}
	if numGlyphs != 12 {
		t.Errorf("numGlyphs = %d, want 12", numGlyphs)
	}

	widths, err := p.ReadGlyphWidths(int(hheaInfo.NumOfLongHorMetrics), headInfo.UnitsPerEm)
	if err != nil {
		t.Fatal(err)
	}
	expected := []int{500, 250, 537, 500, 585, 1000, 488, 488, 488, 1099, 500, 599}
	if d := cmp.Diff(expected, widths); d != "" {
		t.Errorf("widths: (-want +got):\n%s", d)
	}

	m, err := p.ReadWindowsMetrics(headInfo.UnitsPerEm)
	if err != nil {
		t.Fatal(err)
	}
	if m.TypoAscender != 742 || m.TypoDescender != -195 || m.CapHeight != 700 {
		t.Errorf("wrong metrics: ascent=%d, descent=%d, capHeight=%d",
			m.TypoAscender, m.TypoDescender, m.CapHeight)
	}
	if m.EmbeddingRestricted() {
		t.Error("embedding should be allowed")
	}

	postInfo, err := p.ReadPostTable()
	if err != nil {
		t.Fatal(err)
	}
	if postInfo == nil || postInfo.UnderlinePosition != -204 {
		t.Errorf("unexpected post table %v", postInfo)
	}

	names, err := p.ReadNames()
	if err != nil {
		t.Fatal(err)
	}
	if got := names.PostScriptName; got != "Test-Regular" {
		t.Errorf("PostScript name = %q", got)
	}
}

func TestShortWidths(t *testing.T) {
	f := testfont.Basic()
	for i := 6; i < len(f.Glyphs); i++ {
		f.Glyphs[i].Width = 1000
	}
	p, err := Parse(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	hheaInfo, _ := p.ReadHorizontalHeader()
	if hheaInfo.NumOfLongHorMetrics != 7 {
		t.Fatalf("numOfLongHorMetrics = %d, want 7", hheaInfo.NumOfLongHorMetrics)
	}
	widths, err := p.ReadGlyphWidths(7, 2048)
	if err != nil {
		t.Fatal(err)
	}
	if len(widths) != 12 {
		t.Fatalf("got %d widths, want 12", len(widths))
	}
	for gid := 6; gid < 12; gid++ {
		if widths[gid] != 488 {
			t.Errorf("width[%d] = %d, want 488", gid, widths[gid])
		}
	}
}

func TestOptionalTables(t *testing.T) {
	f := testfont.Basic()
	f.Omit = []string{"post", "OS/2", "cmap", "kern"}
	p, err := Parse(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	postInfo, err := p.ReadPostTable()
	if postInfo != nil || err != nil {
		t.Errorf("post: got %v, %v", postInfo, err)
	}
	m, err := p.ReadWindowsMetrics(2048)
	if m != nil || err != nil {
		t.Errorf("OS/2: got %v, %v", m, err)
	}
	cm, err := p.ReadCharacterMaps()
	if cm != nil || err != nil {
		t.Errorf("cmap: got %v, %v", cm, err)
	}
	kk, err := p.ReadKerning(2048)
	if len(kk) != 0 || err != nil {
		t.Errorf("kern: got %v, %v", kk, err)
	}
}

func TestRequiredTables(t *testing.T) {
	for _, name := range []string{"head", "hhea"} {
		f := testfont.Basic()
		f.Omit = []string{name}
		_, err := Parse(f.Bytes())
		var formatErr *font.FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("missing %q: got error %v", name, err)
		}
	}

	_, err := Parse([]byte("OTTO"))
	if err == nil {
		t.Error("truncated font accepted")
	}
}

func TestCharacterMaps(t *testing.T) {
	p, err := Parse(testfont.Basic().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	cm, err := p.ReadCharacterMaps()
	if err != nil {
		t.Fatal(err)
	}
	if cm.FontSpecific {
		t.Error("font is not symbolic")
	}
	if gid, _ := cm.LookupUnicode('A'); gid != testfont.GIDA {
		t.Errorf("'A' -> %d", gid)
	}
	if _, ok := cm.LookupUnicode('Z'); ok {
		t.Error("'Z' should not be mapped")
	}
	if gid, _ := cm.LookupExtended(0x1F600); gid != testfont.GIDSmiley {
		t.Errorf("U+1F600 -> %d", gid)
	}
	// without a (3,0) subtable, the (1,0) subtable is used
	if gid, _ := cm.LookupSymbol('B'); gid != testfont.GIDB {
		t.Errorf("symbol 'B' -> %d", gid)
	}

	p, err = Parse(testfont.Symbolic().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	cm, err = p.ReadCharacterMaps()
	if err != nil {
		t.Fatal(err)
	}
	if !cm.FontSpecific {
		t.Error("font is symbolic")
	}
	if gid, _ := cm.LookupSymbol(0x41); gid != testfont.GIDB {
		t.Errorf("symbol 0x41 -> %d", gid)
	}
	if gid, _ := cm.LookupSymbol(0xF042); gid != testfont.GIDC {
		t.Errorf("symbol 0xF042 -> %d", gid)
	}

	all := make(map[uint32]glyph.ID)
	cm.AllSymbol(func(c uint32, gid glyph.ID) bool {
		all[c] = gid
		return true
	})
	expected := map[uint32]glyph.ID{
		0x20: testfont.GIDSpace,
		0x41: testfont.GIDB,
		0x42: testfont.GIDC,
	}
	if d := cmp.Diff(expected, all); d != "" {
		t.Errorf("symbol map: (-want +got):\n%s", d)
	}
}

// TestBrokenSymbolCmap checks that an undecodable (3,0) subtable does not
// make the font symbolic.
func TestBrokenSymbolCmap(t *testing.T) {
	f := testfont.Basic()
	f.RawCmap = cmap.Table{
		{PlatformID: 3, EncodingID: 0}: {0, 2, 0, 10, 0, 0, 0, 0, 0, 0},
	}
	p, err := Parse(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	cm, err := p.ReadCharacterMaps()
	if err != nil {
		t.Fatal(err)
	}
	if cm.FontSpecific {
		t.Error("font with broken (3,0) subtable marked as symbolic")
	}
	if gid, _ := cm.LookupSymbol('B'); gid != testfont.GIDB {
		t.Errorf("symbol 'B' -> %d, want %d", gid, testfont.GIDB)
	}
	if gid, _ := cm.LookupUnicode('A'); gid != testfont.GIDA {
		t.Errorf("'A' -> %d", gid)
	}
}

func TestKerning(t *testing.T) {
	p, err := Parse(testfont.Basic().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	kk, err := p.ReadKerning(2048)
	if err != nil {
		t.Fatal(err)
	}
	expected := Kerning{{Left: testfont.GIDA, Right: testfont.GIDB}: -49}
	if d := cmp.Diff(expected, kk); d != "" {
		t.Errorf("kerning: (-want +got):\n%s", d)
	}
}

func TestBBox(t *testing.T) {
	p, err := Parse(testfont.Basic().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	boxes, err := p.ReadBBox(2048)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 12 {
		t.Fatalf("got %d boxes, want 12", len(boxes))
	}
	if boxes[testfont.GIDSpace] != (rect.Rect{}) {
		t.Errorf("space has bounding box %v", boxes[testfont.GIDSpace])
	}
	expected := rect.Rect{LLx: 48, LLy: 0, URx: 488, URy: 439}
	if d := cmp.Diff(expected, boxes[testfont.GIDA]); d != "" {
		t.Errorf("bbox of A: (-want +got):\n%s", d)
	}
}

func TestCollection(t *testing.T) {
	data := testfont.Collection(testfont.Basic(), testfont.Symbolic())

	p, err := ReadCollection(bytes.NewReader(data), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCollection() {
		t.Error("collection not detected")
	}
	if p.DirectoryOffset() == 0 {
		t.Error("missing directory offset")
	}
	names, err := p.ReadNames()
	if err != nil {
		t.Fatal(err)
	}
	if got := names.PostScriptName; got != "TestSymbol" {
		t.Errorf("PostScript name = %q", got)
	}
	cm, err := p.ReadCharacterMaps()
	if err != nil {
		t.Fatal(err)
	}
	if !cm.FontSpecific {
		t.Error("wrong font selected")
	}

	_, err = ReadCollection(bytes.NewReader(data), 2)
	if err == nil {
		t.Error("font index out of range accepted")
	}

	// the extracted font can be read on its own
	full, err := p.GetFullFont()
	if err != nil {
		t.Fatal(err)
	}
	q, err := Parse(full)
	if err != nil {
		t.Fatal(err)
	}
	if q.IsCollection() {
		t.Error("extracted font is still a collection")
	}
	w1, _ := p.ReadGlyphWidths(12, 2048)
	w2, _ := q.ReadGlyphWidths(12, 2048)
	if d := cmp.Diff(w1, w2); d != "" {
		t.Errorf("widths changed: (-want +got):\n%s", d)
	}
}

func TestFullFont(t *testing.T) {
	data := testfont.Basic().Bytes()
	p, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	full, err := p.GetSubset(map[glyph.ID]bool{testfont.GIDA: true}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(full, data) {
		t.Error("font data was modified")
	}
}

func TestSubset(t *testing.T) {
	p, err := Parse(testfont.Basic().Bytes())
	if err != nil {
		t.Fatal(err)
	}
	subset, err := p.GetSubset(map[glyph.ID]bool{testfont.GIDLigature: true}, true)
	if err != nil {
		t.Fatal(err)
	}

	q, err := Parse(subset)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"cmap", "name", "OS/2", "post", "kern"} {
		if q.Header().Has(name) {
			t.Errorf("subset contains %q table", name)
		}
	}

	numGlyphs, err := q.ReadMaxGlyphID()
	if err != nil {
		t.Fatal(err)
	}
	if numGlyphs != 12 {
		t.Errorf("glyphs were renumbered: %d glyphs", numGlyphs)
	}
	w1, _ := p.ReadGlyphWidths(12, 2048)
	w2, _ := q.ReadGlyphWidths(12, 2048)
	if d := cmp.Diff(w1, w2); d != "" {
		t.Errorf("widths changed: (-want +got):\n%s", d)
	}

	boxes, err := q.ReadBBox(2048)
	if err != nil {
		t.Fatal(err)
	}
	for gid, box := range boxes {
		var keep bool
		switch glyph.ID(gid) {
		case testfont.GIDNotdef, testfont.GIDLigature, testfont.GIDA, testfont.GIDB:
			keep = true
		}
		if keep == (box == rect.Rect{}) {
			t.Errorf("glyph %d: keep=%t, bbox=%v", gid, keep, box)
		}
	}
}

func TestCompact(t *testing.T) {
	data := testfont.Compact()
	p, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCompact() {
		t.Fatal("CFF font not detected")
	}

	names, err := p.ReadNames()
	if err != nil {
		t.Fatal(err)
	}
	if got := names.PostScriptName; got != "TestCompact-Regular" {
		t.Errorf("PostScript name = %q", got)
	}

	boxes, err := p.ReadBBox(1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 4 {
		t.Fatalf("got %d boxes, want 4", len(boxes))
	}
	if boxes[1] != (rect.Rect{}) {
		t.Errorf("space has bounding box %v", boxes[1])
	}
	expected := rect.Rect{LLx: 50, LLy: 0, URx: 500, URy: 700}
	if d := cmp.Diff(expected, boxes[2]); d != "" {
		t.Errorf("bbox of A: (-want +got):\n%s", d)
	}

	full, err := p.GetSubset(map[glyph.ID]bool{3: true}, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cff.Read(bytes.NewReader(full)); err != nil {
		t.Errorf("unsubsetted CFF data: %v", err)
	}

	subset, err := p.GetSubset(map[glyph.ID]bool{3: true, 1: true, 0: true}, true)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := cff.Read(bytes.NewReader(subset))
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Glyphs) != 3 {
		t.Fatalf("subset has %d glyphs, want 3", len(sub.Glyphs))
	}
	if d := cmp.Diff([]cid.CID{0, 1, 3}, sub.GIDToCID); d != "" {
		t.Errorf("GIDToCID: (-want +got):\n%s", d)
	}
	if sub.ROS == nil || sub.ROS.Registry != "Adobe" || sub.ROS.Ordering != "Identity" {
		t.Errorf("wrong ROS %v", sub.ROS)
	}
	if sub.Glyphs[2].Width != 650 {
		t.Errorf("width of B = %g, want 650", sub.Glyphs[2].Width)
	}
}

// TestGoRegular compares the values read from a real font to the values
// found by golang.org/x/image/font/sfnt.
func TestGoRegular(t *testing.T) {
	p, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := xsfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	headInfo, err := p.ReadFontHeader()
	if err != nil {
		t.Fatal(err)
	}
	upem := headInfo.UnitsPerEm
	if int(upem) != int(ref.UnitsPerEm()) {
		t.Fatalf("unitsPerEm = %d, want %d", upem, ref.UnitsPerEm())
	}
	hheaInfo, err := p.ReadHorizontalHeader()
	if err != nil {
		t.Fatal(err)
	}
	widths, err := p.ReadGlyphWidths(int(hheaInfo.NumOfLongHorMetrics), upem)
	if err != nil {
		t.Fatal(err)
	}
	if len(widths) != ref.NumGlyphs() {
		t.Fatalf("got %d widths, want %d", len(widths), ref.NumGlyphs())
	}
	cm, err := p.ReadCharacterMaps()
	if err != nil {
		t.Fatal(err)
	}

	buf := &xsfnt.Buffer{}
	ppem := fixed.I(int(upem))
	for _, r := range "Hello, World! äöü€" {
		gid, ok := cm.LookupUnicode(uint32(r))
		if !ok {
			t.Errorf("%q not mapped", r)
			continue
		}
		refGid, err := ref.GlyphIndex(buf, r)
		if err != nil {
			t.Fatal(err)
		}
		if gid != glyph.ID(refGid) {
			t.Errorf("%q: gid %d, want %d", r, gid, refGid)
		}
		adv, err := ref.GlyphAdvance(buf, refGid, ppem, xfont.HintingNone)
		if err != nil {
			t.Fatal(err)
		}
		want := normalize(adv.Round(), upem)
		if widths[gid] != want {
			t.Errorf("%q: width %d, want %d", r, widths[gid], want)
		}
	}

	_, err = p.ReadBBox(upem)
	if err != nil {
		t.Error(err)
	}
	_, err = p.ReadKerning(upem)
	if err != nil {
		t.Error(err)
	}
}
