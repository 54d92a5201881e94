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
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/kern"
)

// Kerning maps pairs of glyphs to kerning adjustments, normalized to 1000
// units per em.  Negative values move the glyphs closer together.
type Kerning map[glyph.Pair]int

// ReadKerning reads the horizontal kerning pairs from the "kern" table.
// If the font has no "kern" table, an empty map is returned.
func (p *Program) ReadKerning(unitsPerEm uint16) (Kerning, error) {
	res := make(Kerning)
	data, err := p.tableBytes("kern")
	if header.IsMissing(err) {
		return res, nil
	} else if err != nil {
		return nil, err
	}
	info, err := kern.Read(bytes.NewReader(data))
	if err != nil {
		return nil, convertError(err)
	}
	for pair, val := range info {
		res[pair] = normalize(int(val), unitsPerEm)
	}
	return res, nil
}

// ReadBBox returns the bounding boxes of all glyphs, normalized to 1000
// units per em.  Glyphs without outlines have a zero bounding box.
func (p *Program) ReadBBox(unitsPerEm uint16) ([]rect.Rect, error) {
	if p.IsCompact() {
		return p.readOutlineBBox(unitsPerEm)
	}

	gg, err := p.readGlyphs()
	if err != nil {
		return nil, err
	}
	res := make([]rect.Rect, len(gg))
	for gid, g := range gg {
		if g == nil {
			continue
		}
		res[gid] = rect.Rect{
			LLx: float64(normalize(int(g.LLx), unitsPerEm)),
			LLy: float64(normalize(int(g.LLy), unitsPerEm)),
			URx: float64(normalize(int(g.URx), unitsPerEm)),
			URy: float64(normalize(int(g.URy), unitsPerEm)),
		}
	}
	return res, nil
}

// readOutlineBBox computes glyph bounding boxes from the CFF outlines,
// since CFF fonts do not store per-glyph bounding boxes.
func (p *Program) readOutlineBBox(unitsPerEm uint16) ([]rect.Rect, error) {
	f, err := p.readCFF()
	if err != nil {
		return nil, err
	}
	res := make([]rect.Rect, len(f.Glyphs))
	for gid := range res {
		b := f.GlyphBBox(matrix.Identity, glyph.ID(gid))
		if b.IsZero() {
			continue
		}
		res[gid] = rect.Rect{
			LLx: float64(normalize(int(math.Floor(b.LLx)), unitsPerEm)),
			LLy: float64(normalize(int(math.Floor(b.LLy)), unitsPerEm)),
			URx: float64(normalize(int(math.Ceil(b.URx)), unitsPerEm)),
			URy: float64(normalize(int(math.Ceil(b.URy)), unitsPerEm)),
		}
	}
	return res, nil
}

func (p *Program) readCFF() (*cff.Font, error) {
	data, err := p.ReadCFF()
	if err != nil {
		return nil, required(err)
	}
	f, err := cff.Read(bytes.NewReader(data))
	if err != nil {
		return nil, convertError(err)
	}
	return f, nil
}

func (p *Program) readGlyphs() (glyf.Glyphs, error) {
	glyfData, err := p.tableBytes("glyf")
	if err != nil {
		return nil, required(err)
	}
	locaData, err := p.tableBytes("loca")
	if err != nil {
		return nil, required(err)
	}
	gg, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: p.head.LocaFormat,
	})
	if err != nil {
		return nil, convertError(err)
	}
	return gg, nil
}

// GetSubset returns the font data to embed into a PDF file.
//
// For fonts with CFF outlines, the contents of the "CFF " table are returned.
// If doSubset is true, the CFF font is reduced to the given glyphs and
// converted into a CID-keyed font, where the CID of each glyph is its glyph
// ID in the original font.
//
// For TrueType fonts, if doSubset is false, the complete font file is
// returned.  If doSubset is true, a TrueType font containing only the tables
// and glyphs needed to render the given glyphs is returned.  Glyph IDs are
// not changed by subsetting; glyph 0 and the components of composite glyphs
// are always included.
func (p *Program) GetSubset(glyphs map[glyph.ID]bool, doSubset bool) ([]byte, error) {
	if p.IsCompact() {
		if !doSubset {
			return p.ReadCFF()
		}
		return p.subsetCFF(glyphs)
	}
	if !doSubset {
		return p.GetFullFont()
	}

	gg, err := p.readGlyphs()
	if err != nil {
		return nil, err
	}
	enc := subsetGlyphs(gg, glyphs).Encode()

	headData, err := p.tableBytes("head")
	if err != nil {
		return nil, err
	}
	headData = bytes.Clone(headData)
	binary.BigEndian.PutUint16(headData[headIndexToLocFormat:], uint16(enc.LocaFormat))

	tables := map[string][]byte{
		"head": headData,
		"glyf": enc.GlyfData,
		"loca": enc.LocaData,
	}
	for _, name := range subsetTables {
		data, err := p.tableBytes(name)
		if header.IsMissing(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		tables[name] = data
	}

	buf := &bytes.Buffer{}
	_, err = header.Write(buf, header.ScalerTypeTrueType, tables)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// headIndexToLocFormat is the offset of the indexToLocFormat field in the
// "head" table.
const headIndexToLocFormat = 50

// subsetTables lists the tables which are copied unchanged into a subset
// font.
var subsetTables = []string{"hhea", "hmtx", "maxp", "cvt ", "fpgm", "prep"}

// subsetGlyphs returns a copy of gg where all glyphs which are not needed
// to render the given glyphs are removed.  Glyph 0 and all components of
// composite glyphs are kept.
func subsetGlyphs(gg glyf.Glyphs, glyphs map[glyph.ID]bool) glyf.Glyphs {
	keep := make(map[glyph.ID]bool, len(glyphs)+1)
	todo := []glyph.ID{0}
	for gid, ok := range glyphs {
		if ok {
			todo = append(todo, gid)
		}
	}
	for len(todo) > 0 {
		gid := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if keep[gid] || int(gid) >= len(gg) {
			continue
		}
		keep[gid] = true
		todo = append(todo, gg[gid].Components()...)
	}

	res := make(glyf.Glyphs, len(gg))
	for gid := range keep {
		res[gid] = gg[gid]
	}
	return res
}

// subsetCFF returns a CID-keyed CFF font which contains glyph 0 and the
// given glyphs.  Glyphs are renumbered, the CID of each glyph is its glyph
// ID in the original font.
func (p *Program) subsetCFF(glyphs map[glyph.ID]bool) ([]byte, error) {
	f, err := p.readCFF()
	if err != nil {
		return nil, err
	}

	gids := []glyph.ID{0}
	for _, gid := range sortedGlyphs(glyphs) {
		if gid != 0 && int(gid) < len(f.Glyphs) {
			gids = append(gids, gid)
		}
	}
	gidToCID := make([]cid.CID, len(gids))
	for i, gid := range gids {
		gidToCID[i] = cid.CID(gid)
	}

	subset := &cff.Font{
		FontInfo: f.FontInfo,
		Outlines: f.Outlines.Subset(gids),
	}
	subset.Outlines.MakeCIDKeyed(identityROS, gidToCID)

	buf := &bytes.Buffer{}
	err = subset.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var identityROS = &cid.SystemInfo{
	Registry: "Adobe",
	Ordering: "Identity",
}

func sortedGlyphs(glyphs map[glyph.ID]bool) []glyph.ID {
	res := make([]glyph.ID, 0, len(glyphs))
	for _, gid := range maps.Keys(glyphs) {
		if glyphs[gid] {
			res = append(res, gid)
		}
	}
	slices.Sort(res)
	return res
}

// GetFullFont returns the complete font file.  For fonts inside a TrueType
// collection, a stand-alone font file with all tables of the font is
// constructed.
func (p *Program) GetFullFont() ([]byte, error) {
	if p.isCollection {
		tables := make(map[string][]byte, len(p.header.Toc))
		for name := range p.header.Toc {
			data, err := p.tableBytes(name)
			if err != nil {
				return nil, err
			}
			tables[name] = data
		}
		buf := &bytes.Buffer{}
		_, err := header.Write(buf, p.header.ScalerType, tables)
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var end int64
	for _, rec := range p.header.Toc {
		if e := int64(rec.Offset) + int64(rec.Length); e > end {
			end = e
		}
	}
	// include the padding after the last table, if present
	data := make([]byte, (end+3)&^3)
	n, err := p.r.ReadAt(data, 0)
	if int64(n) < end {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data[:n], nil
}
