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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"
)

// CharacterMaps holds the "cmap" subtables used for PDF embedding.
// Missing subtables are nil.
type CharacterMaps struct {
	// Symbol is the (3,0) subtable if it can be decoded, and the (1,0)
	// subtable otherwise.  Codes of the (1,0) subtable are single bytes,
	// no MacRoman conversion is applied.
	Symbol cmap.Subtable

	// Unicode is the (3,1) subtable.
	Unicode cmap.Subtable

	// Extended is the (3,10) subtable, which covers supplementary planes.
	Extended cmap.Subtable

	// FontSpecific is set if Symbol is the (3,0) subtable.  In this case,
	// Symbol is authoritative.
	FontSpecific bool
}

// ReadCharacterMaps reads the "cmap" table.  If the font has no "cmap"
// table, nil is returned without an error.  Subtables which cannot be
// decoded are treated as missing.
func (p *Program) ReadCharacterMaps() (*CharacterMaps, error) {
	data, err := p.tableBytes("cmap")
	if header.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	tab, err := cmap.Decode(data)
	if err != nil {
		return nil, convertError(err)
	}

	get := func(platformID, encodingID uint16) cmap.Subtable {
		sub, err := tab.GetNoLang(platformID, encodingID)
		if err != nil {
			return nil
		}
		return sub
	}

	res := &CharacterMaps{
		Unicode:  get(3, 1),
		Extended: get(3, 10),
	}
	if sym := get(3, 0); sym != nil {
		res.Symbol = sym
		res.FontSpecific = true
	} else {
		res.Symbol = get(1, 0)
	}
	return res, nil
}

// LookupSymbol returns the glyph for code c in the Symbol subtable.
// Symbol fonts often place their glyphs in the range 0xF000 to 0xF0FF,
// so for codes below 256 this range is tried, too.
func (cm *CharacterMaps) LookupSymbol(c uint32) (glyph.ID, bool) {
	if cm.Symbol == nil {
		return 0, false
	}
	if gid, ok := lookup(cm.Symbol, c); ok {
		return gid, true
	}
	if c < 256 {
		return lookup(cm.Symbol, 0xF000|c)
	}
	return 0, false
}

// LookupUnicode returns the glyph for code c in the Unicode subtable.
func (cm *CharacterMaps) LookupUnicode(c uint32) (glyph.ID, bool) {
	return lookup(cm.Unicode, c)
}

// LookupExtended returns the glyph for code c in the Extended subtable.
func (cm *CharacterMaps) LookupExtended(c uint32) (glyph.ID, bool) {
	return lookup(cm.Extended, c)
}

// AllSymbol iterates over all mappings in the Symbol subtable, in order of
// increasing code.  Codes in the range 0xF000 to 0xF0FF are reported as
// their low byte.
func (cm *CharacterMaps) AllSymbol(yield func(uint32, glyph.ID) bool) {
	for c, gid := range entries(cm.Symbol) {
		if c&0xFF00 == 0xF000 {
			c &= 0xFF
		}
		if !yield(c, gid) {
			return
		}
	}
}

// AllUnicode iterates over all mappings in the Unicode subtable, in order of
// increasing code.
func (cm *CharacterMaps) AllUnicode(yield func(uint32, glyph.ID) bool) {
	entries(cm.Unicode)(yield)
}

// AllExtended iterates over all mappings in the Extended subtable, in order
// of increasing code.
func (cm *CharacterMaps) AllExtended(yield func(uint32, glyph.ID) bool) {
	entries(cm.Extended)(yield)
}

// entries returns an iterator over the non-zero mappings of a subtable,
// in order of increasing code.
func entries(sub cmap.Subtable) func(yield func(uint32, glyph.ID) bool) {
	return func(yield func(uint32, glyph.ID) bool) {
		switch sub := sub.(type) {
		case *cmap.Format0:
			for c, gid := range sub.Data {
				if gid != 0 && !yield(uint32(c), glyph.ID(gid)) {
					return
				}
			}
		case cmap.Format4:
			codes := maps.Keys(sub)
			slices.Sort(codes)
			for _, c := range codes {
				if gid := sub[c]; gid != 0 && !yield(uint32(c), gid) {
					return
				}
			}
		case cmap.Format12:
			codes := maps.Keys(sub)
			slices.Sort(codes)
			for _, c := range codes {
				if gid := sub[c]; gid != 0 && !yield(c, gid) {
					return
				}
			}
		}
	}
}

func lookup(sub cmap.Subtable, c uint32) (glyph.ID, bool) {
	if sub == nil || c > 0x10FFFF {
		return 0, false
	}
	// format 4 lookups truncate the code to 16 bits
	if _, short := sub.(cmap.Format4); short && c > 0xFFFF {
		return 0, false
	}
	gid := sub.Lookup(rune(c))
	return gid, gid != 0
}
