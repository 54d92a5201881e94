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

package truetype

import (
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdffont/font/sfnt"
)

type mapKind uint8

const (
	mapSymbol   mapKind = iota // (3,0), or (1,0) if there is no (3,0)
	mapUnicode                 // (3,1)
	mapExtended                // (3,10)
)

// A source is one step of a character lookup.
type source struct {
	kind mapKind

	// If masked is set, only codes in the ranges 0x0000-0x00FF and
	// 0xF000-0xF0FF are looked up, reduced to their low byte.
	masked bool
}

// A resolver is the ordered list of "cmap" subtables consulted for
// a lookup.  The first subtable which has a mapping wins.
type resolver []source

func (rs resolver) resolve(maps *sfnt.CharacterMaps, c uint32) (glyph.ID, bool) {
	if maps == nil {
		return 0, false
	}
	for _, s := range rs {
		code := c
		if s.masked {
			if hi := c &^ 0xFF; hi != 0 && hi != 0xF000 {
				continue
			}
			code = c & 0xFF
		}

		var gid glyph.ID
		var ok bool
		switch s.kind {
		case mapSymbol:
			gid, ok = maps.LookupSymbol(code)
		case mapUnicode:
			gid, ok = maps.LookupUnicode(code)
		case mapExtended:
			gid, ok = maps.LookupExtended(code)
		}
		if ok {
			return gid, true
		}
	}
	return 0, false
}

// selectMaps sets up the resolvers for width queries and for glyph
// selection.  Both orders are kept as they are, since documents generated
// with earlier versions depend on the glyphs selected for symbol fonts.
//
// For width queries in legacy mode, the extended subtable is tried first.
// Then exactly one of the remaining subtables is used: (3,1) if the font is
// not font-specific, the symbol subtable if the font is font-specific, and
// otherwise whichever of the two exists.
//
// For width queries in Unicode mode, the extended subtable is tried first,
// followed by the masked symbol subtable for font-specific fonts and by
// (3,1) for all other fonts.
//
// Glyph selection uses the same primary subtable as legacy mode, falling
// back to the extended subtable for characters outside the BMP.
// Font-specific fonts use the masked symbol subtable.
func (f *Font) selectMaps() {
	maps := f.maps
	if maps == nil {
		return
	}
	fs := maps.FontSpecific

	var primary resolver
	switch {
	case !fs && maps.Unicode != nil:
		primary = resolver{{kind: mapUnicode}}
	case fs && maps.Symbol != nil:
		primary = resolver{{kind: mapSymbol}}
	case maps.Unicode != nil:
		primary = resolver{{kind: mapUnicode}}
	case maps.Symbol != nil:
		primary = resolver{{kind: mapSymbol}}
	}

	var ext resolver
	if maps.Extended != nil {
		ext = resolver{{kind: mapExtended}}
	}

	switch {
	case !f.isUnicode:
		f.metrics = append(ext, primary...)
	case fs:
		f.metrics = append(ext, source{kind: mapSymbol, masked: true})
	default:
		f.metrics = append(ext, source{kind: mapUnicode})
	}

	if fs {
		f.active = resolver{{kind: mapSymbol, masked: true}}
	} else {
		f.active = append(primary, ext...)
	}
}

// Metrics returns the glyph and the width for a character.
// If the font has no glyph for r, ok is false.
func (f *Font) Metrics(r rune) (m Metrics, ok bool) {
	if r < 0 {
		return Metrics{}, false
	}
	gid, ok := f.metrics.resolve(f.maps, uint32(r))
	if !ok {
		return Metrics{}, false
	}
	return Metrics{GID: gid, Width: f.GlyphWidth(gid)}, true
}

// ActiveMetrics returns the glyph and the width for a character, as used
// in composite fonts.
// If the font has no glyph for r, ok is false.
func (f *Font) ActiveMetrics(r rune) (m Metrics, ok bool) {
	if r < 0 {
		return Metrics{}, false
	}
	gid, ok := f.active.resolve(f.maps, uint32(r))
	if !ok {
		return Metrics{}, false
	}
	return Metrics{GID: gid, Width: f.GlyphWidth(gid)}, true
}

// ActiveCodes calls yield for all characters mapped by the subtables used
// for glyph selection.  For font-specific fonts, the codes are reported
// as their low byte.
func (f *Font) ActiveCodes(yield func(rune, Metrics) bool) {
	if f.maps == nil {
		return
	}
	seen := make(map[uint32]bool)
	for _, s := range f.active {
		var sub func(yield func(uint32, glyph.ID) bool)
		switch s.kind {
		case mapSymbol:
			sub = f.maps.AllSymbol
		case mapUnicode:
			sub = f.maps.AllUnicode
		case mapExtended:
			sub = f.maps.AllExtended
		}
		for c, gid := range sub {
			if s.masked && c > 0xFF || seen[c] || gid == 0 {
				continue
			}
			seen[c] = true
			if !yield(rune(c), Metrics{GID: gid, Width: f.GlyphWidth(gid)}) {
				return
			}
		}
	}
}
