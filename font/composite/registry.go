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

package composite

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"
)

// Entry records how a CID is used in a composite font.
type Entry struct {
	GID   glyph.ID
	Width int  // in PDF glyph space units
	Text  rune // the first character which was mapped to the CID
}

// Registry holds the CIDs used by a composite font.
// Entries can only be added, and the first entry for a CID is kept.
// After the font is finalized, the registry cannot be changed.
type Registry struct {
	entries map[cid.CID]Entry
	order   []cid.CID
	frozen  bool
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[cid.CID]Entry)}
}

// Add stores e for CID c, unless c is already present.
// The return value indicates whether the entry was added.
func (r *Registry) Add(c cid.CID, e Entry) bool {
	if r.frozen {
		return false
	}
	if _, seen := r.entries[c]; seen {
		return false
	}
	r.entries[c] = e
	r.order = append(r.order, c)
	return true
}

// Lookup returns the entry for CID c.
func (r *Registry) Lookup(c cid.CID) (Entry, bool) {
	e, ok := r.entries[c]
	return e, ok
}

// Has reports whether CID c has been used.
func (r *Registry) Has(c cid.CID) bool {
	_, ok := r.entries[c]
	return ok
}

// Len returns the number of CIDs in the registry.
func (r *Registry) Len() int {
	return len(r.entries)
}

// CIDs returns the CIDs in the registry, in increasing order.
func (r *Registry) CIDs() []cid.CID {
	cids := maps.Keys(r.entries)
	slices.Sort(cids)
	return cids
}

// Order returns the CIDs in the order in which they were added.
func (r *Registry) Order() []cid.CID {
	return slices.Clone(r.order)
}

// IsFrozen reports whether the font has been finalized.
func (r *Registry) IsFrozen() bool {
	return r.frozen
}

func (r *Registry) freeze() {
	r.frozen = true
}
