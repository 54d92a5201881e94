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

// Package widths constructs the W and W2 arrays of CIDFont dictionaries.
//
// EncodeHorizontal and EncodeVertical produce the arrays as PDF source text,
// using a fixed grouping of the CIDs into ranges.  Documents produced by
// earlier versions of this library rely on this exact grouping, so the
// output must not change.  EncodeCompact finds the shortest encoding
// instead.
package widths

import (
	"strconv"
	"strings"

	"seehuhn.de/go/postscript/cid"
)

// V1y is the vertical component of the position vector v, used for all
// entries of W2 arrays.
const V1y = 880

type state int

const (
	stateFirst   state = iota // one pending entry
	stateBracket              // a run of consecutive CIDs, "c [w1 w2 ...]"
	stateSerial               // a run of consecutive CIDs with equal widths, "c1 c2 w"
)

// EncodeHorizontal returns the PDF source for the W array of a CIDFont.
// The CIDs must be sorted in increasing order.  The function w gives the
// width of each CID; CIDs with width 0, or with width equal to the default
// width dw, are omitted.  If no CID needs an entry, the empty string is
// returned.
func EncodeHorizontal(cids []cid.CID, w func(cid.CID) int, dw int) string {
	keep := func(c cid.CID) (int, bool) {
		v := w(c)
		return v, v != 0 && v != dw
	}

	start := 0
	var lastCID cid.CID
	var lastValue int
	found := false
	for start < len(cids) {
		lastCID = cids[start]
		start++
		if v, ok := keep(lastCID); ok {
			lastValue = v
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	b := &strings.Builder{}
	b.WriteByte('[')
	writeInt(b, int(lastCID))
	st := stateFirst
	for _, c := range cids[start:] {
		value, ok := keep(c)
		if !ok {
			continue
		}
		next := c == lastCID+1
		switch st {
		case stateFirst:
			switch {
			case next && value == lastValue:
				st = stateSerial
			case next:
				st = stateBracket
				b.WriteByte('[')
				writeInt(b, lastValue)
			default:
				b.WriteByte('[')
				writeInt(b, lastValue)
				b.WriteByte(']')
				writeInt(b, int(c))
			}
		case stateBracket:
			switch {
			case next && value == lastValue:
				st = stateSerial
				b.WriteByte(']')
				writeInt(b, int(lastCID))
			case next:
				b.WriteByte(' ')
				writeInt(b, lastValue)
			default:
				st = stateFirst
				b.WriteByte(' ')
				writeInt(b, lastValue)
				b.WriteByte(']')
				writeInt(b, int(c))
			}
		case stateSerial:
			if !next || value != lastValue {
				b.WriteByte(' ')
				writeInt(b, int(lastCID))
				b.WriteByte(' ')
				writeInt(b, lastValue)
				b.WriteByte(' ')
				writeInt(b, int(c))
				st = stateFirst
			}
		}
		lastCID = c
		lastValue = value
	}

	switch st {
	case stateFirst:
		b.WriteByte('[')
		writeInt(b, lastValue)
		b.WriteString("]]")
	case stateBracket:
		b.WriteByte(' ')
		writeInt(b, lastValue)
		b.WriteString("]]")
	case stateSerial:
		b.WriteByte(' ')
		writeInt(b, int(lastCID))
		b.WriteByte(' ')
		writeInt(b, lastValue)
		b.WriteByte(']')
	}
	return b.String()
}

// EncodeVertical returns the PDF source for the W2 array of a CIDFont.
// The CIDs must be sorted in increasing order.  The function v gives the
// vertical displacement of each CID, CIDs where v returns 0 are omitted.
// The function h gives the horizontal width, which determines the position
// vector of the glyph.  If h returns 0, the default width dw is used
// instead.
//
// All entries use the "c_first c_last w1y v1x v1y" form.
// If no CID needs an entry, the empty string is returned.
func EncodeVertical(cids []cid.CID, v, h func(cid.CID) int, dw int) string {
	hOf := func(c cid.CID) int {
		if x := h(c); x != 0 {
			return x
		}
		return dw
	}

	start := 0
	var lastCID cid.CID
	var lastValue int
	for start < len(cids) {
		lastCID = cids[start]
		start++
		if lastValue = v(lastCID); lastValue != 0 {
			break
		}
	}
	if lastValue == 0 {
		return ""
	}
	lastH := hOf(lastCID)

	b := &strings.Builder{}
	b.WriteByte('[')
	writeInt(b, int(lastCID))
	closeRun := func() {
		b.WriteByte(' ')
		writeInt(b, int(lastCID))
		b.WriteByte(' ')
		writeInt(b, -lastValue)
		b.WriteByte(' ')
		writeInt(b, lastH/2)
		b.WriteByte(' ')
		writeInt(b, V1y)
	}

	st := stateFirst
	for _, c := range cids[start:] {
		value := v(c)
		if value == 0 {
			continue
		}
		hValue := hOf(c)
		sameRun := c == lastCID+1 && value == lastValue && hValue == lastH
		switch st {
		case stateFirst:
			if sameRun {
				st = stateSerial
			} else {
				closeRun()
				b.WriteByte(' ')
				writeInt(b, int(c))
			}
		case stateSerial:
			if !sameRun {
				closeRun()
				b.WriteByte(' ')
				writeInt(b, int(c))
				st = stateFirst
			}
		}
		lastCID = c
		lastValue = value
		lastH = hValue
	}
	closeRun()
	b.WriteString(" ]")
	return b.String()
}

func writeInt(b *strings.Builder, x int) {
	b.WriteString(strconv.Itoa(x))
}
