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

package widths

import (
	"strconv"

	"seehuhn.de/go/postscript/cid"

	pdf "seehuhn.de/go/pdffont"
	"seehuhn.de/go/pdffont/internal/dijkstra"
)

// EncodeCompact returns the W array of a CIDFont, choosing the grouping of
// CIDs into ranges which gives the shortest PDF representation.
// The CIDs must be sorted in increasing order.  Entries with width 0 or
// with the default width dw are omitted.  If no CID needs an entry, nil is
// returned.
func EncodeCompact(cids []cid.CID, w func(cid.CID) int, dw int) pdf.Array {
	type entry struct {
		cid   cid.CID
		width int
	}
	var ww []entry
	for _, c := range cids {
		if x := w(c); x != 0 && x != dw {
			ww = append(ww, entry{c, x})
		}
	}
	if len(ww) == 0 {
		return nil
	}

	numLen := func(x int) int {
		return len(strconv.Itoa(x))
	}

	// sameEnd[k] and consEnd[k] are the ends of the longest runs starting at
	// k with equal widths and with consecutive CIDs, respectively.
	// lenSum[k] is the total length of the widths before ww[k].
	n := len(ww)
	sameEnd := make([]int, n)
	consEnd := make([]int, n)
	lenSum := make([]int, n+1)
	for k := n - 1; k >= 0; k-- {
		sameEnd[k], consEnd[k] = k+1, k+1
		if k+1 < n {
			if ww[k+1].width == ww[k].width {
				sameEnd[k] = sameEnd[k+1]
			}
			if ww[k+1].cid == ww[k].cid+1 {
				consEnd[k] = consEnd[k+1]
			}
		}
	}
	for k, e := range ww {
		lenSum[k+1] = lenSum[k] + numLen(e.width)
	}

	// rangeCost returns the lengths of the PDF source for ww[k:l], encoded
	// as "c1 c2 w" and as "c [w1 ... wn]".  Forms which cannot be used
	// have length -1.
	rangeCost := func(k, l int) (serial, bracket int) {
		first, last := ww[k], ww[l-1]
		serial, bracket = -1, -1
		if l-k > 1 && l <= sameEnd[k] && l <= consEnd[k] {
			serial = numLen(int(first.cid)) + numLen(int(last.cid)) + numLen(first.width) + 3
		}
		if l <= consEnd[k] {
			bracket = numLen(int(first.cid)) + 3 + l - k + lenSum[l] - lenSum[k]
		}
		return serial, bracket
	}
	cost := func(k, l int) int {
		serial, bracket := rangeCost(k, l)
		if serial >= 0 && (bracket < 0 || serial <= bracket) {
			return serial
		}
		return bracket
	}

	_, path := dijkstra.ShortestPath(cost, n)

	var res pdf.Array
	for i := 1; i < len(path); i++ {
		k, l := path[i-1], path[i]
		first, last := ww[k], ww[l-1]

		serial, bracket := rangeCost(k, l)
		if serial >= 0 && (bracket < 0 || serial <= bracket) {
			res = append(res,
				pdf.Integer(first.cid), pdf.Integer(last.cid), pdf.Integer(first.width))
			continue
		}

		wi := make(pdf.Array, 0, l-k)
		for _, e := range ww[k:l] {
			wi = append(wi, pdf.Integer(e.width))
		}
		res = append(res, pdf.Integer(first.cid), wi)
	}
	return res
}
