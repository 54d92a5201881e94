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
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/pdffont/font"
)

const scalerTypeCollection = 0x74746366 // "ttcf"

// maxCollectionFonts bounds the number of fonts accepted in a TrueType
// collection header.
const maxCollectionFonts = 1024

// collectionOffsets returns the positions of the table directories of all
// fonts in a TrueType collection.  If r does not start with a collection
// header, nil is returned.
func collectionOffsets(r io.ReaderAt) ([]int64, error) {
	var buf [12]byte
	if _, err := r.ReadAt(buf[:4], 0); err != nil {
		return nil, err
	}
	if binary.BigEndian.Uint32(buf[:4]) != scalerTypeCollection {
		return nil, nil
	}
	if _, err := r.ReadAt(buf[:], 0); err != nil {
		return nil, err
	}
	numFonts := binary.BigEndian.Uint32(buf[8:])
	if numFonts == 0 || numFonts > maxCollectionFonts {
		return nil, &font.FormatError{
			SubSystem: "sfnt/ttc",
			Reason:    fmt.Sprintf("invalid number of fonts %d in collection", numFonts),
		}
	}

	data := make([]byte, 4*numFonts)
	if _, err := r.ReadAt(data, 12); err != nil {
		return nil, err
	}
	offsets := make([]int64, numFonts)
	for i := range offsets {
		offsets[i] = int64(binary.BigEndian.Uint32(data[4*i:]))
	}
	return offsets, nil
}

// directoryReader shows the table directory of one font inside a TrueType
// collection at position 0, so that it can be read like the header of a
// stand-alone font.  Table offsets in a collection are relative to the start
// of the file, so reads past the end of the directory are passed through
// unchanged.
type directoryReader struct {
	r      io.ReaderAt
	offset int64
	end    int64
}

func newDirectoryReader(r io.ReaderAt, offset int64) (*directoryReader, error) {
	var buf [2]byte
	if _, err := r.ReadAt(buf[:], offset+4); err != nil {
		return nil, err
	}
	numTables := int64(binary.BigEndian.Uint16(buf[:]))
	return &directoryReader{
		r:      r,
		offset: offset,
		end:    12 + 16*numTables,
	}, nil
}

func (d *directoryReader) ReadAt(p []byte, pos int64) (int, error) {
	if pos < d.end {
		return d.r.ReadAt(p, d.offset+pos)
	}
	return d.r.ReadAt(p, pos)
}
