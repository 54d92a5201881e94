// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"compress/zlib"
	"io"
)

// flateEncode writes the FlateDecode representation of data to w.
func flateEncode(w io.Writer, data []byte) error {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return err
	}
	_, err = zw.Write(data)
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// flateDecode returns a reader for the decompressed data.
func flateDecode(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}
