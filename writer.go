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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Writer represents a PDF file open for writing.
type Writer struct {
	PDFVersion Version

	w       *posWriter
	xref    map[int]*xRefEntry
	nextRef int
}

type xRefEntry struct {
	Pos        int64
	Generation uint16
}

// NewWriter prepares a PDF file for writing.
func NewWriter(w io.Writer, ver Version) (*Writer, error) {
	if ver < V1_2 || ver > V2_0 {
		return nil, errors.New("unsupported PDF version " + ver.String())
	}

	pdf := &Writer{
		PDFVersion: ver,

		w:       &posWriter{w: w},
		nextRef: 1,
		xref:    make(map[int]*xRefEntry),
	}
	pdf.xref[0] = &xRefEntry{
		Pos:        -1,
		Generation: 65535,
	}

	_, err := fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", ver)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close() must be called to write the trailer and to close the
// underlying file.
func Create(name string) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return NewWriter(fd, V1_7)
}

// Close writes the cross-reference table and the trailer.  If the
// underlying io.Writer has a Close() method, this is called, too.
func (pdf *Writer) Close(catalog *Reference, info *Reference) error {
	if pdf.w == nil {
		return errWriterClosed
	}
	if catalog == nil {
		return errors.New("missing /Catalog")
	}

	trailer := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalog,
	}
	if info != nil {
		trailer["Info"] = info
	}

	xRefPos := pdf.w.pos
	err := pdf.writeXRefTable(trailer)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}

	var closeErr error
	if closer, ok := pdf.w.w.(io.Closer); ok {
		closeErr = closer.Close()
	}

	// make sure we don't accidentally write beyond the end of file
	pdf.w = nil

	return closeErr
}

func (pdf *Writer) writeXRefTable(trailer Dict) error {
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	for i := 0; i < pdf.nextRef; i++ {
		entry := pdf.xref[i]
		if entry != nil && entry.Pos >= 0 {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", entry.Pos, entry.Generation)
		} else {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d f\r\n", 0, 65535)
		}
		if err != nil {
			return err
		}
	}

	_, err = pdf.w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

// WriteIndirect writes an object to the PDF file, as an indirect object.  The
// returned reference can be used to refer to this object from other parts of
// the file.
func (pdf *Writer) WriteIndirect(obj Object, ref *Reference) (*Reference, error) {
	if pdf.w == nil {
		return nil, errWriterClosed
	}
	pos := pdf.w.pos

	if ref == nil {
		ref = pdf.Alloc()
	} else {
		_, seen := pdf.xref[ref.Number]
		if seen {
			return nil, errors.New("object already written")
		}
	}

	if obj == nil {
		// missing objects are treated as null
		pos = -1
	} else {
		_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
		if err != nil {
			return nil, err
		}
		err = obj.PDF(pdf.w)
		if err != nil {
			return nil, err
		}
		_, err = pdf.w.Write([]byte("\nendobj\n"))
		if err != nil {
			return nil, err
		}
	}

	pdf.xref[ref.Number] = &xRefEntry{Pos: pos, Generation: ref.Generation}

	return ref, nil
}

// WriteStream writes a stream object with the given dictionary and contents.
// If compress is true, the data is compressed using the FlateDecode filter.
// The /Length entry is filled in automatically.
func (pdf *Writer) WriteStream(dict Dict, data []byte, ref *Reference, compress bool) (*Reference, error) {
	streamDict := make(Dict, len(dict)+2)
	for key, val := range dict {
		streamDict[key] = val
	}
	if compress {
		buf := &bytes.Buffer{}
		err := flateEncode(buf, data)
		if err != nil {
			return nil, err
		}
		data = buf.Bytes()
		streamDict["Filter"] = Name("FlateDecode")
	}
	streamDict["Length"] = Integer(len(data))

	stream := &Stream{
		Dict: streamDict,
		R:    bytes.NewReader(data),
	}
	return pdf.WriteIndirect(stream, ref)
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() *Reference {
	res := &Reference{
		Number:     pdf.nextRef,
		Generation: 0,
	}
	pdf.nextRef++
	return res
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

var errWriterClosed = errors.New("pdf: writer is closed")
