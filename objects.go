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

package pdf

import (
	"bytes"
	"io"
	"strconv"

	"golang.org/x/exp/slices"
)

// Object represents an object in a PDF file.  The native PDF object types
// Array, Bool, Dict, Integer, Name, Real, Reference, Stream and String
// implement this interface.  Literal can be used for pre-formatted PDF
// syntax.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// appender is implemented by objects which have a short, in-memory
// representation.
type appender interface {
	appendPDF(buf []byte) []byte
}

func writeAppender(w io.Writer, x appender) error {
	_, err := w.Write(x.appendPDF(nil))
	return err
}

// Bool represents a boolean value in a PDF file.
type Bool bool

func (x Bool) appendPDF(buf []byte) []byte {
	return strconv.AppendBool(buf, bool(x))
}

// PDF implements the Object interface.
func (x Bool) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

// Integer represents an integer constant in a PDF file.
type Integer int64

func (x Integer) appendPDF(buf []byte) []byte {
	return strconv.AppendInt(buf, int64(x), 10)
}

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

// Real represents an real number in a PDF file.
// Values are always written with a decimal point, so that they can be told
// apart from integers.
type Real float64

func (x Real) appendPDF(buf []byte) []byte {
	start := len(buf)
	buf = strconv.AppendFloat(buf, float64(x), 'f', -1, 64)
	if bytes.IndexByte(buf[start:], '.') < 0 {
		buf = append(buf, '.')
	}
	return buf
}

// PDF implements the Object interface.
func (x Real) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

// Number returns an Integer if x is integral, and a Real otherwise.
func Number(x float64) Object {
	if i := int64(x); float64(i) == x {
		return Integer(i)
	}
	return Real(x)
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
//
// Strings are written as literal strings if this is not much longer than
// the hexadecimal form, and in hexadecimal otherwise.
type String []byte

func (x String) appendPDF(buf []byte) []byte {
	balanced := parensBalanced(x)
	needsEscape := func(c byte) bool {
		switch c {
		case '\r', '\n', '\t':
			return false
		case '\\':
			return true
		case '(', ')':
			return !balanced
		}
		return c < 32 || c >= 127
	}

	numEscaped := 0
	for _, c := range x {
		if needsEscape(c) {
			numEscaped++
		}
	}
	if 3*numEscaped > len(x) {
		buf = append(buf, '<')
		for _, c := range x {
			buf = append(buf, hexDigits[c>>4], hexDigits[c&15])
		}
		return append(buf, '>')
	}

	buf = append(buf, '(')
	for _, c := range x {
		if !needsEscape(c) {
			buf = append(buf, c)
			continue
		}
		switch c {
		case '\b':
			buf = append(buf, `\b`...)
		case '\f':
			buf = append(buf, `\f`...)
		case '(', ')', '\\':
			buf = append(buf, '\\', c)
		default:
			buf = append(buf, '\\', '0'+c>>6, '0'+c>>3&7, '0'+c&7)
		}
	}
	return append(buf, ')')
}

// parensBalanced reports whether the parentheses in s can be written
// without escaping.
func parensBalanced(s []byte) bool {
	level := 0
	for _, c := range s {
		switch c {
		case '(':
			level++
		case ')':
			level--
			if level < 0 {
				return false
			}
		}
	}
	return level == 0
}

const hexDigits = "0123456789abcdef"

// PDF implements the Object interface.
func (x String) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

// Name represents a name in a PDF file.
type Name string

func (x Name) appendPDF(buf []byte) []byte {
	buf = append(buf, '/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			buf = append(buf, '#', hexDigits[c>>4], hexDigits[c&15])
		} else {
			buf = append(buf, c)
		}
	}
	return buf
}

// PDF implements the Object interface.
func (x Name) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// Array represent an array of objects in a PDF file.
// Nil elements are written as null.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.WriteString("[")
	for i, val := range x {
		if i > 0 {
			ew.WriteString(" ")
		}
		ew.object(val)
	}
	ew.WriteString("]")
	return ew.err
}

// Dict represent a Dictionary object in a PDF file.
// Entries with nil values are omitted, and the keys are written in sorted
// order.
type Dict map[Name]Object

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	keys := make([]Name, 0, len(x))
	for key, val := range x {
		if val != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	ew := &errWriter{w: w}
	ew.WriteString("<<")
	for _, key := range keys {
		ew.WriteString("\n")
		ew.object(key)
		ew.WriteString(" ")
		ew.object(x[key])
	}
	ew.WriteString("\n>>")
	return ew.err
}

// Stream represent a stream object in a PDF file.
// The /Length entry of the dictionary is set by the writer.
type Stream struct {
	Dict
	R io.Reader
}

// PDF implements the Object interface.
func (x *Stream) PDF(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.object(x.Dict)
	ew.WriteString("\nstream\n")
	if ew.err == nil {
		_, ew.err = io.Copy(w, x.R)
	}
	ew.WriteString("\nendstream")
	return ew.err
}

// Reference represents a reference to an indirect object in a PDF file.
type Reference struct {
	Number     int
	Generation uint16
}

func (x *Reference) appendPDF(buf []byte) []byte {
	if x == nil {
		return append(buf, "null"...)
	}
	buf = strconv.AppendInt(buf, int64(x.Number), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(x.Generation), 10)
	return append(buf, " R"...)
}

// PDF implements the Object interface.
func (x *Reference) PDF(w io.Writer) error {
	return writeAppender(w, x)
}

// Literal is written to the PDF file verbatim.  The caller is responsible
// for making sure that the text is valid PDF syntax.
type Literal string

// PDF implements the Object interface.
func (x Literal) PDF(w io.Writer) error {
	_, err := io.WriteString(w, string(x))
	return err
}

// errWriter keeps the first error encountered, and ignores all writes
// after an error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) object(obj Object) {
	if ew.err != nil {
		return
	}
	if obj == nil {
		_, ew.err = io.WriteString(ew.w, "null")
		return
	}
	ew.err = obj.PDF(ew.w)
}
