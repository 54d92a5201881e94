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
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Integer(-7), "-7"},
		{Real(0.5), "0.5"},
		{Real(2), "2."},
		{Number(1000), "1000"},
		{Number(-244.140625), "-244.140625"},
		{String("a"), "(a)"},
		{String("a (test version)"), "(a (test version))"},
		{String("a (test version"), "(a \\(test version)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{Name("Type0"), "/Type0"},
		{Name("A B#"), "/A#20B#23"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Dict{"A": Integer(1), "B": nil}, "<<\n/A 1\n>>"},
		{Dict(nil), "null"},
		{&Reference{Number: 12}, "12 0 R"},
		{(*Reference)(nil), "null"},
		{Literal("[1[500]]"), "[1[500]]"},
	}
	for _, test := range cases {
		out := format(test.in)
		if out != test.out {
			t.Errorf("string wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestDictOrder(t *testing.T) {
	d := Dict{
		"Subtype":  Name("Type0"),
		"BaseFont": Name("Test"),
		"Type":     Name("Font"),
	}
	want := "<<\n/BaseFont /Test\n/Subtype /Type0\n/Type /Font\n>>"
	if got := format(d); got != want {
		t.Errorf("wrong dictionary:\n%s", got)
	}
}

func TestStream(t *testing.T) {
	dataIn := "\nbinary stream data\000123\n   "
	stream := &Stream{
		Dict: Dict{
			"Length": Integer(len(dataIn)),
		},
		R: strings.NewReader(dataIn),
	}
	out := format(stream)
	want := "<<\n/Length 27\n>>\nstream\n" + dataIn + "\nendstream"
	if out != want {
		t.Errorf("wrong result:\n  %q\n  %q", want, out)
	}
}

func format(x Object) string {
	buf := &bytes.Buffer{}
	if x == nil {
		buf.WriteString("null")
	} else {
		_ = x.PDF(buf)
	}
	return buf.String()
}

func decompress(t *testing.T, data []byte) []byte {
	t.Helper()
	r, err := flateDecode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	res, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
