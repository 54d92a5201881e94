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
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
)

func TestWriter(t *testing.T) {
	out := &bytes.Buffer{}
	w, err := NewWriter(out, V1_7)
	if err != nil {
		t.Fatal(err)
	}

	fontRef, err := w.WriteIndirect(Dict{
		"Type":     Name("Font"),
		"Subtype":  Name("Type1"),
		"BaseFont": Name("Helvetica"),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	content := []byte("BT\n/F1 24 Tf\n30 30 Td\n(Hello World) Tj\nET\n")
	contentRef, err := w.WriteStream(nil, content, nil, true)
	if err != nil {
		t.Fatal(err)
	}

	pagesRef := w.Alloc()
	pageRef, err := w.WriteIndirect(Dict{
		"Type":      Name("Page"),
		"MediaBox":  Array{Integer(0), Integer(0), Integer(200), Integer(100)},
		"Resources": Dict{"Font": Dict{"F1": fontRef}},
		"Contents":  contentRef,
		"Parent":    pagesRef,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.WriteIndirect(Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{pageRef},
		"Count": Integer(1),
	}, pagesRef)
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := w.WriteIndirect(Dict{
		"Type":  Name("Catalog"),
		"Pages": pagesRef,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = w.WriteIndirect(Dict{}, pagesRef)
	if err == nil {
		t.Error("object written twice")
	}

	err = w.Close(catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(catalog, nil)
	if err != errWriterClosed {
		t.Errorf("unexpected error %v", err)
	}

	body := out.Bytes()
	if !bytes.HasPrefix(body, []byte("%PDF-1.7\n")) {
		t.Error("missing header")
	}

	// The xref table must point to the start of each object.
	m := regexp.MustCompile(`(?s)xref\n0 (\d+)\n(.*)trailer`).FindSubmatch(body)
	if m == nil {
		t.Fatal("missing xref table")
	}
	n, _ := strconv.Atoi(string(m[1]))
	if n != 6 {
		t.Errorf("xref table has %d entries, want 6", n)
	}
	for i := 1; i < n; i++ {
		line := m[2][20*i : 20*(i+1)]
		pos, err := strconv.Atoi(string(line[:10]))
		if err != nil {
			t.Fatal(err)
		}
		prefix := strconv.Itoa(i) + " 0 obj\n"
		if !bytes.HasPrefix(body[pos:], []byte(prefix)) {
			t.Errorf("object %d: wrong offset %d", i, pos)
		}
	}

	loc := regexp.MustCompile(`(?s)/Length (\d+)\n>>\nstream\n`).FindSubmatchIndex(body)
	if loc == nil {
		t.Fatal("missing stream")
	}
	length, _ := strconv.Atoi(string(body[loc[2]:loc[3]]))
	data := body[loc[1] : loc[1]+length]
	if got := decompress(t, data); !bytes.Equal(got, content) {
		t.Errorf("wrong stream contents %q", got)
	}
}

func TestWriterVersion(t *testing.T) {
	for _, ver := range []Version{V1_0, V1_1, Version(0), Version(100)} {
		_, err := NewWriter(&bytes.Buffer{}, ver)
		if err == nil {
			t.Errorf("version %s accepted", ver)
		}
	}
}

func TestCreate(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.pdf")

	w, err := Create(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := w.WriteIndirect(Dict{"Type": Name("Catalog")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(ref, nil)
	if err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(body, []byte("%%EOF\n")) {
		t.Error("file is not closed")
	}
	if !bytes.Contains(body, []byte("/Root 1 0 R")) {
		t.Error("missing /Root entry in trailer")
	}
}
