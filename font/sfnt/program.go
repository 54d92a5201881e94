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

// Package sfnt reads TrueType and OpenType font programs.
//
// A [Program] gives access to the tables needed for embedding a font into a
// PDF file: metrics, character maps, kerning and glyph bounding boxes.  All
// lengths returned by the Read* methods which take a unitsPerEm argument are
// normalized to 1000 units per em.  Fonts inside TrueType collections are
// supported.
//
// The tables themselves are decoded by the packages below seehuhn.de/go/sfnt.
package sfnt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/hmtx"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/name"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/parser"
	"seehuhn.de/go/sfnt/post"

	"seehuhn.de/go/pdffont/font"
)

// Program is a TrueType or OpenType font program.
// A Program is not modified after construction and can be used
// concurrently.
type Program struct {
	r      io.ReaderAt
	header *header.Info

	dirOffset    int64
	isCollection bool

	head     *head.Info
	hheaData []byte
	hhea     *hmtx.Info
}

// Parse reads a font program from memory.  If data contains a TrueType
// collection, the first font of the collection is used.
func Parse(data []byte) (*Program, error) {
	return ReadCollection(bytes.NewReader(data), 0)
}

// ReadFile reads font number index from the given file.
// For files which are not TrueType collections, index must be 0.
// The whole file is read into memory.
func ReadFile(fname string, index int) (*Program, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ReadCollection(bytes.NewReader(data), index)
}

// Read reads a font program.  If r contains a TrueType collection, the
// first font of the collection is used.
// The reader must remain valid while the Program is in use.
func Read(r io.ReaderAt) (*Program, error) {
	return ReadCollection(r, 0)
}

// ReadCollection reads font number index from a TrueType collection.
// For sfnt files which are not collections, index must be 0.
// The reader must remain valid while the Program is in use.
func ReadCollection(r io.ReaderAt, index int) (*Program, error) {
	offsets, err := collectionOffsets(r)
	if err != nil {
		return nil, convertError(err)
	}

	var dir io.ReaderAt = r
	var dirOffset int64
	if offsets != nil {
		if index < 0 || index >= len(offsets) {
			return nil, fmt.Errorf("sfnt: font index %d out of range [0,%d)", index, len(offsets))
		}
		dirOffset = offsets[index]
		dir, err = newDirectoryReader(r, dirOffset)
		if err != nil {
			return nil, convertError(err)
		}
	} else if index != 0 {
		return nil, fmt.Errorf("sfnt: font index %d out of range [0,1)", index)
	}

	info, err := header.Read(dir)
	if err != nil {
		return nil, convertError(err)
	}

	p := &Program{
		r:            r,
		header:       info,
		dirOffset:    dirOffset,
		isCollection: offsets != nil,
	}

	headData, err := p.tableBytes("head")
	if err != nil {
		return nil, required(err)
	}
	p.head, err = head.Read(bytes.NewReader(headData))
	if err != nil {
		return nil, convertError(err)
	}
	if upem := p.head.UnitsPerEm; upem < 16 || upem > 16384 {
		return nil, &font.FormatError{
			SubSystem: "sfnt/head",
			Reason:    fmt.Sprintf("invalid unitsPerEm %d", upem),
		}
	}

	p.hheaData, err = p.tableBytes("hhea")
	if err != nil {
		return nil, required(err)
	}
	if len(p.hheaData) < hheaLength {
		return nil, &font.FormatError{
			SubSystem: "sfnt/hhea",
			Reason:    fmt.Sprintf("table too short (%d bytes)", len(p.hheaData)),
		}
	}
	p.hhea, err = hmtx.Decode(p.hheaData, nil)
	if err != nil {
		return nil, convertError(err)
	}

	return p, nil
}

// Header returns the table directory of the font.
// Table offsets are relative to the start of the file, also for fonts
// inside TrueType collections.
func (p *Program) Header() *header.Info {
	return p.header
}

// DirectoryOffset returns the position of the table directory in the file.
// This is non-zero for fonts inside TrueType collections.
func (p *Program) DirectoryOffset() int64 {
	return p.dirOffset
}

// IsCollection reports whether the font was read from a TrueType
// collection.
func (p *Program) IsCollection() bool {
	return p.isCollection
}

// IsCompact reports whether the glyph outlines are stored in a "CFF " table.
func (p *Program) IsCompact() bool {
	return p.header.Has("CFF ")
}

// ReadFontHeader returns the information from the "head" table.
func (p *Program) ReadFontHeader() (*head.Info, error) {
	info := *p.head
	return &info, nil
}

// The offsets of fields in the "hhea" table which are not exposed by the
// hmtx package.
const (
	hheaAdvanceWidthMax     = 10
	hheaNumOfLongHorMetrics = 34
	hheaLength              = 36
)

// HorizontalHeader contains the information from the "hhea" table.
// Lengths are in font design units.
type HorizontalHeader struct {
	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	// CaretAngle is the slope of the caret, in radians.  The value is 0 for
	// upright fonts and negative for fonts leaning to the right.
	CaretAngle float64

	AdvanceWidthMax     uint16
	NumOfLongHorMetrics uint16
}

// ReadHorizontalHeader returns the information from the "hhea" table.
func (p *Program) ReadHorizontalHeader() (*HorizontalHeader, error) {
	return &HorizontalHeader{
		Ascent:              p.hhea.Ascent,
		Descent:             p.hhea.Descent,
		LineGap:             p.hhea.LineGap,
		CaretAngle:          p.hhea.CaretAngle,
		AdvanceWidthMax:     binary.BigEndian.Uint16(p.hheaData[hheaAdvanceWidthMax:]),
		NumOfLongHorMetrics: binary.BigEndian.Uint16(p.hheaData[hheaNumOfLongHorMetrics:]),
	}, nil
}

// ReadPostTable returns the information from the "post" table.
// If the font has no "post" table, nil is returned without an error.
func (p *Program) ReadPostTable() (*post.Info, error) {
	data, err := p.tableBytes("post")
	if header.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	info, err := post.Read(bytes.NewReader(data))
	if err != nil {
		return nil, convertError(err)
	}
	return info, nil
}

// ReadMaxGlyphID returns the number of glyphs in the font.
// Valid glyph IDs are strictly smaller than this value.
func (p *Program) ReadMaxGlyphID() (int, error) {
	data, err := p.tableBytes("maxp")
	if err != nil {
		return 0, required(err)
	}
	info, err := maxp.Read(bytes.NewReader(data))
	if err != nil {
		return 0, convertError(err)
	}
	return info.NumGlyphs, nil
}

// ReadGlyphWidths returns the advance widths of all glyphs, normalized to
// 1000 units per em.  The first numHMetrics glyphs have their own entries in
// the "hmtx" table, all remaining glyphs use the last of these widths.
func (p *Program) ReadGlyphWidths(numHMetrics int, unitsPerEm uint16) ([]int, error) {
	data, err := p.tableBytes("hmtx")
	if err != nil {
		return nil, required(err)
	}
	if numHMetrics < 1 || numHMetrics > 0xFFFF || 4*numHMetrics > len(data) {
		return nil, &font.FormatError{
			SubSystem: "sfnt/hmtx",
			Reason:    fmt.Sprintf("%d bytes is too short for %d metrics", len(data), numHMetrics),
		}
	}

	numGlyphs, err := p.ReadMaxGlyphID()
	if err != nil {
		numGlyphs = 0
	}
	// ignore padding at the end of the table
	end := 4 * numHMetrics
	if numGlyphs > numHMetrics {
		end += 2 * (numGlyphs - numHMetrics)
	}
	if end < len(data) {
		data = data[:end]
	}
	data = data[:len(data)&^1]

	hheaData := bytes.Clone(p.hheaData)
	binary.BigEndian.PutUint16(hheaData[hheaNumOfLongHorMetrics:], uint16(numHMetrics))
	info, err := hmtx.Decode(hheaData, data)
	if err != nil {
		return nil, &font.FormatError{SubSystem: "sfnt/hmtx", Reason: err.Error()}
	}
	raw := info.Widths

	if numGlyphs < len(raw) {
		numGlyphs = len(raw)
	}
	widths := make([]int, numGlyphs)
	for i := range widths {
		w := raw[len(raw)-1]
		if i < len(raw) {
			w = raw[i]
		}
		widths[i] = normalize(int(uint16(w)), unitsPerEm)
	}
	return widths, nil
}

// fsTypeRestricted is the "Restricted License embedding" bit of the OS/2
// fsType field.
const fsTypeRestricted = 0x0002

// WindowsMetrics contains the information from the "OS/2" table.
// All lengths are normalized to 1000 units per em.
type WindowsMetrics struct {
	Version     uint16
	WeightClass os2.Weight
	WidthClass  os2.Width

	// FSType gives the embedding permissions of the font, as stored in the
	// font file.
	FSType  uint16
	PermUse os2.Permissions

	AvgCharWidth int

	SubscriptXSize     int
	SubscriptYSize     int
	SubscriptXOffset   int
	SubscriptYOffset   int
	SuperscriptXSize   int
	SuperscriptYSize   int
	SuperscriptXOffset int
	SuperscriptYOffset int
	StrikeoutSize      int
	StrikeoutPosition  int

	FamilyClass int16
	Panose      [10]byte
	Vendor      string

	IsBold    bool
	IsItalic  bool
	IsRegular bool

	TypoAscender  int
	TypoDescender int // negative
	TypoLineGap   int
	WinAscent     int
	WinDescent    int // positive

	// CapHeight is 700 if the font does not specify a value.
	CapHeight int
	XHeight   int
}

// EmbeddingRestricted reports whether the font license forbids embedding.
func (m *WindowsMetrics) EmbeddingRestricted() bool {
	return m.FSType&fsTypeRestricted != 0
}

// ReadWindowsMetrics returns the information from the "OS/2" table.
// If the font has no "OS/2" table, nil is returned without an error.
func (p *Program) ReadWindowsMetrics(unitsPerEm uint16) (*WindowsMetrics, error) {
	data, err := p.tableBytes("OS/2")
	if header.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	info, err := os2.Read(bytes.NewReader(data))
	if err != nil {
		return nil, convertError(err)
	}

	n := func(x funit.Int16) int {
		return normalize(int(x), unitsPerEm)
	}
	m := &WindowsMetrics{
		// os2.Read has checked that the version and fsType fields exist
		Version:     binary.BigEndian.Uint16(data[0:]),
		WeightClass: info.WeightClass,
		WidthClass:  info.WidthClass,
		FSType:      binary.BigEndian.Uint16(data[8:]),
		PermUse:     info.PermUse,

		AvgCharWidth: n(info.AvgGlyphWidth),

		SubscriptXSize:     n(info.SubscriptXSize),
		SubscriptYSize:     n(info.SubscriptYSize),
		SubscriptXOffset:   n(info.SubscriptXOffset),
		SubscriptYOffset:   n(info.SubscriptYOffset),
		SuperscriptXSize:   n(info.SuperscriptXSize),
		SuperscriptYSize:   n(info.SuperscriptYSize),
		SuperscriptXOffset: n(info.SuperscriptXOffset),
		SuperscriptYOffset: n(info.SuperscriptYOffset),
		StrikeoutSize:      n(info.StrikeoutSize),
		StrikeoutPosition:  n(info.StrikeoutPosition),

		FamilyClass: info.FamilyClass,
		Panose:      info.Panose,
		Vendor:      info.Vendor,

		IsBold:    info.IsBold,
		IsItalic:  info.IsItalic,
		IsRegular: info.IsRegular,

		TypoAscender:  n(info.Ascent),
		TypoDescender: n(info.Descent),
		TypoLineGap:   n(info.LineGap),
		WinAscent:     normalize(int(uint16(info.WinAscent)), unitsPerEm),
		WinDescent:    normalize(int(uint16(info.WinDescent)), unitsPerEm),

		CapHeight: 700,
		XHeight:   n(info.XHeight),
	}
	if info.CapHeight != 0 {
		m.CapHeight = n(info.CapHeight)
	}
	return m, nil
}

// ReadNames returns the English names from the "name" table.
// Windows names are preferred over Macintosh names.
func (p *Program) ReadNames() (*name.Table, error) {
	data, err := p.tableBytes("name")
	if err != nil {
		return nil, err
	}
	info, err := name.Decode(data)
	if err != nil {
		return nil, convertError(err)
	}
	for _, tables := range []name.Tables{info.Windows, info.Mac} {
		if t, _ := tables.Choose(language.AmericanEnglish); t != nil {
			return t, nil
		}
	}
	return nil, &font.FormatError{
		SubSystem: "sfnt/name",
		Reason:    "no usable names",
	}
}

// ReadCFF returns the contents of the "CFF " table.
func (p *Program) ReadCFF() ([]byte, error) {
	return p.tableBytes("CFF ")
}

func (p *Program) tableBytes(tableName string) ([]byte, error) {
	return p.header.ReadTableBytes(p.r, tableName)
}

// normalize converts a length from font design units to 1000 units per em.
// The result is truncated towards zero.
func normalize(x int, unitsPerEm uint16) int {
	return x * 1000 / int(unitsPerEm)
}

func required(err error) error {
	if missing, ok := err.(*header.ErrMissing); ok {
		return &font.FormatError{
			SubSystem: "sfnt",
			Reason:    fmt.Sprintf("required table %q is missing", missing.TableName),
		}
	}
	return convertError(err)
}

// convertError maps errors from the table decoders to the error types of
// package font.
func convertError(err error) error {
	var invalid *parser.InvalidFontError
	var unsupported *parser.NotSupportedError
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return &font.FormatError{
			SubSystem: "sfnt",
			Reason:    "malformed or truncated font file",
		}
	case errors.As(err, &invalid):
		return &font.FormatError{
			SubSystem: invalid.SubSystem,
			Reason:    invalid.Reason,
		}
	case errors.As(err, &unsupported):
		return &font.UnsupportedFontError{
			SubSystem: unsupported.SubSystem,
			Feature:   unsupported.Feature,
		}
	}
	return err
}
