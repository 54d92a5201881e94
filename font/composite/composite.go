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

// Package composite implements CID-keyed composite fonts (Type 0 fonts).
//
// A [Font] is either based on a TrueType or OpenType font program, which is
// embedded into the PDF file and uses glyph IDs as CIDs (a CIDFontType2
// font, or CIDFontType0 for CFF-based OpenType fonts), or on a CID font
// which is not embedded (a CIDFontType0 font, see [CIDProgram]).
//
// Text is converted to character codes using [Font.Encode].  This records
// which glyphs are used.  Once all text has been processed, [Font.Finalize]
// computes the PDF objects for the font, including the subsetted font
// program, the glyph widths and the ToUnicode CMap.
//
// A Font must not be used concurrently from different goroutines.
package composite

import (
	"seehuhn.de/go/pdffont/font"
	"seehuhn.de/go/pdffont/font/cmap"
	"seehuhn.de/go/pdffont/font/truetype"
)

// Range is a range of Unicode code points, including both end points.
type Range struct {
	First, Last rune
}

// Options controls how a composite font is written to a PDF file.
type Options struct {
	// Subset selects whether only the used glyphs are embedded.
	Subset bool

	// Ranges, if set, lists character ranges whose glyphs are included in
	// the embedded font even if they are not used.  This only has an
	// effect if Subset is false.
	Ranges []Range

	// Compress selects whether the font streams are compressed.
	Compress bool

	// CompactWidths selects a width array which is as short as possible,
	// instead of the traditional grouping of CIDs into runs.
	CompactWidths bool
}

// DefaultOptions are the options used when nil is passed to a constructor.
var DefaultOptions = &Options{
	Subset:   true,
	Compress: true,
}

// MergeOptions takes an options struct and a default values struct and
// returns a new options struct.  Since the boolean fields cannot be told
// apart from their zero values, these are always taken from opt.  Ranges
// is taken from defaultValues if it is nil in opt.  opt can be nil, in
// which case the default values are returned.  defaultValues must not be
// nil.
func MergeOptions(opt, defaultValues *Options) *Options {
	if opt == nil {
		return defaultValues
	}

	res := *opt
	if res.Ranges == nil {
		res.Ranges = defaultValues.Ranges
	}
	return &res
}

func (opt *Options) inRange(r rune) bool {
	for _, rg := range opt.Ranges {
		if r >= rg.First && r <= rg.Last {
			return true
		}
	}
	return false
}

// source is the font program behind a composite font.
// The implementations are [type0Source] and [type2Source].
type source interface {
	// appendCode registers the CID for r and appends the character code.
	appendCode(buf []byte, reg *Registry, r rune) []byte

	width(r rune) int

	finalize(reg *Registry) (*Output, error)
}

// Font is a composite font in the process of being built.
type Font struct {
	src source
	enc *cmap.Encoding
	opt *Options
	reg *Registry

	finalized bool
}

// NewTrueType creates a composite font from a TrueType or OpenType font.
// The font must have been loaded in Unicode mode, and enc must be one of
// Identity-H and Identity-V.  The writing mode is taken from enc.
//
// If the font license does not permit embedding, a [*font.LicensingError]
// is returned.
func NewTrueType(f *truetype.Font, enc *cmap.Encoding, opt *Options) (*Font, error) {
	if !f.CanEmbed() {
		return nil, &font.LicensingError{
			FontName: f.PostScriptName() + f.Style(),
			FSType:   f.FSType(),
		}
	}
	if !enc.IsIdentity() {
		return nil, &font.UnsupportedFontError{
			SubSystem: "composite",
			Feature:   "TrueType font with CMap " + enc.Name,
		}
	}
	if !f.IsUnicode() {
		return nil, &font.UnsupportedFontError{
			SubSystem: "composite",
			Feature:   "TrueType font with single-byte encoding",
		}
	}

	opt = MergeOptions(opt, DefaultOptions)
	src := &type2Source{
		font:     f,
		enc:      enc,
		opt:      opt,
		vertical: enc.IsVertical(),
	}
	return newFont(src, enc, opt), nil
}

// NewCID creates a composite font for a CID font which is not embedded.
// The character collection of enc must match the one of prog, unless enc
// is an identity CMap.
func NewCID(prog *CIDProgram, enc *cmap.Encoding, opt *Options) (*Font, error) {
	if !enc.IsIdentity() && !sameCollection(prog, enc) {
		return nil, &font.UnsupportedFontError{
			SubSystem: "composite",
			Feature:   "font " + prog.Name + " with CMap " + enc.Name,
		}
	}

	opt = MergeOptions(opt, DefaultOptions)
	src := &type0Source{
		prog:     prog,
		enc:      enc,
		opt:      opt,
		vertical: enc.IsVertical(),
	}
	return newFont(src, enc, opt), nil
}

func sameCollection(prog *CIDProgram, enc *cmap.Encoding) bool {
	if prog.ROS == nil || enc.ROS == nil {
		return false
	}
	return prog.ROS.Registry == enc.ROS.Registry && prog.ROS.Ordering == enc.ROS.Ordering
}

func newFont(src source, enc *cmap.Encoding, opt *Options) *Font {
	return &Font{
		src: src,
		enc: enc,
		opt: opt,
		reg: newRegistry(),
	}
}

// Registry gives access to the CIDs used so far.
func (f *Font) Registry() *Registry {
	return f.reg
}

// IsVertical reports whether the font uses vertical writing mode.
func (f *Font) IsVertical() bool {
	return f.enc.IsVertical()
}

// Encode converts a string to character codes and records the glyphs used.
// Characters which cannot be shown with the font are omitted.
func (f *Font) Encode(s string) ([]byte, error) {
	return f.encodeRunes("Encode", []rune(s))
}

// EncodeUTF16 is like Encode, but takes text as UTF-16 code units.
// A surrogate pair gives a single character code.
func (f *Font) EncodeUTF16(text []uint16) ([]byte, error) {
	return f.encodeRunes("EncodeUTF16", font.DecodeUTF16(text))
}

func (f *Font) encodeRunes(op string, rr []rune) ([]byte, error) {
	if f.finalized {
		return nil, &font.IllegalStateError{Op: op, State: "finalized"}
	}
	var res []byte
	for _, r := range rr {
		res = f.src.appendCode(res, f.reg, r)
	}
	return res, nil
}

// Width returns the width of a character, in PDF glyph space units.
// In vertical mode, this is the vertical advance.
func (f *Font) Width(r rune) int {
	return f.src.width(r)
}

// TextWidth returns the width of a string.
func (f *Font) TextWidth(s string) int {
	total := 0
	for _, r := range s {
		total += f.src.width(r)
	}
	return total
}

// Finalize computes the PDF objects for the font.  After Finalize has been
// called, no more text can be encoded.  Finalize can only be called once.
func (f *Font) Finalize() (*Output, error) {
	if f.finalized {
		return nil, &font.IllegalStateError{Op: "Finalize", State: "finalized"}
	}
	f.finalized = true

	out, err := f.src.finalize(f.reg)
	f.reg.freeze()
	if err != nil {
		return nil, err
	}
	out.Compress = f.opt.Compress
	return out, nil
}
