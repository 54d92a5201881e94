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

package cmap

import (
	"fmt"
	"io"

	"seehuhn.de/go/postscript"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdffont/font"
)

// Read reads a CMap resource file.
// The character codes of the CMap must be a Unicode encoding.  This is
// determined from the CMap name, which must contain one of "UCS2", "UTF16",
// "UTF32" or "UTF8".  A parent CMap included via usecmap must be one of the
// predefined identity CMaps.
func Read(r io.Reader) (*Encoding, error) {
	raw, err := postscript.ReadCMap(r)
	if err != nil {
		return nil, err
	}

	if tp, _ := raw["CMapType"].(postscript.Integer); !(tp == 0 || tp == 1) {
		return nil, invalid(fmt.Sprintf("invalid CMapType %d", tp))
	}

	res := &Encoding{
		singles: make(map[string]cid.CID),
	}
	if name, _ := raw["CMapName"].(postscript.Name); name != "" {
		res.Name = string(name)
	} else {
		return nil, invalid("missing CMapName")
	}
	if wMode, _ := raw["WMode"].(postscript.Integer); wMode == 1 {
		res.WMode = 1
	}
	rosDict, _ := raw["CIDSystemInfo"].(postscript.Dict)
	if rosDict == nil {
		return nil, invalid("missing CIDSystemInfo")
	}
	ros := &cid.SystemInfo{}
	if registry, _ := rosDict["Registry"].(postscript.String); registry != nil {
		ros.Registry = string(registry)
	}
	if ordering, _ := rosDict["Ordering"].(postscript.String); ordering != nil {
		ros.Ordering = string(ordering)
	}
	if supplement, _ := rosDict["Supplement"].(postscript.Integer); supplement > 0 {
		ros.Supplement = int32(supplement)
	}
	res.ROS = ros

	var ok bool
	res.codec, ok = codecFor(res.Name)
	if !ok {
		return nil, &font.UnsupportedFontError{
			SubSystem: "cmap",
			Feature:   "non-Unicode CMap " + res.Name,
		}
	}

	codeMap, _ := raw["CodeMap"].(*postscript.CMapInfo)
	if codeMap == nil {
		return nil, invalid("missing code mappings")
	}
	if codeMap.UseCMap != "" {
		res.parent, err = Predefined(string(codeMap.UseCMap))
		if err != nil {
			return nil, err
		}
	}

	for _, entry := range codeMap.CidChars {
		if len(entry.Src) == 0 {
			continue
		}
		c, ok := entry.Dst.(postscript.Integer)
		if !ok || c < 0 || c > 0xFFFF {
			continue
		}
		if _, seen := res.singles[string(entry.Src)]; !seen {
			res.singles[string(entry.Src)] = cid.CID(c)
		}
	}
	for _, entry := range codeMap.CidRanges {
		if len(entry.Low) != len(entry.High) || len(entry.Low) == 0 {
			continue
		}
		c, ok := entry.Dst.(postscript.Integer)
		if !ok || c < 0 || c > 0xFFFF {
			continue
		}
		res.ranges = append(res.ranges, cidRange{
			low:   entry.Low,
			high:  entry.High,
			first: cid.CID(c),
		})
	}

	return res, nil
}

func invalid(reason string) error {
	return &font.FormatError{
		SubSystem: "cmap",
		Reason:    reason,
	}
}
