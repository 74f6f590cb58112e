// seehuhn.de/go/trglyph - geometry and codec for TypeRig glyph files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package plist

import (
	"strconv"

	"seehuhn.de/go/trglyph/internal/float"
	"seehuhn.de/go/trglyph/internal/xmlesc"
)

// AppendValue appends the XML encoding of v to buf.  The value is written
// on a single line.
func AppendValue(buf []byte, v Value) []byte {
	switch v := v.(type) {
	case Bool:
		if v {
			return append(buf, "<true/>"...)
		}
		return append(buf, "<false/>"...)
	case Integer:
		buf = append(buf, "<integer>"...)
		buf = strconv.AppendInt(buf, int64(v), 10)
		return append(buf, "</integer>"...)
	case Real:
		buf = append(buf, "<real>"...)
		buf = append(buf, float.Format(float64(v))...)
		return append(buf, "</real>"...)
	case String:
		buf = append(buf, "<string>"...)
		buf = xmlesc.Append(buf, string(v))
		return append(buf, "</string>"...)
	case Array:
		if len(v) == 0 {
			return append(buf, "<array/>"...)
		}
		buf = append(buf, "<array>"...)
		for _, x := range v {
			buf = AppendValue(buf, x)
		}
		return append(buf, "</array>"...)
	case *Dict:
		if v.Len() == 0 {
			return append(buf, "<dict/>"...)
		}
		buf = append(buf, "<dict>"...)
		for k, x := range v.All() {
			buf = append(buf, "<key>"...)
			buf = xmlesc.Append(buf, k)
			buf = append(buf, "</key>"...)
			buf = AppendValue(buf, x)
		}
		return append(buf, "</dict>"...)
	default:
		return append(buf, "<string></string>"...)
	}
}

// AppendDict appends a multi-line <dict> element to buf, with one line
// per key and per value.  Every line starts with indent; entries are
// indented by two additional spaces.
func AppendDict(buf []byte, d *Dict, indent string) []byte {
	buf = append(buf, indent...)
	buf = append(buf, "<dict>\n"...)
	for k, v := range d.All() {
		buf = append(buf, indent...)
		buf = append(buf, "  <key>"...)
		buf = xmlesc.Append(buf, k)
		buf = append(buf, "</key>\n"...)
		buf = append(buf, indent...)
		buf = append(buf, "  "...)
		buf = AppendValue(buf, v)
		buf = append(buf, '\n')
	}
	buf = append(buf, indent...)
	buf = append(buf, "</dict>\n"...)
	return buf
}
