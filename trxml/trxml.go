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

// Package trxml reads and writes glyphs in the TypeRig XML exchange
// format.
//
// A file holds a single <glyph> element with nested <layer>, <shape>,
// <contour>, <node> and <anchor> elements.  Custom data is stored in
// <lib> elements holding a property list dictionary:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<glyph name="a" unicodes="0061">
//	  <layer name="Regular" width="500" height="1000">
//	    <shape>
//	      <contour closed="True">
//	        <node x="100" y="0" type="on"/>
//	        ...
//	      </contour>
//	    </shape>
//	    <anchor name="top" x="250" y="700"/>
//	  </layer>
//	</glyph>
//
// Older files store some attributes as lib entries instead: "stx" and
// "sty" on layers, "transform" on shapes, "closed" and "clockwise" on
// contours.  These are read when the attribute is missing and are always
// written as attributes.
package trxml

import (
	"errors"
	"fmt"
)

// ErrNoGlyph is returned by the parser if the input contains no <glyph>
// element.
var ErrNoGlyph = errors.New("no <glyph> element found")

var errUnexpectedEOF = errors.New("unexpected end of input")

// ParseError reports malformed XML, together with the position where the
// problem was detected.  Line and Column are 1-based; they are zero if the
// position is unknown.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (err *ParseError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("trxml: line %d, column %d: %v", err.Line, err.Column, err.Err)
	}
	return "trxml: " + err.Err.Error()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}
