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

// Package trglyph implements the geometry and file format core of a glyph
// editor for TypeRig glyph files (".trglyph").
//
// A glyph file is an XML document holding one glyph with several layers.
// Each layer contains shapes, each shape contains contours, and each
// contour is a ring of nodes:
//
//	<glyph name="a" unicodes="0061">
//	  <layer name="Regular" width="500" height="1000">
//	    <shape>
//	      <contour closed="True">
//	        <node x="0" y="0" type="on"/>
//	        <node x="10" y="10" type="curve"/>
//	        <node x="20" y="10" type="curve"/>
//	        <node x="30" y="0" type="on"/>
//	      </contour>
//	    </shape>
//	    <anchor name="top" x="250" y="700"/>
//	  </layer>
//	</glyph>
//
// The subpackages are organised as follows:
//
//   - [seehuhn.de/go/trglyph/glyph] is the in-memory document model.
//   - [seehuhn.de/go/trglyph/trxml] reads and writes the XML encoding.
//   - [seehuhn.de/go/trglyph/outline] turns contours into paths.
//   - [seehuhn.de/go/trglyph/view] maps between glyph and screen space.
//   - [seehuhn.de/go/trglyph/hittest] finds nodes and contours under the pointer.
//   - [seehuhn.de/go/trglyph/editor] ties everything together into an
//     editing session with a live text mirror.
//   - [seehuhn.de/go/trglyph/sfntimport] converts glyphs from TrueType and
//     OpenType fonts.
//
// By default no log output is produced.  Use [SetLogger] to receive
// diagnostics from all subpackages.
package trglyph
