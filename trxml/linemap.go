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

package trxml

import "seehuhn.de/go/trglyph/glyph"

// Location identifies a node within a glyph.
type Location struct {
	Layer int // index into Glyph.Layers
	Node  glyph.NodeID
}

// LineMap relates the <node> elements of an XML text to their source
// lines.  Lines are 1-based.
type LineMap struct {
	lines  map[Location]int
	byLine map[int]Location
}

func newLineMap() *LineMap {
	return &LineMap{
		lines:  make(map[Location]int),
		byLine: make(map[int]Location),
	}
}

func (m *LineMap) add(loc Location, line int) {
	m.lines[loc] = line
	if _, seen := m.byLine[line]; !seen {
		m.byLine[line] = loc
	}
}

// Line returns the source line of the given node.
func (m *LineMap) Line(layer int, id glyph.NodeID) (int, bool) {
	if m == nil {
		return 0, false
	}
	line, ok := m.lines[Location{Layer: layer, Node: id}]
	return line, ok
}

// Lookup returns the node defined on the given line.  If several nodes
// share a line, the first one is returned.
func (m *LineMap) Lookup(line int) (Location, bool) {
	if m == nil {
		return Location{}, false
	}
	loc, ok := m.byLine[line]
	return loc, ok
}

// Len returns the number of nodes in the map.
func (m *LineMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.lines)
}
