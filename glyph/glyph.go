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

// Package glyph implements the in-memory model of a TypeRig glyph.
//
// A [Glyph] has a list of layers.  Each [Layer] holds shapes and anchors,
// each [Shape] holds contours, and each [Contour] is a ring of nodes.
// Nodes are addressed by [NodeID] values, derived from their position
// within the layer.
package glyph

import (
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/trglyph/plist"
)

// Glyph is a glyph with all its layers.
type Glyph struct {
	Name       string
	Identifier string

	// Unicodes is the list of code points as written in the file,
	// hexadecimal numbers separated by spaces or commas.
	Unicodes string

	Selected bool
	Mark     int

	Layers []*Layer
}

// Layer is one master or working layer of a glyph.
type Layer struct {
	Name       string
	Identifier string

	Width  float64
	Height float64

	// STX and STY are optional side-bearing hints.
	STX, STY *float64

	Shapes  []*Shape
	Anchors []Anchor

	// Lib holds custom data.  Keys which are represented by fields of
	// Layer are never stored here.
	Lib *plist.Dict
}

// Shape is a group of contours sharing one transformation.
type Shape struct {
	Name       string
	Identifier string

	// Transform maps shape coordinates to layer coordinates.
	// A nil value is the identity.
	Transform *matrix.Matrix

	Contours []*Contour

	Lib *plist.Dict
}

// Contour is a closed or open ring of nodes.
type Contour struct {
	Name       string
	Identifier string

	Closed    bool
	Clockwise Orientation

	Nodes []Node

	Lib *plist.Dict
}

// Node is a point of a contour.
type Node struct {
	X, Y   float64
	Type   NodeType
	Smooth bool
}

// Anchor is a named point used for mark attachment.
type Anchor struct {
	Name string
	X, Y float64
}

// Orientation records the winding direction stored with a contour.
type Orientation uint8

// These are the possible values of [Orientation].
const (
	OrientationUnknown Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "unknown"
	}
}

// Layer returns the layer with the given name.  If no such layer exists,
// the first layer is returned.  The result is nil if g has no layers.
func (g *Glyph) Layer(name string) *Layer {
	if g == nil || len(g.Layers) == 0 {
		return nil
	}
	if l, ok := g.LayerByName(name); ok {
		return l
	}
	return g.Layers[0]
}

// LayerByName returns the layer with exactly the given name.
func (g *Glyph) LayerByName(name string) (*Layer, bool) {
	if g == nil {
		return nil, false
	}
	for _, l := range g.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// LayerIndex returns the position of l in g.Layers, or -1.
func (g *Glyph) LayerIndex(l *Layer) int {
	if g == nil {
		return -1
	}
	for i, x := range g.Layers {
		if x == l {
			return i
		}
	}
	return -1
}

// Runes returns the code points listed in g.Unicodes.
// Entries which are not valid hexadecimal numbers are ignored.
func (g *Glyph) Runes() []rune {
	fields := strings.FieldsFunc(g.Unicodes, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var res []rune
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "U+"), "u+")
		x, err := strconv.ParseUint(f, 16, 32)
		if err != nil || x > 0x10FFFF {
			continue
		}
		res = append(res, rune(x))
	}
	return res
}

// SetRunes replaces g.Unicodes by the given code points.
func (g *Glyph) SetRunes(rr []rune) {
	parts := make([]string, len(rr))
	for i, r := range rr {
		parts[i] = strings.ToUpper(strconv.FormatUint(uint64(r), 16))
		for len(parts[i]) < 4 {
			parts[i] = "0" + parts[i]
		}
	}
	g.Unicodes = strings.Join(parts, " ")
}

// Clone returns a deep copy of g.
func (g *Glyph) Clone() *Glyph {
	if g == nil {
		return nil
	}
	res := *g
	res.Layers = make([]*Layer, len(g.Layers))
	for i, l := range g.Layers {
		res.Layers[i] = l.Clone()
	}
	return &res
}

// Clone returns a deep copy of l.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	res := *l
	if l.STX != nil {
		x := *l.STX
		res.STX = &x
	}
	if l.STY != nil {
		y := *l.STY
		res.STY = &y
	}
	res.Shapes = make([]*Shape, len(l.Shapes))
	for i, s := range l.Shapes {
		res.Shapes[i] = s.Clone()
	}
	if l.Anchors != nil {
		res.Anchors = append([]Anchor(nil), l.Anchors...)
	}
	res.Lib = l.Lib.Clone()
	return &res
}

// Clone returns a deep copy of s.
func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	res := *s
	if s.Transform != nil {
		m := *s.Transform
		res.Transform = &m
	}
	res.Contours = make([]*Contour, len(s.Contours))
	for i, c := range s.Contours {
		res.Contours[i] = c.Clone()
	}
	res.Lib = s.Lib.Clone()
	return &res
}

// Clone returns a deep copy of c.
func (c *Contour) Clone() *Contour {
	if c == nil {
		return nil
	}
	res := *c
	if c.Nodes != nil {
		res.Nodes = append([]Node(nil), c.Nodes...)
	}
	res.Lib = c.Lib.Clone()
	return &res
}
