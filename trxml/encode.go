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

import (
	"bytes"
	"io"
	"strconv"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/internal/float"
	"seehuhn.de/go/trglyph/internal/xmlesc"
	"seehuhn.de/go/trglyph/plist"
	"seehuhn.de/go/trglyph/transform"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Keys of the lib dictionaries which are written as attributes instead.
var (
	layerKeys   = []string{"stx", "sty"}
	shapeKeys   = []string{"transform"}
	contourKeys = []string{"closed", "clockwise"}
)

// Marshal returns the XML encoding of g.
func Marshal(g *glyph.Glyph) []byte {
	return Append(nil, g)
}

// Append appends the XML encoding of g to buf.
func Append(buf []byte, g *glyph.Glyph) []byte {
	e := &encoder{buf: buf}
	e.glyph(g)
	return e.buf
}

// AppendLines is like [Append], but also returns the line of every node.
// Line numbers count from the start of the appended text.
func AppendLines(buf []byte, g *glyph.Glyph) ([]byte, *LineMap) {
	e := &encoder{
		buf:   buf,
		mark:  len(buf),
		line:  1,
		lines: newLineMap(),
	}
	e.glyph(g)
	return e.buf, e.lines
}

// Write writes the XML encoding of g to w.
func Write(w io.Writer, g *glyph.Glyph) error {
	_, err := w.Write(Marshal(g))
	return err
}

// Format parses an XML text and returns it in canonical form.
func Format(data []byte) ([]byte, error) {
	g, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return Marshal(g), nil
}

type encoder struct {
	buf []byte

	// line tracking, only used if lines is non-nil
	mark  int
	line  int
	lines *LineMap
}

// currentLine returns the line number at the end of the buffer.
func (e *encoder) currentLine() int {
	e.line += bytes.Count(e.buf[e.mark:], []byte{'\n'})
	e.mark = len(e.buf)
	return e.line
}

func (e *encoder) str(s string) {
	e.buf = append(e.buf, s...)
}

func (e *encoder) attr(name, value string) {
	e.buf = append(e.buf, ' ')
	e.buf = append(e.buf, name...)
	e.buf = append(e.buf, `="`...)
	e.buf = xmlesc.Append(e.buf, value)
	e.buf = append(e.buf, '"')
}

func (e *encoder) num(name string, x float64) {
	e.attr(name, float.Format(x))
}

func (e *encoder) glyph(g *glyph.Glyph) {
	e.str(header)
	e.str("<glyph")
	e.attr("name", g.Name)
	if g.Identifier != "" {
		e.attr("identifier", g.Identifier)
	}
	if g.Unicodes != "" {
		e.attr("unicodes", g.Unicodes)
	}
	if g.Selected {
		e.attr("selected", "True")
	}
	if g.Mark != 0 {
		e.attr("mark", strconv.Itoa(g.Mark))
	}
	e.str(">\n")
	for i, l := range g.Layers {
		e.layer(i, l, "  ")
	}
	e.str("</glyph>\n")
}

func (e *encoder) layer(idx int, l *glyph.Layer, indent string) {
	e.str(indent)
	e.str("<layer")
	e.attr("name", l.Name)
	if l.Identifier != "" {
		e.attr("identifier", l.Identifier)
	}
	e.num("width", l.Width)
	e.num("height", l.Height)
	if l.STX != nil {
		e.num("stx", *l.STX)
	}
	if l.STY != nil {
		e.num("sty", *l.STY)
	}
	e.str(">\n")

	inner := indent + "  "
	ci := 0
	for _, s := range l.Shapes {
		e.shape(idx, &ci, s, inner)
	}
	for _, a := range l.Anchors {
		e.str(inner)
		e.str("<anchor")
		e.attr("name", a.Name)
		e.num("x", a.X)
		e.num("y", a.Y)
		e.str("/>\n")
	}
	e.lib(l.Lib, layerKeys, inner)

	e.str(indent)
	e.str("</layer>\n")
}

func (e *encoder) shape(layer int, ci *int, s *glyph.Shape, indent string) {
	e.str(indent)
	e.str("<shape")
	if s.Name != "" {
		e.attr("name", s.Name)
	}
	if s.Identifier != "" {
		e.attr("identifier", s.Identifier)
	}
	if tf := transform.Format(s.Transform); tf != "" {
		e.attr("transform", tf)
	}
	e.str(">\n")

	inner := indent + "  "
	for _, c := range s.Contours {
		e.contour(layer, *ci, c, inner)
		*ci++
	}
	e.lib(s.Lib, shapeKeys, inner)

	e.str(indent)
	e.str("</shape>\n")
}

func (e *encoder) contour(layer, ci int, c *glyph.Contour, indent string) {
	e.str(indent)
	e.str("<contour")
	if c.Name != "" {
		e.attr("name", c.Name)
	}
	if c.Identifier != "" {
		e.attr("identifier", c.Identifier)
	}
	if c.Closed {
		e.attr("closed", "True")
	}
	switch c.Clockwise {
	case glyph.Clockwise:
		e.attr("clockwise", "True")
	case glyph.CounterClockwise:
		e.attr("clockwise", "False")
	}
	e.str(">\n")

	inner := indent + "  "
	for ni, n := range c.Nodes {
		e.str(inner)
		if e.lines != nil {
			loc := Location{Layer: layer, Node: glyph.NodeID{Contour: ci, Node: ni}}
			e.lines.add(loc, e.currentLine())
		}
		e.str("<node")
		e.num("x", n.X)
		e.num("y", n.Y)
		e.attr("type", n.Type.String())
		if n.Smooth {
			e.attr("smooth", "True")
		}
		e.str("/>\n")
	}
	e.lib(c.Lib, contourKeys, inner)

	e.str(indent)
	e.str("</contour>\n")
}

// lib writes the <lib> element for d, leaving out the given keys.
// Nothing is written if no entries remain.
func (e *encoder) lib(d *plist.Dict, omit []string, indent string) {
	for _, k := range omit {
		if _, ok := d.Get(k); ok {
			d = d.Clone()
			for _, k := range omit {
				d.Delete(k)
			}
			break
		}
	}
	if d.Len() == 0 {
		return
	}
	e.str(indent)
	e.str("<lib>\n")
	e.buf = plist.AppendDict(e.buf, d, indent+"  ")
	e.str(indent)
	e.str("</lib>\n")
}
