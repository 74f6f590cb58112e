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
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jacoelho/xsd/pkg/xmlstream"
	"github.com/jacoelho/xsd/pkg/xmltext"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/plist"
	"seehuhn.de/go/trglyph/transform"
)

// Parse reads a glyph from r.
//
// The first <glyph> element in the input is used.  Unknown elements and
// attributes are ignored, and missing or malformed numbers are replaced by
// their defaults.  If the input is not well-formed XML, a [*ParseError] is
// returned.  If the input contains no <glyph> element, the error is
// [ErrNoGlyph].
func Parse(r io.Reader) (*glyph.Glyph, error) {
	g, _, err := ParseLines(r)
	return g, err
}

// ParseBytes is like [Parse], but reads from a byte slice.
func ParseBytes(data []byte) (*glyph.Glyph, error) {
	return Parse(bytes.NewReader(data))
}

// ParseLines is like [Parse], but also returns the source line of every
// node.
func ParseLines(r io.Reader) (*glyph.Glyph, *LineMap, error) {
	xr, err := xmlstream.NewReader(r)
	if err != nil {
		return nil, nil, &ParseError{Err: err}
	}
	p := &parser{
		r:     xr,
		lines: newLineMap(),
	}

	var g *glyph.Glyph
	for {
		ev, err := p.r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, p.wrap(err)
		}
		p.line, p.col = ev.Line, ev.Column
		if g == nil && ev.Kind == xmlstream.EventStartElement && ev.Name.Local == "glyph" {
			g, err = p.parseGlyph(ev)
			if err != nil {
				return nil, nil, p.wrap(err)
			}
		}
	}
	if g == nil {
		return nil, nil, ErrNoGlyph
	}
	return g, p.lines, nil
}

type parser struct {
	r *xmlstream.Reader

	// position of the most recent event
	line, col int

	lines   *LineMap
	layer   int
	contour int
}

// Next implements [plist.EventReader].  At the end of input, the error
// is errUnexpectedEOF.
func (p *parser) Next() (xmlstream.Event, error) {
	ev, err := p.r.Next()
	if err == io.EOF {
		return ev, errUnexpectedEOF
	} else if err != nil {
		return ev, err
	}
	p.line, p.col = ev.Line, ev.Column
	return ev, nil
}

func (p *parser) wrap(err error) error {
	var syntax *xmltext.SyntaxError
	if errors.As(err, &syntax) {
		cause := syntax.Err
		if cause == nil {
			cause = syntax
		}
		if syntax.Line > 0 {
			return &ParseError{Line: syntax.Line, Column: syntax.Column, Err: cause}
		}
		err = cause
	}
	return &ParseError{Line: p.line, Column: p.col, Err: err}
}

func (p *parser) parseGlyph(ev xmlstream.Event) (*glyph.Glyph, error) {
	a := attrs(ev)
	g := &glyph.Glyph{
		Name:       a["name"],
		Identifier: a["identifier"],
		Unicodes:   a["unicodes"],
		Selected:   parseBool(a["selected"]),
		Mark:       parseInt(a["mark"]),
	}

	err := p.children(func(ev xmlstream.Event) error {
		if ev.Name.Local != "layer" {
			return p.skip()
		}
		p.layer = len(g.Layers)
		l, err := p.parseLayer(ev)
		if err != nil {
			return err
		}
		g.Layers = append(g.Layers, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseLayer(ev xmlstream.Event) (*glyph.Layer, error) {
	a := attrs(ev)
	l := &glyph.Layer{
		Name:       a["name"],
		Identifier: a["identifier"],
		Width:      parseNumber(a["width"], 0),
		Height:     parseNumber(a["height"], 1000),
		STX:        optNumber(a, "stx"),
		STY:        optNumber(a, "sty"),
	}
	p.contour = 0

	err := p.children(func(ev xmlstream.Event) error {
		var err error
		switch ev.Name.Local {
		case "shape":
			var s *glyph.Shape
			s, err = p.parseShape(ev)
			if s != nil {
				l.Shapes = append(l.Shapes, s)
			}
		case "anchor":
			a := attrs(ev)
			l.Anchors = append(l.Anchors, glyph.Anchor{
				Name: a["name"],
				X:    parseNumber(a["x"], 0),
				Y:    parseNumber(a["y"], 0),
			})
			err = p.skip()
		case "lib":
			err = p.parseLib(&l.Lib)
		default:
			err = p.skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if v, ok := l.Lib.Delete("stx"); ok && l.STX == nil {
		l.STX = libNumber(v)
	}
	if v, ok := l.Lib.Delete("sty"); ok && l.STY == nil {
		l.STY = libNumber(v)
	}
	l.Lib = nonEmpty(l.Lib)
	return l, nil
}

func (p *parser) parseShape(ev xmlstream.Event) (*glyph.Shape, error) {
	a := attrs(ev)
	s := &glyph.Shape{
		Name:       a["name"],
		Identifier: a["identifier"],
		Transform:  transform.Parse(a["transform"]),
	}

	err := p.children(func(ev xmlstream.Event) error {
		switch ev.Name.Local {
		case "contour":
			c, err := p.parseContour(ev)
			if err != nil {
				return err
			}
			s.Contours = append(s.Contours, c)
			return nil
		case "lib":
			return p.parseLib(&s.Lib)
		default:
			return p.skip()
		}
	})
	if err != nil {
		return nil, err
	}

	if v, ok := s.Lib.Delete("transform"); ok && s.Transform == nil {
		if x, ok := plist.AsFloats(v); ok {
			s.Transform = transform.FromSlice(x)
		}
	}
	if transform.IsIdentity(s.Transform) {
		s.Transform = nil
	}
	s.Lib = nonEmpty(s.Lib)
	return s, nil
}

func (p *parser) parseContour(ev xmlstream.Event) (*glyph.Contour, error) {
	a := attrs(ev)
	c := &glyph.Contour{
		Name:       a["name"],
		Identifier: a["identifier"],
	}
	closedAttr, hasClosed := a["closed"]
	if hasClosed {
		c.Closed = parseBool(closedAttr)
	}
	cwAttr, hasCW := a["clockwise"]
	if hasCW {
		c.Clockwise = orientation(parseBool(cwAttr))
	}

	ci := p.contour
	p.contour++

	err := p.children(func(ev xmlstream.Event) error {
		switch ev.Name.Local {
		case "node":
			a := attrs(ev)
			c.Nodes = append(c.Nodes, glyph.Node{
				X:      parseNumber(a["x"], 0),
				Y:      parseNumber(a["y"], 0),
				Type:   glyph.ParseNodeType(a["type"]),
				Smooth: parseBool(a["smooth"]),
			})
			loc := Location{
				Layer: p.layer,
				Node:  glyph.NodeID{Contour: ci, Node: len(c.Nodes) - 1},
			}
			p.lines.add(loc, ev.Line)
			return p.skip()
		case "lib":
			return p.parseLib(&c.Lib)
		default:
			return p.skip()
		}
	})
	if err != nil {
		return nil, err
	}

	if v, ok := c.Lib.Delete("closed"); ok && !hasClosed {
		if b, ok := libBool(v); ok {
			c.Closed = b
		}
	}
	if v, ok := c.Lib.Delete("clockwise"); ok && !hasCW {
		if b, ok := libBool(v); ok {
			c.Clockwise = orientation(b)
		}
	}
	c.Lib = nonEmpty(c.Lib)
	return c, nil
}

// parseLib reads the first <dict> inside a <lib> element.  If *dst is
// already set, the element is skipped.
func (p *parser) parseLib(dst **plist.Dict) error {
	return p.children(func(ev xmlstream.Event) error {
		if ev.Name.Local != "dict" || *dst != nil {
			return p.skip()
		}
		d, err := plist.DecodeDict(p)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	})
}

// children calls fn for every child element of the current element, and
// consumes the end element.  fn must consume the child's subtree.
func (p *parser) children(fn func(ev xmlstream.Event) error) error {
	for {
		ev, err := p.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			if err := fn(ev); err != nil {
				return err
			}
		case xmlstream.EventEndElement:
			return nil
		}
	}
}

// skip consumes events up to and including the end of the current element.
func (p *parser) skip() error {
	depth := 1
	for depth > 0 {
		ev, err := p.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			depth++
		case xmlstream.EventEndElement:
			depth--
		}
	}
	return nil
}

// attrs copies the attributes of a start element.  Namespaces are
// ignored.
func attrs(ev xmlstream.Event) map[string]string {
	res := make(map[string]string, len(ev.Attrs))
	for _, a := range ev.Attrs {
		if _, dup := res[a.Name.Local]; !dup {
			res[a.Name.Local] = string(a.Value)
		}
	}
	return res
}

// parseBool accepts "true" in any letter case, and "1".
func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || s == "1"
}

func parseNumber(s string, def float64) float64 {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return def
	}
	return x
}

func optNumber(a map[string]string, key string) *float64 {
	s, ok := a[key]
	if !ok {
		return nil
	}
	x := parseNumber(s, 0)
	return &x
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if x := parseNumber(s, 0); math.Abs(x) < math.MaxInt32 {
		return int(x)
	}
	return 0
}

func libNumber(v plist.Value) *float64 {
	x, ok := plist.AsFloat(v)
	if !ok {
		return nil
	}
	return &x
}

// libBool interprets a legacy flag.  Numbers count as true if they are
// non-zero, strings are read like boolean attributes.
func libBool(v plist.Value) (bool, bool) {
	switch v := v.(type) {
	case plist.Bool:
		return bool(v), true
	case plist.Integer:
		return v != 0, true
	case plist.Real:
		return v != 0, true
	case plist.String:
		return parseBool(string(v)), true
	default:
		return false, false
	}
}

func orientation(clockwise bool) glyph.Orientation {
	if clockwise {
		return glyph.Clockwise
	}
	return glyph.CounterClockwise
}

func nonEmpty(d *plist.Dict) *plist.Dict {
	if d.Len() == 0 {
		return nil
	}
	return d
}

var _ plist.EventReader = (*parser)(nil)
