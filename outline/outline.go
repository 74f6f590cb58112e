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

// Package outline converts glyph contours into paths.
//
// The same path construction is used for drawing and for hit testing.
// Only the point mapping differs: screen rendering maps glyph coordinates
// to the viewport, while geometric queries may use the identity.
package outline

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph"
	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/transform"
)

// ErrMalformedContour indicates a contour without any on-curve node.
var ErrMalformedContour = errors.New("contour has no on-curve node")

// ContourError records a problem with one contour of a layer.
type ContourError struct {
	Contour int
	Err     error
}

func (err *ContourError) Error() string {
	return fmt.Sprintf("contour %d: %v", err.Contour, err.Err)
}

func (err *ContourError) Unwrap() error {
	return err.Err
}

// MapFunc maps a point of a contour into the target coordinate space.
// A nil MapFunc is the identity.
type MapFunc func(p vec.Vec2) vec.Vec2

// ShapeMapFunc maps a point of a shape with the given transformation
// into the target coordinate space.
type ShapeMapFunc func(m *matrix.Matrix, p vec.Vec2) vec.Vec2

// ShapeSpace returns a ShapeMapFunc which applies the shape transformation
// and nothing else.
func ShapeSpace(m *matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := transform.Apply(m, p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// Build appends the path of contour c to p, which may be nil.
// Points are mapped through f.
//
// The path starts at the first on-curve node and walks around the ring of
// nodes.  Two "curve" nodes followed by a node form a cubic segment, an
// "off" node followed by a node forms a quadratic segment, and every
// other node is reached by a straight line.  The path is closed if the
// contour is closed.
//
// If c has nodes but no on-curve node, [ErrMalformedContour] is returned
// and p is not modified.
func Build(p *path.Data, c *glyph.Contour, f MapFunc) (*path.Data, error) {
	if p == nil {
		p = &path.Data{}
	}
	nodes := c.Nodes
	n := len(nodes)
	if n == 0 {
		return p, nil
	}

	firstOn := -1
	for i, node := range nodes {
		if node.Type == glyph.On {
			firstOn = i
			break
		}
	}
	if firstOn < 0 {
		return p, ErrMalformedContour
	}

	pt := func(i int) vec.Vec2 {
		node := nodes[i%n]
		v := vec.Vec2{X: node.X, Y: node.Y}
		if f != nil {
			v = f(v)
		}
		return v
	}

	p.MoveTo(pt(firstOn))
	i := firstOn + 1
	for count := 0; count < n-1; {
		switch nodes[i%n].Type {
		case glyph.Curve:
			p.CubeTo(pt(i), pt(i+1), pt(i+2))
			i += 3
			count += 3
		case glyph.Off:
			p.QuadTo(pt(i), pt(i+1))
			i += 2
			count += 2
		default:
			p.LineTo(pt(i))
			i++
			count++
		}
	}
	if c.Closed {
		p.Close()
	}
	return p, nil
}

// Contour returns the path of a single contour as an iterator.
func Contour(c *glyph.Contour, f MapFunc) (path.Path, error) {
	p, err := Build(nil, c, f)
	if err != nil {
		return nil, err
	}
	return p.Iter(), nil
}

// Layer builds a single path containing all contours of l, suitable for
// filling with the even-odd rule so that inner contours become counters.
// Each shape's transformation is passed to f together with the point.
//
// Malformed contours are left out of the path.  They are reported in the
// returned error as [*ContourError] values, joined with [errors.Join].
func Layer(l *glyph.Layer, f ShapeMapFunc) (*path.Data, error) {
	p := &path.Data{}
	var errs []error
	for ci, ref := range l.Contours() {
		m := ref.Shape.Transform
		_, err := Build(p, ref.Contour, func(v vec.Vec2) vec.Vec2 { return f(m, v) })
		if err != nil {
			trglyph.Logger().Warn("skipping contour", "layer", l.Name, "contour", ci, "err", err)
			errs = append(errs, &ContourError{Contour: ci, Err: err})
		}
	}
	return p, errors.Join(errs...)
}

// HandleLines returns the line segments connecting control points to
// their on-curve neighbours.  Cubic control points are joined to the
// adjacent on-curve node, never to each other; quadratic control points
// are joined to both adjacent on-curve nodes.
func HandleLines(c *glyph.Contour, f MapFunc) [][2]vec.Vec2 {
	nodes := c.Nodes
	n := len(nodes)
	pt := func(i int) vec.Vec2 {
		v := vec.Vec2{X: nodes[i].X, Y: nodes[i].Y}
		if f != nil {
			v = f(v)
		}
		return v
	}

	var res [][2]vec.Vec2
	for i, node := range nodes {
		if node.Type == glyph.On {
			continue
		}
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		if nodes[prev].Type == glyph.On {
			res = append(res, [2]vec.Vec2{pt(prev), pt(i)})
		}
		if nodes[next].Type == glyph.On {
			res = append(res, [2]vec.Vec2{pt(i), pt(next)})
		}
	}
	return res
}
