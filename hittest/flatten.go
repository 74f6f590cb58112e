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

package hittest

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/outline"
	"seehuhn.de/go/trglyph/view"
)

// flatness is the maximal distance, in screen units, between a curve and
// its polygonal approximation.
const flatness = 0.25

// maxSegments limits the number of line segments used for one curve.
const maxSegments = 1024

// flatten appends a polygonal approximation of the contour, in screen
// space, to buf.  The second return value is false for malformed
// contours.
//
// Curves whose control points lie further than tol from s, in both
// directions, are replaced by their chord.  Such a curve and its chord
// are at distance more than tol from s, and cross every ray from s
// equally often modulo two, so neither the fill test nor the outline
// distance test at s changes.
func flatten(buf []vec.Vec2, ref glyph.ContourRef, v view.Viewport, s vec.Vec2, tol float64) ([]vec.Vec2, bool) {
	m := ref.Shape.Transform
	p, err := outline.Build(nil, ref.Contour, func(g vec.Vec2) vec.Vec2 {
		return v.ShapeToScreen(m, g)
	})
	if err != nil {
		return buf, false
	}

	var current vec.Vec2
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			current = pts[0]
			buf = append(buf, current)
		case path.CmdQuadTo:
			if farFrom(s, tol, current, pts[0], pts[1]) {
				buf = append(buf, pts[1])
			} else {
				buf = flattenQuadratic(buf, current, pts[0], pts[1])
			}
			current = pts[1]
		case path.CmdCubeTo:
			if farFrom(s, tol, current, pts[0], pts[1], pts[2]) {
				buf = append(buf, pts[2])
			} else {
				buf = flattenCubic(buf, current, pts[0], pts[1], pts[2])
			}
			current = pts[2]
		}
	}
	return buf, true
}

// farFrom reports whether s lies outside the bounding box of pts, grown
// by tol on every side.
func farFrom(s vec.Vec2, tol float64, pts ...vec.Vec2) bool {
	llx, lly := pts[0].X, pts[0].Y
	urx, ury := llx, lly
	for _, p := range pts[1:] {
		llx, urx = min(llx, p.X), max(urx, p.X)
		lly, ury = min(lly, p.Y), max(ury, p.Y)
	}
	return s.X < llx-tol || s.X > urx+tol || s.Y < lly-tol || s.Y > ury+tol
}

// segments returns the number of line segments needed for a curve whose
// estimate is nf, capped at maxSegments.
func segments(nf float64) int {
	if !(nf > 1) {
		return 1
	}
	return int(math.Ceil(min(nf, maxSegments)))
}

// flattenQuadratic appends points approximating the quadratic Bézier curve
// from p0 to p2, excluding p0.
func flattenQuadratic(buf []vec.Vec2, p0, p1, p2 vec.Vec2) []vec.Vec2 {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := segments(math.Sqrt(e.Length() / flatness))

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		buf = append(buf, pt)
	}
	return buf
}

// flattenCubic appends points approximating the cubic Bézier curve from p0
// to p3, excluding p0.  The number of segments follows Wang's formula.
func flattenCubic(buf []vec.Vec2, p0, p1, p2, p3 vec.Vec2) []vec.Vec2 {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := segments(math.Sqrt(3 * max(d1.Length(), d2.Length()) / (4 * flatness)))

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		buf = append(buf, pt)
	}
	return buf
}
