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

// Package hittest finds the nodes and contours of a layer under a screen
// position.
//
// All functions map the layer geometry to screen space with the same
// functions used for drawing, [view.Viewport.ShapeToScreen] and
// [outline.Build], so that what is clicked is what is drawn.  For a cell
// of a joined grid layout, pass the viewport returned by
// [view.JoinedLayout.CellViewport].
//
// Queries against missing or empty layers return no match.
package hittest

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/view"
)

// DefaultRadius is the pick radius for nodes, in screen units.
const DefaultRadius = 8

// DefaultTolerance is the pick tolerance for contours, in screen units.
const DefaultTolerance = 8

// Point returns the node nearest to the screen point s, provided its
// distance is less than radius.
func Point(l *glyph.Layer, v view.Viewport, s vec.Vec2, radius float64) (glyph.NodeID, bool) {
	r2 := radius * radius
	best := math.Inf(1)
	var bestID glyph.NodeID
	found := false
	for id, ref := range l.Nodes() {
		p := v.ShapeToScreen(ref.Shape.Transform, vec.Vec2{X: ref.Node.X, Y: ref.Node.Y})
		d2 := sqDist(p, s)
		if d2 < r2 && d2 < best {
			best = d2
			bestID = id
			found = true
		}
	}
	return bestID, found
}

// Rect returns all nodes whose screen position lies inside r, boundary
// included.  The corners of r may be given in any order.
func Rect(l *glyph.Layer, v view.Viewport, r rect.Rect) []glyph.NodeID {
	box := rect.Rect{
		LLx: min(r.LLx, r.URx),
		LLy: min(r.LLy, r.URy),
		URx: max(r.LLx, r.URx),
		URy: max(r.LLy, r.URy),
	}
	var res []glyph.NodeID
	for id, ref := range l.Nodes() {
		p := v.ShapeToScreen(ref.Shape.Transform, vec.Vec2{X: ref.Node.X, Y: ref.Node.Y})
		if p.X >= box.LLx && p.X <= box.URx && p.Y >= box.LLy && p.Y <= box.URy {
			res = append(res, id)
		}
	}
	return res
}

// Lasso returns all nodes whose screen position lies inside the polygon.
// The polygon needs at least three points.
func Lasso(l *glyph.Layer, v view.Viewport, poly []vec.Vec2) []glyph.NodeID {
	if len(poly) < 3 {
		return nil
	}
	var res []glyph.NodeID
	for id, ref := range l.Nodes() {
		p := v.ShapeToScreen(ref.Shape.Transform, vec.Vec2{X: ref.Node.X, Y: ref.Node.Y})
		if InPolygon(p, poly) {
			res = append(res, id)
		}
	}
	return res
}

// InPolygon reports whether p lies inside the closed polygon, using the
// even-odd rule.  An edge counts as crossed when exactly one of its end
// points lies strictly below p, so vertices on the ray are not counted
// twice.
func InPolygon(p vec.Vec2, poly []vec.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Contour returns the ordinal of the contour at the screen point s.
//
// A contour is hit if s lies inside its even-odd fill, or within tol of
// its outline.  If no contour is hit that way, the contour owning the
// node nearest to s is returned, provided that node is within 3*tol.
// Contours with fewer than two nodes, or without any on-curve node, are
// never hit.
func Contour(l *glyph.Layer, v view.Viewport, s vec.Vec2, tol float64) (int, bool) {
	var pts []vec.Vec2
	for ci, ref := range l.Contours() {
		if len(ref.Contour.Nodes) < 2 {
			continue
		}
		var ok bool
		pts, ok = flatten(pts[:0], ref, v, s, tol)
		if !ok {
			continue
		}
		if InPolygon(s, pts) || nearPolyline(s, pts, ref.Contour.Closed, tol) {
			return ci, true
		}
	}

	best := math.Inf(1)
	bestCi := -1
	for ci, ref := range l.Contours() {
		c := ref.Contour
		if len(c.Nodes) < 2 || !slices.ContainsFunc(c.Nodes, isOn) {
			continue
		}
		for _, node := range c.Nodes {
			p := v.ShapeToScreen(ref.Shape.Transform, vec.Vec2{X: node.X, Y: node.Y})
			if d2 := sqDist(p, s); d2 < best {
				best = d2
				bestCi = ci
			}
		}
	}
	if bestCi >= 0 && best <= 9*tol*tol {
		return bestCi, true
	}
	return -1, false
}

func isOn(n glyph.Node) bool {
	return n.Type == glyph.On
}

// nearPolyline reports whether p is within tol of the polyline.
// For closed polylines the segment from the last point back to the first
// is included.
func nearPolyline(p vec.Vec2, pts []vec.Vec2, closed bool, tol float64) bool {
	tol2 := tol * tol
	for i := 1; i < len(pts); i++ {
		if segmentDist2(p, pts[i-1], pts[i]) <= tol2 {
			return true
		}
	}
	if closed && len(pts) > 2 {
		if segmentDist2(p, pts[len(pts)-1], pts[0]) <= tol2 {
			return true
		}
	}
	return len(pts) == 1 && sqDist(p, pts[0]) <= tol2
}

// segmentDist2 returns the squared distance from p to the segment a-b.
func segmentDist2(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return sqDist(p, a)
	}
	t := max(0, min(1, p.Sub(a).Dot(d)/l2))
	return sqDist(p, a.Add(d.Mul(t)))
}

func sqDist(a, b vec.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
