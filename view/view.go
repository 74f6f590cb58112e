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

// Package view maps between glyph coordinates and screen coordinates.
//
// Glyph space has the y-axis pointing up, screen space has the y-axis
// pointing down.  A [Viewport] holds the zoom factor and the pan offset
// which relate the two.  Viewports are plain values owned by the caller;
// several independent views of the same glyph can exist side by side.
package view

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/transform"
)

// Default paddings, in screen units, used by fit-to-view.
const (
	SinglePadding = 60
	CellPadding   = 30
	JoinedPadding = 40
)

// Viewport relates glyph space to screen space:
//
//	sx = gx*Zoom + Pan.X
//	sy = -gy*Zoom + Pan.Y
type Viewport struct {
	Zoom float64
	Pan  vec.Vec2
}

// Identity is the viewport with unit zoom and no panning.
// Note that it still flips the y-axis.
var Identity = Viewport{Zoom: 1}

// GlyphToScreen maps a point from glyph space to screen space.
func (v Viewport) GlyphToScreen(g vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: g.X*v.Zoom + v.Pan.X,
		Y: -g.Y*v.Zoom + v.Pan.Y,
	}
}

// ScreenToGlyph maps a point from screen space to glyph space.
func (v Viewport) ScreenToGlyph(s vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: (s.X - v.Pan.X) / v.Zoom,
		Y: -(s.Y - v.Pan.Y) / v.Zoom,
	}
}

// ShapeToScreen applies the shape transformation m to g and maps the
// result to screen space.  The signature matches
// [seehuhn.de/go/trglyph/outline.ShapeMapFunc].
func (v Viewport) ShapeToScreen(m *matrix.Matrix, g vec.Vec2) vec.Vec2 {
	x, y := transform.Apply(m, g.X, g.Y)
	return v.GlyphToScreen(vec.Vec2{X: x, Y: y})
}

// ScreenToShape maps a screen point into the coordinate system of a shape
// with transformation m.  The second return value is false if m is
// singular.
func (v Viewport) ScreenToShape(m *matrix.Matrix, s vec.Vec2) (vec.Vec2, bool) {
	inv, ok := transform.Inverse(m)
	if !ok {
		return vec.Vec2{}, false
	}
	g := v.ScreenToGlyph(s)
	x, y := transform.Apply(inv, g.X, g.Y)
	return vec.Vec2{X: x, Y: y}, true
}

// Matrix returns the glyph-to-screen map as a matrix, for use with
// [seehuhn.de/go/geom/path.Path.Transform].
func (v Viewport) Matrix() matrix.Matrix {
	return matrix.Matrix{v.Zoom, 0, 0, -v.Zoom, v.Pan.X, v.Pan.Y}
}

// Offset returns a viewport in which glyph space is shifted by (gx, gy).
// This places a layer at position (gx, gy) of a joined layout.
func (v Viewport) Offset(g vec.Vec2) Viewport {
	v.Pan.X += g.X * v.Zoom
	v.Pan.Y -= g.Y * v.Zoom
	return v
}

// ZoomAt scales the viewport by factor, keeping the screen point s fixed.
func (v Viewport) ZoomAt(s vec.Vec2, factor float64) Viewport {
	newZoom := v.Zoom * factor
	v.Pan.X = s.X - (s.X-v.Pan.X)*factor
	v.Pan.Y = s.Y - (s.Y-v.Pan.Y)*factor
	v.Zoom = newZoom
	return v
}

// Fit returns the viewport which shows the glyph space rectangle bbox as
// large as possible, centred in a screen area of the given size with pad
// units of space on all sides.  Empty extents count as one unit.
func Fit(bbox rect.Rect, width, height, pad float64) Viewport {
	glyphW := bbox.Dx()
	if glyphW == 0 {
		glyphW = 1
	}
	glyphH := bbox.Dy()
	if glyphH == 0 {
		glyphH = 1
	}

	zoom := math.Min((width-2*pad)/glyphW, (height-2*pad)/glyphH)
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		zoom = math.Min(width/glyphW, height/glyphH)
		if !(zoom > 0) || math.IsInf(zoom, 0) {
			zoom = 1
		}
	}

	cx := (bbox.LLx + bbox.URx) / 2
	cy := (bbox.LLy + bbox.URy) / 2
	return Viewport{
		Zoom: zoom,
		Pan: vec.Vec2{
			X: width/2 - cx*zoom,
			Y: height/2 + cy*zoom,
		},
	}
}

// FitLayer fits everything drawn for a layer: its nodes, its advance box
// and its anchors.  If l is nil, the identity viewport is returned.
func FitLayer(l *glyph.Layer, width, height, pad float64) Viewport {
	if l == nil {
		return Identity
	}
	return Fit(l.Bounds(), width, height, pad)
}
