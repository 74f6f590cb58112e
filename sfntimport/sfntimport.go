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


// Package sfntimport converts glyphs of OpenType and TrueType fonts into
// glyph documents.
//
// TrueType outlines become contours of on-curve and "off" nodes, CFF
// outlines become contours with pairs of "curve" nodes.
package sfntimport

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sfnt"
	sfntglyph "seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/trglyph"
	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/internal/float"
)

var (
	// ErrNoOutlines is returned for fonts without glyph outlines.
	ErrNoOutlines = errors.New("sfntimport: font has no outlines")

	// ErrNotFound is returned by [Lookup] if the font has no glyph for
	// the given name or code point.
	ErrNotFound = errors.New("sfntimport: glyph not found")
)

// Options control the conversion.  The zero value selects the defaults.
type Options struct {
	// Layer is the name of the layer holding the outline.
	// The default is "Regular".
	Layer string

	// UnitsPerEm is the size of the design grid of the resulting glyph.
	// If zero, the coordinates are kept in font units.
	UnitsPerEm float64

	// Digits is the number of decimal digits kept after scaling.
	// The default is 2.
	Digits int
}

func (o *Options) withDefaults() Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.Layer == "" {
		res.Layer = "Regular"
	}
	if res.Digits <= 0 {
		res.Digits = 2
	}
	return res
}

// Lookup finds a glyph of f.
//
// The key can be a code point written as "U+0041", a single character, or
// a glyph name.  The returned slice lists the code points which the font's
// character map assigns to the glyph.
func Lookup(f *sfnt.Font, key string) (sfntglyph.ID, []rune, error) {
	if key == "" {
		return 0, nil, ErrNotFound
	}

	if r, ok := parseCodePoint(key); ok {
		sub, err := f.CMapTable.GetBest()
		if err != nil {
			return 0, nil, fmt.Errorf("sfntimport: %w", err)
		}
		gid := sub.Lookup(r)
		if gid == 0 {
			return 0, nil, fmt.Errorf("%w: %U", ErrNotFound, r)
		}
		return gid, []rune{r}, nil
	}

	n := f.NumGlyphs()
	for i := 0; i < n; i++ {
		gid := sfntglyph.ID(i)
		if f.GlyphName(gid) == key {
			return gid, codePoints(f, gid), nil
		}
	}
	return 0, nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// parseCodePoint recognizes "U+XXXX" and single characters.
func parseCodePoint(key string) (rune, bool) {
	if len(key) > 2 && (key[:2] == "U+" || key[:2] == "u+") {
		x, err := strconv.ParseUint(key[2:], 16, 32)
		if err != nil || x > utf8.MaxRune {
			return 0, false
		}
		return rune(x), true
	}
	r, size := utf8.DecodeRuneInString(key)
	if r != utf8.RuneError && size == len(key) {
		return r, true
	}
	return 0, false
}

// codePoints lists the code points in the Basic Multilingual Plane which
// map to gid.
func codePoints(f *sfnt.Font, gid sfntglyph.ID) []rune {
	sub, err := f.CMapTable.GetBest()
	if err != nil || gid == 0 {
		return nil
	}
	var res []rune
	for r := rune(0); r <= 0xFFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		if sub.Lookup(r) == gid {
			res = append(res, r)
		}
	}
	return res
}

// Convert returns a glyph document holding the outline of glyph gid.
// The unicodes are recorded in the glyph header.
func Convert(f *sfnt.Font, gid sfntglyph.ID, unicodes []rune, opt *Options) (*glyph.Glyph, error) {
	o := opt.withDefaults()
	if f.Outlines == nil {
		return nil, ErrNoOutlines
	}
	if int(gid) >= f.NumGlyphs() {
		return nil, fmt.Errorf("%w: glyph %d", ErrNotFound, gid)
	}

	q := 1.0
	height := float64(f.UnitsPerEm)
	if o.UnitsPerEm > 0 && f.UnitsPerEm > 0 {
		q = o.UnitsPerEm / float64(f.UnitsPerEm)
		height = o.UnitsPerEm
	}
	scale := func(x float64) float64 {
		return float.Round(x*q, o.Digits)
	}

	name := f.GlyphName(gid)
	if name == "" {
		if len(unicodes) > 0 {
			name = fmt.Sprintf("uni%04X", unicodes[0])
		} else {
			name = "glyph" + strconv.Itoa(int(gid))
		}
	}

	contours := Contours(f.Outlines.Path(gid), func(v vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: scale(v.X), Y: scale(v.Y)}
	})
	l := &glyph.Layer{
		Name:   o.Layer,
		Width:  scale(float64(f.GlyphWidth(gid))),
		Height: height,
	}
	if len(contours) > 0 {
		l.Shapes = []*glyph.Shape{{Contours: contours}}
	}

	g := &glyph.Glyph{
		Name:   name,
		Layers: []*glyph.Layer{l},
	}
	g.SetRunes(unicodes)
	trglyph.Logger().Debug("imported glyph",
		"name", name, "gid", int(gid), "contours", len(contours))
	return g, nil
}

// Contours converts a path into contours.  Points are mapped through f,
// which may be nil.
//
// Every MoveTo starts a new contour.  Quadratic segments contribute an
// "off" node, cubic segments two "curve" nodes.  If a closed subpath ends
// at its starting point, the duplicate final node is dropped.  The
// orientation of each closed contour is computed from its nodes.
func Contours(p path.Path, f func(vec.Vec2) vec.Vec2) []*glyph.Contour {
	if p == nil {
		return nil
	}
	pt := func(v vec.Vec2) vec.Vec2 {
		if f != nil {
			v = f(v)
		}
		return v
	}

	var res []*glyph.Contour
	var cur *glyph.Contour
	add := func(v vec.Vec2, tp glyph.NodeType) {
		cur.Nodes = append(cur.Nodes, glyph.Node{X: v.X, Y: v.Y, Type: tp})
	}
	finish := func(closed bool) {
		if cur == nil {
			return
		}
		if closed {
			n := len(cur.Nodes)
			if n > 1 && cur.Nodes[n-1].X == cur.Nodes[0].X && cur.Nodes[n-1].Y == cur.Nodes[0].Y {
				cur.Nodes = cur.Nodes[:n-1]
			}
			cur.Closed = true
			cur.Clockwise = orientation(cur.Nodes)
		}
		if len(cur.Nodes) > 0 {
			res = append(res, cur)
		}
		cur = nil
	}

	var start vec.Vec2
	for cmd, pts := range p {
		if cmd != path.CmdMoveTo && cmd != path.CmdClose && cur == nil {
			// segment without MoveTo: continue from the last start point
			cur = &glyph.Contour{}
			add(start, glyph.On)
		}
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			start = pt(pts[0])
			cur = &glyph.Contour{}
			add(start, glyph.On)
		case path.CmdLineTo:
			add(pt(pts[0]), glyph.On)
		case path.CmdQuadTo:
			add(pt(pts[0]), glyph.Off)
			add(pt(pts[1]), glyph.On)
		case path.CmdCubeTo:
			add(pt(pts[0]), glyph.Curve)
			add(pt(pts[1]), glyph.Curve)
			add(pt(pts[2]), glyph.On)
		case path.CmdClose:
			finish(true)
		}
	}
	finish(false)
	return res
}

// orientation uses the signed area of the node polygon.  In the y-up
// glyph coordinate system a negative area is clockwise.
func orientation(nodes []glyph.Node) glyph.Orientation {
	var area float64
	n := len(nodes)
	for i := range nodes {
		a, b := nodes[i], nodes[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	switch {
	case area < 0:
		return glyph.Clockwise
	case area > 0:
		return glyph.CounterClockwise
	default:
		return glyph.OrientationUnknown
	}
}
