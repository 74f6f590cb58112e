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

package outline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
)

func on(x, y float64) glyph.Node    { return glyph.Node{X: x, Y: y, Type: glyph.On} }
func curve(x, y float64) glyph.Node { return glyph.Node{X: x, Y: y, Type: glyph.Curve} }
func off(x, y float64) glyph.Node   { return glyph.Node{X: x, Y: y, Type: glyph.Off} }

func TestBuild(t *testing.T) {
	cases := []struct {
		name    string
		contour *glyph.Contour
		want    *path.Data
	}{
		{
			name: "cubic",
			contour: &glyph.Contour{Closed: true, Nodes: []glyph.Node{
				on(0, 0), curve(10, 10), curve(20, 10), on(30, 0),
			}},
			want: (&path.Data{}).
				MoveTo(vec.Vec2{X: 0, Y: 0}).
				CubeTo(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 20, Y: 10}, vec.Vec2{X: 30, Y: 0}).
				Close(),
		},
		{
			name: "quadratic",
			contour: &glyph.Contour{Nodes: []glyph.Node{
				on(0, 0), off(5, 10), on(10, 0),
			}},
			want: (&path.Data{}).
				MoveTo(vec.Vec2{X: 0, Y: 0}).
				QuadTo(vec.Vec2{X: 5, Y: 10}, vec.Vec2{X: 10, Y: 0}),
		},
		{
			name: "leading control points",
			contour: &glyph.Contour{Closed: true, Nodes: []glyph.Node{
				curve(0, 10), curve(0, 20), on(10, 30), on(20, 0),
			}},
			want: (&path.Data{}).
				MoveTo(vec.Vec2{X: 10, Y: 30}).
				LineTo(vec.Vec2{X: 20, Y: 0}).
				CubeTo(vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 0, Y: 20}, vec.Vec2{X: 10, Y: 30}).
				Close(),
		},
		{
			name: "mixed",
			contour: &glyph.Contour{Closed: true, Nodes: []glyph.Node{
				on(0, 0), on(100, 0), off(100, 100), on(0, 100), curve(-20, 70), curve(-20, 30),
			}},
			want: (&path.Data{}).
				MoveTo(vec.Vec2{X: 0, Y: 0}).
				LineTo(vec.Vec2{X: 100, Y: 0}).
				QuadTo(vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 0, Y: 100}).
				CubeTo(vec.Vec2{X: -20, Y: 70}, vec.Vec2{X: -20, Y: 30}, vec.Vec2{X: 0, Y: 0}).
				Close(),
		},
		{
			name:    "single node",
			contour: &glyph.Contour{Nodes: []glyph.Node{on(3, 4)}},
			want:    (&path.Data{}).MoveTo(vec.Vec2{X: 3, Y: 4}),
		},
		{
			name:    "empty",
			contour: &glyph.Contour{Closed: true},
			want:    &path.Data{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Build(nil, c.contour, nil)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("path (-want +got):\n%s", d)
			}
		})
	}
}

func TestBuildMapped(t *testing.T) {
	c := &glyph.Contour{Nodes: []glyph.Node{on(1, 2), on(3, 4)}}
	f := func(p vec.Vec2) vec.Vec2 { return vec.Vec2{X: 2 * p.X, Y: -p.Y} }
	got, err := Build(nil, c, f)
	if err != nil {
		t.Fatal(err)
	}
	want := (&path.Data{}).MoveTo(vec.Vec2{X: 2, Y: -2}).LineTo(vec.Vec2{X: 6, Y: -4})
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("path (-want +got):\n%s", d)
	}
}

func TestMalformed(t *testing.T) {
	c := &glyph.Contour{Nodes: []glyph.Node{off(0, 0), curve(1, 1)}}
	p := (&path.Data{}).MoveTo(vec.Vec2{})
	got, err := Build(p, c, nil)
	if !errors.Is(err, ErrMalformedContour) {
		t.Fatalf("got error %v", err)
	}
	if len(got.Cmds) != 1 {
		t.Error("malformed contour modified the path")
	}
}

func TestLayer(t *testing.T) {
	l := &glyph.Layer{
		Shapes: []*glyph.Shape{
			{Contours: []*glyph.Contour{
				{Closed: true, Nodes: []glyph.Node{on(0, 0), on(10, 0), on(10, 10)}},
				{Nodes: []glyph.Node{off(0, 0)}},
			}},
			{
				Transform: &matrix.Matrix{1, 0, 0, 1, 100, 0},
				Contours: []*glyph.Contour{
					{Nodes: []glyph.Node{on(0, 0), on(0, 5)}},
				},
			},
		},
	}
	p, err := Layer(l, ShapeSpace)

	var cErr *ContourError
	if !errors.As(err, &cErr) || cErr.Contour != 1 || !errors.Is(err, ErrMalformedContour) {
		t.Fatalf("unexpected error %v", err)
	}

	want := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		Close().
		MoveTo(vec.Vec2{X: 100, Y: 0}).
		LineTo(vec.Vec2{X: 100, Y: 5})
	if d := cmp.Diff(want, p); d != "" {
		t.Errorf("path (-want +got):\n%s", d)
	}
}

func TestHandleLines(t *testing.T) {
	c := &glyph.Contour{Closed: true, Nodes: []glyph.Node{
		on(0, 0), curve(10, 10), curve(20, 10), on(30, 0), off(15, -10),
	}}
	got := HandleLines(c, nil)
	want := [][2]vec.Vec2{
		{{X: 0, Y: 0}, {X: 10, Y: 10}},
		{{X: 20, Y: 10}, {X: 30, Y: 0}},
		{{X: 30, Y: 0}, {X: 15, Y: -10}},
		{{X: 15, Y: -10}, {X: 0, Y: 0}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("handles (-want +got):\n%s", d)
	}
}
