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

package transform

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/trglyph/internal/float"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want *matrix.Matrix
	}{
		{"matrix(1 0 0 1 100 0)", &matrix.Matrix{1, 0, 0, 1, 100, 0}},
		{"  matrix(0.5 0 0 0.5 -10 20.25)", &matrix.Matrix{0.5, 0, 0, 0.5, -10, 20.25}},
		{"matrix(1,0,0,1,3,4)", &matrix.Matrix{1, 0, 0, 1, 3, 4}},
		{"matrix( 2  0 0 2 0 0 )", &matrix.Matrix{2, 0, 0, 2, 0, 0}},
		{"matrix(1 0 0 1 0)", nil},
		{"matrix(1 0 0 1 0 0 0)", nil},
		{"matrix(1 0 0 1 x 0)", nil},
		{"matrix(1 0 0 1 NaN 0)", nil},
		{"translate(10 20)", nil},
		{"matrix(1 0 0 1 0 0", nil},
		{"", nil},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := Parse(c.in)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", c.in, d)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if s := Format(nil); s != "" {
		t.Errorf("Format(nil) = %q", s)
	}
	id := matrix.Identity
	if s := Format(&id); s != "" {
		t.Errorf("Format(identity) = %q", s)
	}
	m := &matrix.Matrix{1, 0, 0.25, 1, 100, -0.5}
	if s := Format(m); s != "matrix(1 0 0.25 1 100 -0.5)" {
		t.Errorf("Format = %q", s)
	}
}

func TestApply(t *testing.T) {
	x, y := Apply(nil, 3, 4)
	if x != 3 || y != 4 {
		t.Errorf("Apply(nil) = %g %g", x, y)
	}

	// x' = xx*x + yx*y + dx, y' = xy*x + yy*y + dy
	m := &matrix.Matrix{2, 1, 3, 4, 10, 20}
	x, y = Apply(m, 1, 1)
	if x != 15 || y != 25 {
		t.Errorf("Apply = %g %g, want 15 25", x, y)
	}
}

func TestInverse(t *testing.T) {
	m := &matrix.Matrix{2, 0.5, -1, 3, 10, 20}
	inv, ok := Inverse(m)
	if !ok {
		t.Fatal("matrix reported singular")
	}
	x, y := Apply(m, 7, -3)
	x, y = Apply(inv, x, y)
	if math.Abs(x-7) > 1e-9 || math.Abs(y+3) > 1e-9 {
		t.Errorf("inverse round trip gave %g %g", x, y)
	}

	if _, ok := Inverse(&matrix.Matrix{1, 2, 2, 4, 0, 0}); ok {
		t.Error("singular matrix reported invertible")
	}
	if inv, ok := Inverse(nil); !ok || inv != nil {
		t.Error("identity inverse is not nil")
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(1.0, 0.0, 0.0, 1.0, 100.0, 0.0)
	f.Add(0.5, 0.25, -0.25, 0.5, -12.5, 3.0)
	f.Fuzz(func(t *testing.T, a, b, c, d, e, g float64) {
		m := &matrix.Matrix{a, b, c, d, e, g}
		for _, x := range m {
			if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > 1e9 {
				t.Skip()
			}
		}
		s := Format(m)
		if s == "" {
			if !IsIdentity(m) {
				t.Fatalf("non-identity %v formatted as empty", m)
			}
			return
		}
		m2 := Parse(s)
		if m2 == nil {
			t.Fatalf("cannot parse %q", s)
		}
		for i := range m {
			if float.Format(m[i]) != float.Format(m2[i]) {
				t.Errorf("round trip failed: %v != %v", m, m2)
			}
		}
	})
}
