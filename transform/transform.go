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

// Package transform implements the affine shape transformations used in
// glyph files.
//
// A transformation is stored as a [matrix.Matrix] [xx xy yx yy dx dy],
// mapping a point (x, y) to (xx*x + yx*y + dx, xy*x + yy*y + dy).
// A nil matrix stands for the identity.
package transform

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/trglyph/internal/float"
)

// IsIdentity reports whether m is nil or exactly equal to the identity.
func IsIdentity(m *matrix.Matrix) bool {
	return m == nil || *m == matrix.Identity
}

// Apply maps the point (x, y) through m.
func Apply(m *matrix.Matrix, x, y float64) (float64, float64) {
	if IsIdentity(m) {
		return x, y
	}
	return m.Apply(x, y)
}

// Inverse returns the inverse of m.  The second return value is false if
// m is singular.  The inverse of the identity is nil.
func Inverse(m *matrix.Matrix) (*matrix.Matrix, bool) {
	if IsIdentity(m) {
		return nil, true
	}
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return nil, false
	}
	inv := m.Inv()
	return &inv, true
}

// Parse decodes a transform attribute of the form "matrix(a b c d e f)".
// The six numbers may be separated by white space or commas.
// If the string is not a valid matrix, nil is returned; callers treat this
// as "no transform given".
func Parse(s string) *matrix.Matrix {
	s = strings.TrimSpace(s)
	body, ok := strings.CutPrefix(s, "matrix(")
	if !ok {
		return nil
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return nil
	}

	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	if len(fields) != 6 {
		return nil
	}

	var m matrix.Matrix
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		m[i] = x
	}
	return &m
}

// FromSlice converts a legacy six element number list into a matrix.
// It returns nil if the slice does not have exactly six entries.
func FromSlice(v []float64) *matrix.Matrix {
	if len(v) != 6 {
		return nil
	}
	var m matrix.Matrix
	copy(m[:], v)
	return &m
}

// Format encodes m as "matrix(a b c d e f)".
// The empty string is returned for the identity.
func Format(m *matrix.Matrix) string {
	if IsIdentity(m) {
		return ""
	}
	var b strings.Builder
	b.WriteString("matrix(")
	for i, x := range m {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(float.Format(x))
	}
	b.WriteByte(')')
	return b.String()
}
