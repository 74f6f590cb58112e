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

// Package float formats numbers the way they appear in glyph files.
package float

import (
	"math"
	"regexp"
	"strconv"
)

// Precision is the number of decimal digits kept by [Format].
const Precision = 6

// Format converts x to a compact decimal string.  Integral values are
// written without a fractional part, other values use at most [Precision]
// decimal digits with trailing zeros removed.  Negative zero is written as
// "0".
func Format(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0"
	}
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		if x == 0 {
			return "0"
		}
		return strconv.FormatFloat(x, 'f', 0, 64)
	}

	out := strconv.FormatFloat(x, 'f', Precision, 64)
	if m := tailRegexp.FindStringSubmatchIndex(out); m != nil {
		if m[2] > 0 {
			out = out[:m[2]]
		} else if m[4] > 0 {
			out = out[:m[4]]
		}
	}
	if out == "-0" {
		out = "0"
	}
	return out
}

// Round rounds x to the given number of decimal digits.
func Round(x float64, digits int) float64 {
	s := strconv.FormatFloat(x, 'f', digits, 64)
	y, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	if y == 0 {
		return 0 // avoid -0
	}
	return y
}

// Grid rounds x to the 0.1 unit grid used for node coordinates.
// Halfway cases are rounded up.
func Grid(x float64) float64 {
	y := math.Floor(x*10+0.5) / 10
	if y == 0 {
		return 0
	}
	return y
}

var (
	tailRegexp = regexp.MustCompile(`(?:\..*[1-9](0+)|(\.0+))$`)
)
