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

// Package plist implements the property list values used for the
// custom data ("lib") attached to layers, shapes and contours.
//
// The following types implement [Value]:
//
//	Bool
//	Integer
//	Real
//	String
//	Array
//	*Dict
package plist

import (
	"iter"
	"slices"
)

// Value is a property list value.
type Value interface {
	isValue()
}

// Bool is a boolean value, written as <true/> or <false/>.
type Bool bool

// Integer is an integer value.
type Integer int64

// Real is a floating point value.
type Real float64

// String is a text value.
type String string

// Array is an ordered list of values.
type Array []Value

func (Bool) isValue()    {}
func (Integer) isValue() {}
func (Real) isValue()    {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Dict) isValue()   {}

// Dict is a dictionary which remembers the order in which keys were
// inserted.  The zero value is an empty dictionary ready to use.
type Dict struct {
	keys []string
	vals map[string]Value
}

// NewDict returns a dictionary holding the given key/value pairs.
// The arguments must alternate between string keys and [Value]s.
func NewDict(kv ...any) *Dict {
	d := &Dict{}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Set(kv[i].(string), kv[i+1].(Value))
	}
	return d
}

// Len returns the number of entries in d.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys of d in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.vals[key]
	return v, ok
}

// Set stores v under key.  New keys are added at the end; existing keys
// keep their position.
func (d *Dict) Set(key string, v Value) {
	if d.vals == nil {
		d.vals = make(map[string]Value)
	}
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Delete removes key from d.  The returned value is the removed entry.
func (d *Dict) Delete(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.vals[key]
	if !ok {
		return nil, false
	}
	delete(d.vals, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
	return v, true
}

// All iterates over the entries of d in insertion order.
func (d *Dict) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	res := &Dict{}
	for k, v := range d.All() {
		res.Set(k, Clone(v))
	}
	return res
}

// Equal reports whether d and other hold the same entries in the same
// order.  A nil dictionary equals an empty one.
func (d *Dict) Equal(other *Dict) bool {
	if d.Len() != other.Len() {
		return false
	} else if d.Len() == 0 {
		return true
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !Equal(d.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Array:
		res := make(Array, len(v))
		for i, x := range v {
			res[i] = Clone(x)
		}
		return res
	case *Dict:
		return v.Clone()
	default:
		return v
	}
}

// Equal reports whether a and b are the same value.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		return ok && a.Equal(b)
	default:
		return a == b
	}
}

// AsFloat returns the numeric value of v, for Integer and Real values.
func AsFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsFloats returns the numeric entries of an array.  The second return
// value is false if v is not an array or contains non-numeric entries.
func AsFloats(v Value) ([]float64, bool) {
	a, ok := v.(Array)
	if !ok {
		return nil, false
	}
	res := make([]float64, len(a))
	for i, x := range a {
		f, ok := AsFloat(x)
		if !ok {
			return nil, false
		}
		res[i] = f
	}
	return res, true
}
