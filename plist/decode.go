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

package plist

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jacoelho/xsd/pkg/xmlstream"
)

// EventReader is a source of XML events.  It is implemented by
// [xmlstream.Reader].
type EventReader interface {
	Next() (xmlstream.Event, error)
}

var errUnexpectedEOF = errors.New("unexpected end of input inside property list")

// DecodeDict reads the contents of a <dict> element.  The start element
// must already have been consumed; on success the matching end element
// has been consumed as well.
//
// Unknown value elements are skipped, together with their key.
func DecodeDict(r EventReader) (*Dict, error) {
	d := &Dict{}
	var key string
	haveKey := false
	for {
		ev, err := next(r)
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case xmlstream.EventEndElement:
			return d, nil
		case xmlstream.EventStartElement:
			if ev.Name.Local == "key" {
				key, err = readText(r)
				if err != nil {
					return nil, err
				}
				haveKey = true
				continue
			}
			v, err := decodeValue(r, ev.Name.Local)
			if err != nil {
				return nil, err
			}
			if haveKey && v != nil {
				d.Set(key, v)
			}
			haveKey = false
		}
	}
}

// DecodeValue reads a single value whose start element, with the given
// local name, has already been consumed.  For unknown element names the
// subtree is skipped and nil is returned.
func DecodeValue(r EventReader, name string) (Value, error) {
	return decodeValue(r, name)
}

func decodeValue(r EventReader, name string) (Value, error) {
	switch name {
	case "true", "false":
		if err := skip(r); err != nil {
			return nil, err
		}
		return Bool(name == "true"), nil
	case "integer":
		s, err := readText(r)
		if err != nil {
			return nil, err
		}
		return parseInteger(s), nil
	case "real":
		s, err := readText(r)
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			x = 0
		}
		return Real(x), nil
	case "string":
		s, err := readText(r)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case "array":
		return decodeArray(r)
	case "dict":
		return DecodeDict(r)
	default:
		return nil, skip(r)
	}
}

func decodeArray(r EventReader) (Array, error) {
	a := Array{}
	for {
		ev, err := next(r)
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case xmlstream.EventEndElement:
			return a, nil
		case xmlstream.EventStartElement:
			v, err := decodeValue(r, ev.Name.Local)
			if err != nil {
				return nil, err
			}
			if v != nil {
				a = append(a, v)
			}
		}
	}
}

// parseInteger reads a leading integer, ignoring any fractional part.
func parseInteger(s string) Integer {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i)
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
		return Integer(math.Trunc(x))
	}
	return 0
}

// readText collects the character data up to the end of the current
// element.  Nested elements are skipped.
func readText(r EventReader) (string, error) {
	var b strings.Builder
	for {
		ev, err := next(r)
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case xmlstream.EventCharData:
			b.Write(ev.Text)
		case xmlstream.EventStartElement:
			if err := skip(r); err != nil {
				return "", err
			}
		case xmlstream.EventEndElement:
			return b.String(), nil
		}
	}
}

// skip consumes events up to and including the end of the current element.
func skip(r EventReader) error {
	depth := 1
	for depth > 0 {
		ev, err := next(r)
		if err != nil {
			return err
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			depth++
		case xmlstream.EventEndElement:
			depth--
		}
	}
	return nil
}

func next(r EventReader) (xmlstream.Event, error) {
	ev, err := r.Next()
	if err == io.EOF {
		return ev, errUnexpectedEOF
	} else if err != nil {
		return ev, fmt.Errorf("plist: %w", err)
	}
	return ev, nil
}
