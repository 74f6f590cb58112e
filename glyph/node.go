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

package glyph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NodeType describes the role of a node within its contour.
type NodeType uint8

// These are the node types used in glyph files.
const (
	// On is a point on the outline.
	On NodeType = iota

	// Curve is a control point of a cubic Bézier segment.  Curve nodes
	// come in pairs and are followed by an on-curve node.
	Curve

	// Off is the control point of a quadratic Bézier segment.  It is
	// followed by an on-curve node.
	Off
)

// ParseNodeType converts the value of a "type" attribute.
// Unknown values, including the empty string, are read as [On].
func ParseNodeType(s string) NodeType {
	switch s {
	case "curve":
		return Curve
	case "off":
		return Off
	default:
		return On
	}
}

func (t NodeType) String() string {
	switch t {
	case Curve:
		return "curve"
	case Off:
		return "off"
	default:
		return "on"
	}
}

// NodeID identifies a node within a layer.
//
// Contour counts the contours of all shapes of the layer, in order, and
// Node is the position of the node within its contour.
type NodeID struct {
	Contour int
	Node    int
}

// String returns the textual form "c<contour>_n<node>".
func (id NodeID) String() string {
	return "c" + strconv.Itoa(id.Contour) + "_n" + strconv.Itoa(id.Node)
}

// Compare orders node IDs by contour, then by node.
func (id NodeID) Compare(other NodeID) int {
	if id.Contour != other.Contour {
		if id.Contour < other.Contour {
			return -1
		}
		return 1
	}
	if id.Node != other.Node {
		if id.Node < other.Node {
			return -1
		}
		return 1
	}
	return 0
}

// ErrNodeID is returned by [ParseNodeID] for malformed identifiers.
var ErrNodeID = errors.New("malformed node identifier")

// ParseNodeID decodes the textual form of a node identifier.
func ParseNodeID(s string) (NodeID, error) {
	rest, ok := strings.CutPrefix(s, "c")
	if !ok {
		return NodeID{}, fmt.Errorf("%w %q", ErrNodeID, s)
	}
	cs, ns, ok := strings.Cut(rest, "_n")
	if !ok {
		return NodeID{}, fmt.Errorf("%w %q", ErrNodeID, s)
	}
	c, err1 := parseIndex(cs)
	n, err2 := parseIndex(ns)
	if err1 != nil || err2 != nil {
		return NodeID{}, fmt.Errorf("%w %q", ErrNodeID, s)
	}
	return NodeID{Contour: c, Node: n}, nil
}

// parseIndex accepts only the canonical decimal form, without sign or
// leading zeros.
func parseIndex(s string) (int, error) {
	if s == "" || s[0] == '+' || s[0] == '-' || (len(s) > 1 && s[0] == '0') {
		return 0, ErrNodeID
	}
	return strconv.Atoi(s)
}
