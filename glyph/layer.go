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
	"iter"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/trglyph/internal/float"
	"seehuhn.de/go/trglyph/transform"
)

// ContourRef locates a contour within a layer.
type ContourRef struct {
	Shape   *Shape
	Contour *Contour
}

// NodeRef is a live reference to a node of a layer.
type NodeRef struct {
	ID      NodeID
	Node    *Node
	Contour *Contour
	Shape   *Shape
}

// Contours iterates over all contours of the layer, together with their
// contour ordinal.
func (l *Layer) Contours() iter.Seq2[int, ContourRef] {
	return func(yield func(int, ContourRef) bool) {
		if l == nil {
			return
		}
		ci := 0
		for _, s := range l.Shapes {
			for _, c := range s.Contours {
				if !yield(ci, ContourRef{Shape: s, Contour: c}) {
					return
				}
				ci++
			}
		}
	}
}

// Nodes iterates over all nodes of the layer.
func (l *Layer) Nodes() iter.Seq2[NodeID, NodeRef] {
	return func(yield func(NodeID, NodeRef) bool) {
		for ci, ref := range l.Contours() {
			for ni := range ref.Contour.Nodes {
				id := NodeID{Contour: ci, Node: ni}
				nr := NodeRef{
					ID:      id,
					Node:    &ref.Contour.Nodes[ni],
					Contour: ref.Contour,
					Shape:   ref.Shape,
				}
				if !yield(id, nr) {
					return
				}
			}
		}
	}
}

// NumContours returns the number of contours in all shapes of l.
func (l *Layer) NumContours() int {
	n := 0
	for range l.Contours() {
		n++
	}
	return n
}

// Contour returns the contour with ordinal ci.
func (l *Layer) Contour(ci int) (ContourRef, bool) {
	if ci < 0 {
		return ContourRef{}, false
	}
	for i, ref := range l.Contours() {
		if i == ci {
			return ref, true
		}
	}
	return ContourRef{}, false
}

// FindNode resolves a node identifier.
func (l *Layer) FindNode(id NodeID) (NodeRef, bool) {
	ref, ok := l.Contour(id.Contour)
	if !ok || id.Node < 0 || id.Node >= len(ref.Contour.Nodes) {
		return NodeRef{}, false
	}
	return NodeRef{
		ID:      id,
		Node:    &ref.Contour.Nodes[id.Node],
		Contour: ref.Contour,
		Shape:   ref.Shape,
	}, true
}

// NodeIDs returns the identifiers of all nodes of l, in document order.
func (l *Layer) NodeIDs() []NodeID {
	var res []NodeID
	for id := range l.Nodes() {
		res = append(res, id)
	}
	return res
}

// ContourNodeIDs returns the identifiers of all nodes of contour ci.
func (l *Layer) ContourNodeIDs(ci int) []NodeID {
	ref, ok := l.Contour(ci)
	if !ok {
		return nil
	}
	res := make([]NodeID, len(ref.Contour.Nodes))
	for ni := range res {
		res[ni] = NodeID{Contour: ci, Node: ni}
	}
	return res
}

// SetNodePosition moves a node to (x, y), rounded to the 0.1 unit grid.
// The return value reports whether the node was found.
func (l *Layer) SetNodePosition(id NodeID, x, y float64) bool {
	ref, ok := l.FindNode(id)
	if !ok {
		return false
	}
	ref.Node.X = float.Grid(x)
	ref.Node.Y = float.Grid(y)
	return true
}

// MoveNodes adds (dx, dy) to the position of every listed node.
// Unknown identifiers are ignored.  The number of moved nodes is returned.
func (l *Layer) MoveNodes(ids []NodeID, dx, dy float64) int {
	n := 0
	for _, id := range ids {
		ref, ok := l.FindNode(id)
		if !ok {
			continue
		}
		ref.Node.X = float.Grid(ref.Node.X + dx)
		ref.Node.Y = float.Grid(ref.Node.Y + dy)
		n++
	}
	return n
}

// NodeCount returns the number of on-curve and off-curve nodes of l.
func (l *Layer) NodeCount() (on, off int) {
	for _, ref := range l.Nodes() {
		if ref.Node.Type == On {
			on++
		} else {
			off++
		}
	}
	return on, off
}

// OutlineBounds returns the bounding box of all nodes of l, after applying
// the shape transformations.  The second return value is false if the
// layer has no nodes.
func (l *Layer) OutlineBounds() (rect.Rect, bool) {
	var bbox rect.Rect
	found := false
	for _, ref := range l.Nodes() {
		x, y := transform.Apply(ref.Shape.Transform, ref.Node.X, ref.Node.Y)
		if !found {
			bbox = rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
			found = true
			continue
		}
		addPoint(&bbox, x, y)
	}
	return bbox, found
}

// Bounds returns the extent of everything drawn for l: all nodes, the
// advance box from (0, 0) to (Width, Height), and the anchors.
func (l *Layer) Bounds() rect.Rect {
	bbox := rect.Rect{
		LLx: min(0, l.Width),
		LLy: min(0, l.Height),
		URx: max(0, l.Width),
		URy: max(0, l.Height),
	}
	if outline, ok := l.OutlineBounds(); ok {
		addPoint(&bbox, outline.LLx, outline.LLy)
		addPoint(&bbox, outline.URx, outline.URy)
	}
	for _, a := range l.Anchors {
		addPoint(&bbox, a.X, a.Y)
	}
	return bbox
}

func addPoint(r *rect.Rect, x, y float64) {
	r.LLx = min(r.LLx, x)
	r.LLy = min(r.LLy, y)
	r.URx = max(r.URx, x)
	r.URy = max(r.URy, y)
}

// MaskPrefix marks mask layers.  The comparison is case-insensitive.
const MaskPrefix = "mask."

// IsMask reports whether l is a mask layer.
func (l *Layer) IsMask() bool {
	return IsMaskName(l.Name)
}

// IsMaskName reports whether a layer of the given name is a mask layer.
func IsMaskName(name string) bool {
	return len(name) >= len(MaskPrefix) && strings.EqualFold(name[:len(MaskPrefix)], MaskPrefix)
}

// MaskFor returns the mask layer belonging to the layer with the given
// name, or nil if there is none.
func (g *Glyph) MaskFor(name string) *Layer {
	if g == nil {
		return nil
	}
	maskName := MaskPrefix + name
	for _, l := range g.Layers {
		if strings.EqualFold(l.Name, maskName) {
			return l
		}
	}
	return nil
}

// GridLayers returns the layers which take part in a multi-layer grid,
// i.e. all layers except the masks.
func (g *Glyph) GridLayers() []*Layer {
	if g == nil {
		return nil
	}
	var res []*Layer
	for _, l := range g.Layers {
		if !l.IsMask() {
			res = append(res, l)
		}
	}
	return res
}
