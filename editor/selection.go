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

package editor

import (
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/hittest"
	"seehuhn.de/go/trglyph/internal/float"
)

// Select changes the selection after a click on a node.  If additive is
// false, the node becomes the only selected node.  Otherwise the node is
// toggled.  Unknown nodes are ignored.
func (s *Session) Select(id glyph.NodeID, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectOne(id, additive)
}

func (s *Session) selectOne(id glyph.NodeID, additive bool) {
	if _, ok := s.layer().FindNode(id); !ok {
		if !additive {
			clear(s.selected)
		}
		return
	}
	if !additive {
		clear(s.selected)
		s.selected[id] = struct{}{}
		return
	}
	if _, isSel := s.selected[id]; isSel {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// SelectMany adds the given nodes to the selection.  If additive is
// false, the previous selection is discarded first.
func (s *Session) SelectMany(ids []glyph.NodeID, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectMany(ids, additive)
}

func (s *Session) selectMany(ids []glyph.NodeID, additive bool) {
	if !additive {
		clear(s.selected)
	}
	l := s.layer()
	for _, id := range ids {
		if _, ok := l.FindNode(id); ok {
			s.selected[id] = struct{}{}
		}
	}
}

// SelectAll selects every node of the active layer.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectMany(s.layer().NodeIDs(), false)
}

// SelectContour selects all nodes of contour ci.
func (s *Session) SelectContour(ci int, additive bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.layer().ContourNodeIDs(ci)
	if ids == nil {
		return false
	}
	s.selectMany(ids, additive)
	return true
}

// SelectRect selects the nodes inside a screen space rectangle.
func (s *Session) SelectRect(r rect.Rect, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectMany(hittest.Rect(s.layer(), s.vp, r), additive)
}

// SelectLasso selects the nodes inside a screen space polygon.
func (s *Session) SelectLasso(poly []vec.Vec2, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectMany(hittest.Lasso(s.layer(), s.vp, poly), additive)
}

// ClearSelection deselects all nodes.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.selected)
}

// HitNode returns the node under the screen point p.
func (s *Session) HitNode(p vec.Vec2) (glyph.NodeID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hittest.Point(s.layer(), s.vp, p, s.opt.HitRadius)
}

// HitContour returns the contour under the screen point p.
func (s *Session) HitContour(p vec.Vec2) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hittest.Contour(s.layer(), s.vp, p, s.opt.ContourTolerance)
}

// Click updates the selection for a pointer press at the screen point p.
//
// If a node is hit, it is toggled when additive is set, and otherwise
// selected unless it already is, so that a multi-node selection can be
// dragged.  If no node is hit, the selection is cleared unless additive
// is set.  The return value reports whether a node was hit.
func (s *Session) Click(p vec.Vec2, additive bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, hit := hittest.Point(s.layer(), s.vp, p, s.opt.HitRadius)
	switch {
	case hit && additive:
		s.selectOne(id, true)
	case hit:
		if _, isSel := s.selected[id]; !isSel {
			s.selectOne(id, false)
		}
	case !additive:
		clear(s.selected)
	}
	return hit
}

// IsSelected reports whether a node is selected.
func (s *Session) IsSelected(id glyph.NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected nodes in document order.
func (s *Session) SelectedIDs() []glyph.NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDs()
}

func (s *Session) selectedIDs() []glyph.NodeID {
	ids := make([]glyph.NodeID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, glyph.NodeID.Compare)
	return ids
}

// SetSelectedIDs replaces the selection.  Unknown nodes are ignored.
func (s *Session) SetSelectedIDs(ids []glyph.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectMany(ids, false)
}

// SelectionSummary describes the selection for a status bar.
func (s *Session) SelectionSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch len(s.selected) {
	case 0:
		return "–"
	case 1:
		id := s.selectedIDs()[0]
		ref, ok := s.layer().FindNode(id)
		if !ok {
			return id.String()
		}
		return fmt.Sprintf("%s (%s, %s) %s", id,
			float.Format(ref.Node.X), float.Format(ref.Node.Y), ref.Node.Type)
	default:
		return fmt.Sprintf("%d nodes", len(s.selected))
	}
}

// pruneSelection drops selected nodes which no longer exist.
func (s *Session) pruneSelection() {
	l := s.layer()
	for id := range s.selected {
		if _, ok := l.FindNode(id); !ok {
			delete(s.selected, id)
		}
	}
}
