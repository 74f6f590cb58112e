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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
)

type dragState struct {
	origin vec.Vec2
	start  map[glyph.NodeID]vec.Vec2
}

// BeginDrag starts moving the selected nodes.  The pointer position is
// given in glyph space.
func (s *Session) BeginDrag(origin vec.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &dragState{
		origin: origin,
		start:  make(map[glyph.NodeID]vec.Vec2, len(s.selected)),
	}
	l := s.layer()
	for id := range s.selected {
		if ref, ok := l.FindNode(id); ok {
			d.start[id] = vec.Vec2{X: ref.Node.X, Y: ref.Node.Y}
		}
	}
	s.drag = d
}

// DragTo moves every dragged node to its start position plus the pointer
// offset since [Session.BeginDrag], rounded to 0.1 units.  If constrain
// is set, only the dominant axis of the offset is applied.
//
// Positions are computed from the start of the drag, so repeating a
// pointer position reproduces the same node positions.  The text is
// regenerated after a short quiet period.
func (s *Session) DragTo(p vec.Vec2, constrain bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag == nil {
		return
	}
	d := p.Sub(s.drag.origin)
	if constrain {
		if math.Abs(d.X) > math.Abs(d.Y) {
			d.Y = 0
		} else {
			d.X = 0
		}
	}
	l := s.layer()
	for id, start := range s.drag.start {
		l.SetNodePosition(id, start.X+d.X, start.Y+d.Y)
	}
	s.sync.Trigger()
}

// EndDrag finishes a drag and regenerates the text immediately.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag == nil {
		return
	}
	s.drag = nil
	s.regenerate()
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag != nil
}

// Nudge moves the selected nodes by (dx, dy) and regenerates the text.
// The number of moved nodes is returned.
func (s *Session) Nudge(dx, dy float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		return 0
	}
	n := s.layer().MoveNodes(s.selectedIDs(), dx, dy)
	s.regenerate()
	return n
}
