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
	"sync"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph"
	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/trxml"
	"seehuhn.de/go/trglyph/view"
)

// Session is an editing session for a single glyph.
type Session struct {
	// mu serializes timer callbacks with the methods of Session
	mu sync.Mutex

	opt Options
	buf TextBuffer

	doc    *glyph.Glyph
	active string
	vp     view.Viewport

	text   string
	lines  *trxml.LineMap
	status Status

	selected map[glyph.NodeID]struct{}
	drag     *dragState

	sync        *Coalescer
	edit        *Coalescer
	pendingText string
	hasPending  bool
}

// Status records whether the text mirror could be parsed.
type Status struct {
	Err error
}

// OK reports whether the last parse succeeded.
func (st Status) OK() bool {
	return st.Err == nil
}

func (st Status) String() string {
	if st.Err == nil {
		return "OK"
	}
	return "Parse error: " + st.Err.Error()
}

// NewSession returns a session without a document.  If buf is not nil,
// it receives the XML text every time the text is regenerated.
func NewSession(buf TextBuffer, opt *Options) *Session {
	s := &Session{
		opt:      opt.withDefaults(),
		buf:      buf,
		vp:       view.Identity,
		selected: make(map[glyph.NodeID]struct{}),
	}
	s.sync = NewCoalescer(s.opt.SyncDelay, s.opt.Clock, s.syncFromTimer)
	s.edit = NewCoalescer(s.opt.EditDelay, s.opt.Clock, s.editFromTimer)
	return s
}

// Open replaces the document by the glyph encoded in data.
// On failure the current document is kept.
func (s *Session) Open(data []byte) error {
	g, err := trxml.ParseBytes(data)
	if err != nil {
		return err
	}
	s.SetGlyph(g)
	return nil
}

// SetGlyph replaces the document.  The selection is cleared, the first
// layer which is not a mask becomes active and the text is regenerated.
func (s *Session) SetGlyph(g *glyph.Glyph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = g
	s.active = defaultLayer(g)
	clear(s.selected)
	s.drag = nil
	s.regenerate()

	if g != nil {
		trglyph.Logger().Debug("document replaced",
			"glyph", g.Name, "layers", len(g.Layers))
	}
}

// defaultLayer returns the name of the first layer which is not a mask.
// If all layers are masks, the first layer is used.
func defaultLayer(g *glyph.Glyph) string {
	if ll := g.GridLayers(); len(ll) > 0 {
		return ll[0].Name
	}
	if g != nil && len(g.Layers) > 0 {
		return g.Layers[0].Name
	}
	return ""
}

// Glyph returns the document.  The result may be nil.
func (s *Session) Glyph() *glyph.Glyph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// ActiveLayer returns the layer being edited.
func (s *Session) ActiveLayer() *glyph.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layer()
}

func (s *Session) layer() *glyph.Layer {
	if s.doc == nil {
		return nil
	}
	return s.doc.Layer(s.active)
}

// ActiveLayerIndex returns the index of the active layer in the glyph,
// or -1 if there is no document.
func (s *Session) ActiveLayerIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layerIndex()
}

func (s *Session) layerIndex() int {
	if s.doc == nil {
		return -1
	}
	return s.doc.LayerIndex(s.layer())
}

// SetActiveLayer switches editing to the named layer.  Mask layers
// cannot be edited.  The selection is cleared.
func (s *Session) SetActiveLayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.doc.LayerByName(name)
	if !ok || l.IsMask() {
		return false
	}
	if name != s.active {
		s.active = name
		clear(s.selected)
		s.drag = nil
	}
	return true
}

// Viewport returns the current view.
func (s *Session) Viewport() view.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp
}

// SetViewport changes the current view.
func (s *Session) SetViewport(v view.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = v
}

// Fit changes the view so that the active layer fills a canvas of the
// given size.
func (s *Session) Fit(width, height float64) view.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = view.FitLayer(s.layer(), width, height, s.opt.Padding)
	return s.vp
}

// ZoomAt scales the view by factor, keeping the screen point p fixed.
func (s *Session) ZoomAt(p vec.Vec2, factor float64) view.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = s.vp.ZoomAt(p, factor)
	return s.vp
}

// Pan moves the view by d screen units.
func (s *Session) Pan(d vec.Vec2) view.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.Pan = s.vp.Pan.Add(d)
	return s.vp
}

// NodeCount summarizes the nodes of the active layer as "N on / M off".
// The result is empty if there is no active layer.
func (s *Session) NodeCount() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.layer()
	if l == nil {
		return ""
	}
	on, off := l.NodeCount()
	return fmt.Sprintf("%d on / %d off", on, off)
}

// Close cancels all pending timers.
func (s *Session) Close() {
	s.sync.Cancel()
	s.edit.Cancel()
}
