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
	"strings"

	"seehuhn.de/go/trglyph"
	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/trxml"
)

// Text returns the XML text mirror of the document.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Lines returns the node positions in the text mirror.
func (s *Session) Lines() *trxml.LineMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Status reports whether the text mirror parsed.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// EditText records a change of the text made by the user.  The text is
// parsed once no further edits arrived for the edit delay.
func (s *Session) EditText(text string) {
	s.mu.Lock()
	s.text = text
	s.pendingText = text
	s.hasPending = true
	s.mu.Unlock()

	s.edit.Trigger()
}

// FlushEdits parses a pending text edit immediately.
func (s *Session) FlushEdits() {
	s.edit.Flush()
}

// LoadText parses text and, on success, makes the result the document.
// The previous document is kept if text does not parse; the error is
// returned and recorded in [Session.Status].
func (s *Session) LoadText(text string) error {
	s.edit.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	return s.load(text)
}

// ExportText returns the canonical XML encoding of the document.
func (s *Session) ExportText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ""
	}
	return string(trxml.Marshal(s.doc))
}

// ImportText replaces the document by the glyph encoded in text, keeping
// the active layer where possible, and regenerates the text mirror.
// On failure the document is left unchanged.
func (s *Session) ImportText(text string) error {
	g, err := trxml.Parse(strings.NewReader(text))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(g)
	s.regenerate()
	return nil
}

// SelectionLine returns the text line of the first selected node.
func (s *Session) SelectionLine() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.selectedIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return s.lines.Line(s.layerIndex(), ids[0])
}

// SelectLine selects the node defined on the given line of the text
// mirror.  If the node belongs to another layer, that layer becomes
// active.
func (s *Session) SelectLine(line int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.lines.Lookup(line)
	if !ok || s.doc == nil || loc.Layer >= len(s.doc.Layers) {
		return false
	}
	if loc.Layer != s.layerIndex() {
		l := s.doc.Layers[loc.Layer]
		if l.IsMask() || s.doc.LayerIndex(s.doc.Layer(l.Name)) != loc.Layer {
			// layers are addressed by name; a shadowed layer cannot be active
			return false
		}
		s.active = l.Name
		clear(s.selected)
		s.drag = nil
	}
	s.selectOne(loc.Node, false)
	return true
}

func (s *Session) syncFromTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regenerate()
}

func (s *Session) editFromTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasPending {
		s.load(s.pendingText)
	}
}

// regenerate rebuilds the text mirror from the document.
// Pending regenerations and text edits are superseded.
func (s *Session) regenerate() {
	s.sync.Cancel()
	s.edit.Cancel()
	s.hasPending = false

	if s.doc == nil {
		s.text = ""
		s.lines = nil
	} else {
		data, lines := trxml.AppendLines(nil, s.doc)
		s.text = string(data)
		s.lines = lines
	}
	s.status = Status{}
	if s.buf != nil {
		s.buf.SetText(s.text)
	}
	trglyph.Logger().Debug("text regenerated", "bytes", len(s.text))
}

// load parses text and replaces the document.  The text mirror itself is
// left as it is.
func (s *Session) load(text string) error {
	s.hasPending = false
	g, lines, err := trxml.ParseLines(strings.NewReader(text))
	if err != nil {
		s.status = Status{Err: err}
		trglyph.Logger().Debug("text edit rejected", "error", err)
		return err
	}
	s.replace(g)
	s.lines = lines
	s.status = Status{}
	return nil
}

// replace installs a new document, keeping the active layer name if the
// new glyph has such a layer and it is not a mask.
func (s *Session) replace(g *glyph.Glyph) {
	s.doc = g
	if l, ok := g.LayerByName(s.active); !ok || l.IsMask() {
		s.active = defaultLayer(g)
	}
	s.drag = nil
	s.pruneSelection()
	trglyph.Logger().Debug("document replaced",
		"glyph", g.Name, "layers", len(g.Layers))
}
