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
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph"
	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/trxml"
	"seehuhn.de/go/trglyph/view"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

type memBuffer struct {
	text   string
	writes int
}

func (b *memBuffer) Text() string { return b.text }

func (b *memBuffer) SetText(text string) {
	b.text = text
	b.writes++
}

func testGlyph() *glyph.Glyph {
	return &glyph.Glyph{
		Name: "o",
		Layers: []*glyph.Layer{
			{
				Name:   "Regular",
				Width:  500,
				Height: 1000,
				Shapes: []*glyph.Shape{{
					Contours: []*glyph.Contour{
						{
							Closed: true,
							Nodes: []glyph.Node{
								{X: 0, Y: 0},
								{X: 100, Y: 0},
								{X: 100, Y: 100},
								{X: 0, Y: 100},
							},
						},
						{
							Closed: true,
							Nodes: []glyph.Node{
								{X: 200, Y: 0},
								{X: 250, Y: 100, Type: glyph.Off},
								{X: 300, Y: 0},
							},
						},
					},
				}},
			},
			{Name: "Bold", Width: 600, Height: 1000},
			{Name: "mask.Regular", Height: 1000},
		},
	}
}

func newTestSession() (*Session, *memBuffer, *fakeClock) {
	buf := &memBuffer{}
	clock := &fakeClock{}
	s := NewSession(buf, &Options{Clock: clock})
	s.SetGlyph(testGlyph())
	return s, buf, clock
}

func id(c, n int) glyph.NodeID {
	return glyph.NodeID{Contour: c, Node: n}
}

func nodeAt(t *testing.T, s *Session, nid glyph.NodeID) vec.Vec2 {
	t.Helper()
	ref, ok := s.ActiveLayer().FindNode(nid)
	if !ok {
		t.Fatalf("node %s not found", nid)
	}
	return vec.Vec2{X: ref.Node.X, Y: ref.Node.Y}
}

func TestSetGlyph(t *testing.T) {
	s, buf, _ := newTestSession()
	if got := s.ActiveLayer().Name; got != "Regular" {
		t.Errorf("active layer %q", got)
	}
	if buf.writes != 1 || buf.text != s.Text() {
		t.Errorf("text buffer not updated: %d writes", buf.writes)
	}
	if !strings.HasPrefix(buf.text, "<?xml") {
		t.Errorf("unexpected text %q", buf.text)
	}
	if got := s.NodeCount(); got != "6 on / 1 off" {
		t.Errorf("NodeCount() = %q", got)
	}
	if !s.Status().OK() || s.Status().String() != "OK" {
		t.Errorf("status %v", s.Status())
	}
}

func TestDragIdempotent(t *testing.T) {
	s, buf, clock := newTestSession()
	s.SelectMany([]glyph.NodeID{id(0, 0), id(0, 1)}, false)

	s.BeginDrag(vec.Vec2{X: 0, Y: 0})
	if !s.Dragging() {
		t.Fatal("not dragging")
	}
	s.DragTo(vec.Vec2{X: 10.04, Y: 5}, false)
	want := []vec.Vec2{{X: 10, Y: 5}, {X: 110, Y: 5}}
	check := func(label string) {
		t.Helper()
		got := []vec.Vec2{nodeAt(t, s, id(0, 0)), nodeAt(t, s, id(0, 1))}
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("%s (-want +got):\n%s", label, d)
		}
	}
	check("first move")
	s.DragTo(vec.Vec2{X: 10.04, Y: 5}, false)
	check("repeated position")
	s.DragTo(vec.Vec2{X: -33, Y: 7}, false)
	s.DragTo(vec.Vec2{X: 10.04, Y: 5}, false)
	check("returned position")

	if got := nodeAt(t, s, id(0, 2)); got != (vec.Vec2{X: 100, Y: 100}) {
		t.Errorf("unselected node moved to %v", got)
	}

	// the text is regenerated after the quiet period
	if buf.writes != 1 {
		t.Errorf("text regenerated during the drag")
	}
	clock.Advance(79 * time.Millisecond)
	if buf.writes != 1 {
		t.Errorf("text regenerated too early")
	}
	clock.Advance(time.Millisecond)
	if buf.writes != 2 || !strings.Contains(buf.text, `<node x="110" y="5" type="on"/>`) {
		t.Errorf("text not regenerated after drag:\n%s", buf.text)
	}

	s.DragTo(vec.Vec2{X: 20, Y: 0}, false)
	s.EndDrag()
	if buf.writes != 3 || !strings.Contains(buf.text, `<node x="120" y="0" type="on"/>`) {
		t.Errorf("EndDrag did not flush the text:\n%s", buf.text)
	}
	clock.Advance(time.Second)
	if buf.writes != 3 {
		t.Errorf("superseded regeneration ran, %d writes", buf.writes)
	}
	if s.Dragging() {
		t.Error("still dragging")
	}
}

func TestDragConstrained(t *testing.T) {
	s, _, _ := newTestSession()
	s.Select(id(0, 2), false)
	s.BeginDrag(vec.Vec2{X: 50, Y: 50})

	s.DragTo(vec.Vec2{X: 60, Y: 53}, true)
	if got := nodeAt(t, s, id(0, 2)); got != (vec.Vec2{X: 110, Y: 100}) {
		t.Errorf("horizontal: got %v", got)
	}
	s.DragTo(vec.Vec2{X: 52, Y: 20}, true)
	if got := nodeAt(t, s, id(0, 2)); got != (vec.Vec2{X: 100, Y: 70}) {
		t.Errorf("vertical: got %v", got)
	}
	s.EndDrag()
}

func TestNudge(t *testing.T) {
	s, buf, _ := newTestSession()
	if n := s.Nudge(StepMedium, 0); n != 0 {
		t.Errorf("moved %d nodes without selection", n)
	}
	s.SelectContour(1, false)
	if n := s.Nudge(0, -StepSmall); n != 3 {
		t.Errorf("moved %d nodes, want 3", n)
	}
	if got := nodeAt(t, s, id(1, 1)); got != (vec.Vec2{X: 250, Y: 99}) {
		t.Errorf("got %v", got)
	}
	if !strings.Contains(buf.text, `<node x="250" y="99" type="off"/>`) {
		t.Errorf("text not updated:\n%s", buf.text)
	}
}

func TestSelection(t *testing.T) {
	s, _, _ := newTestSession()

	s.Select(id(0, 1), false)
	s.Select(id(1, 0), true)
	s.Select(id(9, 9), true)
	if d := cmp.Diff([]glyph.NodeID{id(0, 1), id(1, 0)}, s.SelectedIDs()); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	s.Select(id(0, 1), true)
	if d := cmp.Diff([]glyph.NodeID{id(1, 0)}, s.SelectedIDs()); d != "" {
		t.Errorf("toggle (-want +got):\n%s", d)
	}

	s.SetSelectedIDs([]glyph.NodeID{id(1, 2), id(0, 3), id(5, 0)})
	if d := cmp.Diff([]glyph.NodeID{id(0, 3), id(1, 2)}, s.SelectedIDs()); d != "" {
		t.Errorf("SetSelectedIDs (-want +got):\n%s", d)
	}

	s.SelectAll()
	if got := len(s.SelectedIDs()); got != 7 {
		t.Errorf("SelectAll selected %d nodes", got)
	}
	s.ClearSelection()
	if got := s.SelectionSummary(); got != "–" {
		t.Errorf("empty summary %q", got)
	}

	s.SelectRect(rect.Rect{LLx: -1, LLy: -101, URx: 101, URy: 1}, false)
	if d := cmp.Diff(s.ActiveLayer().ContourNodeIDs(0), s.SelectedIDs()); d != "" {
		t.Errorf("SelectRect (-want +got):\n%s", d)
	}
	if got := s.SelectionSummary(); got != "4 nodes" {
		t.Errorf("summary %q", got)
	}

	s.SelectLasso([]vec.Vec2{{X: 240, Y: -90}, {X: 260, Y: -90}, {X: 250, Y: -110}}, true)
	if !s.IsSelected(id(1, 1)) || !s.IsSelected(id(0, 0)) {
		t.Errorf("additive lasso: %v", s.SelectedIDs())
	}

	s.Select(id(1, 1), false)
	if got := s.SelectionSummary(); got != "c1_n1 (250, 100) off" {
		t.Errorf("summary %q", got)
	}
}

func TestClick(t *testing.T) {
	s, _, _ := newTestSession()
	p := vec.Vec2{X: 101, Y: 1} // near node c0_n1

	if !s.Click(p, false) || !s.IsSelected(id(0, 1)) {
		t.Fatal("click did not select c0_n1")
	}
	if !s.Click(p, true) || s.IsSelected(id(0, 1)) {
		t.Error("additive click did not toggle")
	}

	s.SelectMany([]glyph.NodeID{id(0, 0), id(0, 1)}, false)
	s.Click(p, false)
	if len(s.SelectedIDs()) != 2 {
		t.Errorf("click on a selected node changed the selection to %v", s.SelectedIDs())
	}

	if s.Click(vec.Vec2{X: 500, Y: 500}, true) || len(s.SelectedIDs()) != 2 {
		t.Error("additive click on empty space changed the selection")
	}
	if s.Click(vec.Vec2{X: 500, Y: 500}, false) || len(s.SelectedIDs()) != 0 {
		t.Error("click on empty space kept the selection")
	}

	if ci, ok := s.HitContour(vec.Vec2{X: 50, Y: -50}); !ok || ci != 0 {
		t.Errorf("HitContour = %d %t", ci, ok)
	}
}

func TestEditText(t *testing.T) {
	s, buf, clock := newTestSession()
	orig := s.Glyph()
	writes := buf.writes

	s.EditText(`<glyph name="broken"><layer>`)
	clock.Advance(DefaultEditDelay)
	if s.Status().OK() {
		t.Error("broken text accepted")
	}
	if s.Glyph() != orig {
		t.Error("document replaced by broken text")
	}

	edited := strings.Replace(string(trxml.Marshal(orig)), `name="o"`, `name="p"`, 1)
	s.EditText(edited)
	clock.Advance(DefaultEditDelay - time.Millisecond)
	if s.Glyph() != orig {
		t.Error("text parsed before the quiet period")
	}
	clock.Advance(time.Millisecond)
	if got := s.Glyph().Name; got != "p" {
		t.Errorf("glyph name %q after edit", got)
	}
	if !s.Status().OK() {
		t.Errorf("status %v", s.Status())
	}
	if buf.writes != writes {
		t.Error("text buffer overwritten while the user edits it")
	}
	if s.Text() != edited {
		t.Error("text mirror differs from the edited text")
	}
}

func TestRegenerateSupersedesEdit(t *testing.T) {
	s, _, clock := newTestSession()
	s.EditText(`<glyph name="other"/>`)
	s.Select(id(0, 0), false)
	s.Nudge(1, 0)
	clock.Advance(time.Second)
	if got := s.Glyph().Name; got != "o" {
		t.Errorf("stale edit replaced the document with %q", got)
	}
}

func TestLoadText(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetActiveLayer("Bold")
	orig := s.Glyph()

	if err := s.LoadText("<glyph"); err == nil {
		t.Fatal("no error for broken text")
	}
	if s.Glyph() != orig || s.Status().OK() {
		t.Error("broken text changed the document")
	}
	if !strings.HasPrefix(s.Status().String(), "Parse error: ") {
		t.Errorf("status %q", s.Status())
	}

	if err := s.LoadText(`<glyph><layer name="Light"/><layer name="Bold" width="1"/></glyph>`); err != nil {
		t.Fatal(err)
	}
	if l := s.ActiveLayer(); l.Name != "Bold" || l.Width != 1 {
		t.Errorf("active layer %q not kept", l.Name)
	}

	if err := s.LoadText(`<glyph><layer name="Light"/></glyph>`); err != nil {
		t.Fatal(err)
	}
	if got := s.ActiveLayer().Name; got != "Light" {
		t.Errorf("active layer %q, want first layer", got)
	}
}

func TestActiveLayer(t *testing.T) {
	s, _, _ := newTestSession()
	s.Select(id(0, 0), false)
	if s.SetActiveLayer("mask.Regular") {
		t.Error("mask layer became active")
	}
	if s.SetActiveLayer("Missing") {
		t.Error("missing layer became active")
	}
	if !s.SetActiveLayer("Bold") || s.ActiveLayerIndex() != 1 {
		t.Error("cannot switch to Bold")
	}
	if len(s.SelectedIDs()) != 0 {
		t.Error("selection survived a layer switch")
	}
	if got := s.NodeCount(); got != "0 on / 0 off" {
		t.Errorf("NodeCount() = %q", got)
	}
}

func TestMaskNotDefault(t *testing.T) {
	g := &glyph.Glyph{
		Name: "a",
		Layers: []*glyph.Layer{
			{Name: "mask.Regular"},
			{Name: "Regular", Width: 500},
			{Name: "Bold", Width: 600},
		},
	}
	s := NewSession(nil, &Options{Clock: &fakeClock{}})
	s.SetGlyph(g)
	if got := s.ActiveLayer().Name; got != "Regular" {
		t.Errorf("SetGlyph: active layer %q, want Regular", got)
	}

	// the active layer disappears; the mask must not take its place
	g2 := &glyph.Glyph{
		Name: "a",
		Layers: []*glyph.Layer{
			{Name: "mask.Bold"},
			{Name: "Bold", Width: 600},
		},
	}
	if err := s.LoadText(string(trxml.Marshal(g2))); err != nil {
		t.Fatal(err)
	}
	if got := s.ActiveLayer().Name; got != "Bold" {
		t.Errorf("LoadText: active layer %q, want Bold", got)
	}

	// only masks: the first layer is used
	g3 := &glyph.Glyph{Layers: []*glyph.Layer{{Name: "mask.X"}}}
	if err := s.ImportText(string(trxml.Marshal(g3))); err != nil {
		t.Fatal(err)
	}
	if got := s.ActiveLayer().Name; got != "mask.X" {
		t.Errorf("ImportText: active layer %q, want mask.X", got)
	}
}

func TestLines(t *testing.T) {
	s, _, _ := newTestSession()

	// header, glyph, layer, shape, contour, 4 nodes, end of contour,
	// contour: the second contour's first node is on line 12.
	if !s.SelectLine(12) {
		t.Fatal("SelectLine failed")
	}
	if d := cmp.Diff([]glyph.NodeID{id(1, 0)}, s.SelectedIDs()); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	if line, ok := s.SelectionLine(); !ok || line != 12 {
		t.Errorf("SelectionLine() = %d %t", line, ok)
	}
	if s.SelectLine(3) {
		t.Error("layer line selected a node")
	}
}

func TestBridge(t *testing.T) {
	s, buf, _ := newTestSession()
	exported := s.ExportText()
	if exported != buf.text {
		t.Error("exported text differs from the mirror")
	}

	s.Select(id(1, 2), false)
	g, err := trxml.ParseBytes([]byte(exported))
	if err != nil {
		t.Fatal(err)
	}
	g.Layers[0].Shapes[0].Contours = g.Layers[0].Shapes[0].Contours[:1]
	if err := s.ImportText(string(trxml.Marshal(g))); err != nil {
		t.Fatal(err)
	}
	if len(s.SelectedIDs()) != 0 {
		t.Errorf("selection kept removed node: %v", s.SelectedIDs())
	}
	if buf.text != s.ExportText() {
		t.Error("mirror not regenerated after import")
	}

	if err := s.ImportText("not xml"); err == nil {
		t.Error("import of broken text succeeded")
	}
}

func TestViewport(t *testing.T) {
	s, _, _ := newTestSession()
	v := s.Fit(800, 600)
	if want := view.FitLayer(s.ActiveLayer(), 800, 600, view.SinglePadding); v != want {
		t.Errorf("Fit() = %v, want %v", v, want)
	}
	p := vec.Vec2{X: 400, Y: 300}
	before := v.ScreenToGlyph(p)
	v = s.ZoomAt(p, ZoomKey)
	if d := cmp.Diff(before, v.ScreenToGlyph(p), approx); d != "" {
		t.Errorf("zoom moved the fixed point (-want +got):\n%s", d)
	}
	v = s.Pan(vec.Vec2{X: 5, Y: -5})
	if s.Viewport() != v {
		t.Error("Pan result not stored")
	}
}

func TestLogging(t *testing.T) {
	var out bytes.Buffer
	trglyph.SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer trglyph.SetLogger(nil)

	s, _, _ := newTestSession()
	s.LoadText("<glyph")
	if !strings.Contains(out.String(), "text edit rejected") {
		t.Errorf("missing log message:\n%s", out.String())
	}
}
