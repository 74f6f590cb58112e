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

package view

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/trglyph/glyph"
)

// Cell is a position in a multi-layer grid.
type Cell struct {
	Row, Col int
}

// Grid assigns layers to the cells of a rows x cols arrangement.
//
// Rows and columns can be rotated through the candidate layers like the
// faces of a puzzle cube.  One cell is active; its layer is the one being
// edited.
type Grid struct {
	Rows, Cols int

	// Layers are the candidate layers.  Mask layers should not be
	// included; see [glyph.Glyph.GridLayers].
	Layers []*glyph.Layer

	cells  [][]int
	active Cell
}

// NewGrid fills a grid row by row with the candidate layers, repeating
// them as needed.  The top-left cell is active.
func NewGrid(layers []*glyph.Layer, rows, cols int) *Grid {
	rows = max(rows, 1)
	cols = max(cols, 1)
	n := max(len(layers), 1)

	g := &Grid{
		Rows:   rows,
		Cols:   cols,
		Layers: layers,
		cells:  make([][]int, rows),
	}
	idx := 0
	for r := range g.cells {
		g.cells[r] = make([]int, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = idx % n
			idx++
		}
	}
	return g
}

func (g *Grid) valid(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// LayerIndex returns the index into g.Layers shown in cell c, or -1.
func (g *Grid) LayerIndex(c Cell) int {
	if !g.valid(c) || len(g.Layers) == 0 {
		return -1
	}
	return g.cells[c.Row][c.Col] % len(g.Layers)
}

// LayerAt returns the layer shown in cell c, or nil.
func (g *Grid) LayerAt(c Cell) *glyph.Layer {
	idx := g.LayerIndex(c)
	if idx < 0 {
		return nil
	}
	return g.Layers[idx]
}

// Active returns the active cell.
func (g *Grid) Active() Cell {
	return g.active
}

// ActiveLayer returns the layer of the active cell.
func (g *Grid) ActiveLayer() *glyph.Layer {
	return g.LayerAt(g.active)
}

// SetActive makes c the active cell.  It returns false if c lies outside
// the grid.
func (g *Grid) SetActive(c Cell) bool {
	if !g.valid(c) {
		return false
	}
	g.active = c
	return true
}

// RotateColumn advances every cell of the column by dir layers.
func (g *Grid) RotateColumn(col, dir int) {
	if col < 0 || col >= g.Cols {
		return
	}
	for r := range g.Rows {
		g.cells[r][col] = g.rotate(g.cells[r][col], dir)
	}
}

// RotateRow advances every cell of the row by dir layers.
func (g *Grid) RotateRow(row, dir int) {
	if row < 0 || row >= g.Rows {
		return
	}
	for c := range g.Cols {
		g.cells[row][c] = g.rotate(g.cells[row][c], dir)
	}
}

func (g *Grid) rotate(idx, dir int) int {
	n := max(len(g.Layers), 1)
	return ((idx+dir)%n + n) % n
}

// CellRect returns the screen area of cell c in a canvas of the given
// size.  LLx and LLy are the top left corner, URx and URy the bottom right
// corner, in screen coordinates.
func (g *Grid) CellRect(c Cell, width, height float64) rect.Rect {
	cellW := width / float64(g.Cols)
	cellH := height / float64(g.Rows)
	x := float64(c.Col) * cellW
	y := float64(c.Row) * cellH
	return rect.Rect{LLx: x, LLy: y, URx: x + cellW, URy: y + cellH}
}

// CellAt returns the cell containing the screen point s.  Points outside
// the canvas are attributed to the nearest cell.
func (g *Grid) CellAt(s vec.Vec2, width, height float64) Cell {
	col := floorDiv(s.X, width/float64(g.Cols))
	row := floorDiv(s.Y, height/float64(g.Rows))
	return Cell{
		Row: clamp(row, 0, g.Rows-1),
		Col: clamp(col, 0, g.Cols-1),
	}
}

// Local converts a canvas point into coordinates relative to the top left
// corner of the cell containing it.
func (g *Grid) Local(s vec.Vec2, width, height float64) (Cell, vec.Vec2) {
	c := g.CellAt(s, width, height)
	r := g.CellRect(c, width, height)
	return c, vec.Vec2{X: s.X - r.LLx, Y: s.Y - r.LLy}
}

// JoinedGap is the default space between layers in a joined layout, in
// glyph units.
const JoinedGap = 80

// minJoinedCell is the smallest cell extent used in joined layouts.
const minJoinedCell = 100

// JoinedLayout places the layers of a grid next to each other in one
// shared glyph space, like a line of text.  Row 0 is at the top.
type JoinedLayout struct {
	Rows, Cols   int
	Gap          float64
	CellW, CellH float64
}

// NewJoinedLayout computes a layout large enough for every layer in the
// list.  The extent of a layer covers its nodes and its advance box.
func NewJoinedLayout(layers []*glyph.Layer, rows, cols int, gap float64) JoinedLayout {
	var maxW, maxH float64
	for _, l := range layers {
		bbox := rect.Rect{URx: l.Width, URy: l.Height}
		if outline, ok := l.OutlineBounds(); ok {
			bbox.LLx = min(bbox.LLx, outline.LLx)
			bbox.LLy = min(bbox.LLy, outline.LLy)
			bbox.URx = max(bbox.URx, outline.URx)
			bbox.URy = max(bbox.URy, outline.URy)
		}
		maxW = max(maxW, bbox.Dx())
		maxH = max(maxH, bbox.Dy())
	}
	maxW = max(maxW, minJoinedCell)
	maxH = max(maxH, minJoinedCell)

	return JoinedLayout{
		Rows:  max(rows, 1),
		Cols:  max(cols, 1),
		Gap:   gap,
		CellW: maxW + gap,
		CellH: maxH + gap,
	}
}

// Offset returns the glyph space position of cell c.
func (j JoinedLayout) Offset(c Cell) vec.Vec2 {
	return vec.Vec2{
		X: float64(c.Col) * j.CellW,
		Y: float64(j.Rows-1-c.Row) * j.CellH,
	}
}

// Size returns the total extent of the layout, without the trailing gaps.
func (j JoinedLayout) Size() (w, h float64) {
	return float64(j.Cols)*j.CellW - j.Gap, float64(j.Rows)*j.CellH - j.Gap
}

// CellViewport returns the viewport used to draw and hit-test cell c.
func (j JoinedLayout) CellViewport(v Viewport, c Cell) Viewport {
	return v.Offset(j.Offset(c))
}

// CellAt returns the cell under the screen point s, for the shared
// viewport v.  Points outside the layout go to the nearest cell.
func (j JoinedLayout) CellAt(v Viewport, s vec.Vec2) Cell {
	p := v.ScreenToGlyph(s)
	col := floorDiv(p.X, j.CellW)
	row := j.Rows - 1 - floorDiv(p.Y, j.CellH)
	return Cell{
		Row: clamp(row, 0, j.Rows-1),
		Col: clamp(col, 0, j.Cols-1),
	}
}

// Fit returns the shared viewport showing the whole layout.
func (j JoinedLayout) Fit(width, height, pad float64) Viewport {
	w, h := j.Size()
	return Fit(rect.Rect{URx: w, URy: h}, width, height, pad)
}

func floorDiv(x, d float64) int {
	q := math.Floor(x / d)
	if math.IsNaN(q) {
		return 0
	}
	return int(max(-1e9, min(1e9, q)))
}

func clamp(x, lo, hi int) int {
	return max(lo, min(hi, x))
}
