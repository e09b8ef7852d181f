package worldgen

import (
	"image/color"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/raster"
	"toromap/internal/voronoi"
)

// Layer selects what a rendered bitmap shows.
type Layer int

const (
	LayerTerrain Layer = iota
	LayerPlates
	LayerCells
	LayerElevation
	LayerClimate
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerPlates:
		return "plates"
	case LayerCells:
		return "cells"
	case LayerElevation:
		return "elevation"
	case LayerClimate:
		return "climate"
	default:
		return "terrain"
	}
}

// Next cycles through the layers.
func (l Layer) Next() Layer { return (l + 1) % layerCount }

// ParseLayer maps a layer name back to its value.
func ParseLayer(name string) (Layer, bool) {
	for l := Layer(0); l < layerCount; l++ {
		if l.String() == name {
			return l, true
		}
	}
	return LayerTerrain, false
}

var borderColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}

// Render draws a layer into a fresh bitmap of the map's size. Debug layers
// draw from a dedicated RNG so the terrain stays untouched.
func (m *Map) Render(layer Layer) *raster.Bitmap {
	src := m.Terrain
	switch layer {
	case LayerPlates:
		return m.renderPlates()
	case LayerCells:
		return m.renderCells()
	case LayerElevation:
		bm := raster.NewBitmap(src.W, src.H, src.Space, background)
		for i, e := range m.Elevation {
			v := quantize(e)
			bm.Pix[4*i], bm.Pix[4*i+1], bm.Pix[4*i+2], bm.Pix[4*i+3] = v, v, v, 255
		}
		return bm
	case LayerClimate:
		return m.renderClimate()
	default:
		bm := raster.NewBitmap(src.W, src.H, src.Space, background)
		copy(bm.Pix, src.Pix)
		return bm
	}
}

func (m *Map) shifts() []geom.Vec2 {
	off := m.Diagram.Offset
	return []geom.Vec2{off.Scale(-1), {}, off}
}

// renderPlates outlines every cell and floods it with its plate color.
func (m *Map) renderPlates() *raster.Bitmap {
	bm := raster.NewBitmap(m.Terrain.W, m.Terrain.H, m.Terrain.Space, background)
	for _, s := range m.shifts() {
		for _, c := range m.Diagram.Cells {
			for _, e := range c.Edges {
				bm.DrawEdge(e.Beg.Add(s), e.End.Add(s), borderColor, true)
			}
		}
	}
	for _, s := range m.shifts() {
		for id, c := range m.Diagram.Cells {
			col := m.Plates.Plates[m.Plates.Owner[id]].Color
			if col == background {
				col.R = 1
			}
			bm.Fill(c.Center.Add(s), col)
		}
	}
	return bm
}

// renderCells fills every cell polygon with a random color.
func (m *Map) renderCells() *raster.Bitmap {
	bm := raster.NewBitmap(m.Terrain.W, m.Terrain.H, m.Terrain.Space, background)
	rng := core.NewRNG(m.Seed)
	for _, c := range m.Diagram.Cells {
		col := raster.HSV(float64(rng.IntN(360)), 0.5+0.5*rng.Float64(), 0.9)
		for _, s := range m.shifts() {
			pts := make([]geom.Vec2, len(c.Points))
			for i, p := range c.Points {
				pts[i] = p.Add(s)
			}
			bm.FillConvex(pts, col)
		}
	}
	return bm
}

// renderClimate dims the terrain and marks each joint with its climate
// color.
func (m *Map) renderClimate() *raster.Bitmap {
	src := m.Terrain
	bm := raster.NewBitmap(src.W, src.H, src.Space, background)
	for i := 0; i < len(src.Pix); i += 4 {
		bm.Pix[i], bm.Pix[i+1], bm.Pix[i+2] = src.Pix[i]/3, src.Pix[i+1]/3, src.Pix[i+2]/3
	}
	if m.Climate == nil || m.Joints == nil {
		return bm
	}
	for j, p := range m.Joints.Joints {
		col := m.Climate.Color(j)
		for _, s := range m.shifts() {
			bm.DrawPoint(p.Add(s), 1, col)
		}
	}
	return bm
}

// CellAt returns the cell owning p and the copy it was reached through.
func (m *Map) CellAt(p geom.Vec2) (int, voronoi.WrapTag) {
	e, _, _ := m.Grid.Nearest(p)
	return e.Cell, e.Tag
}
