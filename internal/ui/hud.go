//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"toromap/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textBright  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	textDim     = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	headerColor = color.RGBA{R: 140, G: 190, B: 230, A: 255}
	buttonBG    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 30, G: 32, B: 38, A: 255}
	tabActive   = color.RGBA{R: 70, G: 110, B: 150, A: 255}
	toggleOn    = color.RGBA{R: 60, G: 120, B: 80, A: 255}
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD is the side panel: layer tabs, one section per settings group with
// step buttons and toggles, and the statistics of the current map.
type HUD struct {
	surface core.Surface
	width   int
	title   string

	params   parameterProvider
	layers   core.LayerSelector
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
	bools    core.BoolParameterSetter
	controls map[string]core.ParameterControl

	layout panelLayout
	values map[string]string

	panel *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD builds a panel of the given width for the surface. Features the
// surface does not implement are left out.
func NewHUD(surface core.Surface, width int) *HUD {
	h := &HUD{surface: surface, width: max(width, 0), title: "Map"}
	if surface != nil && surface.Name() != "" {
		h.title = surface.Name()
	}
	h.params, _ = surface.(parameterProvider)
	h.layers, _ = surface.(core.LayerSelector)
	h.ints, _ = surface.(core.IntParameterSetter)
	h.floats, _ = surface.(core.FloatParameterSetter)
	h.bools, _ = surface.(core.BoolParameterSetter)
	h.controls = map[string]core.ParameterControl{}
	if p, ok := surface.(core.ParameterControlsProvider); ok {
		for _, c := range p.ParameterControls() {
			h.controls[c.Key] = c
		}
	}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update relayouts the panel and applies a click at screen coordinates
// offset by panelOffsetX. It reports whether the surface changed.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil || h.width <= 0 {
		return false
	}
	h.relayout()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < panelOffsetX {
		return false
	}
	if !h.apply(h.layout.hit(mx-panelOffsetX, my)) {
		return false
	}
	h.relayout()
	return true
}

func (h *HUD) relayout() {
	var snap core.ParameterSnapshot
	if h.params != nil {
		snap = h.params.Parameters()
	}
	h.values = map[string]string{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			h.values[p.Key] = p.Value
		}
	}
	var names []string
	var active string
	if h.layers != nil {
		names, active = h.layers.Layers(), h.layers.ActiveLayer()
	}
	h.layout = layoutPanel(h.width, h.title, snap, h.controls, names, active)
}

func (h *HUD) apply(t hitTarget) bool {
	switch {
	case t.layer != "":
		return h.layers != nil && t.layer != h.layers.ActiveLayer() && h.layers.SelectLayer(t.layer)
	case t.flip:
		return h.bools != nil && h.bools.SetBoolParameter(t.key, h.values[t.key] != "true")
	case t.dir != 0:
		ctrl, ok := h.controls[t.key]
		if !ok {
			return false
		}
		v, err := strconv.ParseFloat(h.values[t.key], 64)
		if err != nil {
			return false
		}
		next, moved := stepValue(ctrl, v, t.dir)
		if !moved {
			return false
		}
		if ctrl.Type == core.ParamTypeInt {
			return h.ints != nil && h.ints.SetIntParameter(t.key, int(next))
		}
		return h.floats != nil && h.floats.SetFloatParameter(t.key, next)
	}
	return false
}

// Draw paints the panel at offsetX, as tall as the scaled map.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.surface.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.layout.title, face, panelPadding, panelPadding+13, textBright)
	for _, t := range h.layout.tabs {
		bg := buttonBG
		if t.active {
			bg = tabActive
		}
		h.fillRect(t.rect, bg)
		text.Draw(h.panel, t.name, face, t.rect.Min.X+tabPad, t.rect.Min.Y+13, textBright)
	}
	for i := range h.layout.rows {
		h.drawRow(&h.layout.rows[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawRow(r *panelRow) {
	face := basicfont.Face7x13
	switch r.kind {
	case rowHeader:
		text.Draw(h.panel, r.label, face, panelPadding, r.top+15, headerColor)
		h.fillRect(image.Rect(panelPadding, r.top+headerHeight-4, h.width-panelPadding, r.top+headerHeight-3), buttonBG)
	case rowStat, rowValue:
		text.Draw(h.panel, r.label, face, panelPadding, r.top+11, textDim)
		text.Draw(h.panel, r.value, face, h.width-panelPadding-textWidth(r.value), r.top+11, textBright)
	case rowNote:
		text.Draw(h.panel, r.label, face, panelPadding, r.top+11, textDim)
	case rowToggle:
		text.Draw(h.panel, r.label, face, panelPadding, r.top+17, textBright)
		bg := buttonBG
		if r.on {
			bg = toggleOn
		}
		h.button(r.toggle, r.value, bg)
	case rowSetting:
		text.Draw(h.panel, r.label, face, panelPadding, r.top+17, textBright)
		text.Draw(h.panel, r.value, face, r.minus.Min.X-buttonGap-textWidth(r.value), r.top+17, textBright)
		h.button(r.minus, "-", enabledBG(r.canDec))
		h.button(r.plus, "+", enabledBG(r.canInc))
	}
}

func enabledBG(ok bool) color.RGBA {
	if ok {
		return buttonBG
	}
	return buttonOff
}

func (h *HUD) button(rect image.Rectangle, label string, bg color.RGBA) {
	h.fillRect(rect, bg)
	x := rect.Min.X + (rect.Dx()-textWidth(label))/2
	text.Draw(h.panel, label, basicfont.Face7x13, x, rect.Min.Y+(rect.Dy()+9)/2, textBright)
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil || rect.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}
