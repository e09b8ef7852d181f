package ui

import (
	"image"
	"math"
	"strconv"

	"toromap/internal/core"
)

// statsGroup is the snapshot section drawn as a compact table instead of
// settings rows.
const statsGroup = "Stats"

// Panel metrics in pixels. glyphWidth matches basicfont.Face7x13.
const (
	panelPadding = 12
	glyphWidth   = 7
	titleHeight  = 24
	tabHeight    = 18
	tabPad       = 5
	tabGap       = 4
	headerHeight = 22
	settingRow   = 26
	statRow      = 15
	noteRow      = 15
	buttonSize   = 20
	buttonGap    = 4
	toggleWidth  = 36
	groupGap     = 6
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowSetting
	rowToggle
	rowValue
	rowStat
	rowNote
)

// panelRow is one laid-out line of the panel.
type panelRow struct {
	kind  rowKind
	top   int
	label string
	value string
	key   string

	// Button areas; empty rectangles are not clickable.
	minus, plus, toggle image.Rectangle
	canDec, canInc      bool
	on                  bool
}

type layerTab struct {
	name   string
	rect   image.Rectangle
	active bool
}

// panelLayout positions every element of the panel in panel-local pixels.
type panelLayout struct {
	width  int
	title  string
	tabs   []layerTab
	rows   []panelRow
	height int
}

// hitTarget is what a click landed on. A zero value is empty space.
type hitTarget struct {
	layer string
	key   string
	dir   int
	flip  bool
}

// layoutPanel lays out the title, the layer tabs, then one section per
// snapshot group. Settings with a control get buttons; the rest are
// read-only.
func layoutPanel(width int, title string, snap core.ParameterSnapshot, controls map[string]core.ParameterControl, layers []string, active string) panelLayout {
	l := panelLayout{width: width, title: title}
	y := panelPadding + titleHeight

	x := panelPadding
	for _, name := range layers {
		w := textWidth(name) + 2*tabPad
		if x > panelPadding && x+w > width-panelPadding {
			x = panelPadding
			y += tabHeight + tabGap
		}
		l.tabs = append(l.tabs, layerTab{
			name:   name,
			rect:   image.Rect(x, y, x+w, y+tabHeight),
			active: name == active,
		})
		x += w + tabGap
	}
	if len(l.tabs) > 0 {
		y += tabHeight + groupGap
	}

	for _, g := range snap.Groups {
		l.rows = append(l.rows, panelRow{kind: rowHeader, top: y, label: g.Name})
		y += headerHeight
		for _, p := range g.Params {
			if g.Name == statsGroup {
				l.rows = append(l.rows, panelRow{kind: rowStat, top: y, label: p.Label, value: statValue(p), key: p.Key})
				y += statRow
				continue
			}
			row := settingRowFor(width, y, p, controls)
			l.rows = append(l.rows, row)
			if row.kind == rowValue {
				y += statRow
			} else {
				y += settingRow
			}
		}
		if g.Summary != "" {
			l.rows = append(l.rows, panelRow{kind: rowNote, top: y, label: g.Summary})
			y += noteRow
		}
		y += groupGap
	}
	l.height = y + panelPadding
	return l
}

func settingRowFor(width, top int, p core.Parameter, controls map[string]core.ParameterControl) panelRow {
	row := panelRow{kind: rowValue, top: top, label: p.Label, value: p.Value, key: p.Key}
	ctrl, ok := controls[p.Key]
	if !ok {
		return row
	}
	right := width - panelPadding
	buttonY := top + (settingRow-buttonSize)/2
	switch ctrl.Type {
	case core.ParamTypeBool:
		row.kind = rowToggle
		row.on = p.Value == "true"
		row.value = "off"
		if row.on {
			row.value = "on"
		}
		row.toggle = image.Rect(right-toggleWidth, buttonY, right, buttonY+buttonSize)
	case core.ParamTypeInt, core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			row.value = "--"
			return row
		}
		row.kind = rowSetting
		row.value = formatSetting(ctrl, v)
		row.plus = image.Rect(right-buttonSize, buttonY, right, buttonY+buttonSize)
		row.minus = image.Rect(row.plus.Min.X-buttonGap-buttonSize, buttonY, row.plus.Min.X-buttonGap, buttonY+buttonSize)
		_, row.canDec = stepValue(ctrl, v, -1)
		_, row.canInc = stepValue(ctrl, v, 1)
	}
	return row
}

// hit resolves a click at panel-local (x, y).
func (l *panelLayout) hit(x, y int) hitTarget {
	pt := image.Pt(x, y)
	for _, t := range l.tabs {
		if pt.In(t.rect) {
			return hitTarget{layer: t.name}
		}
	}
	for _, r := range l.rows {
		switch {
		case r.kind == rowToggle && pt.In(r.toggle):
			return hitTarget{key: r.key, flip: true}
		case r.kind == rowSetting && r.canDec && pt.In(r.minus):
			return hitTarget{key: r.key, dir: -1}
		case r.kind == rowSetting && r.canInc && pt.In(r.plus):
			return hitTarget{key: r.key, dir: 1}
		}
	}
	return hitTarget{}
}

// stepValue moves v one step in dir and clamps it to the control bounds.
// It reports false when the clamped value does not move.
func stepValue(c core.ParameterControl, v float64, dir int) (float64, bool) {
	step := c.Step
	if c.Type == core.ParamTypeInt {
		step = math.Round(step)
		if step < 1 {
			step = 1
		}
	} else if step <= 0 {
		step = 0.05
	}
	next := v + float64(dir)*step
	if c.HasMin && next < c.Min {
		next = c.Min
	}
	if c.HasMax && next > c.Max {
		next = c.Max
	}
	if c.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	return next, math.Abs(next-v) > 1e-9
}

// formatSetting prints v with as many decimals as the step needs.
func formatSetting(c core.ParameterControl, v float64) string {
	if c.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	prec := 0
	for s := c.Step; prec < 4 && s > 0 && math.Abs(s-math.Round(s)) > 1e-9; s *= 10 {
		prec++
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func statValue(p core.Parameter) string {
	if p.Type != core.ParamTypeFloat {
		return p.Value
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return p.Value
	}
	return strconv.FormatFloat(100*v, 'f', 1, 64) + "%"
}

func textWidth(s string) int { return len(s) * glyphWidth }
