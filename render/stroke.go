// seehuhn.de/go/maprender - a styled 2D map renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package render

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/style"
)

// minWidth is the smallest stroke width, in pixels, which is drawn.
const minWidth = 1e-6

// StrokeEngine draws lines.
type StrokeEngine struct {
	ctx     *PassContext
	fills   *FillEngine
	symbols *SymbolRenderer
}

// Apply strokes pl with st. Lengths in st and the perpendicular offset
// are given in the unit uom. A nil stroke or a stroke of zero width
// draws nothing.
func (s *StrokeEngine) Apply(st *style.Stroke, uom style.UOM, pl Polyline, offset float64, kind style.OffsetType) {
	if st == nil {
		return
	}
	if offset != 0 {
		pl = Offset(pl, s.ctx.Units.Resolve(offset, uom), kind)
	}
	if st.Graphic != nil {
		s.graphicStroke(st.Graphic, uom, pl)
		return
	}
	s.stroke(s.ctx.Canvas, st, uom, appendPath(nil, pl))
}

// stroke draws p with a solid, dashed or graphic-filled pen.
func (s *StrokeEngine) stroke(c canvas.Canvas, st *style.Stroke, uom style.UOM, p *path.Data) {
	spec, paint := s.pen(st, uom)
	if spec.Width < minWidth || !canvas.Inked(paint) {
		return
	}
	c.Stroke(p, spec, paint)
}

// pen converts a stroke style into canvas parameters.
func (s *StrokeEngine) pen(st *style.Stroke, uom style.UOM) (canvas.StrokeSpec, canvas.Paint) {
	if st == nil {
		return canvas.StrokeSpec{}, canvas.Transparent{}
	}
	units := s.ctx.Units
	spec := canvas.StrokeSpec{
		Width: units.Resolve(st.Width, uom),
		Cap:   st.Cap,
		Join:  st.Join,
	}
	if spec.Width < minWidth {
		return canvas.StrokeSpec{}, canvas.Transparent{}
	}
	if len(st.Dash) > 0 {
		spec.Dash = make([]float64, len(st.Dash))
		for i, v := range st.Dash {
			spec.Dash[i] = units.Resolve(v, uom)
		}
		spec.DashPhase = units.Resolve(st.DashOffset, uom)
	}

	var paint canvas.Paint = canvas.Solid{Color: st.Color}
	if st.Fill != nil {
		paint = s.fills.Paint(&style.Fill{Graphic: st.Fill}, uom)
	}
	return spec, paint
}

// graphicStroke places copies of a graphic along pl.
func (s *StrokeEngine) graphicStroke(gs *style.GraphicStroke, uom style.UOM, pl Polyline) {
	g := gs.Graphic
	if g == nil || (g.Mark == nil && g.Image == nil && g.ImageURL == "") {
		s.ctx.log().Warn("graphic stroke without mark or image, skipped")
		return
	}
	bounds := s.fills.GraphicBounds(g, 0, 0, uom)
	unit := bounds.URx - bounds.LLx
	if unit <= 0 {
		return
	}

	m := newMeasure(pl)
	place := func(at float64) {
		p, t := m.at(at)
		rot := 0.0
		if gs.Rotate {
			rot = math.Atan2(t.Y, t.X) * 180 / math.Pi
		}
		s.symbols.draw(s.ctx.Canvas, g, uom, p.X, p.Y, rot)
	}

	units := s.ctx.Units
	if gs.Mode == style.AtPosition {
		if m.total > 0 {
			place(m.total * max(0, min(100, gs.PositionPercentage)) / 100)
		}
		return
	}
	gap := max(0, units.Resolve(gs.Gap, uom))
	for pos := max(0, units.Resolve(gs.InitialGap, uom)); pos+unit <= m.total; pos += unit + gap {
		place(pos + unit/2)
	}
}

// measure locates points on a polyline by their distance from the start.
type measure struct {
	pts   []vec.Vec2
	dist  []float64
	total float64
}

func newMeasure(pl Polyline) *measure {
	m := &measure{}
	pts := pl.Points
	if pl.Closed && len(pts) > 0 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	for i, p := range pts {
		if i > 0 {
			m.total += p.Sub(pts[i-1]).Length()
		}
		m.pts = append(m.pts, p)
		m.dist = append(m.dist, m.total)
	}
	return m
}

// at returns the point at distance d along the line, together with the
// unit tangent there.
func (m *measure) at(d float64) (vec.Vec2, vec.Vec2) {
	n := len(m.pts)
	switch n {
	case 0:
		return vec.Vec2{}, vec.Vec2{X: 1}
	case 1:
		return m.pts[0], vec.Vec2{X: 1}
	}
	i := 1
	for i < n-1 && m.dist[i] < d {
		i++
	}
	a, b := m.pts[i-1], m.pts[i]
	seg := m.dist[i] - m.dist[i-1]
	t := b.Sub(a)
	if seg <= 0 {
		return a, vec.Vec2{X: 1}
	}
	f := max(0, min(1, (d-m.dist[i-1])/seg))
	return a.Add(t.Mul(f)), t.Mul(1 / seg)
}
