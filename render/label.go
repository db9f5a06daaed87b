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
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
	"seehuhn.de/go/maprender/text"
)

// defaultFontSize is used for fonts without a size, in the unit of the
// styling.
const defaultFontSize = 10

var (
	defaultTextFill = canvas.Solid{Color: color.NRGBA{A: 255}}
	defaultHaloFill = canvas.Solid{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}
)

// Label is a laid out piece of text, waiting to be drawn.
type Label struct {
	Text    string
	Styling *style.TextStyling
	Line    *text.Line

	// Origin is the pixel location the label belongs to. For labels
	// along lines, this is the position of the first glyph.
	Origin vec.Vec2

	// Glyphs holds one transformation per glyph of Line, mapping glyph
	// coordinates to pixels.
	Glyphs []matrix.Matrix

	// Box is the pixel area covered by the label.
	Box rect.Rect

	// line maps the whole text line to pixels, for labels at points.
	line *matrix.Matrix
}

// LabelEngine places labels. Labels are only drawn by Flush, after all
// other content of the pass.
type LabelEngine struct {
	r *Renderer

	pending []*Label
	placed  []rect.Rect
}

// Pending returns the labels waiting for Flush.
func (l *LabelEngine) Pending() []*Label {
	return l.pending
}

// Add lays out txt for g. Points get a label at their location, lines
// and polygon outlines get labels along them if the styling has a line
// placement, polygons get labels at interior points if the styling asks
// for automatic placement. All other geometries are labelled at their
// centroid.
func (l *LabelEngine) Add(s *style.TextStyling, txt string, g geometry.Geometry) error {
	ctx := l.r.ctx
	if s == nil || txt == "" || g == nil {
		ctx.log().Debug("label without text or geometry skipped", "text", txt)
		return nil
	}
	switch g := g.(type) {
	case *geometry.Reference:
		target, err := g.Resolve()
		if err != nil {
			return fmt.Errorf("render: reference %q: %w", g.ID, err)
		}
		return l.Add(s, txt, target)
	case *geometry.Multi:
		var errs []error
		for _, m := range g.Members {
			errs = append(errs, l.Add(s, txt, m))
		}
		return errors.Join(errs...)
	case *geometry.Surface:
		if err := checkPlanar(g); err != nil {
			return err
		}
	}

	g, err := l.r.prepare(g)
	if g == nil || err != nil {
		return err
	}
	g = l.r.Projector.Linearize(g)

	size := s.Font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	face := ctx.Fonts.Face(s.Font, ctx.Units.Resolve(size, s.UOM))
	line, err := text.Layout(face, txt)
	if err != nil {
		return err
	}
	l.place(s, txt, line, g)
	return nil
}

func (l *LabelEngine) place(s *style.TextStyling, txt string, line *text.Line, g geometry.Geometry) {
	view := l.r.ctx.View
	switch g := g.(type) {
	case *geometry.Multi:
		for _, m := range g.Members {
			l.place(s, txt, line, m)
		}
		return
	case *geometry.Point:
		l.atPoint(s, txt, line, view.Apply(g.Coord))
		return
	case *geometry.Curve, *geometry.Ring:
		if s.LinePlacement != nil {
			for _, pl := range l.r.polylines(g, nil) {
				l.alongPath(s, txt, line, pl)
			}
			return
		}
	case *geometry.Surface:
		if s.LinePlacement != nil {
			for _, pl := range l.r.polylines(g, nil) {
				l.alongPath(s, txt, line, pl)
			}
			return
		}
		if s.AutoPlacement {
			pts, err := l.r.ctx.Engine.InteriorPoints(g)
			if err == nil {
				for _, p := range pts {
					l.atPoint(s, txt, line, view.Apply(p))
				}
				return
			}
			l.r.ctx.log().Debug("no interior points, using centroid", "error", err)
		}
	}

	og, err := geometry.ToOrb(g)
	if err != nil {
		l.r.ctx.log().Warn("cannot place label", "text", txt, "error", err)
		return
	}
	c, _ := planar.CentroidArea(og)
	l.atPoint(s, txt, line, view.Apply(c))
}

// atPoint queues a label with its anchor at p.
func (l *LabelEngine) atPoint(s *style.TextStyling, txt string, line *text.Line, p vec.Vec2) {
	units := l.r.ctx.Units
	px := p.X + units.Resolve(s.Displacement[0], s.UOM)
	py := p.Y - units.Resolve(s.Displacement[1], s.UOM)
	x := px - s.Anchor[0]*line.Width
	baseline := py + s.Anchor[1]*line.Height() - line.Descent

	m := matrix.Translate(x, baseline)
	if s.Rotation != 0 {
		m = m.Mul(rotateAbout(px, py, s.Rotation))
	}
	lb := &Label{
		Text:    txt,
		Styling: s,
		Line:    line,
		Origin:  p,
		line:    &m,
		Box:     boundsOf(m, 0, -line.Ascent, line.Width, line.Descent),
	}
	for _, g := range line.Glyphs {
		lb.Glyphs = append(lb.Glyphs, matrix.Translate(g.X, 0).Mul(m))
	}
	l.pending = append(l.pending, lb)
}

// alongPath queues labels whose glyphs follow pl, centred on the line.
func (l *LabelEngine) alongPath(s *style.TextStyling, txt string, line *text.Line, pl Polyline) {
	if line.Height() < 1e-9 || len(line.Glyphs) == 0 {
		return
	}
	units := l.r.ctx.Units
	lp := s.LinePlacement
	if lp.PerpendicularOffset != 0 {
		pl = Offset(pl, units.Resolve(lp.PerpendicularOffset, s.UOM), style.OffsetStandard)
	}
	if n := len(pl.Points); !pl.Closed && n > 1 && pl.Points[n-1].X < pl.Points[0].X {
		// keep the text upright
		rev := make([]vec.Vec2, n)
		for i, q := range pl.Points {
			rev[n-1-i] = q
		}
		pl.Points = rev
	}

	m := newMeasure(pl)
	shift := (line.Ascent - line.Descent) / 2
	gap := max(0, units.Resolve(lp.Gap, s.UOM))
	placed := false
	for pos := max(0, units.Resolve(lp.InitialGap, s.UOM)); pos+line.Width <= m.total; pos += line.Width + gap {
		lb := &Label{Text: txt, Styling: s, Line: line}
		var box rect.Rect
		for i, g := range line.Glyphs {
			p, t := m.at(pos + g.X + g.Advance/2)
			origin := p.Sub(t.Mul(g.Advance / 2))
			angle := math.Atan2(t.Y, t.X) * 180 / math.Pi
			gm := matrix.Translate(0, shift).RotateDeg(angle).Translate(origin.X, origin.Y)
			if i == 0 {
				lb.Origin = origin
			}
			lb.Glyphs = append(lb.Glyphs, gm)
			box.Extend(boundsOf(gm, 0, -line.Ascent, g.Advance, line.Descent))
		}
		lb.Box = box
		l.pending = append(l.pending, lb)
		placed = true
		if !lp.Repeat {
			break
		}
	}
	if !placed {
		l.r.ctx.log().Debug("line too short for label", "text", txt)
	}
}

// Flush draws all pending labels and empties the queue.
func (l *LabelEngine) Flush() {
	for _, lb := range l.pending {
		if l.r.ctx.Options.LabelCollisions {
			if l.collides(lb.Box) {
				l.r.ctx.log().Debug("label dropped, overlaps earlier label", "text", lb.Text)
				continue
			}
			l.placed = append(l.placed, lb.Box)
		}
		l.draw(lb)
	}
	l.pending = nil
}

func (l *LabelEngine) collides(b rect.Rect) bool {
	for _, p := range l.placed {
		if b.LLx < p.URx && p.LLx < b.URx && b.LLy < p.URy && p.LLy < b.URy {
			return true
		}
	}
	return false
}

func (l *LabelEngine) draw(lb *Label) {
	c := l.r.ctx.Canvas
	s := lb.Styling
	line := lb.Line

	if h := s.Halo; h != nil {
		var paint canvas.Paint = defaultHaloFill
		if h.Fill != nil {
			paint = l.r.Fills.Paint(h.Fill, s.UOM)
		}
		radius := l.r.ctx.Units.Resolve(h.Radius, s.UOM)
		if radius < 0 {
			l.boxHalo(lb, -radius, paint)
		} else {
			spec := canvas.StrokeSpec{
				Width: max(1, 2*radius),
				Cap:   graphics.LineCapRound,
				Join:  graphics.LineJoinRound,
			}
			for i, g := range line.Glyphs {
				if len(g.Outline.Cmds) == 0 {
					continue
				}
				c.Push(lb.Glyphs[i])
				c.Stroke(g.Outline, spec, paint)
				c.Pop()
			}
		}
	}

	var paint canvas.Paint = defaultTextFill
	if s.Fill != nil {
		paint = l.r.Fills.Paint(s.Fill, s.UOM)
	}
	for i, g := range line.Glyphs {
		if len(g.Outline.Cmds) == 0 {
			continue
		}
		c.Push(lb.Glyphs[i])
		c.Fill(g.Outline, canvas.NonZero, paint)
		c.Pop()
	}
}

// boxHalo fills a rectangle with the given margin behind the text.
func (l *LabelEngine) boxHalo(lb *Label, margin float64, paint canvas.Paint) {
	c := l.r.ctx.Canvas
	line := lb.Line
	box := func(w float64) *path.Data {
		return appendPath(nil, Polyline{Points: []vec.Vec2{
			{X: -margin, Y: -line.Ascent - margin},
			{X: w + margin, Y: -line.Ascent - margin},
			{X: w + margin, Y: line.Descent + margin},
			{X: -margin, Y: line.Descent + margin},
		}, Closed: true})
	}
	if lb.line != nil {
		c.Push(*lb.line)
		c.Fill(box(line.Width), canvas.NonZero, paint)
		c.Pop()
		return
	}
	for i, g := range line.Glyphs {
		c.Push(lb.Glyphs[i])
		c.Fill(box(g.Advance), canvas.NonZero, paint)
		c.Pop()
	}
}

// boundsOf returns the pixel bounds of the rectangle (x0, y0)-(x1, y1)
// after applying m.
func boundsOf(m matrix.Matrix, x0, y0, x1, y1 float64) rect.Rect {
	var res rect.Rect
	for i, p := range [4]vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}} {
		x, y := m.Apply(p.X, p.Y)
		if i == 0 {
			res = rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
			continue
		}
		res.Add(x, y)
	}
	return res
}
