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

	"github.com/paulmach/orb"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/coverage"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
)

var (
	// ErrNonPlanarPatch is returned for surfaces with curved patches.
	ErrNonPlanarPatch = errors.New("render: only planar surface patches are supported")

	// ErrStyling is returned when a styling cannot be used with the
	// method it was passed to.
	ErrStyling = errors.New("render: styling not usable here")
)

// Renderer draws styled geometries for one render pass.
type Renderer struct {
	ctx *PassContext

	Projector *Projector
	Clipper   *Clipper
	Strokes   *StrokeEngine
	Fills     *FillEngine
	Symbols   *SymbolRenderer
	Labels    *LabelEngine
}

// NewRenderer returns a renderer drawing onto ctx.Canvas.
func NewRenderer(ctx *PassContext) *Renderer {
	r := &Renderer{
		ctx:       ctx,
		Projector: &Projector{ctx: ctx},
		Clipper:   &Clipper{ctx: ctx},
		Strokes:   &StrokeEngine{ctx: ctx},
		Fills:     &FillEngine{ctx: ctx},
		Symbols:   &SymbolRenderer{ctx: ctx},
	}
	r.Strokes.fills, r.Strokes.symbols = r.Fills, r.Symbols
	r.Fills.symbols = r.Symbols
	r.Symbols.fills, r.Symbols.strokes = r.Fills, r.Strokes
	r.Labels = &LabelEngine{r: r}
	if ctx.noView {
		w, h := ctx.Canvas.Size()
		ctx.log().Warn("no usable view envelope, using identity transform",
			"envelope", ctx.Envelope, "width", w, "height", h)
	}
	return r
}

// Render draws g with s, which must be a point, line or polygon
// styling. Failures which only affect the quality of the output are
// logged; the returned error reports geometries which could not be drawn
// at all.
func (r *Renderer) Render(s style.Styling, g geometry.Geometry) error {
	if g == nil {
		return nil
	}
	switch g := g.(type) {
	case *geometry.Reference:
		target, err := g.Resolve()
		if err != nil {
			return fmt.Errorf("render: reference %q: %w", g.ID, err)
		}
		return r.Render(s, target)
	case *geometry.Multi:
		var errs []error
		for _, m := range g.Members {
			errs = append(errs, r.Render(s, m))
		}
		return errors.Join(errs...)
	}

	switch s := s.(type) {
	case *style.PointStyling:
		return r.renderPoints(s, g)
	case *style.LineStyling:
		return r.renderLines(s, g)
	case *style.PolygonStyling:
		return r.renderPolygons(s, g)
	}
	return fmt.Errorf("%w: %T in Render", ErrStyling, s)
}

// prepare projects and clips g. A nil result means that nothing is
// visible.
func (r *Renderer) prepare(g geometry.Geometry) (geometry.Geometry, error) {
	g = r.Projector.Transform(g)
	return r.Clipper.Clip(g)
}

func (r *Renderer) renderPoints(s *style.PointStyling, g geometry.Geometry) error {
	if s.Graphic == nil {
		return nil
	}
	if p, ok := g.(*geometry.Point); ok {
		// points are never clipped
		q := r.ctx.View.Apply(r.Projector.Transform(p).(*geometry.Point).Coord)
		r.Symbols.Render(s.Graphic, s.UOM, q.X, q.Y)
		return nil
	}
	if sf, ok := g.(*geometry.Surface); ok {
		if err := checkPlanar(sf); err != nil {
			return err
		}
	}

	g, err := r.prepare(g)
	if g == nil || err != nil {
		return err
	}
	for _, q := range r.vertices(g, nil) {
		r.Symbols.Render(s.Graphic, s.UOM, q.X, q.Y)
	}
	return nil
}

// vertices returns the pixel positions of the control points of all
// curves in g, and of the points themselves.
func (r *Renderer) vertices(g geometry.Geometry, out []vec.Vec2) []vec.Vec2 {
	add := func(pts []orb.Point) {
		for _, p := range pts {
			out = append(out, r.ctx.View.Apply(p))
		}
	}
	switch g := g.(type) {
	case *geometry.Point:
		add([]orb.Point{g.Coord})
	case *geometry.Curve:
		add(g.ControlPoints())
	case *geometry.Ring:
		pts := g.ControlPoints()
		if n := len(pts); n > 1 && pts[0] == pts[n-1] {
			pts = pts[:n-1]
		}
		add(pts)
	case *geometry.Surface:
		for _, p := range g.Patches {
			for _, ring := range p.Rings() {
				out = r.vertices(ring, out)
			}
		}
	case *geometry.Multi:
		for _, m := range g.Members {
			out = r.vertices(m, out)
		}
	}
	return out
}

func (r *Renderer) renderLines(s *style.LineStyling, g geometry.Geometry) error {
	if s.Stroke == nil {
		return nil
	}
	switch g := g.(type) {
	case *geometry.Point:
		r.ctx.log().Debug("line styling applied to a point, nothing drawn")
		return nil
	case *geometry.Surface:
		if err := checkPlanar(g); err != nil {
			return err
		}
	}

	g, err := r.prepare(g)
	if g == nil || err != nil {
		return err
	}
	g = r.Projector.Linearize(g)
	for _, pl := range r.polylines(g, nil) {
		r.Strokes.Apply(s.Stroke, s.UOM, pl, s.PerpendicularOffset, s.OffsetType)
	}
	return nil
}

func (r *Renderer) renderPolygons(s *style.PolygonStyling, g geometry.Geometry) error {
	switch g := g.(type) {
	case *geometry.Surface:
		if err := checkPlanar(g); err != nil {
			return err
		}
	case *geometry.Point, *geometry.Curve, *geometry.Ring:
		r.ctx.log().Warn("polygon styling applied to a non-surface geometry", "type", fmt.Sprintf("%T", g))
	}

	g, err := r.prepare(g)
	if g == nil || err != nil {
		return err
	}
	g = r.Projector.Linearize(g)

	units := r.ctx.Units
	dx := units.Resolve(s.Displacement[0], s.UOM)
	dy := -units.Resolve(s.Displacement[1], s.UOM)
	c := r.ctx.Canvas
	if dx != 0 || dy != 0 {
		c.Push(matrix.Translate(dx, dy))
		defer c.Pop()
	}

	paint := r.Fills.Paint(s.Fill, s.UOM)
	for _, shape := range r.shapes(g, nil) {
		if s.PerpendicularOffset != 0 {
			d := units.Resolve(s.PerpendicularOffset, s.UOM)
			for i := range shape {
				shape[i] = Offset(shape[i], d, s.OffsetType)
			}
		}
		if canvas.Inked(paint) {
			c.Fill(appendPath(nil, shape...), canvas.EvenOdd, paint)
		}
		for _, ring := range shape {
			r.Strokes.Apply(s.Stroke, s.UOM, ring, 0, s.OffsetType)
		}
	}
	return nil
}

func checkPlanar(s *geometry.Surface) error {
	for _, p := range s.Patches {
		if p.Kind != geometry.PolygonPatch {
			return ErrNonPlanarPatch
		}
	}
	return nil
}

// polylines converts the curves, rings and surface boundaries in a
// linearized geometry into pixel space.
func (r *Renderer) polylines(g geometry.Geometry, out []Polyline) []Polyline {
	switch g := g.(type) {
	case *geometry.Curve:
		out = append(out, r.polyline(g.ControlPoints(), false))
	case *geometry.Ring:
		out = append(out, r.polyline(g.ControlPoints(), true))
	case *geometry.Surface:
		for _, p := range g.Patches {
			for _, ring := range p.Rings() {
				out = append(out, r.polyline(ring.ControlPoints(), true))
			}
		}
	case *geometry.Multi:
		for _, m := range g.Members {
			out = r.polylines(m, out)
		}
	}
	return out
}

// shapes groups the rings of every patch in g, for filling. Open curves
// are closed implicitly.
func (r *Renderer) shapes(g geometry.Geometry, out [][]Polyline) [][]Polyline {
	switch g := g.(type) {
	case *geometry.Curve:
		out = append(out, []Polyline{r.polyline(g.ControlPoints(), true)})
	case *geometry.Ring:
		out = append(out, []Polyline{r.polyline(g.ControlPoints(), true)})
	case *geometry.Surface:
		for _, p := range g.Patches {
			var shape []Polyline
			for _, ring := range p.Rings() {
				shape = append(shape, r.polyline(ring.ControlPoints(), true))
			}
			out = append(out, shape)
		}
	case *geometry.Multi:
		for _, m := range g.Members {
			out = r.shapes(m, out)
		}
	}
	return out
}

func (r *Renderer) polyline(pts []orb.Point, closed bool) Polyline {
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	res := Polyline{Points: make([]vec.Vec2, len(pts)), Closed: closed}
	for i, p := range pts {
		res.Points[i] = r.ctx.View.Apply(p)
	}
	return res
}

// RenderText queues a label showing txt for g. The label is drawn by
// FlushLabels.
func (r *Renderer) RenderText(s *style.TextStyling, txt string, g geometry.Geometry) error {
	return r.Labels.Add(s, txt, g)
}

// FlushLabels draws all queued labels, above everything drawn so far.
func (r *Renderer) FlushLabels() {
	r.Labels.Flush()
}

// RenderRaster styles the raster and draws it into its envelope. If the
// styling has an outline, the footprint of the raster is drawn with it.
func (r *Renderer) RenderRaster(data coverage.Raster, s *style.RasterStyling) error {
	res, err := coverage.Apply(data, s)
	if err != nil {
		return err
	}

	env := res.Envelope
	if env == nil {
		return fmt.Errorf("render: raster without envelope")
	}
	footprint := r.Projector.Transform(env.Surface())
	b := footprint.Bound()
	tl := r.ctx.View.Apply(orb.Point{b.Min[0], b.Max[1]})
	br := r.ctx.View.Apply(orb.Point{b.Max[0], b.Min[1]})
	r.ctx.Canvas.DrawImage(res.Image, rectOf(tl, br), res.Opacity)

	switch outline := s.Outline.(type) {
	case nil:
		return nil
	case *style.LineStyling, *style.PolygonStyling:
		return r.Render(outline, footprint)
	}
	return fmt.Errorf("%w: %T as raster outline", ErrStyling, s.Outline)
}
