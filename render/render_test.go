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
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/coverage"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
)

var red = color.NRGBA{R: 255, A: 255}

// newTestRenderer returns a renderer for a 100x100 canvas showing the
// world square (0, 0)-(100, 100), so that world x equals pixel x and
// pixel y is 100 minus world y.
func newTestRenderer(t *testing.T, opt Options) (*Renderer, *canvas.Recorder) {
	t.Helper()
	rec := canvas.NewRecorder(100, 100)
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{100, 100}, "")
	ctx, err := NewPassContext(rec, env, geometry.NewPlanar(), opt)
	require.NoError(t, err)
	return NewRenderer(ctx), rec
}

func TestMissingEnvelopeUsesPassLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx, err := NewPassContext(canvas.NewRecorder(10, 10), nil, geometry.NewPlanar(), Options{})
	require.NoError(t, err)
	assert.Equal(t, matrix.Identity, ctx.View.Matrix)
	ctx.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	NewRenderer(ctx)
	assert.Contains(t, buf.String(), "no usable view envelope")
}

func redMark(size float64) *style.Graphic {
	return &style.Graphic{
		Size:   size,
		Anchor: [2]float64{0.5, 0.5},
		Mark: &style.Mark{
			WellKnownName: style.Square,
			Fill:          &style.Fill{Color: red},
		},
	}
}

func count(ops []canvas.Op, kind canvas.OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func TestRenderPolygon(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.PolygonStyling{Fill: &style.Fill{Color: red}}
	g := geometry.NewPolygon("", []orb.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}})

	require.NoError(t, r.Render(s, g))
	require.Len(t, rec.Ops, 1)
	op := rec.Ops[0]
	assert.Equal(t, canvas.OpFill, op.Kind)
	assert.Equal(t, canvas.EvenOdd, op.Rule)
	assert.Equal(t, canvas.Solid{Color: red}, op.Paint)
	assert.InDelta(t, 10, op.Path.Coords[0].X, 1e-9)
	assert.InDelta(t, 90, op.Path.Coords[0].Y, 1e-9)
}

func TestPolygonDisplacement(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.PolygonStyling{
		Fill:         &style.Fill{Color: red},
		Displacement: [2]float64{5, 5},
	}
	g := geometry.NewPolygon("", []orb.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}})

	require.NoError(t, r.Render(s, g))
	require.Len(t, rec.Ops, 1)
	assert.Equal(t, matrix.Translate(5, -5), rec.Ops[0].CTM)
	assert.Zero(t, rec.Depth())
}

func TestZeroWidthStroke(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	line := geometry.NewLineString("", orb.Point{10, 10}, orb.Point{90, 90})

	require.NoError(t, r.Render(&style.LineStyling{Stroke: &style.Stroke{Color: red}}, line))
	assert.Empty(t, rec.Ops)

	poly := geometry.NewPolygon("", []orb.Point{{10, 10}, {20, 10}, {20, 20}})
	s := &style.PolygonStyling{Stroke: &style.Stroke{Color: red, Width: 0}}
	require.NoError(t, r.Render(s, poly))
	assert.Empty(t, rec.Inked())
}

func TestLineWithoutStroke(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	line := geometry.NewLineString("", orb.Point{10, 10}, orb.Point{90, 90})

	require.NoError(t, r.Render(&style.LineStyling{}, line))
	assert.Empty(t, rec.Ops)
	assert.Zero(t, r.Clipper.Skipped(), "nothing to draw, so nothing is clipped")
}

func TestDash(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{
		Color:      red,
		Width:      2,
		Dash:       []float64{4, 2},
		DashOffset: 1,
	}}
	line := geometry.NewLineString("", orb.Point{10, 50}, orb.Point{90, 50})

	require.NoError(t, r.Render(s, line))
	require.Len(t, rec.Ops, 1)
	op := rec.Ops[0]
	assert.Equal(t, canvas.OpStroke, op.Kind)
	assert.Equal(t, 2.0, op.Stroke.Width)
	assert.Equal(t, []float64{4, 2}, op.Stroke.Dash)
	assert.Equal(t, 1.0, op.Stroke.DashPhase)
}

func TestClipSkipsContained(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{Color: red, Width: 1}}

	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{10, 10}, orb.Point{90, 90})))
	assert.Equal(t, 1, r.Clipper.Skipped())
	assert.Len(t, rec.Ops, 1)

	// the clip area extends 100 pixels beyond the view
	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{-500, 50}, orb.Point{50, 50})))
	assert.Equal(t, 1, r.Clipper.Skipped())
	require.Len(t, rec.Ops, 2)
	assert.InDelta(t, -100, rec.Ops[1].Path.Coords[0].X, 1e-9)

	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{-500, 50}, orb.Point{-400, 50})))
	assert.Len(t, rec.Ops, 2, "invisible lines are dropped")
}

func TestClipIsIdempotent(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	g := geometry.NewPolygon("", []orb.Point{{-500, -500}, {-500, 50}, {50, 50}, {50, -500}})

	once, err := r.Clipper.Clip(g)
	require.NoError(t, err)
	require.NotNil(t, once)
	twice, err := r.Clipper.Clip(once)
	require.NoError(t, err)
	assert.Same(t, once, twice)

	s := once.(*geometry.Surface)
	e := geometry.NewPlanar()
	assert.True(t, e.IsCCW(s.Patches[0].Exterior.ControlPoints()))
	assert.Equal(t, orb.Bound{Min: orb.Point{-100, -100}, Max: orb.Point{50, 50}}, s.Bound())
}

func TestFixOrientation(t *testing.T) {
	e := geometry.NewPlanar()
	cw := []orb.Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}}
	hole := []orb.Point{{1, 1}, {2, 1}, {2, 2}, {1, 2}}

	res, err := FixOrientation(e, geometry.NewPolygon("", cw, hole))
	require.NoError(t, err)
	s := res.(*geometry.Surface)
	assert.True(t, e.IsCCW(s.Patches[0].Exterior.ControlPoints()))
	assert.False(t, e.IsCCW(s.Patches[0].Interior[0].ControlPoints()))

	again, err := FixOrientation(e, s)
	require.NoError(t, err)
	assert.Same(t, s, again)

	m := &geometry.Multi{Members: []geometry.Geometry{s, &geometry.Point{}}}
	res, err = FixOrientation(e, m)
	require.NoError(t, err)
	assert.Same(t, m, res)

	bad := &geometry.Multi{Members: []geometry.Geometry{&geometry.Reference{ID: "x"}}}
	_, err = FixOrientation(e, bad)
	assert.ErrorIs(t, err, ErrUnsupportedMember)

	arc := &geometry.Surface{Patches: []*geometry.Patch{{Exterior: &geometry.Ring{Curve: geometry.Curve{
		Segments: []geometry.Segment{{Kind: geometry.CircleSegment, Points: []orb.Point{{1, 0}, {0, 1}, {-1, 0}}}},
	}}}}}
	_, err = FixOrientation(e, arc)
	assert.ErrorIs(t, err, ErrNonLinearRing)
}

func TestPointsAreNotClipped(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.PointStyling{Graphic: redMark(4)}

	require.NoError(t, r.Render(s, &geometry.Point{Coord: orb.Point{1000, 1000}}))
	require.Len(t, rec.Ops, 1)
	assert.Equal(t, canvas.OpFill, rec.Ops[0].Kind)
	assert.Equal(t, matrix.Translate(1000, -900), rec.Ops[0].CTM)
	assert.Zero(t, r.Clipper.Skipped())
}

func TestPointStylingOnLine(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.PointStyling{Graphic: redMark(4)}
	line := geometry.NewLineString("", orb.Point{10, 10}, orb.Point{50, 50}, orb.Point{90, 10})

	require.NoError(t, r.Render(s, line))
	assert.Equal(t, 3, count(rec.Ops, canvas.OpFill))
}

func TestProjection(t *testing.T) {
	rec := canvas.NewRecorder(100, 100)
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{1e6, 1e6}, geometry.WebMercator)
	ctx, err := NewPassContext(rec, env, geometry.NewPlanar(), Options{})
	require.NoError(t, err)
	r := NewRenderer(ctx)

	unknown := geometry.NewLineString("EPSG:31467", orb.Point{1, 1}, orb.Point{2, 2})
	assert.Same(t, unknown, r.Projector.Transform(unknown), "failed transforms keep the geometry")

	same := geometry.NewLineString("EPSG:900913", orb.Point{1, 1}, orb.Point{2, 2})
	assert.Same(t, same, r.Projector.Transform(same))

	arc := &geometry.Curve{CRS: geometry.WGS84, Segments: []geometry.Segment{
		{Kind: geometry.ArcSegment, Points: []orb.Point{{1, 0}, {2, 1}, {3, 0}}},
	}}
	res := r.Projector.Transform(arc)
	require.NotSame(t, arc, res)
	assert.Equal(t, geometry.WebMercator, res.SRS())
	assert.True(t, geometry.IsLinear(res))
	assert.Greater(t, res.Bound().Max[0], 3e5)
}

func TestNonPlanarPatch(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	g := geometry.NewPolygon("", []orb.Point{{10, 10}, {20, 10}, {20, 20}})
	g.Patches[0].Kind = geometry.CurvedPatch

	err := r.Render(&style.PolygonStyling{Fill: &style.Fill{Color: red}}, g)
	assert.ErrorIs(t, err, ErrNonPlanarPatch)
	err = r.Render(&style.LineStyling{Stroke: &style.Stroke{Color: red, Width: 1}}, g)
	assert.ErrorIs(t, err, ErrNonPlanarPatch)
	err = r.Render(&style.PointStyling{Graphic: redMark(4)}, g)
	assert.ErrorIs(t, err, ErrNonPlanarPatch)
	err = r.Labels.Add(labelStyle(), "curved", g)
	assert.ErrorIs(t, err, ErrNonPlanarPatch)
	assert.Empty(t, r.Labels.Pending())
	assert.Empty(t, rec.Ops)
}

func TestReferenceAndMulti(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{Color: red, Width: 1}}
	line := geometry.NewLineString("", orb.Point{10, 10}, orb.Point{90, 90})
	lookup := func(id string) (geometry.Geometry, error) {
		if id == "l1" {
			return line, nil
		}
		return nil, nil
	}

	m := &geometry.Multi{Members: []geometry.Geometry{
		line,
		&geometry.Reference{ID: "l1", Lookup: lookup},
	}}
	require.NoError(t, r.Render(s, m))
	assert.Len(t, rec.Ops, 2)

	err := r.Render(s, &geometry.Reference{ID: "missing", Lookup: lookup})
	assert.ErrorIs(t, err, geometry.ErrUnresolved)
}

func TestRenderRejectsTextStyling(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	err := r.Render(&style.TextStyling{}, &geometry.Point{})
	assert.ErrorIs(t, err, ErrStyling)
}

func TestGraphicFill(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.PolygonStyling{Fill: &style.Fill{Graphic: redMark(4)}}
	g := geometry.NewPolygon("", []orb.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}})

	require.NoError(t, r.Render(s, g))
	require.Len(t, rec.Ops, 1)
	tex, ok := rec.Ops[0].Paint.(*canvas.Texture)
	require.True(t, ok, "graphic fills give a texture")
	assert.Equal(t, image.Pt(-2, -2), tex.Origin)
	assert.Equal(t, image.Rect(0, 0, 4, 4), tex.Tile.Bounds())
}

func TestGraphicBounds(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	f := r.Fills

	g := redMark(10)
	b := f.GraphicBounds(g, 0, 0, style.Pixel)
	assert.Equal(t, -5.0, b.LLx)
	assert.Equal(t, -5.0, b.LLy)
	assert.Equal(t, 5.0, b.URx)
	assert.Equal(t, 5.0, b.URy)

	g.Displacement = [2]float64{2, 3}
	b = f.GraphicBounds(g, 0, 0, style.Pixel)
	assert.Equal(t, -3.0, b.LLx)
	assert.Equal(t, -8.0, b.LLy, "positive displacement moves up")

	g = &style.Graphic{Size: 10, Mark: &style.Mark{}}
	b = f.GraphicBounds(g, 0, 0, style.Pixel)
	assert.Equal(t, 0.0, b.LLx)
	assert.Equal(t, -10.0, b.LLy, "the default anchor is the lower left corner")

	g = &style.Graphic{Size: -1, Mark: &style.Mark{}}
	b = f.GraphicBounds(g, 0, 0, style.Pixel)
	assert.Equal(t, float64(fallbackSize), b.URy-b.LLy)

	g = &style.Graphic{Size: 0, Mark: &style.Mark{}}
	b = f.GraphicBounds(g, 0, 0, style.Pixel)
	assert.Zero(t, b.URx-b.LLx)
}

func TestGraphicSizeFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))

	r, _ := newTestRenderer(t, Options{})
	w, h := r.Fills.graphicSize(&style.Graphic{Size: -1, Image: img}, style.Pixel)
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 10.0, h)
	w, h = r.Fills.graphicSize(&style.Graphic{Size: 5, Image: img}, style.Pixel)
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 5.0, h)

	r, _ = newTestRenderer(t, Options{StrictGraphicSize: true})
	w, h = r.Fills.graphicSize(&style.Graphic{Size: 5, Image: img}, style.Pixel)
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 5.0, h)
}

func TestImageSymbol(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	s := &style.PointStyling{Graphic: &style.Graphic{Size: -1, Image: img}}

	require.NoError(t, r.Render(s, &geometry.Point{Coord: orb.Point{50, 50}}))
	require.Len(t, rec.Ops, 1)
	op := rec.Ops[0]
	assert.Equal(t, canvas.OpImage, op.Kind)
	assert.Equal(t, 50.0, op.Rect.LLx)
	assert.Equal(t, 48.0, op.Rect.LLy)
	assert.Equal(t, 54.0, op.Rect.URx)
	assert.Equal(t, 1.0, op.Opacity)
}

func TestGraphicStroke(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{Graphic: &style.GraphicStroke{
		Graphic: redMark(10),
	}}}

	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{0, 50}, orb.Point{100, 50})))
	assert.Equal(t, 10, count(rec.Ops, canvas.OpFill))

	rec.Ops = nil
	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{0, 50}, orb.Point{5, 50})))
	assert.Empty(t, rec.Ops, "line shorter than the graphic")

	s.Stroke.Graphic.Gap = 10
	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{0, 50}, orb.Point{100, 50})))
	assert.Equal(t, 5, count(rec.Ops, canvas.OpFill))
}

func TestGraphicStrokeAtPosition(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{Graphic: &style.GraphicStroke{
		Graphic:            redMark(10),
		Mode:               style.AtPosition,
		PositionPercentage: 50,
		Rotate:             true,
	}}}

	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{0, 50}, orb.Point{100, 50})))
	require.Len(t, rec.Ops, 1)
	ctm := rec.Ops[0].CTM
	assert.InDelta(t, 50, ctm[4], 1e-9)
	assert.InDelta(t, 50, ctm[5], 1e-9)
}

func TestGraphicStrokeWithoutSymbol(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	s := &style.LineStyling{Stroke: &style.Stroke{Graphic: &style.GraphicStroke{
		Graphic: &style.Graphic{Size: 10},
	}}}
	require.NoError(t, r.Render(s, geometry.NewLineString("", orb.Point{0, 50}, orb.Point{100, 50})))
	assert.Empty(t, rec.Ops)
}

func TestRenderRaster(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{50, 50}, "")
	dem := coverage.NewGrid(5, 5, env, coverage.Band{Name: "height"})
	s := &style.RasterStyling{
		Opacity:      0.5,
		ShadedRelief: &style.ShadedRelief{Altitude: 45, Azimuth: 315},
		Outline:      &style.LineStyling{Stroke: &style.Stroke{Color: red, Width: 1}},
	}

	require.NoError(t, r.RenderRaster(dem, s))
	require.Len(t, rec.Ops, 2)
	op := rec.Ops[0]
	require.Equal(t, canvas.OpImage, op.Kind)
	assert.Equal(t, 0.5, op.Opacity)
	assert.Equal(t, 0.0, op.Rect.LLx)
	assert.Equal(t, 50.0, op.Rect.LLy)
	assert.Equal(t, 50.0, op.Rect.URx)
	assert.Equal(t, 100.0, op.Rect.URy)
	assert.Equal(t, image.Rect(0, 0, 3, 3), op.Image.Bounds())
	assert.Equal(t, canvas.OpStroke, rec.Ops[1].Kind)

	s.Outline = &style.PointStyling{}
	assert.ErrorIs(t, r.RenderRaster(dem, s), ErrStyling)
}

func TestRenderRasterDefaultOpacity(t *testing.T) {
	r, rec := newTestRenderer(t, Options{})
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{50, 50}, "")
	require.NoError(t, r.RenderRaster(coverage.NewGrid(2, 2, env, coverage.Band{}), &style.RasterStyling{}))
	require.Len(t, rec.Ops, 1)
	assert.Equal(t, 1.0, rec.Ops[0].Opacity)
}
