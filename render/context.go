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

// Package render draws styled geometries, labels and rasters onto a
// canvas.
//
// A render pass starts with [NewPassContext], which fixes the canvas,
// the view envelope and the collaborators for the pass. A [Renderer]
// built from the context then draws any number of geometries with
// [Renderer.Render], [Renderer.RenderText] and [Renderer.RenderRaster].
// Labels are collected and only drawn by [Renderer.FlushLabels], which
// must be called once at the end of the pass.
package render

import (
	"log/slog"
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/internal/logging"
	"seehuhn.de/go/maprender/symbol"
	"seehuhn.de/go/maprender/text"
	"seehuhn.de/go/maprender/view"
)

// PassContext holds everything which is fixed for one render pass.
type PassContext struct {
	Canvas canvas.Canvas

	// Envelope is the world area shown on the canvas. It may be nil, in
	// which case world coordinates are used as pixel coordinates.
	Envelope *geometry.Envelope

	View  view.Transform
	Units view.UnitResolver

	// Area is the clipping area: the envelope grown by the guard band.
	// It is nil if there is no envelope.
	Area *geometry.Surface

	Engine  geometry.Engine
	Symbols *symbol.Cache
	Fonts   *text.Library
	Options Options

	// Logger overrides the package logger for this pass, if set.
	Logger *slog.Logger

	// noView is set if the envelope could not be mapped onto the canvas.
	noView bool
}

// NewPassContext prepares a render pass onto c, showing env. The shared
// symbol cache and the built-in fonts are used; the fields can be
// changed before the first Renderer is created.
func NewPassContext(c canvas.Canvas, env *geometry.Envelope, engine geometry.Engine, opt Options) (*PassContext, error) {
	opt = opt.withDefaults()
	fonts, err := defaultFonts()
	if err != nil {
		return nil, err
	}

	w, h := c.Size()
	t, ok := view.NewTransform(env, w, h)
	ctx := &PassContext{
		Canvas:   c,
		Envelope: env,
		View:     t,
		Units:    view.NewUnitResolver(t, opt.PixelSize, opt.MetersPerUnit),
		Engine:   engine,
		Symbols:  symbol.Shared(),
		Fonts:    fonts,
		Options:  opt,
		noView:   !ok,
	}
	if env != nil {
		ctx.Area = env.Pad(opt.GuardBand*t.ResolutionX, opt.GuardBand*t.ResolutionY).Surface()
	}
	return ctx, nil
}

var defaultFonts = sync.OnceValues(text.NewLibrary)

// CRS returns the coordinate reference system of the pass.
func (ctx *PassContext) CRS() geometry.CRS {
	if ctx.Envelope == nil {
		return ""
	}
	return ctx.Envelope.CRS
}

func (ctx *PassContext) log() *slog.Logger {
	if ctx.Logger != nil {
		return ctx.Logger
	}
	return logging.Logger()
}

// Polyline is a line in pixel coordinates. For closed polylines the
// first point is not repeated at the end.
type Polyline struct {
	Points []vec.Vec2
	Closed bool
}

// Length returns the length of the polyline, including the closing
// segment of closed polylines.
func (pl Polyline) Length() float64 {
	var l float64
	for _, s := range pl.segments() {
		l += s[1].Sub(s[0]).Length()
	}
	return l
}

func (pl Polyline) segments() [][2]vec.Vec2 {
	pts := pl.Points
	var res [][2]vec.Vec2
	for i := 1; i < len(pts); i++ {
		res = append(res, [2]vec.Vec2{pts[i-1], pts[i]})
	}
	if pl.Closed && len(pts) > 2 {
		res = append(res, [2]vec.Vec2{pts[len(pts)-1], pts[0]})
	}
	return res
}

// appendPath adds the polylines to p as separate subpaths.
func appendPath(p *path.Data, lines ...Polyline) *path.Data {
	if p == nil {
		p = &path.Data{}
	}
	for _, pl := range lines {
		if len(pl.Points) == 0 {
			continue
		}
		p = p.MoveTo(pl.Points[0])
		for _, q := range pl.Points[1:] {
			p = p.LineTo(q)
		}
		if pl.Closed {
			p = p.Close()
		}
	}
	return p
}

// rotateAbout returns the matrix which rotates by deg degrees clockwise
// on the screen around (x, y).
func rotateAbout(x, y, deg float64) matrix.Matrix {
	return matrix.Translate(-x, -y).RotateDeg(deg).Translate(x, y)
}

// rectOf returns the rectangle with corners a and b.
func rectOf(a, b vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
}
