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

// Package maprender draws styled map features into images.
//
// A [Pass] renders one image. Features are drawn in the order in which
// they are passed to the pass; labels are collected and drawn on top of
// all other content by [Pass.Finish].
//
// The subpackages hold the parts of the renderer: [render] has the
// renderer itself, [style] the style descriptors, [geometry] the
// geometry model, and [coverage] the raster pipeline.
package maprender

import (
	"errors"
	"image"
	"log/slog"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/coverage"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/render"
	"seehuhn.de/go/maprender/style"
)

// ErrFinished is returned when drawing into a pass after Finish.
var ErrFinished = errors.New("maprender: pass already finished")

// Pass is a render pass onto a new RGBA image.
// A Pass must not be used concurrently; separate passes may run in
// parallel.
type Pass struct {
	img  *image.RGBA
	ctx  *render.PassContext
	r    *render.Renderer
	done bool
}

// NewPass prepares a pass which shows the world area env on an image of
// the given size. Geometries are handled by the planar engine from the
// geometry package.
func NewPass(env *geometry.Envelope, width, height int, opt render.Options) (*Pass, error) {
	return NewPassWithEngine(env, width, height, geometry.NewPlanar(), opt)
}

// NewPassWithEngine is like NewPass, but uses the given geometry engine.
func NewPassWithEngine(env *geometry.Envelope, width, height int, e geometry.Engine, opt render.Options) (*Pass, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ctx, err := render.NewPassContext(canvas.NewImage(img), env, e, opt)
	if err != nil {
		return nil, err
	}
	return &Pass{
		img: img,
		ctx: ctx,
		r:   render.NewRenderer(ctx),
	}, nil
}

// Context gives access to the settings of the pass. Changes must be
// made before the first feature is drawn.
func (p *Pass) Context() *render.PassContext {
	return p.ctx
}

// Renderer returns the renderer of the pass.
func (p *Pass) Renderer() *render.Renderer {
	return p.r
}

// Render draws g with a point, line or polygon styling.
func (p *Pass) Render(s style.Styling, g geometry.Geometry) error {
	if p.done {
		return ErrFinished
	}
	return p.r.Render(s, g)
}

// RenderText adds a label. Labels appear when the pass is finished.
func (p *Pass) RenderText(s *style.TextStyling, txt string, g geometry.Geometry) error {
	if p.done {
		return ErrFinished
	}
	return p.r.RenderText(s, txt, g)
}

// RenderRaster draws a styled coverage.
func (p *Pass) RenderRaster(data coverage.Raster, s *style.RasterStyling) error {
	if p.done {
		return ErrFinished
	}
	return p.r.RenderRaster(data, s)
}

// Image returns the image drawn so far, without the pending labels.
func (p *Pass) Image() *image.RGBA {
	return p.img
}

// Finish draws the pending labels and returns the image. Calling Finish
// again returns the same image.
func (p *Pass) Finish() *image.RGBA {
	if !p.done {
		p.r.FlushLabels()
		p.done = true
	}
	return p.img
}

// SetLogger sets the logger used by all packages of the module. A nil
// logger disables logging, which is the default.
func SetLogger(l *slog.Logger) {
	render.SetLogger(l)
}
