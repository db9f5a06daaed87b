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
	"image"
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/style"
)

// fallbackSize is the height in pixels of graphics which have neither a
// size nor an image with a natural size.
const fallbackSize = 6

// FillEngine turns fill styles into canvas paints.
type FillEngine struct {
	ctx     *PassContext
	symbols *SymbolRenderer
}

// Paint returns the paint for fill. Graphic fills are tiled, with the tile
// anchored at its own bounds in pixel space, so that neighbouring areas
// continue the same pattern.
func (f *FillEngine) Paint(fill *style.Fill, uom style.UOM) canvas.Paint {
	switch {
	case fill == nil:
		return canvas.Transparent{}
	case fill.Graphic != nil:
		return f.tile(fill.Graphic, uom)
	case fill.Color.A == 0:
		return canvas.Transparent{}
	}
	return canvas.Solid{Color: fill.Color}
}

func (f *FillEngine) tile(g *style.Graphic, uom style.UOM) canvas.Paint {
	b := f.GraphicBounds(g, 0, 0, uom)
	r := image.Rect(
		int(math.Floor(b.LLx)), int(math.Floor(b.LLy)),
		int(math.Ceil(b.URx)), int(math.Ceil(b.URy)))
	if r.Empty() {
		return canvas.Transparent{}
	}
	tile := image.NewRGBA(r)
	f.symbols.draw(canvas.NewImage(tile), g, uom, 0, 0, 0)
	return canvas.NewTexture(tile)
}

// GraphicBounds returns the pixel area covered by g when it is placed at
// (x, y). The anchor of the graphic is put at (x, y) and then moved by
// the displacement. In the result, LLy is the top edge, since the y-axis
// of the canvas points down.
func (f *FillEngine) GraphicBounds(g *style.Graphic, x, y float64, uom style.UOM) rect.Rect {
	w, h := f.graphicSize(g, uom)
	units := f.ctx.Units
	x += units.Resolve(g.Displacement[0], uom)
	y -= units.Resolve(g.Displacement[1], uom)
	left := x - g.Anchor[0]*w
	bottom := y + g.Anchor[1]*h
	return rect.Rect{LLx: left, LLy: bottom - h, URx: left + w, URy: bottom}
}

// graphicSize returns the width and height of g in pixels. A positive
// size gives the height; the width follows from the aspect ratio of the
// image, unless the size is strict. A negative size selects the natural
// size of the image. Zero size gives an empty graphic.
func (f *FillEngine) graphicSize(g *style.Graphic, uom style.UOM) (w, h float64) {
	if g.Size == 0 {
		return 0, 0
	}
	var nw, nh float64
	if img := f.symbols.natural(g); img != nil {
		b := img.Bounds()
		nw, nh = float64(b.Dx()), float64(b.Dy())
	}

	switch {
	case g.Size > 0:
		h = f.ctx.Units.Resolve(g.Size, uom)
	case nh > 0:
		h = nh
	default:
		h = fallbackSize
	}
	w = h
	if nh > 0 && !f.ctx.Options.StrictGraphicSize {
		w = h * nw / nh
	}
	return w, h
}
