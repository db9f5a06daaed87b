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
	"net/url"
	"path"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/maprender/canvas"
	"seehuhn.de/go/maprender/style"
	"seehuhn.de/go/maprender/symbol"
)

// SymbolRenderer draws marks and images at points.
type SymbolRenderer struct {
	ctx     *PassContext
	fills   *FillEngine
	strokes *StrokeEngine
}

// Render draws g at the pixel location (x, y).
func (s *SymbolRenderer) Render(g *style.Graphic, uom style.UOM, x, y float64) {
	if g == nil {
		return
	}
	s.draw(s.ctx.Canvas, g, uom, x, y, 0)
}

// draw renders g onto c. The graphic is rotated by its own rotation plus
// rot degrees, clockwise, around its anchor point.
func (s *SymbolRenderer) draw(c canvas.Canvas, g *style.Graphic, uom style.UOM, x, y, rot float64) {
	b := s.fills.GraphicBounds(g, x, y, uom)
	w, h := b.URx-b.LLx, b.URy-b.LLy
	if w <= 0 || h <= 0 {
		s.ctx.log().Debug("graphic of size zero skipped")
		return
	}
	isImage := g.Image != nil || g.ImageURL != ""
	if !isImage && (g.Mark == nil || (g.Mark.Fill == nil && g.Mark.Stroke == nil)) {
		return
	}

	if angle := g.Rotation + rot; angle != 0 {
		units := s.ctx.Units
		px := x + units.Resolve(g.Displacement[0], uom)
		py := y - units.Resolve(g.Displacement[1], uom)
		c.Push(rotateAbout(px, py, angle))
		defer c.Pop()
	}

	if isImage {
		img, err := s.image(g, int(math.Ceil(w)), int(math.Ceil(h)))
		if err != nil {
			s.ctx.log().Warn("cannot load symbol image", "url", g.ImageURL, "error", err)
			return
		}
		c.DrawImage(img, b, 1)
		return
	}

	mark := g.Mark
	p := symbol.MarkPath(mark.WellKnownName, h)
	m := matrix.Scale(w/h, 1).Translate((b.LLx+b.URx)/2, (b.LLy+b.URy)/2)
	c.Push(m)
	defer c.Pop()
	if mark.Fill != nil {
		c.Fill(p, canvas.NonZero, s.fills.Paint(mark.Fill, uom))
	}
	s.strokes.stroke(c, mark.Stroke, uom, p)
}

// natural returns the unscaled image of g, or nil for marks and images
// which cannot be loaded.
func (s *SymbolRenderer) natural(g *style.Graphic) image.Image {
	if g.Image != nil {
		return g.Image
	}
	if g.ImageURL == "" || s.ctx.Symbols == nil {
		return nil
	}
	img, err := s.image(g, 0, 0)
	if err != nil {
		return nil
	}
	return img
}

// image returns the bitmap of an image graphic. SVG documents are
// rasterized at w×h pixels, or at their natural size if w or h is zero.
func (s *SymbolRenderer) image(g *style.Graphic, w, h int) (image.Image, error) {
	if g.Image != nil {
		return g.Image, nil
	}
	if isSVG(g.ImageURL) {
		return s.ctx.Symbols.SVG(g.ImageURL, w, h)
	}
	return s.ctx.Symbols.Image(g.ImageURL)
}

func isSVG(ref string) bool {
	name := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		name = u.Path
	}
	return strings.EqualFold(path.Ext(name), ".svg")
}
