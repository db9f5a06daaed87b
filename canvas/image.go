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

package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/maprender/internal/raster"
)

// Image is a Canvas which draws into an RGBA image using anti-aliased
// source-over compositing.
type Image struct {
	Dst *image.RGBA

	// Flatness is the curve approximation tolerance in pixels.
	// Zero selects the rasterizer default.
	Flatness float64

	ctm   matrix.Matrix
	stack []matrix.Matrix
	r     *raster.Rasterizer
	clip  rect.Rect
}

var _ Canvas = (*Image)(nil)

// NewImage returns a canvas drawing into dst.
func NewImage(dst *image.RGBA) *Image {
	b := dst.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	return &Image{
		Dst:  dst,
		ctm:  matrix.Identity,
		r:    raster.NewRasterizer(clip),
		clip: clip,
	}
}

// Size implements the Canvas interface.
func (c *Image) Size() (int, int) {
	b := c.Dst.Bounds()
	return b.Dx(), b.Dy()
}

// Push implements the Canvas interface.
func (c *Image) Push(m matrix.Matrix) {
	c.stack = append(c.stack, c.ctm)
	c.ctm = m.Mul(c.ctm)
}

// Pop implements the Canvas interface.
func (c *Image) Pop() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.ctm = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *Image) prepare() {
	c.r.Reset(c.clip)
	c.r.CTM = c.ctm
	if c.Flatness > 0 {
		c.r.Flatness = c.Flatness
	}
}

// Fill implements the Canvas interface.
func (c *Image) Fill(p *path.Data, rule FillRule, paint Paint) {
	if p == nil || !Inked(paint) {
		return
	}
	c.prepare()
	emit := c.painter(paint)
	if rule == EvenOdd {
		c.r.FillEvenOdd(p, emit)
	} else {
		c.r.FillNonZero(p, emit)
	}
}

// Stroke implements the Canvas interface.
func (c *Image) Stroke(p *path.Data, s StrokeSpec, paint Paint) {
	if p == nil || s.Width <= 0 || !Inked(paint) {
		return
	}
	c.prepare()
	c.r.Width = s.Width
	c.r.Cap = s.Cap
	c.r.Join = s.Join
	if s.MiterLimit > 0 {
		c.r.MiterLimit = s.MiterLimit
	}
	c.r.Dash = s.Dash
	c.r.DashPhase = s.DashPhase
	c.r.Stroke(p, c.painter(paint))
}

// painter returns a function which composites coverage values using the
// given paint.
func (c *Image) painter(paint Paint) raster.EmitFunc {
	dst := c.Dst
	switch paint := paint.(type) {
	case Solid:
		col := paint.Color
		alpha := float32(col.A) / 255
		r, g, b := float32(col.R), float32(col.G), float32(col.B)
		return func(y, xMin int, coverage []float32) {
			row := dst.Pix[dst.PixOffset(xMin, y):]
			for i, cov := range coverage {
				a := cov * alpha
				if a <= 0 {
					continue
				}
				px := row[4*i : 4*i+4 : 4*i+4]
				px[0] = blend(r*a, px[0], a)
				px[1] = blend(g*a, px[1], a)
				px[2] = blend(b*a, px[2], a)
				px[3] = blend(255*a, px[3], a)
			}
		}
	case *Texture:
		tile := paint.Tile
		tw, th := tile.Rect.Dx(), tile.Rect.Dy()
		return func(y, xMin int, coverage []float32) {
			row := dst.Pix[dst.PixOffset(xMin, y):]
			ty := mod(y-paint.Origin.Y, th)
			for i, cov := range coverage {
				if cov <= 0 {
					continue
				}
				tx := mod(xMin+i-paint.Origin.X, tw)
				src := tile.Pix[tile.PixOffset(tx, ty):]
				a := float32(src[3]) / 255 * cov
				px := row[4*i : 4*i+4 : 4*i+4]
				for k := range 4 {
					px[k] = blend(float32(src[k])*cov, px[k], a)
				}
			}
		}
	}
	return func(int, int, []float32) {}
}

// blend composites a premultiplied source value over a destination value.
func blend(src float32, dst uint8, srcAlpha float32) uint8 {
	v := src + float32(dst)*(1-srcAlpha)
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// DrawImage implements the Canvas interface.
func (c *Image) DrawImage(img image.Image, r rect.Rect, opacity float64) {
	sb := img.Bounds()
	if sb.Empty() || opacity <= 0 || r.URx <= r.LLx || r.URy <= r.LLy {
		return
	}
	if opacity < 1 {
		img = fade(img, opacity)
	}

	sx := (r.URx - r.LLx) / float64(sb.Dx())
	sy := (r.URy - r.LLy) / float64(sb.Dy())
	ox := r.LLx - sx*float64(sb.Min.X)
	oy := r.LLy - sy*float64(sb.Min.Y)
	m := matrix.Scale(sx, sy).Translate(ox, oy).Mul(c.ctm)
	aff := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	draw.BiLinear.Transform(c.Dst, aff, img, sb, draw.Over, nil)
}

// fade returns a copy of img with all alpha values scaled by opacity.
func fade(img image.Image, opacity float64) *image.NRGBA {
	b := img.Bounds()
	res := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = uint8(float64(c.A)*opacity + 0.5)
			res.SetNRGBA(x, y, c)
		}
	}
	return res
}
