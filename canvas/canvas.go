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

// Package canvas defines the drawing surface used by the renderer and
// provides a software implementation on top of an RGBA image.
//
// Paths are given in user space, which is mapped to device pixels by the
// current transformation. The transformation starts out as the identity
// and is changed by [Canvas.Push] and [Canvas.Pop].
package canvas

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// Canvas receives the drawing operations of a render pass.
type Canvas interface {
	// Size returns the canvas size in pixels.
	Size() (width, height int)

	// Fill paints the interior of p.
	Fill(p *path.Data, rule FillRule, paint Paint)

	// Stroke paints the outline of p.
	Stroke(p *path.Data, s StrokeSpec, paint Paint)

	// DrawImage draws img into the rectangle r of user space. The top
	// row of the image is drawn at r.LLy.
	DrawImage(img image.Image, r rect.Rect, opacity float64)

	// Push saves the current transformation and then applies m before
	// it. The new user space is mapped by m into the old one.
	Push(m matrix.Matrix)

	// Pop restores the transformation saved by the matching Push.
	Pop()
}

// FillRule decides which parts of a path are inside.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// StrokeSpec holds the geometric parameters of a stroke.
type StrokeSpec struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Paint is one of [Transparent], [Solid] and [*Texture].
type Paint interface {
	isPaint()
}

// Transparent paints nothing.
type Transparent struct{}

// Solid paints with a single color.
type Solid struct {
	Color color.NRGBA
}

// Texture tiles an image. The tile is aligned with the device pixel grid
// and one of its copies has its upper left corner at Origin.
type Texture struct {
	Tile   *image.RGBA
	Origin image.Point
}

// NewTexture returns a texture paint for img. The bounds of img give the
// position of the tile in device space.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	tile := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			tile.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return &Texture{Tile: tile, Origin: b.Min}
}

func (Transparent) isPaint() {}
func (Solid) isPaint()       {}
func (*Texture) isPaint()    {}

// Inked reports whether drawing with p can change any pixel.
func Inked(p Paint) bool {
	switch p := p.(type) {
	case Solid:
		return p.Color.A > 0
	case *Texture:
		return p != nil && p.Tile != nil && !p.Tile.Bounds().Empty()
	}
	return false
}
