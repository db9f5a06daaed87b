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

// Package view maps world coordinates to canvas pixels and converts style
// lengths into pixels.
package view

import (
	"math"

	"github.com/paulmach/orb"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/geometry"
)

// Transform maps world coordinates (y pointing up) to pixel coordinates
// (y pointing down). The world envelope is stretched independently in x
// and y to fill the canvas; the aspect ratio is not preserved.
type Transform struct {
	Matrix matrix.Matrix

	// ResolutionX and ResolutionY give the size of one pixel in world
	// units.
	ResolutionX, ResolutionY float64
}

// NewTransform returns the transform which maps env onto a canvas of the
// given size. If env is nil or either it or the canvas is empty, the
// identity transform with resolution 1 is returned together with false.
func NewTransform(env *geometry.Envelope, width, height int) (Transform, bool) {
	if env == nil || env.Width() <= 0 || env.Height() <= 0 || width <= 0 || height <= 0 {
		return Transform{Matrix: matrix.Identity, ResolutionX: 1, ResolutionY: 1}, false
	}

	sx := float64(width) / env.Width()
	sy := float64(height) / env.Height()
	m := matrix.Translate(-env.Min[0], -env.Max[1]).Scale(sx, -sy)
	return Transform{
		Matrix:      m,
		ResolutionX: math.Abs(1 / sx),
		ResolutionY: math.Abs(1 / sy),
	}, true
}

// Apply maps a world point to pixel coordinates.
func (t Transform) Apply(p orb.Point) vec.Vec2 {
	x, y := t.Matrix.Apply(p[0], p[1])
	return vec.Vec2{X: x, Y: y}
}

// Inverse maps pixel coordinates back to world coordinates.
func (t Transform) Inverse(v vec.Vec2) orb.Point {
	x, y := t.Matrix.Inv().Apply(v.X, v.Y)
	return orb.Point{x, y}
}

// Resolution returns the mean of the x and y resolution.
func (t Transform) Resolution() float64 {
	return (t.ResolutionX + t.ResolutionY) / 2
}
