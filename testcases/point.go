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

package testcases

import (
	"image"
	"image/color"

	"seehuhn.de/go/maprender/style"
)

var pointCases = []Scenario{
	{
		Name:   "marks",
		Width:  160,
		Height: 40,
		Layers: []Layer{
			{Styling: &style.PointStyling{Graphic: mark(style.Square, 16, red)}, Geometry: at(15, 20)},
			{Styling: &style.PointStyling{Graphic: mark(style.Circle, 16, blue)}, Geometry: at(40, 20)},
			{Styling: &style.PointStyling{Graphic: mark(style.Triangle, 16, green)}, Geometry: at(65, 20)},
			{Styling: &style.PointStyling{Graphic: mark(style.Star, 16, yellow)}, Geometry: at(90, 20)},
			{Styling: &style.PointStyling{Graphic: mark(style.Cross, 16, red)}, Geometry: at(115, 20)},
			{Styling: &style.PointStyling{Graphic: mark(style.X, 16, blue)}, Geometry: at(140, 20)},
		},
	},
	{
		Name:   "fallback_size",
		Width:  32,
		Height: 32,
		Layers: []Layer{
			{Styling: &style.PointStyling{Graphic: mark(style.Circle, -1, red)}, Geometry: at(16, 16)},
		},
	},
	{
		Name:   "vertices",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(gray, 1)}, Geometry: line(8, 8, 32, 56, 56, 8)},
			{Styling: &style.PointStyling{Graphic: mark(style.Square, 6, red)}, Geometry: line(8, 8, 32, 56, 56, 8)},
		},
	},
	{
		Name:   "image",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.PointStyling{Graphic: &style.Graphic{
					Size:   -1,
					Anchor: [2]float64{0.5, 0.5},
					Image:  checkerboard(24, 16, 4),
				}},
				Geometry: at(32, 32),
			},
			{
				Styling: &style.PointStyling{Graphic: &style.Graphic{
					Size:     12,
					Rotation: 45,
					Image:    checkerboard(24, 16, 4),
				}},
				Geometry: at(8, 8),
			},
		},
	},
}

// checkerboard returns an image of w×h pixels with squares of the given
// size.
func checkerboard(w, h, size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if (x/size+y/size)%2 == 1 {
				c = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
