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
	"seehuhn.de/go/maprender/style"
)

func rotated(name style.WellKnownName, angle float64) *style.Graphic {
	g := mark(name, 16, blue)
	g.Rotation = angle
	return g
}

var ctmCases = []Scenario{
	{
		Name:   "rotated_marks",
		Width:  130,
		Height: 40,
		Layers: []Layer{
			{Styling: &style.PointStyling{Graphic: rotated(style.Triangle, 0)}, Geometry: at(20, 20)},
			{Styling: &style.PointStyling{Graphic: rotated(style.Triangle, 30)}, Geometry: at(50, 20)},
			{Styling: &style.PointStyling{Graphic: rotated(style.Triangle, 90)}, Geometry: at(80, 20)},
			{Styling: &style.PointStyling{Graphic: rotated(style.Triangle, 180)}, Geometry: at(110, 20)},
		},
	},
	{
		Name:   "anchor_and_displacement",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{Styling: &style.PointStyling{Graphic: mark(style.Cross, 8, black)}, Geometry: at(32, 32)},
			{
				Styling: &style.PointStyling{Graphic: &style.Graphic{
					Size:         12,
					Displacement: [2]float64{6, 6},
					Mark:         &style.Mark{WellKnownName: style.Square, Fill: solid(red)},
				}},
				Geometry: at(32, 32),
			},
		},
	},
	{
		Name:   "drop_shadow",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling:  &style.PolygonStyling{Fill: solid(gray), Displacement: [2]float64{4, -4}},
				Geometry: polygon(12, 16, 48, 16, 48, 52, 12, 52),
			},
			{
				Styling:  &style.PolygonStyling{Fill: solid(yellow), Stroke: pen(black, 1)},
				Geometry: polygon(12, 16, 48, 16, 48, 52, 12, 52),
			},
		},
	},
	{
		// world units are stretched differently in x and y
		Name:     "anisotropic_view",
		Width:    100,
		Height:   50,
		Envelope: envelope(0, 0, 10, 10),
		Layers: []Layer{
			{Styling: &style.PolygonStyling{Fill: solid(blue)}, Geometry: polygon(2, 2, 8, 2, 8, 8, 2, 8)},
			{Styling: &style.PointStyling{Graphic: mark(style.Circle, 10, red)}, Geometry: at(5, 5)},
		},
	},
}
