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

var polygonCases = []Scenario{
	{
		// the polygon covers the whole view, so every pixel is red
		Name:   "red_square",
		Width:  32,
		Height: 32,
		Layers: []Layer{
			{Styling: &style.PolygonStyling{Fill: solid(red)}, Geometry: polygon(0, 0, 32, 0, 32, 32, 0, 32)},
		},
	},
	{
		Name:   "hole",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.PolygonStyling{Fill: solid(blue), Stroke: pen(black, 2)},
				Geometry: parse(`{"type": "Polygon", "coordinates": [
					[[8, 8], [56, 8], [56, 56], [8, 56], [8, 8]],
					[[20, 20], [20, 44], [44, 44], [44, 20], [20, 20]]
				]}`),
			},
		},
	},
	{
		Name:   "multipolygon",
		Width:  96,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.PolygonStyling{Fill: solid(green), Stroke: pen(black, 1)},
				Geometry: parse(`{"type": "MultiPolygon", "coordinates": [
					[[[8, 8], [40, 8], [24, 56], [8, 8]]],
					[[[48, 8], [88, 8], [88, 56], [48, 56], [48, 8]],
					 [[60, 20], [76, 20], [76, 44], [60, 44], [60, 20]]]
				]}`),
			},
		},
	},
	{
		Name:   "graphic_fill",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.PolygonStyling{
					Fill: &style.Fill{Graphic: &style.Graphic{
						Size: 8,
						Mark: &style.Mark{WellKnownName: style.Cross, Fill: solid(blue)},
					}},
					Stroke: pen(black, 1),
				},
				Geometry: polygon(8, 8, 56, 8, 32, 56),
			},
		},
	},
	{
		Name:   "offset_outline",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.PolygonStyling{
					Fill:                solid(gray),
					Stroke:              pen(red, 2),
					PerpendicularOffset: -4,
					OffsetType:          style.OffsetRound,
				},
				Geometry: polygon(12, 12, 52, 12, 52, 52, 12, 52),
			},
			{
				Styling:  &style.PolygonStyling{Stroke: pen(black, 1)},
				Geometry: polygon(12, 12, 52, 12, 52, 52, 12, 52),
			},
		},
	},
	{
		Name:   "translucent_overlap",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{Styling: &style.PolygonStyling{Fill: solid(red)}, Geometry: polygon(8, 8, 40, 8, 40, 40, 8, 40)},
			{Styling: &style.PolygonStyling{Fill: solid(gray)}, Geometry: polygon(24, 24, 56, 24, 56, 56, 24, 56)},
		},
	},
}
