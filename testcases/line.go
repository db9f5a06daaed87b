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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/maprender/style"
)

var zigzag = line(10, 20, 40, 60, 70, 20, 100, 60, 130, 20)

var lineCases = []Scenario{
	{
		Name:   "caps_and_joins",
		Width:  140,
		Height: 80,
		Layers: []Layer{
			{
				Styling: &style.LineStyling{Stroke: &style.Stroke{
					Color: blue, Width: 10,
					Cap: graphics.LineCapRound, Join: graphics.LineJoinRound,
				}},
				Geometry: zigzag,
			},
			{
				Styling:  &style.LineStyling{Stroke: pen(white, 1)},
				Geometry: zigzag,
			},
		},
	},
	{
		Name:   "offsets",
		Width:  140,
		Height: 80,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(black, 1)}, Geometry: zigzag},
			{
				Styling: &style.LineStyling{
					Stroke:              pen(red, 2),
					PerpendicularOffset: 6,
					OffsetType:          style.OffsetStandard,
				},
				Geometry: zigzag,
			},
			{
				Styling: &style.LineStyling{
					Stroke:              pen(blue, 2),
					PerpendicularOffset: -6,
					OffsetType:          style.OffsetRound,
				},
				Geometry: zigzag,
			},
			{
				Styling: &style.LineStyling{
					Stroke:              pen(green, 2),
					PerpendicularOffset: 12,
					OffsetType:          style.OffsetEdged,
				},
				Geometry: zigzag,
			},
		},
	},
	{
		Name:   "graphic_stroke",
		Width:  140,
		Height: 80,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(gray, 1)}, Geometry: zigzag},
			{
				Styling: &style.LineStyling{Stroke: &style.Stroke{Graphic: &style.GraphicStroke{
					Graphic: mark(style.Triangle, 8, red),
					Gap:     4,
					Rotate:  true,
				}}},
				Geometry: zigzag,
			},
		},
	},
	{
		Name:   "graphic_at_position",
		Width:  140,
		Height: 80,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(black, 2)}, Geometry: zigzag},
			{
				Styling: &style.LineStyling{Stroke: &style.Stroke{Graphic: &style.GraphicStroke{
					Graphic:            mark(style.Star, 14, yellow),
					Mode:               style.AtPosition,
					PositionPercentage: 50,
				}}},
				Geometry: zigzag,
			},
		},
	},
	{
		Name:   "textured_stroke",
		Width:  140,
		Height: 80,
		Layers: []Layer{
			{
				Styling: &style.LineStyling{Stroke: &style.Stroke{
					Width: 12,
					Join:  graphics.LineJoinRound,
					Fill: &style.Graphic{
						Size: 4,
						Mark: &style.Mark{WellKnownName: style.Circle, Fill: solid(blue)},
					},
				}},
				Geometry: zigzag,
			},
		},
	},
}
