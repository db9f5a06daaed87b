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
	"seehuhn.de/go/maprender/render"
	"seehuhn.de/go/maprender/style"
)

func font(size float64, bold bool) style.Font {
	return style.Font{Family: []string{"sans-serif"}, Size: size, Bold: bold}
}

var road = line(10, 30, 60, 70, 110, 50, 190, 80)

var labelCases = []Scenario{
	{
		Name:   "point_labels",
		Width:  160,
		Height: 80,
		Layers: []Layer{
			{Styling: &style.PointStyling{Graphic: mark(style.Circle, 6, red)}, Geometry: at(40, 40)},
			{
				Styling: &style.TextStyling{
					Font:         font(12, false),
					Anchor:       [2]float64{0, 0.5},
					Displacement: [2]float64{6, 0},
				},
				Text:     "Zürich",
				Geometry: at(40, 40),
			},
			{
				Styling: &style.TextStyling{
					Font:     font(14, true),
					Fill:     solid(blue),
					Anchor:   [2]float64{0.5, 0.5},
					Rotation: -20,
					Halo:     &style.Halo{Radius: 2},
				},
				Text:     "Halo",
				Geometry: at(120, 40),
			},
		},
	},
	{
		Name:   "box_halo",
		Width:  100,
		Height: 40,
		Layers: []Layer{
			{Styling: &style.PolygonStyling{Fill: solid(green)}, Geometry: polygon(0, 0, 100, 0, 100, 40, 0, 40)},
			{
				Styling: &style.TextStyling{
					Font:   font(12, false),
					Anchor: [2]float64{0.5, 0.5},
					Halo:   &style.Halo{Radius: -3, Fill: solid(yellow)},
				},
				Text:     "A1 Bern",
				Geometry: at(50, 20),
			},
		},
	},
	{
		Name:   "line_labels",
		Width:  200,
		Height: 100,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(gray, 12)}, Geometry: road},
			{
				Styling: &style.TextStyling{
					Font:          font(10, false),
					LinePlacement: &style.LinePlacement{InitialGap: 10, Gap: 30, Repeat: true},
				},
				Text:     "Main Street",
				Geometry: road,
			},
			{
				Styling: &style.TextStyling{
					Font:          font(8, false),
					Fill:          solid(red),
					LinePlacement: &style.LinePlacement{PerpendicularOffset: 10},
				},
				Text:     "offset",
				Geometry: road,
			},
		},
	},
	{
		Name:    "collisions",
		Width:   120,
		Height:  60,
		Options: render.Options{LabelCollisions: true},
		Layers: []Layer{
			{Styling: &style.TextStyling{Font: font(12, false)}, Text: "first", Geometry: at(20, 30)},
			{Styling: &style.TextStyling{Font: font(12, false)}, Text: "hidden", Geometry: at(30, 32)},
			{Styling: &style.TextStyling{Font: font(12, false)}, Text: "third", Geometry: at(70, 10)},
		},
	},
	{
		Name:   "area_labels",
		Width:  120,
		Height: 80,
		Layers: []Layer{
			{
				Styling:  &style.PolygonStyling{Fill: solid(yellow), Stroke: pen(black, 1)},
				Geometry: parse(`{"type": "Polygon", "coordinates": [[[10, 10], [110, 10], [110, 30], [30, 30], [30, 70], [10, 70], [10, 10]]]}`),
			},
			{
				Styling: &style.TextStyling{
					Font:          font(9, false),
					Anchor:        [2]float64{0.5, 0.5},
					AutoPlacement: true,
				},
				Text:     "L-shape",
				Geometry: parse(`{"type": "Polygon", "coordinates": [[[10, 10], [110, 10], [110, 30], [30, 30], [30, 70], [10, 70], [10, 10]]]}`),
			},
		},
	},
}
