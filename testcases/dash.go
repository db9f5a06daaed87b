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

func dashed(width float64, lc graphics.LineCapStyle, offset float64, pattern ...float64) *style.LineStyling {
	return &style.LineStyling{Stroke: &style.Stroke{
		Color:      black,
		Width:      width,
		Cap:        lc,
		Dash:       pattern,
		DashOffset: offset,
	}}
}

var dashCases = []Scenario{
	{
		Name:   "patterns",
		Width:  120,
		Height: 80,
		Layers: []Layer{
			{Styling: dashed(2, graphics.LineCapButt, 0, 8, 4), Geometry: line(10, 70, 110, 70)},
			{Styling: dashed(2, graphics.LineCapButt, 4, 8, 4), Geometry: line(10, 60, 110, 60)},
			{Styling: dashed(2, graphics.LineCapButt, 0, 12, 3, 3, 3), Geometry: line(10, 50, 110, 50)},
			{Styling: dashed(2, graphics.LineCapButt, 0, 5), Geometry: line(10, 40, 110, 40)},
			{Styling: dashed(4, graphics.LineCapRound, 0, 0, 8), Geometry: line(10, 25, 110, 25)},
			{Styling: dashed(4, graphics.LineCapSquare, 0, 4, 8), Geometry: line(10, 10, 110, 10)},
		},
	},
	{
		Name:   "dashed_polygon_outline",
		Width:  80,
		Height: 80,
		Layers: []Layer{
			{
				Styling: &style.PolygonStyling{
					Fill:   solid(yellow),
					Stroke: dashed(3, graphics.LineCapButt, 0, 10, 5).Stroke,
				},
				Geometry: polygon(10, 10, 70, 10, 70, 70, 10, 70),
			},
		},
	},
	{
		// millimeter lengths at the default pixel size of 0.28mm
		Name:   "dash_units",
		Width:  120,
		Height: 40,
		Layers: []Layer{
			{
				Styling: &style.LineStyling{
					Stroke: &style.Stroke{Color: blue, Width: 1, Dash: []float64{3, 1}},
					UOM:    style.Millimeter,
				},
				Geometry: line(10, 20, 110, 20),
			},
		},
	},
}
