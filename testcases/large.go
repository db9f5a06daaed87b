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
	"github.com/paulmach/orb"

	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
)

func envelope(x0, y0, x1, y1 float64) *geometry.Envelope {
	return geometry.NewEnvelope(orb.Point{x0, y0}, orb.Point{x1, y1}, "")
}

var largeCases = []Scenario{
	{
		// geometries far outside the view are cut at the guard band
		Name:   "huge_coordinates",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling:  &style.PolygonStyling{Fill: solid(blue), Stroke: pen(black, 4)},
				Geometry: polygon(-1e9, -1e9, 32, -1e9, 32, 32, -1e9, 32),
			},
			{
				Styling:  &style.LineStyling{Stroke: pen(red, 2)},
				Geometry: line(-1e12, 48, 1e12, 48),
			},
		},
	},
	{
		Name:   "outside_view",
		Width:  32,
		Height: 32,
		Blank:  true,
		Layers: []Layer{
			{Styling: &style.PolygonStyling{Fill: solid(red)}, Geometry: polygon(1000, 1000, 1100, 1000, 1100, 1100)},
			{Styling: &style.LineStyling{Stroke: pen(red, 1)}, Geometry: line(-500, -500, -400, -400)},
		},
	},
	{
		// longitude/latitude data on a Web Mercator map of Europe
		Name:   "mercator",
		Width:  120,
		Height: 120,
		Envelope: geometry.NewEnvelope(
			orb.Point{-1.2e6, 4.0e6}, orb.Point{3.6e6, 8.8e6}, geometry.WebMercator),
		Layers: []Layer{
			{
				Styling: &style.LineStyling{Stroke: pen(gray, 1)},
				Geometry: &geometry.Multi{CRS: geometry.WGS84, Members: []geometry.Geometry{
					geometry.NewLineString(geometry.WGS84, orb.Point{0, 40}, orb.Point{0, 60}),
					geometry.NewLineString(geometry.WGS84, orb.Point{10, 40}, orb.Point{10, 60}),
					geometry.NewLineString(geometry.WGS84, orb.Point{20, 40}, orb.Point{20, 60}),
					geometry.NewLineString(geometry.WGS84, orb.Point{-5, 50}, orb.Point{30, 50}),
				}},
			},
			{
				Styling: &style.PointStyling{Graphic: mark(style.Circle, 6, red)},
				Geometry: &geometry.Multi{CRS: geometry.WGS84, Members: []geometry.Geometry{
					&geometry.Point{Coord: orb.Point{2.35, 48.86}, CRS: geometry.WGS84},
					&geometry.Point{Coord: orb.Point{13.40, 52.52}, CRS: geometry.WGS84},
					&geometry.Point{Coord: orb.Point{12.50, 41.90}, CRS: geometry.WGS84},
				}},
			},
		},
	},
}
