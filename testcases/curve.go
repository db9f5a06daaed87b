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

func arc(pts ...float64) *geometry.Curve {
	return &geometry.Curve{Segments: []geometry.Segment{
		{Kind: geometry.ArcSegment, Points: points(pts)},
	}}
}

// disc is a surface bounded by the circle through three points.
func disc(pts ...float64) *geometry.Surface {
	ring := &geometry.Ring{Curve: geometry.Curve{Segments: []geometry.Segment{
		{Kind: geometry.CircleSegment, Points: points(pts)},
	}}}
	return &geometry.Surface{Patches: []*geometry.Patch{{Exterior: ring}}}
}

var curveCases = []Scenario{
	{
		Name:   "arcs",
		Width:  100,
		Height: 60,
		Layers: []Layer{
			{Styling: &style.LineStyling{Stroke: pen(blue, 3)}, Geometry: arc(10, 10, 30, 50, 50, 10, 70, 30, 90, 10)},
			{Styling: &style.PointStyling{Graphic: mark(style.Circle, 5, red)}, Geometry: arc(10, 10, 30, 50, 50, 10, 70, 30, 90, 10)},
		},
	},
	{
		Name:   "circle",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling:  &style.PolygonStyling{Fill: solid(yellow), Stroke: pen(black, 2)},
				Geometry: disc(56, 32, 32, 56, 8, 32),
			},
		},
	},
	{
		Name:   "mixed_segments",
		Width:  100,
		Height: 60,
		Layers: []Layer{
			{
				Styling: &style.LineStyling{Stroke: pen(green, 2)},
				Geometry: &geometry.Curve{Segments: []geometry.Segment{
					{Kind: geometry.LineSegment, Points: []orb.Point{{10, 10}, {40, 10}}},
					{Kind: geometry.ArcSegment, Points: []orb.Point{{40, 10}, {55, 25}, {40, 40}}},
					{Kind: geometry.LineSegment, Points: []orb.Point{{40, 40}, {90, 50}}},
				}},
			},
		},
	},
}
