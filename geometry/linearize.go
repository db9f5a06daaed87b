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

package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// LinearizeSegment approximates s by a polyline. Every arc and circle is
// replaced by at most maxPoints points; line segments are returned as is.
func LinearizeSegment(s Segment, maxPoints int) []orb.Point {
	maxPoints = max(maxPoints, 2)
	switch s.Kind {
	case ArcSegment:
		if len(s.Points) < 3 {
			return s.Points
		}
		var res []orb.Point
		for i := 0; i+2 < len(s.Points); i += 2 {
			arc := arcPoints(s.Points[i], s.Points[i+1], s.Points[i+2], maxPoints)
			if len(res) > 0 {
				arc = arc[1:]
			}
			res = append(res, arc...)
		}
		return res
	case CircleSegment:
		if len(s.Points) < 3 {
			return s.Points
		}
		return circlePoints(s.Points[0], s.Points[1], s.Points[2], maxPoints)
	}
	return s.Points
}

// circumcenter returns the center of the circle through a, b and c.
// ok is false if the points are collinear.
func circumcenter(a, b, c orb.Point) (center orb.Point, ok bool) {
	d := 2 * (a[0]*(b[1]-c[1]) + b[0]*(c[1]-a[1]) + c[0]*(a[1]-b[1]))
	if math.Abs(d) < 1e-12 {
		return orb.Point{}, false
	}
	a2 := a[0]*a[0] + a[1]*a[1]
	b2 := b[0]*b[0] + b[1]*b[1]
	c2 := c[0]*c[0] + c[1]*c[1]
	return orb.Point{
		(a2*(b[1]-c[1]) + b2*(c[1]-a[1]) + c2*(a[1]-b[1])) / d,
		(a2*(c[0]-b[0]) + b2*(a[0]-c[0]) + c2*(b[0]-a[0])) / d,
	}, true
}

// turn is positive if a, b, c make a left turn.
func turn(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// arcPoints returns n points on the arc from a through m to b.
func arcPoints(a, m, b orb.Point, n int) []orb.Point {
	c, ok := circumcenter(a, m, b)
	if !ok {
		return []orb.Point{a, m, b}
	}
	r := math.Hypot(a[0]-c[0], a[1]-c[1])
	start := math.Atan2(a[1]-c[1], a[0]-c[0])
	end := math.Atan2(b[1]-c[1], b[0]-c[0])
	sweep := end - start
	if turn(a, m, b) > 0 {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}

	res := make([]orb.Point, n)
	res[0] = a
	for i := 1; i < n-1; i++ {
		t := start + sweep*float64(i)/float64(n-1)
		res[i] = orb.Point{c[0] + r*math.Cos(t), c[1] + r*math.Sin(t)}
	}
	res[n-1] = b
	return res
}

// circlePoints returns a closed ring of n points on the circle through a,
// b and c, starting at a and running in the direction a → b → c.
func circlePoints(a, b, c orb.Point, n int) []orb.Point {
	center, ok := circumcenter(a, b, c)
	if !ok {
		return []orb.Point{a, b, c, a}
	}
	n = max(n, 4)
	r := math.Hypot(a[0]-center[0], a[1]-center[1])
	start := math.Atan2(a[1]-center[1], a[0]-center[0])
	dir := 1.0
	if turn(a, b, c) < 0 {
		dir = -1
	}
	res := make([]orb.Point, n)
	res[0] = a
	for i := 1; i < n-1; i++ {
		t := start + dir*2*math.Pi*float64(i)/float64(n-1)
		res[i] = orb.Point{center[0] + r*math.Cos(t), center[1] + r*math.Sin(t)}
	}
	res[n-1] = a
	return res
}
