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

package symbol

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/style"
)

// circleK is the control point distance for a quarter circle of radius 1.
const circleK = 0.5522847498307936

// MarkPath returns the outline of a well-known mark, centred on the
// origin and fitting into a size×size square. The y-axis points down.
// Unknown names give a square.
func MarkPath(name style.WellKnownName, size float64) *path.Data {
	h := size / 2
	p := &path.Data{}
	switch name {
	case style.Circle:
		k := circleK * h
		return p.MoveTo(vec.Vec2{X: h}).
			CubeTo(vec.Vec2{X: h, Y: k}, vec.Vec2{X: k, Y: h}, vec.Vec2{Y: h}).
			CubeTo(vec.Vec2{X: -k, Y: h}, vec.Vec2{X: -h, Y: k}, vec.Vec2{X: -h}).
			CubeTo(vec.Vec2{X: -h, Y: -k}, vec.Vec2{X: -k, Y: -h}, vec.Vec2{Y: -h}).
			CubeTo(vec.Vec2{X: k, Y: -h}, vec.Vec2{X: h, Y: -k}, vec.Vec2{X: h}).
			Close()
	case style.Triangle:
		return polygon(p, vec.Vec2{Y: -h}, vec.Vec2{X: h, Y: h}, vec.Vec2{X: -h, Y: h})
	case style.Star:
		var pts [10]vec.Vec2
		inner := h * 0.381966
		for i := range pts {
			r := h
			if i%2 == 1 {
				r = inner
			}
			s, c := math.Sincos(float64(i) * math.Pi / 5)
			pts[i] = vec.Vec2{X: r * s, Y: -r * c}
		}
		return polygon(p, pts[:]...)
	case style.Cross, style.X:
		t := size / 10
		pts := []vec.Vec2{
			{X: -t, Y: -h}, {X: t, Y: -h}, {X: t, Y: -t}, {X: h, Y: -t},
			{X: h, Y: t}, {X: t, Y: t}, {X: t, Y: h}, {X: -t, Y: h},
			{X: -t, Y: t}, {X: -h, Y: t}, {X: -h, Y: -t}, {X: -t, Y: -t},
		}
		if name == style.X {
			s := math.Sqrt2 / 2
			for i, q := range pts {
				pts[i] = vec.Vec2{X: s * (q.X - q.Y), Y: s * (q.X + q.Y)}
			}
		}
		return polygon(p, pts...)
	}
	return polygon(p, vec.Vec2{X: -h, Y: -h}, vec.Vec2{X: h, Y: -h}, vec.Vec2{X: h, Y: h}, vec.Vec2{X: -h, Y: h})
}

func polygon(p *path.Data, pts ...vec.Vec2) *path.Data {
	p = p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}
