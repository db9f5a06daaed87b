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

package render

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maprender/style"
)

// maxMiter limits the length of corners of standard offset lines,
// relative to the offset distance.
const maxMiter = 10

// Offset returns a line parallel to pl at distance d. Positive distances
// move the line to the left, as seen when following it on the screen.
func Offset(pl Polyline, d float64, kind style.OffsetType) Polyline {
	pts := dedupe(pl.Points, pl.Closed)
	if d == 0 || len(pts) < 2 {
		return Polyline{Points: pts, Closed: pl.Closed}
	}

	n := len(pts) - 1
	if pl.Closed {
		n = len(pts)
	}
	type seg struct{ a, b, n vec.Vec2 }
	segs := make([]seg, n)
	for i := range segs {
		p, q := pts[i], pts[(i+1)%len(pts)]
		t := q.Sub(p)
		t = t.Mul(1 / t.Length())
		nv := vec.Vec2{X: t.Y, Y: -t.X}
		segs[i] = seg{a: p.Add(nv.Mul(d)), b: q.Add(nv.Mul(d)), n: nv}
	}

	var out []vec.Vec2
	corner := func(prev, next seg, at vec.Vec2) {
		turn := cross(prev.b.Sub(prev.a), next.b.Sub(next.a))
		outer := turn*d > 0 // the offset side is outside of the bend
		if math.Abs(turn) < 1e-12 {
			out = append(out, prev.b)
			return
		}
		if !outer || kind == style.OffsetStandard {
			if m, ok := intersect(prev.a, prev.b, next.a, next.b); ok && (!outer || m.Sub(at).Length() <= maxMiter*math.Abs(d)) {
				out = append(out, m)
				return
			}
		}
		out = append(out, prev.b)
		if outer && kind == style.OffsetRound {
			from := math.Atan2(prev.n.Y, prev.n.X)
			to := math.Atan2(next.n.Y, next.n.X)
			sweep := math.Remainder(to-from, 2*math.Pi)
			steps := int(math.Ceil(math.Abs(sweep) / (math.Pi / 16)))
			r := math.Abs(d)
			sign := math.Copysign(1, d)
			for k := 1; k < steps; k++ {
				a := from + sweep*float64(k)/float64(steps)
				out = append(out, at.Add(vec.Vec2{X: math.Cos(a), Y: math.Sin(a)}.Mul(r*sign)))
			}
		}
		out = append(out, next.a)
	}

	if pl.Closed {
		for i := range segs {
			corner(segs[(i+n-1)%n], segs[i], pts[i])
		}
		return Polyline{Points: out, Closed: true}
	}
	out = append(out, segs[0].a)
	for i := 1; i < n; i++ {
		corner(segs[i-1], segs[i], pts[i])
	}
	out = append(out, segs[n-1].b)
	return Polyline{Points: out}
}

// dedupe drops repeated points, including a closing point equal to the
// first one.
func dedupe(pts []vec.Vec2, closed bool) []vec.Vec2 {
	res := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(res) > 0 && p.Sub(res[len(res)-1]).Length() < 1e-9 {
			continue
		}
		res = append(res, p)
	}
	if closed && len(res) > 1 && res[0].Sub(res[len(res)-1]).Length() < 1e-9 {
		res = res[:len(res)-1]
	}
	return res
}

// intersect returns the intersection of the lines through a1, b1 and
// through a2, b2.
func intersect(a1, b1, a2, b2 vec.Vec2) (vec.Vec2, bool) {
	d1, d2 := b1.Sub(a1), b2.Sub(a2)
	den := cross(d1, d2)
	if math.Abs(den) < 1e-12 {
		return vec.Vec2{}, false
	}
	t := cross(a2.Sub(a1), d2) / den
	return a1.Add(d1.Mul(t)), true
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
