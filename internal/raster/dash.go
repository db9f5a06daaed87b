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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// applyDash cuts the polylines into dashes. Even pattern entries are
// "on", odd entries "off"; a pattern of odd length is used twice per
// period. Dashes never form closed polylines. For a closed polyline which
// starts and ends inside a dash, the two pieces are joined into one.
func applyDash(lines []polyline, pattern []float64, phase float64, out []polyline) []polyline {
	var period float64
	for _, v := range pattern {
		period += v
	}
	if len(pattern)%2 == 1 {
		period *= 2
	}
	if period <= 0 {
		return append(out, lines...)
	}
	phase = math.Mod(phase, period)
	if phase < 0 {
		phase += period
	}
	entry := func(i int) float64 { return pattern[i%len(pattern)] }

	for _, pl := range lines {
		pts := pl.pts
		if pl.closed {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		if len(pts) < 2 {
			out = append(out, pl)
			continue
		}

		idx := 0
		left := phase
		for left > 0 && left >= entry(idx) {
			left -= entry(idx)
			idx++
		}
		remaining := entry(idx) - left
		on := idx%2 == 0
		startedOn := on
		first := len(out)

		var cur []vec.Vec2
		if on {
			cur = []vec.Vec2{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			seg := b.Sub(a)
			segLen := seg.Length()
			t := unit(seg)
			pos := 0.0
			for segLen-pos > remaining {
				pos += remaining
				p := a.Add(t.Mul(pos))
				if on {
					cur = append(cur, p)
					out = append(out, polyline{pts: cur, dir: t})
					cur = nil
				} else {
					cur = []vec.Vec2{p}
				}
				idx++
				remaining = entry(idx)
				on = idx%2 == 0
			}
			remaining -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if !on || len(cur) == 0 {
			continue
		}

		if pl.closed && startedOn && len(out) > first {
			// merge the trailing dash with the leading one
			head := out[first]
			merged := append(cur, head.pts[1:]...)
			out[first] = polyline{pts: merged, dir: head.dir}
			continue
		}
		out = append(out, polyline{pts: cur, dir: unit(pts[len(pts)-1].Sub(pts[len(pts)-2]))})
	}

	for i := range out {
		out[i].pts = dedup(out[i].pts)
	}
	return out
}

// dedup removes consecutive points closer than zeroLengthThreshold.
func dedup(pts []vec.Vec2) []vec.Vec2 {
	if len(pts) < 2 {
		return pts
	}
	res := pts[:1]
	for _, p := range pts[1:] {
		if p.Sub(res[len(res)-1]).Length() >= zeroLengthThreshold {
			res = append(res, p)
		}
	}
	return res
}
