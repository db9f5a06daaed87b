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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyline is a flattened subpath in user space.
type polyline struct {
	pts    []vec.Vec2
	closed bool

	// dir is the tangent to use for caps when pts has collapsed to a
	// single point, or zero if the subpath never had a direction.
	dir vec.Vec2
}

// Stroke rasterizes the outline of p using Width, Cap, Join, MiterLimit,
// Dash and DashPhase.
//
// The outline is assembled from one polygon per segment, join and cap.
// All pieces are oriented the same way, so that the nonzero rule paints
// their union exactly once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}
	r.lines = r.flattenSubpaths(p, r.lines[:0])
	lines := r.lines
	if len(r.Dash) > 0 {
		r.dashed = applyDash(lines, r.Dash, r.DashPhase, r.dashed[:0])
		lines = r.dashed
	}

	r.beginEdges()
	d := r.Width / 2
	for i := range lines {
		r.strokePolyline(&lines[i], d)
	}
	r.scan(fillNonZero, emit)
}

// flattenSubpaths splits p into polylines, flattening curves and dropping
// zero-length segments.
func (r *Rasterizer) flattenSubpaths(p *path.Data, out []polyline) []polyline {
	var cur *polyline
	var start vec.Vec2
	drawn := false
	add := func(_, b vec.Vec2) {
		drawn = true
		if last := cur.pts[len(cur.pts)-1]; b.Sub(last).Length() >= zeroLengthThreshold {
			cur.pts = append(cur.pts, b)
		}
	}
	finish := func(closed bool) {
		if cur == nil || !drawn {
			cur = nil
			return
		}
		cur.closed = closed && len(cur.pts) > 2
		out = append(out, *cur)
		cur = nil
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			start = p.Coords[k]
			cur = &polyline{pts: []vec.Vec2{start}}
			drawn = false
			k++
		case path.CmdLineTo:
			if cur != nil {
				add(vec.Vec2{}, p.Coords[k])
			}
			k++
		case path.CmdQuadTo:
			if cur != nil {
				r.flattenQuadratic(cur.pts[len(cur.pts)-1], p.Coords[k], p.Coords[k+1], add)
			}
			k += 2
		case path.CmdCubeTo:
			if cur != nil {
				r.flattenCubic(cur.pts[len(cur.pts)-1], p.Coords[k], p.Coords[k+1], p.Coords[k+2], add)
			}
			k += 3
		case path.CmdClose:
			if cur != nil {
				if n := len(cur.pts); n > 1 && cur.pts[n-1].Sub(start).Length() < zeroLengthThreshold {
					cur.pts = cur.pts[:n-1]
				}
				drawn = true
				finish(true)
			}
		}
	}
	finish(false)
	return out
}

// strokePolyline adds the outline pieces of one polyline.
// d is half the line width.
func (r *Rasterizer) strokePolyline(pl *polyline, d float64) {
	pts := pl.pts
	if len(pts) == 1 {
		r.strokeDot(pts[0], pl.dir, d)
		return
	}

	n := len(pts) - 1
	if pl.closed {
		n = len(pts)
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		t := unit(b.Sub(a))
		off := normal(t).Mul(d)
		r.addPolygon(a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))
	}

	for i := 1; i < len(pts)-1; i++ {
		r.addJoin(pts[i], unit(pts[i].Sub(pts[i-1])), unit(pts[i+1].Sub(pts[i])), d)
	}
	if pl.closed {
		last := len(pts) - 1
		r.addJoin(pts[last], unit(pts[last].Sub(pts[last-1])), unit(pts[0].Sub(pts[last])), d)
		r.addJoin(pts[0], unit(pts[0].Sub(pts[last])), unit(pts[1].Sub(pts[0])), d)
		return
	}

	r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
	r.addCap(pts[len(pts)-1], unit(pts[len(pts)-1].Sub(pts[len(pts)-2])), d)
}

// strokeDot handles subpaths without length. Only round caps and, when a
// direction is known, square caps produce output.
func (r *Rasterizer) strokeDot(c, dir vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.ring = r.arc(r.ring[:0], c, d, vec.Vec2{X: 1}, 2*math.Pi)
		r.addPolygon(r.ring...)
	case graphics.LineCapSquare:
		if dir == (vec.Vec2{}) {
			return
		}
		t := dir.Mul(d)
		n := normal(dir).Mul(d)
		r.addPolygon(c.Add(t).Add(n), c.Sub(t).Add(n), c.Sub(t).Sub(n), c.Add(t).Sub(n))
	}
}

// addCap adds a cap at p, where t points away from the line.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	n := normal(t).Mul(d)
	switch r.Cap {
	case graphics.LineCapSquare:
		e := p.Add(t.Mul(d))
		r.addPolygon(p.Sub(n), p.Add(n), e.Add(n), e.Sub(n))
	case graphics.LineCapRound:
		r.ring = append(r.ring[:0], p)
		r.ring = r.arc(r.ring, p, d, unit(n), -math.Pi)
		r.addPolygon(r.ring...)
	}
}

// addJoin fills the wedge on the outer side of the corner at p, where the
// direction changes from t1 to t2.
func (r *Rasterizer) addJoin(p, t1, t2 vec.Vec2, d float64) {
	sin := cross(t1, t2)
	cos := t1.Dot(t2)
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}

	// the outer side is opposite to the turn direction
	n1, n2 := normal(t1), normal(t2)
	if sin > 0 {
		n1, n2 = n1.Mul(-1), n2.Mul(-1)
	}
	o1, o2 := p.Add(n1.Mul(d)), p.Add(n2.Mul(d))

	switch r.Join {
	case graphics.LineJoinRound:
		sweep := math.Acos(max(-1, min(1, cos)))
		if cross(n1, n2) < 0 {
			sweep = -sweep
		}
		r.ring = append(r.ring[:0], p)
		r.ring = r.arc(r.ring, p, d, n1, sweep)
		r.addPolygon(r.ring...)
		return
	case graphics.LineJoinMiter:
		// miter length relative to the line width is 1/cos(θ/2)
		half := math.Sqrt((1 + cos) / 2)
		if half > 0 && 1/half <= r.MiterLimit+1e-10 {
			bis := n1.Add(n2)
			if l := bis.Length(); l > zeroLengthThreshold {
				m := p.Add(bis.Mul(d / (half * l)))
				r.addPolygon(p, o1, m, o2)
				return
			}
		}
	}
	r.addPolygon(p, o1, o2)
}

// arc appends points on a circle around c, starting at direction from
// and sweeping by the given angle (positive is counter-clockwise).
func (r *Rasterizer) arc(out []vec.Vec2, c vec.Vec2, radius float64, from vec.Vec2, sweep float64) []vec.Vec2 {
	dev := radius * r.deviceScale()
	n := 1
	if dev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/dev)
		if step > 0 && !math.IsNaN(step) {
			n = int(math.Ceil(math.Abs(sweep) / step))
		}
	} else {
		n = 2
	}
	n = max(n, 2)
	for i := 0; i <= n; i++ {
		a := sweep * float64(i) / float64(n)
		s, co := math.Sincos(a)
		dir := vec.Vec2{X: from.X*co - from.Y*s, Y: from.X*s + from.Y*co}
		out = append(out, c.Add(dir.Mul(radius)))
	}
	return out
}

// addPolygon adds a closed polygon, reversed if necessary so that every
// stroke piece has positive signed area.
func (r *Rasterizer) addPolygon(pts ...vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	var area float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area += a.X*b.Y - b.X*a.Y
	}
	if math.Abs(area) < zeroLengthThreshold {
		return
	}
	if area > 0 {
		for i := range pts {
			r.addEdge(pts[i], pts[(i+1)%len(pts)])
		}
		return
	}
	for i := len(pts) - 1; i >= 0; i-- {
		r.addEdge(pts[(i+1)%len(pts)], pts[i])
	}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l < zeroLengthThreshold {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// normal returns v rotated by 90 degrees counter-clockwise.
func normal(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
