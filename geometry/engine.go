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
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Engine provides the geometric operations needed by the renderer.
type Engine interface {
	// Transform converts g into the given coordinate reference system.
	// Geometries with non-linear segments may fail with ErrTooComplex.
	Transform(g Geometry, to CRS) (Geometry, error)

	// Linearize replaces all arcs and circles in g by polylines with at
	// most maxPoints points per segment.
	Linearize(g Geometry, maxPoints int) (Geometry, error)

	// Intersect returns the intersection of area and g, or nil if the
	// intersection is empty. If g is unchanged, g itself is returned.
	// ErrUnsupported signals that the intersection cannot be computed.
	Intersect(area, g Geometry) (Geometry, error)

	// Contains reports whether g lies completely inside area.
	Contains(area, g Geometry) bool

	// IsCCW reports whether the ring winds counter-clockwise in a
	// coordinate system with the y-axis pointing up.
	IsCCW(ring []orb.Point) bool

	// InteriorPoints returns one point inside every patch of s.
	InteriorPoints(s *Surface) ([]orb.Point, error)
}

// Planar implements Engine for planar coordinates using orb.
// Intersections are supported when the area is an axis-aligned
// rectangle, which is the case for viewport clipping.
type Planar struct {
	projections map[[2]CRS]orb.Projection
}

var _ Engine = (*Planar)(nil)

// NewPlanar returns an engine which knows the conversions between WGS84
// longitude/latitude and spherical Web Mercator.
func NewPlanar() *Planar {
	p := &Planar{projections: make(map[[2]CRS]orb.Projection)}
	p.Register(WGS84, WebMercator, project.WGS84.ToMercator)
	p.Register(WebMercator, WGS84, project.Mercator.ToWGS84)
	return p
}

// Register adds a point projection from one system to another.
// Register must not be called concurrently with other methods.
func (p *Planar) Register(from, to CRS, proj orb.Projection) {
	p.projections[[2]CRS{from.Canonical(), to.Canonical()}] = proj
}

// Transform implements the Engine interface.
func (p *Planar) Transform(g Geometry, to CRS) (Geometry, error) {
	from := g.SRS()
	if from == "" || from.Equal(to) {
		return g, nil
	}
	proj, ok := p.projections[[2]CRS{from.Canonical(), to.Canonical()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrUnknownCRS, from, to)
	}
	if !IsLinear(g) {
		return nil, ErrTooComplex
	}
	return mapPoints(g, proj, to)
}

// mapPoints returns a copy of g with every coordinate passed through f.
func mapPoints(g Geometry, f func(orb.Point) orb.Point, crs CRS) (Geometry, error) {
	segs := func(in []Segment) []Segment {
		out := make([]Segment, len(in))
		for i, s := range in {
			pts := make([]orb.Point, len(s.Points))
			for j, q := range s.Points {
				pts[j] = f(q)
			}
			out[i] = Segment{Kind: s.Kind, Points: pts}
		}
		return out
	}
	ring := func(r *Ring) *Ring {
		return &Ring{Curve: Curve{Segments: segs(r.Segments), CRS: crs}}
	}

	switch g := g.(type) {
	case *Point:
		return &Point{Coord: f(g.Coord), CRS: crs}, nil
	case *Curve:
		return &Curve{Segments: segs(g.Segments), CRS: crs}, nil
	case *Ring:
		return ring(g), nil
	case *Surface:
		s := &Surface{CRS: crs}
		for _, patch := range g.Patches {
			np := &Patch{Kind: patch.Kind}
			if patch.Exterior != nil {
				np.Exterior = ring(patch.Exterior)
			}
			for _, r := range patch.Interior {
				np.Interior = append(np.Interior, ring(r))
			}
			s.Patches = append(s.Patches, np)
		}
		return s, nil
	case *Multi:
		m := &Multi{CRS: crs}
		for _, member := range g.Members {
			mm, err := mapPoints(member, f, crs)
			if err != nil {
				return nil, err
			}
			m.Members = append(m.Members, mm)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: transform %T", ErrUnsupported, g)
}

// Linearize implements the Engine interface. Linear geometries are
// returned unchanged.
func (p *Planar) Linearize(g Geometry, maxPoints int) (Geometry, error) {
	if IsLinear(g) {
		return g, nil
	}
	segs := func(in []Segment) []Segment {
		var pts []orb.Point
		for _, s := range in {
			lin := LinearizeSegment(s, maxPoints)
			if len(pts) > 0 && len(lin) > 0 && pts[len(pts)-1] == lin[0] {
				lin = lin[1:]
			}
			pts = append(pts, lin...)
		}
		return []Segment{{Kind: LineSegment, Points: pts}}
	}
	ring := func(r *Ring) *Ring {
		return &Ring{Curve: Curve{Segments: segs(r.Segments), CRS: r.CRS}}
	}

	switch g := g.(type) {
	case *Curve:
		return &Curve{Segments: segs(g.Segments), CRS: g.CRS}, nil
	case *Ring:
		return ring(g), nil
	case *Surface:
		s := &Surface{CRS: g.CRS}
		for _, patch := range g.Patches {
			np := &Patch{Kind: patch.Kind}
			if patch.Exterior != nil {
				np.Exterior = ring(patch.Exterior)
			}
			for _, r := range patch.Interior {
				np.Interior = append(np.Interior, ring(r))
			}
			s.Patches = append(s.Patches, np)
		}
		return s, nil
	case *Multi:
		m := &Multi{CRS: g.CRS}
		for _, member := range g.Members {
			lm, err := p.Linearize(member, maxPoints)
			if err != nil {
				return nil, err
			}
			m.Members = append(m.Members, lm)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: linearize %T", ErrUnsupported, g)
}

// Intersect implements the Engine interface.
func (p *Planar) Intersect(area, g Geometry) (Geometry, error) {
	box, ok := rectangle(area)
	if !ok {
		return nil, fmt.Errorf("%w: intersection with a non-rectangular area", ErrUnsupported)
	}
	return clipTo(box, g)
}

func clipTo(box orb.Bound, g Geometry) (Geometry, error) {
	if m, ok := g.(*Multi); ok {
		var members []Geometry
		changed := false
		for _, member := range m.Members {
			c, err := clipTo(box, member)
			if err != nil {
				return nil, err
			}
			if c != member {
				changed = true
			}
			if c != nil {
				members = append(members, c)
			}
		}
		switch {
		case !changed:
			return g, nil
		case len(members) == 0:
			return nil, nil
		}
		return &Multi{Members: members, CRS: m.CRS}, nil
	}

	og, err := ToOrb(g)
	if err != nil {
		return nil, err
	}
	b := og.Bound()
	if box.Contains(b.Min) && box.Contains(b.Max) {
		return g, nil
	}
	res := clip.Geometry(box, orb.Clone(og))
	if res == nil {
		return nil, nil
	}
	if orb.Equal(res, og) {
		return g, nil
	}
	return FromOrb(res, g.SRS()), nil
}

// rectangle returns the bound of area if area is an axis-aligned
// rectangle without holes.
func rectangle(area Geometry) (orb.Bound, bool) {
	var ring *Ring
	switch a := area.(type) {
	case *Surface:
		if len(a.Patches) != 1 || a.Patches[0].Kind != PolygonPatch || len(a.Patches[0].Interior) > 0 {
			return orb.Bound{}, false
		}
		ring = a.Patches[0].Exterior
	case *Ring:
		ring = a
	default:
		return orb.Bound{}, false
	}
	if ring == nil || !ring.IsLinear() {
		return orb.Bound{}, false
	}
	pts := ring.ControlPoints()
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) != 4 {
		return orb.Bound{}, false
	}
	b := orb.MultiPoint(pts).Bound()
	if b.Min[0] == b.Max[0] || b.Min[1] == b.Max[1] {
		return orb.Bound{}, false
	}

	// each vertex must be a different corner of b
	var seen [4]bool
	for _, q := range pts {
		var k int
		switch {
		case q[0] == b.Min[0]:
		case q[0] == b.Max[0]:
			k |= 1
		default:
			return orb.Bound{}, false
		}
		switch {
		case q[1] == b.Min[1]:
		case q[1] == b.Max[1]:
			k |= 2
		default:
			return orb.Bound{}, false
		}
		if seen[k] {
			return orb.Bound{}, false
		}
		seen[k] = true
	}
	return b, true
}

// Contains implements the Engine interface. Points on the boundary of
// area count as inside.
func (p *Planar) Contains(area, g Geometry) bool {
	g, err := p.Linearize(g, 32)
	if err != nil {
		return false
	}
	og, err := ToOrb(g)
	if err != nil {
		return false
	}
	if box, ok := rectangle(area); ok {
		b := og.Bound()
		return box.Contains(b.Min) && box.Contains(b.Max)
	}

	a, err := p.Linearize(area, 32)
	if err != nil {
		return false
	}
	oa, err := ToOrb(a)
	if err != nil {
		return false
	}
	var polys orb.MultiPolygon
	switch oa := oa.(type) {
	case orb.Polygon:
		polys = orb.MultiPolygon{oa}
	case orb.MultiPolygon:
		polys = oa
	case orb.Ring:
		polys = orb.MultiPolygon{{oa}}
	default:
		return false
	}
	for _, q := range vertices(og, nil) {
		if !planar.MultiPolygonContains(polys, q) {
			return false
		}
	}
	return true
}

func vertices(g orb.Geometry, out []orb.Point) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		out = append(out, g)
	case orb.LineString:
		out = append(out, g...)
	case orb.Ring:
		out = append(out, g...)
	case orb.Polygon:
		for _, r := range g {
			out = append(out, r...)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			out = vertices(poly, out)
		}
	case orb.Collection:
		for _, c := range g {
			out = vertices(c, out)
		}
	}
	return out
}

// IsCCW implements the Engine interface.
func (p *Planar) IsCCW(ring []orb.Point) bool {
	if len(ring) < 3 {
		return false
	}
	return orb.Ring(ring).Orientation() == orb.CCW
}

// InteriorPoints implements the Engine interface. The centroid is used
// where it lies inside the patch, otherwise the middle of the widest
// horizontal span.
func (p *Planar) InteriorPoints(s *Surface) ([]orb.Point, error) {
	var res []orb.Point
	for _, patch := range s.Patches {
		if patch.Kind != PolygonPatch {
			return nil, fmt.Errorf("%w: curved surface patch", ErrUnsupported)
		}
		lin, err := p.Linearize(&Surface{Patches: []*Patch{patch}}, 32)
		if err != nil {
			return nil, err
		}
		poly, err := patchToOrb(lin.(*Surface).Patches[0])
		if err != nil {
			return nil, err
		}
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		c, area := planar.CentroidArea(poly)
		if area > 0 && planar.PolygonContains(poly, c) {
			res = append(res, c)
			continue
		}
		res = append(res, scanlinePoint(poly))
	}
	return res, nil
}

// scanlinePoint returns the middle of the widest interior span along a
// few horizontal lines through the polygon.
func scanlinePoint(poly orb.Polygon) orb.Point {
	b := poly.Bound()
	best := b.Center()
	bestWidth := -1.0
	for _, f := range []float64{0.5, 0.25, 0.75, 0.375, 0.625, 0.125, 0.875} {
		y := b.Min[1] + f*(b.Max[1]-b.Min[1])
		var xs []float64
		for _, r := range poly {
			for i := 0; i+1 < len(r); i++ {
				a, c := r[i], r[i+1]
				if (a[1] > y) == (c[1] > y) {
					continue
				}
				t := (y - a[1]) / (c[1] - a[1])
				xs = append(xs, a[0]+t*(c[0]-a[0]))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			if w := xs[i+1] - xs[i]; w > bestWidth {
				bestWidth = w
				best = orb.Point{(xs[i] + xs[i+1]) / 2, y}
			}
		}
		if bestWidth > 0 {
			break
		}
	}
	return best
}
