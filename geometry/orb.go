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

	"github.com/paulmach/orb"
)

// ToOrb converts a linear geometry into the corresponding orb type.
// Surfaces with one patch become polygons, surfaces with several patches
// multi-polygons, and Multi becomes an orb.Collection.
func ToOrb(g Geometry) (orb.Geometry, error) {
	switch g := g.(type) {
	case *Point:
		return g.Coord, nil
	case *Curve:
		if !g.IsLinear() {
			return nil, fmt.Errorf("curve with %w", errNonLinear)
		}
		return orb.LineString(g.ControlPoints()), nil
	case *Ring:
		r, err := ringToOrb(g)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *Surface:
		mp := make(orb.MultiPolygon, 0, len(g.Patches))
		for _, p := range g.Patches {
			poly, err := patchToOrb(p)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		if len(mp) == 1 {
			return mp[0], nil
		}
		return mp, nil
	case *Multi:
		c := make(orb.Collection, 0, len(g.Members))
		for _, m := range g.Members {
			og, err := ToOrb(m)
			if err != nil {
				return nil, err
			}
			c = append(c, og)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, g)
}

var errNonLinear = fmt.Errorf("non-linear segments: %w", ErrUnsupported)

func ringToOrb(r *Ring) (orb.Ring, error) {
	if !r.IsLinear() {
		return nil, fmt.Errorf("ring with %w", errNonLinear)
	}
	pts := r.ControlPoints()
	if n := len(pts); n > 0 && pts[0] != pts[n-1] {
		pts = append(pts, pts[0])
	}
	return orb.Ring(pts), nil
}

func patchToOrb(p *Patch) (orb.Polygon, error) {
	if p.Kind != PolygonPatch {
		return nil, fmt.Errorf("%w: curved surface patch", ErrUnsupported)
	}
	var poly orb.Polygon
	for _, r := range p.Rings() {
		or, err := ringToOrb(r)
		if err != nil {
			return nil, err
		}
		poly = append(poly, or)
	}
	return poly, nil
}

// FromOrb converts an orb geometry into the geometry model, tagging all
// parts with crs.
func FromOrb(g orb.Geometry, crs CRS) Geometry {
	switch g := g.(type) {
	case orb.Point:
		return &Point{Coord: g, CRS: crs}
	case orb.MultiPoint:
		m := &Multi{CRS: crs}
		for _, p := range g {
			m.Members = append(m.Members, &Point{Coord: p, CRS: crs})
		}
		return m
	case orb.LineString:
		return NewLineString(crs, g...)
	case orb.MultiLineString:
		m := &Multi{CRS: crs}
		for _, ls := range g {
			m.Members = append(m.Members, NewLineString(crs, ls...))
		}
		return m
	case orb.Ring:
		return NewRing(crs, g...)
	case orb.Polygon:
		return &Surface{Patches: []*Patch{polygonPatch(g, crs)}, CRS: crs}
	case orb.MultiPolygon:
		s := &Surface{CRS: crs}
		for _, p := range g {
			s.Patches = append(s.Patches, polygonPatch(p, crs))
		}
		return s
	case orb.Collection:
		m := &Multi{CRS: crs}
		for _, c := range g {
			m.Members = append(m.Members, FromOrb(c, crs))
		}
		return m
	case orb.Bound:
		return NewPolygon(crs, g.ToRing())
	}
	return nil
}

func polygonPatch(p orb.Polygon, crs CRS) *Patch {
	patch := &Patch{}
	for i, r := range p {
		ring := NewRing(crs, r...)
		if i == 0 {
			patch.Exterior = ring
		} else {
			patch.Interior = append(patch.Interior, ring)
		}
	}
	return patch
}
