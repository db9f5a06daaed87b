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
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"seehuhn.de/go/maprender/geometry"
)

// ExteriorWinding is the orientation of exterior rings in world
// coordinates after FixOrientation. Interior rings wind the other way.
const ExteriorWinding = orb.CCW

var (
	// ErrNonLinearRing is returned by FixOrientation for rings with arcs.
	ErrNonLinearRing = errors.New("render: cannot orient a non-linear ring")

	// ErrUnsupportedMember is returned by FixOrientation for collection
	// members it cannot handle.
	ErrUnsupportedMember = errors.New("render: unsupported collection member")
)

// FixOrientation reverses the rings of surfaces where needed, so that
// exterior rings wind as ExteriorWinding and interior rings the opposite
// way. Geometries other than surfaces and collections are returned
// unchanged, as are surfaces which are already oriented correctly.
func FixOrientation(e geometry.Engine, g geometry.Geometry) (geometry.Geometry, error) {
	switch g := g.(type) {
	case *geometry.Surface:
		return fixSurface(e, g)
	case *geometry.Multi:
		res := &geometry.Multi{CRS: g.CRS, Members: make([]geometry.Geometry, len(g.Members))}
		changed := false
		for i, m := range g.Members {
			switch m.(type) {
			case *geometry.Point, *geometry.Curve, *geometry.Ring, *geometry.Surface, *geometry.Multi:
			default:
				return nil, fmt.Errorf("%w: %T", ErrUnsupportedMember, m)
			}
			fixed, err := FixOrientation(e, m)
			if err != nil {
				return nil, err
			}
			res.Members[i] = fixed
			changed = changed || fixed != m
		}
		if !changed {
			return g, nil
		}
		return res, nil
	}
	return g, nil
}

func fixSurface(e geometry.Engine, s *geometry.Surface) (geometry.Geometry, error) {
	res := &geometry.Surface{CRS: s.CRS, Patches: make([]*geometry.Patch, len(s.Patches))}
	changed := false
	orient := func(r *geometry.Ring, ccw bool) (*geometry.Ring, error) {
		if r == nil {
			return nil, nil
		}
		if !r.IsLinear() {
			return nil, ErrNonLinearRing
		}
		if e.IsCCW(r.ControlPoints()) == ccw {
			return r, nil
		}
		changed = true
		return r.Reversed(), nil
	}

	for i, p := range s.Patches {
		np := &geometry.Patch{Kind: p.Kind}
		var err error
		np.Exterior, err = orient(p.Exterior, ExteriorWinding == orb.CCW)
		if err != nil {
			return nil, err
		}
		for _, r := range p.Interior {
			nr, err := orient(r, ExteriorWinding != orb.CCW)
			if err != nil {
				return nil, err
			}
			np.Interior = append(np.Interior, nr)
		}
		res.Patches[i] = np
	}
	if !changed {
		return s, nil
	}
	return res, nil
}
