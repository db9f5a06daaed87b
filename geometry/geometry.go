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

// Package geometry provides the geometry model consumed by the renderer,
// together with the [Engine] interface for coordinate transforms,
// linearization, clipping and related operations.
//
// All geometry values are handled by pointer. Operations which do not
// change a geometry return the very same pointer, so that callers can
// detect a no-op by comparing interface values.
package geometry

import (
	"errors"
	"strings"

	"github.com/paulmach/orb"
)

var (
	// ErrUnsupported is returned when an operation is not available for
	// the given geometry type.
	ErrUnsupported = errors.New("unsupported geometry operation")

	// ErrTooComplex is returned by Transform for geometries with
	// non-linear segments. Such geometries must be linearized first.
	ErrTooComplex = errors.New("geometry too complex for direct transform")

	// ErrUnknownCRS is returned when no transformation between two
	// coordinate reference systems is known.
	ErrUnknownCRS = errors.New("unknown coordinate reference system")

	// ErrUnresolved is returned by [Reference.Resolve] if the target
	// cannot be found.
	ErrUnresolved = errors.New("unresolved geometry reference")
)

// CRS names a coordinate reference system, for example "EPSG:4326".
// The empty CRS stands for the CRS of the current render pass.
type CRS string

// Well-known coordinate reference systems.
const (
	WGS84       CRS = "EPSG:4326"
	WebMercator CRS = "EPSG:3857"
)

// Canonical maps common aliases of the well-known systems to their
// EPSG names.
func (c CRS) Canonical() CRS {
	switch strings.ToUpper(string(c)) {
	case "EPSG:4326", "CRS:84", "OGC:CRS84", "URN:OGC:DEF:CRS:EPSG::4326", "URN:OGC:DEF:CRS:OGC:1.3:CRS84":
		return WGS84
	case "EPSG:3857", "EPSG:900913", "EPSG:3785", "URN:OGC:DEF:CRS:EPSG::3857":
		return WebMercator
	}
	return c
}

// Equal reports whether c and d denote the same system.
func (c CRS) Equal(d CRS) bool {
	return c.Canonical() == d.Canonical()
}

// Geometry is implemented by *Point, *Curve, *Ring, *Surface, *Multi and
// *Reference.
type Geometry interface {
	// SRS returns the coordinate reference system of the geometry.
	SRS() CRS

	// Bound returns the bounding box of the coordinates. For arcs only
	// the control points are taken into account.
	Bound() orb.Bound
}

// Point is a single position.
type Point struct {
	Coord orb.Point
	CRS   CRS
}

func (p *Point) SRS() CRS         { return p.CRS }
func (p *Point) Bound() orb.Bound { return p.Coord.Bound() }

// SegmentKind describes the interpolation between the points of a
// curve segment.
type SegmentKind int

const (
	// LineSegment connects its points by straight lines.
	LineSegment SegmentKind = iota

	// ArcSegment is a string of circular arcs. Every arc is given by
	// three points (start, a point on the arc, end); consecutive arcs
	// share their end points, so that there are 2n+1 points for n arcs.
	ArcSegment

	// CircleSegment is a full circle through its three points.
	CircleSegment
)

func (k SegmentKind) String() string {
	switch k {
	case LineSegment:
		return "line"
	case ArcSegment:
		return "arc"
	case CircleSegment:
		return "circle"
	}
	return "unknown"
}

// Segment is one piece of a curve.
type Segment struct {
	Kind   SegmentKind
	Points []orb.Point
}

// Curve is a sequence of connected segments.
type Curve struct {
	Segments []Segment
	CRS      CRS
}

// NewLineString returns a curve made of a single line segment.
func NewLineString(crs CRS, pts ...orb.Point) *Curve {
	return &Curve{
		Segments: []Segment{{Kind: LineSegment, Points: pts}},
		CRS:      crs,
	}
}

func (c *Curve) SRS() CRS { return c.CRS }

func (c *Curve) Bound() orb.Bound {
	return orb.MultiPoint(c.ControlPoints()).Bound()
}

// IsLinear reports whether all segments are line segments.
func (c *Curve) IsLinear() bool {
	for _, s := range c.Segments {
		if s.Kind != LineSegment {
			return false
		}
	}
	return true
}

// ControlPoints returns the points of all segments. The shared end point
// of consecutive segments is listed once. For linear curves these are
// exactly the vertices.
func (c *Curve) ControlPoints() []orb.Point {
	var res []orb.Point
	for _, s := range c.Segments {
		pts := s.Points
		if len(res) > 0 && len(pts) > 0 && res[len(res)-1] == pts[0] {
			pts = pts[1:]
		}
		res = append(res, pts...)
	}
	return res
}

// Ring is a closed curve. The last point equals the first one.
type Ring struct {
	Curve
}

// NewRing returns a linear ring through pts. The ring is closed if the
// last point differs from the first one.
func NewRing(crs CRS, pts ...orb.Point) *Ring {
	if n := len(pts); n > 0 && pts[0] != pts[n-1] {
		pts = append(pts[:n:n], pts[0])
	}
	return &Ring{Curve: *NewLineString(crs, pts...)}
}

// Reversed returns a linear ring with the vertex order reversed.
func (r *Ring) Reversed() *Ring {
	pts := r.ControlPoints()
	rev := make([]orb.Point, len(pts))
	for i, p := range pts {
		rev[len(pts)-1-i] = p
	}
	return &Ring{Curve: *NewLineString(r.CRS, rev...)}
}

// PatchKind distinguishes flat polygon patches from curved ones.
type PatchKind int

const (
	PolygonPatch PatchKind = iota
	CurvedPatch
)

// Patch is one piece of a surface, bounded by an exterior ring and
// optional interior rings.
type Patch struct {
	Kind     PatchKind
	Exterior *Ring
	Interior []*Ring
}

// Rings returns the exterior ring followed by the interior rings.
func (p *Patch) Rings() []*Ring {
	res := make([]*Ring, 0, 1+len(p.Interior))
	if p.Exterior != nil {
		res = append(res, p.Exterior)
	}
	return append(res, p.Interior...)
}

// Surface is a set of patches. A surface with a single polygon patch is
// an ordinary polygon.
type Surface struct {
	Patches []*Patch
	CRS     CRS
}

// NewPolygon returns a surface with one linear polygon patch.
func NewPolygon(crs CRS, exterior []orb.Point, holes ...[]orb.Point) *Surface {
	p := &Patch{Exterior: NewRing(crs, exterior...)}
	for _, h := range holes {
		p.Interior = append(p.Interior, NewRing(crs, h...))
	}
	return &Surface{Patches: []*Patch{p}, CRS: crs}
}

func (s *Surface) SRS() CRS { return s.CRS }

func (s *Surface) Bound() orb.Bound {
	b := orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}
	for _, p := range s.Patches {
		if p.Exterior != nil {
			b = union(b, p.Exterior.Bound())
		}
	}
	return b
}

// Multi is a collection of geometries.
type Multi struct {
	Members []Geometry
	CRS     CRS
}

func (m *Multi) SRS() CRS { return m.CRS }

func (m *Multi) Bound() orb.Bound {
	b := orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}
	for _, g := range m.Members {
		b = union(b, g.Bound())
	}
	return b
}

// Reference points to a geometry stored elsewhere, for example in another
// feature of the same document.
type Reference struct {
	ID     string
	Lookup func(id string) (Geometry, error)
}

func (r *Reference) SRS() CRS { return "" }

// Bound returns the bound of the target, or an empty bound if the
// reference cannot be resolved.
func (r *Reference) Bound() orb.Bound {
	g, err := r.Resolve()
	if err != nil {
		return orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}
	}
	return g.Bound()
}

// Resolve returns the referenced geometry.
func (r *Reference) Resolve() (Geometry, error) {
	if r.Lookup == nil {
		return nil, ErrUnresolved
	}
	g, err := r.Lookup(r.ID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrUnresolved
	}
	return g, nil
}

// IsLinear reports whether g contains only line segments.
func IsLinear(g Geometry) bool {
	switch g := g.(type) {
	case *Curve:
		return g.IsLinear()
	case *Ring:
		return g.IsLinear()
	case *Surface:
		for _, p := range g.Patches {
			for _, r := range p.Rings() {
				if !r.IsLinear() {
					return false
				}
			}
		}
	case *Multi:
		for _, m := range g.Members {
			if !IsLinear(m) {
				return false
			}
		}
	}
	return true
}

// union is like orb.Bound.Union, but also handles an empty receiver.
func union(a, b orb.Bound) orb.Bound {
	if a.IsEmpty() {
		return b
	}
	return a.Union(b)
}
