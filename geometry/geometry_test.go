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
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearizeArc(t *testing.T) {
	s := Segment{Kind: ArcSegment, Points: []orb.Point{{1, 0}, {0, 1}, {-1, 0}}}
	pts := LinearizeSegment(s, 9)
	require.Len(t, pts, 9)
	assert.Equal(t, orb.Point{1, 0}, pts[0])
	assert.Equal(t, orb.Point{-1, 0}, pts[8])
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p[0], p[1]), 1e-9)
		assert.GreaterOrEqual(t, p[1], -1e-9, "arc must pass through the upper half")
	}
	assert.InDelta(t, 0, pts[4][0], 1e-9)
	assert.InDelta(t, 1, pts[4][1], 1e-9)

	// the same arc traversed in the other direction
	s.Points = []orb.Point{{1, 0}, {0, -1}, {-1, 0}}
	for _, p := range LinearizeSegment(s, 9) {
		assert.LessOrEqual(t, p[1], 1e-9)
	}
}

func TestLinearizeCircle(t *testing.T) {
	s := Segment{Kind: CircleSegment, Points: []orb.Point{{2, 0}, {0, 2}, {-2, 0}}}
	pts := LinearizeSegment(s, 100)
	require.Len(t, pts, 100)
	assert.Equal(t, pts[0], pts[len(pts)-1])
	assert.True(t, NewPlanar().IsCCW(pts))
}

func TestLinearizeKeepsLinearGeometry(t *testing.T) {
	e := NewPlanar()
	c := NewLineString("", orb.Point{0, 0}, orb.Point{1, 1})
	g, err := e.Linearize(c, 10)
	require.NoError(t, err)
	assert.Same(t, c, g)

	arc := &Curve{Segments: []Segment{
		{Kind: LineSegment, Points: []orb.Point{{-2, 0}, {-1, 0}}},
		{Kind: ArcSegment, Points: []orb.Point{{-1, 0}, {0, 1}, {1, 0}}},
	}}
	g, err = e.Linearize(arc, 5)
	require.NoError(t, err)
	lin := g.(*Curve)
	assert.True(t, lin.IsLinear())
	assert.Len(t, lin.ControlPoints(), 6)
}

func TestTransform(t *testing.T) {
	e := NewPlanar()

	p := &Point{Coord: orb.Point{10, 20}, CRS: "CRS:84"}
	same, err := e.Transform(p, WGS84)
	require.NoError(t, err)
	assert.Same(t, p, same, "equivalent systems need no transform")

	untagged := &Point{Coord: orb.Point{10, 20}}
	same, err = e.Transform(untagged, WebMercator)
	require.NoError(t, err)
	assert.Same(t, untagged, same)

	g, err := e.Transform(&Point{Coord: orb.Point{180, 0}, CRS: WGS84}, WebMercator)
	require.NoError(t, err)
	assert.InDelta(t, orb.EarthRadius*math.Pi, g.(*Point).Coord[0], 1e-6)
	assert.Equal(t, WebMercator, g.SRS())

	_, err = e.Transform(&Point{CRS: "EPSG:99999"}, WGS84)
	assert.True(t, errors.Is(err, ErrUnknownCRS))

	arc := &Curve{
		Segments: []Segment{{Kind: ArcSegment, Points: []orb.Point{{1, 0}, {0, 1}, {-1, 0}}}},
		CRS:      WGS84,
	}
	_, err = e.Transform(arc, WebMercator)
	assert.ErrorIs(t, err, ErrTooComplex)
}

func TestIntersect(t *testing.T) {
	e := NewPlanar()
	area := NewEnvelope(orb.Point{0, 0}, orb.Point{10, 10}, "").Surface()

	inside := NewLineString("", orb.Point{1, 1}, orb.Point{9, 9})
	g, err := e.Intersect(area, inside)
	require.NoError(t, err)
	assert.Same(t, inside, g)

	outside := NewLineString("", orb.Point{20, 20}, orb.Point{30, 30})
	g, err = e.Intersect(area, outside)
	require.NoError(t, err)
	assert.Nil(t, g)

	crossing := NewLineString("", orb.Point{5, 5}, orb.Point{15, 5})
	g, err = e.Intersect(area, crossing)
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{{5, 5}, {10, 5}}, g.(*Curve).ControlPoints())

	big := NewPolygon("", []orb.Point{{-5, -5}, {15, -5}, {15, 15}, {-5, 15}})
	g, err = e.Intersect(area, big)
	require.NoError(t, err)
	assert.Equal(t, area.Bound(), g.Bound())

	triangle := NewPolygon("", []orb.Point{{0, 0}, {10, 0}, {5, 5}})
	_, err = e.Intersect(triangle, inside)
	assert.ErrorIs(t, err, ErrUnsupported)

	// all vertices on corners of the bounding box, but not a box
	corner := NewPolygon("", []orb.Point{{0, 0}, {10, 0}, {0, 10}})
	_, err = e.Intersect(corner, NewLineString("", orb.Point{9, 9}, orb.Point{20, 9}))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRectangle(t *testing.T) {
	cases := []struct {
		name string
		pts  []orb.Point
		want bool
	}{
		{"ccw", []orb.Point{{0, 0}, {4, 0}, {4, 2}, {0, 2}}, true},
		{"cw closed", []orb.Point{{0, 0}, {0, 2}, {4, 2}, {4, 0}, {0, 0}}, true},
		{"right triangle", []orb.Point{{0, 0}, {10, 0}, {0, 10}}, false},
		{"repeated corner", []orb.Point{{0, 0}, {10, 0}, {0, 10}, {0, 0}, {0, 0}}, false},
		{"corner twice", []orb.Point{{0, 0}, {10, 0}, {0, 0}, {0, 10}}, false},
		{"flat", []orb.Point{{0, 0}, {4, 0}, {4, 0}, {0, 0}}, false},
		{"five corners", []orb.Point{{0, 0}, {2, 0}, {4, 0}, {4, 2}, {0, 2}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := rectangle(NewPolygon("", c.pts))
			assert.Equal(t, c.want, ok)
		})
	}
}

func TestContains(t *testing.T) {
	e := NewPlanar()
	box := NewEnvelope(orb.Point{0, 0}, orb.Point{10, 10}, "").Surface()
	assert.True(t, e.Contains(box, &Point{Coord: orb.Point{10, 10}}))
	assert.False(t, e.Contains(box, NewLineString("", orb.Point{1, 1}, orb.Point{11, 1})))

	triangle := NewPolygon("", []orb.Point{{0, 0}, {10, 0}, {0, 10}})
	assert.True(t, e.Contains(triangle, &Point{Coord: orb.Point{2, 2}}))
	assert.False(t, e.Contains(triangle, &Point{Coord: orb.Point{8, 8}}))
}

func TestIsCCW(t *testing.T) {
	e := NewPlanar()
	ccw := []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	assert.True(t, e.IsCCW(ccw))
	assert.False(t, e.IsCCW(NewRing("", ccw...).Reversed().ControlPoints()))
	assert.False(t, e.IsCCW(ccw[:2]))
}

func TestInteriorPoints(t *testing.T) {
	e := NewPlanar()

	square := NewPolygon("", []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	pts, err := e.InteriorPoints(square)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.InDelta(t, 2, pts[0][0], 1e-9)
	assert.InDelta(t, 2, pts[0][1], 1e-9)

	// the centroid of a U shape lies in the notch
	u := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 3}, {3, 3}, {3, 10}, {0, 10}, {0, 0}}
	pts, err = e.InteriorPoints(NewPolygon("", u))
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.True(t, planar.PolygonContains(orb.Polygon{u}, pts[0]), "point %v outside", pts[0])

	curved := &Surface{Patches: []*Patch{{Kind: CurvedPatch}}}
	_, err = e.InteriorPoints(curved)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOrbRoundTrip(t *testing.T) {
	s := &Surface{Patches: []*Patch{
		NewPolygon("", []orb.Point{{0, 0}, {1, 0}, {1, 1}}).Patches[0],
		NewPolygon("", []orb.Point{{5, 5}, {6, 5}, {6, 6}}).Patches[0],
	}}
	og, err := ToOrb(s)
	require.NoError(t, err)
	require.IsType(t, orb.MultiPolygon{}, og)
	back := FromOrb(og, WGS84).(*Surface)
	assert.Len(t, back.Patches, 2)
	assert.Equal(t, WGS84, back.Patches[1].Exterior.CRS)

	_, err = ToOrb(&Reference{ID: "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBoundAsSurface(t *testing.T) {
	b := orb.Bound{Min: orb.Point{1, 2}, Max: orb.Point{3, 5}}
	s, ok := FromOrb(b, WGS84).(*Surface)
	require.True(t, ok)
	assert.Equal(t, b, s.Bound())
	assert.Equal(t, WGS84, s.CRS)

	env := NewEnvelope(b.Min, b.Max, WGS84).Surface()
	assert.Equal(t, b, env.Bound())
	box, ok := rectangle(env)
	require.True(t, ok)
	assert.Equal(t, b, box)
}
