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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// grid collects emitted coverage into a width×height buffer.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.pix[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 { return g.pix[y*g.w+x] }

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

func square(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	tri := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	g := newGrid(10, 1)
	r.FillNonZero(tri, g.emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20
		if math.Abs(float64(g.at(x, 0)-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, g.at(x, 0))
		}
	}
}

func TestFillAlignedSquare(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 8, URy: 8})
	g := newGrid(8, 8)
	r.FillNonZero(square(2, 2, 6, 6), g.emit)

	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = 1
			}
			if got := g.at(x, y); math.Abs(float64(got-want)) > 1e-6 {
				t.Fatalf("pixel (%d,%d): got %.3f, want %.0f", x, y, got, want)
			}
		}
	}
}

func TestOpenSubpathIsClosedForFill(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 4, Y: 0}).
		LineTo(vec.Vec2{X: 4, Y: 4}).
		LineTo(vec.Vec2{X: 0, Y: 4})

	r := NewRasterizer(rect.Rect{URx: 4, URy: 4})
	g := newGrid(4, 4)
	r.FillNonZero(open, g.emit)
	if s := g.sum(); math.Abs(s-16) > 1e-4 {
		t.Errorf("covered area: got %.3f, want 16", s)
	}
}

func TestEvenOddHole(t *testing.T) {
	// exterior and hole with the same orientation: nonzero fills the hole,
	// even-odd leaves it empty
	p := square(0, 0, 10, 10)
	hole := square(3, 3, 7, 7)
	p.Cmds = append(p.Cmds, hole.Cmds...)
	p.Coords = append(p.Coords, hole.Coords...)

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})

	nz := newGrid(10, 10)
	r.FillNonZero(p, nz.emit)
	if nz.at(5, 5) != 1 {
		t.Errorf("nonzero: hole pixel coverage %.3f, want 1", nz.at(5, 5))
	}

	eo := newGrid(10, 10)
	r.FillEvenOdd(p, eo.emit)
	if eo.at(5, 5) != 0 {
		t.Errorf("even-odd: hole pixel coverage %.3f, want 0", eo.at(5, 5))
	}
	if eo.at(1, 1) != 1 {
		t.Errorf("even-odd: ring pixel coverage %.3f, want 1", eo.at(1, 1))
	}
	if s := eo.sum(); math.Abs(s-84) > 1e-3 {
		t.Errorf("even-odd: covered area %.3f, want 84", s)
	}
}

func TestFillWithCTM(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.CTM = matrix.Scale(2, 2).Translate(4, 4)
	g := newGrid(20, 20)
	r.FillNonZero(square(0, 0, 3, 3), g.emit)

	if s := g.sum(); math.Abs(s-36) > 1e-3 {
		t.Errorf("covered area: got %.3f, want 36", s)
	}
	if g.at(3, 3) != 0 || g.at(4, 4) != 1 || g.at(9, 9) != 1 || g.at(10, 10) != 0 {
		t.Error("square not at the transformed position")
	}
}

func TestStrokeCaps(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 18, Y: 5})

	cases := []struct {
		name string
		cap  graphics.LineCapStyle
		area float64
	}{
		{"butt", graphics.LineCapButt, 16 * 2},
		{"square", graphics.LineCapSquare, 18 * 2},
		{"round", graphics.LineCapRound, 16*2 + math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
			r.Flatness = 0.01
			r.Width = 2
			r.Cap = tc.cap
			g := newGrid(20, 10)
			r.Stroke(line, g.emit)
			if s := g.sum(); math.Abs(s-tc.area) > 0.1 {
				t.Errorf("stroked area: got %.3f, want %.3f", s, tc.area)
			}
		})
	}
}

func TestStrokeClosedSquareHasNoGaps(t *testing.T) {
	for _, join := range []graphics.LineJoinStyle{graphics.LineJoinMiter, graphics.LineJoinBevel, graphics.LineJoinRound} {
		r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
		r.Width = 2
		r.Join = join
		g := newGrid(20, 20)
		r.Stroke(square(5, 5, 15, 15), g.emit)

		// the middle of every side is fully covered, the interior is empty
		for _, p := range [][2]int{{10, 4}, {10, 5}, {4, 10}, {15, 10}, {10, 15}} {
			if c := g.at(p[0], p[1]); c != 1 {
				t.Errorf("join %v: pixel %v coverage %.3f, want 1", join, p, c)
			}
		}
		if c := g.at(10, 10); c != 0 {
			t.Errorf("join %v: interior coverage %.3f, want 0", join, c)
		}
	}
}

func TestStrokeMiterCorner(t *testing.T) {
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 2})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Width = 4
	r.Join = graphics.LineJoinMiter
	miter := newGrid(20, 20)
	r.Stroke(corner, miter.emit)

	r.Join = graphics.LineJoinBevel
	bevel := newGrid(20, 20)
	r.Stroke(corner, bevel.emit)

	// the miter fills the full 2×2 outer corner, the bevel only half of it
	if d := miter.sum() - bevel.sum(); math.Abs(d-2) > 0.05 {
		t.Errorf("miter adds %.3f pixels, want 2", d)
	}
}

func TestDashPattern(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 2}).
		LineTo(vec.Vec2{X: 20, Y: 2})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 4})
	r.Width = 2
	r.Dash = []float64{4, 2}
	g := newGrid(20, 4)
	r.Stroke(line, g.emit)

	// dashes at [0,4) [6,10) [12,16) [18,20)
	want := []float32{1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1}
	for x, w := range want {
		if c := g.at(x, 2); c != w {
			t.Errorf("pixel %d: coverage %.3f, want %.0f", x, c, w)
		}
	}

	r.DashPhase = 4
	g = newGrid(20, 4)
	r.Stroke(line, g.emit)
	if c := g.at(0, 2); c != 0 {
		t.Errorf("phase 4: pixel 0 coverage %.3f, want 0", c)
	}
	if c := g.at(2, 2); c != 1 {
		t.Errorf("phase 4: pixel 2 coverage %.3f, want 1", c)
	}
}

func TestDashOddPatternRepeatsTwice(t *testing.T) {
	lines := []polyline{{pts: []vec.Vec2{{X: 0}, {X: 12}}}}
	dashes := applyDash(lines, []float64{3}, 0, nil)
	if len(dashes) != 2 {
		t.Fatalf("got %d dashes, want 2", len(dashes))
	}
	if dashes[1].pts[0].X != 6 || dashes[1].pts[1].X != 9 {
		t.Errorf("second dash %v, want [6 9]", dashes[1].pts)
	}
}

func TestDashClosedPathMergesEnds(t *testing.T) {
	ring := []polyline{{
		pts:    []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		closed: true,
	}}
	// perimeter 16, period 8: on [0,2) [7,10) [15,16) with phase 1;
	// the last piece continues into the first one
	dashes := applyDash(ring, []float64{3, 5}, 1, nil)
	if len(dashes) != 2 {
		t.Fatalf("got %d dashes, want 2", len(dashes))
	}
	merged := dashes[0].pts
	want := []vec.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 2, Y: 0}}
	if len(merged) != len(want) {
		t.Fatalf("merged dash %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i].Sub(want[i]).Length() > 1e-9 {
			t.Errorf("merged dash %v, want %v", merged, want)
			break
		}
	}
	for _, d := range dashes {
		if d.closed {
			t.Error("dashes must not be closed")
		}
	}
}

func TestZeroWidthStrokeIsEmpty(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 0
	called := false
	r.Stroke(square(2, 2, 8, 8), func(int, int, []float32) { called = true })
	if called {
		t.Error("zero width stroke emitted coverage")
	}
}

func TestDotWithRoundCap(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Flatness = 0.01
	r.Width = 6
	r.Cap = graphics.LineCapRound
	g := newGrid(20, 20)
	r.Stroke(dot, g.emit)
	if s := g.sum(); math.Abs(s-9*math.Pi) > 0.2 {
		t.Errorf("dot area %.3f, want %.3f", s, 9*math.Pi)
	}

	r.Cap = graphics.LineCapButt
	g = newGrid(20, 20)
	r.Stroke(dot, g.emit)
	if s := g.sum(); s != 0 {
		t.Errorf("butt cap dot area %.3f, want 0", s)
	}
}
