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

package maprender_test

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/maprender"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/render"
	"seehuhn.de/go/maprender/style"
	"seehuhn.de/go/maprender/testcases"
)

func TestRedSquare(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{10, 10}, "")
	p, err := maprender.NewPass(env, 10, 10, render.Options{})
	require.NoError(t, err)

	s := &style.PolygonStyling{Fill: &style.Fill{Color: color.NRGBA{R: 255, A: 255}}}
	g := geometry.NewPolygon("", []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.NoError(t, p.Render(s, g))

	img := p.Finish()
	for y := range 10 {
		for x := range 10 {
			require.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestLabelsAfterFinish(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{100, 40}, "")
	p, err := maprender.NewPass(env, 100, 40, render.Options{})
	require.NoError(t, err)

	s := &style.TextStyling{
		Font:   style.Font{Size: 20},
		Anchor: [2]float64{0.5, 0.5},
	}
	require.NoError(t, p.RenderText(s, "MMM", &geometry.Point{Coord: orb.Point{50, 20}}))
	assert.Zero(t, countInked(p.Image().Pix), "labels wait for Finish")

	img := p.Finish()
	assert.Greater(t, countInked(img.Pix), 50)

	assert.ErrorIs(t, p.Render(&style.LineStyling{}, &geometry.Point{}), maprender.ErrFinished)
	assert.Same(t, img, p.Finish())
}

func TestLabelsAboveFill(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{40, 40}, "")
	p, err := maprender.NewPass(env, 40, 40, render.Options{})
	require.NoError(t, err)

	blue := color.NRGBA{B: 255, A: 255}
	label := &style.TextStyling{
		Font:   style.Font{Size: 10},
		Fill:   &style.Fill{}, // only the box is visible
		Anchor: [2]float64{0.5, 0.5},
		Halo:   &style.Halo{Radius: -2, Fill: &style.Fill{Color: blue}},
	}
	center := &geometry.Point{Coord: orb.Point{20, 20}}
	require.NoError(t, p.RenderText(label, "x", center))

	fill := &style.PolygonStyling{Fill: &style.Fill{Color: color.NRGBA{R: 255, A: 255}}}
	require.NoError(t, p.Render(fill, env.Surface()))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, p.Image().RGBAAt(20, 20))

	img := p.Finish()
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(20, 20))
}

func countInked(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestScenarios(t *testing.T) {
	for category, list := range testcases.All {
		for _, sc := range list {
			t.Run(category+"_"+sc.Name, func(t *testing.T) {
				img, err := sc.Render()
				require.NoError(t, err)
				assert.Equal(t, sc.Width, img.Bounds().Dx())
				if sc.Blank {
					assert.Zero(t, countInked(img.Pix))
				} else {
					assert.Greater(t, countInked(img.Pix), 0, "nothing drawn")
				}
			})
		}
	}
}

func TestRedSquareScenario(t *testing.T) {
	var sc testcases.Scenario
	for _, c := range testcases.All["polygon"] {
		if c.Name == "red_square" {
			sc = c
		}
	}
	require.NotEmpty(t, sc.Name)
	img, err := sc.Render()
	require.NoError(t, err)
	for i := 0; i < len(img.Pix); i += 4 {
		require.Equal(t, []uint8{255, 0, 0, 255}, img.Pix[i:i+4])
	}
}
