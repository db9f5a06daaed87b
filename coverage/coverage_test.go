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

package coverage

import (
	"image/color"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
)

func dem(cols, rows int, z func(col, row int) float64) *Grid {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{float64(cols), float64(rows)}, "")
	g := NewGrid(cols, rows, env, Band{Name: "elevation"})
	for row := range rows {
		for col := range cols {
			g.Set(col, row, 0, z(col, row))
		}
	}
	return g
}

func TestHillshadeFlat(t *testing.T) {
	g := dem(5, 5, func(int, int) float64 { return 100 })
	shaded, err := Hillshade(g, 0, &style.ShadedRelief{ReliefFactor: 1, Altitude: 45, Azimuth: 315})
	require.NoError(t, err)

	assert.Equal(t, 3, shaded.Cols)
	assert.Equal(t, 3, shaded.Rows)
	assert.Same(t, g.Env, shaded.Env)
	for _, v := range shaded.Data[0] {
		assert.Equal(t, 180.0, v)
	}
	rx, _ := Resolution(shaded)
	assert.InDelta(t, 5.0/3, rx, 1e-12)
}

func TestHillshadeLightDirection(t *testing.T) {
	// terrain rising towards the east, one unit per cell
	g := dem(5, 5, func(col, _ int) float64 { return float64(col) })

	west, err := Hillshade(g, 0, &style.ShadedRelief{ReliefFactor: 1, Altitude: 45, Azimuth: 270})
	require.NoError(t, err)
	east, err := Hillshade(g, 0, &style.ShadedRelief{ReliefFactor: 1, Altitude: 45, Azimuth: 90})
	require.NoError(t, err)

	assert.Equal(t, 255.0, west.Sample(1, 1, 0))
	assert.Equal(t, 0.0, east.Sample(1, 1, 0))
}

func TestHillshadeTooSmall(t *testing.T) {
	g := dem(2, 5, func(int, int) float64 { return 0 })
	_, err := Hillshade(g, 0, &style.ShadedRelief{Altitude: 45})
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestApplyShadedRelief(t *testing.T) {
	g := dem(5, 5, func(int, int) float64 { return 7 })
	res, err := Apply(g, &style.RasterStyling{
		Opacity:      0.5,
		ShadedRelief: &style.ShadedRelief{ReliefFactor: 1, Altitude: 45, Azimuth: 315},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Image.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 180, G: 180, B: 180, A: 255}, res.Image.NRGBAAt(1, 1))
	assert.Equal(t, 0.5, res.Opacity)
	assert.Same(t, g.Env, res.Envelope)
}

func TestContrastNormalize(t *testing.T) {
	g := dem(3, 1, func(col, _ int) float64 { return float64(col) * 500 })
	res, err := Apply(g, &style.RasterStyling{
		Opacity:  1,
		Contrast: &style.ContrastEnhancement{Method: style.ContrastNormalize},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), res.Image.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(128), res.Image.NRGBAAt(1, 0).R)
	assert.Equal(t, uint8(255), res.Image.NRGBAAt(2, 0).R)
}

func TestContrastGamma(t *testing.T) {
	g := dem(1, 1, func(int, int) float64 { return 64 })
	plain, err := Apply(g, &style.RasterStyling{Opacity: 1})
	require.NoError(t, err)
	bright, err := Apply(g, &style.RasterStyling{
		Opacity:  1,
		Contrast: &style.ContrastEnhancement{Gamma: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(64), plain.Image.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(128), bright.Image.NRGBAAt(0, 0).R)
}

func TestContrastHistogram(t *testing.T) {
	g := dem(4, 1, func(col, _ int) float64 { return float64(col + 1) })
	g.Info[0].Max = 400
	res, err := Apply(g, &style.RasterStyling{
		Opacity:  1,
		Contrast: &style.ContrastEnhancement{Method: style.ContrastHistogram},
	})
	require.NoError(t, err)

	var got []uint8
	for col := range 4 {
		got = append(got, res.Image.NRGBAAt(col, 0).R)
	}
	assert.Equal(t, []uint8{0, 0, 128, 255}, got)
}

func TestMissingSamples(t *testing.T) {
	g := dem(2, 1, func(col, _ int) float64 { return float64(col) * 10 })
	g.Set(0, 0, 0, math.NaN())
	res, err := Apply(g, &style.RasterStyling{Opacity: 1})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{}, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, res.Image.NRGBAAt(1, 0))
}

func TestChannelSelection(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{1, 1}, "")
	g := NewGrid(1, 1, env, Band{Name: "b1"}, Band{Name: "b2"}, Band{Name: "nir"})
	g.Set(0, 0, 0, 10)
	g.Set(0, 0, 1, 20)
	g.Set(0, 0, 2, 30)

	res, err := Apply(g, &style.RasterStyling{
		Opacity: 1,
		Channels: &style.ChannelSelection{
			Red:   &style.SelectedChannel{Name: "NIR"},
			Green: &style.SelectedChannel{Name: "1"},
			Blue:  &style.SelectedChannel{Name: "b2"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 30, G: 10, B: 20, A: 255}, res.Image.NRGBAAt(0, 0))

	res, err = Apply(g, &style.RasterStyling{
		Opacity:  1,
		Channels: &style.ChannelSelection{Gray: &style.SelectedChannel{Name: "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 20, G: 20, B: 20, A: 255}, res.Image.NRGBAAt(0, 0))

	_, err = Apply(g, &style.RasterStyling{
		Channels: &style.ChannelSelection{Gray: &style.SelectedChannel{Name: "4"}},
	})
	assert.ErrorIs(t, err, ErrUnknownBand)

	_, err = Apply(g, &style.RasterStyling{
		Channels: &style.ChannelSelection{Red: &style.SelectedChannel{Name: "1"}},
	})
	assert.ErrorIs(t, err, ErrChannels)
}

func TestCategorize(t *testing.T) {
	low := color.NRGBA{R: 255, A: 255}
	mid := color.NRGBA{G: 255, A: 255}
	high := color.NRGBA{B: 255, A: 255}
	fallback := color.NRGBA{A: 17}
	c := &style.Categorize{
		Thresholds: []float64{10, 20},
		Values:     []color.NRGBA{low, mid, high},
		Fallback:   fallback,
	}
	assert.Equal(t, low, categorize(c, 5))
	assert.Equal(t, mid, categorize(c, 10))
	assert.Equal(t, mid, categorize(c, 19.9))
	assert.Equal(t, high, categorize(c, 25))
	assert.Equal(t, fallback, categorize(c, math.NaN()))
}

func TestInterpolate(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ip := &style.Interpolate{
		Points: []style.InterpolationPoint{{Data: 0, Value: black}, {Data: 100, Value: white}},
	}
	assert.Equal(t, black, interpolate(ip, -5))
	assert.Equal(t, white, interpolate(ip, 200))
	mid := interpolate(ip, 50)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.Equal(t, uint8(255), mid.A)

	ip.Space = style.Lab
	lab := interpolate(ip, 50)
	assert.InDelta(t, float64(lab.R), float64(lab.G), 1)
	assert.NotEqual(t, mid.R, lab.R)
}

func TestApplyColorMapUsesRawSamples(t *testing.T) {
	g := dem(2, 1, func(col, _ int) float64 { return float64(col) * 1000 })
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	res, err := Apply(g, &style.RasterStyling{
		Opacity:    1,
		Contrast:   &style.ContrastEnhancement{Method: style.ContrastNormalize},
		Categorize: &style.Categorize{Thresholds: []float64{500}, Values: []color.NRGBA{red, blue}},
	})
	require.NoError(t, err)
	assert.Equal(t, red, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, blue, res.Image.NRGBAAt(1, 0))
}

func TestFromImage(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{1, 1}, "")
	src := NewGrid(1, 1, env, Band{})
	src.Set(0, 0, 0, 99)
	res, err := Apply(src, &style.RasterStyling{Opacity: 1})
	require.NoError(t, err)

	g := FromImage(res.Image, env)
	require.Len(t, g.Bands(), 4)
	assert.Equal(t, 99.0, g.Sample(0, 0, 0))
	assert.Equal(t, 255.0, g.Sample(0, 0, 3))

	again, err := Apply(g, &style.RasterStyling{Opacity: 1})
	require.NoError(t, err)
	assert.Equal(t, res.Image.NRGBAAt(0, 0), again.Image.NRGBAAt(0, 0))
}

func TestOpacity(t *testing.T) {
	env := geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{1, 1}, "")
	g := NewGrid(1, 1, env, Band{})
	cases := []struct {
		in, want float64
	}{
		{0, 1},
		{-2, 1},
		{0.25, 0.25},
		{3, 1},
	}
	for _, c := range cases {
		res, err := Apply(g, &style.RasterStyling{Opacity: c.in})
		require.NoError(t, err)
		assert.Equal(t, c.want, res.Opacity, "opacity %g", c.in)
	}
}
