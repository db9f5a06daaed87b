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

package testcases

import (
	"image/color"
	"math"

	"seehuhn.de/go/maprender/coverage"
	"seehuhn.de/go/maprender/style"
)

// hill returns an elevation model with a round hill of the given height
// in the middle.
func hill(n int, height float64) *coverage.Grid {
	g := coverage.NewGrid(n, n, envelope(0, 0, float64(n), float64(n)), coverage.Band{Name: "elevation"})
	c := float64(n-1) / 2
	for row := range n {
		for col := range n {
			dx, dy := float64(col)-c, float64(row)-c
			g.Set(col, row, 0, height*math.Exp(-(dx*dx+dy*dy)/(c*c/2)))
		}
	}
	return g
}

// gradient returns a three band raster with values rising from the left,
// the top and the top left corner.
func gradient(n int) *coverage.Grid {
	g := coverage.NewGrid(n, n, envelope(0, 0, float64(n), float64(n)),
		coverage.Band{Name: "a"}, coverage.Band{Name: "b"}, coverage.Band{Name: "c"})
	for row := range n {
		for col := range n {
			g.Set(col, row, 0, float64(col)*10)
			g.Set(col, row, 1, float64(row)*10)
			g.Set(col, row, 2, float64(col+row)*5)
		}
	}
	return g
}

var rasterCases = []Scenario{
	{
		Name:   "hillshade",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.RasterStyling{
					Opacity:      1,
					ShadedRelief: &style.ShadedRelief{ReliefFactor: 1, Altitude: 45, Azimuth: 315},
				},
				Raster: hill(66, 20),
			},
		},
	},
	{
		Name:   "elevation_colors",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.RasterStyling{
					Opacity: 1,
					Interpolate: &style.Interpolate{
						Space: style.Lab,
						Points: []style.InterpolationPoint{
							{Data: 0, Value: green},
							{Data: 10, Value: yellow},
							{Data: 20, Value: white},
						},
					},
					Outline: &style.LineStyling{Stroke: pen(black, 2)},
				},
				Raster: hill(32, 20),
			},
		},
	},
	{
		Name:   "categories",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.RasterStyling{
					Opacity: 1,
					Categorize: &style.Categorize{
						Thresholds: []float64{5, 10, 15},
						Values: []color.NRGBA{
							{R: 200, G: 230, B: 200, A: 255},
							{R: 140, G: 200, B: 140, A: 255},
							{R: 80, G: 160, B: 80, A: 255},
							{R: 20, G: 100, B: 20, A: 255},
						},
					},
				},
				Raster: hill(32, 20),
			},
		},
	},
	{
		Name:   "channels",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.RasterStyling{
					Opacity: 0.8,
					Channels: &style.ChannelSelection{
						Red:   &style.SelectedChannel{Name: "c"},
						Green: &style.SelectedChannel{Name: "1"},
						Blue:  &style.SelectedChannel{Name: "b", Contrast: &style.ContrastEnhancement{Gamma: 2}},
					},
					Contrast: &style.ContrastEnhancement{Method: style.ContrastNormalize},
				},
				Raster: gradient(16),
			},
		},
	},
	{
		Name:   "gray_histogram",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{
				Styling: &style.RasterStyling{
					Opacity:  1,
					Channels: &style.ChannelSelection{Gray: &style.SelectedChannel{Name: "elevation"}},
					Contrast: &style.ContrastEnhancement{Method: style.ContrastHistogram},
				},
				Raster: hill(32, 20),
			},
		},
	},
}
