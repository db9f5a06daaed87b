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

// Package coverage turns sampled rasters into images, following a
// raster styling.
package coverage

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/maprender/geometry"
)

// Band describes one band of a raster.
type Band struct {
	Name string

	// Min and Max give the value range of the band. If Max ≤ Min, the
	// range is computed from the samples.
	Min, Max float64
}

// Raster is a grid of samples with one or more bands. Row 0 is the
// northern edge of the envelope. NaN samples are treated as missing.
type Raster interface {
	Size() (cols, rows int)
	Bands() []Band
	Sample(col, row, band int) float64

	// Envelope gives the world area covered by the raster.
	Envelope() *geometry.Envelope
}

// Resolution returns the size of one raster cell in world units.
func Resolution(r Raster) (x, y float64) {
	cols, rows := r.Size()
	env := r.Envelope()
	if env == nil || cols == 0 || rows == 0 {
		return 1, 1
	}
	return env.Width() / float64(cols), env.Height() / float64(rows)
}

// Range returns the value range of band b, from the band metadata if set
// and from the samples otherwise. ok is false if there are no valid
// samples.
func Range(r Raster, b int) (lo, hi float64, ok bool) {
	if info := r.Bands()[b]; info.Max > info.Min {
		return info.Min, info.Max, true
	}
	cols, rows := r.Size()
	lo, hi = math.Inf(1), math.Inf(-1)
	for row := range rows {
		for col := range cols {
			v := r.Sample(col, row, b)
			if math.IsNaN(v) {
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, lo <= hi
}

// Grid is an in-memory Raster.
type Grid struct {
	Cols, Rows int
	Info       []Band

	// Data holds one slice per band, in row-major order.
	Data [][]float64

	Env *geometry.Envelope
}

var _ Raster = (*Grid)(nil)

// NewGrid allocates a grid with all samples set to zero.
func NewGrid(cols, rows int, env *geometry.Envelope, bands ...Band) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Info: bands, Env: env}
	g.Data = make([][]float64, len(bands))
	for i := range g.Data {
		g.Data[i] = make([]float64, cols*rows)
	}
	return g
}

// FromImage returns a grid with the bands red, green, blue and alpha of
// img, with samples in the range 0 to 255.
func FromImage(img image.Image, env *geometry.Envelope) *Grid {
	b := img.Bounds()
	bands := []Band{
		{Name: "red", Max: 255},
		{Name: "green", Max: 255},
		{Name: "blue", Max: 255},
		{Name: "alpha", Max: 255},
	}
	g := NewGrid(b.Dx(), b.Dy(), env, bands...)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := (y-b.Min.Y)*g.Cols + (x - b.Min.X)
			g.Data[0][i] = float64(c.R)
			g.Data[1][i] = float64(c.G)
			g.Data[2][i] = float64(c.B)
			g.Data[3][i] = float64(c.A)
		}
	}
	return g
}

// Size implements the Raster interface.
func (g *Grid) Size() (int, int) { return g.Cols, g.Rows }

// Bands implements the Raster interface.
func (g *Grid) Bands() []Band { return g.Info }

// Envelope implements the Raster interface.
func (g *Grid) Envelope() *geometry.Envelope { return g.Env }

// Sample implements the Raster interface.
func (g *Grid) Sample(col, row, band int) float64 {
	return g.Data[band][row*g.Cols+col]
}

// Set changes one sample.
func (g *Grid) Set(col, row, band int, v float64) {
	g.Data[band][row*g.Cols+col] = v
}
