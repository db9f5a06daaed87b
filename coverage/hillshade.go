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
	"errors"
	"math"

	"seehuhn.de/go/maprender/style"
)

// ErrTooSmall is returned when a raster has too few cells for shading.
var ErrTooSmall = errors.New("coverage: raster smaller than 3×3")

// Hillshade computes the shaded relief of an elevation band. The result
// is a single band grid with values from 0 to 255 which is two cells
// smaller than r in each direction, since border cells have no complete
// neighbourhood. The result covers the same envelope as r, so that its
// cells are slightly larger.
//
// Slope and aspect are estimated from the 3×3 neighbourhood of each cell
// with weights 1, 2, 1. The light source is given by the azimuth and the
// altitude of s, in degrees.
func Hillshade(r Raster, band int, s *style.ShadedRelief) (*Grid, error) {
	cols, rows := r.Size()
	if cols < 3 || rows < 3 {
		return nil, ErrTooSmall
	}
	resX, resY := Resolution(r)

	zenith := (90 - s.Altitude) * math.Pi / 180
	azimuth := (90 - s.Azimuth) * math.Pi / 180
	cosZ, sinZ := math.Cos(zenith), math.Sin(zenith)
	factor := s.ReliefFactor
	if factor == 0 {
		factor = 1
	}

	out := NewGrid(cols-2, rows-2, r.Envelope(), Band{Name: "hillshade", Max: 255})
	for row := 1; row < rows-1; row++ {
		for col := 1; col < cols-1; col++ {
			z := func(dc, dr int) float64 { return r.Sample(col+dc, row+dr, band) }
			a, b, c := z(-1, -1), z(0, -1), z(1, -1)
			d, f := z(-1, 0), z(1, 0)
			g, h, i := z(-1, 1), z(0, 1), z(1, 1)

			dx := ((c + 2*f + i) - (a + 2*d + g)) / (8 * resX)
			dy := ((g + 2*h + i) - (a + 2*b + c)) / (8 * resY)
			if math.IsNaN(dx) || math.IsNaN(dy) {
				out.Set(col-1, row-1, 0, math.NaN())
				continue
			}

			slope := math.Atan(factor * math.Hypot(dx, dy))
			aspect := math.Atan2(dy, -dx)
			if aspect < 0 {
				aspect += 2 * math.Pi
			}
			shade := 255 * (cosZ*math.Cos(slope) + sinZ*math.Sin(slope)*math.Cos(azimuth-aspect))
			out.Set(col-1, row-1, 0, max(0, min(255, math.Round(shade))))
		}
	}
	return out, nil
}
