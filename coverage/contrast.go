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
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"

	"seehuhn.de/go/maprender/style"
)

// lut maps the samples of one band to 8-bit channel values.
type lut struct {
	lo, scale float64
	table     [256]uint8
}

func newLUT(r Raster, band int, ce *style.ContrastEnhancement) *lut {
	l := &lut{scale: 1}
	for i := range l.table {
		l.table[i] = uint8(i)
	}
	if ce == nil {
		return l
	}

	if ce.Method != style.ContrastNone {
		lo, hi, ok := Range(r, band)
		if ok && hi > lo {
			l.lo, l.scale = lo, 255/(hi-lo)
		} else if ok {
			l.lo, l.scale = lo, 0
		}
	}
	if ce.Method == style.ContrastHistogram {
		l.equalize(r, band)
	}
	if g := ce.Gamma; g > 0 && g != 1 {
		for i, v := range l.table {
			l.table[i] = uint8(math.Round(255 * math.Pow(float64(v)/255, 1/g)))
		}
	}
	return l
}

func (l *lut) quantize(v float64) uint8 {
	return uint8(max(0, min(255, math.Round((v-l.lo)*l.scale))))
}

// equalize replaces the table by one which spreads the quantized samples
// evenly over the range 0 to 255.
func (l *lut) equalize(r Raster, band int) {
	cols, rows := r.Size()
	img := image.NewGray(image.Rect(0, 0, cols*rows, 1))
	n := 0
	for row := range rows {
		for col := range cols {
			v := r.Sample(col, row, band)
			if math.IsNaN(v) {
				continue
			}
			img.Pix[n] = l.quantize(v)
			n++
		}
	}
	if n == 0 {
		return
	}
	cdf := histogram.NewRGBAHistogram(img.SubImage(image.Rect(0, 0, n, 1))).R.Cumulative().Bins

	cdfMin := 0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}
	if n == cdfMin {
		return
	}
	for i, c := range cdf {
		if c < cdfMin {
			l.table[i] = 0
			continue
		}
		l.table[i] = uint8(math.Round(float64(c-cdfMin) * 255 / float64(n-cdfMin)))
	}
}

func (l *lut) apply(v float64) uint8 {
	return l.table[l.quantize(v)]
}
