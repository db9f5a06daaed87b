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
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/maprender/style"
)

func categorize(c *style.Categorize, v float64) color.NRGBA {
	if math.IsNaN(v) {
		return c.Fallback
	}
	i := sort.Search(len(c.Thresholds), func(i int) bool { return c.Thresholds[i] > v })
	if i >= len(c.Values) {
		return c.Fallback
	}
	return c.Values[i]
}

func interpolate(ip *style.Interpolate, v float64) color.NRGBA {
	pts := ip.Points
	if math.IsNaN(v) || len(pts) == 0 {
		return ip.Fallback
	}
	if v <= pts[0].Data {
		return pts[0].Value
	}
	last := pts[len(pts)-1]
	if v >= last.Data {
		return last.Value
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Data > v })
	a, b := pts[i-1], pts[i]
	t := (v - a.Data) / (b.Data - a.Data)

	ca, cb := toColorful(a.Value), toColorful(b.Value)
	var mixed colorful.Color
	if ip.Space == style.Lab {
		mixed = ca.BlendLab(cb, t)
	} else {
		mixed = ca.BlendRgb(cb, t)
	}
	r, g, bl := mixed.Clamped().RGB255()
	alpha := float64(a.Value.A) + t*(float64(b.Value.A)-float64(a.Value.A))
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
