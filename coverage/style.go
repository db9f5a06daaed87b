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
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/style"
)

var (
	// ErrUnknownBand is returned if a channel selection names a band
	// which the raster does not have.
	ErrUnknownBand = errors.New("coverage: unknown band")

	// ErrChannels is returned for a color channel selection which does
	// not name all of red, green and blue.
	ErrChannels = errors.New("coverage: incomplete channel selection")
)

// Result is a styled raster, ready to be drawn.
type Result struct {
	Image *image.NRGBA

	// Envelope is the world area covered by Image.
	Envelope *geometry.Envelope

	// Opacity is the constant alpha to apply when drawing Image.
	Opacity float64
}

type channel struct {
	band     int
	contrast *style.ContrastEnhancement
}

// Apply styles r. The steps are applied in this order: the selected
// bands are looked up, shaded relief replaces the raster by its hill
// shading, the samples are mapped to gray or RGB colors with contrast
// enhancement, and the opacity is recorded. A color map, if present,
// works on the raw samples of the first selected band instead of the
// gray or RGB mapping.
func Apply(r Raster, s *style.RasterStyling) (*Result, error) {
	channels, alpha, err := selectChannels(r, s)
	if err != nil {
		return nil, err
	}

	if s.ShadedRelief != nil {
		shaded, err := Hillshade(r, channels[0].band, s.ShadedRelief)
		if err != nil {
			return nil, err
		}
		r = shaded
		channels = []channel{{band: 0, contrast: channels[0].contrast}}
		alpha = -1
	}

	cols, rows := r.Size()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	switch {
	case s.Categorize != nil:
		colorMap(img, r, channels[0].band, func(v float64) color.NRGBA {
			return categorize(s.Categorize, v)
		})
	case s.Interpolate != nil:
		colorMap(img, r, channels[0].band, func(v float64) color.NRGBA {
			return interpolate(s.Interpolate, v)
		})
	default:
		remap(img, r, channels, alpha)
	}

	opacity := s.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	return &Result{
		Image:    img,
		Envelope: r.Envelope(),
		Opacity:  min(1, opacity),
	}, nil
}

// selectChannels returns one channel for gray output or three channels
// for RGB output, and the index of an alpha band or -1.
func selectChannels(r Raster, s *style.RasterStyling) ([]channel, int, error) {
	bands := r.Bands()
	if len(bands) == 0 {
		return nil, -1, ErrUnknownBand
	}
	sel := s.Channels
	if sel == nil {
		switch {
		case len(bands) >= 4:
			return defaultChannels(3, s.Contrast), 3, nil
		case len(bands) == 3:
			return defaultChannels(3, s.Contrast), -1, nil
		}
		return defaultChannels(1, s.Contrast), -1, nil
	}

	var picked []*style.SelectedChannel
	if sel.Gray != nil {
		picked = []*style.SelectedChannel{sel.Gray}
	} else {
		if sel.Red == nil || sel.Green == nil || sel.Blue == nil {
			return nil, -1, ErrChannels
		}
		picked = []*style.SelectedChannel{sel.Red, sel.Green, sel.Blue}
	}
	res := make([]channel, len(picked))
	for i, sc := range picked {
		b, err := lookupBand(bands, sc.Name)
		if err != nil {
			return nil, -1, err
		}
		res[i] = channel{band: b, contrast: s.Contrast}
		if sc.Contrast != nil {
			res[i].contrast = sc.Contrast
		}
	}
	return res, -1, nil
}

func defaultChannels(n int, ce *style.ContrastEnhancement) []channel {
	res := make([]channel, n)
	for i := range res {
		res[i] = channel{band: i, contrast: ce}
	}
	return res
}

// lookupBand finds a band by name or by its 1-based index.
func lookupBand(bands []Band, name string) (int, error) {
	for i, b := range bands {
		if strings.EqualFold(b.Name, name) {
			return i, nil
		}
	}
	if k, err := strconv.Atoi(name); err == nil && k >= 1 && k <= len(bands) {
		return k - 1, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownBand, name)
}

func remap(img *image.NRGBA, r Raster, channels []channel, alpha int) {
	luts := make([]*lut, len(channels))
	for i, ch := range channels {
		luts[i] = newLUT(r, ch.band, ch.contrast)
	}

	cols, rows := r.Size()
	var vals [3]uint8
	for row := range rows {
	pixels:
		for col := range cols {
			for i, ch := range channels {
				v := r.Sample(col, row, ch.band)
				if math.IsNaN(v) {
					continue pixels
				}
				vals[i] = luts[i].apply(v)
			}
			c := color.NRGBA{R: vals[0], G: vals[0], B: vals[0], A: 255}
			if len(channels) == 3 {
				c.G, c.B = vals[1], vals[2]
			}
			if alpha >= 0 {
				a := r.Sample(col, row, alpha)
				if !math.IsNaN(a) {
					c.A = uint8(max(0, min(255, math.Round(a))))
				}
			}
			img.SetNRGBA(col, row, c)
		}
	}
}

func colorMap(img *image.NRGBA, r Raster, band int, f func(float64) color.NRGBA) {
	cols, rows := r.Size()
	for row := range rows {
		for col := range cols {
			img.SetNRGBA(col, row, f(r.Sample(col, row, band)))
		}
	}
}
