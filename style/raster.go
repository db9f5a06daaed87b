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

package style

import "image/color"

// RasterStyling describes how a coverage is turned into an image.
// The steps are applied in the order channel selection, shaded relief,
// color map or contrast enhancement, opacity.
type RasterStyling struct {
	// Opacity is in the range 0 (invisible) to 1 (opaque). Zero, the
	// value for an unset opacity, selects 1.
	Opacity float64

	Channels     *ChannelSelection
	Contrast     *ContrastEnhancement
	ShadedRelief *ShadedRelief

	// At most one of Categorize and Interpolate is used. If both are
	// set, Categorize wins.
	Categorize  *Categorize
	Interpolate *Interpolate

	// Outline, if set, draws the footprint of the coverage. It must be a
	// *LineStyling or a *PolygonStyling.
	Outline Styling

	UOM UOM
}

// ChannelSelection maps bands of the coverage to output channels. Either
// Gray or all of Red, Green and Blue are used.
type ChannelSelection struct {
	Red, Green, Blue *SelectedChannel
	Gray             *SelectedChannel
}

// SelectedChannel names a band, either by its name or by its 1-based
// index written in decimal.
type SelectedChannel struct {
	Name string

	// Contrast, if set, replaces the global contrast enhancement for
	// this channel.
	Contrast *ContrastEnhancement
}

// ContrastMethod selects how sample values are stretched.
type ContrastMethod int

const (
	// ContrastNone uses the samples as they are.
	ContrastNone ContrastMethod = iota

	// ContrastNormalize stretches the band range linearly to 0–255.
	ContrastNormalize

	// ContrastHistogram equalizes the histogram of the band.
	ContrastHistogram
)

// ContrastEnhancement remaps sample values. Gamma values above 1
// brighten, values below 1 darken; zero means 1.
type ContrastEnhancement struct {
	Method ContrastMethod
	Gamma  float64
}

// ShadedRelief computes hill shading from an elevation band.
// Altitude and Azimuth give the position of the light source in degrees.
type ShadedRelief struct {
	ReliefFactor float64
	Altitude     float64
	Azimuth      float64
}

// Categorize maps value ranges to colors. Values[i] is used for samples v
// with Thresholds[i-1] ≤ v < Thresholds[i], so that len(Values) must be
// len(Thresholds)+1. NaN samples get Fallback.
type Categorize struct {
	Thresholds []float64
	Values     []color.NRGBA
	Fallback   color.NRGBA
}

// ColorSpace selects where colors are interpolated.
type ColorSpace int

const (
	RGB ColorSpace = iota
	Lab
)

// InterpolationPoint fixes the color for one sample value.
type InterpolationPoint struct {
	Data  float64
	Value color.NRGBA
}

// Interpolate maps sample values to colors by interpolating between
// points, which must be sorted by Data. Values outside the range get the
// color of the nearest end point; NaN samples get Fallback.
type Interpolate struct {
	Points   []InterpolationPoint
	Space    ColorSpace
	Fallback color.NRGBA
}
