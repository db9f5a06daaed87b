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

package view

import (
	"seehuhn.de/go/maprender/style"
)

// DefaultPixelSize is the assumed physical size of one pixel in meters,
// as used by the OGC symbology encoding standard.
const DefaultPixelSize = 0.00028

const (
	metersPerPoint = 0.0254 / 72
	metersPerFoot  = 0.3048
)

// UnitResolver converts style lengths into pixels.
type UnitResolver struct {
	// Resolution is the size of one pixel in world units.
	Resolution float64

	// PixelSize is the physical size of one pixel in meters.
	// Zero selects DefaultPixelSize.
	PixelSize float64

	// MetersPerUnit gives the length of one world unit in meters.
	// Zero means 1, as for projected systems in meters.
	MetersPerUnit float64
}

// NewUnitResolver returns a resolver for the given view.
func NewUnitResolver(t Transform, pixelSize, metersPerUnit float64) UnitResolver {
	return UnitResolver{
		Resolution:    t.Resolution(),
		PixelSize:     pixelSize,
		MetersPerUnit: metersPerUnit,
	}
}

// Resolve converts a length in the given unit into pixels.
func (u UnitResolver) Resolve(length float64, uom style.UOM) float64 {
	return length * u.factor(uom)
}

// Inverse converts a length in pixels into the given unit.
func (u UnitResolver) Inverse(px float64, uom style.UOM) float64 {
	return px / u.factor(uom)
}

// factor returns the number of pixels per unit.
func (u UnitResolver) factor(uom style.UOM) float64 {
	pixelSize := u.PixelSize
	if pixelSize <= 0 {
		pixelSize = DefaultPixelSize
	}
	mpu := u.MetersPerUnit
	if mpu <= 0 {
		mpu = 1
	}
	res := u.Resolution
	if res <= 0 {
		res = 1
	}

	switch uom {
	case style.Point:
		return metersPerPoint / pixelSize
	case style.Millimeter:
		return 0.001 / pixelSize
	case style.Meter:
		return 1 / (mpu * res)
	case style.Foot:
		return metersPerFoot / (mpu * res)
	}
	return 1
}
