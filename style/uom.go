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

import (
	"fmt"
	"strings"
)

// UOM is the unit of measure of the lengths in a style.
type UOM int

const (
	// Pixel lengths are used as they are.
	Pixel UOM = iota

	// Point is 1/72 inch.
	Point

	// Millimeter lengths are converted using the physical pixel size.
	Millimeter

	// Meter lengths are given on the ground.
	Meter

	// Foot is 0.3048 meters on the ground.
	Foot
)

func (u UOM) String() string {
	switch u {
	case Pixel:
		return "pixel"
	case Point:
		return "point"
	case Millimeter:
		return "mm"
	case Meter:
		return "metre"
	case Foot:
		return "foot"
	}
	return fmt.Sprintf("UOM(%d)", int(u))
}

// ParseUOM parses a unit name. Both short names and the OGC symbology
// encoding URIs are accepted; the empty string means Pixel.
func ParseUOM(s string) (UOM, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "http://www.opengeospatial.org/se/units/")
	switch s {
	case "", "pixel", "px":
		return Pixel, nil
	case "point", "pt":
		return Point, nil
	case "mm", "millimeter", "millimetre":
		return Millimeter, nil
	case "metre", "meter", "m":
		return Meter, nil
	case "foot", "ft", "feet":
		return Foot, nil
	}
	return Pixel, fmt.Errorf("unknown unit of measure %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UOM) UnmarshalText(text []byte) error {
	v, err := ParseUOM(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UOM) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
