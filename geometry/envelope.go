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

package geometry

import (
	"github.com/paulmach/orb"
)

// Envelope is an axis-aligned bounding box with Min ≤ Max on both axes.
// Degenerate envelopes, for example around a single point, are allowed.
type Envelope struct {
	Min, Max orb.Point
	CRS      CRS
}

// NewEnvelope returns the envelope spanned by two corner points.
func NewEnvelope(a, b orb.Point, crs CRS) *Envelope {
	return &Envelope{
		Min: orb.Point{min(a[0], b[0]), min(a[1], b[1])},
		Max: orb.Point{max(a[0], b[0]), max(a[1], b[1])},
		CRS: crs,
	}
}

// Width returns the extent in x-direction.
func (e *Envelope) Width() float64 { return e.Max[0] - e.Min[0] }

// Height returns the extent in y-direction.
func (e *Envelope) Height() float64 { return e.Max[1] - e.Min[1] }

// Bound returns the envelope as an orb bound.
func (e *Envelope) Bound() orb.Bound { return orb.Bound{Min: e.Min, Max: e.Max} }

// Pad returns the envelope grown by dx on the left and right and by dy
// on the top and bottom.
func (e *Envelope) Pad(dx, dy float64) *Envelope {
	return &Envelope{
		Min: orb.Point{e.Min[0] - dx, e.Min[1] - dy},
		Max: orb.Point{e.Max[0] + dx, e.Max[1] + dy},
		CRS: e.CRS,
	}
}

// Surface returns the envelope as a polygon with a counter-clockwise
// exterior ring.
func (e *Envelope) Surface() *Surface {
	return NewPolygon(e.CRS, e.Bound().ToRing())
}
