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

package render

import (
	"errors"

	"seehuhn.de/go/maprender/geometry"
)

// Clipper cuts geometries to the clipping area of a render pass.
type Clipper struct {
	ctx *PassContext

	skipped int
}

// Clip returns the part of g inside the clipping area, or nil if nothing
// remains. Geometries completely inside the area are returned as they
// are, without computing an intersection. If the engine cannot intersect
// g, the unclipped g is returned.
func (c *Clipper) Clip(g geometry.Geometry) (geometry.Geometry, error) {
	area := c.ctx.Area
	if area == nil {
		return g, nil
	}
	if c.ctx.Engine.Contains(area, g) {
		c.skipped++
		return g, nil
	}

	res, err := c.ctx.Engine.Intersect(area, g)
	switch {
	case errors.Is(err, geometry.ErrUnsupported):
		c.ctx.log().Debug("geometry not clipped", "error", err)
		return g, nil
	case err != nil:
		return nil, err
	case res == nil:
		return nil, nil
	case res == g:
		return g, nil
	}
	return FixOrientation(c.ctx.Engine, res)
}

// Skipped returns how many geometries were found to lie inside the
// clipping area, so that no intersection had to be computed.
func (c *Clipper) Skipped() int {
	return c.skipped
}
