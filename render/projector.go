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

// Projector brings geometries into the coordinate reference system of a
// render pass.
type Projector struct {
	ctx *PassContext
}

// Transform returns g in the CRS of the pass. Geometries without a CRS,
// or already in the pass CRS, are returned as they are. Geometries which
// the engine cannot transform directly are linearized first. If the
// transformation fails, the failure is logged and g is returned
// unchanged.
func (p *Projector) Transform(g geometry.Geometry) geometry.Geometry {
	to := p.ctx.CRS()
	from := g.SRS()
	if from == "" || to == "" || from.Equal(to) {
		return g
	}

	res, err := p.ctx.Engine.Transform(g, to)
	if errors.Is(err, geometry.ErrTooComplex) {
		// the linearized copy keeps the CRS of g
		lin, lerr := p.ctx.Engine.Linearize(g, p.ctx.Options.LinearizePoints)
		if lerr == nil {
			res, err = p.ctx.Engine.Transform(lin, to)
		} else {
			err = lerr
		}
	}
	if err != nil {
		p.ctx.log().Warn("cannot transform geometry, drawing untransformed",
			"from", from, "to", to, "error", err)
		return g
	}
	return res
}

// Linearize replaces arcs and circles in g by polylines. On failure, g
// is returned unchanged.
func (p *Projector) Linearize(g geometry.Geometry) geometry.Geometry {
	res, err := p.ctx.Engine.Linearize(g, p.ctx.Options.LinearizePoints)
	if err != nil {
		p.ctx.log().Warn("cannot linearize geometry", "error", err)
		return g
	}
	return res
}
