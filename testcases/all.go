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

package testcases

// All lists the scenarios by category.
var All = map[string][]Scenario{
	"point":   pointCases,
	"line":    lineCases,
	"dash":    dashCases,
	"polygon": polygonCases,
	"curve":   curveCases,
	"ctm":     ctmCases,
	"large":   largeCases,
	"label":   labelCases,
	"raster":  rasterCases,
}
