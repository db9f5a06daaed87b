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

// Package testcases holds small maps which exercise the renderer. They
// are drawn by the tests of the maprender package and by the export
// command, which writes them to PNG files for visual inspection.
package testcases

import (
	"fmt"
	"image"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"seehuhn.de/go/maprender"
	"seehuhn.de/go/maprender/coverage"
	"seehuhn.de/go/maprender/geometry"
	"seehuhn.de/go/maprender/render"
	"seehuhn.de/go/maprender/style"
)

// Scenario defines a single map.
type Scenario struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // image width in pixels
	Height int    // image height in pixels

	// Envelope is the world area shown. If nil, world coordinates are
	// pixel coordinates with the y-axis pointing up.
	Envelope *geometry.Envelope

	Options render.Options
	Layers  []Layer

	// Blank is set for scenarios where nothing is visible.
	Blank bool
}

// Layer is one drawing call of a scenario.
type Layer struct {
	Styling  style.Styling
	Geometry geometry.Geometry
	Text     string          // used with text stylings
	Raster   coverage.Raster // used with raster stylings
}

// Render draws the scenario into a new image.
func (s *Scenario) Render() (*image.RGBA, error) {
	env := s.Envelope
	if env == nil {
		env = geometry.NewEnvelope(orb.Point{0, 0}, orb.Point{float64(s.Width), float64(s.Height)}, "")
	}
	p, err := maprender.NewPass(env, s.Width, s.Height, s.Options)
	if err != nil {
		return nil, err
	}
	for i, l := range s.Layers {
		switch st := l.Styling.(type) {
		case *style.TextStyling:
			err = p.RenderText(st, l.Text, l.Geometry)
		case *style.RasterStyling:
			err = p.RenderRaster(l.Raster, st)
		default:
			err = p.Render(st, l.Geometry)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", s.Name, i, err)
		}
	}
	return p.Finish(), nil
}

// parse converts a GeoJSON geometry. Malformed input is a bug in the
// scenario table, so parse panics on errors.
func parse(data string) geometry.Geometry {
	g, err := geojson.UnmarshalGeometry([]byte(data))
	if err != nil {
		panic(err)
	}
	return geometry.FromOrb(g.Geometry(), "")
}

func line(pts ...float64) *geometry.Curve {
	return geometry.NewLineString("", points(pts)...)
}

func polygon(pts ...float64) *geometry.Surface {
	return geometry.NewPolygon("", points(pts))
}

func points(xy []float64) []orb.Point {
	res := make([]orb.Point, len(xy)/2)
	for i := range res {
		res[i] = orb.Point{xy[2*i], xy[2*i+1]}
	}
	return res
}

func at(x, y float64) *geometry.Point {
	return &geometry.Point{Coord: orb.Point{x, y}}
}

var (
	black  = color.NRGBA{A: 255}
	white  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red    = color.NRGBA{R: 255, A: 255}
	blue   = color.NRGBA{R: 40, G: 80, B: 200, A: 255}
	green  = color.NRGBA{R: 40, G: 160, B: 60, A: 255}
	yellow = color.NRGBA{R: 240, G: 200, B: 40, A: 255}
	gray   = color.NRGBA{R: 128, G: 128, B: 128, A: 160}
)

func solid(c color.NRGBA) *style.Fill {
	return &style.Fill{Color: c}
}

func pen(c color.NRGBA, width float64) *style.Stroke {
	return &style.Stroke{Color: c, Width: width}
}

func mark(name style.WellKnownName, size float64, fill color.NRGBA) *style.Graphic {
	return &style.Graphic{
		Size:   size,
		Anchor: [2]float64{0.5, 0.5},
		Mark: &style.Mark{
			WellKnownName: name,
			Fill:          solid(fill),
			Stroke:        pen(black, 1),
		},
	}
}
