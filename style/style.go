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

// Package style holds the style descriptors understood by the renderer.
//
// Style values are treated as immutable once they are passed to the
// renderer. A [Styling] is one of [*PointStyling], [*LineStyling],
// [*PolygonStyling], [*TextStyling] and [*RasterStyling].
package style

import (
	"image"
	"image/color"

	"seehuhn.de/go/pdf/graphics"
)

// Styling is the closed set of style kinds.
type Styling interface {
	// Unit returns the unit of measure for all lengths in the styling.
	Unit() UOM

	isStyling()
}

// Stroke describes how a line is drawn.
type Stroke struct {
	Color color.NRGBA
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle

	// Dash alternates between dash and gap lengths.
	Dash       []float64
	DashOffset float64

	// Fill, if set, paints the stroke with a tiled graphic instead of
	// Color.
	Fill *Graphic

	// Graphic, if set, draws copies of a graphic along the line instead
	// of a solid or dashed line.
	Graphic *GraphicStroke
}

// GraphicStrokeMode selects how copies of a graphic are placed along a
// line.
type GraphicStrokeMode int

const (
	// Repeat places copies every Gap plus the size of the graphic,
	// starting at InitialGap.
	Repeat GraphicStrokeMode = iota

	// AtPosition places a single copy at PositionPercentage of the line
	// length.
	AtPosition
)

// GraphicStroke places a graphic along a line.
type GraphicStroke struct {
	Graphic *Graphic
	Mode    GraphicStrokeMode

	InitialGap float64
	Gap        float64

	// PositionPercentage is in the range 0 to 100.
	PositionPercentage float64

	// Rotate aligns the graphic with the line direction.
	Rotate bool
}

// Graphic is a symbol: a well-known mark or an external image.
type Graphic struct {
	// Size is the height of the graphic. A negative size selects the
	// natural size of the image, or the fallback size for marks.
	Size float64

	// Rotation is in degrees, clockwise.
	Rotation float64

	// Anchor selects the point of the graphic which is placed at the
	// target location, as a fraction of the width and height. (0, 0) is
	// the lower left corner, (0.5, 0.5) the center.
	Anchor [2]float64

	// Displacement moves the graphic; positive y is up.
	Displacement [2]float64

	Mark     *Mark
	ImageURL string
	Image    image.Image
}

// WellKnownName names one of the built-in mark shapes.
type WellKnownName string

// The built-in mark shapes.
const (
	Square   WellKnownName = "square"
	Circle   WellKnownName = "circle"
	Triangle WellKnownName = "triangle"
	Star     WellKnownName = "star"
	Cross    WellKnownName = "cross"
	X        WellKnownName = "x"
)

// Mark is a simple shape drawn with its own fill and stroke.
type Mark struct {
	WellKnownName WellKnownName
	Fill          *Fill
	Stroke        *Stroke
}

// Fill describes how an area is painted. If Graphic is set, the area is
// tiled with the graphic and Color is ignored.
type Fill struct {
	Color   color.NRGBA
	Graphic *Graphic
}

// OffsetType selects how corners are treated when a line is moved
// sideways.
type OffsetType int

const (
	// OffsetStandard extends the offset segments until they meet.
	OffsetStandard OffsetType = iota

	// OffsetRound connects the offset segments with circular arcs.
	OffsetRound

	// OffsetEdged connects the offset segments with straight lines.
	OffsetEdged
)

// FontStyle selects upright or slanted glyphs.
type FontStyle int

const (
	Normal FontStyle = iota
	Italic
	Oblique
)

// Font describes the typeface of a label.
type Font struct {
	Family []string
	Style  FontStyle
	Bold   bool
	Size   float64
}

// Halo surrounds label text to improve legibility. A negative radius
// draws a box behind the text, using the absolute value as margin.
type Halo struct {
	Radius float64
	Fill   *Fill
}

// LinePlacement places labels along lines.
type LinePlacement struct {
	PerpendicularOffset float64
	InitialGap          float64
	Gap                 float64
	Repeat              bool
}

// PointStyling draws a graphic at every point.
type PointStyling struct {
	Graphic *Graphic
	UOM     UOM
}

// LineStyling strokes lines.
type LineStyling struct {
	Stroke              *Stroke
	PerpendicularOffset float64
	OffsetType          OffsetType
	UOM                 UOM
}

// PolygonStyling fills areas and strokes their outlines.
type PolygonStyling struct {
	Fill                *Fill
	Stroke              *Stroke
	PerpendicularOffset float64
	OffsetType          OffsetType

	// Displacement moves the polygon on screen; positive y is up.
	Displacement [2]float64

	UOM UOM
}

// TextStyling draws labels.
type TextStyling struct {
	Font Font
	Fill *Fill
	Halo *Halo

	// Rotation is in degrees, clockwise.
	Rotation     float64
	Anchor       [2]float64
	Displacement [2]float64

	// LinePlacement, if set, makes labels follow lines and polygon
	// outlines.
	LinePlacement *LinePlacement

	// AutoPlacement places polygon labels at interior points instead of
	// the centroid.
	AutoPlacement bool

	UOM UOM
}

func (s *PointStyling) Unit() UOM   { return s.UOM }
func (s *LineStyling) Unit() UOM    { return s.UOM }
func (s *PolygonStyling) Unit() UOM { return s.UOM }
func (s *TextStyling) Unit() UOM    { return s.UOM }
func (s *RasterStyling) Unit() UOM  { return s.UOM }

func (*PointStyling) isStyling()   {}
func (*LineStyling) isStyling()    {}
func (*PolygonStyling) isStyling() {}
func (*TextStyling) isStyling()    {}
func (*RasterStyling) isStyling()  {}
