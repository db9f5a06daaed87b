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

package text

import (
	"errors"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// LayoutMu serializes all text layout in the process. The sfnt fonts
// shared through a Library must not be used concurrently, so code which
// reads a Face outside of Layout must hold this lock too.
var LayoutMu sync.Mutex

// Glyph is one positioned glyph of a laid out line.
type Glyph struct {
	Rune  rune
	Index sfnt.GlyphIndex

	// X is the pen position of the glyph origin, relative to the start
	// of the line.
	X float64

	Advance float64

	// Outline is the glyph shape in pixels, relative to the glyph
	// origin on the baseline, with the y-axis pointing down.
	// It is empty for blank glyphs.
	Outline *path.Data
}

// Line is a single line of laid out text.
type Line struct {
	Glyphs []Glyph

	// Width is the total advance of the line in pixels.
	Width float64

	// Ascent and Descent are the distances from the baseline to the top
	// and the bottom of the font, both positive.
	Ascent, Descent float64
}

// Height returns Ascent + Descent.
func (l *Line) Height() float64 {
	return l.Ascent + l.Descent
}

// Layout normalizes s to NFC and places its glyphs on a single line,
// applying kerning where the font provides it.
func Layout(face *Face, s string) (*Line, error) {
	LayoutMu.Lock()
	defer LayoutMu.Unlock()

	f := face.Font
	ppem := fixed.Int26_6(face.Size * 64)
	var buf sfnt.Buffer

	m, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	line := &Line{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
	}

	var prev sfnt.GlyphIndex
	var x fixed.Int26_6
	for i, r := range norm.NFC.String(s) {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			kern, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone)
			if err == nil {
				x += kern
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				return nil, err
			}
		}
		adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, err
		}
		outline, err := loadOutline(f, &buf, idx, ppem)
		if err != nil {
			return nil, err
		}
		line.Glyphs = append(line.Glyphs, Glyph{
			Rune:    r,
			Index:   idx,
			X:       fromFixed(x),
			Advance: fromFixed(adv),
			Outline: outline,
		})
		x += adv
		prev = idx
	}
	line.Width = fromFixed(x)
	return line, nil
}

func loadOutline(f *sfnt.Font, buf *sfnt.Buffer, idx sfnt.GlyphIndex, ppem fixed.Int26_6) (*path.Data, error) {
	segs, err := f.LoadGlyph(buf, idx, ppem, nil)
	if err != nil {
		return nil, err
	}
	p := &path.Data{}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p = p.Close()
			}
			p = p.MoveTo(point(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p = p.LineTo(point(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p = p.QuadTo(point(seg.Args[0]), point(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p = p.CubeTo(point(seg.Args[0]), point(seg.Args[1]), point(seg.Args[2]))
		}
	}
	if open {
		p = p.Close()
	}
	return p, nil
}

func point(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: fromFixed(p.X), Y: fromFixed(p.Y)}
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
