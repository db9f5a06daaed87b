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

package canvas

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpFill OpKind = iota
	OpStroke
	OpImage
)

// Op is a drawing operation captured by a Recorder.
type Op struct {
	Kind    OpKind
	Path    *path.Data
	Rule    FillRule
	Stroke  StrokeSpec
	Paint   Paint
	Image   image.Image
	Rect    rect.Rect
	Opacity float64

	// CTM is the transformation in effect when the operation was issued.
	CTM matrix.Matrix
}

// Recorder is a Canvas which stores all operations instead of drawing
// them.
type Recorder struct {
	Width, Height int
	Ops           []Op

	ctm   matrix.Matrix
	stack []matrix.Matrix
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder returns an empty recorder for a canvas of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, ctm: matrix.Identity}
}

// Size implements the Canvas interface.
func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

// Fill implements the Canvas interface.
func (r *Recorder) Fill(p *path.Data, rule FillRule, paint Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Path: p, Rule: rule, Paint: paint, CTM: r.ctm})
}

// Stroke implements the Canvas interface.
func (r *Recorder) Stroke(p *path.Data, s StrokeSpec, paint Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Path: p, Stroke: s, Paint: paint, CTM: r.ctm})
}

// DrawImage implements the Canvas interface.
func (r *Recorder) DrawImage(img image.Image, rc rect.Rect, opacity float64) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Image: img, Rect: rc, Opacity: opacity, CTM: r.ctm})
}

// Push implements the Canvas interface.
func (r *Recorder) Push(m matrix.Matrix) {
	r.stack = append(r.stack, r.ctm)
	r.ctm = m.Mul(r.ctm)
}

// Pop implements the Canvas interface.
func (r *Recorder) Pop() {
	if n := len(r.stack); n > 0 {
		r.ctm = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// Depth returns the number of transformations pushed and not yet popped.
func (r *Recorder) Depth() int { return len(r.stack) }

// Inked returns the operations which can change at least one pixel.
func (r *Recorder) Inked() []Op {
	var res []Op
	for _, op := range r.Ops {
		switch op.Kind {
		case OpFill:
			if !Inked(op.Paint) {
				continue
			}
		case OpStroke:
			if op.Stroke.Width <= 0 || !Inked(op.Paint) {
				continue
			}
		case OpImage:
			if op.Image == nil || op.Opacity <= 0 {
				continue
			}
		}
		res = append(res, op)
	}
	return res
}
