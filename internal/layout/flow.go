// Package layout flows hand-drawn characters into wrapped lines.
//
// Flow is a pure function of the character sequence and the canvas size. It
// is run again for every repaint, so it keeps no state between calls.
package layout

import (
	"math"

	"github.com/gogpu/gg"

	"MyInkPad/internal/state"
)

// DefaultRowHeight is the height of one written line in canvas pixels.
const DefaultRowHeight = 120.0

// Params describes the canvas being written on.
type Params struct {
	Width     float64
	Height    float64
	RowHeight float64
}

// Scale is the factor applied to glyphs so a full-canvas drawing shrinks to
// one row.
func (p Params) Scale() float64 {
	if p.Height <= 0 {
		return 0
	}
	return p.RowHeight / p.Height
}

// Placement positions one character of the flow. For glyphs the character's
// local paths are drawn translated by (X, Y) and then scaled by Scale. Spaces
// and breaks get a placement too but draw nothing.
type Placement struct {
	Index int
	Char  *state.Character
	X, Y  float64
	Scale float64
	Width float64
	Line  int
}

// Matrix maps the character's local coordinates to canvas coordinates.
func (pl Placement) Matrix() gg.Matrix {
	return gg.Translate(pl.X, pl.Y).Multiply(gg.Scale(pl.Scale, pl.Scale))
}

// Visible reports whether the placement draws anything.
func (pl Placement) Visible() bool {
	return pl.Char.Kind() == state.KindGlyph && pl.Char.PathCount() > 0
}

// Frame is the result of a layout pass.
type Frame struct {
	Params     Params
	Placements []Placement
	Caret      gg.Point
	Scale      float64
	LineHeight float64
	Lines      int
}

// CaretTick returns the end points of the vertical caret mark drawn at the
// cursor.
func (f Frame) CaretTick() (top, bottom gg.Point) {
	x := f.Caret.X + f.Scale*f.Params.Width/4
	top = gg.Pt(x, f.Caret.Y+f.Scale*f.Params.Height/8)
	bottom = gg.Pt(x, f.Caret.Y+f.Scale*f.Params.Height*7/8)
	return top, bottom
}

// Flow lays out chars greedily from the top-left corner.
func Flow(chars []*state.Character, p Params) Frame {
	f := Frame{Params: p, Lines: 1}
	if p.Width <= 0 || p.Height <= 0 || p.RowHeight <= 0 {
		return f
	}
	scale := p.Scale()
	f.Scale = scale
	f.LineHeight = p.RowHeight
	f.Placements = make([]Placement, 0, len(chars))

	var x, y float64
	line := 0
	newline := func() {
		x = 0
		y += f.LineHeight
		line++
	}
	// fits never rejects the first item of a line, so an oversized glyph is
	// placed at x=0 instead of wrapping forever.
	fits := func(w float64) bool {
		return x == 0 || x+w <= p.Width
	}

	for i, c := range chars {
		switch c.Kind() {
		case state.KindBreak:
			f.Placements = append(f.Placements, Placement{Index: i, Char: c, X: x, Y: y, Scale: scale, Line: line})
			newline()

		case state.KindSpace:
			w := math.Min(p.Width, p.Height) * scale
			if !fits(w) {
				newline()
			}
			f.Placements = append(f.Placements, Placement{Index: i, Char: c, X: x, Y: y, Scale: scale, Width: w, Line: line})
			x += w

		case state.KindGlyph:
			r := c.Bound()
			padding := scale * p.Width / 10
			w := scale*r.Width() + padding
			xOffset := padding - scale*r.Min.X
			if !fits(w) {
				newline()
			}
			f.Placements = append(f.Placements, Placement{Index: i, Char: c, X: x + xOffset, Y: y, Scale: scale, Width: w, Line: line})
			x += w
		}
	}

	f.Caret = gg.Pt(x, y)
	f.Lines = line + 1
	return f
}

// FlowSnapshot lays out a document snapshot on the canvas it was taken from.
func FlowSnapshot(s state.Snapshot) Frame {
	return Flow(s.Characters, Params{Width: s.Width, Height: s.Height, RowHeight: s.RowHeight})
}
