// Package render paints a laid-out page with the gg software rasterizer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"MyInkPad/internal/layout"
	"MyInkPad/internal/state"
)

var (
	BackColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	LineColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

const (
	lineInset = 4
	lineWidth = 2
)

// Scene is everything needed to paint one frame.
type Scene struct {
	Frame layout.Frame

	// Ruled draws a ruled line under every row.
	Ruled bool
	// Caret draws the cursor tick with CaretStyle.
	Caret      bool
	CaretStyle state.Style

	// Pending and Stroke are the glyph and stroke still being drawn, in
	// unscaled canvas coordinates.
	Pending *state.Character
	Stroke  *state.VectorPath

	// Zoom is the number of device pixels per canvas unit. Zero means 1.
	Zoom float64
}

func (s Scene) zoom() float64 {
	if s.Zoom <= 0 {
		return 1
	}
	return s.Zoom
}

// Renderer paints scenes. The zero value paints on white.
type Renderer struct {
	mu         sync.Mutex
	background image.Image
	fitted     *image.RGBA
}

// SetBackground sets the picture drawn behind the writing. nil clears it.
func (r *Renderer) SetBackground(img image.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.background = img
	r.fitted = nil
}

// Background returns the current background picture.
func (r *Renderer) Background() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background
}

// Render paints the scene into a new image sized to the frame's canvas.
func (r *Renderer) Render(s Scene) (image.Image, error) {
	dc, err := r.context(s)
	if err != nil {
		return nil, err
	}
	if err := Draw(dc, s); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG paints the scene and writes it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, s Scene) error {
	dc, err := r.context(s)
	if err != nil {
		return err
	}
	if err := Draw(dc, s); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (r *Renderer) context(s Scene) (*gg.Context, error) {
	z := s.zoom()
	w := int(math.Ceil(s.Frame.Params.Width * z))
	h := int(math.Ceil(s.Frame.Params.Height * z))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: empty canvas %dx%d", w, h)
	}
	return gg.NewContextForImage(r.page(w, h)), nil
}

// Draw paints the scene onto dc: ruled lines, placed glyphs, caret and the
// live ink, in that order. The background is expected to be on dc already.
func Draw(dc *gg.Context, s Scene) error {
	f := s.Frame
	z := s.zoom()
	view := gg.Scale(z, z)
	if s.Ruled {
		if err := drawRules(dc, f, view, z); err != nil {
			return err
		}
	}
	for _, pl := range f.Placements {
		if !pl.Visible() {
			continue
		}
		m := view.Multiply(pl.Matrix())
		st := pl.Char.Style()
		for _, p := range pl.Char.Paths() {
			if err := strokePath(dc, p, m, st, pl.Scale*z); err != nil {
				return fmt.Errorf("render glyph %d: %w", pl.Index, err)
			}
		}
	}
	if s.Caret && f.Scale > 0 {
		top, bottom := f.CaretTick()
		top, bottom = view.TransformPoint(top), view.TransformPoint(bottom)
		applyStyle(dc, s.CaretStyle, f.Scale*z)
		dc.MoveTo(top.X, top.Y)
		dc.LineTo(bottom.X, bottom.Y)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("render caret: %w", err)
		}
	}
	if s.Pending != nil {
		st := s.Pending.Style()
		for _, p := range s.Pending.Paths() {
			if err := strokePath(dc, p, view, st, z); err != nil {
				return fmt.Errorf("render pending glyph: %w", err)
			}
		}
		if s.Stroke != nil {
			if err := strokePath(dc, s.Stroke, view, st, z); err != nil {
				return fmt.Errorf("render stroke: %w", err)
			}
		}
	}
	return nil
}

func drawRules(dc *gg.Context, f layout.Frame, view gg.Matrix, z float64) error {
	row := f.Params.RowHeight
	if row <= 0 {
		return nil
	}
	dc.SetColor(LineColor)
	dc.SetLineWidth(lineWidth * z)
	dc.SetLineCap(gg.LineCapButt)
	n := 0
	for i := 1; float64(i) < f.Params.Height/row; i++ {
		y := float64(i) * row
		from := view.TransformPoint(gg.Pt(lineInset, y))
		to := view.TransformPoint(gg.Pt(f.Params.Width-lineInset, y))
		dc.MoveTo(from.X, from.Y)
		dc.LineTo(to.X, to.Y)
		n++
	}
	if n == 0 {
		return nil
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("render rules: %w", err)
	}
	return nil
}

func applyStyle(dc *gg.Context, st state.Style, scale float64) {
	dc.SetColor(st.Color)
	dc.SetLineWidth(st.Width * scale)
	dc.SetLineCap(st.Cap)
	dc.SetLineJoin(st.Join)
}

// strokePath maps p through m by hand, so line width scales with the glyph
// regardless of how the context treats its own transform.
func strokePath(dc *gg.Context, p *state.VectorPath, m gg.Matrix, st state.Style, scale float64) error {
	applyStyle(dc, st, scale)
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			pt := m.TransformPoint(e.Point)
			dc.MoveTo(pt.X, pt.Y)
		case gg.LineTo:
			pt := m.TransformPoint(e.Point)
			dc.LineTo(pt.X, pt.Y)
		case gg.QuadTo:
			c, pt := m.TransformPoint(e.Control), m.TransformPoint(e.Point)
			dc.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case gg.CubicTo:
			c1, c2, pt := m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point)
			dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case gg.Close:
			dc.ClosePath()
		}
	}
	return dc.Stroke()
}
