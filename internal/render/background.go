package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FitRect scales a src-sized picture to fit inside dst keeping its aspect
// ratio, anchored at the top-left corner.
func FitRect(src, dst image.Point) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || dst.X <= 0 || dst.Y <= 0 {
		return image.Rectangle{}
	}
	if dst.Y*src.X > dst.X*src.Y {
		return image.Rect(0, 0, dst.X, dst.X*src.Y/src.X)
	}
	return image.Rect(0, 0, dst.Y*src.X/src.Y, dst.Y)
}

// page returns a fresh canvas-sized image holding the background: white,
// with the picture fitted over it when one is set.
func (r *Renderer) page(w, h int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fitted == nil || r.fitted.Bounds().Dx() != w || r.fitted.Bounds().Dy() != h {
		fitted := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(fitted, fitted.Bounds(), image.NewUniform(color.Color(BackColor)), image.Point{}, draw.Src)
		if r.background != nil {
			sb := r.background.Bounds()
			dr := FitRect(sb.Size(), image.Pt(w, h))
			draw.CatmullRom.Scale(fitted, dr, r.background, sb, draw.Over, nil)
		}
		r.fitted = fitted
	}

	out := image.NewRGBA(r.fitted.Bounds())
	copy(out.Pix, r.fitted.Pix)
	return out
}
