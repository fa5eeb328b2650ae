package state

import (
	"math"

	"github.com/gogpu/gg"
)

// elementBounds walks path elements and returns the box spanned by all their
// points, control points included. This is never tighter than the curve
// itself, which is what width estimation wants. ok is false for an empty path.
func elementBounds(elems []gg.PathElement) (r gg.Rect, ok bool) {
	r = gg.Rect{
		Min: gg.Pt(math.MaxFloat64, math.MaxFloat64),
		Max: gg.Pt(-math.MaxFloat64, -math.MaxFloat64),
	}
	for _, elem := range elems {
		switch e := elem.(type) {
		case gg.MoveTo:
			r = expand(r, e.Point)
		case gg.LineTo:
			r = expand(r, e.Point)
		case gg.QuadTo:
			r = expand(expand(r, e.Control), e.Point)
		case gg.CubicTo:
			r = expand(expand(expand(r, e.Control1), e.Control2), e.Point)
		default:
			continue
		}
		ok = true
	}
	if !ok {
		return gg.Rect{}, false
	}
	return r, true
}

func expand(r gg.Rect, p gg.Point) gg.Rect {
	return gg.Rect{
		Min: gg.Pt(math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)),
		Max: gg.Pt(math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)),
	}
}
