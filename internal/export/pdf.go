package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/gg"
	"github.com/jung-kurt/gofpdf"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/layout"
	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

const backgroundImage = "background"

// WritePDF writes the flowed document as a one-page vector PDF the size of
// the canvas, in points. background may be nil.
func WritePDF(w io.Writer, snap state.Snapshot, background image.Image) error {
	if snap.Width <= 0 || snap.Height <= 0 {
		return fmt.Errorf("export pdf: empty canvas %gx%g", snap.Width, snap.Height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: snap.Width, Ht: snap.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	if background != nil {
		if err := placeBackground(p, background, snap); err != nil {
			return err
		}
	}

	frame := layout.FlowSnapshot(snap)
	for _, pl := range frame.Placements {
		if !pl.Visible() {
			continue
		}
		st := pl.Char.Style()
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		p.SetAlpha(float64(st.Color.A)/0xff, "Normal")
		p.SetLineWidth(st.Width * pl.Scale)
		p.SetLineCapStyle(capStyle(st.Cap))
		p.SetLineJoinStyle(joinStyle(st.Join))

		m := pl.Matrix()
		for _, path := range pl.Char.Paths() {
			tracePath(p, path, m)
			p.DrawPath("D")
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	applog.WithComponent("export").Info("pdf written", "characters", len(snap.Characters))
	return nil
}

func placeBackground(p *gofpdf.Fpdf, img image.Image, snap state.Snapshot) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("export pdf background: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(backgroundImage, opts, &buf)
	dr := render.FitRect(img.Bounds().Size(), image.Pt(int(snap.Width), int(snap.Height)))
	p.ImageOptions(backgroundImage, 0, 0, float64(dr.Dx()), float64(dr.Dy()), false, opts, 0, "")
	if p.Err() {
		return fmt.Errorf("export pdf background: %w", p.Error())
	}
	return nil
}

func tracePath(p *gofpdf.Fpdf, path *state.VectorPath, m gg.Matrix) {
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			pt := m.TransformPoint(e.Point)
			p.MoveTo(pt.X, pt.Y)
		case gg.LineTo:
			pt := m.TransformPoint(e.Point)
			p.LineTo(pt.X, pt.Y)
		case gg.QuadTo:
			c, pt := m.TransformPoint(e.Control), m.TransformPoint(e.Point)
			p.CurveTo(c.X, c.Y, pt.X, pt.Y)
		case gg.CubicTo:
			c1, c2, pt := m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point)
			p.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case gg.Close:
			p.ClosePath()
		}
	}
}

func capStyle(c gg.LineCap) string {
	switch c {
	case gg.LineCapRound:
		return "round"
	case gg.LineCapSquare:
		return "square"
	}
	return "butt"
}

func joinStyle(j gg.LineJoin) string {
	switch j {
	case gg.LineJoinRound:
		return "round"
	case gg.LineJoinBevel:
		return "bevel"
	}
	return "miter"
}
