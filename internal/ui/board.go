package ui

import (
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/pad"
	"MyInkPad/internal/render"
)

// PadWidget is the writing surface. It forwards pointer input to a Pad and
// paints the flowed page through a raster.
type PadWidget struct {
	widget.BaseWidget
	pad      *pad.Pad
	renderer *render.Renderer
	raster   *canvas.Raster
	log      *slog.Logger

	last fyne.Position
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)
var _ mobile.Touchable = (*PadWidget)(nil)

func NewPadWidget(p *pad.Pad, r *render.Renderer) *PadWidget {
	w := &PadWidget{
		pad:      p,
		renderer: r,
		log:      applog.WithComponent("ui"),
	}
	w.raster = canvas.NewRaster(w.draw)
	w.raster.SetMinSize(fyne.NewSize(300, 300))
	p.OnRepaint = w.raster.Refresh
	w.ExtendBaseWidget(w)
	return w
}

func (w *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raster)
}

// Resize keeps the pad's canvas the same size as the widget.
func (w *PadWidget) Resize(size fyne.Size) {
	w.BaseWidget.Resize(size)
	w.pad.Resize(float64(size.Width), float64(size.Height))
}

// Scene describes what the widget paints right now.
func (w *PadWidget) Scene() render.Scene {
	return render.Scene{
		Frame:      w.pad.ComputeFrame(),
		Ruled:      true,
		Caret:      true,
		CaretStyle: w.pad.StrokeStyle(),
		Pending:    w.pad.Pending(),
		Stroke:     w.pad.Stroke(),
	}
}

// draw renders at the raster's device size, which is larger than the pad's
// canvas on HiDPI screens.
func (w *PadWidget) draw(pw, ph int) image.Image {
	scene := w.Scene()
	if cw := scene.Frame.Params.Width; cw > 0 && pw > 0 {
		scene.Zoom = float64(pw) / cw
	}
	img, err := w.renderer.Render(scene)
	if err != nil {
		w.log.Debug("nothing to paint", "err", err)
		return image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	return img
}

func (w *PadWidget) down(pos fyne.Position) {
	w.last = pos
	w.pad.TouchDown(float64(pos.X), float64(pos.Y))
}

func (w *PadWidget) move(pos fyne.Position) {
	w.last = pos
	w.pad.TouchMove(float64(pos.X), float64(pos.Y))
}

func (w *PadWidget) up(pos fyne.Position) {
	w.last = pos
	w.pad.TouchUp(float64(pos.X), float64(pos.Y))
}

func (w *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.down(e.Position)
	}
}

func (w *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.up(e.Position)
	}
}

func (w *PadWidget) Dragged(e *fyne.DragEvent) {
	w.move(e.Position)
}

// DragEnd finishes a stroke when the driver ends a drag without a release
// event, as some touch drivers do.
func (w *PadWidget) DragEnd() {
	if w.pad.Capturing() {
		w.up(w.last)
	}
}

func (w *PadWidget) TouchDown(e *mobile.TouchEvent) { w.down(e.Position) }
func (w *PadWidget) TouchUp(e *mobile.TouchEvent)   { w.up(e.Position) }
func (w *PadWidget) TouchCancel(*mobile.TouchEvent) { w.pad.CancelTouch() }

func (w *PadWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *PadWidget) MouseOut()                      {}
func (w *PadWidget) MouseMoved(*desktop.MouseEvent) {}

// TypedKey maps editing keys to pad commands: Backspace undoes, Space and
// Return insert markers.
func (w *PadWidget) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyBackspace, fyne.KeyDelete, mobile.KeyBack:
		w.undo()
	case fyne.KeySpace:
		w.pad.InsertSpace()
	case fyne.KeyReturn, fyne.KeyEnter:
		w.pad.InsertBreak()
	}
}

func (w *PadWidget) undo() {
	if _, err := w.pad.UndoLast(); err != nil {
		w.log.Debug("undo", "err", err)
	}
}
