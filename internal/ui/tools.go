package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MyInkPad/internal/state"
)

var palette = []color.NRGBA{
	{A: 0xff},
	{R: 0xff, A: 0xff},
	{G: 0xa0, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xff, G: 0x80, A: 0xff},
	{R: 0x80, B: 0x80, A: 0xff},
}

const (
	minStrokeWidth = 2
	maxStrokeWidth = 60
)

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Actions are the toolbar commands the window wires up.
type Actions struct {
	Space, Break, Undo    func()
	SavePNG, ExportPDF    func()
	Background, ClearBack func()
	StyleChanged          func(state.Style)
}

// NewToolbar builds the command bar above the pad. style is the pen the
// swatches and slider start from.
func NewToolbar(style state.Style, a Actions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.Undo),
		widget.NewToolbarAction(theme.MoveDownIcon(), a.Break),
		widget.NewToolbarAction(theme.ContentAddIcon(), a.Space),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.SavePNG),
		widget.NewToolbarAction(theme.DownloadIcon(), a.ExportPDF),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), a.Background),
		widget.NewToolbarAction(theme.CancelIcon(), a.ClearBack),
	)

	current := style
	apply := func(s state.Style) {
		current = s
		if a.StyleChanged != nil {
			a.StyleChanged(s)
		}
	}

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, func(c color.NRGBA) { apply(current.WithColor(c)) }))
	}

	slider := widget.NewSlider(minStrokeWidth, maxStrokeWidth)
	slider.SetValue(style.Width)
	slider.OnChangeEnded = func(v float64) { apply(current.WithWidth(v)) }
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), slider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderBox,
		layout.NewSpacer(),
	)
}
