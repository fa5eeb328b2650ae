package ui

import (
	"context"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/config"
	inet "MyInkPad/internal/net"
	"MyInkPad/internal/pad"
	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

const appID = "io.github.inkpad"

// RunApp opens the writing window and blocks until it is closed.
func RunApp(cfg config.Config) {
	log := applog.WithComponent("ui")
	a := app.NewWithID(appID)
	win := a.NewWindow("InkPad")
	win.Resize(fyne.NewSize(1024, 768))

	style := loadStyle(a.Preferences(), cfg.Style())
	p := pad.New(fyneLoop{}, append(cfg.PadOptions(), pad.WithStyle(style))...)
	r := &render.Renderer{}
	board := NewPadWidget(p, r)

	status := widget.NewLabel("Ready")
	statusBar := container.NewHBox(status)

	var share *inet.Server
	if cfg.Share {
		s, err := startShare(p, cfg.Port)
		if err != nil {
			log.Error("sharing unavailable", "err", err)
			status.SetText("Sharing unavailable: " + err.Error())
		} else {
			share = s
			status.SetText("Sharing at " + s.Link)
			statusBar.Add(widget.NewButtonWithIcon("Copy link", theme.ContentCopyIcon(), func() {
				win.Clipboard().SetContent(s.Link)
			}))
		}
	}

	toolbar := NewToolbar(style, Actions{
		Space: p.InsertSpace,
		Break: p.InsertBreak,
		Undo:  board.undo,
		SavePNG: func() {
			savePicture(win, cfg.PicturesDir, p.Snapshot(), r)
		},
		ExportPDF: func() {
			showExportPDF(win, p.Snapshot(), r)
		},
		Background: func() {
			showBackgroundPicker(win, func(img image.Image) {
				r.SetBackground(img)
				board.Refresh()
			})
		},
		ClearBack: func() {
			r.SetBackground(nil)
			board.Refresh()
		},
		StyleChanged: func(s state.Style) {
			p.SetStrokeStyle(s)
			saveStyle(a.Preferences(), s)
		},
	})

	win.Canvas().SetOnTypedKey(board.TypedKey)
	win.SetContent(container.NewBorder(toolbar, statusBar, nil, nil, board))
	win.SetOnClosed(func() {
		if share == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := share.Shutdown(ctx); err != nil {
			log.Warn("share shutdown", "err", err)
		}
	})
	win.ShowAndRun()
}
