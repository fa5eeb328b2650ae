package ui

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"MyInkPad/internal/export"
	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

func decodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	return img, nil
}

// showBackgroundPicker lets the user pick a picture to write over.
func showBackgroundPicker(win fyne.Window, onLoaded func(image.Image)) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		img, err := decodeImage(rc)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		onLoaded(img)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

// showExportPDF asks where to write the page as PDF.
func showExportPDF(win fyne.Window, snap state.Snapshot, r *render.Renderer) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if wc == nil {
			return
		}
		if err := export.WritePDF(wc, snap, r.Background()); err != nil {
			wc.Close()
			dialog.ShowError(err, win)
			return
		}
		if err := wc.Close(); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName(export.BaseName(time.Now()) + ".pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

// savePicture writes the page to the pictures directory and reports where.
func savePicture(win fyne.Window, dir string, snap state.Snapshot, r *render.Renderer) {
	path, err := export.SavePNG(dir, snap, r, time.Now())
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	dialog.ShowInformation("Saved", path, win)
}
