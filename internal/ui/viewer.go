package ui

import (
	"context"
	"errors"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/layout"
	inet "MyInkPad/internal/net"
	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

const browseTimeout = 3 * time.Second

var errNoHost = errors.New("no shared pad found on the local network")

// RunViewer opens a read-only window mirroring the pad behind link. With an
// empty link the LAN is searched first.
func RunViewer(link string) {
	a := app.NewWithID(appID)
	win := a.NewWindow("InkPad viewer")
	win.Resize(fyne.NewSize(1024, 768))

	page := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	page.FillMode = canvas.ImageFillContain
	status := widget.NewLabel("Connecting...")
	win.SetContent(container.NewBorder(nil, status, nil, nil, page))

	ctx, cancel := context.WithCancel(context.Background())
	win.SetOnClosed(cancel)
	go watch(ctx, link, page, status)
	win.ShowAndRun()
}

func setStatus(l *widget.Label, text string) {
	fyne.Do(func() { l.SetText(text) })
}

// findHost returns the first share link announced on the LAN.
func findHost() (string, error) {
	links := make(chan string, 1)
	err := inet.Browse(browseTimeout, func(link string) {
		select {
		case links <- link:
		default:
		}
	})
	if err != nil {
		return "", err
	}
	select {
	case link := <-links:
		return link, nil
	default:
		return "", errNoHost
	}
}

func watch(ctx context.Context, link string, page *canvas.Image, status *widget.Label) {
	log := applog.WithComponent("viewer")
	if link == "" {
		setStatus(status, "Searching the local network...")
		found, err := findHost()
		if err != nil {
			setStatus(status, err.Error())
			return
		}
		link = found
	}

	v, err := inet.Dial(ctx, link)
	if err != nil {
		setStatus(status, err.Error())
		return
	}
	go func() {
		<-ctx.Done()
		v.Close()
	}()
	setStatus(status, "Viewing "+v.Host)

	var r render.Renderer
	err = v.Run(func(s state.Snapshot) {
		img, err := r.Render(render.Scene{Frame: layout.FlowSnapshot(s), Ruled: true})
		if err != nil {
			log.Debug("skipping snapshot", "err", err)
			return
		}
		fyne.Do(func() {
			page.Image = img
			page.Refresh()
		})
	})
	if err != nil && ctx.Err() == nil {
		log.Warn("viewer stopped", "err", err)
		setStatus(status, err.Error())
	}
}
