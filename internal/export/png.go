// Package export writes a finished page out as PNG or PDF.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/layout"
	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

// BaseName names exports by the second they were taken at.
func BaseName(t time.Time) string {
	return t.Format("2006-01-02-15-04-05")
}

// FileName is the PNG name used for a snapshot taken at t.
func FileName(t time.Time) string {
	return BaseName(t) + ".png"
}

// SavePNG paints the snapshot over r's background, without ruled lines or
// caret, into dir and returns the file path.
func SavePNG(dir string, snap state.Snapshot, r *render.Renderer, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export png: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export png: %w", err)
	}
	if err := r.EncodePNG(f, render.Scene{Frame: layout.FlowSnapshot(snap)}); err != nil {
		f.Close()
		return "", fmt.Errorf("export png %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export png %s: %w", path, err)
	}
	applog.WithComponent("export").Info("png saved", "path", path)
	return path, nil
}
