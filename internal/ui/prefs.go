package ui

import (
	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"

	"MyInkPad/internal/state"
)

const (
	prefStrokeColor = "stroke.color"
	prefStrokeWidth = "stroke.width"
)

// loadStyle restores the last pen the user picked, falling back to def.
func loadStyle(prefs fyne.Preferences, def state.Style) state.Style {
	s := def
	if hex := prefs.String(prefStrokeColor); hex != "" {
		s = s.WithColor(gg.Hex(hex).Color())
	}
	if w := prefs.FloatWithFallback(prefStrokeWidth, def.Width); w > 0 {
		s = s.WithWidth(w)
	}
	return s
}

func saveStyle(prefs fyne.Preferences, s state.Style) {
	prefs.SetString(prefStrokeColor, s.Hex())
	prefs.SetFloat(prefStrokeWidth, s.Width)
}
