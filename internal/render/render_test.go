package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyInkPad/internal/layout"
	"MyInkPad/internal/state"
)

func diagonalGlyph(t *testing.T) *state.Character {
	t.Helper()
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(100, 100, 200, 200)
	c := state.NewGlyph(state.DefaultStyle())
	require.NoError(t, c.AppendPath(state.NewVectorPath(p)))
	return c
}

func rgba(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func isWhite(c color.NRGBA) bool {
	return c.R == 0xff && c.G == 0xff && c.B == 0xff
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name     string
		src, dst image.Point
		want     image.Rectangle
	}{
		{"wide picture on square", image.Pt(10, 5), image.Pt(200, 200), image.Rect(0, 0, 200, 100)},
		{"tall picture on square", image.Pt(5, 10), image.Pt(200, 200), image.Rect(0, 0, 100, 200)},
		{"same aspect", image.Pt(4, 3), image.Pt(800, 600), image.Rect(0, 0, 800, 600)},
		{"empty source", image.Pt(0, 3), image.Pt(800, 600), image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitRect(tt.src, tt.dst))
		})
	}
}

func TestRender_PlacedGlyph(t *testing.T) {
	frame := layout.Flow([]*state.Character{diagonalGlyph(t)}, layout.Params{Width: 200, Height: 200, RowHeight: 100})
	var r Renderer
	img, err := r.Render(Scene{Frame: frame})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	// local (100,100) lands at (10+50, 50) after the half-size placement
	on := rgba(img, 60, 50)
	assert.False(t, isWhite(on), "glyph pixel %v", on)
	assert.Greater(t, on.B, on.R)
	assert.True(t, isWhite(rgba(img, 150, 20)))
}

func TestRender_ZoomRendersAtDevicePixels(t *testing.T) {
	frame := layout.Flow([]*state.Character{diagonalGlyph(t)}, layout.Params{Width: 200, Height: 200, RowHeight: 100})
	var r Renderer
	img, err := r.Render(Scene{Frame: frame, Ruled: true, Zoom: 2})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	// canvas (60, 50) doubles to (120, 100)
	on := rgba(img, 120, 100)
	assert.False(t, isWhite(on), "glyph pixel %v", on)
	assert.Greater(t, on.B, on.R)
	assert.False(t, isWhite(rgba(img, 300, 200)), "ruled line at canvas y=100")
	assert.True(t, isWhite(rgba(img, 300, 40)))
}

func TestRender_RuledLines(t *testing.T) {
	frame := layout.Flow(nil, layout.Params{Width: 200, Height: 200, RowHeight: 100})
	var r Renderer

	ruled, err := r.Render(Scene{Frame: frame, Ruled: true})
	require.NoError(t, err)
	assert.False(t, isWhite(rgba(ruled, 100, 100)))

	plain, err := r.Render(Scene{Frame: frame})
	require.NoError(t, err)
	assert.True(t, isWhite(rgba(plain, 100, 100)))
}

func TestRender_Background(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 10, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			bg.Set(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	var r Renderer
	r.SetBackground(bg)
	frame := layout.Flow(nil, layout.Params{Width: 200, Height: 200, RowHeight: 100})

	img, err := r.Render(Scene{Frame: frame})
	require.NoError(t, err)
	red := rgba(img, 50, 50)
	assert.Greater(t, red.R, uint8(0xf0))
	assert.Less(t, red.G, uint8(0x10))
	assert.True(t, isWhite(rgba(img, 50, 150)))

	r.SetBackground(nil)
	img, err = r.Render(Scene{Frame: frame})
	require.NoError(t, err)
	assert.True(t, isWhite(rgba(img, 50, 50)))
}

func TestRender_LiveInkIsUnscaled(t *testing.T) {
	pending := diagonalGlyph(t)
	frame := layout.Flow(nil, layout.Params{Width: 200, Height: 200, RowHeight: 100})
	var r Renderer
	img, err := r.Render(Scene{Frame: frame, Pending: pending})
	require.NoError(t, err)
	assert.False(t, isWhite(rgba(img, 100, 100)))
}

func TestEncodePNG(t *testing.T) {
	frame := layout.Flow([]*state.Character{diagonalGlyph(t)}, layout.Params{Width: 120, Height: 90, RowHeight: 30})
	var r Renderer
	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf, Scene{Frame: frame, Caret: true, CaretStyle: state.DefaultStyle()}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 90), img.Bounds())
}

func TestRender_EmptyCanvas(t *testing.T) {
	var r Renderer
	_, err := r.Render(Scene{})
	assert.Error(t, err)
}
