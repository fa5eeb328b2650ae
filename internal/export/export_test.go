package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyInkPad/internal/render"
	"MyInkPad/internal/state"
)

func sampleSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	doc := state.NewDocument()
	for i := 0; i < 3; i++ {
		p := gg.NewPath()
		p.MoveTo(0, 0)
		p.QuadraticTo(50, 120, 100, 200)
		p.CubicTo(120, 180, 140, 160, 160, 150)
		g := state.NewGlyph(state.DefaultStyle())
		require.NoError(t, g.AppendPath(state.NewVectorPath(p)))
		doc.Append(g)
	}
	doc.Append(state.NewSpace())
	doc.Append(state.NewBreak())
	s := doc.Snapshot(400, 300)
	s.RowHeight = 60
	return s
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-03-09-17-04-05.png", FileName(at))
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pictures")
	at := time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC)

	var r render.Renderer
	path, err := SavePNG(dir, sampleSnapshot(t), &r, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-03-09-17-04-05.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())

	// no ruled line at the first row boundary
	c := color.NRGBAModel.Convert(img.At(390, 60)).(color.NRGBA)
	assert.Equal(t, render.BackColor, c)
}

func TestSavePNG_EmptyCanvas(t *testing.T) {
	var r render.Renderer
	_, err := SavePNG(t.TempDir(), state.Snapshot{RowHeight: 60}, &r, time.Now())
	require.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleSnapshot(t), nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestWritePDF_WithBackground(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range bg.Pix {
		bg.Pix[i] = 0x80
	}
	var plain, withBg bytes.Buffer
	require.NoError(t, WritePDF(&plain, sampleSnapshot(t), nil))
	require.NoError(t, WritePDF(&withBg, sampleSnapshot(t), bg))
	assert.Contains(t, withBg.String(), "/Subtype /Image")
	assert.NotContains(t, plain.String(), "/Subtype /Image")
}

func TestWritePDF_EmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, state.Snapshot{}, nil))
}
