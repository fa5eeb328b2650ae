package net

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyInkPad/internal/state"
)

func sampleSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	doc := state.NewDocument()

	p := gg.NewPath()
	p.MoveTo(1, 2)
	p.QuadraticTo(3, 4, 5, 6)
	p.CubicTo(7, 8, 9, 10, 11, 12)
	p.LineTo(13, 14)
	g := state.NewGlyph(state.DefaultStyle().WithColor(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}).WithWidth(7))
	require.NoError(t, g.AppendPath(state.NewVectorPath(p)))
	doc.Append(g)
	doc.Append(state.NewSpace())
	doc.Append(state.NewBreak())

	s := doc.Snapshot(320, 240)
	s.RowHeight = 40
	return s
}

func TestWire_SurvivesJSON(t *testing.T) {
	in := sampleSnapshot(t)
	data, err := json.Marshal(EncodeSnapshot(in))
	require.NoError(t, err)

	var ws WireSnapshot
	require.NoError(t, json.Unmarshal(data, &ws))
	out, err := ws.Decode()
	require.NoError(t, err)

	assert.Equal(t, in.Width, out.Width)
	assert.Equal(t, in.Height, out.Height)
	assert.Equal(t, in.RowHeight, out.RowHeight)
	require.Len(t, out.Characters, len(in.Characters))
	for i, c := range out.Characters {
		want := in.Characters[i]
		assert.Equal(t, want.ID(), c.ID())
		assert.Equal(t, want.Kind(), c.Kind())
		assert.True(t, c.Frozen())
		if want.Kind() == state.KindGlyph {
			assert.Equal(t, want.Style(), c.Style())
			assert.Equal(t, want.Bound(), c.Bound())
			require.Equal(t, want.PathCount(), c.PathCount())
			assert.Equal(t, want.Paths()[0].Elements(), c.Paths()[0].Elements())
		}
	}
}

func TestWire_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		ws   WireSnapshot
	}{
		{"unknown kind", WireSnapshot{Characters: []WireCharacter{{Kind: "emoji"}}}},
		{"unknown op", WireSnapshot{Characters: []WireCharacter{{Kind: "glyph", Paths: [][]Segment{{{Op: "X"}}}}}}},
		{"short segment", WireSnapshot{Characters: []WireCharacter{{Kind: "glyph", Paths: [][]Segment{{{Op: "Q", Pts: []float64{1, 2}}}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.ws.Decode()
			assert.Error(t, err)
		})
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{"inkpad://192.168.1.4:8888", "192.168.1.4:8888", false},
		{"inkpad://192.168.1.4:8888/", "192.168.1.4:8888", false},
		{ShareLink("10.0.0.2", 9000), "10.0.0.2:9000", false},
		{"http://192.168.1.4:8888", "", true},
		{"inkpad://nohost", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := ParseLink(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
