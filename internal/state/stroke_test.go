package state

import (
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(10 * time.Millisecond)
	return c.t
}

func TestStrokeBuffer_Smoothing(t *testing.T) {
	b := NewStrokeBuffer(&stepClock{}, DefaultTolerance)
	b.Begin(gg.Pt(0, 0))
	require.True(t, b.Extend(gg.Pt(10, 0)))
	require.True(t, b.Extend(gg.Pt(10, 20)))
	p := b.End(gg.Pt(12, 22))

	elems := p.Elements()
	require.Len(t, elems, 4)
	assert.Equal(t, gg.MoveTo{Point: gg.Pt(0, 0)}, elems[0])
	assert.Equal(t, gg.QuadTo{Control: gg.Pt(0, 0), Point: gg.Pt(5, 0)}, elems[1])
	assert.Equal(t, gg.QuadTo{Control: gg.Pt(10, 0), Point: gg.Pt(10, 10)}, elems[2])
	assert.Equal(t, gg.LineTo{Point: gg.Pt(12, 22)}, elems[3])
	assert.False(t, b.Active())
}

func TestStrokeBuffer_Tolerance(t *testing.T) {
	tests := []struct {
		name  string
		to    gg.Point
		added bool
	}{
		{"still", gg.Pt(0, 0), false},
		{"jitter", gg.Pt(3, -3), false},
		{"at tolerance", gg.Pt(4, 0), false},
		{"past tolerance x", gg.Pt(4.5, 0), true},
		{"past tolerance y", gg.Pt(1, -5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewStrokeBuffer(&stepClock{}, DefaultTolerance)
			b.Begin(gg.Pt(0, 0))
			assert.Equal(t, tt.added, b.Extend(tt.to))
		})
	}
}

func TestStrokeBuffer_TouchTimeAlwaysUpdated(t *testing.T) {
	clock := &stepClock{}
	b := NewStrokeBuffer(clock, DefaultTolerance)
	b.Begin(gg.Pt(0, 0))
	before := b.LastTouch()
	b.Extend(gg.Pt(1, 1))
	assert.True(t, b.LastTouch().After(before))
}

func TestStrokeBuffer_TapIsDegenerate(t *testing.T) {
	b := NewStrokeBuffer(&stepClock{}, DefaultTolerance)
	b.Begin(gg.Pt(7, 7))
	p := b.End(gg.Pt(7, 7))
	assert.Len(t, p.Elements(), 2)
	assert.True(t, p.Degenerate())
}

func TestStrokeBuffer_PathsAreIndependent(t *testing.T) {
	b := NewStrokeBuffer(&stepClock{}, DefaultTolerance)
	b.Begin(gg.Pt(0, 0))
	first := b.End(gg.Pt(10, 10))
	b.Begin(gg.Pt(50, 50))
	b.Extend(gg.Pt(80, 80))
	require.NotNil(t, b.Preview())
	b.End(gg.Pt(90, 90))

	assert.Len(t, first.Elements(), 2)
	assert.Nil(t, b.Preview())
}
