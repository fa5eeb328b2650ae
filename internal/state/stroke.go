package state

import (
	"math"
	"time"

	"github.com/gogpu/gg"
)

// DefaultTolerance is the minimum per-axis movement, in canvas pixels, before
// a new curve segment is added.
const DefaultTolerance = 4.0

// StrokeBuffer turns the samples of one pointer gesture into a smoothed path.
// Each accepted sample adds a quadratic segment whose control point is the
// previous sample and whose end point is the midpoint between the two.
type StrokeBuffer struct {
	clock     Clock
	tolerance float64

	path      *gg.Path
	last      Point
	lastTouch time.Time
	active    bool
}

// NewStrokeBuffer returns an idle buffer. A nil clock uses the wall clock.
func NewStrokeBuffer(clock Clock, tolerance float64) *StrokeBuffer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StrokeBuffer{clock: clock, tolerance: tolerance, path: gg.NewPath()}
}

// Begin starts a new gesture at p, discarding any unfinished one.
func (b *StrokeBuffer) Begin(p Point) {
	b.path = gg.NewPath()
	b.path.MoveTo(p.X, p.Y)
	b.last = p
	b.active = true
	b.lastTouch = b.clock.Now()
}

// Extend adds a smoothed segment towards p when it moved far enough from the
// last accepted sample. It reports whether a segment was added.
func (b *StrokeBuffer) Extend(p Point) bool {
	b.lastTouch = b.clock.Now()
	if !b.active {
		return false
	}
	dx := math.Abs(p.X - b.last.X)
	dy := math.Abs(p.Y - b.last.Y)
	if math.Max(dx, dy) <= b.tolerance {
		return false
	}
	b.path.QuadraticTo(b.last.X, b.last.Y, (b.last.X+p.X)/2, (b.last.Y+p.Y)/2)
	b.last = p
	return true
}

// End closes the gesture with a straight segment to p and returns the
// finished path. The buffer is then ready for Begin.
func (b *StrokeBuffer) End(p Point) *VectorPath {
	b.lastTouch = b.clock.Now()
	if !b.active {
		b.path = gg.NewPath()
		b.path.MoveTo(p.X, p.Y)
	}
	b.path.LineTo(p.X, p.Y)
	out := &VectorPath{path: b.path}
	b.path = gg.NewPath()
	b.active = false
	return out
}

// Reset drops an unfinished gesture.
func (b *StrokeBuffer) Reset() {
	b.path = gg.NewPath()
	b.active = false
}

// Active reports whether a gesture is in progress.
func (b *StrokeBuffer) Active() bool { return b.active }

// LastTouch is the time of the most recent Begin, Extend or End.
func (b *StrokeBuffer) LastTouch() time.Time { return b.lastTouch }

// Preview returns a snapshot of the unfinished gesture, or nil when idle.
func (b *StrokeBuffer) Preview() *VectorPath {
	if !b.active {
		return nil
	}
	return NewVectorPath(b.path)
}
