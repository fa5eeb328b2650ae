package pad

import (
	"log/slog"
	"time"

	"MyInkPad/internal/state"
)

type captureState int

const (
	stateIdle captureState = iota
	stateCapturing
)

func (s captureState) String() string {
	if s == stateCapturing {
		return "capturing"
	}
	return "idle"
}

// session groups strokes separated by short pauses into one glyph and
// commits it once the pen has rested for the debounce interval.
//
// Pending commits are not cancelled. Each one carries the generation it was
// armed in and is dropped on arrival if a touch-down or reset has bumped the
// generation since.
type session struct {
	loop     Loop
	interval time.Duration
	buf      *state.StrokeBuffer
	log      *slog.Logger

	state   captureState
	current *state.Character
	gen     uint64
	armed   bool

	commit func(c *state.Character)
}

func newSession(loop Loop, interval time.Duration, tolerance float64, log *slog.Logger, commit func(*state.Character)) *session {
	return &session{
		loop:     loop,
		interval: interval,
		buf:      state.NewStrokeBuffer(loop, tolerance),
		log:      log,
		commit:   commit,
	}
}

func (s *session) touchDown(p state.Point, style state.Style) {
	if s.state == stateCapturing {
		s.log.Debug("touch-down while capturing, dropping partial stroke")
	}
	if s.armed && s.current != nil && s.loop.Now().Sub(s.buf.LastTouch()) >= s.interval/2 {
		s.flush()
	}
	s.gen++
	s.armed = false

	s.buf.Begin(p)
	if s.current == nil {
		s.current = state.NewGlyph(style)
	}
	s.state = stateCapturing
}

func (s *session) touchMove(p state.Point) bool {
	if s.state != stateCapturing {
		return false
	}
	s.buf.Extend(p)
	return true
}

func (s *session) touchUp(p state.Point) bool {
	if s.state != stateCapturing {
		return false
	}
	path := s.buf.End(p)
	if err := s.current.AppendPath(path); err != nil {
		s.log.Warn("dropping stroke", slog.Any("err", err))
	}
	s.state = stateIdle
	s.arm()
	return true
}

// cancel abandons the stroke under the pen. Strokes the glyph already had
// are kept and go back to waiting for their commit.
func (s *session) cancel() bool {
	if s.state != stateCapturing {
		return false
	}
	s.buf.Reset()
	s.state = stateIdle
	if s.current.PathCount() == 0 {
		s.current = nil
		return true
	}
	s.arm()
	return true
}

func (s *session) arm() {
	s.armed = true
	gen := s.gen
	s.loop.AfterFunc(s.interval, func() { s.fire(gen) })
}

// fire is the delayed commit armed by touchUp. It reports whether it
// committed.
func (s *session) fire(gen uint64) bool {
	if gen != s.gen || !s.armed || s.current == nil {
		s.log.Debug("stale commit ignored", slog.Uint64("gen", gen), slog.Uint64("current", s.gen))
		return false
	}
	s.flush()
	return true
}

func (s *session) flush() {
	c := s.current
	s.current = nil
	s.armed = false
	s.commit(c)
}

// settle commits a glyph that is waiting out its debounce so a command
// issued now lands after it. A glyph still being drawn is left alone.
func (s *session) settle() {
	if s.state == stateIdle && s.armed && s.current != nil {
		s.gen++
		s.flush()
	}
}

// reset returns to idle and forgets the in-progress glyph.
func (s *session) reset() {
	s.gen++
	s.state = stateIdle
	s.armed = false
	s.current = nil
	s.buf.Reset()
}
