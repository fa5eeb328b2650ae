// Package pad is the handwriting session: it captures strokes into glyphs,
// keeps the written document and lays it out for the renderer.
//
// A Pad is not safe for concurrent use. Every method, and every callback it
// schedules on its Loop, runs on the UI goroutine.
package pad

import (
	"errors"
	"log/slog"
	"time"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/layout"
	"MyInkPad/internal/state"
)

// DefaultDebounce is how long the pen must rest before a glyph is committed.
const DefaultDebounce = 1000 * time.Millisecond

type options struct {
	debounce  time.Duration
	rowHeight float64
	tolerance float64
	style     state.Style
}

func defaultOptions() options {
	return options{
		debounce:  DefaultDebounce,
		rowHeight: layout.DefaultRowHeight,
		tolerance: state.DefaultTolerance,
		style:     state.DefaultStyle(),
	}
}

// Option configures a Pad.
type Option func(*options)

// WithDebounce sets the commit debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithRowHeight sets the height of one written line.
func WithRowHeight(h float64) Option {
	return func(o *options) { o.rowHeight = h }
}

// WithTolerance sets the minimum pointer movement that extends a stroke.
func WithTolerance(t float64) Option {
	return func(o *options) { o.tolerance = t }
}

// WithStyle sets the initial stroke style.
func WithStyle(s state.Style) Option {
	return func(o *options) { o.style = s }
}

// Pad owns the document and the capture session for one canvas.
type Pad struct {
	opts    options
	doc     *state.Document
	session *session
	style   state.Style
	width   float64
	height  float64
	log     *slog.Logger

	// OnRepaint is called whenever the canvas needs to be redrawn.
	OnRepaint func()
	// OnChange is called after the document changed, with a fresh snapshot.
	OnChange func(state.Snapshot)
}

// New returns a Pad with an empty document running on loop.
func New(loop Loop, opts ...Option) *Pad {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Pad{
		opts:  o,
		doc:   state.NewDocument(),
		style: o.style,
		log:   applog.WithComponent("pad"),
	}
	p.session = newSession(loop, o.debounce, o.tolerance, p.log, p.commit)
	return p
}

// TouchDown starts a stroke at canvas position (x, y).
func (p *Pad) TouchDown(x, y float64) {
	p.session.touchDown(state.Point{X: x, Y: y}, p.style)
	p.repaint()
}

// TouchMove extends the current stroke.
func (p *Pad) TouchMove(x, y float64) {
	if p.session.touchMove(state.Point{X: x, Y: y}) {
		p.repaint()
	}
}

// TouchUp finishes the current stroke and arms the debounced commit.
func (p *Pad) TouchUp(x, y float64) {
	if p.session.touchUp(state.Point{X: x, Y: y}) {
		p.repaint()
	}
}

// Resize sets the canvas size. Any glyph still being drawn is discarded;
// committed characters are kept and reflowed on the next frame. OnChange
// fires so mirrors of the page pick up the new size.
func (p *Pad) Resize(width, height float64) {
	if width == p.width && height == p.height {
		return
	}
	p.log.Debug("resize", slog.Float64("width", width), slog.Float64("height", height))
	p.width, p.height = width, height
	p.session.reset()
	p.changed()
}

// Size returns the canvas size.
func (p *Pad) Size() (width, height float64) {
	return p.width, p.height
}

// CancelTouch drops the stroke in progress without adding it to the glyph,
// as when the system takes the pointer away.
func (p *Pad) CancelTouch() {
	if p.session.cancel() {
		p.repaint()
	}
}

// InsertSpace appends a space marker, after any glyph still waiting to be
// committed.
func (p *Pad) InsertSpace() {
	p.session.settle()
	p.doc.Append(state.NewSpace())
	p.changed()
}

// InsertBreak appends a line break, after any glyph still waiting to be
// committed.
func (p *Pad) InsertBreak() {
	p.session.settle()
	p.doc.Append(state.NewBreak())
	p.changed()
}

// UndoLast removes the most recently committed character. It returns
// state.ErrEmptyDocument when there is nothing to undo.
func (p *Pad) UndoLast() (*state.Character, error) {
	c, err := p.doc.PopLast()
	if err != nil {
		if errors.Is(err, state.ErrEmptyDocument) {
			p.log.Debug("undo on empty document")
		}
		return nil, err
	}
	p.log.Info("undo", slog.String("kind", c.Kind().String()), slog.Uint64("seq", c.Seq()))
	p.changed()
	return c, nil
}

// SetStrokeStyle sets the style for glyphs started from now on.
func (p *Pad) SetStrokeStyle(s state.Style) {
	p.style = s
}

// StrokeStyle returns the current style.
func (p *Pad) StrokeStyle() state.Style {
	return p.style
}

// Len returns the number of committed characters.
func (p *Pad) Len() int {
	return p.doc.Len()
}

// Characters returns the committed characters in reading order.
func (p *Pad) Characters() []*state.Character {
	return p.doc.Characters()
}

// Params returns the layout parameters for the current canvas.
func (p *Pad) Params() layout.Params {
	return layout.Params{Width: p.width, Height: p.height, RowHeight: p.opts.rowHeight}
}

// ComputeFrame lays out the document for the current canvas.
func (p *Pad) ComputeFrame() layout.Frame {
	return layout.Flow(p.doc.Characters(), p.Params())
}

// Snapshot returns a read-only view for export and sharing.
func (p *Pad) Snapshot() state.Snapshot {
	s := p.doc.Snapshot(p.width, p.height)
	s.RowHeight = p.opts.rowHeight
	return s
}

// Pending returns the glyph being drawn, or nil. It is drawn in canvas
// coordinates, unscaled.
func (p *Pad) Pending() *state.Character {
	return p.session.current
}

// Stroke returns the stroke under the pointer, or nil.
func (p *Pad) Stroke() *state.VectorPath {
	return p.session.buf.Preview()
}

// Capturing reports whether a stroke is in progress.
func (p *Pad) Capturing() bool {
	return p.session.state == stateCapturing
}

func (p *Pad) commit(c *state.Character) {
	p.doc.Append(c)
	p.log.Info("commit",
		slog.String("id", c.ID()),
		slog.Uint64("seq", c.Seq()),
		slog.Int("paths", c.PathCount()))
	p.changed()
}

func (p *Pad) changed() {
	if p.OnChange != nil {
		p.OnChange(p.Snapshot())
	}
	p.repaint()
}

func (p *Pad) repaint() {
	if p.OnRepaint != nil {
		p.OnRepaint()
	}
}
