package state

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// Point is a position in canvas device coordinates.
type Point = gg.Point

// Kind tags what a Character represents in the flow.
type Kind int

const (
	KindGlyph Kind = iota
	KindSpace
	KindBreak
)

func (k Kind) String() string {
	switch k {
	case KindGlyph:
		return "glyph"
	case KindSpace:
		return "space"
	case KindBreak:
		return "break"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "glyph":
		return KindGlyph, nil
	case "space":
		return KindSpace, nil
	case "break":
		return KindBreak, nil
	}
	return 0, fmt.Errorf("unknown character kind %q", s)
}

// Style is the stroke style a glyph is painted with. It is a plain value so
// every Character keeps a private copy.
type Style struct {
	Color color.NRGBA
	Width float64
	Cap   gg.LineCap
	Join  gg.LineJoin
}

// DefaultStyle is a 24px round blue pen.
func DefaultStyle() Style {
	return Style{
		Color: color.NRGBA{B: 0xff, A: 0xff},
		Width: 24,
		Cap:   gg.LineCapRound,
		Join:  gg.LineJoinRound,
	}
}

// WithColor returns a copy of the style with the given color.
func (s Style) WithColor(c color.Color) Style {
	s.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	return s
}

// WithWidth returns a copy of the style with the given width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// Hex formats the color as #rrggbbaa.
func (s Style) Hex() string {
	c := s.Color
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Stroke converts the style to a gg stroke description.
func (s Style) Stroke() gg.Stroke {
	return gg.DefaultStroke().WithWidth(s.Width).WithCap(s.Cap).WithJoin(s.Join)
}

var (
	// ErrEmptyDocument is returned when undoing with nothing written.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrFrozen is returned when a committed character is modified.
	ErrFrozen = errors.New("character is committed")
	// ErrNotGlyph is returned when paths are added to a control marker.
	ErrNotGlyph = errors.New("character is not a glyph")
)

// VectorPath is one finished stroke. It never changes after construction.
type VectorPath struct {
	path *gg.Path
}

// NewVectorPath copies p into an immutable VectorPath.
func NewVectorPath(p *gg.Path) *VectorPath {
	return &VectorPath{path: p.Clone()}
}

// Elements returns a copy of the path segments.
func (v *VectorPath) Elements() []gg.PathElement {
	src := v.path.Elements()
	out := make([]gg.PathElement, len(src))
	copy(out, src)
	return out
}

// Bounds is the bounding box over every control and end point.
func (v *VectorPath) Bounds() gg.Rect {
	r, _ := elementBounds(v.path.Elements())
	return r
}

// Degenerate reports whether every point of the path coincides, as happens
// for a tap with no movement.
func (v *VectorPath) Degenerate() bool {
	r, ok := elementBounds(v.path.Elements())
	return !ok || (r.Width() == 0 && r.Height() == 0)
}

// Character is one flow unit: a drawn glyph, a space or a line break.
type Character struct {
	id    string
	seq   uint64
	kind  Kind
	style Style
	paths []*VectorPath

	bound   gg.Rect
	bounded bool
	frozen  bool
}

// NewGlyph starts an empty in-progress glyph drawn with style.
func NewGlyph(style Style) *Character {
	return &Character{id: newID(), kind: KindGlyph, style: style}
}

// NewSpace returns a space marker.
func NewSpace() *Character {
	return &Character{id: newID(), kind: KindSpace}
}

// NewBreak returns a line-break marker.
func NewBreak() *Character {
	return &Character{id: newID(), kind: KindBreak}
}

// RestoreCharacter rebuilds a committed character, e.g. one received from a
// share host. The result is frozen.
func RestoreCharacter(id string, kind Kind, style Style, paths []*VectorPath) *Character {
	c := &Character{id: id, kind: kind, style: style, frozen: true}
	if kind == KindGlyph {
		for _, p := range paths {
			c.addPath(p)
		}
	}
	return c
}

func (c *Character) ID() string     { return c.id }
func (c *Character) Seq() uint64    { return c.seq }
func (c *Character) Kind() Kind     { return c.kind }
func (c *Character) Style() Style   { return c.style }
func (c *Character) Frozen() bool   { return c.frozen }
func (c *Character) PathCount() int { return len(c.paths) }

// Paths returns the glyph strokes in drawing order.
func (c *Character) Paths() []*VectorPath {
	out := make([]*VectorPath, len(c.paths))
	copy(out, c.paths)
	return out
}

// AppendPath adds a stroke to an in-progress glyph.
func (c *Character) AppendPath(p *VectorPath) error {
	if c.kind != KindGlyph {
		return ErrNotGlyph
	}
	if c.frozen {
		return ErrFrozen
	}
	c.addPath(p)
	return nil
}

func (c *Character) addPath(p *VectorPath) {
	c.paths = append(c.paths, p)
	r, ok := elementBounds(p.path.Elements())
	if !ok {
		return
	}
	if !c.bounded {
		c.bound = r
		c.bounded = true
		return
	}
	c.bound = c.bound.Union(r)
}

// Bound is the union of the glyph's path bounds in local coordinates. It is
// the zero rect for markers and empty glyphs.
func (c *Character) Bound() gg.Rect {
	return c.bound
}

func (c *Character) freeze(seq uint64) {
	c.seq = seq
	c.frozen = true
}
