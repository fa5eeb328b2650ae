package net

import (
	"fmt"

	"github.com/gogpu/gg"

	"MyInkPad/internal/state"
)

// Message types sent from host to viewer.
const (
	TypeSnapshot = "snapshot"
)

// Message is one JSON frame on the share socket.
type Message struct {
	Type     string        `json:"type"`
	Host     string        `json:"host,omitempty"`
	Snapshot *WireSnapshot `json:"snapshot,omitempty"`
}

// WireSnapshot is the JSON form of a state.Snapshot.
type WireSnapshot struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	RowHeight  float64         `json:"row_height"`
	Characters []WireCharacter `json:"characters"`
}

type WireCharacter struct {
	ID    string      `json:"id"`
	Kind  string      `json:"kind"`
	Color [4]uint8    `json:"color"`
	Width float64     `json:"width,omitempty"`
	Cap   gg.LineCap  `json:"cap,omitempty"`
	Join  gg.LineJoin `json:"join,omitempty"`
	Paths [][]Segment `json:"paths,omitempty"`
}

// Segment is one path element: M, L, Q, C or Z followed by its points.
type Segment struct {
	Op  string    `json:"op"`
	Pts []float64 `json:"pts,omitempty"`
}

// EncodeSnapshot converts s for the wire.
func EncodeSnapshot(s state.Snapshot) *WireSnapshot {
	out := &WireSnapshot{
		Width:      s.Width,
		Height:     s.Height,
		RowHeight:  s.RowHeight,
		Characters: make([]WireCharacter, 0, len(s.Characters)),
	}
	for _, c := range s.Characters {
		st := c.Style()
		wc := WireCharacter{
			ID:    c.ID(),
			Kind:  c.Kind().String(),
			Color: [4]uint8{st.Color.R, st.Color.G, st.Color.B, st.Color.A},
			Width: st.Width,
			Cap:   st.Cap,
			Join:  st.Join,
		}
		for _, p := range c.Paths() {
			wc.Paths = append(wc.Paths, encodePath(p))
		}
		out.Characters = append(out.Characters, wc)
	}
	return out
}

func encodePath(p *state.VectorPath) []Segment {
	elems := p.Elements()
	segs := make([]Segment, 0, len(elems))
	for _, elem := range elems {
		switch e := elem.(type) {
		case gg.MoveTo:
			segs = append(segs, Segment{Op: "M", Pts: []float64{e.Point.X, e.Point.Y}})
		case gg.LineTo:
			segs = append(segs, Segment{Op: "L", Pts: []float64{e.Point.X, e.Point.Y}})
		case gg.QuadTo:
			segs = append(segs, Segment{Op: "Q", Pts: []float64{e.Control.X, e.Control.Y, e.Point.X, e.Point.Y}})
		case gg.CubicTo:
			segs = append(segs, Segment{Op: "C", Pts: []float64{
				e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y,
			}})
		case gg.Close:
			segs = append(segs, Segment{Op: "Z"})
		}
	}
	return segs
}

// Decode rebuilds a snapshot of committed characters.
func (w *WireSnapshot) Decode() (state.Snapshot, error) {
	s := state.Snapshot{
		Width:      w.Width,
		Height:     w.Height,
		RowHeight:  w.RowHeight,
		Characters: make([]*state.Character, 0, len(w.Characters)),
	}
	for i, wc := range w.Characters {
		kind, err := state.ParseKind(wc.Kind)
		if err != nil {
			return state.Snapshot{}, fmt.Errorf("character %d: %w", i, err)
		}
		st := state.Style{Width: wc.Width, Cap: wc.Cap, Join: wc.Join}
		st.Color.R, st.Color.G, st.Color.B, st.Color.A = wc.Color[0], wc.Color[1], wc.Color[2], wc.Color[3]

		paths := make([]*state.VectorPath, 0, len(wc.Paths))
		for j, segs := range wc.Paths {
			p, err := decodePath(segs)
			if err != nil {
				return state.Snapshot{}, fmt.Errorf("character %d path %d: %w", i, j, err)
			}
			paths = append(paths, p)
		}
		s.Characters = append(s.Characters, state.RestoreCharacter(wc.ID, kind, st, paths))
	}
	return s, nil
}

var segmentArity = map[string]int{"M": 2, "L": 2, "Q": 4, "C": 6, "Z": 0}

func decodePath(segs []Segment) (*state.VectorPath, error) {
	p := gg.NewPath()
	for _, sg := range segs {
		n, ok := segmentArity[sg.Op]
		if !ok {
			return nil, fmt.Errorf("unknown segment %q", sg.Op)
		}
		if len(sg.Pts) != n {
			return nil, fmt.Errorf("segment %s wants %d values, got %d", sg.Op, n, len(sg.Pts))
		}
		v := sg.Pts
		switch sg.Op {
		case "M":
			p.MoveTo(v[0], v[1])
		case "L":
			p.LineTo(v[0], v[1])
		case "Q":
			p.QuadraticTo(v[0], v[1], v[2], v[3])
		case "C":
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		case "Z":
			p.Close()
		}
	}
	return state.NewVectorPath(p), nil
}
