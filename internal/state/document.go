package state

// Document is the ordered sequence of committed characters. Reading order is
// insertion order; characters leave only through PopLast.
type Document struct {
	chars []*Character
	seq   uint64
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{chars: make([]*Character, 0, 64)}
}

// Append freezes c and adds it at the end.
func (d *Document) Append(c *Character) {
	d.seq++
	c.freeze(d.seq)
	d.chars = append(d.chars, c)
}

// PopLast removes and returns the most recently appended character.
func (d *Document) PopLast() (*Character, error) {
	n := len(d.chars)
	if n == 0 {
		return nil, ErrEmptyDocument
	}
	c := d.chars[n-1]
	d.chars[n-1] = nil
	d.chars = d.chars[:n-1]
	return c, nil
}

// Len returns the number of committed characters.
func (d *Document) Len() int { return len(d.chars) }

// Characters returns the characters in reading order. The slice is a copy;
// the characters themselves are frozen.
func (d *Document) Characters() []*Character {
	out := make([]*Character, len(d.chars))
	copy(out, d.chars)
	return out
}

// Snapshot is a read-only view of what has been written and the canvas it was
// written on, handed to export and sharing.
type Snapshot struct {
	Characters []*Character
	Width      float64
	Height     float64
	RowHeight  float64
}

// Snapshot captures the document for a canvas of the given size.
func (d *Document) Snapshot(width, height float64) Snapshot {
	return Snapshot{Characters: d.Characters(), Width: width, Height: height}
}
