package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_PopLastOrder(t *testing.T) {
	d := NewDocument()
	a, b, c := NewSpace(), NewBreak(), NewGlyph(DefaultStyle())
	d.Append(a)
	d.Append(b)
	d.Append(c)
	require.Equal(t, 3, d.Len())
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{a.Seq(), b.Seq(), c.Seq()})

	for _, want := range []*Character{c, b, a} {
		got, err := d.PopLast()
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	assert.Equal(t, 0, d.Len())
}

func TestDocument_PopEmpty(t *testing.T) {
	d := NewDocument()
	for i := 0; i < 3; i++ {
		c, err := d.PopLast()
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	}
}

func TestDocument_SnapshotIsDetached(t *testing.T) {
	d := NewDocument()
	d.Append(NewSpace())
	snap := d.Snapshot(640, 480)
	d.Append(NewBreak())

	assert.Len(t, snap.Characters, 1)
	assert.Equal(t, 640.0, snap.Width)
	assert.Equal(t, 480.0, snap.Height)
	assert.Len(t, d.Characters(), 2)
}
