package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MyInkPad/internal/state"
)

func dialHub(t *testing.T, srv *httptest.Server) *Viewer {
	t.Helper()
	link := URLScheme + strings.TrimPrefix(srv.URL, "http://")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := Dial(ctx, link)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })
	return v
}

func receive(v *Viewer) <-chan state.Snapshot {
	ch := make(chan state.Snapshot, 8)
	go func() {
		v.Run(func(s state.Snapshot) { ch <- s })
		close(ch)
	}()
	return ch
}

func next(t *testing.T, ch <-chan state.Snapshot) state.Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "viewer stopped")
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot received")
	}
	return state.Snapshot{}
}

func newHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func TestHub_SendsLatestOnConnect(t *testing.T) {
	hub, srv := newHubServer(t)
	require.NoError(t, hub.Broadcast(sampleSnapshot(t)))

	got := next(t, receive(dialHub(t, srv)))
	assert.Len(t, got.Characters, 3)
	assert.Equal(t, 320.0, got.Width)
}

func TestHub_BroadcastsChanges(t *testing.T) {
	hub, srv := newHubServer(t)
	ch := receive(dialHub(t, srv))

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	snap := sampleSnapshot(t)
	require.NoError(t, hub.Broadcast(snap))
	assert.Len(t, next(t, ch).Characters, 3)

	snap.Characters = snap.Characters[:1]
	require.NoError(t, hub.Broadcast(snap))
	assert.Len(t, next(t, ch).Characters, 1)
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	hub, srv := newHubServer(t)
	ch := receive(dialHub(t, srv))
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Count())
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer still running")
	}
}
