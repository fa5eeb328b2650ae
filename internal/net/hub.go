package net

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/state"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendQueue  = 4
)

// Peer is one connected viewer.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
	addr string
}

// Hub serves the document read-only to any number of viewers. Every viewer
// gets the latest snapshot on connect and again after each change.
type Hub struct {
	id       string
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu     sync.RWMutex
	peers  map[*Peer]struct{}
	latest []byte
	closed bool
}

// NewHub creates a hub with a fresh instance id.
func NewHub() *Hub {
	return &Hub{
		id: uuid.NewString(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   applog.WithComponent("share"),
		peers: make(map[*Peer]struct{}),
	}
}

// ID identifies this host on the wire and in mDNS records.
func (h *Hub) ID() string { return h.id }

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast encodes s and queues it for every viewer. A viewer whose queue
// is full is disconnected.
func (h *Hub) Broadcast(s state.Snapshot) error {
	data, err := json.Marshal(Message{Type: TypeSnapshot, Host: h.id, Snapshot: EncodeSnapshot(s)})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			h.log.Warn("viewer too slow, dropping", "addr", p.addr)
			h.removeLocked(p)
		}
	}
	return nil
}

// ServeHTTP upgrades the request to a websocket and registers the viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "addr", r.RemoteAddr, "err", err)
		return
	}
	p := &Peer{conn: conn, send: make(chan []byte, sendQueue), addr: r.RemoteAddr}
	if !h.add(p) {
		conn.Close()
		return
	}
	go h.writeLoop(p)
	h.readLoop(p)
}

func (h *Hub) add(p *Peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.peers[p] = struct{}{}
	if h.latest != nil {
		p.send <- h.latest
	}
	h.log.Info("viewer connected", "addr", p.addr, "viewers", len(h.peers))
	return true
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(p)
}

func (h *Hub) removeLocked(p *Peer) {
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	h.log.Info("viewer disconnected", "addr", p.addr, "viewers", len(h.peers))
}

// readLoop discards anything a viewer sends; it exists to notice the
// connection going away and to process pongs.
func (h *Hub) readLoop(p *Peer) {
	defer func() {
		h.remove(p)
		p.conn.Close()
	}()
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(p *Peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case data, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.Debug("write failed", "addr", p.addr, "err", err)
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		h.removeLocked(p)
	}
}
