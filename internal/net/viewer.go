package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/state"
)

// Viewer is the read-only end of a share link.
type Viewer struct {
	conn *websocket.Conn
	Host string
}

// Dial connects to the host named by a share link.
func Dial(ctx context.Context, link string) (*Viewer, error) {
	addr, err := ParseLink(link)
	if err != nil {
		return nil, err
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: SharePath}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return &Viewer{conn: conn, Host: addr}, nil
}

// Run delivers every snapshot the host sends until the connection drops or
// Close is called. Frames that fail to decode are logged and skipped.
func (v *Viewer) Run(onSnapshot func(state.Snapshot)) error {
	log := applog.WithComponent("viewer")
	for {
		_, data, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("disconnected from %s: %w", v.Host, err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("bad frame", "err", err)
			continue
		}
		if msg.Type != TypeSnapshot || msg.Snapshot == nil {
			log.Debug("ignoring frame", "type", msg.Type)
			continue
		}
		snap, err := msg.Snapshot.Decode()
		if err != nil {
			log.Warn("bad snapshot", "err", err)
			continue
		}
		onSnapshot(snap)
	}
}

// Close hangs up.
func (v *Viewer) Close() error {
	v.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return v.conn.Close()
}
