package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/mdns"

	"MyInkPad/internal/applog"
)

// SharePath is the websocket endpoint on the share server.
const SharePath = "/ws"

// Server hosts a Hub over HTTP and advertises it with mDNS.
type Server struct {
	Hub  *Hub
	Link string
	Port int

	http     *http.Server
	listener net.Listener
	mdns     *mdns.Server
	log      *slog.Logger
}

// Listen binds the share port. Advertising failures are logged, not fatal:
// the link still works when multicast is blocked.
func Listen(port int) (*Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("share server on port %d: %w", port, err)
	}
	s := &Server{
		Hub:      NewHub(),
		listener: ln,
		log:      applog.WithComponent("share"),
	}
	port = ln.Addr().(*net.TCPAddr).Port
	s.Port = port
	s.Link = ShareLink(OutgoingIP(), port)

	mux := http.NewServeMux()
	mux.Handle(SharePath, s.Hub)
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	if s.mdns, err = Advertise(s.Hub.ID(), port); err != nil {
		s.log.Warn("mDNS advertise failed", "err", err)
	}
	return s, nil
}

// Serve blocks until the server is shut down.
func (s *Server) Serve() error {
	s.log.Info("share server listening", "link", s.Link)
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops advertising, drops viewers and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.mdns != nil {
		s.mdns.Shutdown()
	}
	s.Hub.Close()
	return s.http.Shutdown(ctx)
}
