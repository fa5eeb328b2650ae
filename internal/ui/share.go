package ui

import (
	"MyInkPad/internal/applog"
	inet "MyInkPad/internal/net"
	"MyInkPad/internal/pad"
	"MyInkPad/internal/state"
)

// startShare serves p read-only on port. Viewers get the current page on
// connect and a fresh one after every edit or resize.
func startShare(p *pad.Pad, port int) (*inet.Server, error) {
	log := applog.WithComponent("share")
	s, err := inet.Listen(port)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.Serve(); err != nil {
			log.Error("share server stopped", "err", err)
		}
	}()
	p.OnChange = func(snap state.Snapshot) {
		if err := s.Hub.Broadcast(snap); err != nil {
			log.Warn("broadcast failed", "err", err)
		}
	}
	if err := s.Hub.Broadcast(p.Snapshot()); err != nil {
		log.Warn("broadcast failed", "err", err)
	}
	return s, nil
}
