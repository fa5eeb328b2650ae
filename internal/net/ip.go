package net

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"MyInkPad/internal/applog"
)

// URLScheme prefixes share links handed to viewers.
const URLScheme = "inkpad://"

// OutgoingIP finds the local address other machines on the LAN should use.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 is used on networks without internet access.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	applog.WithComponent("share").Warn("no LAN address found, share link uses loopback")
	return net.IPv4(127, 0, 0, 1)
}

// ShareLink builds the link a viewer opens, e.g. inkpad://192.168.1.4:8888.
func ShareLink(host string, port int) string {
	return URLScheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// ParseLink extracts host:port from a share link.
func ParseLink(link string) (string, error) {
	if !strings.HasPrefix(link, URLScheme) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, URLScheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("share link %q: %w", link, err)
	}
	return addr, nil
}
