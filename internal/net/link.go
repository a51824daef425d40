package net

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Scheme prefixes share links, e.g. sketchboard://192.168.1.20:8888.
const Scheme = "sketchboard://"

// MirrorPath is where the hub accepts viewer connections.
const MirrorPath = "/ws"

// Link builds the share link for a board mirrored at host:port.
func Link(host string, port int) string {
	return Scheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// IsLink reports whether s looks like a share link.
func IsLink(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseLink returns the websocket URL of the mirror behind a share link.
func ParseLink(link string) (string, error) {
	if !IsLink(link) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("bad share link %q: %w", link, err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("bad port in share link %q", link)
	}
	return "ws://" + net.JoinHostPort(host, port) + MirrorPath, nil
}
