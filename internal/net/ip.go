package net

import (
	"log"
	"net"
)

// OutgoingIP finds the preferred local address to put in a share link.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// Offline networks still have a LAN address on some interface.
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback, or 127.0.0.1.
func firstIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Printf("[NET] listing interfaces: %v", err)
	}
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
	log.Println("[NET] no suitable local IP found, share link will use loopback")
	return net.IPv4(127, 0, 0, 1)
}
