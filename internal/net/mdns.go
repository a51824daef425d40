package net

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_sketchboard._tcp"

// Advertise announces a mirror listening on port to the local network. The
// caller shuts the returned server down when the mirror stops.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	// Leave domain, hostname and IPs empty to use the local defaults.
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"SketchBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse looks for mirrors on the local network for the given time and
// calls found with the host:port of each one.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4, e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS lookup: %w", err)
	}
	return nil
}
