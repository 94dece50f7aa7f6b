package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_sketchpad._tcp"

// Advertise announces a mirror on port until the returned server is shut
// down.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,        // instance
		serviceType, // service
		"",          // domain, ".local"
		"",          // host name, the OS one
		port,
		nil, // IPs, auto-detected
		[]string{"Sketchpad", "path=" + MirrorPath},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for mirrors for up to timeout and returns the first one
// found as host:port.
func Browse(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- fmt.Sprintf("%s:%d", e.AddrV4, e.Port):
			default:
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.QueryContext(ctx, params)
	close(entries)
	<-done
	if err != nil {
		return "", fmt.Errorf("mDNS query: %w", err)
	}

	select {
	case addr := <-found:
		return addr, nil
	default:
		return "", fmt.Errorf("no %s service found", serviceType)
	}
}
