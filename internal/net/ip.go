package net

import (
	"log"
	"net"
)

// GetOutgoingIP finds the local address other machines should use to
// reach the mirror.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; look at the interfaces instead.
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not loopback.
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
	log.Println("[MIRROR] no suitable local IP found, falling back to loopback")
	return net.IPv4(127, 0, 0, 1)
}
