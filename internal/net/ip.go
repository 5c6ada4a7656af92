package net

import (
	"fmt"
	"log"
	"net"
	"strings"
)

// LinkScheme prefixes the links hosts hand out to viewers.
const LinkScheme = "wormboard://"

// ShareLink builds the link a viewer opens to follow this host.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s", LinkScheme, net.JoinHostPort(ip, fmt.Sprint(port)))
}

// ParseLink turns a share link into the websocket URL to dial.
func ParseLink(link string) (string, error) {
	if !strings.HasPrefix(link, LinkScheme) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	address := strings.TrimSuffix(strings.TrimPrefix(link, LinkScheme), "/")
	if _, _, err := net.SplitHostPort(address); err != nil {
		return "", fmt.Errorf("bad share link %q: %w", link, err)
	}
	return "ws://" + address + "/ws", nil
}

// OutgoingIP finds the preferred local IP address for the host to share.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route out, fall back to checking local interfaces
		return firstIPv4().String()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String()
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		// Ignore loopback and down interfaces
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
	log.Println("No suitable local IP found, share link may not work.")
	return net.IPv4(127, 0, 0, 1)
}
