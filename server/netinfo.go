package server

import (
	"fmt"
	"net"
)

// LANIPv4 lists the IPv4 addresses of all non-loopback interfaces.
func LANIPv4() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, ipv4Addrs(addrs)...)
	}
	return out, nil
}

func ipv4Addrs(addrs []net.Addr) []string {
	var out []string
	for _, addr := range addrs {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		}
		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() {
			continue
		}
		out = append(out, ip4.String())
	}
	return out
}

func ReachableURLs(port int, entryPage string, lanIPs []string) (string, []string) {
	local := fmt.Sprintf("http://localhost:%d/%s", port, entryPage)
	lan := make([]string, 0, len(lanIPs))
	for _, ip := range lanIPs {
		lan = append(lan, fmt.Sprintf("http://%s:%d/%s", ip, port, entryPage))
	}
	return local, lan
}
