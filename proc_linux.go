//go:build linux
// +build linux

package wapi

import (
	"net"

	"github.com/josharian/native"
	"github.com/prometheus/procfs"
)

// InterfaceNames returns the names of interfaces with wireless extensions,
// in the order listed by /proc/net/wireless.
func (c *Client) InterfaceNames() ([]string, error) {
	fs, err := procfs.NewFS(c.procPath)
	if err != nil {
		return nil, err
	}

	ws, err := fs.Wireless()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ws))
	for _, w := range ws {
		names = append(names, w.Name)
	}

	return names, nil
}

// Routes returns the IPv4 kernel routing table from /proc/net/route.
func (c *Client) Routes() ([]Route, error) {
	fs, err := procfs.NewFS(c.procPath)
	if err != nil {
		return nil, err
	}

	lines, err := fs.NetRoute()
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(lines))
	for _, l := range lines {
		routes = append(routes, Route{
			Interface:   l.Iface,
			Destination: routeIP(l.Destination),
			Gateway:     routeIP(l.Gateway),
			Flags:       l.Flags,
			RefCount:    l.RefCnt,
			Use:         l.Use,
			Metric:      l.Metric,
			Netmask:     routeIP(l.Mask),
			MTU:         l.MTU,
			Window:      l.Window,
			IRTT:        l.IRTT,
		})
	}

	return routes, nil
}

// routeIP converts an address as printed by /proc/net/route, a hexadecimal
// value in host byte order, to an IPv4 address.
func routeIP(v uint32) net.IP {
	ip := make(net.IP, net.IPv4len)
	native.Endian.PutUint32(ip, v)
	return ip
}
