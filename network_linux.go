//go:build linux
// +build linux

package wapi

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// An ifreqer issues network interface ioctls.
type ifreqer interface {
	ioctlIfreq(req uint, ifr *unix.Ifreq) error
}

var errNoIfreq = errors.New("wapi: control channel does not support interface requests")

func (c *Client) ifreq(req uint, ifr *unix.Ifreq) error {
	ifq, ok := c.c.(ifreqer)
	if !ok {
		return errNoIfreq
	}

	if err := ifq.ioctlIfreq(req, ifr); err != nil {
		return os.NewSyscallError(ifreqName(req), err)
	}

	return nil
}

func ifreqName(req uint) string {
	switch req {
	case unix.SIOCGIFFLAGS:
		return "SIOCGIFFLAGS"
	case unix.SIOCSIFFLAGS:
		return "SIOCSIFFLAGS"
	case unix.SIOCGIFADDR:
		return "SIOCGIFADDR"
	case unix.SIOCSIFADDR:
		return "SIOCSIFADDR"
	case unix.SIOCGIFNETMASK:
		return "SIOCGIFNETMASK"
	case unix.SIOCSIFNETMASK:
		return "SIOCSIFNETMASK"
	default:
		return fmt.Sprintf("%#x", req)
	}
}

// Up reports whether ifname is administratively up.
func (c *Client) Up(ifname string) (bool, error) {
	ifr, err := unix.NewIfreq(ifname)
	if err != nil {
		return false, err
	}

	if err := c.ifreq(unix.SIOCGIFFLAGS, ifr); err != nil {
		return false, err
	}

	return ifr.Uint16()&unix.IFF_UP != 0, nil
}

// SetUp brings ifname up or down.
func (c *Client) SetUp(ifname string, up bool) error {
	ifr, err := unix.NewIfreq(ifname)
	if err != nil {
		return err
	}

	if err := c.ifreq(unix.SIOCGIFFLAGS, ifr); err != nil {
		return err
	}

	flags := ifr.Uint16()
	if up {
		flags |= unix.IFF_UP | unix.IFF_RUNNING
	} else {
		flags &^= unix.IFF_UP | unix.IFF_RUNNING
	}
	ifr.SetUint16(flags)

	return c.ifreq(unix.SIOCSIFFLAGS, ifr)
}

// IP retrieves the IPv4 address of ifname.
func (c *Client) IP(ifname string) (net.IP, error) {
	return c.inet4(unix.SIOCGIFADDR, ifname)
}

// SetIP sets the IPv4 address of ifname.
func (c *Client) SetIP(ifname string, ip net.IP) error {
	return c.setInet4(unix.SIOCSIFADDR, ifname, ip)
}

// Netmask retrieves the IPv4 netmask of ifname.
func (c *Client) Netmask(ifname string) (net.IP, error) {
	return c.inet4(unix.SIOCGIFNETMASK, ifname)
}

// SetNetmask sets the IPv4 netmask of ifname.
func (c *Client) SetNetmask(ifname string, mask net.IP) error {
	return c.setInet4(unix.SIOCSIFNETMASK, ifname, mask)
}

func (c *Client) inet4(req uint, ifname string) (net.IP, error) {
	ifr, err := unix.NewIfreq(ifname)
	if err != nil {
		return nil, err
	}

	if err := c.ifreq(req, ifr); err != nil {
		return nil, err
	}

	b, err := ifr.Inet4Addr()
	if err != nil {
		return nil, err
	}

	return net.IP(b).To4(), nil
}

func (c *Client) setInet4(req uint, ifname string, ip net.IP) error {
	ip4 := ip.To4()
	if ip4 == nil {
		return fmt.Errorf("wapi: %v is not an IPv4 address", ip)
	}

	ifr, err := unix.NewIfreq(ifname)
	if err != nil {
		return err
	}

	if err := ifr.SetInet4Addr(ip4); err != nil {
		return err
	}

	return c.ifreq(req, ifr)
}
