//go:build linux
// +build linux

package wapi

import (
	"runtime"
	"unsafe"

	"github.com/mdlayher/socket"
	"github.com/mdlayher/wapi/internal/wext"
	"golang.org/x/sys/unix"
)

var _ ioctler = &sysIoctler{}

// A sysIoctler is the Linux implementation of ioctler, which issues ioctls
// on an AF_INET datagram socket.
type sysIoctler struct {
	c *socket.Conn
}

// newIoctler opens the control channel used for Wireless Extensions and
// network interface ioctls.
func newIoctler() (*sysIoctler, error) {
	c, err := socket.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0, "wapi", nil)
	if err != nil {
		return nil, err
	}

	return &sysIoctler{c: c}, nil
}

func (s *sysIoctler) Close() error { return s.c.Close() }

// struct iwreq carrying union iwreq_data.
type iwreqData struct {
	Name [wext.IFNAMSIZ]byte
	Data [wext.UnionSize]byte
}

// struct iwreq carrying struct iw_point.
type iwreqPoint struct {
	Name    [wext.IFNAMSIZ]byte
	Pointer unsafe.Pointer
	Length  uint16
	Flags   uint16
	_       [wext.UnionSize - unsafe.Sizeof(uintptr(0)) - 4]byte
}

func (s *sysIoctler) ioctl(cmd uint16, ifname string, r *request) error {
	var name [wext.IFNAMSIZ]byte
	copy(name[:wext.IFNAMSIZ-1], ifname)

	if !r.point {
		req := iwreqData{
			Name: name,
			Data: r.data,
		}

		if err := s.control(cmd, unsafe.Pointer(&req)); err != nil {
			return err
		}

		r.data = req.Data
		return nil
	}

	req := iwreqPoint{
		Name:   name,
		Length: r.length,
		Flags:  r.flags,
	}
	if len(r.buf) > 0 {
		req.Pointer = unsafe.Pointer(&r.buf[0])
	}

	err := s.control(cmd, unsafe.Pointer(&req))
	runtime.KeepAlive(r.buf)
	if err != nil {
		return err
	}

	r.length = req.Length
	r.flags = req.Flags
	return nil
}

// ioctlIfreq issues a network interface ioctl such as SIOCGIFFLAGS.
func (s *sysIoctler) ioctlIfreq(req uint, ifr *unix.Ifreq) error {
	rc, err := s.c.SyscallConn()
	if err != nil {
		return err
	}

	var ierr error
	if err := rc.Control(func(fd uintptr) {
		ierr = unix.IoctlIfreq(int(fd), req, ifr)
	}); err != nil {
		return err
	}

	return ierr
}

func (s *sysIoctler) control(cmd uint16, arg unsafe.Pointer) error {
	rc, err := s.c.SyscallConn()
	if err != nil {
		return err
	}

	var errno unix.Errno
	if err := rc.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(cmd), uintptr(arg))
	}); err != nil {
		return err
	}

	if errno != 0 {
		return errno
	}

	return nil
}
