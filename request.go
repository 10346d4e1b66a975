package wapi

import (
	"net"

	"github.com/josharian/native"
	"github.com/mdlayher/wapi/internal/wext"
)

// arphrdEther is the ARPHRD_ETHER address family of hardware addresses.
const arphrdEther = 1

// A request is the value exchanged with the kernel by a single Wireless
// Extensions ioctl, mirroring union iwreq_data.
type request struct {
	// data holds fixed size values such as frequencies, modes, parameters
	// and addresses.
	data [wext.UnionSize]byte

	// When point is set the request carries struct iw_point instead of data:
	// buf is handed to the kernel and length and flags are updated from its
	// reply.
	point  bool
	buf    []byte
	length uint16
	flags  uint16
}

// pointRequest creates a request for a variable length value.
func pointRequest(buf []byte, length, flags uint16) *request {
	return &request{
		point:  true,
		buf:    buf,
		length: length,
		flags:  flags,
	}
}

// iw_freq layout.
func (r *request) setFreq(f Freq) {
	native.Endian.PutUint32(r.data[0:4], uint32(f.M))
	native.Endian.PutUint16(r.data[4:6], uint16(f.E))
	r.data[6] = f.I
	r.data[7] = f.Flags
}

func (r *request) freq() Freq {
	return parseFreq(r.data[:])
}

func parseFreq(b []byte) Freq {
	return Freq{
		M:     int32(native.Endian.Uint32(b[0:4])),
		E:     int16(native.Endian.Uint16(b[4:6])),
		I:     b[6],
		Flags: b[7],
	}
}

// A param mirrors struct iw_param.
type param struct {
	Value    int32
	Fixed    bool
	Disabled bool
	Flags    uint16
}

func (r *request) setParam(p param) {
	native.Endian.PutUint32(r.data[0:4], uint32(p.Value))
	r.data[4] = boolByte(p.Fixed)
	r.data[5] = boolByte(p.Disabled)
	native.Endian.PutUint16(r.data[6:8], p.Flags)
}

func (r *request) param() param {
	return parseParam(r.data[:])
}

func parseParam(b []byte) param {
	return param{
		Value:    int32(native.Endian.Uint32(b[0:4])),
		Fixed:    b[4] != 0,
		Disabled: b[5] != 0,
		Flags:    native.Endian.Uint16(b[6:8]),
	}
}

func (r *request) setU32(v uint32) { native.Endian.PutUint32(r.data[0:4], v) }
func (r *request) u32() uint32     { return native.Endian.Uint32(r.data[0:4]) }

// struct sockaddr layout, carrying a hardware address in sa_data.
func (r *request) setHardwareAddr(mac net.HardwareAddr) {
	native.Endian.PutUint16(r.data[0:2], arphrdEther)
	copy(r.data[2:8], mac)
}

func (r *request) hardwareAddr() net.HardwareAddr {
	return parseHardwareAddr(r.data[:])
}

func parseHardwareAddr(b []byte) net.HardwareAddr {
	mac := make(net.HardwareAddr, 6)
	copy(mac, b[2:8])
	return mac
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}
