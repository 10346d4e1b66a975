// Package wapi provides access to Linux wireless interfaces using Wireless
// Extensions ioctls and nl80211 generic netlink.
//
// A Client issues one control request per call for the simple accessors
// (frequency, ESSID, mode, access point, bitrate and transmit power), and
// drives multi-step exchanges for scanning and for adding or deleting
// virtual interfaces.
//
// Scan results are decoded from the kernel's Wireless Extensions event
// stream into AccessPoint values:
//
//	c, err := wapi.New(nil)
//	if err != nil {
//		log.Fatalf("failed to open client: %v", err)
//	}
//	defer c.Close()
//
//	aps, err := c.Scan(ctx, "wlan0")
//	switch {
//	case errors.Is(err, wapi.ErrScanTimeout):
//		// Retry a full scan cycle later.
//	case err != nil:
//		log.Fatalf("failed to scan: %v", err)
//	}
package wapi

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrScanTimeout is returned when scan results did not become available
	// before the configured scan timeout elapsed. Callers may retry a full
	// scan cycle.
	ErrScanTimeout = errors.New("wapi: scan timed out before results were available")

	// ErrScanTooLarge is returned when scan results do not fit in the largest
	// permitted result buffer.
	ErrScanTooLarge = errors.New("wapi: scan results exceed maximum buffer size")

	// ErrMalformedEvent is returned when a scan event stream cannot be
	// decoded.
	ErrMalformedEvent = errors.New("wapi: malformed wireless event stream")

	// ErrInvalidMode is returned for an operating mode value or name which
	// has no Mode.
	ErrInvalidMode = errors.New("wapi: invalid operating mode")

	// ErrModeUnsupported is returned when a Mode cannot be used for a new
	// virtual interface.
	ErrModeUnsupported = errors.New("wapi: operating mode has no nl80211 interface type")

	// ErrDisabled is returned when the driver reports a parameter as disabled.
	ErrDisabled = errors.New("wapi: parameter is disabled")
)

// A Mode is the operating mode of a wireless interface.
type Mode int

const (
	// ModeAuto lets the driver decide.
	ModeAuto Mode = iota

	// ModeAdHoc is a single cell network without an access point.
	ModeAdHoc

	// ModeManaged is a multi cell network with roaming between access
	// points.
	ModeManaged

	// ModeMaster is a synchronisation master or access point.
	ModeMaster

	// ModeRepeat is a wireless repeater which forwards packets.
	ModeRepeat

	// ModeSecond is a secondary master or repeater acting as backup.
	ModeSecond

	// ModeMonitor is passive monitoring without transmitting.
	ModeMonitor
)

var modeNames = [...]string{
	ModeAuto:    "auto",
	ModeAdHoc:   "adhoc",
	ModeManaged: "managed",
	ModeMaster:  "master",
	ModeRepeat:  "repeat",
	ModeSecond:  "second",
	ModeMonitor: "monitor",
}

// String returns the string representation of a Mode.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}

	return fmt.Sprintf("unknown(%d)", int(m))
}

// ParseMode parses the name of a Mode as returned by Mode.String. Matching
// is case insensitive.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// parseMode maps a wire mode value onto a Mode.
func parseMode(v uint32) (Mode, error) {
	if int(v) >= len(modeNames) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, v)
	}

	return Mode(v), nil
}

// A FrequencyFlag indicates whether a frequency is fixed or chosen by the
// driver.
type FrequencyFlag int

const (
	FrequencyAuto FrequencyFlag = iota
	FrequencyFixed
)

// String returns the string representation of a FrequencyFlag.
func (f FrequencyFlag) String() string {
	switch f {
	case FrequencyAuto:
		return "auto"
	case FrequencyFixed:
		return "fixed"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// An ESSIDFlag indicates whether ESSID checking is enabled. When off, the
// interface associates with any network.
type ESSIDFlag int

const (
	ESSIDOn ESSIDFlag = iota
	ESSIDOff
)

// String returns the string representation of an ESSIDFlag.
func (f ESSIDFlag) String() string {
	switch f {
	case ESSIDOn:
		return "on"
	case ESSIDOff:
		return "off"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// A BitrateFlag indicates whether a bitrate is fixed or chosen by the
// driver.
type BitrateFlag int

const (
	BitrateAuto BitrateFlag = iota
	BitrateFixed
)

// String returns the string representation of a BitrateFlag.
func (f BitrateFlag) String() string {
	switch f {
	case BitrateAuto:
		return "auto"
	case BitrateFixed:
		return "fixed"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// A TxPowerFlag is the unit of a transmit power value.
type TxPowerFlag int

const (
	TxPowerDBm TxPowerFlag = iota
	TxPowerMilliwatt
	TxPowerRelative
)

// String returns the string representation of a TxPowerFlag.
func (f TxPowerFlag) String() string {
	switch f {
	case TxPowerDBm:
		return "dbm"
	case TxPowerMilliwatt:
		return "mwatt"
	case TxPowerRelative:
		return "relative"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// An AccessPoint is a wireless network discovered by a scan. Apart from
// BSSID, each field is only valid when its Has field is set.
type AccessPoint struct {
	// The hardware address of the access point.
	BSSID net.HardwareAddr

	// The frequency of the network in Hz.
	Frequency    float64
	HasFrequency bool

	// The operating mode of the network.
	Mode    Mode
	HasMode bool

	// The network name and whether ESSID checking is on.
	ESSID     string
	ESSIDFlag ESSIDFlag
	HasESSID  bool

	// The highest bitrate advertised by the network in bits per second.
	Bitrate    int
	HasBitrate bool
}

// A Route is an IPv4 kernel routing table entry.
type Route struct {
	Interface   string
	Destination net.IP
	Gateway     net.IP
	Flags       uint32
	RefCount    uint32
	Use         uint32
	Metric      uint32
	Netmask     net.IP
	MTU         uint32
	Window      uint32
	IRTT        uint32
}
