package wapi

import (
	"bytes"
	"fmt"
	"net"

	"github.com/mdlayher/wapi/internal/wext"
)

// iw_freq, iw_point and iw_param flags.
const (
	iwFreqFixed = 0x01

	iwTxPowTypeMask = 0x00ff
	iwTxPowDBm      = 0x0000
	iwTxPowMwatt    = 0x0001
	iwTxPowRelative = 0x0002
)

// Protocol retrieves the wireless protocol name of ifname, such as
// "IEEE 802.11". It fails for interfaces without wireless extensions.
func (c *Client) Protocol(ifname string) (string, error) {
	var r request
	if err := c.do(wext.SIOCGIWNAME, ifname, &r); err != nil {
		return "", err
	}

	b := r.data[:wext.IFNAMSIZ]
	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}

	return string(b), nil
}

// Frequency retrieves the operating frequency of ifname in Hz.
func (c *Client) Frequency(ifname string) (float64, FrequencyFlag, error) {
	var r request
	if err := c.do(wext.SIOCGIWFREQ, ifname, &r); err != nil {
		return 0, 0, err
	}

	f := r.freq()
	flag := FrequencyAuto
	if f.Flags&iwFreqFixed != 0 {
		flag = FrequencyFixed
	}

	return f.Float(), flag, nil
}

// SetFrequency sets the operating frequency of ifname in Hz.
func (c *Client) SetFrequency(ifname string, freq float64, flag FrequencyFlag) error {
	f := FloatToFreq(freq)
	if flag == FrequencyFixed {
		f.Flags = iwFreqFixed
	}

	var r request
	r.setFreq(f)
	return c.do(wext.SIOCSIWFREQ, ifname, &r)
}

// ESSID retrieves the network name of ifname and whether ESSID checking is
// enabled.
func (c *Client) ESSID(ifname string) (string, ESSIDFlag, error) {
	buf := make([]byte, wext.EssidMaxSize+1)
	r := pointRequest(buf, uint16(len(buf)), 0)
	if err := c.do(wext.SIOCGIWESSID, ifname, r); err != nil {
		return "", 0, err
	}

	n := int(r.length)
	if n > len(buf) {
		n = len(buf)
	}

	flag := ESSIDOff
	if r.flags != 0 {
		flag = ESSIDOn
	}

	return decodeESSID(buf[:n]), flag, nil
}

// SetESSID sets the network name of ifname. Names longer than 32 bytes are
// rejected.
func (c *Client) SetESSID(ifname, essid string, flag ESSIDFlag) error {
	if len(essid) > wext.EssidMaxSize {
		return fmt.Errorf("wapi: ESSID %q exceeds %d bytes", essid, wext.EssidMaxSize)
	}

	buf := make([]byte, wext.EssidMaxSize+1)
	copy(buf, essid)

	var flags uint16
	if flag == ESSIDOn {
		flags = 1
	}

	return c.do(wext.SIOCSIWESSID, ifname, pointRequest(buf, uint16(len(essid)), flags))
}

// Mode retrieves the operating mode of ifname.
func (c *Client) Mode(ifname string) (Mode, error) {
	var r request
	if err := c.do(wext.SIOCGIWMODE, ifname, &r); err != nil {
		return 0, err
	}

	return parseMode(r.u32())
}

// SetMode sets the operating mode of ifname.
func (c *Client) SetMode(ifname string, mode Mode) error {
	if mode < 0 || int(mode) >= len(modeNames) {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	var r request
	r.setU32(uint32(mode))
	return c.do(wext.SIOCSIWMODE, ifname, &r)
}

// AccessPoint retrieves the hardware address of the access point ifname is
// associated with.
func (c *Client) AccessPoint(ifname string) (net.HardwareAddr, error) {
	var r request
	if err := c.do(wext.SIOCGIWAP, ifname, &r); err != nil {
		return nil, err
	}

	return r.hardwareAddr(), nil
}

// SetAccessPoint requests association of ifname with the access point mac.
// The all-zeros and broadcast addresses let the driver choose.
func (c *Client) SetAccessPoint(ifname string, mac net.HardwareAddr) error {
	if len(mac) != 6 {
		return fmt.Errorf("wapi: invalid access point address %q", mac)
	}

	var r request
	r.setHardwareAddr(mac)
	return c.do(wext.SIOCSIWAP, ifname, &r)
}

// Bitrate retrieves the bitrate of ifname in bits per second. If the driver
// reports the bitrate as disabled, ErrDisabled is returned.
func (c *Client) Bitrate(ifname string) (int, BitrateFlag, error) {
	var r request
	if err := c.do(wext.SIOCGIWRATE, ifname, &r); err != nil {
		return 0, 0, err
	}

	p := r.param()
	if p.Disabled {
		return 0, 0, ErrDisabled
	}

	flag := BitrateAuto
	if p.Fixed {
		flag = BitrateFixed
	}

	return int(p.Value), flag, nil
}

// SetBitrate sets the bitrate of ifname in bits per second.
func (c *Client) SetBitrate(ifname string, bitrate int, flag BitrateFlag) error {
	var r request
	r.setParam(param{
		Value: int32(bitrate),
		Fixed: flag == BitrateFixed,
	})

	return c.do(wext.SIOCSIWRATE, ifname, &r)
}

// TxPower retrieves the transmit power of ifname in the unit reported by the
// driver. If the driver reports transmit power as disabled, ErrDisabled is
// returned.
func (c *Client) TxPower(ifname string) (int, TxPowerFlag, error) {
	var r request
	if err := c.do(wext.SIOCGIWTXPOW, ifname, &r); err != nil {
		return 0, 0, err
	}

	p := r.param()
	if p.Disabled {
		return 0, 0, ErrDisabled
	}

	var flag TxPowerFlag
	switch p.Flags & iwTxPowTypeMask {
	case iwTxPowDBm:
		flag = TxPowerDBm
	case iwTxPowMwatt:
		flag = TxPowerMilliwatt
	case iwTxPowRelative:
		flag = TxPowerRelative
	default:
		return 0, 0, fmt.Errorf("wapi: unknown transmit power unit %#x", p.Flags)
	}

	return int(p.Value), flag, nil
}

// SetTxPower sets a fixed transmit power for ifname.
func (c *Client) SetTxPower(ifname string, power int, flag TxPowerFlag) error {
	var flags uint16
	switch flag {
	case TxPowerDBm:
		flags = iwTxPowDBm
	case TxPowerMilliwatt:
		flags = iwTxPowMwatt
	case TxPowerRelative:
		flags = iwTxPowRelative
	default:
		return fmt.Errorf("wapi: unknown transmit power unit %v", flag)
	}

	var r request
	r.setParam(param{
		Value: int32(power),
		Fixed: true,
		Flags: flags,
	})

	return c.do(wext.SIOCSIWTXPOW, ifname, &r)
}
