package wapi

import (
	"errors"
	"os"

	"github.com/josharian/native"
	"github.com/mdlayher/wapi/internal/wext"
)

// errRangeTooShort is returned when the kernel's range reply cannot hold the
// fields this package reads.
var errRangeTooShort = errors.New("wapi: wireless range reply is too short")

// struct iw_range offsets.
const (
	rangeNumBitrates = 52
	rangeBitrates    = 56
	rangeNumTxPower  = 244
	rangeTxPower     = 248
	rangeWECompiled  = 280
	rangeWESource    = 281
	rangeNumChannels = 304
	rangeNumFreq     = 306
	rangeFreq        = 308
	rangeMinLen      = rangeFreq
)

// A Range describes the capabilities of a wireless interface.
type Range struct {
	// The Wireless Extensions version the driver was compiled against,
	// which determines the framing of scan event streams.
	WEVersion int

	// The Wireless Extensions version of the driver source.
	WESourceVersion int

	// The number of channels supported by the interface.
	NumChannels int

	// Supported frequencies. The I field of each entry is its channel
	// number.
	Frequencies []Freq

	// Supported bitrates in bits per second.
	Bitrates []int

	// Supported transmit power levels.
	TxPower []int
}

// Range retrieves the capabilities of the interface ifname.
func (c *Client) Range(ifname string) (*Range, error) {
	buf := make([]byte, wext.RangeBufferSize)
	r := pointRequest(buf, uint16(len(buf)), 0)
	if err := c.do(wext.SIOCGIWRANGE, ifname, r); err != nil {
		return nil, err
	}

	n := int(r.length)
	if n > len(buf) {
		n = len(buf)
	}

	return parseRange(buf[:n])
}

// WEVersion retrieves the Wireless Extensions version of the interface
// ifname.
func (c *Client) WEVersion(ifname string) (int, error) {
	rng, err := c.Range(ifname)
	if err != nil {
		return 0, err
	}

	return rng.WEVersion, nil
}

// FrequencyToChannel translates freq in Hz to a channel number using the
// frequency table of ifname. If the table has no exact match, it returns an
// error compatible with errors.Is(err, os.ErrNotExist).
func (c *Client) FrequencyToChannel(ifname string, freq float64) (int, error) {
	rng, err := c.Range(ifname)
	if err != nil {
		return 0, err
	}

	return rng.Channel(freq)
}

// ChannelToFrequency translates a channel number to a frequency in Hz using
// the frequency table of ifname. If the table has no such channel, it returns
// an error compatible with errors.Is(err, os.ErrNotExist).
func (c *Client) ChannelToFrequency(ifname string, channel int) (float64, error) {
	rng, err := c.Range(ifname)
	if err != nil {
		return 0, err
	}

	return rng.Frequency(channel)
}

// Channel returns the channel number of the first table entry whose
// frequency equals freq exactly.
func (r *Range) Channel(freq float64) (int, error) {
	for _, f := range r.Frequencies {
		if f.Float() == freq {
			return int(f.I), nil
		}
	}

	return 0, os.ErrNotExist
}

// Frequency returns the frequency of the first table entry for channel.
func (r *Range) Frequency(channel int) (float64, error) {
	for _, f := range r.Frequencies {
		if int(f.I) == channel {
			return f.Float(), nil
		}
	}

	return 0, os.ErrNotExist
}

// parseRange unpacks the fields of struct iw_range used by this package.
func parseRange(b []byte) (*Range, error) {
	if len(b) < rangeMinLen {
		return nil, errRangeTooShort
	}

	rng := &Range{
		WEVersion:       int(b[rangeWECompiled]),
		WESourceVersion: int(b[rangeWESource]),
		NumChannels:     int(native.Endian.Uint16(b[rangeNumChannels:])),
	}

	for i := 0; i < clamp(int(b[rangeNumBitrates]), wext.MaxBitrates); i++ {
		off := rangeBitrates + 4*i
		rng.Bitrates = append(rng.Bitrates, int(int32(native.Endian.Uint32(b[off:]))))
	}

	for i := 0; i < clamp(int(b[rangeNumTxPower]), wext.MaxTxPower); i++ {
		off := rangeTxPower + 4*i
		rng.TxPower = append(rng.TxPower, int(int32(native.Endian.Uint32(b[off:]))))
	}

	n := clamp(int(b[rangeNumFreq]), wext.MaxFrequencies)
	if len(b) < rangeFreq+8*n {
		return nil, errRangeTooShort
	}

	rng.Frequencies = make([]Freq, 0, n)
	for i := 0; i < n; i++ {
		rng.Frequencies = append(rng.Frequencies, parseFreq(b[rangeFreq+8*i:]))
	}

	return rng, nil
}

func clamp(n, limit int) int {
	if n > limit {
		return limit
	}

	return n
}
