package wapi

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/josharian/native"
	"github.com/mdlayher/wapi/internal/wext"
)

// legacyPointVersion is the last Wireless Extensions version whose point
// events carry the in-kernel pointer of struct iw_point.
const legacyPointVersion = 18

// pointOffset is the size of the pointer which precedes the length and flags
// of point events in legacy streams.
const pointOffset = strconv.IntSize / 8

// An event is a single value decoded from a Wireless Extensions event stream.
type event struct {
	cmd uint16

	// value is the fixed size part of the event. For point events it holds
	// the length and flags of struct iw_point.
	value []byte

	// payload is the variable length part of a point event. It is nil when
	// the event carried no payload or the payload failed validation.
	payload []byte
}

func (e event) pointLength() int   { return int(native.Endian.Uint16(e.value[0:2])) }
func (e event) pointFlags() uint16 { return native.Endian.Uint16(e.value[2:4]) }

// An eventStream iterates over the events of a scan result buffer.
type eventStream struct {
	b       []byte
	version int
	current int

	// value is the offset of the next value of an event which carries
	// multiple fixed size values, or -1.
	value int
}

func newEventStream(b []byte, version int) *eventStream {
	return &eventStream{
		b:       b,
		version: version,
		value:   -1,
	}
}

func malformed(cmd uint16, format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedEvent, wext.Name(cmd), fmt.Sprintf(format, v...))
}

// next returns the next event in the stream, or io.EOF once the stream is
// exhausted. Events of unknown commands are skipped.
func (s *eventStream) next() (event, error) {
	for {
		if s.current+wext.LCPLen > len(s.b) {
			return event{}, io.EOF
		}

		length := int(native.Endian.Uint16(s.b[s.current:]))
		cmd := native.Endian.Uint16(s.b[s.current+2:])
		if length <= wext.LCPLen {
			return event{}, malformed(cmd, "invalid event length %d", length)
		}

		d, ok := wext.Lookup(cmd)
		isPoint := ok && d.Header == wext.HeaderPoint

		size := d.Header.PackedSize()
		if isPoint && s.version <= legacyPointVersion {
			size += pointOffset
		}
		if size <= wext.LCPLen {
			s.current += length
			continue
		}
		size -= wext.LCPLen

		p := s.current + wext.LCPLen
		if s.value >= 0 {
			p = s.value
		}
		if p+size > len(s.b) {
			return event{}, malformed(cmd, "value at offset %d overruns stream of %d bytes", p, len(s.b))
		}

		if isPoint {
			return s.point(cmd, d, length, p, size)
		}

		return s.fixed(cmd, d, length, p, size)
	}
}

// point decodes an event of header type point whose fixed part of size bytes
// begins at offset p.
func (s *eventStream) point(cmd uint16, d wext.Descriptor, length, p, size int) (event, error) {
	base := p
	ev := event{
		cmd:   cmd,
		value: s.b[p+size-4 : p+size],
	}
	p += size
	s.current += length

	extra := length - (size + wext.LCPLen)
	switch {
	case extra < 0:
		return event{}, malformed(cmd, "length %d shorter than its header", length)
	case extra == 0:
		return ev, nil
	}

	tokenLen := ev.pointLength() * d.TokenSize
	if tokenLen != extra && extra >= 4 && p+2 <= len(s.b) {
		// 64-bit kernels talking to 32-bit userspace pad the length and
		// flags with 4 bytes.
		altLen := int(native.Endian.Uint16(s.b[p:])) * d.TokenSize
		if altLen+8 == extra {
			start := base + 4
			if start+size > len(s.b) {
				return event{}, malformed(cmd, "padded value overruns stream")
			}

			ev.value = s.b[start+size-4 : start+size]
			p = start + size + 4
			tokenLen = altLen
		}
	}

	n := ev.pointLength()
	switch {
	case tokenLen > extra:
		return ev, nil
	case n > d.MaxTokens && d.Flags&wext.FlagNoMax == 0:
		return ev, nil
	case n < d.MinTokens:
		return ev, nil
	}

	if p+tokenLen > len(s.b) {
		return event{}, malformed(cmd, "payload of %d bytes overruns stream", tokenLen)
	}

	ev.payload = s.b[p : p+tokenLen]
	return ev, nil
}

// fixed decodes one value of a fixed size event beginning at offset p,
// keeping track of further values carried by the same event.
func (s *eventStream) fixed(cmd uint16, d wext.Descriptor, length, p, size int) (event, error) {
	value := s.b[p : p+size]
	p += size

	padded := (length-wext.LCPLen)%size == 4 ||
		(length == 12 && (d.Header == wext.HeaderUint || d.Header == wext.HeaderQual))
	if s.value < 0 && padded {
		// Same 64-bit kernel padding as point events.
		p = p - size + 4
		if p+size > len(s.b) {
			return event{}, malformed(cmd, "padded value overruns stream")
		}

		value = s.b[p : p+size]
		p += size
	}

	if p+size <= s.current+length {
		s.value = p
	} else {
		s.value = -1
		s.current += length
	}

	return event{
		cmd:   cmd,
		value: value,
	}, nil
}

// parseScanResults decodes a scan result buffer produced by a kernel
// implementing Wireless Extensions version weVersion.
//
// Access points are returned most recently decoded first.
func parseScanResults(b []byte, weVersion int) ([]*AccessPoint, error) {
	aps := make([]*AccessPoint, 0)

	s := newEventStream(b, weVersion)
	for {
		ev, err := s.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch ev.cmd {
		case wext.SIOCGIWAP:
			aps = append(aps, &AccessPoint{
				BSSID: parseHardwareAddr(ev.value),
			})
		case wext.SIOCGIWFREQ, wext.SIOCGIWMODE, wext.SIOCGIWESSID, wext.SIOCGIWRATE:
			if len(aps) == 0 {
				return nil, malformed(ev.cmd, "event precedes any access point")
			}

			if err := aps[len(aps)-1].parseEvent(ev); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(aps)-1; i < j; i, j = i+1, j-1 {
		aps[i], aps[j] = aps[j], aps[i]
	}

	return aps, nil
}

// parseEvent enriches an AccessPoint with a scan event.
func (ap *AccessPoint) parseEvent(ev event) error {
	switch ev.cmd {
	case wext.SIOCGIWFREQ:
		ap.Frequency = parseFreq(ev.value).Float()
		ap.HasFrequency = true
	case wext.SIOCGIWMODE:
		mode, err := parseMode(native.Endian.Uint32(ev.value))
		if err != nil {
			return err
		}

		ap.Mode = mode
		ap.HasMode = true
	case wext.SIOCGIWESSID:
		ap.ESSID = decodeESSID(ev.payload)
		ap.ESSIDFlag = ESSIDOff
		if ev.pointFlags() != 0 {
			ap.ESSIDFlag = ESSIDOn
		}
		ap.HasESSID = true
	case wext.SIOCGIWRATE:
		rate := int(parseParam(ev.value).Value)
		if !ap.HasBitrate || rate > ap.Bitrate {
			ap.Bitrate = rate
		}
		ap.HasBitrate = true
	}

	return nil
}

// decodeESSID copies at most EssidMaxSize bytes of an ESSID, stopping at the
// first NUL.
func decodeESSID(b []byte) string {
	if len(b) > wext.EssidMaxSize {
		b = b[:wext.EssidMaxSize]
	}
	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}

	return string(b)
}
