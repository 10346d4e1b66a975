// Package wext contains Linux Wireless Extensions ioctl and event
// definitions from linux/wireless.h.
//
// WARNING: THIS IS MANUALLY CREATED. ONLY THE COMMANDS AND EVENTS WHICH
// CAN APPEAR IN A SCAN EVENT STREAM OR ARE ISSUED BY THIS MODULE ARE LISTED.
package wext

import "fmt"

// Standard ioctl commands.
const (
	SIOCIWFIRST = 0x8b00
	SIOCIWLAST  = 0x8bff

	SIOCSIWCOMMIT    = 0x8b00
	SIOCGIWNAME      = 0x8b01
	SIOCSIWNWID      = 0x8b02
	SIOCGIWNWID      = 0x8b03
	SIOCSIWFREQ      = 0x8b04
	SIOCGIWFREQ      = 0x8b05
	SIOCSIWMODE      = 0x8b06
	SIOCGIWMODE      = 0x8b07
	SIOCSIWSENS      = 0x8b08
	SIOCGIWSENS      = 0x8b09
	SIOCSIWRANGE     = 0x8b0a
	SIOCGIWRANGE     = 0x8b0b
	SIOCSIWPRIV      = 0x8b0c
	SIOCGIWPRIV      = 0x8b0d
	SIOCSIWSTATS     = 0x8b0e
	SIOCGIWSTATS     = 0x8b0f
	SIOCSIWSPY       = 0x8b10
	SIOCGIWSPY       = 0x8b11
	SIOCSIWTHRSPY    = 0x8b12
	SIOCGIWTHRSPY    = 0x8b13
	SIOCSIWAP        = 0x8b14
	SIOCGIWAP        = 0x8b15
	SIOCSIWMLME      = 0x8b16
	SIOCGIWAPLIST    = 0x8b17
	SIOCSIWSCAN      = 0x8b18
	SIOCGIWSCAN      = 0x8b19
	SIOCSIWESSID     = 0x8b1a
	SIOCGIWESSID     = 0x8b1b
	SIOCSIWNICKN     = 0x8b1c
	SIOCGIWNICKN     = 0x8b1d
	SIOCSIWRATE      = 0x8b20
	SIOCGIWRATE      = 0x8b21
	SIOCSIWRTS       = 0x8b22
	SIOCGIWRTS       = 0x8b23
	SIOCSIWFRAG      = 0x8b24
	SIOCGIWFRAG      = 0x8b25
	SIOCSIWTXPOW     = 0x8b26
	SIOCGIWTXPOW     = 0x8b27
	SIOCSIWRETRY     = 0x8b28
	SIOCGIWRETRY     = 0x8b29
	SIOCSIWENCODE    = 0x8b2a
	SIOCGIWENCODE    = 0x8b2b
	SIOCSIWPOWER     = 0x8b2c
	SIOCGIWPOWER     = 0x8b2d
	SIOCSIWMODUL     = 0x8b2e
	SIOCGIWMODUL     = 0x8b2f
	SIOCSIWGENIE     = 0x8b30
	SIOCGIWGENIE     = 0x8b31
	SIOCSIWAUTH      = 0x8b32
	SIOCGIWAUTH      = 0x8b33
	SIOCSIWENCODEEXT = 0x8b34
	SIOCGIWENCODEEXT = 0x8b35
	SIOCSIWPMKSA     = 0x8b36
)

// Events.
const (
	IWEVFIRST = 0x8c00

	IWEVTXDROP            = 0x8c00
	IWEVQUAL              = 0x8c01
	IWEVCUSTOM            = 0x8c02
	IWEVREGISTERED        = 0x8c03
	IWEVEXPIRED           = 0x8c04
	IWEVGENIE             = 0x8c05
	IWEVMICHAELMICFAILURE = 0x8c06
	IWEVASSOCREQIE        = 0x8c07
	IWEVASSOCRESPIE       = 0x8c08
	IWEVPMKIDCAND         = 0x8c09
)

// Sizes and limits.
const (
	// IFNAMSIZ is the size of the interface name field of struct iwreq.
	IFNAMSIZ = 16

	// ReqSize is the size of struct iwreq.
	ReqSize = 32

	// UnionSize is the size of union iwreq_data.
	UnionSize = ReqSize - IFNAMSIZ

	EssidMaxSize      = 32
	EncodingTokenMax  = 64
	GenericIEMax      = 1024
	CustomMax         = 256
	ScanMaxData       = 4096
	MaxFrequencies    = 32
	MaxBitrates       = 32
	MaxTxPower        = 8
	MaxAP             = 64
	MaxSpy            = 8
	sockaddrSize      = 16
	qualitySize       = 4
	thrspySize        = sockaddrSize + 3*qualitySize
	mlmeSize          = 4 + sockaddrSize
	scanReqSize       = 4 + sockaddrSize + EssidMaxSize + 8 + MaxFrequencies*8
	encodeExtSize     = 4 + 8 + 8 + sockaddrSize + 4
	pmksaSize         = 4 + sockaddrSize + 16
	micFailureSize    = 4 + sockaddrSize + 8
	pmkidCandSize     = 8 + sockaddrSize
	iwRangeApproxSize = 568
)

// RangeBufferSize is large enough to hold struct iw_range from any kernel.
const RangeBufferSize = 2 * iwRangeApproxSize

// LCPLen is the size of the packed {len, cmd} header of each event.
const LCPLen = 4

// A HeaderType identifies the layout of the value that follows an event
// header.
type HeaderType uint8

// Header types.
const (
	HeaderNull  HeaderType = 0
	HeaderChar  HeaderType = 2
	HeaderUint  HeaderType = 4
	HeaderFreq  HeaderType = 5
	HeaderAddr  HeaderType = 6
	HeaderPoint HeaderType = 8
	HeaderParam HeaderType = 9
	HeaderQual  HeaderType = 10
)

// PackedSize returns the size of an event carrying this header type in a
// scan stream, including the event header. Point events exclude their
// variable length payload. Unknown header types report LCPLen.
func (t HeaderType) PackedSize() int {
	switch t {
	case HeaderChar:
		return LCPLen + 16
	case HeaderUint:
		return LCPLen + 4
	case HeaderFreq:
		return LCPLen + 8
	case HeaderAddr:
		return LCPLen + sockaddrSize
	case HeaderPoint:
		return LCPLen + 4
	case HeaderParam:
		return LCPLen + 8
	case HeaderQual:
		return LCPLen + qualitySize
	default:
		return LCPLen
	}
}

// Descriptor flags.
const (
	// FlagNoMax permits point events to exceed MaxTokens.
	FlagNoMax = 0x0008
)

// A Descriptor describes the value layout of a command or event.
type Descriptor struct {
	Header    HeaderType
	TokenSize int
	MinTokens int
	MaxTokens int
	Flags     int
}

func point(token, min, max, flags int) Descriptor {
	return Descriptor{
		Header:    HeaderPoint,
		TokenSize: token,
		MinTokens: min,
		MaxTokens: max,
		Flags:     flags,
	}
}

var (
	standard = map[uint16]Descriptor{
		SIOCSIWCOMMIT:    {Header: HeaderNull},
		SIOCGIWNAME:      {Header: HeaderChar},
		SIOCSIWNWID:      {Header: HeaderParam},
		SIOCGIWNWID:      {Header: HeaderParam},
		SIOCSIWFREQ:      {Header: HeaderFreq},
		SIOCGIWFREQ:      {Header: HeaderFreq},
		SIOCSIWMODE:      {Header: HeaderUint},
		SIOCGIWMODE:      {Header: HeaderUint},
		SIOCSIWSENS:      {Header: HeaderParam},
		SIOCGIWSENS:      {Header: HeaderParam},
		SIOCSIWRANGE:     {Header: HeaderNull},
		SIOCGIWRANGE:     point(1, 0, iwRangeApproxSize, 0),
		SIOCSIWPRIV:      {Header: HeaderNull},
		SIOCGIWPRIV:      {Header: HeaderNull},
		SIOCSIWSTATS:     {Header: HeaderNull},
		SIOCGIWSTATS:     {Header: HeaderNull},
		SIOCSIWSPY:       point(sockaddrSize, 0, MaxSpy, 0),
		SIOCGIWSPY:       point(sockaddrSize+qualitySize, 0, MaxSpy, 0),
		SIOCSIWTHRSPY:    point(thrspySize, 1, 1, 0),
		SIOCGIWTHRSPY:    point(thrspySize, 1, 1, 0),
		SIOCSIWAP:        {Header: HeaderAddr},
		SIOCGIWAP:        {Header: HeaderAddr},
		SIOCSIWMLME:      point(1, mlmeSize, mlmeSize, 0),
		SIOCGIWAPLIST:    point(sockaddrSize+qualitySize, 0, MaxAP, FlagNoMax),
		SIOCSIWSCAN:      point(1, 0, scanReqSize, 0),
		SIOCGIWSCAN:      point(1, 0, ScanMaxData, FlagNoMax),
		SIOCSIWESSID:     point(1, 0, EssidMaxSize+1, 0),
		SIOCGIWESSID:     point(1, 0, EssidMaxSize+1, 0),
		SIOCSIWNICKN:     point(1, 0, EssidMaxSize+1, 0),
		SIOCGIWNICKN:     point(1, 0, EssidMaxSize+1, 0),
		SIOCSIWRATE:      {Header: HeaderParam},
		SIOCGIWRATE:      {Header: HeaderParam},
		SIOCSIWRTS:       {Header: HeaderParam},
		SIOCGIWRTS:       {Header: HeaderParam},
		SIOCSIWFRAG:      {Header: HeaderParam},
		SIOCGIWFRAG:      {Header: HeaderParam},
		SIOCSIWTXPOW:     {Header: HeaderParam},
		SIOCGIWTXPOW:     {Header: HeaderParam},
		SIOCSIWRETRY:     {Header: HeaderParam},
		SIOCGIWRETRY:     {Header: HeaderParam},
		SIOCSIWENCODE:    point(1, 0, EncodingTokenMax, 0),
		SIOCGIWENCODE:    point(1, 0, EncodingTokenMax, 0),
		SIOCSIWPOWER:     {Header: HeaderParam},
		SIOCGIWPOWER:     {Header: HeaderParam},
		SIOCSIWMODUL:     {Header: HeaderParam},
		SIOCGIWMODUL:     {Header: HeaderParam},
		SIOCSIWGENIE:     point(1, 0, GenericIEMax, 0),
		SIOCGIWGENIE:     point(1, 0, GenericIEMax, 0),
		SIOCSIWAUTH:      {Header: HeaderParam},
		SIOCGIWAUTH:      {Header: HeaderParam},
		SIOCSIWENCODEEXT: point(1, encodeExtSize, encodeExtSize+EncodingTokenMax, 0),
		SIOCGIWENCODEEXT: point(1, encodeExtSize, encodeExtSize+EncodingTokenMax, 0),
		SIOCSIWPMKSA:     point(1, pmksaSize, pmksaSize, 0),
	}

	events = map[uint16]Descriptor{
		IWEVTXDROP:            {Header: HeaderAddr},
		IWEVQUAL:              {Header: HeaderQual},
		IWEVCUSTOM:            point(1, 0, CustomMax, 0),
		IWEVREGISTERED:        {Header: HeaderAddr},
		IWEVEXPIRED:           {Header: HeaderAddr},
		IWEVGENIE:             point(1, 0, GenericIEMax, 0),
		IWEVMICHAELMICFAILURE: point(1, 0, micFailureSize, 0),
		IWEVASSOCREQIE:        point(1, 0, GenericIEMax, 0),
		IWEVASSOCRESPIE:       point(1, 0, GenericIEMax, 0),
		IWEVPMKIDCAND:         point(1, 0, pmkidCandSize, 0),
	}
)

// Lookup returns the Descriptor for a command or event. The boolean is false
// for commands this package does not describe.
func Lookup(cmd uint16) (Descriptor, bool) {
	if cmd <= SIOCIWLAST {
		d, ok := standard[cmd]
		return d, ok
	}

	d, ok := events[cmd]
	return d, ok
}

var names = map[uint16]string{
	SIOCSIWCOMMIT: "SIOCSIWCOMMIT",
	SIOCGIWNAME:   "SIOCGIWNAME",
	SIOCSIWFREQ:   "SIOCSIWFREQ",
	SIOCGIWFREQ:   "SIOCGIWFREQ",
	SIOCSIWMODE:   "SIOCSIWMODE",
	SIOCGIWMODE:   "SIOCGIWMODE",
	SIOCGIWRANGE:  "SIOCGIWRANGE",
	SIOCSIWAP:     "SIOCSIWAP",
	SIOCGIWAP:     "SIOCGIWAP",
	SIOCSIWSCAN:   "SIOCSIWSCAN",
	SIOCGIWSCAN:   "SIOCGIWSCAN",
	SIOCSIWESSID:  "SIOCSIWESSID",
	SIOCGIWESSID:  "SIOCGIWESSID",
	SIOCSIWRATE:   "SIOCSIWRATE",
	SIOCGIWRATE:   "SIOCGIWRATE",
	SIOCSIWTXPOW:  "SIOCSIWTXPOW",
	SIOCGIWTXPOW:  "SIOCGIWTXPOW",
}

// Name returns the symbolic name of an ioctl command issued by this module,
// or its hexadecimal value otherwise.
func Name(cmd uint16) string {
	if s, ok := names[cmd]; ok {
		return s
	}

	return fmt.Sprintf("0x%04x", cmd)
}
