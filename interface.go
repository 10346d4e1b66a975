package wapi

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/josharian/native"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/wapi/internal/nl80211"
	"go.uber.org/zap"
)

var _ genl = &genetlink.Conn{}

// genl is an interface over generic netlink, so netlink interactions can
// be stubbed in tests.
type genl interface {
	Close() error
	GetFamily(name string) (genetlink.Family, error)
	Send(m genetlink.Message, family uint16, flags netlink.HeaderFlags) (netlink.Message, error)
	Receive() ([]genetlink.Message, []netlink.Message, error)
}

// dialGenl dials a generic netlink connection for a single exchange.
func dialGenl() (genl, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}

	// Best effort, for better errors from kernels which support it.
	_ = c.SetOption(netlink.ExtendedAcknowledge, true)

	return c, nil
}

func interfaceIndex(name string) (int, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0, err
	}

	return ifi.Index, nil
}

// A CommandError is a failure reported by the kernel in reply to an nl80211
// interface command.
type CommandError struct {
	// The nl80211 command, such as "NEW_INTERFACE".
	Command string

	// The interface the command was issued for.
	Interface string

	// The result code of the exchange: a negated errno value.
	Code int
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("wapi: nl80211 %s %s: %v (%d)", e.Command, e.Interface, e.Unwrap(), e.Code)
}

// Unwrap returns the errno value of the failure, so errors.Is can be used
// with values such as syscall.EBUSY.
func (e *CommandError) Unwrap() error {
	return syscall.Errno(-e.Code)
}

// ifType maps m to an nl80211 interface type.
func (m Mode) ifType() (uint32, error) {
	switch m {
	case ModeAuto:
		return nl80211.IftypeUnspecified, nil
	case ModeAdHoc:
		return nl80211.IftypeAdhoc, nil
	case ModeManaged:
		return nl80211.IftypeStation, nil
	case ModeMaster:
		return nl80211.IftypeAP, nil
	case ModeMonitor:
		return nl80211.IftypeMonitor, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrModeUnsupported, m)
	}
}

// AddInterface creates a virtual interface called name on the same device
// as ifname, operating in mode. ModeRepeat and ModeSecond have no nl80211
// equivalent and are rejected with ErrModeUnsupported before any request is
// made.
func (c *Client) AddInterface(ifname, name string, mode Mode) error {
	iftype, err := mode.ifType()
	if err != nil {
		return err
	}

	return c.interfaceCommand(nl80211.CmdNewInterface, "NEW_INTERFACE", ifname, func(ae *netlink.AttributeEncoder) {
		ae.String(nl80211.AttrIfname, name)
		ae.Uint32(nl80211.AttrIftype, iftype)
	})
}

// DeleteInterface removes the virtual interface ifname.
func (c *Client) DeleteInterface(ifname string) error {
	return c.interfaceCommand(nl80211.CmdDelInterface, "DEL_INTERFACE", ifname, nil)
}

// interfaceCommand sends an nl80211 command addressed to ifname over a new
// generic netlink connection and waits for the kernel to resolve it.
func (c *Client) interfaceCommand(cmd uint8, name, ifname string, encode func(ae *netlink.AttributeEncoder)) error {
	index, err := c.index(ifname)
	if err != nil {
		return err
	}

	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	family, err := conn.GetFamily(nl80211.GenlName)
	if err != nil {
		return err
	}

	c.logger.Debug("resolved generic netlink family",
		zap.String("family", family.Name),
		zap.Uint16("id", family.ID),
	)

	ae := netlink.NewAttributeEncoder()
	ae.Uint32(nl80211.AttrIfindex, uint32(index))
	if encode != nil {
		encode(ae)
	}

	b, err := ae.Encode()
	if err != nil {
		return err
	}

	msg := genetlink.Message{
		Header: genetlink.Header{
			Command: cmd,
			Version: family.Version,
		},
		Data: b,
	}

	if _, err := conn.Send(msg, family.ID, netlink.Request|netlink.Acknowledge); err != nil {
		return err
	}

	res, err := drive(conn)
	if err != nil {
		return err
	}

	c.logger.Debug("resolved nl80211 command",
		zap.String("command", name),
		zap.String("ifname", ifname),
		zap.Stringer("path", res.path),
		zap.Int("code", res.code),
	)

	if res.code != 0 {
		return &CommandError{
			Command:   name,
			Interface: ifname,
			Code:      res.code,
		}
	}

	return nil
}

// A replyPath identifies the kind of reply which resolved an exchange.
type replyPath int

const (
	pathAck replyPath = iota
	pathFinish
	pathError
)

func (p replyPath) String() string {
	switch p {
	case pathAck:
		return "ack"
	case pathFinish:
		return "finish"
	case pathError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// An exchangeResult is the resolution of a netlink exchange. A zero code
// indicates success, and a negative code is a negated errno value.
type exchangeResult struct {
	path replyPath
	code int
}

// drive receives replies until an acknowledgement, completion or error
// resolves the exchange. A multipart batch counts as completion. Other
// messages are skipped. Errors which carry no errno value are returned as
// transport failures.
func drive(conn genl) (exchangeResult, error) {
	for {
		_, msgs, err := conn.Receive()
		if err != nil {
			var errno syscall.Errno
			if errors.As(err, &errno) {
				return exchangeResult{path: pathError, code: -int(errno)}, nil
			}

			return exchangeResult{}, err
		}

		var multi bool
		for _, m := range msgs {
			if m.Header.Flags&netlink.Multi != 0 {
				multi = true
			}

			switch m.Header.Type {
			case netlink.Error:
				if len(m.Data) >= 4 {
					if code := int(int32(native.Endian.Uint32(m.Data[:4]))); code != 0 {
						return exchangeResult{path: pathError, code: code}, nil
					}
				}

				return exchangeResult{path: pathAck}, nil
			case netlink.Done:
				return exchangeResult{path: pathFinish}, nil
			}
		}

		// netlink.Conn drains a multipart reply and strips its trailing Done,
		// so a batch with multipart messages is the complete reply.
		if multi {
			return exchangeResult{path: pathFinish}, nil
		}
	}
}
