//go:build !linux
// +build !linux

package wapi

import (
	"fmt"
	"net"
	"runtime"
)

var errUnimplemented = fmt.Errorf("wapi: not implemented on %s/%s",
	runtime.GOOS, runtime.GOARCH)

func newIoctler() (ioctler, error) { return nil, errUnimplemented }

func (*Client) Up(_ string) (bool, error)           { return false, errUnimplemented }
func (*Client) SetUp(_ string, _ bool) error        { return errUnimplemented }
func (*Client) IP(_ string) (net.IP, error)         { return nil, errUnimplemented }
func (*Client) SetIP(_ string, _ net.IP) error      { return errUnimplemented }
func (*Client) Netmask(_ string) (net.IP, error)    { return nil, errUnimplemented }
func (*Client) SetNetmask(_ string, _ net.IP) error { return errUnimplemented }
func (*Client) InterfaceNames() ([]string, error)   { return nil, errUnimplemented }
func (*Client) Routes() ([]Route, error)            { return nil, errUnimplemented }
