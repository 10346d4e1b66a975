package wapi

import (
	"context"
	"os"
	"time"

	"github.com/mdlayher/wapi/internal/wext"
	"go.uber.org/zap"
)

// Scan defaults.
const (
	DefaultScanPollInterval = 100 * time.Millisecond
	DefaultScanTimeout      = 5 * time.Second
	DefaultScanBufferSize   = wext.ScanMaxData
	DefaultScanBufferLimit  = 0xffff
)

// Config configures a Client. The zero value is valid and applies the
// defaults documented on each field.
type Config struct {
	// Logger receives debug logs for scans and netlink exchanges. If nil,
	// nothing is logged.
	Logger *zap.Logger

	// ScanPollInterval is the delay between scan status requests. If zero,
	// DefaultScanPollInterval is used.
	ScanPollInterval time.Duration

	// ScanTimeout bounds the time spent waiting for scan results. If zero,
	// DefaultScanTimeout is used.
	ScanTimeout time.Duration

	// ScanBufferSize is the initial size of the scan result buffer. If zero,
	// DefaultScanBufferSize is used.
	ScanBufferSize int

	// ScanBufferLimit is the largest scan result buffer which will be
	// allocated. If zero, or larger than DefaultScanBufferLimit,
	// DefaultScanBufferLimit is used.
	ScanBufferLimit int

	// ProcPath is the mount point of procfs. If empty, /proc is used.
	ProcPath string
}

// An ioctler issues Wireless Extensions ioctls over a control channel. Each
// call performs exactly one blocking exchange with the kernel.
type ioctler interface {
	Close() error
	ioctl(cmd uint16, ifname string, r *request) error
}

// A Client provides access to wireless interfaces using operating
// system-specific operations.
//
// A Client owns a single control channel. Concurrent exchanges over one
// Client may interleave, so callers that share a Client between goroutines
// must serialize their calls.
type Client struct {
	c      ioctler
	logger *zap.Logger

	pollInterval time.Duration
	scanTimeout  time.Duration
	bufSize      int
	bufLimit     int
	procPath     string

	// Replaced in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	dial  func() (genl, error)
	index func(name string) (int, error)
}

// New creates a new Client. If cfg is nil, the defaults documented on
// Config are used.
func New(cfg *Config) (*Client, error) {
	c, err := newIoctler()
	if err != nil {
		return nil, err
	}

	return newClient(c, cfg), nil
}

// newClient creates a Client around an existing ioctler.
func newClient(ioc ioctler, cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Client{
		c:            ioc,
		logger:       cfg.Logger,
		pollInterval: cfg.ScanPollInterval,
		scanTimeout:  cfg.ScanTimeout,
		bufSize:      cfg.ScanBufferSize,
		bufLimit:     cfg.ScanBufferLimit,
		procPath:     cfg.ProcPath,

		now:   time.Now,
		sleep: sleepContext,
		dial:  dialGenl,
		index: interfaceIndex,
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultScanPollInterval
	}
	if c.scanTimeout <= 0 {
		c.scanTimeout = DefaultScanTimeout
	}
	if c.bufLimit <= 0 || c.bufLimit > DefaultScanBufferLimit {
		c.bufLimit = DefaultScanBufferLimit
	}
	if c.bufSize <= 0 {
		c.bufSize = DefaultScanBufferSize
	}
	if c.bufSize > c.bufLimit {
		c.bufSize = c.bufLimit
	}
	if c.procPath == "" {
		c.procPath = "/proc"
	}

	return c
}

// Close releases resources used by a Client.
func (c *Client) Close() error {
	return c.c.Close()
}

// do issues a single ioctl, wrapping any failure with the command name.
func (c *Client) do(cmd uint16, ifname string, r *request) error {
	if err := c.c.ioctl(cmd, ifname, r); err != nil {
		return os.NewSyscallError(wext.Name(cmd), err)
	}

	return nil
}

// sleepContext waits for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
