package wapi

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/mdlayher/wapi/internal/wext"
	"go.uber.org/zap"
)

// A ScanStatus reports whether the results of a triggered scan are
// available.
type ScanStatus int

const (
	ScanNotReady ScanStatus = iota
	ScanReady
)

// String returns the string representation of a ScanStatus.
func (s ScanStatus) String() string {
	switch s {
	case ScanNotReady:
		return "not ready"
	case ScanReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Scan triggers a scan on ifname, waits for its results and decodes them.
//
// Scan status is checked every Config.ScanPollInterval. If results are not
// available within Config.ScanTimeout, ErrScanTimeout is returned and the
// caller may start a new scan. Canceling ctx stops waiting and returns
// ctx.Err().
func (c *Client) Scan(ctx context.Context, ifname string) ([]*AccessPoint, error) {
	if err := c.ScanInit(ifname); err != nil {
		return nil, err
	}

	deadline := c.now().Add(c.scanTimeout)
	for polls := 1; ; polls++ {
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}

		status, err := c.ScanStatus(ifname)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("polled scan status",
			zap.String("ifname", ifname),
			zap.Int("poll", polls),
			zap.Stringer("status", status),
		)

		if status == ScanReady {
			return c.ScanCollect(ifname)
		}

		if !c.now().Before(deadline) {
			return nil, ErrScanTimeout
		}
	}
}

// ScanInit triggers a scan on ifname. It commonly fails with a permission
// error for unprivileged callers.
func (c *Client) ScanInit(ifname string) error {
	if err := c.do(wext.SIOCSIWSCAN, ifname, pointRequest(nil, 0, 0)); err != nil {
		return err
	}

	c.logger.Debug("triggered scan", zap.String("ifname", ifname))
	return nil
}

// ScanStatus reports whether the results of a scan triggered by ScanInit are
// available.
func (c *Client) ScanStatus(ifname string) (ScanStatus, error) {
	// A zero length request which the kernel rejects as too small means
	// results are waiting.
	err := c.do(wext.SIOCGIWSCAN, ifname, pointRequest(make([]byte, 1), 0, 0))
	switch {
	case err == nil, errors.Is(err, syscall.E2BIG):
		return ScanReady, nil
	case errors.Is(err, syscall.EAGAIN):
		return ScanNotReady, nil
	default:
		return 0, err
	}
}

// ScanCollect retrieves and decodes the results of a completed scan on
// ifname. The result buffer starts at Config.ScanBufferSize bytes and doubles
// each time the kernel reports it too small, up to Config.ScanBufferLimit.
//
// Access points are returned most recently decoded first.
func (c *Client) ScanCollect(ifname string) ([]*AccessPoint, error) {
	version, err := c.WEVersion(ifname)
	if err != nil {
		return nil, err
	}

	size := c.bufSize
	for {
		buf := make([]byte, size)
		r := pointRequest(buf, uint16(size), 0)

		err := c.do(wext.SIOCGIWSCAN, ifname, r)
		if errors.Is(err, syscall.E2BIG) {
			if size >= c.bufLimit {
				return nil, ErrScanTooLarge
			}

			size *= 2
			if size > c.bufLimit {
				size = c.bufLimit
			}

			c.logger.Debug("growing scan buffer",
				zap.String("ifname", ifname),
				zap.Int("size", size),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		if r.length == 0 {
			return []*AccessPoint{}, nil
		}

		n := int(r.length)
		if n > len(buf) {
			n = len(buf)
		}

		aps, err := parseScanResults(buf[:n], version)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("collected scan results",
			zap.String("ifname", ifname),
			zap.Int("bytes", n),
			zap.Int("access_points", len(aps)),
		)

		return aps, nil
	}
}
