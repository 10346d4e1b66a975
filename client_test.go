package wapi

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/josharian/native"
	"github.com/mdlayher/wapi/internal/wext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClientScanPollsUntilReady(t *testing.T) {
	mac := net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad}

	s := &scanServer{
		statuses: []error{syscall.EAGAIN, syscall.EAGAIN, syscall.E2BIG},
		results: stream(
			apEvent(mac),
			essidEvent("test", 1),
		),
	}

	c, clk := testClient(t, nil, s.ioctl)

	aps, err := c.Scan(context.Background(), "wlan0")
	if err != nil {
		t.Fatalf("failed to scan: %v", err)
	}

	want := []*AccessPoint{{
		BSSID:     mac,
		ESSID:     "test",
		ESSIDFlag: ESSIDOn,
		HasESSID:  true,
	}}

	if diff := cmp.Diff(want, aps); diff != "" {
		t.Fatalf("unexpected access points (-want +got):\n%s", diff)
	}

	if want, got := 1, s.inits; want != got {
		t.Fatalf("unexpected number of scan triggers:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := 3, s.polls; want != got {
		t.Fatalf("unexpected number of status polls:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := 3, clk.sleeps; want != got {
		t.Fatalf("unexpected number of sleeps:\n- want: %v\n-  got: %v", want, got)
	}
	if diff := cmp.Diff([]int{DefaultScanBufferSize}, s.sizes); diff != "" {
		t.Fatalf("unexpected collect buffer sizes (-want +got):\n%s", diff)
	}
}

func TestClientScanStatusSuccessIsReady(t *testing.T) {
	s := &scanServer{statuses: []error{nil}}
	c, _ := testClient(t, nil, s.ioctl)

	aps, err := c.Scan(context.Background(), "wlan0")
	if err != nil {
		t.Fatalf("failed to scan: %v", err)
	}

	if want, got := 1, s.polls; want != got {
		t.Fatalf("unexpected number of status polls:\n- want: %v\n-  got: %v", want, got)
	}
	if aps == nil || len(aps) != 0 {
		t.Fatalf("expected empty, non-nil results, but got: %v", aps)
	}
}

func TestClientScanTimeout(t *testing.T) {
	s := &scanServer{statuses: []error{syscall.EAGAIN}}
	c, clk := testClient(t, &Config{
		ScanPollInterval: 100 * time.Millisecond,
		ScanTimeout:      time.Second,
	}, s.ioctl)

	_, err := c.Scan(context.Background(), "wlan0")
	if !errors.Is(err, ErrScanTimeout) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", ErrScanTimeout, err)
	}

	if want, got := 10, s.polls; want != got {
		t.Fatalf("unexpected number of status polls:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := time.Second, clk.elapsed(); want != got {
		t.Fatalf("unexpected elapsed time:\n- want: %v\n-  got: %v", want, got)
	}
	if len(s.sizes) != 0 {
		t.Fatalf("expected no collect requests, but got %d", len(s.sizes))
	}
}

func TestClientScanInitError(t *testing.T) {
	s := &scanServer{initErr: syscall.EPERM}
	c, clk := testClient(t, nil, s.ioctl)

	_, err := c.Scan(context.Background(), "wlan0")
	if !errors.Is(err, syscall.EPERM) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", syscall.EPERM, err)
	}

	var serr *os.SyscallError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *os.SyscallError, but got: %T", err)
	}
	if want, got := "SIOCSIWSCAN", serr.Syscall; want != got {
		t.Fatalf("unexpected syscall name:\n- want: %v\n-  got: %v", want, got)
	}

	if s.polls != 0 || clk.sleeps != 0 {
		t.Fatalf("expected no polls after failed trigger, but got %d polls", s.polls)
	}
}

func TestClientScanStatusError(t *testing.T) {
	s := &scanServer{statuses: []error{syscall.EAGAIN, syscall.EIO}}
	c, _ := testClient(t, nil, s.ioctl)

	_, err := c.Scan(context.Background(), "wlan0")
	if !errors.Is(err, syscall.EIO) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", syscall.EIO, err)
	}

	if want, got := 2, s.polls; want != got {
		t.Fatalf("unexpected number of status polls:\n- want: %v\n-  got: %v", want, got)
	}
	if len(s.sizes) != 0 {
		t.Fatalf("expected no collect requests, but got %d", len(s.sizes))
	}
}

func TestClientScanCanceled(t *testing.T) {
	s := &scanServer{statuses: []error{syscall.EAGAIN}}
	c, _ := testClient(t, nil, s.ioctl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Scan(ctx, "wlan0")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", context.Canceled, err)
	}

	if want, got := 0, s.polls; want != got {
		t.Fatalf("unexpected number of status polls:\n- want: %v\n-  got: %v", want, got)
	}
}

func TestClientScanCollectGrowsBuffer(t *testing.T) {
	s := &scanServer{need: 4096}
	c, _ := testClient(t, &Config{ScanBufferSize: 1024}, s.ioctl)

	if _, err := c.ScanCollect("wlan0"); err != nil {
		t.Fatalf("failed to collect scan results: %v", err)
	}

	if diff := cmp.Diff([]int{1024, 2048, 4096}, s.sizes); diff != "" {
		t.Fatalf("unexpected collect buffer sizes (-want +got):\n%s", diff)
	}
}

func TestClientScanCollectTooLarge(t *testing.T) {
	s := &scanServer{need: 8192}
	c, _ := testClient(t, &Config{
		ScanBufferSize:  1024,
		ScanBufferLimit: 3000,
	}, s.ioctl)

	_, err := c.ScanCollect("wlan0")
	if !errors.Is(err, ErrScanTooLarge) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", ErrScanTooLarge, err)
	}

	if diff := cmp.Diff([]int{1024, 2048, 3000}, s.sizes); diff != "" {
		t.Fatalf("unexpected collect buffer sizes (-want +got):\n%s", diff)
	}
}

func TestClientScanCollectMalformed(t *testing.T) {
	s := &scanServer{results: modeEvent(uint32(ModeManaged))}
	c, _ := testClient(t, nil, s.ioctl)

	_, err := c.ScanCollect("wlan0")
	if !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", ErrMalformedEvent, err)
	}
}

func TestClientScanLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	s := &scanServer{statuses: []error{syscall.EAGAIN, syscall.E2BIG}}
	c, _ := testClient(t, &Config{Logger: zap.New(core)}, s.ioctl)

	if _, err := c.Scan(context.Background(), "wlan0"); err != nil {
		t.Fatalf("failed to scan: %v", err)
	}

	if want, got := 1, logs.FilterMessage("triggered scan").Len(); want != got {
		t.Fatalf("unexpected number of trigger logs:\n- want: %v\n-  got: %v", want, got)
	}

	polls := logs.FilterMessage("polled scan status").AllUntimed()
	if want, got := 2, len(polls); want != got {
		t.Fatalf("unexpected number of poll logs:\n- want: %v\n-  got: %v", want, got)
	}

	var statuses []string
	for _, e := range polls {
		statuses = append(statuses, e.ContextMap()["status"].(string))
	}

	if diff := cmp.Diff([]string{"not ready", "ready"}, statuses); diff != "" {
		t.Fatalf("unexpected logged statuses (-want +got):\n%s", diff)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := newClient(&testIoctler{}, &Config{
		ScanBufferSize:  1 << 20,
		ScanBufferLimit: 1 << 20,
	})

	if want, got := DefaultScanBufferLimit, c.bufLimit; want != got {
		t.Fatalf("unexpected buffer limit:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := DefaultScanBufferLimit, c.bufSize; want != got {
		t.Fatalf("unexpected buffer size:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := DefaultScanPollInterval, c.pollInterval; want != got {
		t.Fatalf("unexpected poll interval:\n- want: %v\n-  got: %v", want, got)
	}
	if want, got := DefaultScanTimeout, c.scanTimeout; want != got {
		t.Fatalf("unexpected scan timeout:\n- want: %v\n-  got: %v", want, got)
	}
}

func TestClientClose(t *testing.T) {
	ioc := &testIoctler{}
	if err := newClient(ioc, nil).Close(); err != nil {
		t.Fatalf("failed to close client: %v", err)
	}

	if !ioc.closed {
		t.Fatal("control channel was not closed")
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", context.Canceled, err)
	}

	if err := sleepContext(context.Background(), time.Nanosecond); err != nil {
		t.Fatalf("failed to sleep: %v", err)
	}
}

type ioctlFunc func(cmd uint16, ifname string, r *request) error

var _ ioctler = &testIoctler{}

// A testIoctler is an ioctler which hands each request to fn.
type testIoctler struct {
	fn     ioctlFunc
	closed bool
}

func (t *testIoctler) Close() error {
	t.closed = true
	return nil
}

func (t *testIoctler) ioctl(cmd uint16, ifname string, r *request) error {
	if t.fn == nil {
		return syscall.EOPNOTSUPP
	}

	return t.fn(cmd, ifname, r)
}

// A testClock is a fake clock advanced only by sleeping.
type testClock struct {
	start, now time.Time
	sleeps     int
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.sleeps++
	c.now = c.now.Add(d)
	return nil
}

func (c *testClock) elapsed() time.Duration { return c.now.Sub(c.start) }

func testClient(t *testing.T, cfg *Config, fn ioctlFunc) (*Client, *testClock) {
	t.Helper()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	clk := &testClock{start: start, now: start}

	c := newClient(&testIoctler{fn: fn}, cfg)
	c.now = clk.Now
	c.sleep = clk.Sleep
	c.dial = func() (genl, error) {
		t.Fatal("unexpected generic netlink dial")
		return nil, nil
	}
	c.index = func(_ string) (int, error) {
		t.Fatal("unexpected interface index lookup")
		return 0, nil
	}

	return c, clk
}

// A scanServer emulates the Wireless Extensions scan ioctls of a driver.
type scanServer struct {
	// Returned by the scan trigger.
	initErr error

	// Returned by successive status polls. The last value repeats.
	statuses []error

	// Scan results, and the buffer size required to retrieve them.
	results []byte
	need    int

	inits int
	polls int
	sizes []int
}

func (s *scanServer) ioctl(cmd uint16, _ string, r *request) error {
	switch cmd {
	case wext.SIOCSIWSCAN:
		s.inits++
		return s.initErr
	case wext.SIOCGIWRANGE:
		r.length = uint16(copy(r.buf, rangeReply(22)))
		return nil
	case wext.SIOCGIWSCAN:
		if r.length == 0 {
			i := s.polls
			if i >= len(s.statuses) {
				i = len(s.statuses) - 1
			}
			s.polls++

			return s.statuses[i]
		}

		s.sizes = append(s.sizes, len(r.buf))
		if len(r.buf) < s.need {
			return syscall.E2BIG
		}

		r.length = uint16(copy(r.buf, s.results))
		return nil
	default:
		return syscall.EOPNOTSUPP
	}
}

// rangeReply builds a struct iw_range reply with a frequency table.
func rangeReply(version int, freqs ...Freq) []byte {
	b := make([]byte, 568)
	b[rangeWECompiled] = byte(version)
	b[rangeWESource] = byte(version)
	native.Endian.PutUint16(b[rangeNumChannels:], uint16(len(freqs)))
	b[rangeNumFreq] = byte(len(freqs))

	for i, f := range freqs {
		var r request
		r.setFreq(f)
		copy(b[rangeFreq+8*i:], r.data[:8])
	}

	return b
}
