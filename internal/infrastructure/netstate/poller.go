package netstate

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

const (
	defaultInterval    = 2 * time.Second
	defaultDialTimeout = time.Second
)

// Checker reports whether the host can reach the network right now.
type Checker func(ctx context.Context) bool

type PollerConfig struct {
	Interval    time.Duration
	ProbeAddr   string
	DialTimeout time.Duration
	Checker     Checker
	Logger      *logging.Logger
}

// Poller samples host connectivity on an interval and reports transitions to
// subscribers.
type Poller struct {
	interval time.Duration
	check    Checker
	logger   *logging.Logger
	subs     subscribers

	mu        sync.Mutex
	known     bool
	available bool
	cancel    context.CancelFunc
	loop      *conc.WaitGroup
}

func NewPoller(cfg PollerConfig) *Poller {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	check := cfg.Checker
	if check == nil {
		if cfg.ProbeAddr != "" {
			check = DialCheck(cfg.ProbeAddr, cfg.DialTimeout)
		} else {
			check = InterfaceCheck
		}
	}

	return &Poller{
		interval: interval,
		check:    check,
		logger:   logger,
	}
}

// Current samples connectivity now. A change from the last sample is emitted.
func (p *Poller) Current(ctx context.Context) bool {
	available := p.check(ctx)
	p.observe(available)
	return available
}

func (p *Poller) Subscribe(fn func(bool)) func() {
	return p.subs.add(fn)
}

// Start runs the sampling loop until Stop is called or ctx ends. Calling Start
// on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loop = conc.NewWaitGroup()
	loop := p.loop
	p.mu.Unlock()

	loop.Go(func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				p.observe(p.check(loopCtx))
			}
		}
	})
}

func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, loop := p.cancel, p.loop
	p.cancel, p.loop = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	loop.Wait()
}

func (p *Poller) observe(available bool) {
	p.mu.Lock()
	changed := p.known && p.available != available
	p.known = true
	p.available = available
	p.mu.Unlock()

	if !changed {
		return
	}
	p.logger.Info("host connectivity changed", "available", available)
	p.subs.emit(available)
}

// InterfaceCheck reports true when some non-loopback interface is up and has
// an address.
func InterfaceCheck(context.Context) bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// DialCheck reports true when a TCP connection to addr succeeds within timeout.
func DialCheck(addr string, timeout time.Duration) Checker {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return func(ctx context.Context) bool {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
}
