package billiardsapi

import (
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// EndpointPool is the ordered list of base URLs plus the connection state shared
// by the request client and the network monitor.
type EndpointPool struct {
	mu          sync.Mutex
	urls        []string
	current     int
	connected   bool
	connecting  bool
	lastSuccess time.Time
}

func NewEndpointPool(urls []string) (*EndpointPool, error) {
	cleaned := make([]string, 0, len(urls))
	for _, raw := range urls {
		value := strings.TrimRight(strings.TrimSpace(raw), "/")
		if value == "" {
			continue
		}
		cleaned = append(cleaned, value)
	}
	if len(cleaned) == 0 {
		return nil, crerr.New("endpoint pool requires at least one base url")
	}
	return &EndpointPool{urls: cleaned}, nil
}

func (p *EndpointPool) URLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.urls))
	copy(out, p.urls)
	return out
}

func (p *EndpointPool) Current() (int, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.urls[p.current]
}

// Advance moves to the next base URL, wrapping at the end.
func (p *EndpointPool) Advance() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = (p.current + 1) % len(p.urls)
	return p.urls[p.current]
}

// SetCurrent ignores out-of-range indexes.
func (p *EndpointPool) SetCurrent(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.urls) {
		return false
	}
	p.current = index
	return true
}

func (p *EndpointPool) MarkConnected(at time.Time) {
	p.mu.Lock()
	p.connected = true
	p.lastSuccess = at
	p.mu.Unlock()
}

func (p *EndpointPool) MarkDisconnected() {
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
}

func (p *EndpointPool) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *EndpointPool) Connecting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connecting
}

// FreshWithin reports a connected pool whose last success is younger than window.
func (p *EndpointPool) FreshWithin(window time.Duration, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected && now.Sub(p.lastSuccess) < window
}

func (p *EndpointPool) setConnecting(value bool) {
	p.mu.Lock()
	p.connecting = value
	p.mu.Unlock()
}
