package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/platform/notify"
)

const (
	defaultReconnectSettle    = time.Second
	defaultReconnectSupersede = 5 * time.Second

	msgNetworkRestored = "network restored"
)

// ConnectionTester is the piece of the account client the monitor drives.
type ConnectionTester interface {
	TestConnection(ctx context.Context) bool
}

// CurrentUserRefresher reloads the signed-in user after reconnecting.
type CurrentUserRefresher interface {
	RefreshCurrentUser(ctx context.Context)
}

type NetworkMonitorConfig struct {
	SettleDelay     time.Duration
	SupersedeWindow time.Duration
	Notifier        notify.Notifier
	Logger          *logging.Logger

	// Now and AfterFunc default to the time package.
	Now       func() time.Time
	AfterFunc func(d time.Duration, f func())
}

// NetworkMonitor follows host connectivity and reconnects the account client
// once the network comes back.
type NetworkMonitor struct {
	source    ConnectivitySource
	tester    ConnectionTester
	refresher CurrentUserRefresher
	notifier  notify.Notifier
	logger    *logging.Logger
	settle    time.Duration
	supersede time.Duration
	now       func() time.Time
	afterFunc func(d time.Duration, f func())

	mu          sync.Mutex
	available   bool
	lastChange  time.Time
	initialized bool
	baseCtx     context.Context
	unsubscribe func()
}

func NewNetworkMonitor(source ConnectivitySource, tester ConnectionTester, refresher CurrentUserRefresher, cfg NetworkMonitorConfig) *NetworkMonitor {
	m := &NetworkMonitor{
		source:    source,
		tester:    tester,
		refresher: refresher,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
		settle:    cfg.SettleDelay,
		supersede: cfg.SupersedeWindow,
		now:       cfg.Now,
		afterFunc: cfg.AfterFunc,
		available: true,
	}
	if m.notifier == nil {
		m.notifier = notify.Nop{}
	}
	if m.logger == nil {
		m.logger = logging.Default()
	}
	if m.settle <= 0 {
		m.settle = defaultReconnectSettle
	}
	if m.supersede <= 0 {
		m.supersede = defaultReconnectSupersede
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.afterFunc == nil {
		m.afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return m
}

// Init seeds the state and subscribes to changes. Later calls are no-ops.
func (m *NetworkMonitor) Init(ctx context.Context) {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return
	}
	m.initialized = true
	m.baseCtx = context.WithoutCancel(ctx)
	m.mu.Unlock()

	available := m.source.Current(ctx)
	m.mu.Lock()
	m.available = available
	m.mu.Unlock()
	m.logger.InfoContext(ctx, "network monitor started", "available", available)

	unsubscribe := m.source.Subscribe(m.handleChange)
	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

func (m *NetworkMonitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// TriggerReconnect runs a connection test unless the network is known to be down.
func (m *NetworkMonitor) TriggerReconnect(ctx context.Context) bool {
	if !m.IsConnected() {
		m.logger.WarnContext(ctx, "network unavailable, skip reconnect")
		return false
	}
	return m.tester.TestConnection(ctx)
}

func (m *NetworkMonitor) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *NetworkMonitor) handleChange(available bool) {
	changedAt := m.now()

	m.mu.Lock()
	previous := m.available
	m.available = available
	m.lastChange = changedAt
	ctx := m.baseCtx
	m.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	m.logger.InfoContext(ctx, "network state changed", "available", available)

	if !previous && available {
		m.afterFunc(m.settle, func() { m.reconnect(ctx, changedAt) })
	}
}

// reconnect gives up when the network dropped again or a newer transition
// happened inside the supersession window; that transition owns the retry.
func (m *NetworkMonitor) reconnect(ctx context.Context, scheduledAt time.Time) {
	m.mu.Lock()
	available := m.available
	lastChange := m.lastChange
	m.mu.Unlock()

	if !available {
		m.logger.DebugContext(ctx, "skip reconnect, network unavailable")
		return
	}
	if lastChange.After(scheduledAt) && m.now().Sub(lastChange) < m.supersede {
		m.logger.DebugContext(ctx, "skip reconnect, superseded by newer network change")
		return
	}

	if !m.tester.TestConnection(ctx) {
		m.logger.WarnContext(ctx, "reconnect to account api failed")
		return
	}

	m.logger.InfoContext(ctx, "reconnected to account api")
	if m.refresher != nil {
		m.refresher.RefreshCurrentUser(ctx)
	}
	m.notifier.Notify(ctx, notify.LevelSuccess, msgNetworkRestored)
}
