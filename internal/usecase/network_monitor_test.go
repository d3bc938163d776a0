package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	usecasemock "github.com/riskibarqy/billiards-tracker/internal/mocks/usecase"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/platform/notify"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

type fakeSource struct {
	mu        sync.Mutex
	available bool
	listeners []func(bool)
}

func (s *fakeSource) Current(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *fakeSource) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
	return func() {}
}

func (s *fakeSource) emit(available bool) {
	s.mu.Lock()
	s.available = available
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(available)
	}
}

type countingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRefresher) RefreshCurrentUser(context.Context) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

type scheduledTask struct {
	delay time.Duration
	run   func()
}

type manualClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []scheduledTask
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	c.tasks = append(c.tasks, scheduledTask{delay: d, run: f})
	c.mu.Unlock()
}

func (c *manualClock) RunAll() {
	c.mu.Lock()
	tasks := c.tasks
	c.tasks = nil
	c.mu.Unlock()
	for _, task := range tasks {
		task.run()
	}
}

func newMonitorFixture(t *testing.T, available bool) (*usecase.NetworkMonitor, *fakeSource, *usecasemock.AccountAPI, *countingRefresher, *manualClock, *notify.Recorder) {
	t.Helper()
	source := &fakeSource{available: available}
	api := usecasemock.NewAccountAPI(t)
	refresher := &countingRefresher{}
	clock := &manualClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	recorder := &notify.Recorder{}
	monitor := usecase.NewNetworkMonitor(source, api, refresher, usecase.NetworkMonitorConfig{
		SettleDelay:     time.Second,
		SupersedeWindow: 5 * time.Second,
		Notifier:        recorder,
		Logger:          logging.NewNop(),
		Now:             clock.Now,
		AfterFunc:       clock.AfterFunc,
	})
	monitor.Init(context.Background())
	return monitor, source, api, refresher, clock, recorder
}

func TestNetworkMonitor_RecoveryReconnectsAndRefreshes(t *testing.T) {
	t.Parallel()

	monitor, source, api, refresher, clock, recorder := newMonitorFixture(t, false)
	if monitor.IsConnected() {
		t.Fatalf("expected seeded state unavailable")
	}

	api.On("TestConnection", mock.Anything).Return(true).Once()

	source.emit(true)
	if len(clock.tasks) != 1 || clock.tasks[0].delay != time.Second {
		t.Fatalf("expected one reconnect scheduled after settle delay, got %+v", clock.tasks)
	}

	clock.Advance(time.Second)
	clock.RunAll()

	if refresher.calls != 1 {
		t.Fatalf("expected one user refresh, got %d", refresher.calls)
	}
	entries := recorder.Entries()
	if len(entries) != 1 || entries[0].Message != "network restored" {
		t.Fatalf("unexpected notifications: %+v", entries)
	}
}

func TestNetworkMonitor_SupersededReconnectAborts(t *testing.T) {
	t.Parallel()

	_, source, api, refresher, clock, _ := newMonitorFixture(t, false)
	api.On("TestConnection", mock.Anything).Return(true).Once()

	source.emit(true)
	clock.Advance(500 * time.Millisecond)
	source.emit(false)
	clock.Advance(100 * time.Millisecond)
	source.emit(true)

	clock.Advance(time.Second)
	clock.RunAll()

	if refresher.calls != 1 {
		t.Fatalf("expected only the newest transition to reconnect, got %d", refresher.calls)
	}
}

func TestNetworkMonitor_DropBeforeSettleAborts(t *testing.T) {
	t.Parallel()

	_, source, _, refresher, clock, _ := newMonitorFixture(t, false)

	source.emit(true)
	source.emit(false)
	clock.Advance(time.Second)
	clock.RunAll()

	if refresher.calls != 0 {
		t.Fatalf("expected no reconnect once network dropped, got %d", refresher.calls)
	}
}

func TestNetworkMonitor_AvailableToAvailableSchedulesNothing(t *testing.T) {
	t.Parallel()

	_, source, _, _, clock, _ := newMonitorFixture(t, true)
	source.emit(true)
	if len(clock.tasks) != 0 {
		t.Fatalf("expected no reconnect for available->available")
	}
}

func TestNetworkMonitor_TriggerReconnect(t *testing.T) {
	t.Parallel()

	monitor, source, api, _, _, _ := newMonitorFixture(t, true)
	api.On("TestConnection", mock.Anything).Return(true).Once()

	if !monitor.TriggerReconnect(context.Background()) {
		t.Fatalf("expected reconnect to succeed")
	}

	source.emit(false)
	if monitor.TriggerReconnect(context.Background()) {
		t.Fatalf("expected false while network unavailable")
	}
}

func TestNetworkMonitor_InitIsIdempotent(t *testing.T) {
	t.Parallel()

	monitor, source, _, _, _, _ := newMonitorFixture(t, true)
	monitor.Init(context.Background())
	if len(source.listeners) != 1 {
		t.Fatalf("expected single subscription, got %d", len(source.listeners))
	}
}
