package billiardsapi

import (
	"testing"
	"time"
)

func TestNewEndpointPool(t *testing.T) {
	t.Parallel()

	if _, err := NewEndpointPool([]string{" ", ""}); err == nil {
		t.Fatalf("expected error for empty pool")
	}

	pool, err := NewEndpointPool([]string{"https://a.example/", "https://b.example"})
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if _, current := pool.Current(); current != "https://a.example" {
		t.Fatalf("expected trailing slash trimmed, got %s", current)
	}
}

func TestEndpointPool_AdvanceAndSetCurrent(t *testing.T) {
	t.Parallel()

	pool, _ := NewEndpointPool([]string{"a", "b", "c"})
	if next := pool.Advance(); next != "b" {
		t.Fatalf("expected b, got %s", next)
	}
	pool.Advance()
	if next := pool.Advance(); next != "a" {
		t.Fatalf("expected wrap to a, got %s", next)
	}
	if pool.SetCurrent(3) || pool.SetCurrent(-1) {
		t.Fatalf("expected out-of-range index rejected")
	}
	if !pool.SetCurrent(2) {
		t.Fatalf("expected index 2 accepted")
	}
	if idx, url := pool.Current(); idx != 2 || url != "c" {
		t.Fatalf("unexpected current: %d %s", idx, url)
	}
}

func TestEndpointPool_FreshWithin(t *testing.T) {
	t.Parallel()

	pool, _ := NewEndpointPool([]string{"a"})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if pool.FreshWithin(time.Minute, now) {
		t.Fatalf("disconnected pool must not be fresh")
	}

	pool.MarkConnected(now)
	if !pool.FreshWithin(time.Minute, now.Add(59*time.Second)) {
		t.Fatalf("expected fresh within window")
	}
	if pool.FreshWithin(time.Minute, now.Add(61*time.Second)) {
		t.Fatalf("expected stale after window")
	}

	pool.MarkDisconnected()
	if pool.Connected() {
		t.Fatalf("expected disconnected")
	}
}
