package store

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSyncBridge_TriggerBurstFiresOnce(t *testing.T) {
	var calls atomic.Int32
	b := NewSyncBridge(40*time.Millisecond, func() { calls.Add(1) })
	defer b.Stop()

	for i := 0; i < 5; i++ {
		b.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	if !b.Pending() {
		t.Fatalf("expected pending sync")
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
	if b.Pending() {
		t.Fatalf("expected nothing pending after fire")
	}
}

func TestSyncBridge_FlushAndStop(t *testing.T) {
	var calls atomic.Int32
	b := NewSyncBridge(time.Hour, func() { calls.Add(1) })

	if b.Flush() {
		t.Fatalf("flush with nothing pending must be a no-op")
	}
	b.Trigger()
	if !b.Flush() || calls.Load() != 1 {
		t.Fatalf("flush did not fire")
	}

	b.Trigger()
	b.Stop()
	b.Trigger()
	if b.Pending() || b.Flush() {
		t.Fatalf("stopped bridge must stay idle")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestSyncBridge_DefaultQuietPeriod(t *testing.T) {
	b := NewSyncBridge(0, func() {})
	defer b.Stop()
	if b.quiet != DefaultQuietPeriod {
		t.Fatalf("expected %v, got %v", DefaultQuietPeriod, b.quiet)
	}
}
