package store

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is the debounce window of the cloud sync.
const DefaultQuietPeriod = 2 * time.Second

// SyncBridge debounces cloud writes: every Trigger cancels the pending timer
// and arms a new one, so a burst of edits produces a single call to fire once
// the quiet period has elapsed. Only one timer is live at a time; a write
// that has already started cannot be cancelled.
type SyncBridge struct {
	mu      sync.Mutex
	quiet   time.Duration
	fire    func()
	timer   *time.Timer
	gen     uint64
	pending bool
	closed  bool
}

// NewSyncBridge returns a bridge calling fire after quiet of inactivity.
func NewSyncBridge(quiet time.Duration, fire func()) *SyncBridge {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &SyncBridge{quiet: quiet, fire: fire}
}

// Trigger (re)arms the debounce timer.
func (b *SyncBridge) Trigger() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.pending = true
	b.timer = time.AfterFunc(b.quiet, func() { b.elapsed(gen) })
}

// elapsed runs on the timer goroutine. A callback from a superseded timer
// that slipped past Stop is discarded by the generation check.
func (b *SyncBridge) elapsed(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || !b.pending || b.closed {
		b.mu.Unlock()
		return
	}
	b.pending = false
	b.timer = nil
	b.mu.Unlock()

	b.fire()
}

// Pending reports whether a timer is armed.
func (b *SyncBridge) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Flush fires a pending sync immediately and reports whether it did.
func (b *SyncBridge) Flush() bool {
	b.mu.Lock()
	if !b.pending || b.closed {
		b.mu.Unlock()
		return false
	}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.pending = false
	b.mu.Unlock()

	b.fire()
	return true
}

// Stop cancels any pending sync and disables the bridge.
func (b *SyncBridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.pending = false
	b.closed = true
}
