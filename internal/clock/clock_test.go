package clock

import (
	"sync"
	"testing"
	"time"
)

const testInterval = 2 * time.Millisecond

type captureHandler struct {
	mu      sync.Mutex
	ticks   []int
	expires int
	expired chan struct{}
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{expired: make(chan struct{}, 1)}
}

func (h *captureHandler) Tick(remaining int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticks = append(h.ticks, remaining)
}

func (h *captureHandler) Expire() {
	h.mu.Lock()
	h.expires++
	h.mu.Unlock()
	select {
	case h.expired <- struct{}{}:
	default:
	}
}

func (h *captureHandler) snapshot() ([]int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ticks := make([]int, len(h.ticks))
	copy(ticks, h.ticks)
	return ticks, h.expires
}

func waitForExpiry(t *testing.T, h *captureHandler) {
	t.Helper()
	select {
	case <-h.expired:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for expiry")
	}
}

func TestStartRejectsNonPositiveDuration(t *testing.T) {
	c := New(newCaptureHandler())

	if err := c.Start(0); err != ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration for 0, got %v", err)
	}
	if err := c.Start(-5); err != ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration for -5, got %v", err)
	}
}

func TestCountdownReachesZeroAndExpiresOnce(t *testing.T) {
	h := newCaptureHandler()
	c := NewWithInterval(h, testInterval)

	if err := c.Start(3); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForExpiry(t, h)

	// Give any stray signals a chance to arrive.
	time.Sleep(10 * testInterval)

	ticks, expires := h.snapshot()
	want := []int{2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("expected ticks %v, got %v", want, ticks)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("expected ticks %v, got %v", want, ticks)
		}
	}
	if expires != 1 {
		t.Fatalf("expected exactly one expiry, got %d", expires)
	}
	if got := c.Remaining(); got != 0 {
		t.Fatalf("expected remaining 0 after expiry, got %d", got)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	h := newCaptureHandler()
	c := NewWithInterval(h, testInterval)

	if err := c.Start(1000); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Pause()
	c.Pause() // idempotent

	frozen := c.Remaining()
	time.Sleep(20 * testInterval)
	if got := c.Remaining(); got != frozen {
		t.Fatalf("expected remaining to stay at %d while paused, got %d", frozen, got)
	}

	c.Resume()
	deadline := time.Now().Add(2 * time.Second)
	for c.Remaining() >= frozen {
		if time.Now().After(deadline) {
			t.Fatalf("expected countdown to continue after resume")
		}
		time.Sleep(testInterval)
	}
	c.Cancel()
}

func TestCancelStopsSignals(t *testing.T) {
	h := newCaptureHandler()
	c := NewWithInterval(h, testInterval)

	if err := c.Start(1000); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Cancel()

	before, _ := h.snapshot()
	time.Sleep(20 * testInterval)
	after, expires := h.snapshot()

	if len(after) != len(before) {
		t.Fatalf("expected no ticks after cancel, got %d new", len(after)-len(before))
	}
	if expires != 0 {
		t.Fatalf("expected no expiry after cancel, got %d", expires)
	}
}

func TestCancelSafeInAnyState(t *testing.T) {
	c := New(newCaptureHandler())

	// Never started.
	c.Cancel()

	h := newCaptureHandler()
	c = NewWithInterval(h, testInterval)
	if err := c.Start(1); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForExpiry(t, h)

	// Already expired.
	c.Cancel()
	c.Cancel()
}
