package clock

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidDuration indicates a countdown start with a non-positive total.
var ErrInvalidDuration = errors.New("countdown requires a positive duration")

// Handler receives countdown signals. Tick fires once per elapsed second
// while running and unpaused; Expire fires exactly once when the countdown
// reaches zero, after which the clock stops.
type Handler interface {
	Tick(remaining int)
	Expire()
}

// Clock is a pausable countdown driven by a ticker goroutine. It never
// counts below zero and never refires after expiry.
type Clock struct {
	handler  Handler
	interval time.Duration

	mu        sync.Mutex
	remaining int
	paused    bool
	running   bool
	done      chan struct{}
}

// New constructs a Clock ticking once per second.
func New(handler Handler) *Clock {
	return NewWithInterval(handler, time.Second)
}

// NewWithInterval constructs a Clock with a custom tick interval, used by
// tests to compress real time.
func NewWithInterval(handler Handler, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{handler: handler, interval: interval}
}

// Start begins a countdown from totalSeconds. A running countdown is
// replaced.
func (c *Clock) Start(totalSeconds int) error {
	if totalSeconds <= 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	c.stopLocked()
	c.remaining = totalSeconds
	c.paused = false
	c.running = true
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go c.run(done)
	return nil
}

// Pause suspends ticking; idempotent.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume continues ticking from the exact remaining value; idempotent.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Cancel stops all future signals. Safe in any state, including
// already-expired or never-started.
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Remaining returns the current countdown value in seconds.
func (c *Clock) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Paused reports whether the countdown is currently suspended.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Clock) stopLocked() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.running = false
}

func (c *Clock) run(done chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			remaining, fired, expired := c.step()
			if !fired {
				continue
			}
			if c.handler != nil {
				c.handler.Tick(remaining)
			}
			if expired {
				if c.handler != nil {
					c.handler.Expire()
				}
				return
			}
		}
	}
}

// step advances the countdown by one second unless paused or stopped.
func (c *Clock) step() (remaining int, fired, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused || !c.running || c.remaining <= 0 {
		return c.remaining, false, false
	}

	c.remaining--
	if c.remaining == 0 {
		c.running = false
		c.done = nil
		return 0, true, true
	}
	return c.remaining, true, false
}
