package metrics

import (
	"sync"
	"time"
)

type sessionStats struct {
	transitions      int
	goals            int
	revokedGoals     int
	matchesCompleted int
	storeOps         int
	storeErrors      int
}

// Recorder captures lightweight, in-memory metrics about the session engine
// and mirrors them to otel instruments when telemetry is enabled. All methods
// are safe on a nil receiver.
type Recorder struct {
	mu    sync.Mutex
	stats sessionStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordTransition counts a state machine transition.
func (r *Recorder) RecordTransition(from, to string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.transitions++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTransition(from, to)
	}
}

// RecordGoal counts a goal credited to a team; revoked marks a decrement.
func (r *Recorder) RecordGoal(team string, revoked bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if revoked {
		r.stats.revokedGoals++
	} else {
		r.stats.goals++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGoal(team, revoked)
	}
}

// RecordMatchCompleted counts a concluded match by outcome kind.
func (r *Recorder) RecordMatchCompleted(outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.matchesCompleted++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMatchCompleted(outcome, duration)
	}
}

// RecordStoreOp counts a persistence operation and its outcome.
func (r *Recorder) RecordStoreOp(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.storeOps++
	if err != nil {
		r.stats.storeErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOp(op, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Transitions returns the total transitions recorded.
func (r *Recorder) Transitions() int {
	return r.snapshot().transitions
}

// Goals returns the total goals recorded.
func (r *Recorder) Goals() int {
	return r.snapshot().goals
}

// RevokedGoals returns the total goal revocations recorded.
func (r *Recorder) RevokedGoals() int {
	return r.snapshot().revokedGoals
}

// MatchesCompleted returns the total matches concluded.
func (r *Recorder) MatchesCompleted() int {
	return r.snapshot().matchesCompleted
}

// StoreOps returns the total persistence operations recorded.
func (r *Recorder) StoreOps() int {
	return r.snapshot().storeOps
}

// StoreErrors returns the total failed persistence operations.
func (r *Recorder) StoreErrors() int {
	return r.snapshot().storeErrors
}

func (r *Recorder) snapshot() sessionStats {
	if r == nil {
		return sessionStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
