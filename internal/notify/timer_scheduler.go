package notify

import (
	"log/slog"
	"sync"
	"time"

	"fredagsliga-service/internal/logging"
)

// TimerScheduler is an in-process Scheduler backed by time.AfterFunc. It
// stands in for a platform notification service: the fired alarm is logged
// rather than pushed to a device.
type TimerScheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	next    Token
	current Token
	timer   *time.Timer
}

// NewTimerScheduler constructs a TimerScheduler.
func NewTimerScheduler(logger *slog.Logger) *TimerScheduler {
	return &TimerScheduler{logger: logger}
}

// Schedule arms a one-shot alarm after the given number of seconds,
// replacing any outstanding alarm.
func (s *TimerScheduler) Schedule(afterSeconds int) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	if afterSeconds <= 0 {
		return 0
	}

	s.next++
	token := s.next
	s.current = token
	s.timer = time.AfterFunc(time.Duration(afterSeconds)*time.Second, func() {
		s.fire(token)
	})
	return token
}

// Cancel disarms the alarm identified by token. Stale tokens are ignored.
func (s *TimerScheduler) Cancel(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == 0 || token != s.current {
		return
	}
	s.cancelLocked()
}

func (s *TimerScheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = 0
}

func (s *TimerScheduler) fire(token Token) {
	s.mu.Lock()
	if token != s.current {
		s.mu.Unlock()
		return
	}
	s.cancelLocked()
	s.mu.Unlock()

	logging.Info(s.logger, "match time is up")
}
