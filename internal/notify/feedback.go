package notify

import (
	"log/slog"

	"fredagsliga-service/internal/logging"
)

// LogFeedback announces match endings through the logger. Sound and
// vibration belong to the UI layer; this keeps the contract observable
// server-side.
type LogFeedback struct {
	logger *slog.Logger
}

// NewLogFeedback constructs a LogFeedback.
func NewLogFeedback(logger *slog.Logger) *LogFeedback {
	return &LogFeedback{logger: logger}
}

// MatchEnded logs the match-end signal.
func (f *LogFeedback) MatchEnded() {
	logging.Info(f.logger, "match ended")
}
