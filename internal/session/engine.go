package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/history"
	"fredagsliga-service/internal/logging"
	"fredagsliga-service/internal/metrics"
	"fredagsliga-service/internal/notify"
	"fredagsliga-service/internal/teams"
)

// Duration bounds for a single match, in minutes.
const (
	MinDurationMinutes     = 1
	MaxDurationMinutes     = 30
	DefaultDurationMinutes = 5
)

// MatchClock is the countdown collaborator driving the in-progress state.
type MatchClock interface {
	Start(totalSeconds int) error
	Pause()
	Resume()
	Cancel()
}

// Engine is the session state machine: team selection, the timed match,
// tie-break adjudication, result handling, and the winner-stays rotation.
//
// All operations serialize on one mutex, so clock signals and user actions
// are applied strictly one at a time. A stale expiry arriving after the
// state has moved on is ignored.
type Engine struct {
	registry  *teams.Registry
	history   *history.Store
	clock     MatchClock
	scheduler notify.Scheduler
	feedback  notify.Feedback
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	mu               sync.Mutex
	screen           Screen
	playing          [2]domain.Team
	hasPair          bool
	waiting          []domain.Team
	durationMinutes  int
	remainingSeconds int
	paused           bool
	scores           map[domain.Team]int
	outcome          *domain.Outcome
	token            notify.Token
}

// New constructs an Engine in the team-selection state.
func New(registry *teams.Registry, historyStore *history.Store, clk MatchClock, scheduler notify.Scheduler, feedback notify.Feedback, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	return NewWithDefaultDuration(registry, historyStore, clk, scheduler, feedback, logger, recorder, DefaultDurationMinutes)
}

// NewWithDefaultDuration constructs an Engine whose pre-match duration
// starts from the configured value. Non-positive values fall back to the
// built-in default; anything else is clamped to the allowed range.
func NewWithDefaultDuration(registry *teams.Registry, historyStore *history.Store, clk MatchClock, scheduler notify.Scheduler, feedback notify.Feedback, logger *slog.Logger, recorder *metrics.Recorder, minutes int) *Engine {
	if minutes <= 0 {
		minutes = DefaultDurationMinutes
	}
	return &Engine{
		registry:        registry,
		history:         historyStore,
		clock:           clk,
		scheduler:       scheduler,
		feedback:        feedback,
		logger:          logger,
		metrics:         recorder,
		now:             time.Now,
		screen:          ScreenSelectingTeams,
		durationMinutes: clampDuration(minutes),
		scores:          domain.ZeroScores(),
	}
}

// SelectPair picks the two teams for the next match. The rest of the active
// set becomes the waiting queue in its original order.
func (e *Engine) SelectPair(teamA, teamB domain.Team) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenSelectingTeams {
		return ErrInvalidTransition
	}
	if teamA == teamB || !teamA.Valid() || !teamB.Valid() {
		return ErrInvalidSelection
	}

	active := e.registry.Active()
	if !containsTeam(active, teamA) || !containsTeam(active, teamB) {
		return ErrInvalidSelection
	}

	waiting := make([]domain.Team, 0, len(active)-2)
	for _, team := range active {
		if team != teamA && team != teamB {
			waiting = append(waiting, team)
		}
	}

	e.playing = [2]domain.Team{teamA, teamB}
	e.hasPair = true
	e.waiting = waiting
	e.transition(ScreenSettingDuration)
	return nil
}

// SetDuration configures the match length, clamped to [1,30] minutes.
func (e *Engine) SetDuration(minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenSettingDuration {
		return ErrInvalidTransition
	}

	e.durationMinutes = clampDuration(minutes)
	return nil
}

func clampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return minutes
}

// StartMatch begins the timed match: scores reset, clock started, expiry
// notification scheduled.
func (e *Engine) StartMatch() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenSettingDuration {
		return ErrInvalidTransition
	}

	total := e.durationMinutes * 60
	if err := e.clock.Start(total); err != nil {
		return err
	}

	e.scores = domain.ZeroScores()
	e.remainingSeconds = total
	e.paused = false
	e.outcome = nil
	e.scheduleLocked(total)
	e.transition(ScreenInProgress)
	logging.Info(e.logger, "match started",
		logging.FieldTeam, e.playing[0],
		"opponent", e.playing[1],
		logging.FieldRemaining, total,
	)
	return nil
}

// RecordGoal credits one goal to a playing team. Rejected while paused or
// outside the in-progress state.
func (e *Engine) RecordGoal(team domain.Team) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenInProgress || e.paused {
		return ErrInvalidTransition
	}
	if !e.isPlaying(team) {
		return ErrInvalidSelection
	}

	e.scores[team]++
	e.metrics.RecordGoal(string(team), false)
	return nil
}

// RevokeGoal removes one goal from a playing team. A zero score stays at
// zero; underflow is not an error.
func (e *Engine) RevokeGoal(team domain.Team) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenInProgress || e.paused {
		return ErrInvalidTransition
	}
	if !e.isPlaying(team) {
		return ErrInvalidSelection
	}

	if e.scores[team] > 0 {
		e.scores[team]--
		e.metrics.RecordGoal(string(team), true)
	}
	return nil
}

// TogglePause suspends or resumes the match. Pausing cancels the pending
// expiry notification; resuming reschedules it for the exact remaining time
// so the alarm and the clock never drift apart.
func (e *Engine) TogglePause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenInProgress {
		return ErrInvalidTransition
	}

	if e.paused {
		e.paused = false
		e.clock.Resume()
		e.scheduleLocked(e.remainingSeconds)
		logging.Info(e.logger, "match resumed", logging.FieldRemaining, e.remainingSeconds)
	} else {
		e.paused = true
		e.clock.Pause()
		e.cancelNotificationLocked()
		logging.Info(e.logger, "match paused", logging.FieldRemaining, e.remainingSeconds)
	}
	return nil
}

// Tick adopts the clock's reported remaining time. The clock owns the
// countdown; mirroring its value keeps the snapshot and the expiry alarm
// from drifting when a pause lands while a tick is in flight. Ignored
// unless a match is in progress and unpaused.
func (e *Engine) Tick(remaining int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenInProgress || e.paused {
		return
	}

	if remaining < 0 {
		remaining = 0
	}
	e.remainingSeconds = remaining
	if e.remainingSeconds == 0 {
		e.concludeLocked()
	}
}

// Expire handles the clock's terminal signal. Stale signals arriving after
// the match already concluded are dropped.
func (e *Engine) Expire() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenInProgress {
		return
	}
	e.remainingSeconds = 0
	e.concludeLocked()
}

// ResolveTieBreak records the sudden-death winner. The scores persisted are
// the ones standing at expiry; the tie-break itself credits no goals.
func (e *Engine) ResolveTieBreak(winner domain.Team) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenTieBreak {
		return ErrInvalidTransition
	}
	if !e.isPlaying(winner) {
		return ErrInvalidSelection
	}

	loser := e.playing[0]
	if loser == winner {
		loser = e.playing[1]
	}

	e.finishMatchLocked(winner, loser, metrics.OutcomeSuddenDeath)
	return nil
}

// AdvanceToNextMatch rotates the session: the winner stays on, the next
// waiting team comes in, and the loser rejoins at the tail of the queue.
// With an empty queue the session returns to team selection.
func (e *Engine) AdvanceToNextMatch() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.screen != ScreenResult || e.outcome == nil {
		return ErrInvalidTransition
	}

	if len(e.waiting) == 0 {
		e.resetLocked()
		e.transition(ScreenSelectingTeams)
		return nil
	}

	next := e.waiting[0]
	rest := make([]domain.Team, 0, len(e.waiting))
	rest = append(rest, e.waiting[1:]...)
	e.waiting = append(rest, e.outcome.Loser)
	e.playing = [2]domain.Team{e.outcome.Winner, next}
	e.outcome = nil
	e.transition(ScreenSettingDuration)
	return nil
}

// Quit abandons the session: the pending notification is cancelled, the
// clock stopped, and in-progress scores are discarded without persisting.
func (e *Engine) Quit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.screen {
	case ScreenInProgress, ScreenTieBreak, ScreenResult:
	default:
		return ErrInvalidTransition
	}

	e.cancelNotificationLocked()
	e.clock.Cancel()
	e.resetLocked()
	e.transition(ScreenSelectingTeams)
	logging.Info(e.logger, "session quit")
	return nil
}

// Snapshot returns a copy of the current session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Screen:           e.screen,
		Waiting:          append([]domain.Team(nil), e.waiting...),
		DurationMinutes:  e.durationMinutes,
		RemainingSeconds: e.remainingSeconds,
		Paused:           e.paused,
		Scores:           make(map[domain.Team]int, len(e.scores)),
	}
	for team, score := range e.scores {
		snap.Scores[team] = score
	}
	if e.hasPair {
		snap.Playing = []domain.Team{e.playing[0], e.playing[1]}
	}
	if e.outcome != nil {
		outcome := *e.outcome
		snap.Outcome = &outcome
	}
	return snap
}

// Snapshot is a read-only view of the session state.
type Snapshot struct {
	Screen           Screen              `json:"screen"`
	Playing          []domain.Team       `json:"playing,omitempty"`
	Waiting          []domain.Team       `json:"waiting"`
	DurationMinutes  int                 `json:"durationMinutes"`
	RemainingSeconds int                 `json:"remainingSeconds"`
	Paused           bool                `json:"paused"`
	Scores           map[domain.Team]int `json:"scores"`
	Outcome          *domain.Outcome     `json:"outcome,omitempty"`
}

// concludeLocked handles natural expiry: equal scores go to the tie-break,
// otherwise the match is finished and recorded. Fires the match-end
// feedback exactly once; the tie-break continuation does not re-fire it.
func (e *Engine) concludeLocked() {
	e.cancelNotificationLocked()
	e.clock.Cancel()
	if e.feedback != nil {
		e.feedback.MatchEnded()
	}

	scoreA := e.scores[e.playing[0]]
	scoreB := e.scores[e.playing[1]]

	if scoreA == scoreB {
		e.transition(ScreenTieBreak)
		logging.Info(e.logger, "match drawn, sudden death",
			logging.FieldTeam, e.playing[0],
			"opponent", e.playing[1],
			logging.FieldCount, scoreA,
		)
		return
	}

	winner, loser := e.playing[0], e.playing[1]
	if scoreB > scoreA {
		winner, loser = loser, winner
	}
	e.finishMatchLocked(winner, loser, metrics.OutcomeRegulation)
}

// finishMatchLocked persists the record and moves to the result screen.
func (e *Engine) finishMatchLocked(winner, loser domain.Team, outcomeKind string) {
	record := domain.MatchRecord{
		Date:            e.now(),
		Winner:          winner,
		Loser:           loser,
		WinnerScore:     e.scores[winner],
		LoserScore:      e.scores[loser],
		DurationMinutes: e.durationMinutes,
	}
	e.history.Append(context.Background(), record)

	e.outcome = &domain.Outcome{Winner: winner, Loser: loser}
	e.metrics.RecordMatchCompleted(outcomeKind, time.Duration(e.durationMinutes)*time.Minute)
	e.transition(ScreenResult)
	logging.Info(e.logger, "match finished",
		logging.FieldWinner, winner,
		logging.FieldLoser, loser,
		"score", record.WinnerScore,
		"opponent_score", record.LoserScore,
	)
}

func (e *Engine) resetLocked() {
	e.playing = [2]domain.Team{}
	e.hasPair = false
	e.waiting = nil
	e.remainingSeconds = 0
	e.paused = false
	e.scores = domain.ZeroScores()
	e.outcome = nil
}

func (e *Engine) scheduleLocked(afterSeconds int) {
	if e.scheduler == nil {
		return
	}
	e.token = e.scheduler.Schedule(afterSeconds)
}

func (e *Engine) cancelNotificationLocked() {
	if e.scheduler == nil || e.token == 0 {
		return
	}
	e.scheduler.Cancel(e.token)
	e.token = 0
}

func (e *Engine) transition(to Screen) {
	e.metrics.RecordTransition(e.screen.String(), to.String())
	e.screen = to
}

func (e *Engine) isPlaying(team domain.Team) bool {
	return e.hasPair && (team == e.playing[0] || team == e.playing[1])
}

func containsTeam(set []domain.Team, team domain.Team) bool {
	for _, t := range set {
		if t == team {
			return true
		}
	}
	return false
}
