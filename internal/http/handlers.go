package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/history"
	"fredagsliga-service/internal/session"
	"fredagsliga-service/internal/stats"
	"fredagsliga-service/internal/teams"
	"fredagsliga-service/internal/timeutil"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the session engine and its stores.
type Handler struct {
	engine   *session.Engine
	registry *teams.Registry
	history  *history.Store
	logger   *slog.Logger
	now      nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(engine *session.Engine, registry *teams.Registry, historyStore *history.Store, logger *slog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		registry: registry,
		history:  historyStore,
		logger:   logger,
		now:      time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness to serve session traffic.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

type teamEntry struct {
	domain.TeamInfo
	Active bool `json:"active"`
}

// Teams returns the full catalog with the active flag per team.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	entries := make([]teamEntry, 0, len(domain.Catalog()))
	for _, info := range domain.Catalog() {
		entries = append(entries, teamEntry{
			TeamInfo: info,
			Active:   h.registry.Contains(info.ID),
		})
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{"teams": entries})
}

type toggleRequest struct {
	Team domain.Team `json:"team"`
}

// ToggleTeam adds or removes a team from the active set.
func (h *Handler) ToggleTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req toggleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	active, err := h.registry.Toggle(r.Context(), req.Team)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{"active": active})
}

// Session returns the current session snapshot.
func (h *Handler) Session(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

type pairRequest struct {
	TeamA domain.Team `json:"teamA"`
	TeamB domain.Team `json:"teamB"`
}

// SelectPair picks the two teams for the next match.
func (h *Handler) SelectPair(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req pairRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engine.SelectPair(req.TeamA, req.TeamB); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

type durationRequest struct {
	Minutes int `json:"minutes"`
}

// SetDuration configures the match length.
func (h *Handler) SetDuration(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req durationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engine.SetDuration(req.Minutes); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// StartMatch begins the timed match.
func (h *Handler) StartMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.engine.StartMatch(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

type goalRequest struct {
	Team domain.Team `json:"team"`
}

// RecordGoal credits one goal to a playing team.
func (h *Handler) RecordGoal(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req goalRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engine.RecordGoal(req.Team); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// RevokeGoal removes one goal from a playing team.
func (h *Handler) RevokeGoal(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req goalRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engine.RevokeGoal(req.Team); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// TogglePause suspends or resumes the running match.
func (h *Handler) TogglePause(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.engine.TogglePause(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

type tieBreakRequest struct {
	Winner domain.Team `json:"winner"`
}

// ResolveTieBreak records the sudden-death winner.
func (h *Handler) ResolveTieBreak(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req tieBreakRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engine.ResolveTieBreak(req.Winner); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// NextMatch rotates the session to the next pairing.
func (h *Handler) NextMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.engine.AdvanceToNextMatch(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// QuitSession abandons the running session.
func (h *Handler) QuitSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.engine.Quit(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, h.engine.Snapshot())
}

// History serves the match log (GET, newest-first, optional ?limit=N) and
// clears it (DELETE).
func (h *Handler) History(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		records := h.history.All()
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				h.writeError(w, nethttp.StatusBadRequest, "invalid limit")
				return
			}
			records = h.history.Recent(limit)
		}
		h.writeJSON(w, nethttp.StatusOK, map[string]any{"matches": records})
	case nethttp.MethodDelete:
		h.history.Clear(r.Context())
		h.writeJSON(w, nethttp.StatusOK, map[string]any{"matches": []domain.MatchRecord{}})
	default:
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
	}
}

// Stats returns per-team aggregates, rankings, and the session summary.
// ?period=today restricts to matches played today; a YYYY-MM-DD value
// restricts to that calendar day.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	records := h.history.All()

	var filter stats.Filter
	period := r.URL.Query().Get("period")
	switch period {
	case "", "all":
		period = "all"
	case "today":
		filter = stats.OnDay(h.now())
	default:
		day, err := timeutil.ParseDate(period)
		if err != nil {
			h.writeError(w, nethttp.StatusBadRequest, "invalid period")
			return
		}
		filter = stats.OnDay(day)
		period = timeutil.FormatDate(day)
	}

	if filter != nil {
		filtered := records[:0:0]
		for _, record := range records {
			if filter(record) {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	aggregates := stats.Aggregate(records, nil)
	h.writeJSON(w, nethttp.StatusOK, map[string]any{
		"period":   period,
		"teams":    aggregates,
		"rankings": stats.Rankings(aggregates),
		"summary":  stats.Summarize(records),
	})
}

func (h *Handler) decodeJSON(w nethttp.ResponseWriter, r *nethttp.Request, dest any) bool {
	if r.Body == nil {
		h.writeError(w, nethttp.StatusBadRequest, "missing request body")
		return false
	}
	err := json.NewDecoder(r.Body).Decode(dest)
	if err != nil {
		if errors.Is(err, io.EOF) {
			h.writeError(w, nethttp.StatusBadRequest, "missing request body")
		} else {
			h.writeError(w, nethttp.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}

func (h *Handler) writeDomainError(w nethttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidSelection), errors.Is(err, teams.ErrUnknownTeam):
		h.writeError(w, nethttp.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrInvalidTransition), errors.Is(err, teams.ErrMinimumTeams):
		h.writeError(w, nethttp.StatusConflict, err.Error())
	default:
		h.writeError(w, nethttp.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
