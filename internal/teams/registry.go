package teams

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/logging"
	"fredagsliga-service/internal/storage"
)

// MinActiveTeams is the smallest active set a session can run with.
const MinActiveTeams = 2

var (
	// ErrUnknownTeam indicates a team outside the fixed catalog.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrMinimumTeams indicates a removal that would drop the active set below two.
	ErrMinimumTeams = errors.New("active set requires at least two teams")
)

// Registry owns the active team set for upcoming sessions. The set is
// persisted between sessions; a missing or unreadable value falls back to
// the default four-team subset.
type Registry struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *slog.Logger
	active []domain.Team
}

// NewRegistry constructs a Registry, loading the persisted active set.
func NewRegistry(kv storage.KV, logger *slog.Logger) *Registry {
	r := &Registry{kv: kv, logger: logger}
	r.active = r.load()
	return r
}

// Active returns a copy of the current active team set, in selection order.
func (r *Registry) Active() []domain.Team {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Team, len(r.active))
	copy(result, r.active)
	return result
}

// Contains reports whether the team is in the active set.
func (r *Registry) Contains(team domain.Team) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.active {
		if t == team {
			return true
		}
	}
	return false
}

// Toggle adds the team to the active set, or removes it when already active.
// Removals that would leave fewer than two teams are rejected.
func (r *Registry) Toggle(ctx context.Context, team domain.Team) ([]domain.Team, error) {
	if !team.Valid() {
		return nil, ErrUnknownTeam
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, t := range r.active {
		if t == team {
			idx = i
			break
		}
	}

	if idx >= 0 {
		if len(r.active) <= MinActiveTeams {
			return nil, ErrMinimumTeams
		}
		r.active = append(r.active[:idx], r.active[idx+1:]...)
	} else {
		r.active = append(r.active, team)
	}

	r.save(ctx)

	result := make([]domain.Team, len(r.active))
	copy(result, r.active)
	return result, nil
}

func (r *Registry) load() []domain.Team {
	if r.kv == nil {
		return domain.DefaultActiveTeams()
	}

	payload, err := r.kv.Get(context.Background(), storage.KeyActiveTeams)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logging.Warn(r.logger, "failed to load active teams, using defaults", "error", err)
		}
		return domain.DefaultActiveTeams()
	}

	var saved []domain.Team
	if err := json.Unmarshal(payload, &saved); err != nil {
		logging.Warn(r.logger, "corrupt active teams payload, using defaults", "error", err)
		return domain.DefaultActiveTeams()
	}

	// Drop anything outside the catalog and enforce the two-team floor.
	valid := saved[:0]
	for _, team := range saved {
		if team.Valid() {
			valid = append(valid, team)
		}
	}
	if len(valid) < MinActiveTeams {
		return domain.DefaultActiveTeams()
	}
	return valid
}

// save persists the active set best-effort; a failed write is logged and
// the in-memory set remains authoritative.
func (r *Registry) save(ctx context.Context) {
	if r.kv == nil {
		return
	}

	payload, err := json.Marshal(r.active)
	if err != nil {
		logging.Error(r.logger, "failed to encode active teams", err)
		return
	}
	if err := r.kv.Put(ctx, storage.KeyActiveTeams, payload); err != nil {
		logging.Warn(r.logger, "failed to persist active teams", "error", err)
	}
}
