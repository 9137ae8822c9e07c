package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/logging"
	"fredagsliga-service/internal/metrics"
	"fredagsliga-service/internal/storage"
)

// MaxRecords caps the persisted history log; the oldest entry is dropped
// once the cap is exceeded.
const MaxRecords = 50

// Store is the append-only, newest-first match history log. The in-memory
// slice is authoritative; every mutation is mirrored to the key/value store
// best-effort so a failed write never interrupts a session.
type Store struct {
	mu      sync.Mutex
	kv      storage.KV
	logger  *slog.Logger
	metrics *metrics.Recorder
	records []domain.MatchRecord
}

// NewStore constructs a Store, loading any persisted history. A missing or
// unreadable log starts empty.
func NewStore(kv storage.KV, logger *slog.Logger, recorder *metrics.Recorder) *Store {
	s := &Store{kv: kv, logger: logger, metrics: recorder}
	s.records = s.load()
	return s
}

// Append inserts the record at the front of the log, dropping the oldest
// entry when the cap is exceeded.
func (s *Store) Append(ctx context.Context, record domain.MatchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]domain.MatchRecord{record}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	s.save(ctx)
}

// All returns a copy of the full log, newest-first.
func (s *Store) All() []domain.MatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.MatchRecord, len(s.records))
	copy(result, s.records)
	return result
}

// Recent returns up to n of the newest records.
func (s *Store) Recent(n int) []domain.MatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	result := make([]domain.MatchRecord, n)
	copy(result, s.records[:n])
	return result
}

// Len returns the current number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear erases the entire log. The in-memory log is cleared even when the
// durable delete fails.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if s.kv == nil {
		return
	}

	start := time.Now()
	err := s.kv.Delete(ctx, storage.KeyMatchHistory)
	s.metrics.RecordStoreOp("clear", time.Since(start), err)
	if err != nil {
		logging.Warn(s.logger, "failed to clear persisted history", "error", err)
	}
}

func (s *Store) load() []domain.MatchRecord {
	if s.kv == nil {
		return nil
	}

	start := time.Now()
	payload, err := s.kv.Get(context.Background(), storage.KeyMatchHistory)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		s.metrics.RecordStoreOp("load", time.Since(start), err)
		logging.Warn(s.logger, "failed to load match history, starting empty", "error", err)
		return nil
	}
	s.metrics.RecordStoreOp("load", time.Since(start), nil)

	var records []domain.MatchRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		logging.Warn(s.logger, "corrupt match history payload, starting empty", "error", err)
		return nil
	}
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}

// save mirrors the log to the key/value store; losing a single append is
// preferable to failing an in-progress match.
func (s *Store) save(ctx context.Context) {
	if s.kv == nil {
		return
	}

	payload, err := json.Marshal(s.records)
	if err != nil {
		logging.Error(s.logger, "failed to encode match history", err)
		return
	}

	start := time.Now()
	err = s.kv.Put(ctx, storage.KeyMatchHistory, payload)
	s.metrics.RecordStoreOp("save", time.Since(start), err)
	if err != nil {
		logging.Warn(s.logger, "failed to persist match history", "error", err,
			logging.FieldCount, len(s.records))
	}
}
