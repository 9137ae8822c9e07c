package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fredagsliga-service/internal/domain"
	"fredagsliga-service/internal/storage"
	"fredagsliga-service/internal/storage/memory"
	"fredagsliga-service/internal/testutil"
)

var baseDate = testutil.MustParseRFC3339("2025-09-05T19:00:00Z")

func recordAt(offset int) domain.MatchRecord {
	return domain.MatchRecord{
		Date:            baseDate.Add(time.Duration(offset) * time.Minute),
		Winner:          domain.TeamTurkis,
		Loser:           domain.TeamOransje,
		WinnerScore:     offset,
		LoserScore:      0,
		DurationMinutes: 5,
	}
}

func TestAppendNewestFirst(t *testing.T) {
	s := NewStore(memory.New(), nil, nil)

	s.Append(context.Background(), recordAt(1))
	s.Append(context.Background(), recordAt(2))
	s.Append(context.Background(), recordAt(3))

	records := s.All()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []int{3, 2, 1} {
		if records[i].WinnerScore != want {
			t.Fatalf("expected newest-first order [3 2 1], got %v", records)
		}
	}
}

func TestAppendDropsOldestBeyondCap(t *testing.T) {
	s := NewStore(memory.New(), nil, nil)

	for i := 1; i <= MaxRecords+5; i++ {
		s.Append(context.Background(), recordAt(i))
	}

	records := s.All()
	if len(records) != MaxRecords {
		t.Fatalf("expected %d records, got %d", MaxRecords, len(records))
	}
	if records[0].WinnerScore != MaxRecords+5 {
		t.Fatalf("expected newest record kept, got %d", records[0].WinnerScore)
	}
	if records[len(records)-1].WinnerScore != 6 {
		t.Fatalf("expected oldest five dropped, got %d", records[len(records)-1].WinnerScore)
	}
}

func TestAppendPersistsAcrossReload(t *testing.T) {
	kv := memory.New()
	s := NewStore(kv, nil, nil)
	s.Append(context.Background(), recordAt(1))

	reloaded := NewStore(kv, nil, nil)
	records := reloaded.All()
	if len(records) != 1 {
		t.Fatalf("expected 1 record after reload, got %d", len(records))
	}
	if !records[0].Date.Equal(baseDate.Add(time.Minute)) {
		t.Fatalf("unexpected record date %v", records[0].Date)
	}
}

func TestRecent(t *testing.T) {
	s := NewStore(memory.New(), nil, nil)
	for i := 1; i <= 5; i++ {
		s.Append(context.Background(), recordAt(i))
	}

	recent := s.Recent(2)
	if len(recent) != 2 || recent[0].WinnerScore != 5 || recent[1].WinnerScore != 4 {
		t.Fatalf("expected newest two, got %v", recent)
	}
	if got := s.Recent(100); len(got) != 5 {
		t.Fatalf("expected full log for oversized n, got %d", len(got))
	}
	if got := s.Recent(-1); len(got) != 0 {
		t.Fatalf("expected empty slice for negative n, got %d", len(got))
	}
}

func TestClear(t *testing.T) {
	kv := memory.New()
	s := NewStore(kv, nil, nil)
	s.Append(context.Background(), recordAt(1))

	s.Clear(context.Background())

	if s.Len() != 0 {
		t.Fatalf("expected empty log, got %d", s.Len())
	}
	if _, err := kv.Get(context.Background(), storage.KeyMatchHistory); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected persisted log deleted, got %v", err)
	}
}

func TestLoadTruncatesOversizedPayload(t *testing.T) {
	kv := memory.New()
	oversized := make([]domain.MatchRecord, MaxRecords+10)
	for i := range oversized {
		oversized[i] = recordAt(i)
	}
	payload, err := json.Marshal(oversized)
	if err != nil {
		t.Fatalf("failed to encode history: %v", err)
	}
	if err := kv.Put(context.Background(), storage.KeyMatchHistory, payload); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	s := NewStore(kv, nil, nil)
	if s.Len() != MaxRecords {
		t.Fatalf("expected load truncated to %d, got %d", MaxRecords, s.Len())
	}
}

func TestLoadStartsEmptyOnCorruptPayload(t *testing.T) {
	kv := memory.New()
	if err := kv.Put(context.Background(), storage.KeyMatchHistory, []byte("[broken")); err != nil {
		t.Fatalf("failed to seed payload: %v", err)
	}
	logger, buf := testutil.NewBufferLogger()

	s := NewStore(kv, logger, nil)

	if s.Len() != 0 {
		t.Fatalf("expected empty log on corrupt payload, got %d", s.Len())
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a warning to be logged")
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}
func (failingKV) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}
func (failingKV) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func TestStoreDegradesGracefully(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	s := NewStore(failingKV{}, logger, nil)

	s.Append(context.Background(), recordAt(1))
	if s.Len() != 1 {
		t.Fatalf("expected in-memory append despite write failure, got %d", s.Len())
	}
	if buf.Len() == 0 {
		t.Fatalf("expected failed write to be logged")
	}

	s.Clear(context.Background())
	if s.Len() != 0 {
		t.Fatalf("expected in-memory clear despite delete failure, got %d", s.Len())
	}
}
