package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fredagsliga-service/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, storage.KeyActiveTeams, []byte(`["turkis","bla"]`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	value, err := store.Get(ctx, storage.KeyActiveTeams)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(value) != `["turkis","bla"]` {
		t.Fatalf("unexpected value %s", value)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	store := openTestStore(t)
	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if string(value) != "v" {
		t.Fatalf("unexpected value %s", value)
	}
}
