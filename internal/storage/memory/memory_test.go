package memory

import (
	"context"
	"errors"
	"testing"

	"fredagsliga-service/internal/storage"
)

func TestPutGetDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	value, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(value) != "v" {
		t.Fatalf("unexpected value %s", value)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Put(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	value, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	value[0] = 'z'

	again, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if string(again) != "abc" {
		t.Fatalf("expected stored value to be unchanged, got %s", again)
	}
}
