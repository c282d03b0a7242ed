package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"full_name":"Jane Doe"}`)
	if err := s.Set(ctx, "user-1", "basic-info", payload, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "user-1", "basic-info")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("got payload %q, want %q", got, payload)
	}
}

func TestMemoryStoreMissingEntry(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "user-1", "basic-info")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiredEntryTreatedAsMissing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "user-1", "basic-info", []byte(`{}`), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, err := s.Get(ctx, "user-1", "basic-info")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRejectsInvalidJSON(t *testing.T) {
	s := NewMemoryStore()

	err := s.Set(context.Background(), "user-1", "basic-info", []byte(`{not json`), time.Hour)
	if err == nil {
		t.Fatal("expected error for invalid JSON payload")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "user-1", "availability", []byte(`{}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete(ctx, "user-1", "availability"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := s.Get(ctx, "user-1", "availability")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreIsolatesIdentities(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "user-1", "basic-info", []byte(`{"full_name":"A"}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "user-2", "basic-info", []byte(`{"full_name":"B"}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "user-1", "basic-info")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"full_name":"A"}` {
		t.Errorf("identity payloads crossed: got %s", got)
	}
}
