package trendstore

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("profit_snapshot", json.RawMessage(`{"total":"12.500000"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entry, err := s.Get("profit_snapshot")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry == nil {
		t.Fatal("Get returned nil for existing key")
	}
	if string(entry.Value) != `{"total":"12.500000"}` {
		t.Errorf("value = %s", entry.Value)
	}
	if entry.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	entry, err := s.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry != nil {
		t.Errorf("entry = %+v, want nil", entry)
	}
}

func TestLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	s.Put("searches", json.RawMessage(`["xlm"]`))
	s.Put("searches", json.RawMessage(`["xlm","usdc"]`))

	entry, err := s.Get("searches")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(entry.Value) != `["xlm","usdc"]` {
		t.Errorf("value = %s, want last write", entry.Value)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	s := openTestStore(t)

	s.Put("a", json.RawMessage(`1`))
	s.Put("b", json.RawMessage(`2`))

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("keys = %v, want [b]", keys)
	}
}
