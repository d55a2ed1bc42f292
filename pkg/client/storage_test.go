package client

import "testing"

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, ok, _ := store.Get(tokenKey); ok {
		t.Fatalf("empty store must not have the token key")
	}

	if err := store.Set(tokenKey, "tok-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := store.Get(tokenKey)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("get returned (%q, %v, %v)", got, ok, err)
	}

	// A fresh store over the same directory sees the persisted value.
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	got, ok, err = reopened.Get(tokenKey)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("reopened get returned (%q, %v, %v)", got, ok, err)
	}

	if err := store.Delete(tokenKey); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(tokenKey); ok {
		t.Fatalf("deleted key still present")
	}
	// Deleting an absent key succeeds.
	if err := store.Delete(tokenKey); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}
