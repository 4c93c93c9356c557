package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemory()

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected absent slot")
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := store.Get("k"); !ok || v != "v" {
		t.Fatalf("get: %q ok=%v", v, ok)
	}
	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Fatalf("slot survived delete")
	}
	// Deleting an absent slot is a no-op.
	store.Delete("k")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "slots.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(KeyCart, `[{"id":"A"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Get(KeyCart); !ok || v != `[{"id":"A"}]` {
		t.Fatalf("slot not persisted: %q ok=%v", v, ok)
	}

	reopened.Delete(KeyCart)
	final, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen after delete: %v", err)
	}
	if _, ok := final.Get(KeyCart); ok {
		t.Fatalf("deleted slot persisted")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")
	if err := os.WriteFile(path, []byte("{definitely not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("corrupt state must open empty, got error: %v", err)
	}
	if _, ok := store.Get(KeyCart); ok {
		t.Fatalf("corrupt state should yield no slots")
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	if _, err := OpenFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
